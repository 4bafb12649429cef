package models

import (
	"time"

	"gorm.io/gorm"
)

// Release statuses.
const (
	ReleasePlanned  = "planned"
	ReleaseShipped  = "released"
	ReleaseArchived = "archived"
)

// Release marks a shippable version of a project.
type Release struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Tag         string         `gorm:"size:100" json:"tag"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;default:planned" json:"status"`
	ReleasedAt  *time.Time     `json:"released_at"`
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Release) TableName() string { return "releases" }
