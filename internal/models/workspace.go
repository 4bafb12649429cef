package models

import (
	"time"

	"gorm.io/gorm"
)

// Workspace is the tenant boundary grouping members and their projects.
// OwnerID always matches the single member row with role=owner.
type Workspace struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	Owner     *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Workspace) TableName() string { return "workspaces" }
