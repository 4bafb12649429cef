package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a free-form markdown document attached to a project.
type Document struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	Title     string         `gorm:"size:300;not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	CreatedBy uint           `json:"created_by"`
	UpdatedBy uint           `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Document) TableName() string { return "documents" }
