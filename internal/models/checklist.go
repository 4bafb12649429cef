package models

import (
	"time"

	"gorm.io/gorm"
)

// Checklist is a lightweight ordered list of checks within a project.
// Its items can seed a test run (the run's cases then have no TestCaseID).
type Checklist struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"index;not null" json:"project_id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Items       []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
	CreatedBy   uint            `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Checklist) TableName() string { return "checklists" }

// ChecklistItem is one entry of a checklist.
type ChecklistItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ChecklistID uint           `gorm:"index;not null" json:"checklist_id"`
	Text        string         `gorm:"size:500;not null" json:"text"`
	Position    int            `gorm:"default:0" json:"position"`
	Done        bool           `gorm:"default:false" json:"done"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ChecklistItem) TableName() string { return "checklist_items" }
