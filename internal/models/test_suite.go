package models

import (
	"time"

	"gorm.io/gorm"
)

// TestSuite groups test cases within a project. Suites form a tree via
// ParentID; a nil ParentID marks a root suite.
type TestSuite struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Position    int            `gorm:"default:0" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TestSuite) TableName() string { return "test_suites" }
