package models

import (
	"time"

	"gorm.io/gorm"
)

// Test case priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Test case sources.
const (
	CaseSourceManual = "manual"
	CaseSourceAI     = "ai"
)

// TestCase is a single test case within a suite. Steps and ExpectedResult
// are free text; AI-generated cases carry Source=ai and start as drafts.
type TestCase struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ProjectID      uint           `gorm:"index;not null" json:"project_id"`
	SuiteID        uint           `gorm:"index;not null" json:"suite_id"`
	Suite          *TestSuite     `gorm:"foreignKey:SuiteID" json:"suite,omitempty"`
	Title          string         `gorm:"size:300;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Preconditions  string         `gorm:"type:text" json:"preconditions"`
	Steps          string         `gorm:"type:text" json:"steps"`
	ExpectedResult string         `gorm:"type:text" json:"expected_result"`
	Priority       string         `gorm:"size:20;default:medium" json:"priority"`
	Automated      bool           `gorm:"default:false" json:"automated"`
	Draft          bool           `gorm:"default:false" json:"draft"`
	Source         string         `gorm:"size:20;default:manual" json:"source"` // manual, ai
	Position       int            `gorm:"default:0" json:"position"`
	CreatedBy      uint           `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TestCase) TableName() string { return "test_cases" }
