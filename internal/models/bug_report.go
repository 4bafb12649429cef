package models

import (
	"time"

	"gorm.io/gorm"
)

// Bug severities and statuses.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"

	BugStatusOpen       = "open"
	BugStatusInProgress = "in_progress"
	BugStatusResolved   = "resolved"
	BugStatusClosed     = "closed"
)

// BugReport is a defect record within a project, optionally linked to the
// run case whose failure produced it.
type BugReport struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ProjectID     uint           `gorm:"index;not null" json:"project_id"`
	Title         string         `gorm:"size:300;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	StepsToRepro  string         `gorm:"type:text" json:"steps_to_repro"`
	Severity      string         `gorm:"size:20;default:medium" json:"severity"`
	Status        string         `gorm:"size:20;default:open" json:"status"`
	ReporterID    uint           `gorm:"index" json:"reporter_id"`
	AssigneeID    *uint          `json:"assignee_id"`
	TestRunCaseID *uint          `gorm:"index" json:"test_run_case_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BugReport) TableName() string { return "bug_reports" }
