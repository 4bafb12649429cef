package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CaseStatus is the execution status of one test case within a run.
type CaseStatus string

const (
	StatusUntested CaseStatus = "untested"
	StatusPassed   CaseStatus = "passed"
	StatusFailed   CaseStatus = "failed"
	StatusBlocked  CaseStatus = "blocked"
	StatusSkipped  CaseStatus = "skipped"
	StatusRetest   CaseStatus = "retest"
)

// ParseCaseStatus validates a status string against the fixed enumeration.
func ParseCaseStatus(s string) (CaseStatus, error) {
	switch CaseStatus(s) {
	case StatusUntested, StatusPassed, StatusFailed, StatusBlocked, StatusSkipped, StatusRetest:
		return CaseStatus(s), nil
	}
	return "", fmt.Errorf("invalid test run case status: %q", s)
}

// Completed reports whether the status counts toward run progress.
// Untested and retest cases are not completed.
func (s CaseStatus) Completed() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusBlocked, StatusSkipped:
		return true
	}
	return false
}

// TestRunCase is one test case's execution record within a run. TestCaseID
// is nil for checklist-sourced runs; Title snapshots the case title at run
// creation so later edits don't rewrite run history.
type TestRunCase struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	TestRunID  uint           `gorm:"index;not null" json:"test_run_id"`
	TestCaseID *uint          `gorm:"index" json:"test_case_id"`
	Title      string         `gorm:"size:300;not null" json:"title"`
	Status     string         `gorm:"size:20;default:untested;not null" json:"status"`
	Comment    string         `gorm:"type:text" json:"comment"`
	AssigneeID *uint          `json:"assignee_id"`
	UpdatedBy  uint           `json:"updated_by"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TestRunCase) TableName() string { return "test_run_cases" }
