package models

import (
	"time"

	"gorm.io/gorm"
)

// Generation job statuses.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// GenerationJob tracks one AI test-case generation request. Generated cases
// are attached to the target suite as drafts.
type GenerationJob struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProjectID    uint           `gorm:"index;not null" json:"project_id"`
	SuiteID      uint           `gorm:"index;not null" json:"suite_id"`
	Feature      string         `gorm:"type:text;not null" json:"feature"` // feature description to generate cases from
	Status       string         `gorm:"size:20;default:pending" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message"`
	CasesCreated int            `gorm:"default:0" json:"cases_created"`
	AIConfigID   *uint          `json:"ai_config_id"` // Which provider was used
	CreatedBy    uint           `json:"created_by"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GenerationJob) TableName() string { return "generation_jobs" }
