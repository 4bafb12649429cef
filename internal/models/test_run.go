package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StatusCounts is a sparse status→count map persisted as a JSON text column.
// Statuses with zero occurrences are absent from the map.
type StatusCounts map[string]int

// Value implements driver.Valuer.
func (s StatusCounts) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StatusCounts) Scan(value interface{}) error {
	if value == nil {
		*s = StatusCounts{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StatusCounts", value)
	}
	if len(data) == 0 {
		*s = StatusCounts{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// TestRun is an execution session grouping TestRunCase records. Progress and
// Stats are caches derived from the run's cases; the aggregator refreshes
// them after case mutations.
type TestRun struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string         `gorm:"size:300;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ChecklistID *uint          `gorm:"index" json:"checklist_id"` // set for checklist-sourced runs
	Progress    int            `gorm:"default:0" json:"progress"` // 0-100
	Stats       StatusCounts   `gorm:"type:text" json:"stats"`
	CreatedBy   uint           `json:"created_by"`
	ClosedAt    *time.Time     `json:"closed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TestRun) TableName() string { return "test_runs" }
