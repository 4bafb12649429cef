package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a test-management project. WorkspaceID is nullable for
// legacy personal projects; when it is nil, ownership is determined solely
// by UserID.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	WorkspaceID *uint          `gorm:"index" json:"workspace_id"`
	Workspace   *Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// IsPersonal reports whether the project is a legacy personal project with
// no workspace attached.
func (p *Project) IsPersonal() bool {
	return p.WorkspaceID == nil
}
