package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkspaceMember represents a user's membership and role within a workspace.
// A user has at most one role per workspace.
type WorkspaceMember struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"uniqueIndex:idx_workspace_user;not null" json:"workspace_id"`
	Workspace   *Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	UserID      uint           `gorm:"uniqueIndex:idx_workspace_user;not null" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role        string         `gorm:"size:50;not null" json:"role"` // owner, admin, member, viewer
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkspaceMember) TableName() string { return "workspace_members" }

// ParsedRole returns the member's role as a typed Role, failing on values
// outside the enumeration.
func (m *WorkspaceMember) ParsedRole() (Role, error) {
	return ParseRole(m.Role)
}
