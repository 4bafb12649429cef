package services

import (
	"errors"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

// membershipRole resolves a user's role in a workspace through a single
// membership lookup. Absence of a membership row means "no role"; every
// capability check treats that as deny. A persisted role outside the
// enumeration is a data-integrity fault and surfaces as an error.
func membershipRole(db *gorm.DB, userID, workspaceID uint) (models.Role, bool, error) {
	var m models.WorkspaceMember
	err := db.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	role, err := m.ParsedRole()
	if err != nil {
		return "", false, err
	}
	return role, true, nil
}

// ProjectPolicy gates viewing and mutation of projects. Personal projects
// (no workspace) are gated solely by the owning user id; workspace projects
// are gated by the acting user's role in the project's workspace.
type ProjectPolicy struct {
	db *gorm.DB
}

func NewProjectPolicy(db *gorm.DB) *ProjectPolicy {
	return &ProjectPolicy{db: db}
}

// CanView allows the personal owner, or any workspace member.
func (p *ProjectPolicy) CanView(userID uint, project *models.Project) (bool, error) {
	if project.IsPersonal() {
		return project.UserID == userID, nil
	}
	role, ok, err := membershipRole(p.db, userID, *project.WorkspaceID)
	if err != nil {
		return false, err
	}
	return ok && role.CanView(), nil
}

// CanCreate allows users with no active workspace unconditionally (legacy
// personal projects), otherwise requires a project-managing role in the
// active workspace.
func (p *ProjectPolicy) CanCreate(userID uint, wctx *WorkspaceContext) (bool, error) {
	if wctx == nil {
		return true, nil
	}
	return wctx.Role.CanManageProjects(), nil
}

// CanUpdate allows the personal owner, or owner/admin/member roles. The
// roles are enumerated here rather than delegated to CanManageProjects so a
// future widening of the create capability cannot silently widen update.
func (p *ProjectPolicy) CanUpdate(userID uint, project *models.Project) (bool, error) {
	if project.IsPersonal() {
		return project.UserID == userID, nil
	}
	role, ok, err := membershipRole(p.db, userID, *project.WorkspaceID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	switch role {
	case models.RoleOwner, models.RoleAdmin, models.RoleMember:
		return true, nil
	}
	return false, nil
}

// CanDelete allows the personal owner, or owner/admin roles strictly.
func (p *ProjectPolicy) CanDelete(userID uint, project *models.Project) (bool, error) {
	if project.IsPersonal() {
		return project.UserID == userID, nil
	}
	role, ok, err := membershipRole(p.db, userID, *project.WorkspaceID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return role == models.RoleOwner || role == models.RoleAdmin, nil
}

// WorkspacePolicy gates viewing and mutation of workspaces.
type WorkspacePolicy struct {
	db *gorm.DB
}

func NewWorkspacePolicy(db *gorm.DB) *WorkspacePolicy {
	return &WorkspacePolicy{db: db}
}

// CanView allows any member regardless of role.
func (p *WorkspacePolicy) CanView(userID, workspaceID uint) (bool, error) {
	role, ok, err := membershipRole(p.db, userID, workspaceID)
	if err != nil {
		return false, err
	}
	return ok && role.CanView(), nil
}

// CanUpdate requires owner or admin. The roles are enumerated here rather
// than delegated to CanManageMembers so a future widening of member
// management cannot silently widen workspace update.
func (p *WorkspacePolicy) CanUpdate(userID, workspaceID uint) (bool, error) {
	role, ok, err := membershipRole(p.db, userID, workspaceID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	switch role {
	case models.RoleOwner, models.RoleAdmin:
		return true, nil
	}
	return false, nil
}

// CanManageMembers requires owner or admin.
func (p *WorkspacePolicy) CanManageMembers(userID, workspaceID uint) (bool, error) {
	role, ok, err := membershipRole(p.db, userID, workspaceID)
	if err != nil {
		return false, err
	}
	return ok && role.CanManageMembers(), nil
}

// CanDelete requires the owner role exactly.
func (p *WorkspacePolicy) CanDelete(userID, workspaceID uint) (bool, error) {
	role, ok, err := membershipRole(p.db, userID, workspaceID)
	if err != nil {
		return false, err
	}
	return ok && role.CanDeleteWorkspace(), nil
}
