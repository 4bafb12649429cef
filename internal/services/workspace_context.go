package services

import (
	"errors"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

// WorkspaceContext is the resolved active workspace for a request, together
// with the acting user's role in it. A nil context is a valid state: the
// user belongs to no workspace (legacy personal projects only).
type WorkspaceContext struct {
	Workspace *models.Workspace `json:"workspace"`
	Role      models.Role       `json:"role"`
}

// WorkspaceContextService resolves the active workspace for an
// authenticated user and keeps the user's persisted pointer consistent.
type WorkspaceContextService struct {
	db *gorm.DB
}

func NewWorkspaceContextService(db *gorm.DB) *WorkspaceContextService {
	return &WorkspaceContextService{db: db}
}

// Resolve selects the active workspace for userID. If routeProject is
// non-nil and bound to a workspace the user belongs to, that workspace wins
// over the user's stored pointer so navigation state follows the project
// being viewed. The stored pointer is healed whenever it is absent or
// points to a workspace the user no longer belongs to; the fallback is the
// user's first membership in insertion order.
func (s *WorkspaceContextService) Resolve(userID uint, routeProject *models.Project) (*WorkspaceContext, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	// Route-level override: a project bound to a workspace the user is a
	// member of takes precedence over the stored pointer.
	if routeProject != nil && routeProject.WorkspaceID != nil {
		wctx, err := s.contextFor(userID, *routeProject.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if wctx != nil {
			if err := s.persistPointer(&user, wctx.Workspace.ID); err != nil {
				return nil, err
			}
			return wctx, nil
		}
	}

	// Stored pointer, if it still dereferences to a current membership.
	if user.CurrentWorkspaceID != nil {
		wctx, err := s.contextFor(userID, *user.CurrentWorkspaceID)
		if err != nil {
			return nil, err
		}
		if wctx != nil {
			return wctx, nil
		}
	}

	// Re-resolve: first workspace by membership, insertion order.
	var member models.WorkspaceMember
	err := s.db.Where("user_id = ?", userID).Order("id ASC").First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	wctx, err := s.contextFor(userID, member.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if wctx == nil {
		// Membership row without a live workspace; treat as no context.
		return nil, nil
	}
	if err := s.persistPointer(&user, wctx.Workspace.ID); err != nil {
		return nil, err
	}
	return wctx, nil
}

// SwitchTo explicitly switches the user's active workspace after verifying
// membership. Returns the new context, or nil if the user is not a member.
func (s *WorkspaceContextService) SwitchTo(userID, workspaceID uint) (*WorkspaceContext, error) {
	wctx, err := s.contextFor(userID, workspaceID)
	if err != nil || wctx == nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if err := s.persistPointer(&user, workspaceID); err != nil {
		return nil, err
	}
	return wctx, nil
}

// contextFor builds a context for (user, workspace) if the user is a member
// and the workspace exists; otherwise returns nil.
func (s *WorkspaceContextService) contextFor(userID, workspaceID uint) (*WorkspaceContext, error) {
	role, ok, err := membershipRole(s.db, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var workspace models.Workspace
	err = s.db.First(&workspace, workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &WorkspaceContext{Workspace: &workspace, Role: role}, nil
}

// persistPointer writes the user's current_workspace_id, skipping the write
// when the pointer is already equal.
func (s *WorkspaceContextService) persistPointer(user *models.User, workspaceID uint) error {
	if user.CurrentWorkspaceID != nil && *user.CurrentWorkspaceID == workspaceID {
		return nil
	}
	return s.db.Model(user).Update("current_workspace_id", workspaceID).Error
}
