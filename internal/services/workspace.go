package services

import (
	"errors"
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotWorkspaceMember = errors.New("user is not a member of this workspace")
	ErrLastOwner          = errors.New("workspace must keep exactly one owner")
)

type WorkspaceService struct {
	db *gorm.DB
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type TransferOwnershipRequest struct {
	NewOwnerID uint `json:"new_owner_id" binding:"required"`
}

// WorkspaceSummary is a workspace together with the requesting user's role,
// as listed in the workspace switcher.
type WorkspaceSummary struct {
	models.Workspace
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
}

// Create creates a workspace and its owner membership in one transaction.
// The slug is derived from the name and suffixed on collision.
func (s *WorkspaceService) Create(ownerID uint, req *CreateWorkspaceRequest) (*models.Workspace, error) {
	workspace := models.Workspace{
		Name:    req.Name,
		OwnerID: ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.availableSlug(tx, utils.Slugify(req.Name))
		if err != nil {
			return err
		}
		workspace.Slug = slug

		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}

		member := models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      ownerID,
			Role:        string(models.RoleOwner),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &workspace, nil
}

// availableSlug returns base if free, otherwise base plus a short random
// suffix.
func (s *WorkspaceService) availableSlug(tx *gorm.DB, base string) (string, error) {
	var count int64
	if err := tx.Model(&models.Workspace{}).Where("slug = ?", base).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return base + "-" + utils.UniqueSuffix(), nil
}

// ListForUser returns every workspace the user belongs to with the user's
// role in each, ordered by membership insertion.
func (s *WorkspaceService) ListForUser(userID uint) ([]WorkspaceSummary, error) {
	var members []models.WorkspaceMember
	if err := s.db.Preload("Workspace").
		Where("user_id = ?", userID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	summaries := make([]WorkspaceSummary, 0, len(members))
	for _, m := range members {
		if m.Workspace == nil {
			continue
		}
		var memberCount int64
		if err := s.db.Model(&models.WorkspaceMember{}).
			Where("workspace_id = ?", m.WorkspaceID).Count(&memberCount).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, WorkspaceSummary{
			Workspace:   *m.Workspace,
			Role:        m.Role,
			MemberCount: memberCount,
		})
	}
	return summaries, nil
}

// GetByID returns a workspace by ID.
func (s *WorkspaceService) GetByID(id uint) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := s.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Update renames a workspace. The slug is stable once assigned.
func (s *WorkspaceService) Update(id uint, req *UpdateWorkspaceRequest) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := s.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&workspace).Update("name", req.Name).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Delete removes a workspace with its memberships and projects. Users whose
// current workspace pointer referenced it are left to the resolver to heal
// on their next request.
func (s *WorkspaceService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var projects []models.Project
		if err := tx.Where("workspace_id = ?", id).Find(&projects).Error; err != nil {
			return err
		}
		for _, p := range projects {
			if err := deleteProjectData(tx, p.ID); err != nil {
				return err
			}
		}
		if len(projects) > 0 {
			if err := tx.Where("workspace_id = ?", id).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("workspace_id = ?", id).Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Workspace{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("workspace %d not found", id)
		}
		return nil
	})
}

// TransferOwnership makes another member the owner and demotes the current
// owner to admin. The new owner must already be a member.
func (s *WorkspaceService) TransferOwnership(workspaceID, currentOwnerID uint, req *TransferOwnershipRequest) error {
	if req.NewOwnerID == currentOwnerID {
		return errors.New("user is already the owner")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var newOwner models.WorkspaceMember
		err := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, req.NewOwnerID).
			First(&newOwner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWorkspaceMember
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.WorkspaceMember{}).
			Where("workspace_id = ? AND user_id = ?", workspaceID, currentOwnerID).
			Update("role", string(models.RoleAdmin)).Error; err != nil {
			return err
		}
		if err := tx.Model(&newOwner).Update("role", string(models.RoleOwner)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Workspace{}).
			Where("id = ?", workspaceID).
			Update("owner_id", req.NewOwnerID).Error
	})
}
