package services

import (
	"errors"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

type AddMemberRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role" binding:"required"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// List returns a workspace's members with their users preloaded.
func (s *MemberService) List(workspaceID uint) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	if err := s.db.Preload("User").
		Where("workspace_id = ?", workspaceID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Add invites an existing user, looked up by username or email, into the
// workspace. The owner role cannot be granted this way; use ownership
// transfer instead.
func (s *MemberService) Add(workspaceID uint, req *AddMemberRequest) (*models.WorkspaceMember, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == models.RoleOwner {
		return nil, errors.New("cannot add a member with the owner role")
	}
	if req.Username == "" && req.Email == "" {
		return nil, errors.New("username or email is required")
	}

	var user models.User
	query := s.db
	if req.Username != "" {
		query = query.Where("username = ?", req.Username)
	} else {
		query = query.Where("email = ?", req.Email)
	}
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, user.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("user is already a member")
	}

	member := models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        string(role),
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	member.User = &user
	return &member, nil
}

// UpdateRole changes a member's role. The owner's role is immutable here,
// and no member can be promoted to owner; both go through ownership
// transfer so the workspace always has exactly one owner.
func (s *MemberService) UpdateRole(workspaceID, memberID uint, req *UpdateMemberRoleRequest) (*models.WorkspaceMember, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == models.RoleOwner {
		return nil, errors.New("use ownership transfer to assign the owner role")
	}

	var member models.WorkspaceMember
	if err := s.db.Where("workspace_id = ?", workspaceID).First(&member, memberID).Error; err != nil {
		return nil, err
	}
	if member.Role == string(models.RoleOwner) {
		return nil, ErrLastOwner
	}

	if err := s.db.Model(&member).Update("role", string(role)).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership. The owner cannot be removed.
func (s *MemberService) Remove(workspaceID, memberID uint) error {
	var member models.WorkspaceMember
	if err := s.db.Where("workspace_id = ?", workspaceID).First(&member, memberID).Error; err != nil {
		return err
	}
	if member.Role == string(models.RoleOwner) {
		return ErrLastOwner
	}
	return s.db.Delete(&member).Error
}

// Leave removes the acting user's own membership. Owners must transfer
// ownership before leaving.
func (s *MemberService) Leave(workspaceID, userID uint) error {
	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotWorkspaceMember
	}
	if err != nil {
		return err
	}
	if member.Role == string(models.RoleOwner) {
		return errors.New("transfer ownership before leaving the workspace")
	}
	return s.db.Delete(&member).Error
}
