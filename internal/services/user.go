package services

import (
	"errors"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
}

type UpdatePreferencesRequest struct {
	SidebarOpen *bool `json:"sidebar_open"`
}

// UpdateProfile edits the user's own profile fields. LDAP users cannot
// change email here; the directory is authoritative.
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Email != nil {
		if user.AuthType != "local" {
			return nil, errors.New("directory-managed users cannot change email")
		}
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id != ?", *req.Email, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("email already taken")
		}
		updates["email"] = *req.Email
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences stores UI preferences like the sidebar state.
func (s *UserService) UpdatePreferences(userID uint, req *UpdatePreferencesRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if req.SidebarOpen != nil {
		if err := s.db.Model(&user).Update("sidebar_open", *req.SidebarOpen).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Search finds active users by username or email prefix, for member
// invitation autocomplete.
func (s *UserService) Search(keyword string, limit int) ([]models.User, error) {
	if keyword == "" {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	var users []models.User
	if err := s.db.Where("is_active = ? AND (username LIKE ? OR email LIKE ?)",
		true, keyword+"%", keyword+"%").
		Order("username ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
