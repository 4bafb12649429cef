package services

import (
	"fmt"
	"time"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type ReleaseService struct {
	db *gorm.DB
}

func NewReleaseService(db *gorm.DB) *ReleaseService {
	return &ReleaseService{db: db}
}

type CreateReleaseRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

type UpdateReleaseRequest struct {
	Name        *string `json:"name"`
	Tag         *string `json:"tag"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func validReleaseStatus(s string) bool {
	switch s {
	case models.ReleasePlanned, models.ReleaseShipped, models.ReleaseArchived:
		return true
	}
	return false
}

// List returns a project's releases, newest first.
func (s *ReleaseService) List(projectID uint) ([]models.Release, error) {
	var releases []models.Release
	if err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

// Create adds a planned release.
func (s *ReleaseService) Create(projectID uint, req *CreateReleaseRequest, userID uint) (*models.Release, error) {
	release := models.Release{
		ProjectID:   projectID,
		Name:        req.Name,
		Tag:         req.Tag,
		Description: req.Description,
		Status:      models.ReleasePlanned,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&release).Error; err != nil {
		return nil, err
	}
	return &release, nil
}

// GetByID returns a release by ID.
func (s *ReleaseService) GetByID(id uint) (*models.Release, error) {
	var release models.Release
	if err := s.db.First(&release, id).Error; err != nil {
		return nil, err
	}
	return &release, nil
}

// Update applies a partial edit. Transitioning to released stamps
// ReleasedAt once; later edits do not move it.
func (s *ReleaseService) Update(id uint, req *UpdateReleaseRequest) (*models.Release, error) {
	var release models.Release
	if err := s.db.First(&release, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Tag != nil {
		updates["tag"] = *req.Tag
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !validReleaseStatus(*req.Status) {
			return nil, fmt.Errorf("invalid release status: %q", *req.Status)
		}
		updates["status"] = *req.Status
		if *req.Status == models.ReleaseShipped && release.ReleasedAt == nil {
			updates["released_at"] = time.Now()
		}
	}
	if len(updates) == 0 {
		return &release, nil
	}

	if err := s.db.Model(&release).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &release, nil
}

// Delete removes a release.
func (s *ReleaseService) Delete(id uint) error {
	result := s.db.Delete(&models.Release{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("release %d not found", id)
	}
	return nil
}
