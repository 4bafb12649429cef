package services

import (
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

type CreateDocumentRequest struct {
	Title   string `json:"title" binding:"required,max=300"`
	Content string `json:"content"`
}

type UpdateDocumentRequest struct {
	Title   string `json:"title" binding:"required,max=300"`
	Content string `json:"content"`
}

// List returns a project's documents without their content bodies.
func (s *DocumentService) List(projectID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Select("id", "project_id", "title", "created_by", "updated_by", "created_at", "updated_at").
		Where("project_id = ?", projectID).
		Order("updated_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Create adds a document to a project.
func (s *DocumentService) Create(projectID uint, req *CreateDocumentRequest, userID uint) (*models.Document, error) {
	doc := models.Document{
		ProjectID: projectID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByID returns a document with its content.
func (s *DocumentService) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update replaces a document's title and content.
func (s *DocumentService) Update(id uint, req *UpdateDocumentRequest, userID uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"title":      req.Title,
		"content":    req.Content,
		"updated_by": userID,
	}
	if err := s.db.Model(&doc).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(id uint) error {
	result := s.db.Delete(&models.Document{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document %d not found", id)
	}
	return nil
}
