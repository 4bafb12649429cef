package services

import (
	"errors"
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type ChecklistService struct {
	db *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{db: db}
}

type CreateChecklistRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

type UpdateChecklistRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

type AddChecklistItemRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

type UpdateChecklistItemRequest struct {
	Text     *string `json:"text"`
	Done     *bool   `json:"done"`
	Position *int    `json:"position"`
}

// List returns a project's checklists with items preloaded.
func (s *ChecklistService) List(projectID uint) ([]models.Checklist, error) {
	var checklists []models.Checklist
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&checklists).Error; err != nil {
		return nil, err
	}
	return checklists, nil
}

// Create creates a checklist, optionally seeded with items in order.
func (s *ChecklistService) Create(projectID uint, req *CreateChecklistRequest, userID uint) (*models.Checklist, error) {
	checklist := models.Checklist{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checklist).Error; err != nil {
			return err
		}
		for i, text := range req.Items {
			if text == "" {
				continue
			}
			item := models.ChecklistItem{
				ChecklistID: checklist.ID,
				Text:        text,
				Position:    i,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			checklist.Items = append(checklist.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// GetByID returns a checklist with its items.
func (s *ChecklistService) GetByID(id uint) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&checklist, id).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Update renames a checklist.
func (s *ChecklistService) Update(id uint, req *UpdateChecklistRequest) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := s.db.First(&checklist, id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if err := s.db.Model(&checklist).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Delete removes a checklist and its items. Runs already seeded from it
// keep their snapshot titles; their ChecklistID dangles by design of the
// snapshot model.
func (s *ChecklistService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Checklist{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("checklist %d not found", id)
		}
		return nil
	})
}

// AddItem appends an item to a checklist.
func (s *ChecklistService) AddItem(checklistID uint, req *AddChecklistItemRequest) (*models.ChecklistItem, error) {
	var checklist models.Checklist
	if err := s.db.First(&checklist, checklistID).Error; err != nil {
		return nil, err
	}

	var maxPos int
	if err := s.db.Model(&models.ChecklistItem{}).
		Where("checklist_id = ?", checklistID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error; err != nil {
		return nil, err
	}

	item := models.ChecklistItem{
		ChecklistID: checklistID,
		Text:        req.Text,
		Position:    maxPos + 1,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial edit to an item.
func (s *ChecklistService) UpdateItem(checklistID, itemID uint, req *UpdateChecklistItemRequest) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := s.db.Where("checklist_id = ?", checklistID).First(&item, itemID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Text != nil {
		if *req.Text == "" {
			return nil, errors.New("item text cannot be empty")
		}
		updates["text"] = *req.Text
	}
	if req.Done != nil {
		updates["done"] = *req.Done
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if len(updates) == 0 {
		return &item, nil
	}

	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item.
func (s *ChecklistService) RemoveItem(checklistID, itemID uint) error {
	result := s.db.Where("checklist_id = ?", checklistID).Delete(&models.ChecklistItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("checklist item %d not found", itemID)
	}
	return nil
}
