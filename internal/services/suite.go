package services

import (
	"errors"
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type SuiteService struct {
	db *gorm.DB
}

func NewSuiteService(db *gorm.DB) *SuiteService {
	return &SuiteService{db: db}
}

type CreateSuiteRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

type UpdateSuiteRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	Position    *int   `json:"position"`
}

// SuiteNode is a suite with its children, as returned by the tree view.
type SuiteNode struct {
	models.TestSuite
	CaseCount int64       `json:"case_count"`
	Children  []SuiteNode `json:"children"`
}

// Create adds a suite to the project, appended at the end of its siblings.
func (s *SuiteService) Create(projectID uint, req *CreateSuiteRequest) (*models.TestSuite, error) {
	if req.ParentID != nil {
		if err := s.checkParent(projectID, *req.ParentID); err != nil {
			return nil, err
		}
	}

	var maxPos int
	row := s.db.Model(&models.TestSuite{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(position), -1)")
	if req.ParentID != nil {
		row = row.Where("parent_id = ?", *req.ParentID)
	} else {
		row = row.Where("parent_id IS NULL")
	}
	if err := row.Scan(&maxPos).Error; err != nil {
		return nil, err
	}

	suite := models.TestSuite{
		ProjectID:   projectID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Position:    maxPos + 1,
	}
	if err := s.db.Create(&suite).Error; err != nil {
		return nil, err
	}
	return &suite, nil
}

// Tree returns the project's suites as a nested tree with per-suite case
// counts, siblings ordered by position.
func (s *SuiteService) Tree(projectID uint) ([]SuiteNode, error) {
	var suites []models.TestSuite
	if err := s.db.Where("project_id = ?", projectID).
		Order("position ASC, id ASC").Find(&suites).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64)
	var rows []struct {
		SuiteID uint
		Count   int64
	}
	if err := s.db.Model(&models.TestCase{}).
		Select("suite_id, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("suite_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.SuiteID] = row.Count
	}

	return buildSuiteTree(suites, counts, nil), nil
}

func buildSuiteTree(suites []models.TestSuite, counts map[uint]int64, parentID *uint) []SuiteNode {
	nodes := []SuiteNode{}
	for _, suite := range suites {
		match := (parentID == nil && suite.ParentID == nil) ||
			(parentID != nil && suite.ParentID != nil && *suite.ParentID == *parentID)
		if !match {
			continue
		}
		id := suite.ID
		nodes = append(nodes, SuiteNode{
			TestSuite: suite,
			CaseCount: counts[suite.ID],
			Children:  buildSuiteTree(suites, counts, &id),
		})
	}
	return nodes
}

// GetByID returns a suite by ID.
func (s *SuiteService) GetByID(id uint) (*models.TestSuite, error) {
	var suite models.TestSuite
	if err := s.db.First(&suite, id).Error; err != nil {
		return nil, err
	}
	return &suite, nil
}

// Update edits a suite and optionally moves it. Moving a suite under its
// own descendant is rejected.
func (s *SuiteService) Update(id uint, req *UpdateSuiteRequest) (*models.TestSuite, error) {
	var suite models.TestSuite
	if err := s.db.First(&suite, id).Error; err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, errors.New("suite cannot be its own parent")
		}
		if err := s.checkParent(suite.ProjectID, *req.ParentID); err != nil {
			return nil, err
		}
		descendant, err := s.isDescendant(suite.ProjectID, *req.ParentID, id)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, errors.New("cannot move a suite under its own descendant")
		}
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"parent_id":   req.ParentID,
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := s.db.Model(&suite).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &suite, nil
}

// Delete removes a suite, its descendant suites, and all cases in them.
func (s *SuiteService) Delete(id uint) error {
	var suite models.TestSuite
	if err := s.db.First(&suite, id).Error; err != nil {
		return err
	}

	ids, err := s.subtreeIDs(suite.ProjectID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("suite_id IN ?", ids).Delete(&models.TestCase{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.TestSuite{}).Error
	})
}

// checkParent verifies the parent suite exists in the same project.
func (s *SuiteService) checkParent(projectID, parentID uint) error {
	var count int64
	if err := s.db.Model(&models.TestSuite{}).
		Where("id = ? AND project_id = ?", parentID, projectID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("parent suite %d not found in project", parentID)
	}
	return nil
}

// isDescendant reports whether candidate lies in the subtree rooted at root.
func (s *SuiteService) isDescendant(projectID, candidate, root uint) (bool, error) {
	ids, err := s.subtreeIDs(projectID, root)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == candidate && id != root {
			return true, nil
		}
	}
	return false, nil
}

// subtreeIDs returns root plus every descendant suite id, walking the
// project's suites in memory.
func (s *SuiteService) subtreeIDs(projectID, root uint) ([]uint, error) {
	var suites []models.TestSuite
	if err := s.db.Where("project_id = ?", projectID).Find(&suites).Error; err != nil {
		return nil, err
	}

	children := make(map[uint][]uint)
	for _, suite := range suites {
		if suite.ParentID != nil {
			children[*suite.ParentID] = append(children[*suite.ParentID], suite.ID)
		}
	}

	ids := []uint{root}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids, nil
}
