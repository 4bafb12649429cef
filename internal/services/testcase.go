package services

import (
	"errors"
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type TestCaseService struct {
	db *gorm.DB
}

func NewTestCaseService(db *gorm.DB) *TestCaseService {
	return &TestCaseService{db: db}
}

type TestCaseListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	SuiteID  *uint  `form:"suite_id"`
	Priority string `form:"priority"`
	Keyword  string `form:"keyword"`
	Draft    *bool  `form:"draft"`
}

type TestCaseListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.TestCase `json:"items"`
}

type CreateTestCaseRequest struct {
	SuiteID        uint   `json:"suite_id" binding:"required"`
	Title          string `json:"title" binding:"required,max=300"`
	Description    string `json:"description"`
	Preconditions  string `json:"preconditions"`
	Steps          string `json:"steps"`
	ExpectedResult string `json:"expected_result"`
	Priority       string `json:"priority"`
	Automated      bool   `json:"automated"`
}

type UpdateTestCaseRequest struct {
	SuiteID        *uint   `json:"suite_id"`
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Preconditions  *string `json:"preconditions"`
	Steps          *string `json:"steps"`
	ExpectedResult *string `json:"expected_result"`
	Priority       *string `json:"priority"`
	Automated      *bool   `json:"automated"`
	Draft          *bool   `json:"draft"`
}

func validPriority(p string) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical:
		return true
	}
	return false
}

// List returns paginated test cases for a project with optional filters.
func (s *TestCaseService) List(projectID uint, req *TestCaseListRequest) (*TestCaseListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 50
	}

	query := s.db.Model(&models.TestCase{}).Where("project_id = ?", projectID)
	if req.SuiteID != nil {
		query = query.Where("suite_id = ?", *req.SuiteID)
	}
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+req.Keyword+"%")
	}
	if req.Draft != nil {
		query = query.Where("draft = ?", *req.Draft)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var cases []models.TestCase
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).
		Order("position ASC, id ASC").Find(&cases).Error; err != nil {
		return nil, err
	}

	return &TestCaseListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    cases,
	}, nil
}

// Create adds a manual test case at the end of its suite.
func (s *TestCaseService) Create(projectID uint, req *CreateTestCaseRequest, userID uint) (*models.TestCase, error) {
	var count int64
	if err := s.db.Model(&models.TestSuite{}).
		Where("id = ? AND project_id = ?", req.SuiteID, projectID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("suite %d not found in project", req.SuiteID)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, fmt.Errorf("invalid priority: %q", priority)
	}

	var maxPos int
	if err := s.db.Model(&models.TestCase{}).
		Where("suite_id = ?", req.SuiteID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error; err != nil {
		return nil, err
	}

	testCase := models.TestCase{
		ProjectID:      projectID,
		SuiteID:        req.SuiteID,
		Title:          req.Title,
		Description:    req.Description,
		Preconditions:  req.Preconditions,
		Steps:          req.Steps,
		ExpectedResult: req.ExpectedResult,
		Priority:       priority,
		Automated:      req.Automated,
		Source:         models.CaseSourceManual,
		Position:       maxPos + 1,
		CreatedBy:      userID,
	}
	if err := s.db.Create(&testCase).Error; err != nil {
		return nil, err
	}
	return &testCase, nil
}

// GetByID returns a test case by ID.
func (s *TestCaseService) GetByID(id uint) (*models.TestCase, error) {
	var testCase models.TestCase
	if err := s.db.First(&testCase, id).Error; err != nil {
		return nil, err
	}
	return &testCase, nil
}

// Update applies a partial edit. Clearing Draft is how an AI-generated
// case gets accepted into the suite.
func (s *TestCaseService) Update(id uint, req *UpdateTestCaseRequest) (*models.TestCase, error) {
	var testCase models.TestCase
	if err := s.db.First(&testCase, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.SuiteID != nil {
		var count int64
		if err := s.db.Model(&models.TestSuite{}).
			Where("id = ? AND project_id = ?", *req.SuiteID, testCase.ProjectID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("suite %d not found in project", *req.SuiteID)
		}
		updates["suite_id"] = *req.SuiteID
	}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, errors.New("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Preconditions != nil {
		updates["preconditions"] = *req.Preconditions
	}
	if req.Steps != nil {
		updates["steps"] = *req.Steps
	}
	if req.ExpectedResult != nil {
		updates["expected_result"] = *req.ExpectedResult
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, fmt.Errorf("invalid priority: %q", *req.Priority)
		}
		updates["priority"] = *req.Priority
	}
	if req.Automated != nil {
		updates["automated"] = *req.Automated
	}
	if req.Draft != nil {
		updates["draft"] = *req.Draft
	}
	if len(updates) == 0 {
		return &testCase, nil
	}

	if err := s.db.Model(&testCase).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &testCase, nil
}

// Delete removes a test case. Run history keeps its snapshot titles.
func (s *TestCaseService) Delete(id uint) error {
	result := s.db.Delete(&models.TestCase{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("test case %d not found", id)
	}
	return nil
}

// BulkDelete removes several cases of one project in a single statement.
func (s *TestCaseService) BulkDelete(projectID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("no test cases selected")
	}
	result := s.db.Where("project_id = ? AND id IN ?", projectID, ids).Delete(&models.TestCase{})
	return result.RowsAffected, result.Error
}
