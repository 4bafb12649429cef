package services

import (
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type BugService struct {
	db *gorm.DB
}

func NewBugService(db *gorm.DB) *BugService {
	return &BugService{db: db}
}

type BugListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Status   string `form:"status"`
	Severity string `form:"severity"`
	Keyword  string `form:"keyword"`
}

type BugListResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Items    []models.BugReport `json:"items"`
}

type CreateBugRequest struct {
	Title         string `json:"title" binding:"required,max=300"`
	Description   string `json:"description"`
	StepsToRepro  string `json:"steps_to_repro"`
	Severity      string `json:"severity"`
	AssigneeID    *uint  `json:"assignee_id"`
	TestRunCaseID *uint  `json:"test_run_case_id"`
}

type UpdateBugRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	StepsToRepro *string `json:"steps_to_repro"`
	Severity     *string `json:"severity"`
	Status       *string `json:"status"`
	AssigneeID   *uint   `json:"assignee_id"`
}

func validSeverity(s string) bool {
	switch s {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical:
		return true
	}
	return false
}

func validBugStatus(s string) bool {
	switch s {
	case models.BugStatusOpen, models.BugStatusInProgress, models.BugStatusResolved, models.BugStatusClosed:
		return true
	}
	return false
}

// List returns paginated bug reports for a project with optional filters.
func (s *BugService) List(projectID uint, req *BugListRequest) (*BugListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.BugReport{}).Where("project_id = ?", projectID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Severity != "" {
		query = query.Where("severity = ?", req.Severity)
	}
	if req.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+req.Keyword+"%")
	}

	var total int64
	query.Count(&total)

	var bugs []models.BugReport
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").Find(&bugs).Error; err != nil {
		return nil, err
	}

	return &BugListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    bugs,
	}, nil
}

// Create files a bug report, optionally linked to the failing run case.
func (s *BugService) Create(projectID uint, req *CreateBugRequest, reporterID uint) (*models.BugReport, error) {
	severity := req.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !validSeverity(severity) {
		return nil, fmt.Errorf("invalid severity: %q", severity)
	}

	if req.TestRunCaseID != nil {
		var count int64
		if err := s.db.Model(&models.TestRunCase{}).
			Joins("JOIN test_runs ON test_runs.id = test_run_cases.test_run_id").
			Where("test_run_cases.id = ? AND test_runs.project_id = ?", *req.TestRunCaseID, projectID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("run case %d not found in project", *req.TestRunCaseID)
		}
	}

	bug := models.BugReport{
		ProjectID:     projectID,
		Title:         req.Title,
		Description:   req.Description,
		StepsToRepro:  req.StepsToRepro,
		Severity:      severity,
		Status:        models.BugStatusOpen,
		ReporterID:    reporterID,
		AssigneeID:    req.AssigneeID,
		TestRunCaseID: req.TestRunCaseID,
	}
	if err := s.db.Create(&bug).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// GetByID returns a bug report by ID.
func (s *BugService) GetByID(id uint) (*models.BugReport, error) {
	var bug models.BugReport
	if err := s.db.First(&bug, id).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// Update applies a partial edit to a bug report.
func (s *BugService) Update(id uint, req *UpdateBugRequest) (*models.BugReport, error) {
	var bug models.BugReport
	if err := s.db.First(&bug, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StepsToRepro != nil {
		updates["steps_to_repro"] = *req.StepsToRepro
	}
	if req.Severity != nil {
		if !validSeverity(*req.Severity) {
			return nil, fmt.Errorf("invalid severity: %q", *req.Severity)
		}
		updates["severity"] = *req.Severity
	}
	if req.Status != nil {
		if !validBugStatus(*req.Status) {
			return nil, fmt.Errorf("invalid bug status: %q", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}
	if len(updates) == 0 {
		return &bug, nil
	}

	if err := s.db.Model(&bug).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// Delete removes a bug report.
func (s *BugService) Delete(id uint) error {
	result := s.db.Delete(&models.BugReport{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bug report %d not found", id)
	}
	return nil
}
