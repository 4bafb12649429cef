package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type TestRunService struct {
	db *gorm.DB
}

func NewTestRunService(db *gorm.DB) *TestRunService {
	return &TestRunService{db: db}
}

type TestRunListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Title    string `form:"title"`
}

type TestRunListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.TestRun `json:"items"`
}

type CreateTestRunRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SuiteIDs    []uint `json:"suite_ids"`    // include all cases of these suites
	CaseIDs     []uint `json:"case_ids"`     // plus these individual cases
	ChecklistID *uint  `json:"checklist_id"` // or seed from a checklist instead
}

type UpdateCaseStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type BulkUpdateStatusRequest struct {
	CaseIDs []uint `json:"case_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// List returns paginated test runs for a project.
func (s *TestRunService) List(projectID uint, req *TestRunListRequest) (*TestRunListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var runs []models.TestRun
	var total int64

	query := s.db.Model(&models.TestRun{}).Where("project_id = ?", projectID)
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}

	return &TestRunListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    runs,
	}, nil
}

// GetByID returns a test run by ID.
func (s *TestRunService) GetByID(id uint) (*models.TestRun, error) {
	var run models.TestRun
	if err := s.db.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// ListCases returns all run cases for a run.
func (s *TestRunService) ListCases(runID uint) ([]models.TestRunCase, error) {
	var cases []models.TestRunCase
	if err := s.db.Where("test_run_id = ?", runID).Order("id ASC").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase returns one run case, scoped to the run.
func (s *TestRunService) GetCase(runID, caseID uint) (*models.TestRunCase, error) {
	var runCase models.TestRunCase
	if err := s.db.Where("test_run_id = ?", runID).First(&runCase, caseID).Error; err != nil {
		return nil, err
	}
	return &runCase, nil
}

// Create creates a test run and snapshots its cases from the selected
// suites and cases, or from a checklist's items. Checklist-sourced run
// cases carry no TestCaseID.
func (s *TestRunService) Create(projectID uint, req *CreateTestRunRequest, userID uint) (*models.TestRun, error) {
	run := models.TestRun{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		ChecklistID: req.ChecklistID,
		Stats:       models.StatusCounts{},
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		var runCases []models.TestRunCase

		if req.ChecklistID != nil {
			// The checklist id comes from the request body; it must live in
			// the same project the caller was authorized for.
			var checklist models.Checklist
			err := tx.Where("id = ? AND project_id = ?", *req.ChecklistID, projectID).
				First(&checklist).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("checklist %d not found in project", *req.ChecklistID)
			}
			if err != nil {
				return err
			}

			var items []models.ChecklistItem
			if err := tx.Where("checklist_id = ?", checklist.ID).
				Order("position ASC, id ASC").Find(&items).Error; err != nil {
				return err
			}
			if len(items) == 0 {
				return errors.New("checklist has no items")
			}
			for _, item := range items {
				runCases = append(runCases, models.TestRunCase{
					TestRunID: run.ID,
					Title:     item.Text,
					Status:    string(models.StatusUntested),
				})
			}
		} else {
			cases, err := s.collectCases(tx, projectID, req.SuiteIDs, req.CaseIDs)
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				return errors.New("no test cases selected")
			}
			for _, tc := range cases {
				id := tc.ID
				runCases = append(runCases, models.TestRunCase{
					TestRunID:  run.ID,
					TestCaseID: &id,
					Title:      tc.Title,
					Status:     string(models.StatusUntested),
				})
			}
		}

		if err := tx.Create(&runCases).Error; err != nil {
			return err
		}

		run.Stats = models.StatusCounts{string(models.StatusUntested): len(runCases)}
		return tx.Model(&run).Updates(map[string]interface{}{
			"progress": 0,
			"stats":    run.Stats,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// collectCases gathers the distinct, non-draft cases from the given suites
// plus the individually selected cases, all scoped to the project.
func (s *TestRunService) collectCases(tx *gorm.DB, projectID uint, suiteIDs, caseIDs []uint) ([]models.TestCase, error) {
	var cases []models.TestCase

	if len(suiteIDs) > 0 {
		var suiteCases []models.TestCase
		if err := tx.Where("project_id = ? AND suite_id IN ? AND draft = ?", projectID, suiteIDs, false).
			Order("position ASC, id ASC").Find(&suiteCases).Error; err != nil {
			return nil, err
		}
		cases = append(cases, suiteCases...)
	}

	if len(caseIDs) > 0 {
		var picked []models.TestCase
		if err := tx.Where("project_id = ? AND id IN ?", projectID, caseIDs).
			Find(&picked).Error; err != nil {
			return nil, err
		}
		cases = append(cases, picked...)
	}

	seen := make(map[uint]bool, len(cases))
	distinct := cases[:0]
	for _, tc := range cases {
		if !seen[tc.ID] {
			seen[tc.ID] = true
			distinct = append(distinct, tc)
		}
	}
	return distinct, nil
}

// UpdateCaseStatus sets one run case's status and refreshes the run's
// derived fields.
func (s *TestRunService) UpdateCaseStatus(runCaseID uint, req *UpdateCaseStatusRequest, userID uint) (*models.TestRunCase, error) {
	status, err := models.ParseCaseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var runCase models.TestRunCase
	if err := s.db.First(&runCase, runCaseID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     string(status),
		"updated_by": userID,
	}
	if req.Comment != "" {
		updates["comment"] = req.Comment
	}
	if err := s.db.Model(&runCase).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.RefreshAggregates(runCase.TestRunID); err != nil {
		return nil, err
	}
	return &runCase, nil
}

// BulkUpdateStatus sets the status of many run cases in one statement and
// refreshes the run's derived fields once for the whole batch.
func (s *TestRunService) BulkUpdateStatus(runID uint, req *BulkUpdateStatusRequest, userID uint) (int64, error) {
	status, err := models.ParseCaseStatus(req.Status)
	if err != nil {
		return 0, err
	}
	if len(req.CaseIDs) == 0 {
		return 0, errors.New("no run cases selected")
	}

	result := s.db.Model(&models.TestRunCase{}).
		Where("test_run_id = ? AND id IN ?", runID, req.CaseIDs).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_by": userID,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if err := s.RefreshAggregates(runID); err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}

// Close marks a run closed; derived fields are left as-is.
func (s *TestRunService) Close(runID uint) (*models.TestRun, error) {
	var run models.TestRun
	if err := s.db.First(&run, runID).Error; err != nil {
		return nil, err
	}
	if run.ClosedAt != nil {
		return &run, nil
	}
	now := time.Now()
	if err := s.db.Model(&run).Update("closed_at", now).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes a run and its cases.
func (s *TestRunService) Delete(runID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_run_id = ?", runID).Delete(&models.TestRunCase{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TestRun{}, runID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("test run %d not found", runID)
		}
		return nil
	})
}

// RefreshAggregates recomputes both derived fields from the run's current
// cases. Idempotent; callers batching case mutations should call this once
// after the batch.
func (s *TestRunService) RefreshAggregates(runID uint) error {
	if err := s.RefreshProgress(runID); err != nil {
		return err
	}
	return s.RefreshStats(runID)
}

// RefreshProgress recomputes the run's completion percentage. An empty run
// has progress 0 by convention; untested and retest cases do not count as
// completed.
func (s *TestRunService) RefreshProgress(runID uint) error {
	var total, completed int64

	if err := s.db.Model(&models.TestRunCase{}).
		Where("test_run_id = ?", runID).
		Count(&total).Error; err != nil {
		return err
	}

	if total > 0 {
		if err := s.db.Model(&models.TestRunCase{}).
			Where("test_run_id = ? AND status IN ?", runID, []string{
				string(models.StatusPassed),
				string(models.StatusFailed),
				string(models.StatusBlocked),
				string(models.StatusSkipped),
			}).
			Count(&completed).Error; err != nil {
			return err
		}
	}

	progress := computeProgress(completed, total)
	return s.db.Model(&models.TestRun{}).
		Where("id = ?", runID).
		Update("progress", progress).Error
}

// RefreshStats recomputes the run's sparse status→count map. Statuses with
// zero occurrences are omitted.
func (s *TestRunService) RefreshStats(runID uint) error {
	var rows []struct {
		Status string
		Count  int
	}
	if err := s.db.Model(&models.TestRunCase{}).
		Select("status, COUNT(*) as count").
		Where("test_run_id = ?", runID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return err
	}

	stats := models.StatusCounts{}
	for _, row := range rows {
		stats[row.Status] = row.Count
	}

	return s.db.Model(&models.TestRun{}).
		Where("id = ?", runID).
		Update("stats", stats).Error
}

// computeProgress returns the completion percentage, round-half-up to the
// nearest integer. Zero total yields zero.
func computeProgress(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
