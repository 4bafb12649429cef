package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

// GenerationService owns the lifecycle of AI test-case generation jobs:
// it records the job, hands it to the task queue, and processes it when
// the queue calls back.
type GenerationService struct {
	db        *gorm.DB
	aiService *AIService
	queue     TaskQueue
}

func NewGenerationService(db *gorm.DB, aiService *AIService, queue TaskQueue) *GenerationService {
	return &GenerationService{
		db:        db,
		aiService: aiService,
		queue:     queue,
	}
}

type CreateGenerationRequest struct {
	SuiteID uint   `json:"suite_id" binding:"required"`
	Feature string `json:"feature" binding:"required"`
}

// CreateJob records a pending job and enqueues it.
func (s *GenerationService) CreateJob(projectID uint, req *CreateGenerationRequest, userID uint) (*models.GenerationJob, error) {
	var count int64
	if err := s.db.Model(&models.TestSuite{}).
		Where("id = ? AND project_id = ?", req.SuiteID, projectID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("suite %d not found in project", req.SuiteID)
	}

	job := models.GenerationJob{
		ProjectID: projectID,
		SuiteID:   req.SuiteID,
		Feature:   req.Feature,
		Status:    models.JobPending,
		CreatedBy: userID,
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	task := &GenerationTask{
		JobID:     job.ID,
		ProjectID: projectID,
		SuiteID:   req.SuiteID,
		Feature:   req.Feature,
		UserID:    userID,
	}
	if err := s.queue.Enqueue(task); err != nil {
		s.markFailed(job.ID, "failed to enqueue: "+err.Error())
		return nil, err
	}

	return &job, nil
}

// Process executes one generation task. It is the processor registered on
// both the async worker and the sync queue.
func (s *GenerationService) Process(ctx context.Context, task *GenerationTask) error {
	if err := s.db.Model(&models.GenerationJob{}).
		Where("id = ? AND status = ?", task.JobID, models.JobPending).
		Update("status", models.JobRunning).Error; err != nil {
		return err
	}

	result, err := s.aiService.Generate(ctx, task.ProjectID, task.SuiteID, task.Feature)
	if err != nil {
		logger.Errorf("[Generation] Job %d failed: %v", task.JobID, err)
		s.markFailed(task.JobID, err.Error())
		return err
	}

	created, err := s.insertDrafts(task, result.Cases)
	if err != nil {
		logger.Errorf("[Generation] Job %d could not store cases: %v", task.JobID, err)
		s.markFailed(task.JobID, err.Error())
		return err
	}

	updates := map[string]interface{}{
		"status":        models.JobCompleted,
		"cases_created": created,
	}
	if result.AIConfigID != nil {
		updates["ai_config_id"] = *result.AIConfigID
	}
	if err := s.db.Model(&models.GenerationJob{}).
		Where("id = ?", task.JobID).
		Updates(updates).Error; err != nil {
		return err
	}

	logger.Infof("[Generation] Job %d completed: %d draft cases", task.JobID, created)
	return nil
}

// insertDrafts stores generated cases as drafts appended to the suite.
func (s *GenerationService) insertDrafts(task *GenerationTask, cases []GeneratedCase) (int, error) {
	var created int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&models.TestCase{}).
			Where("suite_id = ?", task.SuiteID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		for i, c := range cases {
			testCase := models.TestCase{
				ProjectID:      task.ProjectID,
				SuiteID:        task.SuiteID,
				Title:          c.Title,
				Preconditions:  c.Preconditions,
				Steps:          c.Steps,
				ExpectedResult: c.ExpectedResult,
				Priority:       c.Priority,
				Draft:          true,
				Source:         models.CaseSourceAI,
				Position:       maxPos + 1 + i,
				CreatedBy:      task.UserID,
			}
			if err := tx.Create(&testCase).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (s *GenerationService) markFailed(jobID uint, message string) {
	if err := s.db.Model(&models.GenerationJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":        models.JobFailed,
			"error_message": message,
		}).Error; err != nil {
		logger.Errorf("[Generation] Failed to mark job %d failed: %v", jobID, err)
	}
}

// List returns a project's generation jobs, newest first.
func (s *GenerationService) List(projectID uint) ([]models.GenerationJob, error) {
	var jobs []models.GenerationJob
	if err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Limit(50).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByID returns a generation job.
func (s *GenerationService) GetByID(id uint) (*models.GenerationJob, error) {
	var job models.GenerationJob
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
