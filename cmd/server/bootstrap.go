package main

import (
	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/internal/utils"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

// appServices holds the long-lived services the application needs beyond
// request handling: the task queue, the async worker and the maintenance
// scheduler.
type appServices struct {
	generationService *services.GenerationService
	taskQueue         services.TaskQueue
	worker            *services.Worker
	scheduler         *services.Scheduler
}

// bootstrap initializes all application dependencies: database, queue,
// worker, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()
	services.InitSystemLogger(db)

	// Task queue uses Redis if enabled, otherwise runs jobs in-process.
	aiService := services.NewAIService(db, &cfg.OpenAI)
	taskQueue := services.InitTaskQueue(cfg)
	generationService := services.NewGenerationService(db, aiService, taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(generationService.Process)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(generationService.Process)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start async worker")
				worker = nil
			}
		}
	}

	scheduler := services.NewScheduler(db)
	if err := scheduler.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start maintenance scheduler")
	}

	return &appServices{
		generationService: generationService,
		taskQueue:         taskQueue,
		worker:            worker,
		scheduler:         scheduler,
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	s.scheduler.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All background services stopped")
}
