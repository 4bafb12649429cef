package services

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

// Scheduler runs the periodic maintenance jobs: system log retention,
// expired refresh token purging, and orphaned attachment sweeping.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers the maintenance jobs and starts the cron loop. Cleanup
// also runs once immediately so a long-stopped instance catches up.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.runMaintenance); err != nil {
		return err
	}
	go s.runMaintenance()
	s.cron.Start()
	logger.Infof("[Scheduler] Maintenance scheduled daily at 03:00")
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runMaintenance() {
	s.cleanupLogs()
	s.purgeExpiredRefreshTokens()
	s.sweepOrphanedAttachments()
}

func (s *Scheduler) cleanupLogs() {
	logSvc := NewSystemLogService(s.db)
	retentionDays := logSvc.GetRetentionDays()
	if retentionDays <= 0 {
		logger.Infof("[Scheduler] Log cleanup disabled (retention_days <= 0)")
		return
	}

	deleted, err := logSvc.CleanupOldLogs(retentionDays)
	if err != nil {
		logger.Errorf("[Scheduler] Failed to cleanup old logs: %v", err)
		return
	}
	if deleted > 0 {
		logger.Infof("[Scheduler] Cleaned up %d logs older than %d days", deleted, retentionDays)
	}
}

// purgeExpiredRefreshTokens hard-deletes tokens that expired over 30 days
// ago; recently expired ones are kept for reuse detection.
func (s *Scheduler) purgeExpiredRefreshTokens() {
	cutoff := time.Now().AddDate(0, 0, -30)
	result := s.db.Where("expires_at < ?", cutoff).Delete(&models.RefreshToken{})
	if result.Error != nil {
		logger.Errorf("[Scheduler] Failed to purge refresh tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Infof("[Scheduler] Purged %d expired refresh tokens", result.RowsAffected)
	}
}

// sweepOrphanedAttachments removes attachment records and files whose
// owning entity has been deleted.
func (s *Scheduler) sweepOrphanedAttachments() {
	owners := map[string]interface{}{
		models.AttachmentOwnerTestCase:  &models.TestCase{},
		models.AttachmentOwnerBugReport: &models.BugReport{},
		models.AttachmentOwnerDocument:  &models.Document{},
		models.AttachmentOwnerChecklist: &models.Checklist{},
	}

	var swept int64
	for ownerType, model := range owners {
		var orphans []models.Attachment
		sub := s.db.Model(model).Select("id")
		if err := s.db.Where("owner_type = ? AND owner_id NOT IN (?)", ownerType, sub).
			Find(&orphans).Error; err != nil {
			logger.Errorf("[Scheduler] Orphan scan failed for %s attachments: %v", ownerType, err)
			continue
		}

		for _, a := range orphans {
			if err := s.db.Unscoped().Delete(&a).Error; err != nil {
				logger.Errorf("[Scheduler] Failed to delete attachment %s: %v", a.OwnerRef(), err)
				continue
			}
			if err := os.Remove(a.StoragePath); err != nil && !os.IsNotExist(err) {
				logger.Errorf("[Scheduler] Failed to remove file for attachment %s: %v", a.OwnerRef(), err)
			}
			swept++
		}
	}

	if swept > 0 {
		logger.Infof("[Scheduler] Swept %d orphaned attachments", swept)
	}
}
