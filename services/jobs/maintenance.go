package jobs

import (
	"context"
	"fmt"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/services"
	"minicakes_app_go/services/page"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionEntryMaxAge bounds how long stored fingerprints outlive their pages
const SessionEntryMaxAge = 24 * time.Hour

const monitorCleanupSchedule = "@every 10m"

// StartScheduler registers the maintenance jobs and starts the cron runner.
// Callers stop it with Stop() on shutdown.
func StartScheduler(cfg *config.Config, database *gorm.DB, pages *page.Manager) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := c.AddFunc(cfg.ExpirePagesSchedule, func() {
		ExpireIdlePages(context.Background(), pages)
	}); err != nil {
		return nil, fmt.Errorf("invalid page expiry schedule %q: %w", cfg.ExpirePagesSchedule, err)
	}

	if _, err := c.AddFunc(cfg.CleanupEntriesSchedule, func() {
		CleanupSessionEntries(database)
	}); err != nil {
		return nil, fmt.Errorf("invalid session cleanup schedule %q: %w", cfg.CleanupEntriesSchedule, err)
	}

	if _, err := c.AddFunc(monitorCleanupSchedule, services.Monitor.Cleanup); err != nil {
		return nil, fmt.Errorf("invalid monitor cleanup schedule: %w", err)
	}

	c.Start()
	zap.L().Info("[CRON] Scheduler started",
		zap.String("expire_pages", cfg.ExpirePagesSchedule),
		zap.String("cleanup_entries", cfg.CleanupEntriesSchedule),
	)
	return c, nil
}

// ExpireIdlePages unloads pages nobody has touched within the idle timeout
func ExpireIdlePages(ctx context.Context, pages *page.Manager) int {
	n := pages.Expire(ctx)
	if n > 0 {
		zap.L().Info("[JOB] Expired idle page sessions", zap.Int("count", n), zap.Int("live", pages.Len()))
	}
	return n
}

// CleanupSessionEntries drops stored session items older than SessionEntryMaxAge
func CleanupSessionEntries(database *gorm.DB) {
	if err := services.CleanupStaleSessionEntries(database, SessionEntryMaxAge); err != nil {
		zap.L().Warn("[JOB] Error cleaning up session entries", zap.Error(err))
	}
}
