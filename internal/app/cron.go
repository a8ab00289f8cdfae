package app

import (
	"context"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/modules/processing/summarize"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	pkgcron "github.com/biulino/ai-summary-plugin/internal/pkg/cron"
	"go.uber.org/zap"
)

func registerCronJobs(sched *pkgcron.Scheduler, store *summarize.Store, settingsSvc *settings.Service, logger *zap.Logger) {
	sched.Register(pkgcron.Job{
		Name:        "response_cache_sweep",
		Description: "Purge leftover raw provider responses from the cache",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := store.SweepResponseCache(ctx)
			if err != nil {
				return err
			}
			logger.Info("response cache swept", zap.Int64("deleted", deleted))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "settings_reload",
		Description: "Drop the in-process settings cache so external writes are picked up",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			settingsSvc.Invalidate()
			return nil
		},
	})
}
