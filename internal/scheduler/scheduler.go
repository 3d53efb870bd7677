// Package scheduler drives the periodic sync passes: a fixed interval, a
// set of daily wall-clock times, and an optional run at startup. A failing
// pass never stops the schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"treasuryhub/internal/config"
	"treasuryhub/internal/models"
)

// Syncer is the single job the scheduler knows how to trigger.
type Syncer interface {
	Sync(ctx context.Context, syncType string) bool
}

type Runner struct {
	cron    *cron.Cron
	syncer  Syncer
	cfg     config.SyncConfig
	logger  *zap.Logger
	baseCtx context.Context
}

func New(cfg config.SyncConfig, syncer Syncer, logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(),
		syncer:  syncer,
		cfg:     cfg,
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Start registers the interval and daily entries and starts the schedule.
// When RunOnStartup is set, one pass runs synchronously first so the store
// is populated before the first request.
func (r *Runner) Start() error {
	if !r.cfg.Enabled {
		r.logger.Info("scheduler disabled")
		return nil
	}

	if _, err := r.add(fmt.Sprintf("@every %s", r.cfg.Interval), models.SyncTypeAuto); err != nil {
		return fmt.Errorf("interval entry: %w", err)
	}
	for _, at := range r.cfg.DailyTimes {
		spec, err := dailySpec(at)
		if err != nil {
			return fmt.Errorf("daily entry %q: %w", at, err)
		}
		if _, err := r.add(spec, models.SyncTypeScheduled); err != nil {
			return fmt.Errorf("daily entry %q: %w", at, err)
		}
	}

	if r.cfg.RunOnStartup {
		r.run(r.baseCtx, models.SyncTypeStartup)
	}

	r.cron.Start()
	r.logger.Info("scheduler started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Strings("daily_times", r.cfg.DailyTimes))
	return nil
}

func (r *Runner) add(spec, syncType string) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		r.run(r.baseCtx, syncType)
	})
}

// run isolates one tick: a panic inside a pass is logged and absorbed.
func (r *Runner) run(ctx context.Context, syncType string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("sync pass panicked",
				zap.String("sync_type", syncType),
				zap.Any("panic", rec))
		}
	}()
	r.syncer.Sync(ctx, syncType)
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("scheduler stopped")
}

// dailySpec converts "HH:MM" into a cron expression for that wall-clock
// time every day.
func dailySpec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
