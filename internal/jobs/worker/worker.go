package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type TenantLister interface {
	ListTenantIDs(dbc dbctx.Context) ([]uuid.UUID, error)
}

type InsightRefresher interface {
	RefreshTenant(ctx context.Context, tenantID uuid.UUID) (*services.InsightReport, error)
}

type Config struct {
	// Schedule is a standard five-field cron expression, evaluated in UTC.
	Schedule    string
	Concurrency int
	// TenantTimeout bounds one tenant's refresh.
	TenantTimeout time.Duration
}

type RunStats struct {
	Tenants   int
	Refreshed int
	Failed    int
}

// Worker regenerates every tenant's daily insight snapshot on a cron schedule.
type Worker struct {
	log       *logger.Logger
	tenants   TenantLister
	refresher InsightRefresher
	cfg       Config
	cron      *cron.Cron
	running   atomic.Bool
}

func NewWorker(baseLog *logger.Logger, tenants TenantLister, refresher InsightRefresher, cfg Config) *Worker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.TenantTimeout <= 0 {
		cfg.TenantTimeout = 2 * time.Minute
	}
	return &Worker{
		log:       baseLog.With("component", "InsightRefreshWorker"),
		tenants:   tenants,
		refresher: refresher,
		cfg:       cfg,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start registers the schedule and starts the cron loop. Runs stop when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	if w.cfg.Schedule == "" {
		w.log.Info("Insight refresh schedule not set; worker disabled")
		return nil
	}
	_, err := w.cron.AddFunc(w.cfg.Schedule, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.RunOnce(ctx); err != nil {
			w.log.Warn("Scheduled insight refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid insight refresh schedule %q: %w", w.cfg.Schedule, err)
	}
	w.cron.Start()
	w.log.Info("Insight refresh worker started", "schedule", w.cfg.Schedule, "concurrency", w.cfg.Concurrency)
	return nil
}

// Stop waits for a running refresh to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("Insight refresh worker stopped")
}

// RunOnce refreshes all tenants with bounded parallelism. A tenant failure is logged and
// counted; it does not stop the others. Overlapping runs are skipped.
func (w *Worker) RunOnce(ctx context.Context) (RunStats, error) {
	var stats RunStats
	if !w.running.CompareAndSwap(false, true) {
		w.log.Warn("Insight refresh already running; skipping")
		return stats, nil
	}
	defer w.running.Store(false)

	started := time.Now()
	ids, err := w.tenants.ListTenantIDs(dbctx.Context{Ctx: ctx})
	if err != nil {
		return stats, fmt.Errorf("list tenants: %w", err)
	}
	stats.Tenants = len(ids)

	var refreshed, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(gctx, w.cfg.TenantTimeout)
			defer cancel()
			if _, err := w.refresher.RefreshTenant(tctx, id); err != nil {
				failed.Add(1)
				w.log.Warn("Tenant insight refresh failed", "tenant_id", id, "error", err)
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	stats.Refreshed = int(refreshed.Load())
	stats.Failed = int(failed.Load())
	w.log.Info("Insight refresh complete",
		"tenants", stats.Tenants,
		"refreshed", stats.Refreshed,
		"failed", stats.Failed,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return stats, ctx.Err()
}
