// Package maintenance runs periodic background tasks for the API server as
// Go tickers: keep the recent part of the games table fresh and drop games
// past retention.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/major-league-insights/internal/config"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/store"
)

// Pool is the database surface the tasks use. db.Pool satisfies it.
type Pool interface {
	store.Querier
	store.Execer
}

// Config controls task intervals. Zero duration disables a task.
type Config struct {
	SyncInterval  time.Duration // re-fetch recent games from upstream
	SyncLookback  int           // days before today each sync covers
	PurgeInterval time.Duration // delete games older than Retain days
	Retain        int

	// AfterSync runs after a sync that wrote at least one game, e.g. to
	// drop cached responses built from older scores.
	AfterSync func()
}

// ConfigFrom builds a Config from application settings.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		SyncInterval:  cfg.SyncInterval,
		SyncLookback:  cfg.SyncLookback,
		PurgeInterval: cfg.PurgeInterval,
		Retain:        cfg.RetainDays,
	}
}

// Runner holds task dependencies.
type Runner struct {
	pool   Pool
	src    provider.ScheduleProvider
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Runner that syncs from src into pool.
func New(pool Pool, src provider.ScheduleProvider, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{pool: pool, src: src, cfg: cfg, logger: logger, now: time.Now}
}

// Start launches all configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("Maintenance tickers started",
		"sync", r.cfg.SyncInterval,
		"lookback_days", r.cfg.SyncLookback,
		"purge", r.cfg.PurgeInterval,
		"retain_days", r.cfg.Retain)

	var syncC, purgeC <-chan time.Time
	if r.cfg.SyncInterval > 0 {
		t := time.NewTicker(r.cfg.SyncInterval)
		defer t.Stop()
		syncC = t.C
	}
	if r.cfg.PurgeInterval > 0 && r.cfg.Retain > 0 {
		t := time.NewTicker(r.cfg.PurgeInterval)
		defer t.Stop()
		purgeC = t.C
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Maintenance tickers stopped")
			return
		case <-syncC:
			r.SyncRecent(ctx)
		case <-purgeC:
			r.Purge(ctx)
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// SyncRecent re-fetches the last SyncLookback days through today, which
// picks up final scores and postponements.
func (r *Runner) SyncRecent(ctx context.Context) {
	today := provider.Date(r.now())
	start := today.AddDate(0, 0, -r.cfg.SyncLookback)

	res, err := store.Sync(ctx, r.pool, r.src, start, today, r.logger)
	if err != nil {
		r.logger.Warn("Sync: failed", "error", err)
		return
	}
	if res.Upserted > 0 && r.cfg.AfterSync != nil {
		r.cfg.AfterSync()
	}
}

// Purge deletes games older than the retention window.
func (r *Runner) Purge(ctx context.Context) {
	cutoff := provider.Date(r.now()).AddDate(0, 0, -r.cfg.Retain)
	n, err := store.PurgeBefore(ctx, r.pool, cutoff)
	if err != nil {
		r.logger.Warn("Purge: failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("Purge: deleted old games", "count", n, "before", cutoff.Format(provider.DateLayout))
	}
}
