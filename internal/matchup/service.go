package matchup

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/schedule"
)

// Service loads the season-to-date schedule for a date and runs the
// pipeline over it. The CLI and the HTTP API both go through it.
type Service struct {
	source      provider.ScheduleProvider
	pipeline    *Pipeline
	seasonStart time.Time
	logger      *slog.Logger
}

// NewService creates a Service reading games from source starting at
// seasonStart.
func NewService(source provider.ScheduleProvider, pipeline *Pipeline, seasonStart time.Time, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:      source,
		pipeline:    pipeline,
		seasonStart: provider.Date(seasonStart),
		logger:      logger,
	}
}

// Schedule loads every game from the season start through date.
func (s *Service) Schedule(ctx context.Context, date time.Time) (*schedule.Schedule, error) {
	day := provider.Date(date)
	return schedule.Load(ctx, s.source, s.startFor(day), day, s.logger)
}

// startFor keeps the configured season start unless date falls before it,
// in which case the season of date's own year is used.
func (s *Service) startFor(day time.Time) time.Time {
	if !day.Before(s.seasonStart) {
		return s.seasonStart
	}
	start := time.Date(day.Year(), time.March, 1, 0, 0, 0, 0, time.UTC)
	if day.Before(start) {
		return day
	}
	return start
}

// Run analyzes every upcoming game on date.
func (s *Service) Run(ctx context.Context, date time.Time) (RunResult, error) {
	sched, err := s.Schedule(ctx, date)
	if err != nil {
		return RunResult{}, err
	}
	return s.pipeline.Run(ctx, sched, date), nil
}

// Matchup analyzes two named teams over history up to date.
func (s *Service) Matchup(ctx context.Context, nameA, nameB string, date time.Time) (analytics.Result, error) {
	sched, err := s.Schedule(ctx, date)
	if err != nil {
		return analytics.Result{}, err
	}
	return s.pipeline.Matchup(ctx, sched, nameA, nameB, date)
}
