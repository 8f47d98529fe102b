// Package schedule holds the season schedule: an immutable, date-ordered
// snapshot of game records that every analytics computation reads from.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
)

// Schedule is a read-only, date-ordered set of games. It is safe for
// concurrent readers.
type Schedule struct {
	games []provider.Game
}

// New copies and date-sorts games. A record where a team plays itself is
// rejected.
func New(games []provider.Game) (*Schedule, error) {
	sorted := slices.Clone(games)
	for _, g := range sorted {
		if g.HomeTeamID == g.AwayTeamID {
			return nil, fmt.Errorf("game %d: home and away team are both %d", g.ID, g.HomeTeamID)
		}
	}
	analytics.SortByDate(sorted)
	return &Schedule{games: sorted}, nil
}

// Load fetches start..end from p and builds a Schedule. Records where a
// team plays itself are logged and skipped so one bad upstream row does not
// sink the whole snapshot.
func Load(ctx context.Context, p provider.ScheduleProvider, start, end time.Time, logger *slog.Logger) (*Schedule, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if end.Before(start) {
		return nil, fmt.Errorf("schedule end %s before start %s",
			end.Format(provider.DateLayout), start.Format(provider.DateLayout))
	}
	games, err := p.FetchSchedule(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	s, err := New(dropSelfMatches(games, logger))
	if err != nil {
		return nil, err
	}
	logger.Info("Schedule loaded", "games", s.Len(), "completed", len(s.Completed()))
	return s, nil
}

func dropSelfMatches(games []provider.Game, logger *slog.Logger) []provider.Game {
	out := make([]provider.Game, 0, len(games))
	for _, g := range games {
		if g.HomeTeamID == g.AwayTeamID {
			logger.Warn("Skipping game with same home and away team",
				"game_id", g.ID, "team_id", g.HomeTeamID, "date", g.Date.Format(provider.DateLayout))
			continue
		}
		out = append(out, g)
	}
	return out
}

// Len returns the number of games.
func (s *Schedule) Len() int {
	return len(s.games)
}

// Games returns a copy of every game in date order.
func (s *Schedule) Games() []provider.Game {
	return slices.Clone(s.games)
}

// Completed returns games with both scores present.
func (s *Schedule) Completed() []provider.Game {
	return analytics.CompletedGames(s.games)
}

// On returns every game played or scheduled on date.
func (s *Schedule) On(date time.Time) []provider.Game {
	day := provider.Date(date)
	var out []provider.Game
	for _, g := range s.games {
		if g.Date.Equal(day) {
			out = append(out, g)
		}
	}
	return out
}

// Upcoming returns the not-yet-played games on date.
func (s *Schedule) Upcoming(date time.Time) []provider.Game {
	var out []provider.Game
	for _, g := range s.On(date) {
		if !g.Completed() {
			out = append(out, g)
		}
	}
	return out
}

// History returns completed games dated on or before date.
func (s *Schedule) History(date time.Time) []provider.Game {
	day := provider.Date(date)
	var out []provider.Game
	for _, g := range s.games {
		if g.Completed() && !g.Date.After(day) {
			out = append(out, g)
		}
	}
	return out
}
