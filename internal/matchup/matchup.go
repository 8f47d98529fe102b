// Package matchup runs the per-matchup pipeline: pick the day's upcoming
// games, resolve both teams, compute analytics over the season history and
// hand each result to a sink. One matchup's failure never stops the others.
package matchup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
)

// ErrSameTeam is returned when both names of a matchup resolve to one team.
var ErrSameTeam = errors.New("both names resolve to the same team")

// Resolver maps free text to a canonical team.
type Resolver interface {
	Resolve(ctx context.Context, name string) (provider.Team, error)
}

// Sink consumes finished analytics, e.g. a report writer.
type Sink interface {
	Write(ctx context.Context, r analytics.Result) error
}

// Result tracks the outcome of a single matchup.
type Result struct {
	GameID    int               `json:"game_id"`
	HomeName  string            `json:"home_name"`
	AwayName  string            `json:"away_name"`
	Analytics *analytics.Result `json:"analytics,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Duration  time.Duration     `json:"-"`

	// Err keeps the typed error for callers that map it (HTTP status, exit code).
	Err error `json:"-"`
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	status := "ok"
	if !r.Success {
		status = "FAILED"
	}
	noData := 0
	if r.Analytics != nil {
		noData = len(r.Analytics.NoData)
	}
	return fmt.Sprintf("game=%d home=%q away=%q no_data_sections=%d status=%s dur=%s",
		r.GameID, r.HomeName, r.AwayName, noData, status, r.Duration.Round(time.Millisecond))
}

// RunResult tracks the outcome of a full run over one date.
type RunResult struct {
	Date          time.Time     `json:"date"`
	MatchupsFound int           `json:"matchups_found"`
	Processed     int           `json:"processed"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	Duration      time.Duration `json:"-"`
	Errors        []string      `json:"errors,omitempty"`
	Results       []Result      `json:"results"`
}

// Summary returns a human-readable summary.
func (r *RunResult) Summary() string {
	return fmt.Sprintf(
		"date=%s found=%d processed=%d succeeded=%d failed=%d dur=%s",
		r.Date.Format(provider.DateLayout), r.MatchupsFound, r.Processed,
		r.Succeeded, r.Failed, r.Duration.Round(time.Millisecond))
}
