package matchup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/schedule"
)

// Pipeline processes matchups against a shared schedule snapshot.
type Pipeline struct {
	resolver Resolver
	sink     Sink
	windows  analytics.Windows
	workers  int
	logger   *slog.Logger
}

// Options configures a Pipeline. Sink may be nil when results are only
// returned to the caller. An empty Windows section uses the default windows.
type Options struct {
	Resolver Resolver
	Sink     Sink
	Windows  analytics.Windows
	Workers  int
	Logger   *slog.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	opts.Windows = withDefaultWindows(opts.Windows)
	return &Pipeline{
		resolver: opts.Resolver,
		sink:     opts.Sink,
		windows:  opts.Windows,
		workers:  opts.Workers,
		logger:   opts.Logger,
	}
}

// withDefaultWindows fills each empty section from analytics.DefaultWindows.
func withDefaultWindows(w analytics.Windows) analytics.Windows {
	def := analytics.DefaultWindows()
	if len(w.League) == 0 {
		w.League = def.League
	}
	if len(w.TeamRuns) == 0 {
		w.TeamRuns = def.TeamRuns
	}
	if len(w.Records) == 0 {
		w.Records = def.Records
	}
	if len(w.HeadToHead) == 0 {
		w.HeadToHead = def.HeadToHead
	}
	return w
}

// Run analyzes every not-yet-played game on date. Results keep schedule
// order regardless of worker count.
func (p *Pipeline) Run(ctx context.Context, sched *schedule.Schedule, date time.Time) RunResult {
	start := time.Now()
	result := RunResult{Date: provider.Date(date)}

	pending := sched.Upcoming(date)
	result.MatchupsFound = len(pending)
	if len(pending) == 0 {
		p.logger.Info("No games scheduled", "date", result.Date.Format(provider.DateLayout))
		result.Duration = time.Since(start)
		return result
	}
	p.logger.Info("Found upcoming games", "date", result.Date.Format(provider.DateLayout), "count", len(pending))

	history := sched.History(date)
	result.Results = make([]Result, len(pending))

	// Worker pool: one channel of indices, N workers.
	workers := p.workers
	if workers > len(pending) {
		workers = len(pending)
	}
	ch := make(chan int, len(pending))
	for i := range pending {
		ch <- i
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range ch {
				r := p.process(ctx, history, pending[idx], result.Date)

				mu.Lock()
				result.Results[idx] = r
				result.Processed++
				if r.Success {
					result.Succeeded++
				} else {
					result.Failed++
					result.Errors = append(result.Errors, fmt.Sprintf("game %d: %s", r.GameID, r.Error))
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)

	p.logger.Info("Matchup run complete", "summary", result.Summary())
	return result
}

// process handles one scheduled game from name resolution to sink.
func (p *Pipeline) process(ctx context.Context, history []provider.Game, g provider.Game, date time.Time) Result {
	start := time.Now()
	r := Result{GameID: g.ID, HomeName: g.HomeTeamName, AwayName: g.AwayTeamName}
	fail := func(err error) Result {
		r.Err = err
		r.Error = err.Error()
		r.Duration = time.Since(start)
		p.logger.Error("Matchup failed", "game_id", g.ID, "home", g.HomeTeamName, "away", g.AwayTeamName, "error", err)
		return r
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	res, err := p.analyze(ctx, history, g.HomeTeamName, g.AwayTeamName, date)
	if err != nil {
		return fail(err)
	}
	r.Analytics = &res

	if p.sink != nil {
		if err := p.sink.Write(ctx, res); err != nil {
			return fail(fmt.Errorf("write report: %w", err))
		}
	}

	r.Success = true
	r.Duration = time.Since(start)
	p.logger.Info("Matchup done", "game_id", g.ID, "home", res.Home.Name, "away", res.Away.Name,
		"no_data_sections", len(res.NoData), "duration", r.Duration.Round(time.Millisecond))
	return r
}

// Matchup analyzes any two teams by name over history up to date. It does
// not write to the sink.
func (p *Pipeline) Matchup(ctx context.Context, sched *schedule.Schedule, nameA, nameB string, date time.Time) (analytics.Result, error) {
	return p.analyze(ctx, sched.History(date), nameA, nameB, provider.Date(date))
}

func (p *Pipeline) analyze(ctx context.Context, history []provider.Game, nameA, nameB string, date time.Time) (analytics.Result, error) {
	a, err := p.resolver.Resolve(ctx, nameA)
	if err != nil {
		return analytics.Result{}, err
	}
	b, err := p.resolver.Resolve(ctx, nameB)
	if err != nil {
		return analytics.Result{}, err
	}
	if a.ID == b.ID {
		return analytics.Result{}, fmt.Errorf("%w: %q and %q are both %s", ErrSameTeam, nameA, nameB, a.Name)
	}
	return analytics.Analyze(history, a, b, p.windows, date)
}
