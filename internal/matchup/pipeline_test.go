package matchup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/schedule"
	"github.com/albapepper/major-league-insights/internal/team"
)

var (
	yankees = provider.Team{ID: 147, Name: "New York Yankees", ShortName: "Yankees", Abbreviation: "NYY"}
	redSox  = provider.Team{ID: 111, Name: "Boston Red Sox", ShortName: "Red Sox", Abbreviation: "BOS"}
	jays    = provider.Team{ID: 141, Name: "Toronto Blue Jays", ShortName: "Blue Jays", Abbreviation: "TOR"}
	orioles = provider.Team{ID: 110, Name: "Baltimore Orioles", ShortName: "Orioles", Abbreviation: "BAL"}
)

func day(n int) time.Time {
	return time.Date(2025, time.June, n, 0, 0, 0, 0, time.UTC)
}

func played(id, d int, home provider.Team, hs int, away provider.Team, as int) provider.Game {
	return provider.Game{
		ID: id, Date: day(d),
		HomeTeamID: home.ID, HomeTeamName: home.Name, HomeScore: &hs,
		AwayTeamID: away.ID, AwayTeamName: away.Name, AwayScore: &as,
	}
}

func scheduled(id, d int, home, away provider.Team) provider.Game {
	return provider.Game{
		ID: id, Date: day(d),
		HomeTeamID: home.ID, HomeTeamName: home.Name,
		AwayTeamID: away.ID, AwayTeamName: away.Name,
	}
}

type mapResolver map[string]provider.Team

func (m mapResolver) Resolve(_ context.Context, name string) (provider.Team, error) {
	if t, ok := m[strings.ToLower(name)]; ok {
		return t, nil
	}
	return provider.Team{}, &team.NotFoundError{Query: name}
}

func resolver() mapResolver {
	r := mapResolver{}
	for _, t := range []provider.Team{yankees, redSox, jays} {
		r[strings.ToLower(t.Name)] = t
		r[strings.ToLower(t.Abbreviation)] = t
	}
	return r
}

// upstreamResolver fails lookups of one name as an upstream outage.
type upstreamResolver struct {
	mapResolver
	down string
}

func (r upstreamResolver) Resolve(ctx context.Context, name string) (provider.Team, error) {
	if strings.EqualFold(name, r.down) {
		return provider.Team{}, provider.Wrap("statsapi", "lookup teams", errors.New("503 service unavailable"))
	}
	return r.mapResolver.Resolve(ctx, name)
}

type captureSink struct {
	mu      sync.Mutex
	written []analytics.Result
	failFor int
}

func (s *captureSink) Write(_ context.Context, r analytics.Result) error {
	if r.Home.ID == s.failFor {
		return errors.New("disk full")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, r)
	return nil
}

func testSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	s, err := schedule.New([]provider.Game{
		played(1, 1, yankees, 5, redSox, 3),
		played(2, 2, redSox, 1, yankees, 2),
		played(3, 3, jays, 6, yankees, 2),
		played(4, 4, redSox, 4, jays, 4),
		played(5, 5, yankees, 3, jays, 1),
		scheduled(10, 6, yankees, redSox),
		scheduled(11, 6, jays, orioles),
		scheduled(12, 6, redSox, jays),
		scheduled(13, 7, jays, redSox),
	})
	require.NoError(t, err)
	return s
}

func TestRunIsolatesFailures(t *testing.T) {
	sink := &captureSink{}
	p := New(Options{Resolver: resolver(), Sink: sink, Windows: analytics.DefaultWindows(), Workers: 3})

	res := p.Run(context.Background(), testSchedule(t), day(6))

	assert.Equal(t, 3, res.MatchupsFound)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "game 11")

	require.Len(t, res.Results, 3)
	assert.Equal(t, []int{10, 11, 12}, []int{res.Results[0].GameID, res.Results[1].GameID, res.Results[2].GameID})

	var nf *team.NotFoundError
	assert.ErrorAs(t, res.Results[1].Err, &nf)
	assert.Nil(t, res.Results[1].Analytics)

	assert.Len(t, sink.written, 2)
	assert.Contains(t, res.Summary(), "failed=1")
}

func TestRunProviderErrorIsPerMatchup(t *testing.T) {
	r := upstreamResolver{mapResolver: resolver(), down: jays.Name}
	p := New(Options{Resolver: r, Windows: analytics.DefaultWindows(), Workers: 2})

	res := p.Run(context.Background(), testSchedule(t), day(6))

	require.Len(t, res.Results, 3)
	assert.True(t, res.Results[0].Success, "yankees vs red sox does not need the blue jays")
	require.NotNil(t, res.Results[0].Analytics)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)

	pErr, ok := provider.AsProviderError(res.Results[2].Err)
	require.True(t, ok)
	assert.Equal(t, "statsapi", pErr.Provider)
	assert.False(t, res.Results[2].Success)
}

func TestNewDefaultsEmptyWindows(t *testing.T) {
	p := New(Options{Resolver: resolver(), Windows: analytics.Windows{HeadToHead: []analytics.Window{1}}})
	def := analytics.DefaultWindows()
	assert.Equal(t, def.League, p.windows.League)
	assert.Equal(t, def.TeamRuns, p.windows.TeamRuns)
	assert.Equal(t, def.Records, p.windows.Records)
	assert.Equal(t, []analytics.Window{1}, p.windows.HeadToHead)

	res := p.Run(context.Background(), testSchedule(t), day(6))
	first := res.Results[0]
	require.True(t, first.Success)
	require.Len(t, first.Analytics.League, 2)
	assert.Len(t, first.Analytics.League[0].Means, len(def.League))
	require.NotNil(t, first.Analytics.HeadToHead)
	assert.Len(t, first.Analytics.HeadToHead.Combined, 1)
}

func TestRunUsesOnlyHistory(t *testing.T) {
	p := New(Options{Resolver: resolver(), Windows: analytics.DefaultWindows()})
	res := p.Run(context.Background(), testSchedule(t), day(6))

	first := res.Results[0]
	require.True(t, first.Success)
	require.NotNil(t, first.Analytics.HeadToHead)
	assert.Equal(t, 2, first.Analytics.HeadToHead.Games)
	assert.Equal(t, day(6), first.Analytics.Date)

	// Red Sox vs Blue Jays only tied, so head-to-head is no data while
	// the rest of the report is still produced.
	third := res.Results[2]
	require.True(t, third.Success)
	assert.True(t, third.Analytics.Missing(analytics.SectionHeadToHead))
	assert.Len(t, third.Analytics.Records, 2)
}

func TestRunSinkFailureIsPerMatchup(t *testing.T) {
	sink := &captureSink{failFor: yankees.ID}
	p := New(Options{Resolver: resolver(), Sink: sink, Windows: analytics.DefaultWindows(), Workers: 2})
	res := p.Run(context.Background(), testSchedule(t), day(6))

	assert.False(t, res.Results[0].Success)
	assert.Contains(t, res.Results[0].Error, "write report")
	assert.True(t, res.Results[2].Success)
	assert.Equal(t, 2, res.Failed)
}

func TestRunNoGames(t *testing.T) {
	p := New(Options{Resolver: resolver(), Windows: analytics.DefaultWindows()})
	res := p.Run(context.Background(), testSchedule(t), day(20))
	assert.Zero(t, res.MatchupsFound)
	assert.Empty(t, res.Results)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(Options{Resolver: resolver(), Windows: analytics.DefaultWindows()})
	res := p.Run(ctx, testSchedule(t), day(6))
	assert.Equal(t, 3, res.Failed)
	assert.ErrorIs(t, res.Results[0].Err, context.Canceled)
}

func TestMatchupAdHoc(t *testing.T) {
	p := New(Options{Resolver: resolver(), Windows: analytics.DefaultWindows()})
	sched := testSchedule(t)

	res, err := p.Matchup(context.Background(), sched, "NYY", "tor", day(4))
	require.NoError(t, err)
	assert.Equal(t, yankees, res.Home)
	assert.Equal(t, jays, res.Away)
	require.NotNil(t, res.HeadToHead)
	assert.Equal(t, 1, res.HeadToHead.Games, "game on day 5 is after the cutoff")

	_, err = p.Matchup(context.Background(), sched, "nyy", "New York Yankees", day(6))
	assert.ErrorIs(t, err, ErrSameTeam)

	_, err = p.Matchup(context.Background(), sched, "nyy", "Dodgers", day(6))
	var nf *team.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestResultSummary(t *testing.T) {
	r := Result{GameID: 7, HomeName: "A", AwayName: "B", Success: true}
	assert.Contains(t, r.Summary(), "status=ok")
	r.Success = false
	assert.Contains(t, r.Summary(), "status=FAILED")
}
