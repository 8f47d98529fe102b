package analytics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/major-league-insights/internal/provider"
)

var teamD = provider.Team{ID: 158, Name: "Milwaukee Brewers", ShortName: "Brewers", Abbreviation: "MIL"}

// season is deliberately out of date order and carries a tie, an unplayed
// game and a game between two other teams.
func season() []provider.Game {
	return []provider.Game{
		final(1, 0, teamA, 5, teamB, 3),
		final(2, 1, teamC, 4, teamA, 4),
		final(3, 3, teamB, 1, teamA, 2),
		final(4, 2, teamA, 0, teamC, 6),
		final(5, 4, teamB, 4, teamA, 2),
		upcoming(6, 5, teamA, teamB),
		final(7, 4, teamB, 3, teamC, 1),
	}
}

func ids(games []provider.Game) []int {
	out := make([]int, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}

func TestGamesForSortsCopy(t *testing.T) {
	games := season()
	before := ids(games)

	got := GamesFor(games, teamA.ID)

	assert.Equal(t, []int{1, 2, 4, 3, 5, 6}, ids(got))
	assert.Equal(t, before, ids(games), "input must not be reordered")
}

func TestCompletedGamesDropsUnplayed(t *testing.T) {
	got := CompletedGames(season())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7}, ids(got))
}

func TestSortByDateUsesGameNumber(t *testing.T) {
	g1 := final(10, 3, teamA, 1, teamB, 0)
	g1.GameNumber = 2
	g2 := final(11, 3, teamA, 2, teamB, 0)
	g2.GameNumber = 1
	games := []provider.Game{g1, g2}
	SortByDate(games)
	assert.Equal(t, []int{11, 10}, ids(games))
}

func TestRunsProjections(t *testing.T) {
	g := final(1, 0, teamA, 5, teamB, 3)

	assert.Equal(t, 5, RunsFor(g, teamA.ID))
	assert.Equal(t, 3, RunsAgainst(g, teamA.ID))
	assert.Equal(t, 3, RunsFor(g, teamB.ID))
	assert.Equal(t, 5, RunsAgainst(g, teamB.ID))
	assert.Equal(t, 8, TotalRuns(g))
}

func TestRunsForSumsToTotalInHeadToHead(t *testing.T) {
	for _, g := range HeadToHeadGames(season(), teamA.ID, teamB.ID) {
		assert.Equal(t, TotalRuns(g), RunsFor(g, teamA.ID)+RunsFor(g, teamB.ID), "game %d", g.ID)
	}
}

func TestLeagueRunAverages(t *testing.T) {
	got, err := LeagueRunAverages(season(), teamA, teamB, []Window{All, 3})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, teamA, got[0].Team)
	assert.InDelta(t, 31.0/5, got[0].Means[0].Mean, 1e-9)
	assert.InDelta(t, 5.0, got[0].Means[1].Mean, 1e-9)

	assert.Equal(t, teamB, got[1].Team)
	assert.InDelta(t, 21.0/4, got[1].Means[0].Mean, 1e-9)
	assert.InDelta(t, 13.0/3, got[1].Means[1].Mean, 1e-9)
	assert.Equal(t, Window(3), got[1].Means[1].Window)
}

func TestLeagueRunAveragesTeamWithoutGames(t *testing.T) {
	_, err := LeagueRunAverages(season(), teamA, teamD, []Window{All})
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), teamD.Name)
}

func TestTeamRunAverages(t *testing.T) {
	got, err := TeamRunAverages(season(), teamA, []Window{All, 3, 1})
	require.NoError(t, err)

	require.Len(t, got.Means, 3)
	assert.InDelta(t, 13.0/5, got.Means[0].Mean, 1e-9)
	assert.InDelta(t, 4.0/3, got.Means[1].Mean, 1e-9)
	assert.InDelta(t, 2.0, got.Means[2].Mean, 1e-9)
}

func TestTeamRunAveragesSingleGame(t *testing.T) {
	games := []provider.Game{
		final(1, 0, teamC, 7, teamA, 3),
		upcoming(2, 1, teamA, teamC),
	}
	got, err := TeamRunAverages(games, teamA, []Window{All, 1, 5, 15})
	require.NoError(t, err)
	for _, m := range got.Means {
		assert.InDelta(t, 3.0, m.Mean, 1e-9, "window %s", m.Window)
	}
}

func TestWinLossRecord(t *testing.T) {
	windows := []Window{All, 2, 3}
	got, err := WinLossRecord(season(), teamA, windows)
	require.NoError(t, err)

	want := []WinLoss{
		{Window: All, Wins: 2, Losses: 2},
		{Window: 2, Wins: 1, Losses: 1},
		{Window: 3, Wins: 1, Losses: 2},
	}
	assert.Equal(t, want, got.Records)
	assert.Equal(t, "2-2", got.Records[0].String())
}

func TestWinLossNeverExceedsWindow(t *testing.T) {
	seq := GamesFor(CompletedGames(season()), teamA.ID)
	for _, w := range []Window{1, 2, 3, 4, 5, 6, All} {
		rec, err := WinLossRecord(season(), teamA, []Window{w})
		require.NoError(t, err)

		window := Tail(seq, w)
		r := rec.Records[0]
		hasTie := slices.ContainsFunc(window, func(g provider.Game) bool { return *g.HomeScore == *g.AwayScore })
		if hasTie {
			assert.Less(t, r.Wins+r.Losses, len(window), "window %s", w)
		} else {
			assert.Equal(t, len(window), r.Wins+r.Losses, "window %s", w)
		}
	}
}

func TestHeadToHeadScenario(t *testing.T) {
	games := []provider.Game{
		final(1, 0, teamA, 5, teamB, 3),
		final(2, 1, teamB, 1, teamA, 2),
		final(3, 2, teamB, 4, teamA, 2),
	}
	got, err := HeadToHead(games, teamA, teamB, []Window{2})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Games)
	assert.Equal(t, "1-1", got.RecordA[0].String())
	assert.Equal(t, "1-1", got.RecordB[0].String())
	assert.InDelta(t, 4.50, got.Combined[0].Mean, 1e-9)
	assert.InDelta(t, 2.0, got.RunsA[0].Mean, 1e-9)
	assert.InDelta(t, 2.5, got.RunsB[0].Mean, 1e-9)
}

func TestHeadToHeadExcludesTies(t *testing.T) {
	games := append(season(), final(8, 5, teamB, 3, teamA, 3))

	got, err := HeadToHead(games, teamA, teamB, []Window{All, 1})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Games, "tied game must not enter head-to-head")
	assert.Equal(t, WinLoss{Window: 1, Wins: 0, Losses: 1}, got.RecordA[1])
	assert.InDelta(t, 6.0, got.Combined[1].Mean, 1e-9)
}

func TestHeadToHeadNoSharedHistory(t *testing.T) {
	_, err := HeadToHead(season(), teamA, teamD, []Window{10, 5})
	require.ErrorIs(t, err, ErrInsufficientData)

	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Contains(t, ide.Subject, "head-to-head")
}

func TestNoHistoryWithoutWindowsIsInsufficient(t *testing.T) {
	games := season()

	_, err := HeadToHead(games, teamA, teamD, nil)
	assert.ErrorIs(t, err, ErrInsufficientData, "head-to-head")

	_, err = LeagueRunAverages(games, teamA, teamD, nil)
	assert.ErrorIs(t, err, ErrInsufficientData, "league")

	_, err = TeamRunAverages(games, teamD, nil)
	assert.ErrorIs(t, err, ErrInsufficientData, "team runs")

	_, err = WinLossRecord(games, teamD, []Window{})
	assert.ErrorIs(t, err, ErrInsufficientData, "records")

	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Contains(t, ide.Subject, teamD.Name)
}

func TestHeadToHeadOnlyTiesIsInsufficient(t *testing.T) {
	games := []provider.Game{final(1, 0, teamA, 2, teamC, 2)}
	_, err := HeadToHead(games, teamA, teamC, []Window{All})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEngineIsIdempotent(t *testing.T) {
	games := season()
	snapshot := slices.Clone(games)
	windows := DefaultWindows()

	first, err := Analyze(games, teamA, teamB, windows, seasonStart)
	require.NoError(t, err)
	second, err := Analyze(games, teamA, teamB, windows, seasonStart)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, games)
}

func TestAnalyzeMarksMissingSections(t *testing.T) {
	got, err := Analyze(season(), teamA, teamD, DefaultWindows(), seasonStart)
	require.NoError(t, err)

	for _, s := range []Section{SectionLeague, SectionTeamRuns, SectionRecords, SectionHeadToHead} {
		assert.True(t, got.Missing(s), "section %s", s)
	}
	assert.Nil(t, got.HeadToHead)

	_, ok := Series(got.League, teamA.ID)
	assert.True(t, ok, "home team league series still computed")
	_, ok = Series(got.League, teamD.ID)
	assert.False(t, ok)
	_, ok = Record(got.Records, teamA.ID)
	assert.True(t, ok)
}

func TestAnalyzeFullResult(t *testing.T) {
	got, err := Analyze(season(), teamA, teamB, DefaultWindows(), seasonStart)
	require.NoError(t, err)

	assert.Empty(t, got.NoData)
	assert.Len(t, got.League, 2)
	assert.Len(t, got.TeamRuns, 2)
	assert.Len(t, got.Records, 2)
	require.NotNil(t, got.HeadToHead)
	assert.Len(t, got.HeadToHead.Combined, 2)
}
