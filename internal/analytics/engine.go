// Package analytics is the windowed analytics engine: pure computations
// that turn a flat collection of game records into per-team and per-matchup
// statistics across several trailing-window sizes.
//
// Every function here is a pure function of its inputs. Input slices are
// never mutated, so one schedule snapshot can be shared by any number of
// concurrent matchup computations.
package analytics

import (
	"fmt"

	"github.com/albapepper/major-league-insights/internal/provider"
)

// WindowMean is a mean over one window.
type WindowMean struct {
	Window Window  `json:"window"`
	Mean   float64 `json:"mean"`
}

// WinLoss is a win/loss tally over one window. Ties count in neither.
type WinLoss struct {
	Window Window `json:"window"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

func (r WinLoss) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// TeamSeries is one team's labeled series of window means.
type TeamSeries struct {
	Team  provider.Team `json:"team"`
	Means []WindowMean  `json:"means"`
}

// TeamRecord is one team's labeled series of win/loss tallies.
type TeamRecord struct {
	Team    provider.Team `json:"team"`
	Records []WinLoss     `json:"records"`
}

// HeadToHeadStats summarizes games the two teams played against each other.
type HeadToHeadStats struct {
	TeamA    provider.Team `json:"team_a"`
	TeamB    provider.Team `json:"team_b"`
	Games    int           `json:"games"`
	Combined []WindowMean  `json:"combined"`
	RunsA    []WindowMean  `json:"runs_a"`
	RunsB    []WindowMean  `json:"runs_b"`
	RecordA  []WinLoss     `json:"record_a"`
	RecordB  []WinLoss     `json:"record_b"`
}

// MeanOf builds a reducer averaging project over each game.
func MeanOf(project func(provider.Game) int) Reducer[provider.Game, float64] {
	return func(seq []provider.Game) (float64, error) {
		if len(seq) == 0 {
			return 0, &InsufficientDataError{}
		}
		sum := 0
		for _, g := range seq {
			sum += project(g)
		}
		return float64(sum) / float64(len(seq)), nil
	}
}

// WinLossOf builds a reducer tallying teamID's wins and losses.
func WinLossOf(teamID int) Reducer[provider.Game, WinLoss] {
	return func(seq []provider.Game) (WinLoss, error) {
		if len(seq) == 0 {
			return WinLoss{}, &InsufficientDataError{}
		}
		var r WinLoss
		for _, g := range seq {
			rf, ra := RunsFor(g, teamID), RunsAgainst(g, teamID)
			switch {
			case rf > ra:
				r.Wins++
			case rf < ra:
				r.Losses++
			}
		}
		return r, nil
	}
}

// LeagueRunAverages returns, for each team independently, the mean combined
// score of its completed games per window.
func LeagueRunAverages(games []provider.Game, a, b provider.Team, windows []Window) ([]TeamSeries, error) {
	out := make([]TeamSeries, 0, 2)
	for _, t := range []provider.Team{a, b} {
		s, err := leagueSeries(games, t, windows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func leagueSeries(games []provider.Game, t provider.Team, windows []Window) (TeamSeries, error) {
	seq := GamesFor(CompletedGames(games), t.ID)
	subject := "league run averages of " + teamLabel(t)
	if len(seq) == 0 {
		return TeamSeries{}, &InsufficientDataError{Subject: subject}
	}
	means, err := windowMeans(seq, windows, TotalRuns)
	if err != nil {
		return TeamSeries{}, withSubject(err, subject)
	}
	return TeamSeries{Team: t, Means: means}, nil
}

// TeamRunAverages returns the team's mean runs scored per window.
func TeamRunAverages(games []provider.Game, t provider.Team, windows []Window) (TeamSeries, error) {
	seq := GamesFor(CompletedGames(games), t.ID)
	subject := "run averages of " + teamLabel(t)
	if len(seq) == 0 {
		return TeamSeries{}, &InsufficientDataError{Subject: subject}
	}
	means, err := windowMeans(seq, windows, func(g provider.Game) int { return RunsFor(g, t.ID) })
	if err != nil {
		return TeamSeries{}, withSubject(err, subject)
	}
	return TeamSeries{Team: t, Means: means}, nil
}

// WinLossRecord returns the team's win/loss tally per window. Tied games
// stay in the window but count as neither, so wins+losses may fall short of
// the window size.
func WinLossRecord(games []provider.Game, t provider.Team, windows []Window) (TeamRecord, error) {
	seq := GamesFor(CompletedGames(games), t.ID)
	subject := "win-loss record of " + teamLabel(t)
	if len(seq) == 0 {
		return TeamRecord{}, &InsufficientDataError{Subject: subject}
	}
	records, err := windowRecords(seq, windows, t.ID)
	if err != nil {
		return TeamRecord{}, withSubject(err, subject)
	}
	return TeamRecord{Team: t, Records: records}, nil
}

// HeadToHead summarizes the completed, decided games between a and b. With
// no shared history it fails with *InsufficientDataError, even when windows
// is empty.
func HeadToHead(games []provider.Game, a, b provider.Team, windows []Window) (HeadToHeadStats, error) {
	seq := HeadToHeadGames(games, a.ID, b.ID)
	subject := "head-to-head " + teamLabel(a) + " vs " + teamLabel(b)
	if len(seq) == 0 {
		return HeadToHeadStats{}, &InsufficientDataError{Subject: subject}
	}
	stats := HeadToHeadStats{TeamA: a, TeamB: b, Games: len(seq)}

	var err error
	if stats.Combined, err = windowMeans(seq, windows, TotalRuns); err != nil {
		return HeadToHeadStats{}, withSubject(err, subject)
	}
	if stats.RunsA, err = windowMeans(seq, windows, func(g provider.Game) int { return RunsFor(g, a.ID) }); err != nil {
		return HeadToHeadStats{}, withSubject(err, subject)
	}
	if stats.RunsB, err = windowMeans(seq, windows, func(g provider.Game) int { return RunsFor(g, b.ID) }); err != nil {
		return HeadToHeadStats{}, withSubject(err, subject)
	}
	if stats.RecordA, err = windowRecords(seq, windows, a.ID); err != nil {
		return HeadToHeadStats{}, withSubject(err, subject)
	}
	if stats.RecordB, err = windowRecords(seq, windows, b.ID); err != nil {
		return HeadToHeadStats{}, withSubject(err, subject)
	}
	return stats, nil
}

func windowMeans(seq []provider.Game, windows []Window, project func(provider.Game) int) ([]WindowMean, error) {
	reduce := MeanOf(project)
	out := make([]WindowMean, 0, len(windows))
	for _, w := range windows {
		m, err := Aggregate(seq, w, reduce)
		if err != nil {
			return nil, err
		}
		out = append(out, WindowMean{Window: w, Mean: m})
	}
	return out, nil
}

func windowRecords(seq []provider.Game, windows []Window, teamID int) ([]WinLoss, error) {
	reduce := WinLossOf(teamID)
	out := make([]WinLoss, 0, len(windows))
	for _, w := range windows {
		r, err := Aggregate(seq, w, reduce)
		if err != nil {
			return nil, err
		}
		r.Window = w
		out = append(out, r)
	}
	return out, nil
}

func teamLabel(t provider.Team) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("team %d", t.ID)
}
