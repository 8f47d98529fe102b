package analytics

import (
	"cmp"
	"slices"

	"github.com/albapepper/major-league-insights/internal/provider"
)

// CompletedGames keeps games with both scores present, preserving order.
func CompletedGames(games []provider.Game) []provider.Game {
	out := make([]provider.Game, 0, len(games))
	for _, g := range games {
		if g.Completed() {
			out = append(out, g)
		}
	}
	return out
}

// GamesFor selects every game the team played, home or away, in date order.
// The input slice is never reordered.
func GamesFor(games []provider.Game, teamID int) []provider.Game {
	out := make([]provider.Game, 0)
	for _, g := range games {
		if g.Involves(teamID) {
			out = append(out, g)
		}
	}
	SortByDate(out)
	return out
}

// HeadToHeadGames selects completed games between exactly a and b in either
// orientation. Equal-score records are dropped: a final always has a winner,
// so a level score marks an unfinished game.
func HeadToHeadGames(games []provider.Game, a, b int) []provider.Game {
	out := make([]provider.Game, 0)
	for _, g := range games {
		if !g.Completed() || *g.HomeScore == *g.AwayScore {
			continue
		}
		if (g.HomeTeamID == a && g.AwayTeamID == b) || (g.HomeTeamID == b && g.AwayTeamID == a) {
			out = append(out, g)
		}
	}
	SortByDate(out)
	return out
}

// SortByDate stable-sorts games in place by date, then doubleheader number.
func SortByDate(games []provider.Game) {
	slices.SortStableFunc(games, func(x, y provider.Game) int {
		if c := x.Date.Compare(y.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.GameNumber, y.GameNumber)
	})
}

// RunsFor is the team's own score. The game must be completed.
func RunsFor(g provider.Game, teamID int) int {
	if g.HomeTeamID == teamID {
		return *g.HomeScore
	}
	return *g.AwayScore
}

// RunsAgainst is the opponent's score. The game must be completed.
func RunsAgainst(g provider.Game, teamID int) int {
	if g.HomeTeamID == teamID {
		return *g.AwayScore
	}
	return *g.HomeScore
}

// TotalRuns is the combined score. The game must be completed.
func TotalRuns(g provider.Game) int {
	return *g.HomeScore + *g.AwayScore
}
