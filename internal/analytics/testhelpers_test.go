package analytics

import (
	"time"

	"github.com/albapepper/major-league-insights/internal/provider"
)

var (
	teamA = provider.Team{ID: 147, Name: "New York Yankees", ShortName: "Yankees", Abbreviation: "NYY"}
	teamB = provider.Team{ID: 111, Name: "Boston Red Sox", ShortName: "Red Sox", Abbreviation: "BOS"}
	teamC = provider.Team{ID: 141, Name: "Toronto Blue Jays", ShortName: "Blue Jays", Abbreviation: "TOR"}

	seasonStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
)

func score(n int) *int { return &n }

// final builds a completed game day days after seasonStart.
func final(id, day int, home provider.Team, homeScore int, away provider.Team, awayScore int) provider.Game {
	return provider.Game{
		ID:           id,
		Date:         seasonStart.AddDate(0, 0, day),
		HomeTeamID:   home.ID,
		HomeTeamName: home.Name,
		HomeScore:    score(homeScore),
		AwayTeamID:   away.ID,
		AwayTeamName: away.Name,
		AwayScore:    score(awayScore),
		Status:       "Final",
	}
}

// upcoming builds a game with no scores.
func upcoming(id, day int, home, away provider.Team) provider.Game {
	return provider.Game{
		ID:           id,
		Date:         seasonStart.AddDate(0, 0, day),
		HomeTeamID:   home.ID,
		HomeTeamName: home.Name,
		AwayTeamID:   away.ID,
		AwayTeamName: away.Name,
		Status:       "Scheduled",
	}
}
