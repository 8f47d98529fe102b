package statsapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/major-league-insights/internal/provider"
)

const stateFinal = "Final"

type scheduleResponse struct {
	Dates []struct {
		Date  string    `json:"date"`
		Games []gameRaw `json:"games"`
	} `json:"dates"`
}

type gameRaw struct {
	GamePk       int    `json:"gamePk"`
	OfficialDate string `json:"officialDate"`
	GameNumber   int    `json:"gameNumber"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home sideRaw `json:"home"`
		Away sideRaw `json:"away"`
	} `json:"teams"`
}

type sideRaw struct {
	Score *int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// FetchSchedule fetches every game between start and end inclusive, in
// canonical format.
func (c *Client) FetchSchedule(ctx context.Context, start, end time.Time) ([]provider.Game, error) {
	params := url.Values{
		"sportId":   {strconv.Itoa(sportIDMLB)},
		"startDate": {start.Format(provider.DateLayout)},
		"endDate":   {end.Format(provider.DateLayout)},
	}
	if len(c.gameTypes) > 0 {
		params.Set("gameType", strings.Join(c.gameTypes, ","))
	}

	var resp scheduleResponse
	if err := c.get(ctx, "/schedule", params, &resp); err != nil {
		return nil, provider.Wrap(providerName, "fetch schedule", err)
	}

	var games []provider.Game
	for _, d := range resp.Dates {
		for _, raw := range d.Games {
			g, err := normalizeGame(raw, d.Date)
			if err != nil {
				return nil, provider.Wrap(providerName, "decode schedule", err)
			}
			games = append(games, g)
		}
	}
	c.logger.Info("Fetched schedule",
		"start", start.Format(provider.DateLayout),
		"end", end.Format(provider.DateLayout),
		"games", len(games))
	return games, nil
}

// normalizeGame maps a raw schedule entry. Scores are kept only for final
// games, so live and postponed games never count as played.
func normalizeGame(raw gameRaw, fallbackDate string) (provider.Game, error) {
	dateStr := raw.OfficialDate
	if dateStr == "" {
		dateStr = fallbackDate
	}
	date, err := provider.ParseDate(dateStr)
	if err != nil {
		return provider.Game{}, err
	}

	g := provider.Game{
		ID:           raw.GamePk,
		Date:         date,
		GameNumber:   raw.GameNumber,
		Status:       raw.Status.DetailedState,
		HomeTeamID:   raw.Teams.Home.Team.ID,
		HomeTeamName: raw.Teams.Home.Team.Name,
		AwayTeamID:   raw.Teams.Away.Team.ID,
		AwayTeamName: raw.Teams.Away.Team.Name,
	}
	if raw.Status.AbstractGameState == stateFinal {
		g.HomeScore = raw.Teams.Home.Score
		g.AwayScore = raw.Teams.Away.Score
	}
	return g, nil
}
