package statsapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/albapepper/major-league-insights/internal/provider"
)

type teamsResponse struct {
	Teams []teamRaw `json:"teams"`
}

type teamRaw struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName"`
	Abbreviation  string `json:"abbreviation"`
	LocationName  string `json:"locationName"`
	TeamCode      string `json:"teamCode"`
	FileCode      string `json:"fileCode"`
	ClubName      string `json:"clubName"`
	FranchiseName string `json:"franchiseName"`
}

// searchable lists every field a lookup query is matched against.
func (t teamRaw) searchable() []string {
	return []string{
		strconv.Itoa(t.ID), t.Name, t.TeamName, t.ShortName, t.Abbreviation,
		t.LocationName, t.TeamCode, t.FileCode, t.ClubName, t.FranchiseName,
	}
}

// LookupTeams returns every team where query is a case-insensitive substring
// of any identifying field, in provider order. The team list is fetched
// once per client.
func (c *Client) LookupTeams(ctx context.Context, query string) ([]provider.Team, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	all, err := c.allTeams(ctx)
	if err != nil {
		return nil, provider.Wrap(providerName, "lookup teams", err)
	}

	var out []provider.Team
	for _, t := range all {
		for _, field := range t.searchable() {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, normalizeTeam(t))
				break
			}
		}
	}
	return out, nil
}

func (c *Client) allTeams(ctx context.Context) ([]teamRaw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.teams != nil {
		return c.teams, nil
	}

	params := url.Values{
		"sportId": {strconv.Itoa(sportIDMLB)},
		"season":  {strconv.Itoa(c.season)},
	}
	var resp teamsResponse
	if err := c.get(ctx, "/teams", params, &resp); err != nil {
		return nil, err
	}
	c.teams = resp.Teams
	c.logger.Info("Fetched teams", "season", c.season, "count", len(resp.Teams))
	return c.teams, nil
}

func normalizeTeam(raw teamRaw) provider.Team {
	return provider.Team{
		ID:           raw.ID,
		Name:         raw.Name,
		ShortName:    raw.TeamName,
		Abbreviation: raw.Abbreviation,
		City:         raw.LocationName,
	}
}
