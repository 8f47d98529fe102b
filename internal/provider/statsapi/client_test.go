package statsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/major-league-insights/internal/provider"
)

const scheduleJSON = `{
  "dates": [
    {"date": "2025-07-03", "games": [
      {"gamePk": 777001, "officialDate": "2025-07-03", "gameNumber": 1,
       "status": {"abstractGameState": "Final", "detailedState": "Final"},
       "teams": {
         "home": {"score": 5, "team": {"id": 147, "name": "New York Yankees"}},
         "away": {"score": 3, "team": {"id": 111, "name": "Boston Red Sox"}}}},
      {"gamePk": 777002, "gameNumber": 1,
       "status": {"abstractGameState": "Live", "detailedState": "In Progress"},
       "teams": {
         "home": {"score": 1, "team": {"id": 141, "name": "Toronto Blue Jays"}},
         "away": {"score": 0, "team": {"id": 158, "name": "Milwaukee Brewers"}}}}
    ]},
    {"date": "2025-07-04", "games": [
      {"gamePk": 777003, "officialDate": "2025-07-04", "gameNumber": 1,
       "status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
       "teams": {
         "home": {"team": {"id": 111, "name": "Boston Red Sox"}},
         "away": {"team": {"id": 147, "name": "New York Yankees"}}}}
    ]}
  ]
}`

const teamsJSON = `{
  "teams": [
    {"id": 147, "name": "New York Yankees", "teamName": "Yankees", "shortName": "NY Yankees",
     "abbreviation": "NYY", "locationName": "Bronx", "teamCode": "nya", "fileCode": "nyy",
     "clubName": "Yankees", "franchiseName": "New York"},
    {"id": 121, "name": "New York Mets", "teamName": "Mets", "shortName": "NY Mets",
     "abbreviation": "NYM", "locationName": "Flushing", "teamCode": "nyn", "fileCode": "nym",
     "clubName": "Mets", "franchiseName": "New York"},
    {"id": 111, "name": "Boston Red Sox", "teamName": "Red Sox", "shortName": "Boston",
     "abbreviation": "BOS", "locationName": "Boston", "teamCode": "bos", "fileCode": "bos",
     "clubName": "Red Sox", "franchiseName": "Boston"}
  ]
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, RequestsPerMinute: 60000, Season: 2025}, nil)
}

func TestFetchSchedule(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(scheduleJSON))
	})
	c := newTestClient(t, mux)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	games, err := c.FetchSchedule(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Contains(t, gotQuery, "startDate=2025-03-01")
	assert.Contains(t, gotQuery, "endDate=2025-07-04")
	assert.Contains(t, gotQuery, "sportId=1")

	first := games[0]
	assert.Equal(t, 777001, first.ID)
	assert.Equal(t, 147, first.HomeTeamID)
	assert.Equal(t, "Boston Red Sox", first.AwayTeamName)
	require.True(t, first.Completed())
	assert.Equal(t, 5, *first.HomeScore)
	assert.Equal(t, 3, *first.AwayScore)

	live := games[1]
	assert.False(t, live.Completed(), "live scores must not count as played")
	assert.Equal(t, "2025-07-03", live.Date.Format(provider.DateLayout), "falls back to the bucket date")

	assert.False(t, games[2].Completed())
	assert.Equal(t, "Scheduled", games[2].Status)
}

func TestFetchScheduleGameTypes(t *testing.T) {
	var gotType string
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("gameType")
		w.Write([]byte(`{"dates": []}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL, RequestsPerMinute: 60000, GameTypes: []string{"R", "F"}}, nil)

	games, err := c.FetchSchedule(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, "R,F", gotType)
}

func TestFetchScheduleUpstreamErrorIsProviderError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := c.FetchSchedule(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	pErr, ok := provider.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "statsapi", pErr.Provider)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchScheduleBadJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dates": [`))
	}))
	_, err := c.FetchSchedule(context.Background(), time.Now(), time.Now())
	_, ok := provider.AsProviderError(err)
	assert.True(t, ok)
}

func TestLookupTeams(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "2025", r.URL.Query().Get("season"))
		w.Write([]byte(teamsJSON))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	got, err := c.LookupTeams(ctx, "new york")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 147, got[0].ID)
	assert.Equal(t, "Yankees", got[0].ShortName)
	assert.Equal(t, "NYY", got[0].Abbreviation)
	assert.Equal(t, 121, got[1].ID)

	got, err = c.LookupTeams(ctx, "BOS")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Boston Red Sox", got[0].Name)

	got, err = c.LookupTeams(ctx, "Dodgers")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.LookupTeams(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, int32(1), calls.Load(), "team list is fetched once")
}

func TestLookupTeamsProviderFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	_, err := c.LookupTeams(context.Background(), "Yankees")
	_, ok := provider.AsProviderError(err)
	assert.True(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc"), 5))
	assert.Equal(t, "ab...", truncate([]byte("abcdef"), 2))
}
