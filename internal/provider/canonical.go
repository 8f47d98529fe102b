// Package provider defines canonical data types that all providers normalize
// into. These structs are the contract between provider clients, the game
// store and the analytics engine: providers output these, the engine reads
// them, the store writes them to Postgres.
//
// Adding a new provider means implementing ScheduleProvider and TeamLookup
// over these types. The engine and the schema never change.
package provider

import "time"

// DateLayout is the calendar-date format used on every provider boundary.
const DateLayout = "2006-01-02"

// Game is the canonical game record. Scores are nil until the game is final.
type Game struct {
	ID           int       `json:"game_id"`
	Date         time.Time `json:"date"`
	GameNumber   int       `json:"game_number,omitempty"` // doubleheader ordering
	Status       string    `json:"status,omitempty"`
	HomeTeamID   int       `json:"home_team_id"`
	HomeTeamName string    `json:"home_team_name"`
	HomeScore    *int      `json:"home_score"`
	AwayTeamID   int       `json:"away_team_id"`
	AwayTeamName string    `json:"away_team_name"`
	AwayScore    *int      `json:"away_score"`
}

// Completed reports whether both scores are present.
func (g Game) Completed() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Involves reports whether teamID played in the game, home or away.
func (g Game) Involves(teamID int) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// Team is the canonical team identity.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"short_name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	City         string `json:"city,omitempty"`
}

// Date truncates t to a calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
