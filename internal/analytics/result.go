package analytics

import (
	"errors"
	"time"

	"github.com/albapepper/major-league-insights/internal/provider"
)

// Section names one part of a matchup report.
type Section string

const (
	SectionLeague     Section = "league_run_averages"
	SectionTeamRuns   Section = "team_run_averages"
	SectionRecords    Section = "win_loss_records"
	SectionHeadToHead Section = "head_to_head"
)

// Windows holds the window list used by each section.
type Windows struct {
	League     []Window `json:"league"`
	TeamRuns   []Window `json:"team_runs"`
	Records    []Window `json:"records"`
	HeadToHead []Window `json:"head_to_head"`
}

// DefaultWindows returns the stock report windows.
func DefaultWindows() Windows {
	return Windows{
		League:     []Window{All, 15, 10, 5},
		TeamRuns:   []Window{15, 10, 5},
		Records:    []Window{15, 10, 5},
		HeadToHead: []Window{10, 5},
	}
}

// Result is the analytics for one matchup. Sections that could not be
// computed are absent and carry a reason in NoData.
type Result struct {
	Date       time.Time            `json:"date"`
	Home       provider.Team        `json:"home"`
	Away       provider.Team        `json:"away"`
	League     []TeamSeries         `json:"league_run_averages"`
	TeamRuns   []TeamSeries         `json:"team_run_averages"`
	Records    []TeamRecord         `json:"win_loss_records"`
	HeadToHead *HeadToHeadStats     `json:"head_to_head,omitempty"`
	NoData     map[Section][]string `json:"no_data,omitempty"`
}

// Series returns the series for teamID in list, if computed.
func Series(list []TeamSeries, teamID int) (TeamSeries, bool) {
	for _, s := range list {
		if s.Team.ID == teamID {
			return s, true
		}
	}
	return TeamSeries{}, false
}

// Record returns the record for teamID in list, if computed.
func Record(list []TeamRecord, teamID int) (TeamRecord, bool) {
	for _, r := range list {
		if r.Team.ID == teamID {
			return r, true
		}
	}
	return TeamRecord{}, false
}

// Analyze computes all four sections for home vs away over games. An
// InsufficientDataError in one section marks that section (or that team's
// part of it) as no data; the others are still produced. Other errors are
// returned, since the engine itself never produces them.
func Analyze(games []provider.Game, home, away provider.Team, windows Windows, date time.Time) (Result, error) {
	r := Result{Date: date, Home: home, Away: away}
	teams := []provider.Team{home, away}

	for _, t := range teams {
		s, err := leagueSeries(games, t, windows.League)
		if err != nil {
			if err = r.note(SectionLeague, err); err != nil {
				return Result{}, err
			}
			continue
		}
		r.League = append(r.League, s)
	}
	for _, t := range teams {
		s, err := TeamRunAverages(games, t, windows.TeamRuns)
		if err != nil {
			if err = r.note(SectionTeamRuns, err); err != nil {
				return Result{}, err
			}
			continue
		}
		r.TeamRuns = append(r.TeamRuns, s)
	}
	for _, t := range teams {
		rec, err := WinLossRecord(games, t, windows.Records)
		if err != nil {
			if err = r.note(SectionRecords, err); err != nil {
				return Result{}, err
			}
			continue
		}
		r.Records = append(r.Records, rec)
	}

	h2h, err := HeadToHead(games, home, away, windows.HeadToHead)
	if err != nil {
		if err = r.note(SectionHeadToHead, err); err != nil {
			return Result{}, err
		}
	} else {
		r.HeadToHead = &h2h
	}
	return r, nil
}

// note records an InsufficientDataError against section and returns any
// other error unchanged.
func (r *Result) note(section Section, err error) error {
	if !errors.Is(err, ErrInsufficientData) {
		return err
	}
	if r.NoData == nil {
		r.NoData = make(map[Section][]string)
	}
	r.NoData[section] = append(r.NoData[section], err.Error())
	return nil
}

// Missing reports whether section has any no-data entries.
func (r Result) Missing(section Section) bool {
	return len(r.NoData[section]) > 0
}
