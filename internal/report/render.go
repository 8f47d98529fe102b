// Package report formats matchup analytics as the plain-text report and
// writes one file per matchup.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
)

const (
	ruleWidth = 60
	nameWidth = 20
	noData    = "no data"
)

// Render writes the text report for r.
func Render(w io.Writer, r analytics.Result, generatedAt time.Time) error {
	var b bytes.Buffer
	rule := strings.Repeat("=", ruleWidth)
	teams := []provider.Team{r.Home, r.Away}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, " MAJOR LEAGUE INSIGHTS: %s vs %s \n", strings.ToUpper(r.Home.Name), strings.ToUpper(r.Away.Name))
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "\n--- LEAGUE RUN AVERAGES (TOTAL) ---")
	for _, t := range teams {
		line := noData
		if s, ok := analytics.Series(r.League, t.ID); ok {
			line = joinMeans(s.Means, shortLabel, " | ")
		}
		fmt.Fprintf(&b, "%s | %s\n", pad(t.Name+": "), line)
	}

	fmt.Fprintln(&b, "\n--- RUNS SCORED BY TEAM ---")
	for _, t := range teams {
		line := noData
		if s, ok := analytics.Series(r.TeamRuns, t.ID); ok {
			line = joinMeans(s.Means, longLabel, " | ")
		}
		fmt.Fprintf(&b, "%s: %s\n", pad(t.Name), line)
	}

	fmt.Fprintln(&b, "\n--- HEAD-TO-HEAD (H2H) HISTORY ---")
	if h := r.HeadToHead; h != nil {
		fmt.Fprintf(&b, "%-20s: %s\n", "Combined Total Avg", joinMeans(h.Combined, shortLabel, ", "))
		fmt.Fprintf(&b, "%s Avg : %s\n", pad(h.TeamA.Name), joinMeans(h.RunsA, shortLabel, ", "))
		fmt.Fprintf(&b, "%s Avg : %s\n", pad(h.TeamB.Name), joinMeans(h.RunsB, shortLabel, ", "))
		fmt.Fprintf(&b, "%s W-L : %s\n", pad(h.TeamA.Name), joinRecords(h.RecordA, shortLabel, ", "))
		fmt.Fprintf(&b, "%s W-L : %s\n", pad(h.TeamB.Name), joinRecords(h.RecordB, shortLabel, ", "))
	} else {
		fmt.Fprintf(&b, "%-20s: %s\n", "Combined Total Avg", noData)
	}

	fmt.Fprintln(&b, "\n--- OVERALL SEASON RECORD (W-L) ---")
	for _, t := range teams {
		line := noData
		if rec, ok := analytics.Record(r.Records, t.ID); ok {
			line = joinRecords(rec.Records, longLabel, " | ")
		}
		fmt.Fprintf(&b, "%s: %s\n", pad(t.Name), line)
	}

	fmt.Fprintln(&b, "\n"+rule)
	fmt.Fprintf(&b, " Report generated on %s \n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)

	_, err := w.Write(b.Bytes())
	return err
}

func pad(s string) string {
	return fmt.Sprintf("%-*s", nameWidth, s)
}

// shortLabel renders "All" / "L10".
func shortLabel(w analytics.Window) string {
	return w.Label()
}

// longLabel renders "All" / "Last 10".
func longLabel(w analytics.Window) string {
	if w == analytics.All {
		return w.Label()
	}
	return fmt.Sprintf("Last %d", int(w))
}

func joinMeans(means []analytics.WindowMean, label func(analytics.Window) string, sep string) string {
	parts := make([]string, len(means))
	for i, m := range means {
		parts[i] = fmt.Sprintf("%s: %.2f", label(m.Window), m.Mean)
	}
	return strings.Join(parts, sep)
}

func joinRecords(records []analytics.WinLoss, label func(analytics.Window) string, sep string) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = fmt.Sprintf("%s: %s", label(r.Window), r)
	}
	return strings.Join(parts, sep)
}
