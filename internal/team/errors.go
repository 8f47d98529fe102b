package team

import (
	"fmt"
	"strings"

	"github.com/albapepper/major-league-insights/internal/provider"
)

// NotFoundError reports a name with no candidate teams.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no team found for %q", e.Query)
}

// AmbiguousError reports several candidates and no exact match under
// PolicyStrict.
type AmbiguousError struct {
	Query      string
	Candidates []provider.Team
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Name
	}
	return fmt.Sprintf("team name %q is ambiguous: %s", e.Query, strings.Join(names, ", "))
}
