package provider

import (
	"context"
	"time"
)

// ScheduleProvider fetches every game between start and end, inclusive.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, start, end time.Time) ([]Game, error)
}

// TeamLookup returns all candidate teams matching free text, in provider order.
type TeamLookup interface {
	LookupTeams(ctx context.Context, query string) ([]Team, error)
}
