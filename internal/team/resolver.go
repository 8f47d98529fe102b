// Package team resolves free-text team names to canonical team identities.
package team

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/albapepper/major-league-insights/internal/provider"
)

// Policy decides what happens when several candidates match and none
// matches exactly.
type Policy string

const (
	// PolicyFirst falls back to the first candidate in provider order.
	PolicyFirst Policy = "first"
	// PolicyStrict fails with AmbiguousError instead.
	PolicyStrict Policy = "strict"
)

// ParsePolicy parses "first" or "strict"; empty means PolicyFirst.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFirst:
		return PolicyFirst, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown resolve policy %q (want first or strict)", s)
	}
}

// Resolver maps names to teams, caching results for its lifetime. Build one
// per run.
type Resolver struct {
	lookup provider.TeamLookup
	policy Policy
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]provider.Team
}

// NewResolver creates a Resolver over lookup.
func NewResolver(lookup provider.TeamLookup, policy Policy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = PolicyFirst
	}
	return &Resolver{
		lookup: lookup,
		policy: policy,
		logger: logger,
		cache:  make(map[string]provider.Team),
	}
}

// Resolve maps a full name, club name or abbreviation to one team.
//
// An exact case-insensitive match on abbreviation wins, then full name, then
// short name. Otherwise the policy decides.
func (r *Resolver) Resolve(ctx context.Context, name string) (provider.Team, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)

	r.mu.Lock()
	t, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return t, nil
	}

	candidates, err := r.lookup.LookupTeams(ctx, name)
	if err != nil {
		return provider.Team{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	t, err = r.pick(name, key, candidates)
	if err != nil {
		return provider.Team{}, err
	}

	r.mu.Lock()
	r.cache[key] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Resolver) pick(name, key string, candidates []provider.Team) (provider.Team, error) {
	if len(candidates) == 0 {
		return provider.Team{}, &NotFoundError{Query: name}
	}

	fields := []func(provider.Team) string{
		func(t provider.Team) string { return t.Abbreviation },
		func(t provider.Team) string { return t.Name },
		func(t provider.Team) string { return t.ShortName },
	}
	for _, field := range fields {
		for _, c := range candidates {
			if strings.ToLower(field(c)) == key {
				return c, nil
			}
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if r.policy == PolicyStrict {
		return provider.Team{}, &AmbiguousError{Query: name, Candidates: candidates}
	}
	r.logger.Warn("Ambiguous team name, using first candidate",
		"query", name, "candidates", len(candidates), "picked", candidates[0].Name)
	return candidates[0], nil
}
