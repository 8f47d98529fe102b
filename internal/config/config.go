// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/mli.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/team"
)

// --------------------------------------------------------------------------
// Table names: single source of truth, matches the games schema
// --------------------------------------------------------------------------

const (
	GamesTable = "games"
)

// Schedule sources.
const (
	SourceAPI = "api"
	SourceDB  = "db"
)

// --------------------------------------------------------------------------
// Config struct: populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Upstream Stats API
	StatsAPIBaseURL   string
	StatsAPIRPM       int
	StatsAPIGameTypes []string

	// ScheduleSource picks where games are read from: "api" or "db".
	ScheduleSource string

	// Season window. SeasonStart is the first date fetched for history.
	SeasonStart time.Time

	// Analytics
	Windows       analytics.Windows
	ResolvePolicy team.Policy
	Workers       int
	ReportsDir    string

	// Database (optional; empty disables the Postgres store)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration

	// Background maintenance in the API server (needs DATABASE_URL).
	// A zero interval disables the task.
	SyncInterval  time.Duration
	SyncLookback  int // days
	PurgeInterval time.Duration
	RetainDays    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	seasonStart, err := envDate("SEASON_START", defaultSeasonStart(time.Now()))
	if err != nil {
		return nil, err
	}

	defaults := analytics.DefaultWindows()
	var windows analytics.Windows
	if windows.League, err = envWindows("WINDOWS_LEAGUE", defaults.League); err != nil {
		return nil, err
	}
	if windows.TeamRuns, err = envWindows("WINDOWS_TEAM", defaults.TeamRuns); err != nil {
		return nil, err
	}
	if windows.Records, err = envWindows("WINDOWS_RECORD", defaults.Records); err != nil {
		return nil, err
	}
	if windows.HeadToHead, err = envWindows("WINDOWS_H2H", defaults.HeadToHead); err != nil {
		return nil, err
	}

	policy, err := team.ParsePolicy(envOr("RESOLVE_POLICY", string(team.PolicyFirst)))
	if err != nil {
		return nil, err
	}

	source := envOr("SCHEDULE_SOURCE", SourceAPI)
	if source != SourceAPI && source != SourceDB {
		return nil, fmt.Errorf("SCHEDULE_SOURCE must be %q or %q, got %q", SourceAPI, SourceDB, source)
	}

	return &Config{
		StatsAPIBaseURL:   envOr("STATSAPI_BASE_URL", "https://statsapi.mlb.com/api/v1"),
		StatsAPIRPM:       envInt("STATSAPI_REQUESTS_PER_MINUTE", 120),
		StatsAPIGameTypes: envList("STATSAPI_GAME_TYPES", nil),

		ScheduleSource: source,

		SeasonStart: seasonStart,

		Windows:       windows,
		ResolvePolicy: policy,
		Workers:       envInt("WORKERS", 1),
		ReportsDir:    envOr("REPORTS_DIR", "reports"),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_MINUTES", 10)) * time.Minute,

		SyncInterval:  time.Duration(envInt("SYNC_INTERVAL_MINUTES", 30)) * time.Minute,
		SyncLookback:  envInt("SYNC_LOOKBACK_DAYS", 3),
		PurgeInterval: time.Duration(envInt("PURGE_INTERVAL_HOURS", 24)) * time.Hour,
		RetainDays:    envInt("RETAIN_DAYS", 730),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether a Postgres store is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// defaultSeasonStart is March 1 of the current year, early enough to cover
// opening day and spring games.
func defaultSeasonStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.March, 1, 0, 0, 0, 0, time.UTC)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envDate(key string, fallback time.Time) (time.Time, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := provider.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", key, err)
	}
	return d, nil
}

func envWindows(key string, fallback []analytics.Window) ([]analytics.Window, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	w, err := analytics.ParseWindows(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return w, nil
}
