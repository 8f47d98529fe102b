// Package handler provides HTTP handlers for all API endpoints. Handlers
// call the matchup service, encode once, and serve repeats from the
// in-memory cache.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/api/respond"
	"github.com/albapepper/major-league-insights/internal/cache"
	"github.com/albapepper/major-league-insights/internal/config"
	"github.com/albapepper/major-league-insights/internal/matchup"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/team"
)

// MatchupService is what the handlers need from matchup.Service.
type MatchupService interface {
	Run(ctx context.Context, date time.Time) (matchup.RunResult, error)
	Matchup(ctx context.Context, nameA, nameB string, date time.Time) (analytics.Result, error)
}

// Pinger reports database reachability. db.Pool satisfies it.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc   MatchupService
	cache *cache.Cache
	db    Pinger
	cfg   *config.Config
	now   func() time.Time
}

// New creates a Handler. db may be nil when no database is configured.
func New(svc MatchupService, c *cache.Cache, db Pinger, cfg *config.Config) *Handler {
	return &Handler{
		svc:   svc,
		cache: c,
		db:    db,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and links.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":    "Major League Insights API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs/",
		"windows": h.cfg.Windows,
	})
}

// HealthCheck returns service health, including the database when one is
// configured.
// @Summary Health check
// @Description Returns health status, cache statistics and database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"database":  "not configured",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if h.db != nil {
		if err := h.db.HealthCheck(r.Context()); err != nil {
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
			status = http.StatusServiceUnavailable
		} else {
			body["database"] = "connected"
		}
	}
	respond.WriteJSONObject(w, status, body)
}

// dateParam reads ?date=, defaulting to today.
func (h *Handler) dateParam(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return provider.Date(h.now()), nil
	}
	return provider.ParseDate(v)
}

// ttlFor caches settled dates longer than today's slate.
func (h *Handler) ttlFor(date time.Time) time.Duration {
	if date.Before(provider.Date(h.now())) {
		return cache.TTLPast
	}
	if h.cfg.CacheTTL > 0 {
		return h.cfg.CacheTTL
	}
	return cache.TTLToday
}

// serveCached answers from the cache when possible and reports whether it
// did.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		notFound  *team.NotFoundError
		ambiguous *team.AmbiguousError
	)
	switch {
	case errors.As(err, &notFound):
		respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", err.Error())
	case errors.As(err, &ambiguous):
		respond.WriteError(w, http.StatusConflict, "TEAM_AMBIGUOUS", err.Error())
	case errors.Is(err, matchup.ErrSameTeam):
		respond.WriteError(w, http.StatusBadRequest, "SAME_TEAM", err.Error())
	case errors.Is(err, analytics.ErrInsufficientData):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.WriteError(w, http.StatusServiceUnavailable, "CANCELED", "Request canceled")
	default:
		if pErr, ok := provider.AsProviderError(err); ok {
			respond.WriteErrorDetail(w, http.StatusBadGateway, "PROVIDER_ERROR",
				"Upstream data source failed", pErr.Error())
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
