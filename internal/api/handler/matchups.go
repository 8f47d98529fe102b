package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/major-league-insights/internal/api/respond"
	"github.com/albapepper/major-league-insights/internal/provider"
)

// GetMatchups analyzes every upcoming game on a date.
// @Summary Analytics for a day's slate
// @Description Runs the matchup pipeline for every not-yet-played game on the date. A failed matchup is reported inline and does not fail the request.
// @Tags matchups
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} matchup.RunResult
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /matchups [get]
func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}

	cacheKey := "matchups:" + date.Format(provider.DateLayout)
	ttl := h.ttlFor(date)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	res, err := h.svc.Run(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Encode response")
		return
	}
	// A run with failures may succeed on retry; keep it out of the cache.
	if res.Failed > 0 {
		ttl = 0
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetMatchup analyzes two teams by name.
// @Summary Ad-hoc matchup
// @Description Resolves both team names and computes league, team, record and head-to-head analytics over completed games up to the date.
// @Tags matchups
// @Produce json
// @Param teamA path string true "First team (name, nickname or abbreviation)"
// @Param teamB path string true "Second team"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} analytics.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /matchups/{teamA}/{teamB} [get]
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	teamA := strings.TrimSpace(chi.URLParam(r, "teamA"))
	teamB := strings.TrimSpace(chi.URLParam(r, "teamB"))
	if teamA == "" || teamB == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "both team names are required")
		return
	}

	date, err := h.dateParam(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}

	cacheKey := fmt.Sprintf("matchup:%s:%s:%s",
		strings.ToLower(teamA), strings.ToLower(teamB), date.Format(provider.DateLayout))
	ttl := h.ttlFor(date)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	res, err := h.svc.Matchup(r.Context(), teamA, teamB, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
