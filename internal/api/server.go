package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/major-league-insights/internal/api/handler"
	"github.com/albapepper/major-league-insights/internal/cache"
	"github.com/albapepper/major-league-insights/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. db may be nil when no database is configured.
func NewRouter(svc handler.MatchupService, appCache *cache.Cache, db handler.Pinger, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(svc, appCache, db, cfg)

	// --- Routes ---
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/matchups", h.GetMatchups)
		r.Get("/matchups/{teamA}/{teamB}", h.GetMatchup)
	})

	return r
}
