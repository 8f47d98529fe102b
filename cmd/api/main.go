// Command api is the Major League Insights HTTP server.
//
// Usage:
//
//	mli-api
//	API_PORT=8080 SCHEDULE_SOURCE=db mli-api

// @title Major League Insights API
// @version 1.0.0
// @description Rolling-window MLB matchup analytics: league and team run averages, win-loss records and head-to-head history.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Major League Insights
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/major-league-insights/internal/api"
	"github.com/albapepper/major-league-insights/internal/api/handler"
	"github.com/albapepper/major-league-insights/internal/cache"
	"github.com/albapepper/major-league-insights/internal/config"
	"github.com/albapepper/major-league-insights/internal/db"
	"github.com/albapepper/major-league-insights/internal/listener"
	"github.com/albapepper/major-league-insights/internal/maintenance"
	"github.com/albapepper/major-league-insights/internal/matchup"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/provider/statsapi"
	"github.com/albapepper/major-league-insights/internal/store"
	"github.com/albapepper/major-league-insights/internal/team"

	_ "github.com/albapepper/major-league-insights/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := statsapi.NewClient(statsapi.Options{
		BaseURL:           cfg.StatsAPIBaseURL,
		RequestsPerMinute: cfg.StatsAPIRPM,
		GameTypes:         cfg.StatsAPIGameTypes,
		Season:            cfg.SeasonStart.Year(),
	}, logger)

	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	// The database is optional. Without it games come from the Stats API
	// and /health reports the database as not configured.
	var (
		source provider.ScheduleProvider = client
		pinger handler.Pinger
	)
	if cfg.HasDatabase() {
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Migrate(ctx); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		pinger = pool
		if cfg.ScheduleSource == config.SourceDB {
			source = store.NewProvider(pool, logger)
		}

		// Keep recent scores fresh and old seasons trimmed.
		mcfg := maintenance.ConfigFrom(cfg)
		mcfg.AfterSync = appCache.Clear
		go maintenance.New(pool, client, mcfg, logger).Start(ctx)

		// Syncs run from the CLI announce themselves over LISTEN/NOTIFY.
		go listener.Start(ctx, cfg.DatabaseURL, func(listener.SyncEvent) { appCache.Clear() }, logger)
	} else if cfg.ScheduleSource == config.SourceDB {
		logger.Error("SCHEDULE_SOURCE=db requires DATABASE_URL")
		os.Exit(1)
	}

	pipeline := matchup.New(matchup.Options{
		Resolver: team.NewResolver(client, cfg.ResolvePolicy, logger),
		Windows:  cfg.Windows,
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	svc := matchup.NewService(source, pipeline, cfg.SeasonStart, logger)

	router := api.NewRouter(svc, appCache, pinger, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Major League Insights API",
			"addr", addr,
			"environment", cfg.Environment,
			"source", cfg.ScheduleSource,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
