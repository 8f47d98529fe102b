// Command mli is the Major League Insights matchup analytics CLI.
//
// Usage:
//
//	mli report --date 2025-06-10 --workers 4
//	mli report --source db --out reports
//	mli matchup "New York Mets" ATL --date 2025-06-10
//	mli sync --start 2025-03-27 --end 2025-06-09
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/major-league-insights/internal/config"
	"github.com/albapepper/major-league-insights/internal/db"
	"github.com/albapepper/major-league-insights/internal/listener"
	"github.com/albapepper/major-league-insights/internal/matchup"
	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/provider/statsapi"
	"github.com/albapepper/major-league-insights/internal/report"
	"github.com/albapepper/major-league-insights/internal/store"
	"github.com/albapepper/major-league-insights/internal/team"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "mli",
		Short:        "Major League Insights matchup analytics CLI",
		SilenceUsage: true,
	}

	root.AddCommand(reportCmd())
	root.AddCommand(matchupCmd())
	root.AddCommand(syncCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// report command
// --------------------------------------------------------------------------

func reportCmd() *cobra.Command {
	var (
		date    string
		out     string
		workers int
		source  string
		stdout  bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a matchup report for every upcoming game on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				day, err := parseDay("date", date)
				if err != nil {
					return err
				}
				if out != "" {
					cfg.ReportsDir = out
				}
				if workers > 0 {
					cfg.Workers = workers
				}
				if source != "" {
					cfg.ScheduleSource = source
				}

				var sink matchup.Sink
				if stdout {
					sink = report.NewStreamWriter(os.Stdout)
				} else {
					sink = report.NewFileWriter(cfg.ReportsDir, logger)
				}

				svc, cleanup, err := buildService(ctx, cfg, sink)
				if err != nil {
					return err
				}
				defer cleanup()

				result, err := svc.Run(ctx, day)
				if err != nil {
					return err
				}
				logger.Info("Report run finished", "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("matchup error", "error", e)
				}
				if result.Failed > 0 && result.Succeeded == 0 {
					return fmt.Errorf("all %d matchups failed", result.Failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date to report on (YYYY-MM-DD); empty = today")
	cmd.Flags().StringVar(&out, "out", "", "Reports directory; empty = REPORTS_DIR")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent matchups; 0 = WORKERS")
	cmd.Flags().StringVar(&source, "source", "", "Schedule source (api, db); empty = SCHEDULE_SOURCE")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print reports instead of writing files")
	return cmd
}

// --------------------------------------------------------------------------
// matchup command
// --------------------------------------------------------------------------

func matchupCmd() *cobra.Command {
	var (
		date   string
		source string
	)
	cmd := &cobra.Command{
		Use:   "matchup TEAM_A TEAM_B",
		Short: "Print a report for any two teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				day, err := parseDay("date", date)
				if err != nil {
					return err
				}
				if source != "" {
					cfg.ScheduleSource = source
				}

				svc, cleanup, err := buildService(ctx, cfg, nil)
				if err != nil {
					return err
				}
				defer cleanup()

				res, err := svc.Matchup(ctx, args[0], args[1], day)
				if err != nil {
					return err
				}
				return report.Render(cmd.OutOrStdout(), res, time.Now())
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Use completed games up to this date (YYYY-MM-DD); empty = today")
	cmd.Flags().StringVar(&source, "source", "", "Schedule source (api, db); empty = SCHEDULE_SOURCE")
	return cmd
}

// --------------------------------------------------------------------------
// sync command
// --------------------------------------------------------------------------

func syncCmd() *cobra.Command {
	var (
		start   string
		end     string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the schedule from the Stats API into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				from := cfg.SeasonStart
				if start != "" {
					d, err := provider.ParseDate(start)
					if err != nil {
						return fmt.Errorf("--start: %w", err)
					}
					from = d
				}
				to, err := parseDay("end", end)
				if err != nil {
					return err
				}

				pool, err := db.New(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				if migrate {
					if err := pool.Migrate(ctx); err != nil {
						return err
					}
				}

				result, err := store.Sync(ctx, pool, newStatsClient(cfg), from, to, logger)
				if err != nil {
					return err
				}
				logger.Info("Sync finished", "summary", result.Summary())

				// Tell running API servers their cached responses are stale.
				if result.Upserted > 0 {
					if err := listener.Publish(ctx, pool, listener.NewSyncEvent(from, to, result.Upserted)); err != nil {
						logger.Warn("Failed to publish sync event", "error", err)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First date (YYYY-MM-DD); empty = SEASON_START")
	cmd.Flags().StringVar(&end, "end", "", "Last date (YYYY-MM-DD); empty = today")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Create the games table if missing")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}

func newStatsClient(cfg *config.Config) *statsapi.Client {
	return statsapi.NewClient(statsapi.Options{
		BaseURL:           cfg.StatsAPIBaseURL,
		RequestsPerMinute: cfg.StatsAPIRPM,
		GameTypes:         cfg.StatsAPIGameTypes,
		Season:            cfg.SeasonStart.Year(),
	}, logger)
}

// buildService wires the schedule source, resolver and pipeline. Team
// lookups always go to the Stats API; only games can come from Postgres.
func buildService(ctx context.Context, cfg *config.Config, sink matchup.Sink) (*matchup.Service, func(), error) {
	client := newStatsClient(cfg)
	cleanup := func() {}

	var source provider.ScheduleProvider = client
	switch cfg.ScheduleSource {
	case config.SourceAPI, "":
	case config.SourceDB:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		source = store.NewProvider(pool, logger)
		cleanup = pool.Close
	default:
		return nil, nil, fmt.Errorf("unknown schedule source %q", cfg.ScheduleSource)
	}

	pipeline := matchup.New(matchup.Options{
		Resolver: team.NewResolver(client, cfg.ResolvePolicy, logger),
		Sink:     sink,
		Windows:  cfg.Windows,
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	return matchup.NewService(source, pipeline, cfg.SeasonStart, logger), cleanup, nil
}

// parseDay reads a date flag, defaulting to today.
func parseDay(flag, v string) (time.Time, error) {
	if v == "" {
		return provider.Date(time.Now()), nil
	}
	d, err := provider.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}
