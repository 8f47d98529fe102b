// Package store persists raw game records in Postgres so reports can be
// built without hitting the upstream API. Computed analytics are never
// stored.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/major-league-insights/internal/config"
	"github.com/albapepper/major-league-insights/internal/provider"
)

const providerName = "postgres"

// Querier is the subset of pgxpool.Pool the store uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const upsertGameSQL = `
	INSERT INTO ` + config.GamesTable + ` (
		game_id, game_date, game_number, status,
		home_team_id, home_team_name, home_score,
		away_team_id, away_team_name, away_score
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (game_id) DO UPDATE SET
		game_date = EXCLUDED.game_date,
		game_number = EXCLUDED.game_number,
		status = EXCLUDED.status,
		home_team_id = EXCLUDED.home_team_id,
		home_team_name = EXCLUDED.home_team_name,
		home_score = EXCLUDED.home_score,
		away_team_id = EXCLUDED.away_team_id,
		away_team_name = EXCLUDED.away_team_name,
		away_score = EXCLUDED.away_score,
		updated_at = NOW()`

// UpsertGames writes games in one batch and returns how many were written.
func UpsertGames(ctx context.Context, q Querier, games []provider.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, g := range games {
		batch.Queue(upsertGameSQL,
			g.ID, g.Date, gameNumber(g), nilEmpty(g.Status),
			g.HomeTeamID, g.HomeTeamName, g.HomeScore,
			g.AwayTeamID, g.AwayTeamName, g.AwayScore,
		)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for _, g := range games {
		if _, err := br.Exec(); err != nil {
			return written, fmt.Errorf("upsert game %d: %w", g.ID, err)
		}
		written++
	}
	return written, nil
}

// LoadGames reads games dated start..end inclusive, in date order.
func LoadGames(ctx context.Context, q Querier, start, end time.Time) ([]provider.Game, error) {
	rows, err := q.Query(ctx, "games_between", start, end)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []provider.Game
	for rows.Next() {
		var (
			g      provider.Game
			status *string
		)
		if err := rows.Scan(
			&g.ID, &g.Date, &g.GameNumber, &status,
			&g.HomeTeamID, &g.HomeTeamName, &g.HomeScore,
			&g.AwayTeamID, &g.AwayTeamName, &g.AwayScore,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if status != nil {
			g.Status = *status
		}
		g.Date = provider.Date(g.Date)
		games = append(games, g)
	}
	return games, rows.Err()
}

// Execer runs statements that return no rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PurgeBefore deletes games dated before day and returns how many went.
func PurgeBefore(ctx context.Context, e Execer, day time.Time) (int64, error) {
	tag, err := e.Exec(ctx, `DELETE FROM `+config.GamesTable+` WHERE game_date < $1`, provider.Date(day))
	if err != nil {
		return 0, fmt.Errorf("purge games: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Provider adapts a Postgres pool to provider.ScheduleProvider.
type Provider struct {
	q      Querier
	logger *slog.Logger
}

// NewProvider creates a Provider over q.
func NewProvider(q Querier, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{q: q, logger: logger}
}

// FetchSchedule implements provider.ScheduleProvider.
func (p *Provider) FetchSchedule(ctx context.Context, start, end time.Time) ([]provider.Game, error) {
	games, err := LoadGames(ctx, p.q, start, end)
	if err != nil {
		return nil, provider.Wrap(providerName, "load games", err)
	}
	p.logger.Info("Loaded games from database", "count", len(games))
	return games, nil
}

// Sync fetches start..end from src and upserts every game.
func Sync(ctx context.Context, q Querier, src provider.ScheduleProvider, start, end time.Time, logger *slog.Logger) (SyncResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	began := time.Now()
	games, err := src.FetchSchedule(ctx, start, end)
	if err != nil {
		return SyncResult{}, err
	}
	res := SyncResult{Fetched: len(games)}
	for _, g := range games {
		if g.Completed() {
			res.Completed++
		}
	}
	res.Upserted, err = UpsertGames(ctx, q, games)
	res.Duration = time.Since(began)
	if err != nil {
		return res, err
	}
	logger.Info("Schedule synced", "summary", res.Summary())
	return res, nil
}

// SyncResult tracks counts from a sync run.
type SyncResult struct {
	Fetched   int
	Completed int
	Upserted  int
	Duration  time.Duration
}

// Summary returns a human-readable summary of the sync.
func (r SyncResult) Summary() string {
	return fmt.Sprintf("fetched=%d completed=%d upserted=%d dur=%s",
		r.Fetched, r.Completed, r.Upserted, r.Duration.Round(time.Millisecond))
}

func gameNumber(g provider.Game) int {
	if g.GameNumber <= 0 {
		return 1
	}
	return g.GameNumber
}

// nilEmpty converts "" to nil so optional text columns store NULL.
func nilEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
