// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/major-league-insights/internal/config"
)

// Schema creates the games table when missing. Applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS ` + config.GamesTable + ` (
	game_id        INTEGER PRIMARY KEY,
	game_date      DATE NOT NULL,
	game_number    INTEGER NOT NULL DEFAULT 1,
	status         TEXT,
	home_team_id   INTEGER NOT NULL,
	home_team_name TEXT NOT NULL,
	home_score     INTEGER,
	away_team_id   INTEGER NOT NULL,
	away_team_name TEXT NOT NULL,
	away_score     INTEGER,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (home_team_id <> away_team_id)
);
CREATE INDEX IF NOT EXISTS games_date_idx ON ` + config.GamesTable + ` (game_date);
`

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if !cfg.HasDatabase() {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Migrate applies Schema.
func (p *Pool) Migrate(ctx context.Context) error {
	if _, err := p.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and sync
// layers use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Schedule reads
		"games_between": `SELECT game_id, game_date, game_number, status,
				home_team_id, home_team_name, home_score,
				away_team_id, away_team_name, away_score
			FROM ` + config.GamesTable + `
			WHERE game_date BETWEEN $1 AND $2
			ORDER BY game_date, game_number, game_id`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
