// Package listener relays schedule changes between processes over Postgres
// LISTEN/NOTIFY. `mli sync` publishes on the `games_synced` channel after
// it writes games; API servers hold a dedicated pgx connection (not from
// the pool) listening on it and drop cached responses when an event
// arrives.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/major-league-insights/internal/provider"
	"github.com/albapepper/major-league-insights/internal/store"
)

const (
	Channel          = "games_synced"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// SyncEvent is the JSON payload of pg_notify('games_synced', ...).
type SyncEvent struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Upserted  int    `json:"upserted"`
	Timestamp int64  `json:"ts"`
}

// NewSyncEvent describes a sync over start..end.
func NewSyncEvent(start, end time.Time, upserted int) SyncEvent {
	return SyncEvent{
		Start:     start.Format(provider.DateLayout),
		End:       end.Format(provider.DateLayout),
		Upserted:  upserted,
		Timestamp: time.Now().Unix(),
	}
}

// Publish sends ev to every listener.
func Publish(ctx context.Context, e store.Execer, ev SyncEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode sync event: %w", err)
	}
	if _, err := e.Exec(ctx, "SELECT pg_notify($1, $2)", Channel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", Channel, err)
	}
	return nil
}

// Start opens a dedicated connection and calls onEvent for every sync
// event. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, onEvent func(SyncEvent), logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, onEvent, logger)
		if ctx.Err() != nil {
			logger.Info("Sync listener stopped (context cancelled)")
			return
		}

		logger.Error("Sync listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, onEvent func(SyncEvent), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	logger.Info("Sync listener connected", "channel", Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handle(notification.Payload, onEvent, logger)
	}
}

// handle decodes one payload and passes it on. Malformed payloads are
// logged and dropped.
func handle(payload string, onEvent func(SyncEvent), logger *slog.Logger) {
	var ev SyncEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		logger.Warn("Failed to parse sync event", "payload", payload, "error", err)
		return
	}
	logger.Info("Sync event received",
		"start", ev.Start,
		"end", ev.End,
		"upserted", ev.Upserted)
	onEvent(ev)
}
