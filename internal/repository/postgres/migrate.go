package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements applied at startup. The unique constraints back the
// application-level duplicate checks so a race between check and insert still
// cannot violate them, and the FK cascade removes attendees with their event.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL UNIQUE,
		location      TEXT NOT NULL,
		start_time    TIMESTAMPTZ NOT NULL,
		end_time      TIMESTAMPTZ NOT NULL,
		max_capacity  INTEGER NOT NULL CHECK (max_capacity > 0),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendees (
		id        BIGSERIAL PRIMARY KEY,
		name      TEXT NOT NULL,
		email     TEXT NOT NULL,
		event_id  TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		UNIQUE (event_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events (start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_attendees_event_id ON attendees (event_id)`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
