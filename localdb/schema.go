// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localdb

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/teamup/cliparse"
)

// Open connects to the local store and ensures the schema exists.
// sqlite is the default; postgres is supported for shared-host installs.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping local database: %w", err)
	}
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates all tables needed by the client.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are set by the client, not the database, so the schema works
// unchanged on both drivers.
const schema = `
-- Session (at most one row)
CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    token TEXT NOT NULL,
    user_id BIGINT NOT NULL,
    username TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);

-- Teams created while the backend was unreachable (append-only)
CREATE TABLE IF NOT EXISTS fallback_team (
    id TEXT PRIMARY KEY,
    team_name TEXT NOT NULL,
    team_size INTEGER NOT NULL,
    description TEXT,
    game_id BIGINT NOT NULL,
    day_of_week INTEGER NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    members TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fallback_team_created_at ON fallback_team(created_at);

-- Teammate grades (one per teammate)
CREATE TABLE IF NOT EXISTS grade (
    teammate_id BIGINT PRIMARY KEY,
    rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    submitted_at TIMESTAMP NOT NULL,
    synced INTEGER NOT NULL DEFAULT 0
);
`
