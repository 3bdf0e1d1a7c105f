// Package journeydb provides the SQLite-backed journey store.
package journeydb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS journeys (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	cover_image TEXT NOT NULL DEFAULT '',
	persona_ids TEXT NOT NULL DEFAULT '[]',
	state       TEXT NOT NULL DEFAULT 'draft',
	status      TEXT NOT NULL DEFAULT 'draft',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stages (
	id         TEXT PRIMARY KEY,
	journey_id TEXT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
	name       TEXT NOT NULL DEFAULT '',
	ord        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS touchpoints (
	id              TEXT PRIMARY KEY,
	stage_id        TEXT NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
	name            TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	emotion         TEXT NOT NULL DEFAULT 'neutral',
	customer_action TEXT NOT NULL DEFAULT '',
	customer_job    TEXT NOT NULL DEFAULT '',
	image           TEXT NOT NULL DEFAULT '',
	insights        TEXT NOT NULL DEFAULT '{}',
	metrics         TEXT NOT NULL DEFAULT '{}',
	ord             INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stages_journey ON stages(journey_id);
CREATE INDEX IF NOT EXISTS idx_touchpoints_stage ON touchpoints(stage_id);
`

// DB wraps a sql.DB with journey store operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("journeydb: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journeydb: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journeydb: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
