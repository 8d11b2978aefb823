package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS prompt_documents (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT UNIQUE NOT NULL,
		description       TEXT,
		source_url        TEXT,
		local_path        TEXT,
		category          TEXT,
		priority          INTEGER DEFAULT 0,
		source_updated_at TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		agent_name TEXT,
		status     TEXT DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER NOT NULL,
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		timestamp       TEXT NOT NULL,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id)
	)`,
	`CREATE TABLE IF NOT EXISTS generated_prompts (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER,
		name            TEXT NOT NULL,
		content         TEXT NOT NULL,
		metadata        TEXT,
		created_at      TEXT NOT NULL,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id)
	)`,
}

// Columns added after the initial release. Applied on every open so that
// databases created by older builds pick them up without a migration tool.
var backfills = []string{
	`ALTER TABLE prompt_documents ADD COLUMN priority INTEGER DEFAULT 0`,
	`ALTER TABLE prompt_documents ADD COLUMN source_updated_at TEXT`,
}

// EnsureSchema creates all tables and applies additive column backfills.
// It is idempotent and safe to run on every open: existing tables and
// columns are left untouched, and no statement is ever destructive.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for _, alter := range backfills {
		if _, err := db.ExecContext(ctx, alter); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("backfill column: %w", err)
		}
	}

	return nil
}

// SQLite reports a repeated ADD COLUMN as a generic SQLITE_ERROR, so the
// message text is the only reliable signal.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
