package storage

import "database/sql"

// migrateV001 creates the initial GrowthTrack schema: engagement records,
// content library items, and the settings key-value table. Every statement
// uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id                INTEGER PRIMARY KEY,
			ts                INTEGER NOT NULL,
			threads           INTEGER NOT NULL CHECK (threads >= 0),
			line              INTEGER CHECK (line IS NULL OR line >= 0),
			note              TEXT NOT NULL DEFAULT '',
			note_line_enabled BOOLEAN,
			created_at        TEXT NOT NULL DEFAULT '',
			updated_at        TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS content_items (
			id         INTEGER PRIMARY KEY,
			title      TEXT NOT NULL,
			type       TEXT NOT NULL DEFAULT '',
			tags       TEXT NOT NULL DEFAULT '',
			ref        TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_records_ts          ON records(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_content_updated_at  ON content_items(updated_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
