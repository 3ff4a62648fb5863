package store

import (
	"fmt"

	"go.uber.org/zap"
)

// migration is one versioned schema step
type migration struct {
	version int
	name    string
	sql     string
}

// migrations run in order exactly once per store file
var migrations = []migration{
	{
		version: 1,
		name:    "create_drafts",
		sql: `
			CREATE TABLE IF NOT EXISTS drafts (
				name TEXT PRIMARY KEY,
				span TEXT NOT NULL,
				leave_type TEXT NOT NULL DEFAULT '',
				date TEXT NOT NULL DEFAULT '',
				start_date TEXT NOT NULL DEFAULT '',
				end_date TEXT NOT NULL DEFAULT '',
				duration TEXT NOT NULL DEFAULT '',
				reason TEXT NOT NULL DEFAULT '',
				attachment_url TEXT NOT NULL DEFAULT '',
				attachment_filename TEXT NOT NULL DEFAULT '',
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		version: 2,
		name:    "create_history",
		sql: `
			CREATE TABLE IF NOT EXISTS history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				kind TEXT NOT NULL,
				detail TEXT NOT NULL DEFAULT '',
				row_count INTEGER NOT NULL DEFAULT 0,
				output_path TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_history_kind ON history(kind);
		`,
	},
}

// migrate applies pending migrations, tracking versions in
// schema_migrations.
func (db *DB) migrate() error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate migrations: %w", err)
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		db.logger.Debug("Applied migration",
			zap.Int("version", m.version),
			zap.String("name", m.name))
	}

	return nil
}
