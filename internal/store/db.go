// Package store is the CLI's local state: drafts that survive between
// invocations and a history of submissions and report exports. Backed by a
// single SQLite file under the config directory.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps the SQLite handle
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the local store and applies pending
// migrations. WAL keeps concurrent CLI invocations from tripping over each
// other.
func Open(path string, logger *zap.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	db := &DB{DB: sqlDB, logger: logger}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Debug("Local store opened", zap.String("path", path))
	return db, nil
}

// Close closes the store
func (db *DB) Close() error {
	return db.DB.Close()
}
