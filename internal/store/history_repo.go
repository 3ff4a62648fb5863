package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// History entry kinds
const (
	HistorySubmission       = "submission"
	HistoryExportAttendance = "export_attendance"
	HistoryExportLeave      = "export_leave"
)

// HistoryEntry records one submission or export performed by this client
type HistoryEntry struct {
	ID         int64
	Kind       string
	Detail     string
	RowCount   int
	OutputPath string
	CreatedAt  time.Time
}

// HistoryRepository records what this client sent out and wrote to disk
type HistoryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewHistoryRepository creates a history repository
func NewHistoryRepository(db *DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{db: db, logger: logger}
}

// RecordExport logs a report export
func (r *HistoryRepository) RecordExport(kind string, rowCount int, outputPath string) error {
	return r.record(HistoryEntry{Kind: kind, RowCount: rowCount, OutputPath: outputPath})
}

// RecordSubmission logs an accepted leave submission
func (r *HistoryRepository) RecordSubmission(leaveID, detail string) error {
	return r.record(HistoryEntry{Kind: HistorySubmission, Detail: fmt.Sprintf("%s: %s", leaveID, detail)})
}

func (r *HistoryRepository) record(e HistoryEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO history (kind, detail, row_count, output_path) VALUES (?, ?, ?, ?)
	`, e.Kind, e.Detail, e.RowCount, e.OutputPath)
	if err != nil {
		r.logger.Error("Failed to record history entry", zap.String("kind", e.Kind), zap.Error(err))
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first
func (r *HistoryRepository) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`
		SELECT id, kind, detail, row_count, output_path, created_at
		FROM history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Detail, &e.RowCount, &e.OutputPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
