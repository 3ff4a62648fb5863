package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hrmstack/leavectl/internal/intake"
	"github.com/hrmstack/leavectl/internal/models"
	"go.uber.org/zap"
)

// ErrDraftNotFound is returned when no draft exists under the given name
var ErrDraftNotFound = errors.New("draft not found")

// DraftInfo is a listing entry for saved drafts
type DraftInfo struct {
	Name      string
	LeaveType string
	UpdatedAt time.Time
}

// DraftRepository persists in-progress drafts between CLI invocations
type DraftRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDraftRepository creates a draft repository
func NewDraftRepository(db *DB, logger *zap.Logger) *DraftRepository {
	return &DraftRepository{db: db, logger: logger}
}

// Save stores the draft under a name, replacing any previous draft with the
// same name. The attachment reference is stored whole or not at all.
func (r *DraftRepository) Save(name string, draft *intake.LeaveRequestDraft) error {
	var attURL, attName string
	if att, ok := draft.Attachment(); ok {
		attURL = att.URL
		attName = att.Filename
	}

	_, err := r.db.Exec(`
		INSERT INTO drafts (name, span, leave_type, date, start_date, end_date, duration, reason, attachment_url, attachment_filename, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			span = excluded.span,
			leave_type = excluded.leave_type,
			date = excluded.date,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			duration = excluded.duration,
			reason = excluded.reason,
			attachment_url = excluded.attachment_url,
			attachment_filename = excluded.attachment_filename,
			updated_at = CURRENT_TIMESTAMP
	`, name, string(draft.Span), string(draft.LeaveType), draft.Date,
		draft.StartDate, draft.EndDate, string(draft.Duration), draft.Reason,
		attURL, attName)
	if err != nil {
		r.logger.Error("Failed to save draft", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to save draft: %w", err)
	}

	r.logger.Debug("Draft saved", zap.String("name", name))
	return nil
}

// Get loads a draft by name
func (r *DraftRepository) Get(name string) (*intake.LeaveRequestDraft, error) {
	row := r.db.QueryRow(`
		SELECT span, leave_type, date, start_date, end_date, duration, reason, attachment_url, attachment_filename
		FROM drafts WHERE name = ?
	`, name)

	var span, leaveType, date, startDate, endDate, duration, reason, attURL, attName string
	err := row.Scan(&span, &leaveType, &date, &startDate, &endDate, &duration, &reason, &attURL, &attName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	draft := intake.NewLeaveRequestDraft(intake.Span(span))
	draft.LeaveType = models.LeaveType(leaveType)
	draft.Date = date
	draft.StartDate = startDate
	draft.EndDate = endDate
	draft.Duration = models.LeaveDuration(duration)
	draft.Reason = reason
	if attURL != "" && attName != "" {
		if err := draft.SetAttachment(attURL, attName); err != nil {
			return nil, fmt.Errorf("stored draft carries a broken attachment: %w", err)
		}
	}
	return draft, nil
}

// List returns saved drafts, most recently updated first
func (r *DraftRepository) List() ([]DraftInfo, error) {
	rows, err := r.db.Query(`
		SELECT name, leave_type, updated_at FROM drafts ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var infos []DraftInfo
	for rows.Next() {
		var info DraftInfo
		if err := rows.Scan(&info.Name, &info.LeaveType, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete drops a draft, typically after successful submission
func (r *DraftRepository) Delete(name string) error {
	res, err := r.db.Exec("DELETE FROM drafts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDraftNotFound
	}
	return nil
}
