package intake

import (
	"fmt"
	"time"

	"github.com/hrmstack/leavectl/internal/models"
)

// DateLayout is the calendar-date format the backend exchanges (no time component)
const DateLayout = "2006-01-02"

// Span distinguishes the two intake variants: a single day with half/full-day
// granularity, or an inclusive date range.
type Span string

const (
	SpanSingleDay Span = "single_day"
	SpanDateRange Span = "date_range"
)

// LeaveRequestDraft is the in-progress, not-yet-submitted leave request.
// Fields hold raw form input; nothing is parsed or checked until Validate.
type LeaveRequestDraft struct {
	Span      Span
	LeaveType models.LeaveType
	Date      string // single-day variant, YYYY-MM-DD
	StartDate string // date-range variant, YYYY-MM-DD
	EndDate   string // date-range variant, YYYY-MM-DD
	Duration  models.LeaveDuration
	Reason    string

	attachment models.Attachment
}

// NewLeaveRequestDraft creates an empty draft for the given variant
func NewLeaveRequestDraft(span Span) *LeaveRequestDraft {
	return &LeaveRequestDraft{Span: span}
}

// Attachment returns the attached file reference, if any
func (d *LeaveRequestDraft) Attachment() (models.Attachment, bool) {
	if d.attachment.IsZero() {
		return models.Attachment{}, false
	}
	return d.attachment, true
}

// SetAttachment records an uploaded file reference. URL and filename must be
// set together; a half-populated reference is rejected.
func (d *LeaveRequestDraft) SetAttachment(url, filename string) error {
	if url == "" || filename == "" {
		return fmt.Errorf("attachment reference requires both url and filename")
	}
	d.attachment = models.Attachment{URL: url, Filename: filename}
	return nil
}

// ClearAttachment removes any attached file reference
func (d *LeaveRequestDraft) ClearAttachment() {
	d.attachment = models.Attachment{}
}

// Reset returns the draft to its freshly opened state, keeping the variant
func (d *LeaveRequestDraft) Reset() {
	*d = LeaveRequestDraft{Span: d.Span}
}

// MinSelectableDate returns the earliest leave date the form accepts:
// always tomorrow relative to the given clock, so same-day requests are
// rejected.
func MinSelectableDate(now time.Time) time.Time {
	y, m, day := now.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// CanEdit reports whether an existing request may be reopened for editing:
// only pending requests whose start date has not passed. Approved, rejected
// and past-dated requests are terminal.
func CanEdit(leave models.LeaveRequest, now time.Time) bool {
	if leave.Status != models.LeaveStatusPending {
		return false
	}
	start, err := time.ParseInLocation(DateLayout, leave.StartDate, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	return !start.Before(today)
}
