package intake

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Form field names used as keys in validation results
const (
	FieldLeaveType       = "leave_type"
	FieldDate            = "date"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldDuration        = "duration"
	FieldReason          = "reason"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)

// Reason must carry at least this many characters (trimmed) on the
// date-range variant.
const minReasonLength = 10

// MinPasswordLength is the shortest new password the form accepts
const MinPasswordLength = 6

// Result is a validation verdict: either Valid, or a message per failing field
type Result struct {
	Valid  bool
	Errors map[string]string
}

func newResult() Result {
	return Result{Valid: true, Errors: make(map[string]string)}
}

func (r *Result) fail(field, message string) {
	r.Valid = false
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
}

// Validate checks a draft against the intake rules. It is pure: no network,
// no mutation, same draft and clock always yield the same verdict. Callers
// re-run it on every submission attempt.
func Validate(d *LeaveRequestDraft, now time.Time) Result {
	res := newResult()

	if d.LeaveType == "" {
		res.fail(FieldLeaveType, "leave type is required")
	} else if !d.LeaveType.IsValid() {
		res.fail(FieldLeaveType, "unknown leave type: "+d.LeaveType.String())
	}

	minDate := MinSelectableDate(now)

	switch d.Span {
	case SpanSingleDay:
		validateDate(&res, FieldDate, d.Date, minDate, now.Location())
		if d.Duration == "" {
			res.fail(FieldDuration, "duration is required")
		} else if !d.Duration.IsValid() {
			res.fail(FieldDuration, "unknown duration: "+string(d.Duration))
		}
		if strings.TrimSpace(d.Reason) == "" {
			res.fail(FieldReason, "reason is required")
		}
	case SpanDateRange:
		start := validateDate(&res, FieldStartDate, d.StartDate, minDate, now.Location())
		end := validateDate(&res, FieldEndDate, d.EndDate, minDate, now.Location())
		if start != nil && end != nil && end.Before(*start) {
			res.fail(FieldEndDate, "end date must not be before start date")
		}
		reason := strings.TrimSpace(d.Reason)
		if reason == "" {
			res.fail(FieldReason, "reason is required")
		} else if utf8.RuneCountInString(reason) < minReasonLength {
			res.fail(FieldReason, "reason must be at least 10 characters")
		}
	default:
		res.fail(FieldDate, "unknown intake variant")
	}

	return res
}

// validateDate checks presence, format and the tomorrow-or-later rule,
// returning the parsed date when well-formed.
func validateDate(res *Result, field, value string, minDate time.Time, loc *time.Location) *time.Time {
	if value == "" {
		res.fail(field, "date is required")
		return nil
	}
	parsed, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		res.fail(field, "date must be in YYYY-MM-DD format")
		return nil
	}
	if parsed.Before(minDate) {
		res.fail(field, "date must be tomorrow or later")
		return nil
	}
	return &parsed
}

// ValidatePasswordChange checks the standalone password-change form
func ValidatePasswordChange(current, newPassword, confirm string) Result {
	res := newResult()

	if current == "" {
		res.fail(FieldCurrentPassword, "current password is required")
	}
	if newPassword == "" {
		res.fail(FieldNewPassword, "new password is required")
	} else if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		res.fail(FieldNewPassword, "new password must be at least 6 characters")
	}
	if confirm == "" {
		res.fail(FieldConfirmPassword, "password confirmation is required")
	} else if confirm != newPassword {
		res.fail(FieldConfirmPassword, "passwords do not match")
	}

	return res
}
