package models

import "time"

// LeaveType enumerates the leave categories the backend accepts
type LeaveType string

const (
	LeaveTypeSick       LeaveType = "Sick"
	LeaveTypeEmergency  LeaveType = "Emergency"
	LeaveTypePreplanned LeaveType = "Preplanned"
	LeaveTypeCasual     LeaveType = "Casual"
	LeaveTypeAnnual     LeaveType = "Annual"
)

var validLeaveTypes = map[LeaveType]bool{
	LeaveTypeSick:       true,
	LeaveTypeEmergency:  true,
	LeaveTypePreplanned: true,
	LeaveTypeCasual:     true,
	LeaveTypeAnnual:     true,
}

// IsValid returns true if the leave type is one the backend knows
func (t LeaveType) IsValid() bool {
	return validLeaveTypes[t]
}

// String returns the string representation of the leave type
func (t LeaveType) String() string {
	return string(t)
}

// LeaveDuration enumerates the granularity of a single-day leave
type LeaveDuration string

const (
	DurationFirstHalf  LeaveDuration = "First Half"
	DurationSecondHalf LeaveDuration = "Second Half"
	DurationFullDay    LeaveDuration = "Full Day"
)

var validDurations = map[LeaveDuration]bool{
	DurationFirstHalf:  true,
	DurationSecondHalf: true,
	DurationFullDay:    true,
}

// IsValid returns true if the duration is a known granularity
func (d LeaveDuration) IsValid() bool {
	return validDurations[d]
}

// Leave request status constants
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Attachment is a stored file reference attached to a leave request.
// URL and Filename are always set together; a reference with only one of
// them is invalid.
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// IsZero reports whether no attachment is present
func (a Attachment) IsZero() bool {
	return a.URL == "" && a.Filename == ""
}

// Complete reports whether both halves of the reference are set
func (a Attachment) Complete() bool {
	return a.URL != "" && a.Filename != ""
}

// LeaveRequest represents a leave request as the backend returns it
type LeaveRequest struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	EmpName    string      `json:"emp_name"`
	Team       string      `json:"team"`
	LeaveType  string      `json:"leave_type"`
	StartDate  string      `json:"start_date"` // YYYY-MM-DD
	EndDate    string      `json:"end_date"`   // YYYY-MM-DD
	Duration   string      `json:"duration"`
	Reason     string      `json:"reason,omitempty"`
	Status     string      `json:"status"`
	ApprovedBy string      `json:"approved_by,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// LeaveBalance represents the remaining allowance per leave type
type LeaveBalance struct {
	EmployeeID string         `json:"employee_id"`
	Balances   map[string]int `json:"balances"`
	Year       int            `json:"year"`
}
