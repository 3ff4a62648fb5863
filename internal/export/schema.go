// Package export flattens backend report rows into downloadable files. A
// schema is an ordered list of columns, each naming a header and how to pull
// its value out of a row; the same schema drives both CSV and XLSX output.
package export

import "github.com/hrmstack/leavectl/internal/models"

// Column describes one output column for rows of type T
type Column[T any] struct {
	Header  string
	Extract func(T) string
}

// Schema is an ordered column list; order defines the output column order
type Schema[T any] []Column[T]

// Headers returns the schema's header row
func (s Schema[T]) Headers() []string {
	headers := make([]string, len(s))
	for i, col := range s {
		headers[i] = col.Header
	}
	return headers
}

// Values flattens one row in schema order
func (s Schema[T]) Values(row T) []string {
	values := make([]string, len(s))
	for i, col := range s {
		values[i] = col.Extract(row)
	}
	return values
}

// AttendanceSchema returns the column layout for attendance reports
func AttendanceSchema() Schema[models.Attendance] {
	return Schema[models.Attendance]{
		{Header: "Employee", Extract: func(r models.Attendance) string { return r.EmpName }},
		{Header: "Team", Extract: func(r models.Attendance) string { return r.Team }},
		{Header: "Date", Extract: func(r models.Attendance) string { return r.Date }},
		{Header: "Check-In", Extract: func(r models.Attendance) string { return r.CheckIn }},
		{Header: "Check-Out", Extract: func(r models.Attendance) string { return r.CheckOut }},
		{Header: "Status", Extract: func(r models.Attendance) string { return r.Status }},
	}
}

// LeaveSchema returns the column layout for leave reports
func LeaveSchema() Schema[models.LeaveRequest] {
	return Schema[models.LeaveRequest]{
		{Header: "Employee", Extract: func(r models.LeaveRequest) string { return r.EmpName }},
		{Header: "Team", Extract: func(r models.LeaveRequest) string { return r.Team }},
		{Header: "Leave Type", Extract: func(r models.LeaveRequest) string { return r.LeaveType }},
		{Header: "Start Date", Extract: func(r models.LeaveRequest) string { return r.StartDate }},
		{Header: "End Date", Extract: func(r models.LeaveRequest) string { return r.EndDate }},
		{Header: "Duration", Extract: func(r models.LeaveRequest) string { return r.Duration }},
		{Header: "Status", Extract: func(r models.LeaveRequest) string { return r.Status }},
		{Header: "Reason", Extract: func(r models.LeaveRequest) string { return r.Reason }},
	}
}
