package models

import "time"

// Attendance status constants as the backend reports them
const (
	AttendanceStatusLogin     = "Login"
	AttendanceStatusCompleted = "Completed"
	AttendanceStatusNotLogged = "Not Logged"
	AttendanceStatusEarlyOut  = "Early Out"
	AttendanceStatusLateLogin = "Late Login"
)

// Attendance represents one attendance record as the backend returns it
type Attendance struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	EmpName    string    `json:"emp_name"`
	Team       string    `json:"team"`
	Date       string    `json:"date"` // DD-MM-YYYY, backend convention
	CheckIn    string    `json:"check_in,omitempty"`
	CheckOut   string    `json:"check_out,omitempty"`
	TotalHours string    `json:"total_hours,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
