package hrms

import (
	"context"
	"net/url"

	"github.com/hrmstack/leavectl/internal/models"
)

// ReportFilter parameterizes a report fetch. FromDate and ToDate are
// required by the backend; the rest are optional narrowing.
type ReportFilter struct {
	FromDate     string
	ToDate       string
	EmployeeName string
	Team         string
	Department   string
	Status       string // attendance or leave status
	LeaveType    string // leave reports only
}

func (f ReportFilter) query() url.Values {
	q := url.Values{}
	q.Set("from_date", f.FromDate)
	q.Set("to_date", f.ToDate)
	setIfPresent(q, "employee_name", f.EmployeeName)
	setIfPresent(q, "team", f.Team)
	setIfPresent(q, "department", f.Department)
	setIfPresent(q, "status", f.Status)
	setIfPresent(q, "leave_type", f.LeaveType)
	return q
}

// AttendanceReport fetches attendance rows for the filter window
func (c *Client) AttendanceReport(ctx context.Context, filter ReportFilter) ([]models.Attendance, error) {
	var out []models.Attendance
	if err := c.get(ctx, "/reports/attendance", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaveReport fetches leave rows for the filter window
func (c *Client) LeaveReport(ctx context.Context, filter ReportFilter) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	if err := c.get(ctx, "/reports/leaves", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
