package hrms

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hrmstack/leavectl/internal/models"
)

// LeaveFilter narrows a leave listing. Zero values mean no filtering.
type LeaveFilter struct {
	EmployeeName string
	Team         string
	LeaveType    string
	Status       string
	FromDate     string
	ToDate       string
}

func (f LeaveFilter) query() url.Values {
	q := url.Values{}
	setIfPresent(q, "employee_name", f.EmployeeName)
	setIfPresent(q, "team", f.Team)
	setIfPresent(q, "leave_type", f.LeaveType)
	setIfPresent(q, "status", f.Status)
	setIfPresent(q, "from_date", f.FromDate)
	setIfPresent(q, "to_date", f.ToDate)
	return q
}

// CreateLeaveRequest is the submission payload built from a validated draft
type CreateLeaveRequest struct {
	EmployeeID string             `json:"employee_id"`
	LeaveType  string             `json:"leave_type"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	Duration   string             `json:"duration,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	Attachment *models.Attachment `json:"attachment,omitempty"`
}

// Leaves lists leave requests matching the filter
func (c *Client) Leaves(ctx context.Context, filter LeaveFilter) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	if err := c.get(ctx, "/employee/leaves", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyLeave submits a new leave request
func (c *Client) ApplyLeave(ctx context.Context, req CreateLeaveRequest) (*models.LeaveRequest, error) {
	var out models.LeaveRequest
	if err := c.post(ctx, "/employee/leaves", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLeave replaces an editable (pending, non-past) leave request
func (c *Client) UpdateLeave(ctx context.Context, id string, req CreateLeaveRequest) (*models.LeaveRequest, error) {
	var out models.LeaveRequest
	if err := c.put(ctx, fmt.Sprintf("/employee/leaves/%s", url.PathEscape(id)), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaveBalance returns the caller's remaining allowance per leave type
func (c *Client) LeaveBalance(ctx context.Context) (*models.LeaveBalance, error) {
	var out models.LeaveBalance
	if err := c.get(ctx, "/employee/leave-balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
