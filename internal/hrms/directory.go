package hrms

import (
	"context"
	"net/url"

	"github.com/hrmstack/leavectl/internal/models"
)

// EmployeeFilter narrows a directory listing
type EmployeeFilter struct {
	Search     string
	Team       string
	Department string
	Status     string
}

func (f EmployeeFilter) query() url.Values {
	q := url.Values{}
	setIfPresent(q, "search", f.Search)
	setIfPresent(q, "team", f.Team)
	setIfPresent(q, "department", f.Department)
	setIfPresent(q, "status", f.Status)
	return q
}

// Employees lists directory entries matching the filter
func (c *Client) Employees(ctx context.Context, filter EmployeeFilter) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.get(ctx, "/employees", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllEmployees lists the whole directory without paging, for pickers
func (c *Client) AllEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.get(ctx, "/employees/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmployeeStats returns the directory summary
func (c *Client) EmployeeStats(ctx context.Context) (*models.EmployeeStats, error) {
	var out models.EmployeeStats
	if err := c.get(ctx, "/employees/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Teams lists teams, optionally scoped to one department
func (c *Client) Teams(ctx context.Context, department string) ([]models.Team, error) {
	q := url.Values{}
	setIfPresent(q, "department", department)

	var out []models.Team
	if err := c.get(ctx, "/teams", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Departments lists all departments
func (c *Client) Departments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := c.get(ctx, "/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
