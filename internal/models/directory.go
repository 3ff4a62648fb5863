package models

import "time"

// Employee represents a directory entry
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Team       string    `json:"team"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	JoinedAt   string    `json:"joined_at,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmployeeStats holds the directory summary figures
type EmployeeStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Team represents an organizational team
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	LeadID      string `json:"lead_id,omitempty"`
	MemberCount int    `json:"member_count"`
}

// Department represents an organizational department
type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HeadID    string `json:"head_id,omitempty"`
	TeamCount int    `json:"team_count"`
}

// User is the authenticated principal returned by the session endpoint
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}
