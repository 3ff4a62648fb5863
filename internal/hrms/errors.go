package hrms

import "fmt"

// APIError is a backend rejection: the HTTP status plus the backend's own
// message when it sent one. Transport failures are wrapped errors, not
// APIErrors, but callers render both the same way.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// errorBody is the backend's error envelope
type errorBody struct {
	Detail string `json:"detail"`
}
