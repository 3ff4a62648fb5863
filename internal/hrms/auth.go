package hrms

import (
	"context"

	"github.com/hrmstack/leavectl/internal/models"
)

// LoginRequest carries the login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's login reply
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ChangePasswordRequest carries a validated password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login exchanges credentials for a bearer token. The only unauthenticated
// call in the surface.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, "POST", "/auth/login", nil, LoginRequest{Email: email, Password: password}, &out, anonymous())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated principal
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword submits a password change. Client-side validation
// (intake.ValidatePasswordChange) runs before this call; the backend
// re-checks the current password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	return c.post(ctx, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
	}, nil)
}
