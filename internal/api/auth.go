package api

import (
	"context"
	"time"
)

// User is the authenticated identity as reported by the server.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// userData is the envelope payload shape of every auth endpoint that
// returns the current user.
type userData struct {
	User *User `json:"user"`
}

// Register creates a new account. The server does not log the account in;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.post(ctx, "/auth/register", body, nil)
}

// Login authenticates with email and password. On success the server sets
// the session cookie on the client's jar and returns the user.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var data userData
	if err := c.post(ctx, "/auth/login", body, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Me returns the user the current session cookie belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var data userData
	if err := c.get(ctx, "/auth/me", &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// ForgotPassword asks the server to mail a reset token to the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a reset token for a new password. The server logs
// the user in as part of the reset and returns the identity.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*User, error) {
	body := map[string]string{"token": token, "password": password}
	var data userData
	if err := c.put(ctx, "/auth/reset-password", body, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// UpdatePassword changes the password of the authenticated user.
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.put(ctx, "/auth/update-password", body, nil)
}

// ProfilePatch holds the optional profile fields. Empty fields are omitted
// so the server leaves them unchanged.
type ProfilePatch struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UpdateProfile updates name and/or email and returns the refreshed user.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var data userData
	if err := c.put(ctx, "/auth/profile", patch, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}
