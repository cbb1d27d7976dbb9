package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var errNoTokenInResponse = errors.New("login response did not include a token")

// Login exchanges credentials for a token. The client keeps the token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}

	err := c.do(ctx, http.MethodPost, "/auth/login", false, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", errNoTokenInResponse
	}

	c.token = resp.Token

	return resp.Token, nil
}

// NeedsVerification reports whether a login failed because the account's
// email address is not verified yet.
func NeedsVerification(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return strings.Contains(strings.ToLower(apiErr.Message), "verify your email")
}

// Register creates an account. The email address must be verified before
// the first login.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", false, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

// ForgotPassword requests a password reset email. Unknown addresses are
// not reported.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	err := c.do(ctx, http.MethodPost, "/users/forgot-password", false, map[string]string{
		"email": email,
	}, nil)
	if IsStatus(err, http.StatusNotFound) {
		return nil
	}

	return err
}

// ResetPassword sets a new password using the token from a reset email.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password", false, map[string]string{
		"token":       token,
		"newPassword": password,
	}, nil)
}

// VerifyEmail confirms an email address using the token from a
// verification email.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/verify", false, map[string]string{
		"token": token,
	}, nil)
}

// ResendVerification sends a new verification email.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/resend-verification", false, map[string]string{
		"email": email,
	}, nil)
}
