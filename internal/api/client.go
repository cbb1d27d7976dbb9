// Package api is the client for the BrainLoop REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://stg-brainloop.api.midaytech.com/api/v1"
	DefaultTimeout = 30 * time.Second
)

// ErrNoToken is returned before any request is made when an
// authenticated call has no token to send.
var ErrNoToken = errors.New("authentication token not found, please log in again")

// Error is a non-2xx response from the API.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client talks to the BrainLoop API.
type Client struct {
	http    *http.Client
	logger  *slog.Logger
	baseURL string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the bearer token in use.
func (c *Client) Token() string {
	return c.token
}

type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func decodeError(status int, body []byte) error {
	apiErr := &Error{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}

	apiErr.Message = eb.Message

	if apiErr.Message == "" && len(eb.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}

		var s string

		switch {
		case json.Unmarshal(eb.Error, &nested) == nil && nested.Message != "":
			apiErr.Message = nested.Message
		case json.Unmarshal(eb.Error, &s) == nil:
			apiErr.Message = s
		}
	}

	return apiErr
}

// do sends a JSON request and decodes the JSON response into out when it
// is non-nil. Authenticated calls fail with ErrNoToken when no token is
// set.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	auth bool,
	in, out any,
) error {
	if auth && c.token == "" {
		return ErrNoToken
	}

	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	reqID := uuid.NewString()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(
			"request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", reqID),
			slog.Any("error", err),
		)

		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(
		"api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", reqID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}

	return nil
}
