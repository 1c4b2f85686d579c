// Package api provides a typed client for the outreach REST API. Every
// method performs exactly one HTTP request: no retries, no caching, no
// implicit polling. Background jobs are represented as tasks and polled
// separately (see internal/task).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// Client talks to the outreach API server.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

// Options configures the client.
type Options struct {
	Timeout time.Duration
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts *Options) *Client {
	timeout := DefaultTimeout
	var hc *http.Client
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		hc = opts.HTTPClient
	}
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     hc,
		validate: validator.New(),
	}
}

// errorEnvelope is the server's uniform error body.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). A non-2xx response yields an *Error carrying the server's
// {error} message when present, otherwise a templated fallback built from
// action.
func (c *Client) do(ctx context.Context, method, path, action string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", action, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", action, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Action: action, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Action: action, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != "" {
			return &Error{Action: action, StatusCode: resp.StatusCode, Message: envelope.Error}
		}
		return &Error{Action: action, StatusCode: resp.StatusCode}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}
