// Package gateway implements the authenticated HTTP client for the OpenSVM
// backend API. Credentials and base URL are injected once at construction;
// nothing reads the environment mid-call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend round-trip. A request that exceeds it
// resolves to an error instead of hanging; there is no other cancellation.
const DefaultTimeout = 30 * time.Second

const apiKeyHeader = "X-API-Key"

// Config holds the gateway's immutable connection settings.
type Config struct {
	BaseURL  string
	APIKey   string
	JWTToken string
	Timeout  time.Duration
}

// Client performs authenticated calls against the backend API. Safe for
// reuse across requests; all fields are read-only after construction.
type Client struct {
	baseURL  string
	apiKey   string
	jwtToken string
	client   *http.Client
}

// NewClient creates a backend client from config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gateway: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		jwtToken: cfg.JWTToken,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// StatusError is a non-2xx backend response. The upstream status and body
// are preserved verbatim for diagnosability.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend request failed: status %d: %s", e.Status, e.Body)
}

// Get issues a GET against the API root plus path.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON-encoded payload.
func (c *Client) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

// Delete issues a DELETE against the API root plus path.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Authenticated reports whether a JWT session token is configured.
func (c *Client) Authenticated() bool {
	return c.jwtToken != ""
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if c.jwtToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.jwtToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := strings.TrimSpace(string(respBody))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Body: message}
	}

	return respBody, nil
}
