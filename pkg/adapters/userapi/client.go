// Package userapi provides the HTTP client for the external user profile
// service. Requests carry the caller's own delegated credential, never a
// service-wide one.
package userapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gatehouse/pkg/domain"
)

const (
	serviceName    = "user profile api"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client fetches the profile document for an authenticated user.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a profile client for the given endpoint.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile fetches the caller's profile using their delegated credential as a
// bearer token. The upstream's JSON object is returned verbatim; a non-object
// body or a non-success status is an error.
func (c *Client) Profile(ctx context.Context, credential string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user profile request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read profile response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamStatusError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var shape map[string]any
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil, fmt.Errorf("user profile api returned malformed payload: %v", err)
	}

	return json.RawMessage(body), nil
}
