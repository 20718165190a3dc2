// Package imagegen provides the HTTP client for the diffusion image backend.
package imagegen

import (
	"bytes"
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
	serviceName    = "image backend"
	defaultTimeout = 10 * time.Second

	// Rendered JPEGs run to a few hundred kilobytes at the step counts the
	// tool allows.
	maxImageBytes = 16 << 20
)

// Client renders images from text prompts.
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

// New creates an image backend client for the given endpoint.
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

// Generate renders prompt with the given diffusion step count and returns
// the raw image bytes. The backend answers non-success statuses with a text
// body which is surfaced as *domain.UpstreamStatusError.
func (c *Client) Generate(ctx context.Context, prompt string, steps int) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"prompt": prompt,
		"steps":  steps,
	})
	if err != nil {
		return nil, fmt.Errorf("encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image backend request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamStatusError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("image backend returned an empty payload")
	}

	return body, nil
}
