// Package pricefeed provides the HTTP client for the external price feed,
// plus an optional Redis-backed caching decorator.
package pricefeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/gatehouse/pkg/domain"
)

const (
	serviceName    = "price feed"
	defaultTimeout = 10 * time.Second

	// Quote payloads are a few dozen bytes; anything near this limit is
	// already garbage.
	maxBodyBytes = 1 << 20
)

// Client fetches quotes from a ticker endpoint such as
// https://api.binance.com/api/v3/ticker/price.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller owns the
// client's timeout in that case.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a price feed client for the given endpoint.
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

// Quote fetches the current price for a resolved symbol. The decimal text is
// returned exactly as the feed serves it. Non-success statuses surface as
// *domain.UpstreamStatusError carrying the status code and body text; no
// call is ever retried.
func (c *Client) Quote(ctx context.Context, symbol string) (string, error) {
	reqURL := c.baseURL + "?symbol=" + url.QueryEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("price feed request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read price response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.UpstreamStatusError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return extractPrice(body)
}

// extractPrice pulls the price field out of the feed's JSON document. The
// live feed serves prices as strings ("43250.01000000"); plain numbers are
// accepted too. Any other shape is reported with the raw body retained.
func extractPrice(body []byte) (string, error) {
	var payload struct {
		Price any `json:"price"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return "", fmt.Errorf("price feed returned malformed payload: %v: body %q", err, snippet(body))
	}

	switch v := payload.Price.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("price feed returned empty price: body %q", snippet(body))
		}
		return v, nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", fmt.Errorf("price feed response has no price field: body %q", snippet(body))
	default:
		return "", fmt.Errorf("price feed returned price of unexpected type %T: body %q", v, snippet(body))
	}
}

// snippet bounds a body for inclusion in error text.
func snippet(body []byte) string {
	const max = 2048
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
