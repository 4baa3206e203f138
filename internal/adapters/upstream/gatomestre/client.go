// Package gatomestre fetches the secondary valuation feed. The feed is
// bearer-token protected and entirely optional: a missing credential means
// the feed is skipped, not an error condition.
package gatomestre

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client fetches valuation metrics over HTTP.
type Client struct {
	url   string
	token string
	httpc *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewClient creates a valuation feed client. token may be empty; Metrics
// then returns ErrNoCredential without touching the network.
func NewClient(url, token string, opts ...Option) *Client {
	c := &Client{
		url:   url,
		token: token,
		httpc: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// feedEntry mirrors one valuation record. Only the appreciation threshold
// is consumed; the feed carries more fields we ignore.
type feedEntry struct {
	MinimoParaValorizar *float64 `json:"minimo_para_valorizar"`
}

// Metrics fetches the valuation feed and returns record id -> metric.
// ErrNoCredential and ErrCredentialExpired both mean "no data"; the caller
// distinguishes them only to prompt for a token refresh.
func (c *Client) Metrics(ctx context.Context) (map[string]float64, error) {
	if c.url == "" || c.token == "" {
		return nil, ErrNoCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("gatomestre: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gatomestre: fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrCredentialExpired
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("gatomestre: %w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload map[string]feedEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gatomestre: decode feed: %w", err)
	}

	metrics := make(map[string]float64, len(payload))
	for id, entry := range payload {
		if entry.MinimoParaValorizar != nil {
			metrics[id] = *entry.MinimoParaValorizar
		}
	}
	return metrics, nil
}
