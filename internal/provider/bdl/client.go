// Package bdl fetches NBA box scores from the BallDontLie API for game log
// ingestion.
//
// BDL uses cursor-based pagination and Authorization header auth. Requests go
// through a token bucket sized to the account's per-minute quota; a 429 is
// retried after the server's Retry-After delay.
package bdl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxRateLimitRetries = 3
	defaultRetryAfter   = 5 * time.Second
)

// Client is the shared HTTP client for all BDL endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a BDL HTTP client allowing requestsPerMinute calls.
func NewClient(baseURL, apiKey string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		logger:     logger,
	}
}

// paginatedResponse is the common BDL response wrapper.
type paginatedResponse struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		NextCursor *int `json:"next_cursor"`
		PerPage    int  `json:"per_page"`
	} `json:"meta"`
}

// get performs a rate-limited GET, retrying when BDL answers 429.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*paginatedResponse, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		status, header, body, err := c.do(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("http request %s: %w", path, err)
		}

		switch {
		case status == http.StatusOK:
			var result paginatedResponse
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
			return &result, nil

		case status == http.StatusTooManyRequests && attempt < maxRateLimitRetries:
			wait := retryAfter(header.Get("Retry-After"))
			c.logger.Warn("BDL rate limited", "path", path, "retry_in", wait, "attempt", attempt+1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		default:
			return nil, fmt.Errorf("BDL %s returned %d: %s", path, status, truncate(body, 200))
		}
	}
}

func (c *Client) do(ctx context.Context, u string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// retryAfter parses a Retry-After value given in seconds.
func retryAfter(v string) time.Duration {
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRetryAfter
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
