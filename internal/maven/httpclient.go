package maven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrRetriesExhausted is returned when every retry attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetryConfig tunes the retrying HTTP client.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first (default 3).
	MaxRetries uint64
	// InitialDelay seeds the exponential backoff (default 1s).
	InitialDelay time.Duration
	// MaxDelay caps the backoff interval (default 4s).
	MaxDelay time.Duration
	// Timeout bounds each individual request (default 30s).
	Timeout time.Duration
}

// DefaultRetryConfig returns the default retry tuning: three retries with
// exponential backoff of 1s, 2s, 4s and a 30s per-request timeout.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     4 * time.Second,
		Timeout:      30 * time.Second,
	}
}

// HTTPClient wraps net/http with exponential-backoff retries for transient
// failures (network errors, 5xx responses, 429 rate limiting). Other
// response statuses are returned to the caller unchanged.
type HTTPClient struct {
	client    *http.Client
	config    RetryConfig
	userAgent string
}

// NewHTTPClient creates a retrying client with the default configuration.
func NewHTTPClient() *HTTPClient {
	return NewHTTPClientWithConfig(DefaultRetryConfig())
}

// NewHTTPClientWithConfig creates a retrying client with custom tuning.
func NewHTTPClientWithConfig(config RetryConfig) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:    config,
		userAgent: "gvc",
	}
}

// SetHTTPClient replaces the underlying client (useful for tests).
func (c *HTTPClient) SetHTTPClient(client *http.Client) {
	c.client = client
}

// Get performs a GET with retries. The returned response body must be
// closed by the caller.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	var resp *http.Response

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		r, err := c.client.Do(req)
		if err != nil {
			return err
		}
		if shouldRetry(r.StatusCode) {
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			return fmt.Errorf("server error: status %d", r.StatusCode)
		}
		resp = r
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.InitialDelay
	policy.MaxInterval = c.config.MaxDelay
	policy.RandomizationFactor = 0

	err := backoff.Retry(attempt, backoff.WithContext(
		backoff.WithMaxRetries(policy, c.config.MaxRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
	}
	return resp, nil
}

// shouldRetry reports whether a status code indicates a transient server
// condition worth retrying: 5xx and 429.
func shouldRetry(statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	return statusCode == http.StatusTooManyRequests
}
