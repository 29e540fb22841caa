// Package http provides the HTTP implementation of harvest.Fetcher used
// for listing pages, publication pages, and file downloads.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sdglab/harvest"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Defaults chosen for polite scraping of public publication catalogues.
const (
	// DefaultTimeout is the per-request timeout. Publication files can be
	// tens of megabytes, so this is deliberately generous.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxConnections caps in-flight requests for the whole run.
	DefaultMaxConnections = 4

	// DefaultRateLimit is the outbound request rate in requests per second.
	DefaultRateLimit = 0.5

	defaultUserAgent = "sdg-harvest/1.0 (+https://github.com/sdglab/harvest)"
)

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Client implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Client)(nil)

// Client implements harvest.Fetcher over net/http. A weighted semaphore
// caps in-flight requests for the lifetime of the client, a token bucket
// paces request starts, and transient failures are retried with backoff.
type Client struct {
	client    *http.Client
	sem       *semaphore.Weighted
	limiter   *rate.Limiter
	delays    []time.Duration
	timeout   time.Duration
	maxConns  int64
	rps       float64
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMaxConnections caps the number of concurrent requests.
// Values below 1 fall back to DefaultMaxConnections.
func WithMaxConnections(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxConns = int64(n)
		}
	}
}

// WithRateLimit sets the outbound request rate in requests per second.
// A non-positive rate disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.rps = rps
	}
}

// WithRetryDelays sets the backoff delays between retry attempts.
// An empty slice disables retries (a single attempt is made). Tests inject
// zero delays to avoid waiting.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		maxConns:  DefaultMaxConnections,
		rps:       DefaultRateLimit,
		delays:    DefaultRetryDelays(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	c.sem = semaphore.NewWeighted(c.maxConns)

	limit := rate.Limit(c.rps)
	if c.rps <= 0 {
		limit = rate.Inf
	}
	c.limiter = rate.NewLimiter(limit, 1)

	return c
}

// Fetch retrieves the body behind url. The semaphore is held for the whole
// call, including backoff sleeps, so the concurrency cap bounds in-flight
// work rather than raw sockets.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	attempts := len(c.delays) + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Permanent failures are not worth retrying.
		switch harvest.ErrorCode(err) {
		case harvest.ENOTFOUND, harvest.EINVALID:
			return nil, err
		}
		lastErr = err
	}

	return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetch %s failed after %d attempts: %v", url, attempts, lastErr)
}

// get performs a single GET attempt and classifies the outcome.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		// Network errors are treated as transient.
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body of %s: %w", url, err)
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, harvest.Errorf(harvest.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return nil, harvest.Errorf(harvest.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	}
}
