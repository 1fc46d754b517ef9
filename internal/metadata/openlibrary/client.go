// Package openlibrary looks up bibliographic data from the Open Library
// Books API. It is the first source consulted for an ISBN; misses and
// transport failures here are soft, the resolver falls through to the
// next source.
package openlibrary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	defaultTimeout = 10 * time.Second
)

// Client provides access to the Open Library Books API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
}

// NewClient creates a new Open Library client. A non-positive timeout
// falls back to the default.
// Rate limited to roughly 1 request per second with a small burst, well
// under Open Library's published courtesy limit.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      logger,
		baseURL:     defaultBaseURL,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
