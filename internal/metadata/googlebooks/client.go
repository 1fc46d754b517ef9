// Package googlebooks looks up bibliographic data from the Google Books
// volumes API. It is the last source in the resolver chain, so its
// failures are surfaced to the caller rather than swallowed.
package googlebooks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"
	defaultTimeout = 10 * time.Second
)

// ErrNoResults is returned when Google Books has no volume for an ISBN.
var ErrNoResults = errors.New("googlebooks: no results")

// Client provides access to the Google Books volumes API.
// Requests require an API key; construct with NewClient and check
// HasKey before searching.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
	apiKey      string
}

// NewClient creates a new Google Books client with the given API key.
// An empty key produces a client whose HasKey reports false. A
// non-positive timeout falls back to the default.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// Google's free quota is generous; this only smooths bursts.
		rateLimiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		logger:      logger,
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
	}
}

// HasKey reports whether the client was configured with an API key.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
