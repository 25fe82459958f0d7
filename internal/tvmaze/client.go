// Package tvmaze fetches a show's episode catalog from the TVMaze API.
package tvmaze

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/botd/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public TVMaze API root.
	DefaultBaseURL = "https://api.tvmaze.com"
	// DefaultUserAgent identifies the scraper to upstream services.
	DefaultUserAgent = "burger-of-the-day-scraper/1.0"

	defaultTimeout       = 30 * time.Second
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 2 // TVMaze allows 20 calls per 10 seconds
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TVMaze API client.
type Client struct {
	baseURL       string
	userAgent     string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	sleep         func(time.Duration)
}

// NewClient creates a new TVMaze API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       DefaultBaseURL,
		userAgent:     DefaultUserAgent,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		rateLimiter:   ratelimit.New("TVMaze", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		sleep:         time.Sleep,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TVMaze API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithRetryAttempts sets the number of attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
