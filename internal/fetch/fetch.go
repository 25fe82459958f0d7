// Package fetch retrieves the wiki page HTML, either over plain HTTP or by
// rendering it in headless Chrome.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/botd/internal/cache"
	botderrors "github.com/lepinkainen/botd/internal/errors"
	"github.com/lepinkainen/botd/internal/ratelimit"
)

const (
	// DefaultUserAgent identifies the scraper to the wiki.
	DefaultUserAgent = "burger-of-the-day-scraper/1.0"
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 16 << 20
)

// Cache kinds for NewCached.
const (
	KindHTTP    = "http"
	KindBrowser = "browser"
)

// Fetcher returns the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPFetcher fetches pages with a plain GET request.
type HTTPFetcher struct {
	client      HTTPDoer
	userAgent   string
	rateLimiter *ratelimit.Limiter
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRateLimiter spaces out requests to the wiki.
func WithRateLimiter(l *ratelimit.Limiter) HTTPOption {
	return func(f *HTTPFetcher) {
		f.rateLimiter = l
	}
}

// NewHTTPFetcher creates an HTTPFetcher with a 30 second timeout.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		rateLimiter: ratelimit.Every("wiki", time.Second),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads pageURL and returns its body.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", botderrors.NewRateLimitError(fmt.Sprintf("wiki: too many requests for %s", pageURL))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("wiki: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	return string(body), nil
}

// Cached wraps a Fetcher with the wiki cache table. Entries are keyed by
// fetcher kind and page URL.
type Cached struct {
	next Fetcher
	kind string
	keep func(html string) bool
}

// CachedOption configures a Cached fetcher.
type CachedOption func(*Cached)

// WithKind separates cache entries of different fetchers for the same URL.
func WithKind(kind string) CachedOption {
	return func(c *Cached) {
		if kind != "" {
			c.kind = kind
		}
	}
}

// WithKeep sets the check a page must pass before it is stored. Pages that
// fail it are returned but fetched again next time.
func WithKeep(keep func(html string) bool) CachedOption {
	return func(c *Cached) {
		if keep != nil {
			c.keep = keep
		}
	}
}

// NewCached returns a Fetcher that serves pages from the cache when fresh.
// By default only non-blank pages are stored, under the "http" kind.
func NewCached(next Fetcher, opts ...CachedOption) *Cached {
	c := &Cached{next: next, kind: KindHTTP, keep: notBlank}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached page or fetches it, storing it when it passes
// the keep check.
func (c *Cached) Fetch(ctx context.Context, pageURL string) (string, error) {
	html, _, err := cache.GetOrFetchWithPolicy(cache.WikiTable, c.key(pageURL), func() (string, error) {
		return c.next.Fetch(ctx, pageURL)
	}, func(html string) bool {
		return notBlank(html) && c.keep(html)
	})
	return html, err
}

func (c *Cached) key(pageURL string) string {
	return c.kind + ":" + pageURL
}

func notBlank(html string) bool {
	return strings.TrimSpace(html) != ""
}
