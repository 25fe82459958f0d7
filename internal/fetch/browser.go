package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// CDPRunner abstracts the chromedp entry points so tests can run without a
// browser.
type CDPRunner interface {
	NewExecAllocator(ctx context.Context, opts ...chromedp.ExecAllocatorOption) (context.Context, context.CancelFunc)
	NewContext(parent context.Context, opts ...chromedp.ContextOption) (context.Context, context.CancelFunc)
	Run(ctx context.Context, actions ...chromedp.Action) error
}

type chromedpRunner struct{}

func (chromedpRunner) NewExecAllocator(ctx context.Context, opts ...chromedp.ExecAllocatorOption) (context.Context, context.CancelFunc) {
	return chromedp.NewExecAllocator(ctx, opts...)
}

func (chromedpRunner) NewContext(parent context.Context, opts ...chromedp.ContextOption) (context.Context, context.CancelFunc) {
	return chromedp.NewContext(parent, opts...)
}

func (chromedpRunner) Run(ctx context.Context, actions ...chromedp.Action) error {
	return chromedp.Run(ctx, actions...)
}

// BrowserFetcher renders pages in headless Chrome. The wiki sometimes serves
// a bot challenge to plain HTTP clients; a real browser gets the article.
type BrowserFetcher struct {
	runner    CDPRunner
	userAgent string
	headless  bool
	waitFor   string
}

// BrowserOption configures a BrowserFetcher.
type BrowserOption func(*BrowserFetcher)

// WithRunner replaces the chromedp runner.
func WithRunner(r CDPRunner) BrowserOption {
	return func(b *BrowserFetcher) {
		if r != nil {
			b.runner = r
		}
	}
}

// WithHeadless toggles headless mode.
func WithHeadless(headless bool) BrowserOption {
	return func(b *BrowserFetcher) {
		b.headless = headless
	}
}

// WithWaitSelector sets the CSS selector awaited before the DOM is read.
func WithWaitSelector(sel string) BrowserOption {
	return func(b *BrowserFetcher) {
		if sel != "" {
			b.waitFor = sel
		}
	}
}

// WithBrowserUserAgent overrides the User-Agent header sent by Chrome.
func WithBrowserUserAgent(ua string) BrowserOption {
	return func(b *BrowserFetcher) {
		if ua != "" {
			b.userAgent = ua
		}
	}
}

// NewBrowserFetcher creates a headless BrowserFetcher.
func NewBrowserFetcher(opts ...BrowserOption) *BrowserFetcher {
	b := &BrowserFetcher{
		runner:    chromedpRunner{},
		userAgent: DefaultUserAgent,
		headless:  true,
		waitFor:   "body",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BrowserFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", b.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.UserAgent(b.userAgent),
	}
}

// Fetch navigates to pageURL and returns the rendered document.
func (b *BrowserFetcher) Fetch(parentCtx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultTimeout)
	defer cancel()

	allocCtx, cancelAllocator := b.runner.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := b.runner.NewContext(allocCtx)
	defer cancelBrowser()

	slog.Debug("Rendering page in browser", "url", pageURL, "headless", b.headless)

	headers := network.Headers{"User-Agent": b.userAgent}
	if err := b.runner.Run(browserCtx, network.Enable(), network.SetExtraHTTPHeaders(headers)); err != nil {
		return "", fmt.Errorf("failed to configure browser headers: %w", err)
	}

	var html string
	err := b.runner.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(b.waitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}
	return html, nil
}
