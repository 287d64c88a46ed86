package playwright

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/partscat"
	"github.com/playwright-community/playwright-go"
)

var _ partscat.Session = (*Session)(nil)

// Session wraps a single playwright page. A Session must not be used
// from multiple goroutines.
//
// playwright-go drives the browser over its own driver process and does
// not take a context; cancellation is approximated with per-call
// deadlines derived from the context.
type Session struct {
	page playwright.Page
}

// Navigate loads the URL and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}
	if timeout, ok := timeoutMillis(ctx); ok {
		opts.Timeout = playwright.Float(timeout)
	}
	if _, err := s.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// HTML returns the current rendered page HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("reading page html: %w", err)
	}
	return html, nil
}

// Click clicks the first element matching the CSS selector. Returns
// ENOTFOUND when no element matches.
func (s *Session) Click(ctx context.Context, selector string) error {
	loc := s.page.Locator(selector).First()

	count, err := loc.Count()
	if err != nil {
		return fmt.Errorf("locating %q: %w", selector, err)
	}
	if count == 0 {
		return partscat.Errorf(partscat.ENOTFOUND, "element %q not found", selector)
	}

	opts := playwright.LocatorClickOptions{}
	if timeout, ok := timeoutMillis(ctx); ok {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := loc.Click(opts); err != nil {
		return fmt.Errorf("clicking %q: %w", selector, err)
	}
	return nil
}

// Close releases the page resources.
func (s *Session) Close() error {
	return s.page.Close()
}

// timeoutMillis converts a context deadline to playwright's millisecond
// timeouts.
func timeoutMillis(ctx context.Context) (float64, bool) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0, false
	}
	millis := float64(time.Until(deadline).Milliseconds())
	if millis <= 0 {
		return 1, true
	}
	return millis, true
}
