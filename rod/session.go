package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/partscat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var _ partscat.Session = (*Session)(nil)

// Session wraps a single browser page. All interaction is sequential;
// a Session must not be used from multiple goroutines.
type Session struct {
	page *rod.Page
}

// Navigate loads the URL and waits for the page load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return nil
}

// HTML returns the current rendered page HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("reading page html: %w", err)
	}
	return html, nil
}

// Click clicks the first element matching the CSS selector. Returns
// ENOTFOUND when no element matches.
func (s *Session) Click(ctx context.Context, selector string) error {
	el, err := s.page.Context(ctx).Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil {
		return partscat.Errorf(partscat.ENOTFOUND, "element %q not found", selector)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking %q: %w", selector, err)
	}
	return nil
}

// Close releases the page resources.
func (s *Session) Close() error {
	return s.page.Close()
}
