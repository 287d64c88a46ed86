package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partscat"
)

// Section anchors on a part's detail page. Clicking an anchor expands
// the section's content before it can be read.
const (
	anchorReviews         = "a[href*='#CustomerReviews']"
	anchorRepairStories   = "a[href*='#RepairStories']"
	anchorVideos          = "a[href*='#PartVideos']"
	anchorTroubleshooting = "a[href*='#Troubleshooting']"
)

// defaultSectionWait is how long to let a section render after clicking
// its anchor.
const defaultSectionWait = 300 * time.Millisecond

// Enricher fetches a part's own page and extracts deep structured
// content from it. Enrichment is best-effort throughout: navigation
// failure yields an empty detail, and each section is parsed
// independently so one failing section never empties another.
type Enricher struct {
	Details partscat.DetailParser

	// SectionWait is the fixed interval between clicking a section anchor
	// and re-reading the page. Defaults to 300ms.
	SectionWait time.Duration

	Logger *slog.Logger
}

// Enrich navigates to the part's page and returns whatever detail it
// could extract. Never returns nil.
func (e *Enricher) Enrich(ctx context.Context, session partscat.Session, url string) *partscat.PartDetail {
	logger := e.logger()
	detail := &partscat.PartDetail{}

	if err := session.Navigate(ctx, url); err != nil {
		logger.Warn("detail page load failed", "url", url, "error", err)
		return detail
	}
	html, err := session.HTML(ctx)
	if err != nil {
		logger.Warn("detail page read failed", "url", url, "error", err)
		return detail
	}

	e.Details.ParseBase(html, detail)

	detail.Reviews = e.Details.ParseReviews(e.sectionHTML(ctx, session, anchorReviews, html))
	detail.RepairStories = e.Details.ParseRepairStories(e.sectionHTML(ctx, session, anchorRepairStories, html))
	detail.Videos = e.Details.ParseVideos(e.sectionHTML(ctx, session, anchorVideos, html))
	e.Details.ParseTroubleshooting(e.sectionHTML(ctx, session, anchorTroubleshooting, html), detail)

	return detail
}

// sectionHTML clicks a section anchor, waits for it to render, and
// returns the refreshed page HTML. A missing anchor or failed refresh
// falls back to the HTML already in hand.
func (e *Enricher) sectionHTML(ctx context.Context, session partscat.Session, anchor, fallback string) string {
	if err := session.Click(ctx, anchor); err != nil {
		return fallback
	}

	wait := e.SectionWait
	if wait <= 0 {
		wait = defaultSectionWait
	}
	time.Sleep(wait)

	html, err := session.HTML(ctx)
	if err != nil {
		e.logger().Warn("section refresh failed", "anchor", anchor, "error", err)
		return fallback
	}
	return html
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
