// Package scrape provides catalog scraping orchestration.
// It coordinates browser sessions, page classification, part extraction,
// detail enrichment, and catalog storage.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/bloom"
	"golang.org/x/time/rate"
)

// Pagination configuration.
const (
	// defaultMaxPages bounds a pagination walk regardless of sentinel state.
	defaultMaxPages = 100
	// dedupeExpectedURLs is the expected number of part URLs for Bloom
	// filter sizing.
	dedupeExpectedURLs = 10000
	// dedupeFalsePositiveRate is the acceptable false positive rate for
	// cross-page deduplication.
	dedupeFalsePositiveRate = 0.01
)

// Paginator walks a paginated parts listing and collects every part it
// can extract. Page 1 is the start URL itself; page N appends ?start=N.
// The walk terminates when the configured sentinel disappears from the
// page, when a page yields no parts, when MaxPages is reached, or when
// the context is canceled.
type Paginator struct {
	Classifier partscat.Classifier
	Extractor  partscat.PartExtractor

	// Sentinel is a substring whose absence from a page marks the end of
	// the listing (e.g. "Popular Admiral Dishwasher Parts").
	Sentinel string

	// MaxPages caps the walk. Defaults to 100.
	MaxPages int

	// Limiter, if set, paces page loads across paginators sharing it.
	Limiter *rate.Limiter

	// Headful stretches the inter-page wait to human-ish lengths.
	Headful bool

	Logger *slog.Logger
}

// CollectAll loads pages starting at startURL and returns the collected
// parts together with the kind of the first page. Listing pages are not
// paginated; a single extraction pass is returned. Part URLs are deduped
// across pages. Page-level failures end the walk without discarding
// parts already collected.
func (p *Paginator) CollectAll(ctx context.Context, session partscat.Session, startURL string) ([]partscat.Part, partscat.PageKind, error) {
	logger := p.logger()

	if err := session.Navigate(ctx, startURL); err != nil {
		return nil, partscat.PageListing, fmt.Errorf("loading %s: %w", startURL, err)
	}
	html, err := session.HTML(ctx)
	if err != nil {
		return nil, partscat.PageListing, fmt.Errorf("reading %s: %w", startURL, err)
	}

	kind := p.Classifier.Classify(html)
	if kind == partscat.PageListing {
		parts, err := p.Extractor.ExtractParts(html, startURL)
		if err != nil {
			return nil, kind, err
		}
		return parts, kind, nil
	}

	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	seen := bloom.NewFilter(dedupeExpectedURLs, dedupeFalsePositiveRate)
	var parts []partscat.Part

	for page := 1; page <= maxPages; page++ {
		if page > 1 {
			if p.Limiter != nil {
				if err := p.Limiter.Wait(ctx); err != nil {
					break
				}
			}
			p.pause()

			pageURL := fmt.Sprintf("%s?start=%d", startURL, page)
			if err := session.Navigate(ctx, pageURL); err != nil {
				logger.Warn("page load failed, stopping pagination", "url", pageURL, "error", err)
				break
			}
			html, err = session.HTML(ctx)
			if err != nil {
				logger.Warn("page read failed, stopping pagination", "url", pageURL, "error", err)
				break
			}
		}

		if p.Sentinel != "" && !strings.Contains(html, p.Sentinel) {
			break
		}

		pageParts, err := p.Extractor.ExtractParts(html, startURL)
		if err != nil {
			logger.Warn("extraction failed, stopping pagination", "page", page, "error", err)
			break
		}
		if len(pageParts) == 0 {
			// A page with no part records is past the end of the listing.
			logger.Debug("empty page, stopping pagination", "page", page)
			break
		}

		for _, part := range pageParts {
			if part.URL != nil && seen.TestAndAdd(*part.URL) {
				continue
			}
			parts = append(parts, part)
		}
	}

	return parts, kind, nil
}

// pause sleeps a randomized interval between page loads. Headless runs
// keep it near-zero; headful runs approximate human pacing.
func (p *Paginator) pause() {
	if p.Headful {
		time.Sleep(400*time.Millisecond + time.Duration(rand.Intn(200))*time.Millisecond)
		return
	}
	time.Sleep(time.Duration(1+rand.Intn(10)) * time.Millisecond)
}

func (p *Paginator) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
