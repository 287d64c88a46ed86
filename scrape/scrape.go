package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/partscat"
	"golang.org/x/time/rate"
)

// defaultMaxDetails is how many parts per catalog get detail enrichment.
const defaultMaxDetails = 3

// Scraper orchestrates the scraping of brand+category part catalogs.
type Scraper struct {
	Sessions   partscat.SessionManager
	Classifier partscat.Classifier
	Extractor  partscat.PartExtractor
	Details    partscat.DetailParser
	Writer     partscat.CatalogWriter

	// MaxDetails is how many parts per catalog to enrich with their own
	// page's content. 0 means the default of 3; negative disables
	// enrichment.
	MaxDetails int

	// MaxPages caps pagination per catalog.
	MaxPages int

	// RequestsPerSecond paces page loads across the whole run.
	// 0 means unpaced.
	RequestsPerSecond float64

	// SectionWait is passed through to the enricher.
	SectionWait time.Duration

	// Headful stretches inter-page waits to human-ish lengths.
	Headful bool

	Logger *slog.Logger
}

// Result holds the outcome of a scrape run.
type Result struct {
	Catalogs int
	Parts    int
	Failed   int
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Target    partscat.Target
	Parts     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeAll scrapes every target sequentially and writes one catalog per
// target. A target failing outright is logged and skipped; the run
// always continues to the next target. The progress callback, if
// provided, receives events as the run proceeds.
func (s *Scraper) ScrapeAll(ctx context.Context, targets []partscat.Target, progress ProgressFunc) (*Result, error) {
	logger := s.logger()
	total := len(targets)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var limiter *rate.Limiter
	if s.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.RequestsPerSecond), 1)
	}

	var result Result
	for i, target := range targets {
		if ctx.Err() != nil {
			break
		}

		catalog, err := s.scrapeTarget(ctx, target, limiter)
		if err != nil {
			result.Failed++
			logger.Warn("catalog failed", "brand_product", target.BrandProduct(), "error", err)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: i + 1,
					Total:     total,
					Target:    target,
					Error:     err,
				})
			}
			continue
		}

		path, err := s.Writer.WriteCatalog(ctx, catalog)
		if err != nil {
			result.Failed++
			logger.Warn("catalog write failed", "brand_product", target.BrandProduct(), "error", err)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: i + 1,
					Total:     total,
					Target:    target,
					Error:     err,
				})
			}
			continue
		}

		result.Catalogs++
		result.Parts += len(catalog.Parts)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     total,
				Target:    target,
				Parts:     len(catalog.Parts),
				Path:      path,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// scrapeTarget collects one target's parts and enriches the leading ones
// with their own page's content.
func (s *Scraper) scrapeTarget(ctx context.Context, target partscat.Target, limiter *rate.Limiter) (*partscat.Catalog, error) {
	session, err := s.Sessions.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring session: %w", err)
	}

	paginator := &Paginator{
		Classifier: s.Classifier,
		Extractor:  s.Extractor,
		Sentinel:   fmt.Sprintf("Popular %s %s Parts", target.Brand, target.Category),
		MaxPages:   s.MaxPages,
		Limiter:    limiter,
		Headful:    s.Headful,
		Logger:     s.Logger,
	}

	parts, kind, err := paginator.CollectAll(ctx, session, target.URL)
	if err != nil {
		return nil, err
	}

	if kind == partscat.PageDetail {
		s.enrichLeading(ctx, session, parts)
	}

	catalog := partscat.NewCatalog(target.BrandProduct(), parts)
	catalog.SourceURL = target.URL
	return catalog, nil
}

// enrichLeading attaches detail-page content to the first MaxDetails
// parts that carry a URL.
func (s *Scraper) enrichLeading(ctx context.Context, session partscat.Session, parts []partscat.Part) {
	maxDetails := s.MaxDetails
	if maxDetails == 0 {
		maxDetails = defaultMaxDetails
	}
	if maxDetails < 0 {
		return
	}

	enricher := &Enricher{
		Details:     s.Details,
		SectionWait: s.SectionWait,
		Logger:      s.Logger,
	}

	enriched := 0
	for i := range parts {
		if enriched >= maxDetails {
			break
		}
		if parts[i].URL == nil {
			continue
		}
		parts[i].Details = enricher.Enrich(ctx, session, *parts[i].URL)
		enriched++
	}
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
