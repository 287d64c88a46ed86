package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partscat"
)

// Ensure LoggingCatalogService implements partscat.CatalogService.
var _ partscat.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with logging.
type LoggingCatalogService struct {
	next   partscat.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next partscat.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// UpsertCatalog logs the catalog being stored and delegates.
func (s *LoggingCatalogService) UpsertCatalog(ctx context.Context, catalog *partscat.Catalog) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert catalog",
			"id", catalog.ID,
			"parts", len(catalog.Parts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertCatalog(ctx, catalog)
}

// FindCatalogByID delegates with debug logging.
func (s *LoggingCatalogService) FindCatalogByID(ctx context.Context, id string) (catalog *partscat.Catalog, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find catalog",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindCatalogByID(ctx, id)
}

// FindParts delegates with debug logging.
func (s *LoggingCatalogService) FindParts(ctx context.Context, filter partscat.PartFilter) (matches []partscat.PartMatch, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find parts",
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindParts(ctx, filter)
}

// Query delegates with debug logging.
func (s *LoggingCatalogService) Query(ctx context.Context, stmt string) (rows []map[string]any, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("query",
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Query(ctx, stmt)
}
