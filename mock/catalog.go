package mock

import (
	"context"

	"github.com/fwojciec/partscat"
)

var _ partscat.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of partscat.CatalogService.
type CatalogService struct {
	UpsertCatalogFn   func(ctx context.Context, catalog *partscat.Catalog) error
	FindCatalogByIDFn func(ctx context.Context, id string) (*partscat.Catalog, error)
	FindPartsFn       func(ctx context.Context, filter partscat.PartFilter) ([]partscat.PartMatch, error)
	QueryFn           func(ctx context.Context, stmt string) ([]map[string]any, error)
}

func (s *CatalogService) UpsertCatalog(ctx context.Context, catalog *partscat.Catalog) error {
	return s.UpsertCatalogFn(ctx, catalog)
}

func (s *CatalogService) FindCatalogByID(ctx context.Context, id string) (*partscat.Catalog, error) {
	return s.FindCatalogByIDFn(ctx, id)
}

func (s *CatalogService) FindParts(ctx context.Context, filter partscat.PartFilter) ([]partscat.PartMatch, error) {
	return s.FindPartsFn(ctx, filter)
}

func (s *CatalogService) Query(ctx context.Context, stmt string) ([]map[string]any, error) {
	return s.QueryFn(ctx, stmt)
}
