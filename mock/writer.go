package mock

import (
	"context"

	"github.com/fwojciec/partscat"
)

var _ partscat.CatalogWriter = (*CatalogWriter)(nil)

// CatalogWriter is a mock implementation of partscat.CatalogWriter.
type CatalogWriter struct {
	WriteCatalogFn func(ctx context.Context, catalog *partscat.Catalog) (string, error)
}

func (w *CatalogWriter) WriteCatalog(ctx context.Context, catalog *partscat.Catalog) (string, error) {
	return w.WriteCatalogFn(ctx, catalog)
}
