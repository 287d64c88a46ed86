// Package fs provides file-based storage for part catalogs.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/partscat"
)

// FileName derives a catalog file name from a source URL: the trailing
// path segment with any .htm/.html suffix removed, plus .json.
// Example: https://www.partselect.com/Admiral-Dishwasher-Parts.htm →
// Admiral-Dishwasher-Parts.json
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	segment := path.Base(u.Path)
	if segment == "." || segment == "/" || segment == "" {
		return "", partscat.Errorf(partscat.EINVALID, "url %q has no path segment", rawURL)
	}

	segment = strings.TrimSuffix(segment, ".html")
	segment = strings.TrimSuffix(segment, ".htm")
	return segment + ".json", nil
}

// Ensure Writer implements partscat.CatalogWriter at compile time.
var _ partscat.CatalogWriter = (*Writer)(nil)

// Writer writes catalogs as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCatalog writes a catalog to disk as an indented JSON file named
// after the trailing path segment of its source URL. Catalogs without a
// source URL are named after their brand_product. Returns the path
// written.
func (w *Writer) WriteCatalog(ctx context.Context, catalog *partscat.Catalog) (string, error) {
	if err := catalog.Validate(); err != nil {
		return "", err
	}

	name := catalog.BrandProduct + ".json"
	if catalog.SourceURL != "" {
		var err error
		if name, err = FileName(catalog.SourceURL); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
