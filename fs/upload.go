package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/partscat"
)

// UploadDir reads every catalog file in dir and upserts it into the
// store. A batch never fails wholesale: per-file failures are recorded
// in the summary and the remaining files still upload.
func UploadDir(ctx context.Context, dir string, store partscat.CatalogService) (*partscat.UploadSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	summary := &partscat.UploadSummary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		summary.Total++

		status := partscat.FileStatus{File: entry.Name(), Status: "success"}
		if err := uploadFile(ctx, filepath.Join(dir, entry.Name()), store); err != nil {
			status.Status = "failed"
			status.Error = err.Error()
			summary.Failed++
		} else {
			summary.Uploaded++
		}
		summary.Files = append(summary.Files, status)
	}

	return summary, nil
}

// uploadFile parses one catalog file and upserts it. Files written
// before the id/type fields existed get them derived from the file name.
func uploadFile(ctx context.Context, path string, store partscat.CatalogService) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var catalog partscat.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return err
	}

	if catalog.BrandProduct == "" {
		catalog.BrandProduct = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if catalog.ID == "" {
		catalog.ID = partscat.CatalogID(catalog.BrandProduct)
	}
	if catalog.Type == "" {
		catalog.Type = partscat.CatalogType
	}

	return store.UpsertCatalog(ctx, &catalog)
}
