package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/partscat"
)

// FlattenFile rewrites one catalog file with each part's nested details
// hoisted to the top level. Running it on an already-flat file is a
// no-op rewrite.
func FlattenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var catalog partscat.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	catalog.Flatten()

	out, err := json.MarshalIndent(&catalog, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// FlattenDir runs the flatten migration over every .json file in dir.
// Per-file failures are collected; the migration never stops early.
func FlattenDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var flattened int
	var errs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := FlattenFile(filepath.Join(dir, entry.Name())); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		flattened++
	}

	if len(errs) > 0 {
		return flattened, fmt.Errorf("flatten failed for %d files: %s", len(errs), strings.Join(errs, "; "))
	}
	return flattened, nil
}
