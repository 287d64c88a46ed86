package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/partscat"
	main "github.com/fwojciec/partscat/cmd/partscat"
	"github.com/fwojciec/partscat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("uploads every catalog file in the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCatalogFile(t, dir, "Admiral-Dishwasher.json", `{"brand_product":"Admiral-Dishwasher","parts":[{"name":"Lower Dishrack Wheel"}]}`)
		writeCatalogFile(t, dir, "Dacor-Refrigerator.json", `{"brand_product":"Dacor-Refrigerator","parts":[]}`)

		var uploaded []string
		catalogs := &mock.CatalogService{
			UpsertCatalogFn: func(_ context.Context, catalog *partscat.Catalog) error {
				uploaded = append(uploaded, catalog.BrandProduct)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Catalogs: catalogs,
		}

		cmd := &main.UploadCmd{DataDir: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Admiral-Dishwasher", "Dacor-Refrigerator"}, uploaded)
		assert.Contains(t, stdout.String(), "Uploaded 2/2 catalogs (0 failed)")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports per-file failures without aborting the batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCatalogFile(t, dir, "Admiral-Dishwasher.json", `{"brand_product":"Admiral-Dishwasher","parts":[]}`)
		writeCatalogFile(t, dir, "broken.json", `{not json`)

		catalogs := &mock.CatalogService{
			UpsertCatalogFn: func(_ context.Context, _ *partscat.Catalog) error {
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Catalogs: catalogs,
		}

		cmd := &main.UploadCmd{DataDir: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Uploaded 1/2 catalogs (1 failed)")
		assert.Contains(t, stderr.String(), "broken.json")
	})

	t.Run("shows message when directory has no catalog files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Catalogs: &mock.CatalogService{},
		}

		cmd := &main.UploadCmd{DataDir: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No catalog files found")
	})

	t.Run("returns error when directory does not exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Catalogs: &mock.CatalogService{},
		}

		cmd := &main.UploadCmd{DataDir: filepath.Join(t.TempDir(), "missing")}

		err := cmd.Run(deps)

		require.Error(t, err)
	})
}

func writeCatalogFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}
