package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	t.Run("strips the htm suffix", func(t *testing.T) {
		t.Parallel()
		name, err := fs.FileName("https://www.partselect.com/Admiral-Dishwasher-Parts.htm")
		require.NoError(t, err)
		assert.Equal(t, "Admiral-Dishwasher-Parts.json", name)
	})

	t.Run("strips the html suffix", func(t *testing.T) {
		t.Parallel()
		name, err := fs.FileName("https://example.com/catalog/Bosch-Dishwasher.html")
		require.NoError(t, err)
		assert.Equal(t, "Bosch-Dishwasher.json", name)
	})

	t.Run("plain segments pass through", func(t *testing.T) {
		t.Parallel()
		name, err := fs.FileName("https://example.com/catalog/Dacor-Refrigerator")
		require.NoError(t, err)
		assert.Equal(t, "Dacor-Refrigerator.json", name)
	})

	t.Run("rejects urls without a path", func(t *testing.T) {
		t.Parallel()
		_, err := fs.FileName("https://example.com")
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})
}

func TestWriter_WriteCatalog(t *testing.T) {
	t.Parallel()

	t.Run("names the file after the source url's trailing segment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		catalog := partscat.NewCatalog("Admiral-Dishwasher", []partscat.Part{
			{Name: partscat.String("Lower Rack Wheel"), Price: partscat.String("$12.34")},
		})
		catalog.SourceURL = "https://www.partselect.com/Admiral-Dishwasher-Parts.htm"

		path, err := w.WriteCatalog(context.Background(), catalog)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Admiral-Dishwasher-Parts.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"brand_product\": \"Admiral-Dishwasher\"")

		var got partscat.Catalog
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "admiral_dishwasher", got.ID)
		assert.Equal(t, partscat.CatalogType, got.Type)
		require.Len(t, got.Parts, 1)
		assert.Equal(t, "Lower Rack Wheel", *got.Parts[0].Name)
	})

	t.Run("falls back to the brand_product without a source url", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		path, err := w.WriteCatalog(context.Background(), partscat.NewCatalog("Dacor-Refrigerator", nil))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Dacor-Refrigerator.json"), path)
	})

	t.Run("rejects a source url without a path segment", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		catalog := partscat.NewCatalog("Admiral-Dishwasher", nil)
		catalog.SourceURL = "https://www.partselect.com"

		_, err := w.WriteCatalog(context.Background(), catalog)
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})

	t.Run("creates the data directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		w := fs.NewWriter(dir)

		_, err := w.WriteCatalog(context.Background(), partscat.NewCatalog("Bosch-Dishwasher", nil))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "Bosch-Dishwasher.json"))
	})

	t.Run("rejects invalid catalogs", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.WriteCatalog(context.Background(), &partscat.Catalog{})
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})
}
