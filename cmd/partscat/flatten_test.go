package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/partscat"
	main "github.com/fwojciec/partscat/cmd/partscat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("flattens nested details in catalog files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCatalogFile(t, dir, "Admiral-Dishwasher.json",
			`{"brand_product":"Admiral-Dishwasher","parts":[{"name":"Lower Dishrack Wheel","details":{"price":"14.95"}}]}`)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.FlattenCmd{DataDir: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Flattened 1 catalog files")
		assert.Empty(t, stderr.String())

		data, err := os.ReadFile(filepath.Join(dir, "Admiral-Dishwasher.json"))
		require.NoError(t, err)
		var catalog partscat.Catalog
		require.NoError(t, json.Unmarshal(data, &catalog))
		require.Len(t, catalog.Parts, 1)
		require.NotNil(t, catalog.Parts[0].Price)
		assert.Equal(t, "14.95", *catalog.Parts[0].Price)
	})

	t.Run("reports per-file failures but still counts successes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCatalogFile(t, dir, "Admiral-Dishwasher.json",
			`{"brand_product":"Admiral-Dishwasher","parts":[]}`)
		writeCatalogFile(t, dir, "broken.json", `{not json`)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.FlattenCmd{DataDir: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Flattened 1 catalog files")
		assert.Contains(t, stderr.String(), "broken.json")
	})

	t.Run("returns error when directory does not exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.FlattenCmd{DataDir: filepath.Join(t.TempDir(), "missing")}

		err := cmd.Run(deps)

		require.Error(t, err)
	})
}
