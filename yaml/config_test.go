package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHeaderSource(t *testing.T) {
	t.Parallel()

	t.Run("loads templates and pools keyed by engine", func(t *testing.T) {
		t.Parallel()

		headers := writeFile(t, "headers.yaml", `
chrome:
  Accept-Language: en-US,en;q=0.9
  Sec-Ch-Ua-Platform: '"Windows"'
firefox:
  Accept-Language: en-US,en;q=0.5
`)
		agents := writeFile(t, "agents.yaml", `
chrome:
  - Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0
  - Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Chrome/120.0
firefox:
  - Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Firefox/121.0
`)

		src, err := yaml.LoadHeaderSource(headers, agents)
		require.NoError(t, err)

		assert.Equal(t, "en-US,en;q=0.9", src.Templates[partscat.EngineChrome]["Accept-Language"])
		assert.Len(t, src.UserAgents[partscat.EngineChrome], 2)
		assert.Len(t, src.UserAgents[partscat.EngineFirefox], 1)

		// The undetected engine shares the chrome pools.
		set, err := src.Random(partscat.EngineUndetected)
		require.NoError(t, err)
		assert.Contains(t, set["User-Agent"], "Chrome")
	})

	t.Run("rejects unknown engine names", func(t *testing.T) {
		t.Parallel()

		headers := writeFile(t, "headers.yaml", "safari:\n  Accept: text/html\n")
		agents := writeFile(t, "agents.yaml", "chrome:\n  - ua\n")

		_, err := yaml.LoadHeaderSource(headers, agents)
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		agents := writeFile(t, "agents.yaml", "chrome:\n  - ua\n")
		_, err := yaml.LoadHeaderSource("/nonexistent/headers.yaml", agents)
		require.Error(t, err)
	})
}

func TestLoadTargets(t *testing.T) {
	t.Parallel()

	t.Run("resolves suffixes and orders deterministically", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "brands.json", `{
			"Refrigerator": {"Dacor": "/Dacor-Refrigerator-Parts.htm"},
			"Dishwasher": {
				"Bosch": "Bosch-Dishwasher-Parts.htm",
				"Admiral": "/Admiral-Dishwasher-Parts.htm"
			}
		}`)

		targets, err := yaml.LoadTargets(path, "https://www.partselect.com/")
		require.NoError(t, err)

		require.Len(t, targets, 3)
		assert.Equal(t, partscat.Target{
			Category: "Dishwasher",
			Brand:    "Admiral",
			URL:      "https://www.partselect.com/Admiral-Dishwasher-Parts.htm",
		}, targets[0])
		assert.Equal(t, "Bosch", targets[1].Brand)
		assert.Equal(t, "https://www.partselect.com/Bosch-Dishwasher-Parts.htm", targets[1].URL)
		assert.Equal(t, "Refrigerator", targets[2].Category)
	})

	t.Run("absolute urls pass through", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "brands.json", `{"Dishwasher": {"Admiral": "https://elsewhere.test/a.htm"}}`)
		targets, err := yaml.LoadTargets(path, "https://www.partselect.com")
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, "https://elsewhere.test/a.htm", targets[0].URL)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "brands.json", "{broken")
		_, err := yaml.LoadTargets(path, "https://www.partselect.com")
		require.Error(t, err)
	})
}
