// Package yaml loads scraper configuration files: browser header
// templates and user-agent pools (YAML), and scrape target maps (JSON).
package yaml

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fwojciec/partscat"
	"gopkg.in/yaml.v3"
)

// LoadHeaderSource reads the header template file and the user-agent
// pool file, both keyed by engine name. Unknown engine names are
// configuration errors.
func LoadHeaderSource(headersPath, agentsPath string) (*partscat.HeaderSource, error) {
	src := &partscat.HeaderSource{
		Templates:  make(map[partscat.Engine]map[string]string),
		UserAgents: make(map[partscat.Engine][]string),
	}

	var templates map[string]map[string]string
	if err := loadYAML(headersPath, &templates); err != nil {
		return nil, err
	}
	for name, template := range templates {
		engine, err := partscat.ParseEngine(name)
		if err != nil {
			return nil, partscat.Errorf(partscat.EINVALID, "%s: unknown engine %q", headersPath, name)
		}
		src.Templates[engine] = template
	}

	var agents map[string][]string
	if err := loadYAML(agentsPath, &agents); err != nil {
		return nil, err
	}
	for name, pool := range agents {
		engine, err := partscat.ParseEngine(name)
		if err != nil {
			return nil, partscat.Errorf(partscat.EINVALID, "%s: unknown engine %q", agentsPath, name)
		}
		src.UserAgents[engine] = pool
	}

	return src, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadTargets reads a JSON file mapping category → brand → URL suffix
// and returns targets with URLs resolved against baseURL. Target order
// is deterministic: categories and brands sorted alphabetically.
func LoadTargets(path, baseURL string) ([]partscat.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var categories map[string]map[string]string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	var targets []partscat.Target
	for _, category := range sortedKeys(categories) {
		brands := categories[category]
		for _, brand := range sortedKeys(brands) {
			suffix := brands[brand]
			url := suffix
			if !strings.HasPrefix(suffix, "http") {
				url = baseURL + "/" + strings.TrimPrefix(suffix, "/")
			}
			targets = append(targets, partscat.Target{
				Category: category,
				Brand:    brand,
				URL:      url,
			})
		}
	}
	return targets, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
