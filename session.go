package partscat

import (
	"context"
	"math/rand"
	"strings"
)

// Engine identifies a browser automation engine.
type Engine string

// Supported browser engines.
const (
	EngineChrome     Engine = "chrome"
	EngineFirefox    Engine = "firefox"
	EngineUndetected Engine = "undetected"
)

// ParseEngine converts a user-supplied engine name to an Engine.
// Accepts case variations ("Chrome", "Firefox", "undetected").
// Returns EINVALID for unknown names.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chrome":
		return EngineChrome, nil
	case "firefox":
		return EngineFirefox, nil
	case "undetected", "undetected-chrome":
		return EngineUndetected, nil
	}
	return "", Errorf(EINVALID, "unsupported driver type %q", s)
}

// Session represents one live browser session. All navigation and
// interaction is sequential within a session; there is no concurrent
// DOM access.
type Session interface {
	// Navigate loads the URL and waits for the page to load.
	Navigate(ctx context.Context, url string) error

	// HTML returns the current rendered page HTML.
	HTML(ctx context.Context) (string, error)

	// Click clicks the first element matching the CSS selector.
	// Returns ENOTFOUND if no element matches.
	Click(ctx context.Context, selector string) error

	// Close releases the session's page resources.
	Close() error
}

// SessionManager constructs browser sessions. A manager owns at most one
// live session: acquiring a new session tears down the previous one.
type SessionManager interface {
	// Acquire returns a fresh session configured with a randomized header
	// set and, if proxying is enabled and a validated proxy is available,
	// a live proxy. With zero validated proxies the session is created
	// with proxying disabled rather than failing.
	Acquire(ctx context.Context) (Session, error)

	// Close tears down the live session and releases the underlying
	// browser process.
	Close() error
}

// HeaderSource supplies randomized browser headers per engine: a fixed
// header template merged with one user-agent sampled uniformly at random
// from the engine's pool.
type HeaderSource struct {
	// Templates maps an engine to its fixed header template.
	Templates map[Engine]map[string]string

	// UserAgents maps an engine to its user-agent pool.
	UserAgents map[Engine][]string
}

// Random returns a header set for the engine: the engine's template with
// a randomly sampled User-Agent merged in. The undetected engine shares
// the Chrome pools. Returns EINVALID if the engine has no configuration.
func (h *HeaderSource) Random(engine Engine) (map[string]string, error) {
	if engine == EngineUndetected {
		engine = EngineChrome
	}

	template, ok := h.Templates[engine]
	if !ok {
		return nil, Errorf(EINVALID, "no header template for engine %q", engine)
	}
	agents := h.UserAgents[engine]
	if len(agents) == 0 {
		return nil, Errorf(EINVALID, "no user agents for engine %q", engine)
	}

	headers := make(map[string]string, len(template)+1)
	for k, v := range template {
		headers[k] = v
	}
	headers["User-Agent"] = agents[rand.Intn(len(agents))]
	return headers, nil
}
