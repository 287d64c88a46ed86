// Package rod provides Chrome-based browser session management using
// go-rod. It implements the chrome and undetected engines; the
// undetected variant adds launch flags that suppress the usual
// automation fingerprints.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/partscat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ partscat.SessionManager = (*Manager)(nil)

// Manager owns a Chrome browser process and at most one live session.
// Acquiring a new session tears down the previous one first; Close
// releases the browser process. Manager is safe for concurrent use,
// though sessions themselves are strictly sequential.
type Manager struct {
	engine   partscat.Engine
	headers  *partscat.HeaderSource
	proxies  partscat.ProxyService
	logger   *slog.Logger
	headless bool
	useProxy bool

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	session  *Session
	closed   atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithHeadless controls headless mode. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(m *Manager) { m.headless = headless }
}

// WithProxies enables proxy use backed by the given service.
func WithProxies(proxies partscat.ProxyService) ManagerOption {
	return func(m *Manager) {
		m.proxies = proxies
		m.useProxy = true
	}
}

// WithLogger sets the manager's logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a Manager for the chrome or undetected engine.
// Requesting any other engine is a configuration error.
func NewManager(engine partscat.Engine, headers *partscat.HeaderSource, opts ...ManagerOption) (*Manager, error) {
	if engine != partscat.EngineChrome && engine != partscat.EngineUndetected {
		return nil, partscat.Errorf(partscat.EINVALID, "rod manager does not support engine %q", engine)
	}

	m := &Manager{
		engine:   engine,
		headers:  headers,
		logger:   slog.Default(),
		headless: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Acquire tears down any previous session and returns a fresh one with a
// randomized header set and, when available, a validated proxy. With
// zero validated proxies the session is created without one.
func (m *Manager) Acquire(ctx context.Context) (partscat.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardown()

	headerSet, err := m.headers.Random(m.engine)
	if err != nil {
		return nil, err
	}

	proxyURL, useProxy := m.proxyFor(ctx)

	if err := m.launchBrowser(proxyURL, useProxy); err != nil {
		return nil, err
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		m.teardown()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	if err := applyHeaders(page, headerSet); err != nil {
		_ = page.Close()
		m.teardown()
		return nil, fmt.Errorf("applying headers: %w", err)
	}

	m.session = &Session{page: page}
	return m.session, nil
}

// Close tears down the live session and releases the browser process.
// Close is safe to call multiple times.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardown()
	return nil
}

// proxyFor picks a random validated proxy. Degrades to a direct
// connection when proxying is disabled or no validated proxy exists.
func (m *Manager) proxyFor(ctx context.Context) (string, bool) {
	if !m.useProxy || m.proxies == nil {
		return "", false
	}

	proxies, err := m.proxies.Proxies(ctx)
	if err != nil || len(proxies) == 0 {
		m.logger.Warn("no good proxies available, proceeding without proxy")
		return "", false
	}

	proxy := strings.TrimPrefix(proxies[rand.Intn(len(proxies))], "http://")
	m.logger.Info("using proxy", "proxy", proxy)
	return proxy, true
}

// launchBrowser starts a browser instance with stability flags, plus
// anti-automation flags for the undetected engine.
// Must be called with mu held.
func (m *Manager) launchBrowser(proxy string, useProxy bool) error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(m.headless)

	if m.engine == partscat.EngineUndetected {
		lnchr = lnchr.
			Set("disable-blink-features", "AutomationControlled").
			Set("no-sandbox").
			Set("window-size", "1920,1080")
	}
	if useProxy {
		lnchr = lnchr.Proxy(proxy)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// teardown closes the live session, browser, and launcher.
// Must be called with mu held.
func (m *Manager) teardown() {
	if m.session != nil {
		_ = m.session.Close()
		m.session = nil
	}
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
}

// applyHeaders sets the user agent and remaining headers on the page.
func applyHeaders(page *rod.Page, headers map[string]string) error {
	if ua, ok := headers["User-Agent"]; ok {
		if err := (proto.NetworkSetUserAgentOverride{UserAgent: ua}).Call(page); err != nil {
			return err
		}
	}

	var pairs []string
	for k, v := range headers {
		if k == "User-Agent" {
			continue
		}
		pairs = append(pairs, k, v)
	}
	if len(pairs) == 0 {
		return nil
	}
	_, err := page.SetExtraHeaders(pairs)
	return err
}
