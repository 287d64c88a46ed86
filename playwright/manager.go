// Package playwright provides Firefox-based browser session management
// using playwright-go.
package playwright

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/partscat"
	"github.com/playwright-community/playwright-go"
)

var _ partscat.SessionManager = (*Manager)(nil)

// Manager owns a Firefox browser process and at most one live session.
// Acquiring a new session tears down the previous one first.
type Manager struct {
	headers  *partscat.HeaderSource
	proxies  partscat.ProxyService
	logger   *slog.Logger
	headless bool
	useProxy bool

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	browserCtx playwright.BrowserContext
	session *Session
	closed  atomic.Bool
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

// NewManager creates a Manager for the firefox engine.
func NewManager(engine partscat.Engine, headers *partscat.HeaderSource, opts ...ManagerOption) (*Manager, error) {
	if engine != partscat.EngineFirefox {
		return nil, partscat.Errorf(partscat.EINVALID, "playwright manager does not support engine %q", engine)
	}

	m := &Manager{
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
// randomized header set and, when available, a validated proxy.
func (m *Manager) Acquire(ctx context.Context) (partscat.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardown()

	headerSet, err := m.headers.Random(partscat.EngineFirefox)
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.headless),
	}
	if proxy, useProxy := m.proxyFor(ctx); useProxy {
		launchOpts.Proxy = &playwright.Proxy{Server: proxy}
	}

	browser, err := pw.Firefox.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching firefox: %w", err)
	}

	userAgent := headerSet["User-Agent"]
	extraHeaders := make(map[string]string, len(headerSet))
	for k, v := range headerSet {
		if k == "User-Agent" {
			continue
		}
		extraHeaders[k] = v
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:        playwright.String(userAgent),
		Viewport:         &playwright.Size{Width: 1920, Height: 1080},
		ExtraHttpHeaders: extraHeaders,
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	m.pw = pw
	m.browser = browser
	m.browserCtx = browserCtx
	m.session = &Session{page: page}
	return m.session, nil
}

// Close tears down the live session and stops the playwright driver.
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

	proxy := proxies[rand.Intn(len(proxies))]
	m.logger.Info("using proxy", "proxy", proxy)
	return proxy, true
}

// teardown closes the live session, context, browser and driver.
// Must be called with mu held.
func (m *Manager) teardown() {
	if m.session != nil {
		_ = m.session.Close()
		m.session = nil
	}
	if m.browserCtx != nil {
		_ = m.browserCtx.Close()
		m.browserCtx = nil
	}
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.pw != nil {
		_ = m.pw.Stop()
		m.pw = nil
	}
}
