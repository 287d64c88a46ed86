// Package http provides HTTP-based external services, currently the
// public proxy list source used to feed browser sessions.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscat"
	"golang.org/x/sync/errgroup"
)

// Defaults for the proxy source.
const (
	DefaultSourceURL = "https://free-proxy-list.net"
	DefaultTestURL   = "https://httpbin.org/ip"

	// DefaultMaxAge is how long a validated pool is trusted before it is
	// refreshed wholesale.
	DefaultMaxAge = 600 * time.Second

	// DefaultCheckTimeout bounds one proxy validation request.
	DefaultCheckTimeout = 2 * time.Second

	// DefaultCheckConcurrency bounds concurrent validation requests.
	DefaultCheckConcurrency = 16
)

var _ partscat.ProxyService = (*ProxyService)(nil)

// ProxyService maintains a pool of validated proxies scraped from a
// public proxy list. The pool is refreshed when stale and always
// replaced wholesale, so readers never observe a partial update.
// Acquisition failures are logged and produce an empty pool; they are
// never surfaced as errors.
type ProxyService struct {
	SourceURL        string
	TestURL          string
	MaxAge           time.Duration
	CheckTimeout     time.Duration
	CheckConcurrency int

	// Headers are sent with each validation request.
	Headers map[string]string

	// Check validates one proxy URL. Defaults to an outbound test
	// request against TestURL through the proxy. Overridable in tests.
	Check func(ctx context.Context, proxyURL string) bool

	client *http.Client
	logger *slog.Logger

	mu        sync.Mutex
	pool      []string
	fetchedAt time.Time
}

// NewProxyService creates a ProxyService with production defaults.
func NewProxyService(logger *slog.Logger) *ProxyService {
	s := &ProxyService{
		SourceURL:        DefaultSourceURL,
		TestURL:          DefaultTestURL,
		MaxAge:           DefaultMaxAge,
		CheckTimeout:     DefaultCheckTimeout,
		CheckConcurrency: DefaultCheckConcurrency,
		client:           &http.Client{Timeout: 5 * time.Second},
		logger:           logger,
	}
	s.Check = s.checkProxy
	return s
}

// Proxies returns the current validated pool, refreshing it first if it
// is older than MaxAge. The returned slice is a copy.
func (s *ProxyService) Proxies(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetchedAt.IsZero() || time.Since(s.fetchedAt) > s.MaxAge {
		s.refresh(ctx)
	}

	out := make([]string, len(s.pool))
	copy(out, s.pool)
	return out, nil
}

// refresh fetches proxy candidates and replaces the pool with the subset
// that passes validation. Must be called with mu held.
func (s *ProxyService) refresh(ctx context.Context) {
	// Record the attempt regardless of outcome so a dead source is not
	// hammered on every session.
	s.fetchedAt = time.Now()

	candidates, err := s.fetchCandidates(ctx)
	if err != nil {
		s.logger.Error("fetching proxy list", "url", s.SourceURL, "err", err)
		s.pool = nil
		return
	}

	good := s.validate(ctx, candidates)
	s.logger.Info("proxy pool refreshed", "candidates", len(candidates), "good", len(good))
	s.pool = good
}

// fetchCandidates scrapes the proxy list table and returns the URLs of
// proxies advertising HTTPS support.
func (s *ProxyService) fetchCandidates(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var candidates []string
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return
		}
		ip := strings.TrimSpace(cells.Eq(0).Text())
		port := strings.TrimSpace(cells.Eq(1).Text())
		https := strings.TrimSpace(cells.Eq(6).Text())
		if ip == "" || port == "" || !strings.EqualFold(https, "yes") {
			return
		}
		candidates = append(candidates, "http://"+ip+":"+port)
	})

	return candidates, nil
}

// validate checks candidates concurrently and returns the ones that
// answered the test request in time. Order follows the candidate list.
func (s *ProxyService) validate(ctx context.Context, candidates []string) []string {
	results := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.CheckConcurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			results[i] = s.Check(gctx, candidate)
			return nil
		})
	}
	_ = g.Wait()

	var good []string
	for i, ok := range results {
		if ok {
			good = append(good, candidates[i])
		}
	}
	return good
}

// checkProxy performs one outbound test request through the proxy.
func (s *ProxyService) checkProxy(ctx context.Context, proxyURL string) bool {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return false
	}

	client := &http.Client{
		Timeout:   s.CheckTimeout,
		Transport: &http.Transport{Proxy: http.ProxyURL(parsed)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.TestURL, nil)
	if err != nil {
		return false
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
