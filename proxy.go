package partscat

import "context"

// ProxyService supplies validated proxy URLs for browser sessions.
//
// Implementations fetch candidates from a public proxy list and validate
// each with a test request. Acquisition failures are not fatal: an
// implementation logs and returns an empty set, and callers degrade to
// direct connections.
type ProxyService interface {
	// Proxies returns the current set of validated proxy URLs, refreshing
	// the underlying pool if it is stale. The returned slice is a copy;
	// the pool is only ever replaced wholesale, never patched in place.
	Proxies(ctx context.Context) ([]string, error)
}
