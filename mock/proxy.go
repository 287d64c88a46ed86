package mock

import (
	"context"

	"github.com/fwojciec/partscat"
)

var _ partscat.ProxyService = (*ProxyService)(nil)

// ProxyService is a mock implementation of partscat.ProxyService.
type ProxyService struct {
	ProxiesFn func(ctx context.Context) ([]string, error)
}

func (s *ProxyService) Proxies(ctx context.Context) ([]string, error) {
	return s.ProxiesFn(ctx)
}
