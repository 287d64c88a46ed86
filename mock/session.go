package mock

import (
	"context"

	"github.com/fwojciec/partscat"
)

var _ partscat.Session = (*Session)(nil)

// Session is a mock implementation of partscat.Session.
type Session struct {
	NavigateFn func(ctx context.Context, url string) error
	HTMLFn     func(ctx context.Context) (string, error)
	ClickFn    func(ctx context.Context, selector string) error
	CloseFn    func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Click(ctx context.Context, selector string) error {
	return s.ClickFn(ctx, selector)
}

func (s *Session) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ partscat.SessionManager = (*SessionManager)(nil)

// SessionManager is a mock implementation of partscat.SessionManager.
type SessionManager struct {
	AcquireFn func(ctx context.Context) (partscat.Session, error)
	CloseFn   func() error
}

func (m *SessionManager) Acquire(ctx context.Context) (partscat.Session, error) {
	return m.AcquireFn(ctx)
}

func (m *SessionManager) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}
