package mock

import (
	"context"

	"github.com/fwojciec/partscat"
)

var _ partscat.ConvSessionStore = (*ConvSessionStore)(nil)

// ConvSessionStore is a mock implementation of partscat.ConvSessionStore.
type ConvSessionStore struct {
	CreateFn func(ctx context.Context, userID string) (*partscat.ConvSession, error)
	GetFn    func(ctx context.Context, userID string) (*partscat.ConvSession, error)
	AppendFn func(ctx context.Context, userID string, msg partscat.Message) error
	EvictFn  func(ctx context.Context, userID string) error
}

func (s *ConvSessionStore) Create(ctx context.Context, userID string) (*partscat.ConvSession, error) {
	return s.CreateFn(ctx, userID)
}

func (s *ConvSessionStore) Get(ctx context.Context, userID string) (*partscat.ConvSession, error) {
	return s.GetFn(ctx, userID)
}

func (s *ConvSessionStore) Append(ctx context.Context, userID string, msg partscat.Message) error {
	return s.AppendFn(ctx, userID, msg)
}

func (s *ConvSessionStore) Evict(ctx context.Context, userID string) error {
	return s.EvictFn(ctx, userID)
}
