// Package mem provides in-memory storage for conversation sessions.
package mem

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/partscat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ partscat.ConvSessionStore = (*SessionStore)(nil)

// SessionStore keeps conversation sessions in a mutex-guarded map keyed
// by user id. Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*partscat.ConvSession
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*partscat.ConvSession),
	}
}

// Create creates a session for the user, replacing any existing one.
func (s *SessionStore) Create(ctx context.Context, userID string) (*partscat.ConvSession, error) {
	if userID == "" {
		return nil, partscat.Errorf(partscat.EINVALID, "user id required")
	}

	session := &partscat.ConvSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	return copySession(session), nil
}

// Get retrieves the user's session.
func (s *SessionStore) Get(ctx context.Context, userID string) (*partscat.ConvSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, partscat.Errorf(partscat.ENOTFOUND, "no session for user %q", userID)
	}
	return copySession(session), nil
}

// Append adds a message to the user's session.
func (s *SessionStore) Append(ctx context.Context, userID string, msg partscat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return partscat.Errorf(partscat.ENOTFOUND, "no session for user %q", userID)
	}
	session.Messages = append(session.Messages, msg)
	return nil
}

// Evict removes the user's session. Evicting an absent session is a
// no-op.
func (s *SessionStore) Evict(ctx context.Context, userID string) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// copySession returns a snapshot the caller can hold without racing
// later appends.
func copySession(session *partscat.ConvSession) *partscat.ConvSession {
	out := *session
	out.Messages = append([]partscat.Message(nil), session.Messages...)
	return &out
}
