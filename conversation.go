package partscat

import (
	"context"
	"time"
)

// ConvSession represents one user's conversation with the agent layer.
// The agent itself is an external consumer of the catalog; this type
// exists so session lifecycle is an explicit, injectable dependency
// rather than module-level state.
type ConvSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages"`
}

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ConvSessionStore manages conversation sessions keyed by user id.
type ConvSessionStore interface {
	// Create creates a session for the user, replacing any existing one.
	Create(ctx context.Context, userID string) (*ConvSession, error)

	// Get retrieves the user's session.
	// Returns ENOTFOUND if the user has no session.
	Get(ctx context.Context, userID string) (*ConvSession, error)

	// Append adds a message to the user's session.
	// Returns ENOTFOUND if the user has no session.
	Append(ctx context.Context, userID string, msg Message) error

	// Evict removes the user's session. Evicting an absent session is a
	// no-op.
	Evict(ctx context.Context, userID string) error
}
