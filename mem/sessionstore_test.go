package mem_test

import (
	"context"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create assigns a unique id", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		a, err := store.Create(ctx, "user-a")
		require.NoError(t, err)
		b, err := store.Create(ctx, "user-b")
		require.NoError(t, err)

		assert.NotEmpty(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, "user-a", a.UserID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("create replaces an existing session", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		first, err := store.Create(ctx, "user-a")
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, "user-a", partscat.Message{Role: "user", Content: "hi"}))

		second, err := store.Create(ctx, "user-a")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := store.Get(ctx, "user-a")
		require.NoError(t, err)
		assert.Empty(t, got.Messages)
	})

	t.Run("create rejects empty user ids", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		_, err := store.Create(ctx, "")
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})

	t.Run("append and get round-trip messages", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		_, err := store.Create(ctx, "user-a")
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, "user-a", partscat.Message{Role: "user", Content: "which bin fits?"}))
		require.NoError(t, store.Append(ctx, "user-a", partscat.Message{Role: "assistant", Content: "PS11752778"}))

		got, err := store.Get(ctx, "user-a")
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "assistant", got.Messages[1].Role)
	})

	t.Run("get and append return ENOTFOUND for unknown users", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		_, err := store.Get(ctx, "ghost")
		assert.Equal(t, partscat.ENOTFOUND, partscat.ErrorCode(err))
		err = store.Append(ctx, "ghost", partscat.Message{Role: "user", Content: "?"})
		assert.Equal(t, partscat.ENOTFOUND, partscat.ErrorCode(err))
	})

	t.Run("evict is a no-op for absent sessions", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		require.NoError(t, store.Evict(ctx, "ghost"))

		_, err := store.Create(ctx, "user-a")
		require.NoError(t, err)
		require.NoError(t, store.Evict(ctx, "user-a"))
		_, err = store.Get(ctx, "user-a")
		assert.Equal(t, partscat.ENOTFOUND, partscat.ErrorCode(err))
	})

	t.Run("returned sessions are snapshots", func(t *testing.T) {
		t.Parallel()

		store := mem.NewSessionStore()
		_, err := store.Create(ctx, "user-a")
		require.NoError(t, err)

		before, err := store.Get(ctx, "user-a")
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, "user-a", partscat.Message{Role: "user", Content: "hi"}))
		assert.Empty(t, before.Messages)
	})
}
