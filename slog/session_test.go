package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/mock"
	partscatslog "github.com/fwojciec/partscat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs navigation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		var navigated string
		inner := &mock.Session{
			NavigateFn: func(ctx context.Context, url string) error {
				navigated = url
				return nil
			},
		}

		s := partscatslog.NewLoggingSession(inner, logger)
		err := s.Navigate(context.Background(), "https://www.partselect.com/a.htm")
		require.NoError(t, err)
		assert.Equal(t, "https://www.partselect.com/a.htm", navigated)
		assert.Contains(t, buf.String(), "navigate")
		assert.Contains(t, buf.String(), "partselect.com")
	})

	t.Run("manager wraps acquired sessions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		inner := &mock.SessionManager{
			AcquireFn: func(ctx context.Context) (partscat.Session, error) {
				return &mock.Session{
					NavigateFn: func(ctx context.Context, url string) error { return nil },
				}, nil
			},
		}

		m := partscatslog.NewLoggingSessionManager(inner, logger)
		session, err := m.Acquire(context.Background())
		require.NoError(t, err)

		_, ok := session.(*partscatslog.LoggingSession)
		assert.True(t, ok, "expected the acquired session to be wrapped")
		assert.Contains(t, buf.String(), "acquire session")
	})
}
