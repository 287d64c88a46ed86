package rod

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	t.Parallel()

	headers := testHeaders()

	t.Run("supports chrome and undetected", func(t *testing.T) {
		t.Parallel()
		for _, engine := range []partscat.Engine{partscat.EngineChrome, partscat.EngineUndetected} {
			m, err := NewManager(engine, headers)
			require.NoError(t, err)
			assert.NotNil(t, m)
		}
	})

	t.Run("rejects firefox", func(t *testing.T) {
		t.Parallel()
		_, err := NewManager(partscat.EngineFirefox, headers)
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})
}

func TestManager_ProxySelection(t *testing.T) {
	t.Parallel()

	headers := testHeaders()

	t.Run("disabled without proxy service", func(t *testing.T) {
		t.Parallel()
		m, err := NewManager(partscat.EngineChrome, headers)
		require.NoError(t, err)

		_, ok := m.proxyFor(context.Background())
		assert.False(t, ok)
	})

	t.Run("degrades to direct connection when pool is empty", func(t *testing.T) {
		t.Parallel()
		proxies := &mock.ProxyService{
			ProxiesFn: func(ctx context.Context) ([]string, error) {
				return nil, nil
			},
		}
		m, err := NewManager(partscat.EngineChrome, headers,
			WithProxies(proxies), WithLogger(slog.New(slog.DiscardHandler)))
		require.NoError(t, err)

		_, ok := m.proxyFor(context.Background())
		assert.False(t, ok)
	})

	t.Run("picks from the validated pool without the scheme", func(t *testing.T) {
		t.Parallel()
		proxies := &mock.ProxyService{
			ProxiesFn: func(ctx context.Context) ([]string, error) {
				return []string{"http://10.0.0.1:8080", "http://10.0.0.2:3128"}, nil
			},
		}
		m, err := NewManager(partscat.EngineChrome, headers,
			WithProxies(proxies), WithLogger(slog.New(slog.DiscardHandler)))
		require.NoError(t, err)

		proxy, ok := m.proxyFor(context.Background())
		require.True(t, ok)
		assert.False(t, strings.HasPrefix(proxy, "http://"))
		assert.Contains(t, []string{"10.0.0.1:8080", "10.0.0.2:3128"}, proxy)
	})
}

func testHeaders() *partscat.HeaderSource {
	return &partscat.HeaderSource{
		Templates: map[partscat.Engine]map[string]string{
			partscat.EngineChrome: {"Accept-Language": "en-US,en;q=0.9"},
		},
		UserAgents: map[partscat.Engine][]string{
			partscat.EngineChrome: {"Mozilla/5.0 (test)"},
		},
	}
}
