package connection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/SiriusScan/mcp-redis/internal/store"
	"github.com/SiriusScan/mcp-redis/internal/store/storetest"
)

type closeTracker struct {
	*storetest.Fake
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestOpen(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	t.Run("single URL", func(t *testing.T) {
		dial := func(ctx context.Context, rawURL string) (store.Client, error) {
			return storetest.New(), nil
		}

		reg, err := Open(ctx, []string{"redis://:pw@127.0.0.1:6379"}, dial, logger)
		require.NoError(t, err)

		assert.Equal(t, []Description{{Name: "redis", URL: "redis://:***@127.0.0.1:6379"}}, reg.Describe())
		assert.NoError(t, reg.Close())
	})

	t.Run("multiple URLs", func(t *testing.T) {
		dial := func(ctx context.Context, rawURL string) (store.Client, error) {
			return storetest.New(), nil
		}

		reg, err := Open(ctx, []string{"redis://a:6379", "redis://b:6380/2"}, dial, logger)
		require.NoError(t, err)

		assert.Equal(t, []Description{
			{Name: "a:6379", URL: "redis://a:6379"},
			{Name: "b:6380/2", URL: "redis://b:6380/2"},
		}, reg.Describe())
	})

	t.Run("failure closes opened clients", func(t *testing.T) {
		var opened []*closeTracker
		dial := func(ctx context.Context, rawURL string) (store.Client, error) {
			if rawURL == "redis://:secret@bad:6379" {
				return nil, errors.New("connection refused")
			}
			c := &closeTracker{Fake: storetest.New()}
			opened = append(opened, c)
			return c, nil
		}

		_, err := Open(ctx, []string{"redis://good:6379", "redis://:secret@bad:6379"}, dial, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot connect to 'redis://:***@bad:6379'")
		assert.NotContains(t, err.Error(), "secret")

		require.Len(t, opened, 1)
		assert.True(t, opened[0].closed)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		dial := func(ctx context.Context, rawURL string) (store.Client, error) {
			return storetest.New(), nil
		}

		_, err := Open(ctx, []string{"redis://a:6379", "redis://a:6379/0"}, dial, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate connection name")
	})

	t.Run("no URLs", func(t *testing.T) {
		_, err := Open(ctx, nil, nil, logger)
		assert.Error(t, err)
	})
}
