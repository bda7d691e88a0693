package myredis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisUniversalClient(t *testing.T) {
	t.Run("valid url connects", func(t *testing.T) {
		m := miniredis.RunT(t)
		client, err := NewRedisUniversalClient("redis://"+m.Addr()+"/0", WithDialTimeout(time.Second))
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("rediss url keeps tls", func(t *testing.T) {
		client, err := NewRedisUniversalClient("rediss://example.com:6380/0")
		require.NoError(t, err)
		defer client.Close()

		simple, ok := client.(*redis.Client)
		require.True(t, ok)
		require.NotNil(t, simple.Options().TLSConfig)
		assert.Equal(t, "example.com", simple.Options().TLSConfig.ServerName)
	})

	t.Run("redis url has no tls", func(t *testing.T) {
		client, err := NewRedisUniversalClient("redis://example.com:6379/0")
		require.NoError(t, err)
		defer client.Close()

		simple, ok := client.(*redis.Client)
		require.True(t, ok)
		assert.Nil(t, simple.Options().TLSConfig)
	})

	t.Run("dial timeout option applies", func(t *testing.T) {
		client, err := NewRedisUniversalClient("redis://example.com:6379/0", WithDialTimeout(1500*time.Millisecond))
		require.NoError(t, err)
		defer client.Close()

		simple, ok := client.(*redis.Client)
		require.True(t, ok)
		assert.Equal(t, 1500*time.Millisecond, simple.Options().DialTimeout)
	})

	t.Run("invalid url", func(t *testing.T) {
		client, err := NewRedisUniversalClient("http://localhost:6379")
		require.Error(t, err)
		assert.Nil(t, client)
	})
}
