package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/redis"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestStorage(t *testing.T) {
	t.Run("set get remove with prefix", func(t *testing.T) {
		mr, client := newTestRedis(t)
		store := redis.NewStorage(client, "app:")

		require.NoError(t, store.Set("session", `{"a":1}`))
		assert.True(t, mr.Exists("app:session"))

		v, ok, err := store.Get("session")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"a":1}`, v)

		require.NoError(t, store.Remove("session"))
		assert.False(t, mr.Exists("app:session"))

		_, ok, err = store.Get("session")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove missing key", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := redis.NewStorage(client, "app:")
		assert.NoError(t, store.Remove("missing"))
	})

	t.Run("empty key", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := redis.NewStorage(client, "")

		_, _, err := store.Get("")
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Set("", "x"), kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Remove(""), kvstore.ErrEmptyKey)
	})

	t.Run("keys only under prefix", func(t *testing.T) {
		mr, client := newTestRedis(t)
		require.NoError(t, mr.Set("other:session", "x"))
		require.NoError(t, mr.Set("unrelated", "x"))

		store := redis.NewStorageWithConfig(client, redis.Config{KeyPrefix: "app:", ScanBatchSize: 1})
		require.NoError(t, store.Set("session", "1"))
		require.NoError(t, store.Set("notifications", "2"))

		keys, err := store.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"notifications", "session"}, keys)
	})

	t.Run("values do not expire", func(t *testing.T) {
		mr, client := newTestRedis(t)
		store := redis.NewStorage(client, "")

		require.NoError(t, store.Set("k", "v"))
		assert.Equal(t, time.Duration(0), mr.TTL("k"))
	})

	t.Run("closed server surfaces errors", func(t *testing.T) {
		mr, client := newTestRedis(t)
		store := redis.NewStorageWithConfig(client, redis.Config{OpTimeout: 100 * time.Millisecond})
		mr.Close()

		_, _, err := store.Get("k")
		assert.Error(t, err)
	})
}

func TestStorage_Ping(t *testing.T) {
	mr, client := newTestRedis(t)
	store := redis.NewStorageWithConfig(client, redis.Config{OpTimeout: 100 * time.Millisecond})

	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.ErrorIs(t, store.Ping(context.Background()), redis.ErrUnhealthy)
}

func TestConnect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		defer client.Close()
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "not-a-url://",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrInvalidURL)
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyURL)
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		_, err = redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrNotReady)
	})
}
