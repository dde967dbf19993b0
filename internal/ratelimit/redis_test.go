package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container. Tests are skipped if no container
// runtime is available.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() || os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping Redis integration test")
	}

	ctx := context.Background()

	container, err := testcontainers.Run(ctx, "redis:7-alpine",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start Redis container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	cli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = cli.Close() })

	require.NoError(t, cli.Ping(ctx).Err())

	return cli
}

func TestRedisStore_RollingWindow(t *testing.T) {
	cli := setupRedis(t)
	logger := zerolog.Nop()

	store := NewRedisStore(cli, Config{Requests: 2, Window: time.Minute}, &logger)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := store.Allow("10.0.0.1")
	assert.False(t, ok)

	ok, _ = store.Allow("10.0.0.2")
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = store.Allow("10.0.0.1")
	assert.True(t, ok)

	ttl, err := cli.PTTL(context.Background(), "_relay_rl_10.0.0.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisStore_FailsOpen(t *testing.T) {
	cli := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = cli.Close() })
	logger := zerolog.Nop()

	store := NewRedisStore(cli, Config{Requests: 1, Window: time.Minute}, &logger)

	for i := 0; i < 3; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
