package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_LimitPerIdentifier(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newMemoryStore(Config{Requests: 3, Window: 15 * time.Minute}, clock.Now)

	for i := 0; i < 3; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := store.Allow("10.0.0.1")
	assert.False(t, ok)

	ok, _ = store.Allow("10.0.0.2")
	assert.True(t, ok, "identifiers are independent")
}

func TestMemoryStore_RollingWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newMemoryStore(Config{Requests: 2, Window: time.Minute}, clock.Now)

	ok, _ := store.Allow("ip")
	assert.True(t, ok)

	clock.Advance(30 * time.Second)
	ok, _ = store.Allow("ip")
	assert.True(t, ok)

	ok, _ = store.Allow("ip")
	assert.False(t, ok)

	// The first hit leaves the window; the second is still inside it.
	clock.Advance(31 * time.Second)
	ok, _ = store.Allow("ip")
	assert.True(t, ok)

	ok, _ = store.Allow("ip")
	assert.False(t, ok)
}

func TestMemoryStore_RejectionsAreNotCounted(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newMemoryStore(Config{Requests: 1, Window: time.Minute}, clock.Now)

	ok, _ := store.Allow("ip")
	assert.True(t, ok)

	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		ok, _ = store.Allow("ip")
		assert.False(t, ok)
	}

	clock.Advance(51 * time.Second)
	ok, _ = store.Allow("ip")
	assert.True(t, ok)
}

func TestMemoryStore_SweepsIdleIdentifiers(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newMemoryStore(Config{Requests: 5, Window: time.Minute}, clock.Now)

	store.Allow("a")
	store.Allow("b")
	assert.Equal(t, 2, store.Len())

	clock.Advance(2 * time.Minute)
	store.Allow("c")
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_ZeroLimitDisables(t *testing.T) {
	store := NewMemoryStore(Config{Requests: 0, Window: time.Minute})
	for i := 0; i < 100; i++ {
		ok, err := store.Allow("ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestAllowAll(t *testing.T) {
	ok, err := AllowAll{}.Allow("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}
