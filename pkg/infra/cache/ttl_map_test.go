package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLMapSetGet(t *testing.T) {
	m := NewTTLMap(time.Minute)

	m.Set("k", "v", 0)
	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestTTLMapExpiry(t *testing.T) {
	m := NewTTLMap(time.Minute)

	m.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := m.Get("k")
	assert.False(t, ok)
}

func TestTTLMapOverride(t *testing.T) {
	m := NewTTLMap(10 * time.Millisecond)

	// per-entry ttl overrides the short map default
	m.Set("k", "v", time.Minute)
	time.Sleep(30 * time.Millisecond)

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTTLMapDeleteAndClear(t *testing.T) {
	m := NewTTLMap(time.Minute)
	m.Set("a", "1", 0)
	m.Set("b", "2", 0)

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Clear()
	_, ok = m.Get("b")
	assert.False(t, ok)
}

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
