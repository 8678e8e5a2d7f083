package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCache(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	cache := NewLookupCache(5*time.Minute, clock)

	_, ok := cache.Get("roles")
	assert.False(t, ok)

	cache.Set("roles", []string{"cajero", "supervisor"})
	v, ok := cache.Get("roles")
	require.True(t, ok)
	assert.Equal(t, []string{"cajero", "supervisor"}, v)
}

func TestLookupCacheExpira(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	cache := NewLookupCache(5*time.Minute, clock)

	cache.Set("turnos", 3)

	now = now.Add(4 * time.Minute)
	_, ok := cache.Get("turnos")
	assert.True(t, ok, "antes del TTL la entrada sigue viva")

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("turnos")
	assert.False(t, ok, "pasado el TTL la entrada desaparece")

	// Expired entries are dropped, not resurrected.
	_, ok = cache.Get("turnos")
	assert.False(t, ok)
}

func TestLookupCacheInvalidate(t *testing.T) {
	cache := NewLookupCache(time.Hour, nil)
	cache.Set("municipios", "x")
	cache.Invalidate("municipios")
	_, ok := cache.Get("municipios")
	assert.False(t, ok)
}
