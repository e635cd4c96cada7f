package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/minicache/cache"
)

func TestAdapter_CountsCacheTraffic(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "minicache", "test", nil)
	m.SetCapacity(2)

	c := cache.NewShared(cache.Options{Capacity: 2, Metrics: m})
	require.NoError(t, c.Push([]byte("a"), []byte("1")))
	require.NoError(t, c.Push([]byte("b"), []byte("2")))
	_, ok, err := c.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = c.Get([]byte("zzz"))
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.Push([]byte("c"), []byte("3"))) // evicts b

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evicts))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.capacity))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestAdapter_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "minicache", "dup", nil)
	assert.Panics(t, func() { New(reg, "minicache", "dup", nil) })
}
