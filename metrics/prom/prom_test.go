package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/setcache/cache"
)

func TestAdapter_WiredIntoCache(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "setcache", "test", prometheus.Labels{"app": "unit"})

	c, err := cache.New[string, int](cache.Options[string, int]{Shards: 1, ShardSize: 2, Metrics: m})
	require.NoError(t, err)

	require.NoError(t, c.Set("a", 1))
	require.NoError(t, c.Set("b", 2))
	require.NoError(t, c.Set("c", 3)) // evicts a
	c.TryGet("c")
	c.TryGet("a")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.resident))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evicts.WithLabelValues("policy")))

	c.Clear()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.resident))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evicts.WithLabelValues("clear")))

	n, err := testutil.GatherAndCount(reg, "setcache_test_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
