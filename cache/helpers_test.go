package cache

import (
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/setcache/policy/lru"
	"github.com/stretchr/testify/require"
)

// identity routes int key k to shard k % Shards, which makes shard
// placement predictable in tests.
type identity struct{ *lru.Policy[int, string] }

func (identity) Hash(k int) uint64 { return uint64(k) }

// collide hashes every key to the same value.
type collide struct{ *lru.Policy[string, int] }

func (collide) Hash(string) uint64 { return 0xC0FFEE }

type countingMetrics struct {
	hits, misses, evicts, resident atomic.Int64
}

func (m *countingMetrics) Hit()              { m.hits.Add(1) }
func (m *countingMetrics) Miss()             { m.misses.Add(1) }
func (m *countingMetrics) Evict(EvictReason) { m.evicts.Add(1) }
func (m *countingMetrics) Resident(d int)    { m.resident.Add(int64(d)) }

func newTestCache[K comparable, V any](t testing.TB, opt Options[K, V]) *cache[K, V] {
	t.Helper()
	c, err := New(opt)
	require.NoError(t, err)
	return c.(*cache[K, V])
}

func newIdentity(t testing.TB, shards, size int) *cache[int, string] {
	return newTestCache(t, Options[int, string]{
		Shards:    shards,
		ShardSize: size,
		Policy:    identity{lru.New[int, string]()},
	})
}
