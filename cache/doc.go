// Package cache provides a generic, fixed-capacity, N-way set-associative
// in-memory cache modeled on hardware CPU caches.
//
// Design
//
//   - Storage: one slot array of Shards*ShardSize cells is allocated by New
//     and never resized. Shard i owns the contiguous range
//     [i*ShardSize, (i+1)*ShardSize). A slot stores key, value, the cached key
//     hash and a recency stamp; a zero stamp marks the slot empty.
//
//   - Routing: a key lives in shard Hash(key) % Shards. Within the shard it is
//     found by a linear scan comparing the cached hash before the key itself,
//     so colliding keys coexist as long as the shard has room.
//
//   - Recency: every shard hands out stamps from its own monotonically
//     increasing counter on each write and read hit. Stamps are logical, never
//     wall-clock time.
//
//   - Eviction: when a new key arrives at a full shard, one pass over the
//     range picks the victim by pairwise reduction with Policy.Prefer. The LRU
//     default keeps the larger stamp. An empty slot always wins over eviction.
//
//   - Concurrency: each shard has an RWMutex. Keys in different shards never
//     contend. Whole-cache operations (Count, Keys, Values, Clear, CopyTo,
//     Iterate) take every shard lock in ascending order and release them in
//     descending order, which rules out lock-order deadlocks between them.
//
//   - Policies: hashing, the comparator, miss handling and key/value
//     replacement hooks come from a policy.Policy. Hooks run under the shard
//     lock and must not call back into the cache (Go mutexes are not
//     reentrant).
//
// Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Shards:    64,
//	    ShardSize: 8,
//	})
//	if err != nil {
//	    return err
//	}
//	_ = c.Set("a", []byte("1"))
//	if v, ok := c.TryGet("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// Cleanup on replacement
//
//	type closing struct{ *lru.Policy[string, io.Closer] }
//
//	func (closing) ReplaceValue(old, v io.Closer) (io.Closer, error) {
//	    if old != nil {
//	        return v, old.Close()
//	    }
//	    return v, nil
//	}
//
//	c, _ := cache.New[string, io.Closer](cache.Options[string, io.Closer]{
//	    Shards: 16, ShardSize: 4, Policy: closing{lru.New[string, io.Closer]()},
//	})
//
// Iteration
//
//	for k, v := range c.All() {
//	    fmt.Println(k, v) // writers are blocked until the loop ends
//	}
//
// Exporting metrics
//
//	m := prom.New(nil, "setcache", "demo", nil) // implements Metrics
//	c, _ := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Shards: 64, ShardSize: 8, Metrics: m,
//	})
package cache
