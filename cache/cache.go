package cache

import (
	"context"
	"fmt"
	"iter"
	"math"
	"reflect"

	"github.com/IvanBrykalov/setcache/internal/singleflight"
	"github.com/IvanBrykalov/setcache/internal/util"
	"github.com/IvanBrykalov/setcache/policy/lru"
)

// cache is an N-way set-associative KV store: a fixed slot array split into
// equal, contiguous shards, each with its own lock.
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	slots  []slot[K, V]
	shards []*shard[K, V]

	opt Options[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a cache with Shards*ShardSize slots.
// It returns ErrInvalidConfig if either count is not positive or their
// product does not fit in an int.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.Shards <= 0 {
		return nil, fmt.Errorf("%w: shards must be > 0, got %d", ErrInvalidConfig, opt.Shards)
	}
	if opt.ShardSize <= 0 {
		return nil, fmt.Errorf("%w: shard size must be > 0, got %d", ErrInvalidConfig, opt.ShardSize)
	}
	if opt.ShardSize > math.MaxInt/opt.Shards {
		return nil, fmt.Errorf("%w: %d shards of %d slots overflows int", ErrInvalidConfig, opt.Shards, opt.ShardSize)
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}
	if opt.Equal == nil {
		opt.Equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &cache[K, V]{
		slots:  make([]slot[K, V], opt.Shards*opt.ShardSize),
		shards: make([]*shard[K, V], opt.Shards),
		opt:    opt,
	}
	// Shard i owns [i*ShardSize, (i+1)*ShardSize); the three-index slice
	// keeps a shard from ever reaching past its range.
	for i := range c.shards {
		begin, end := i*opt.ShardSize, (i+1)*opt.ShardSize
		c.shards[i] = newShard(c.slots[begin:end:end], &c.opt)
	}
	return c, nil
}

// ---- single-key operations ----

// Get returns the value for k; on miss it returns Policy.OnMiss(k).
func (c *cache[K, V]) Get(k K) (V, error) {
	h := c.opt.Policy.Hash(k)
	if v, ok := c.shardFor(h).lookup(k, h); ok {
		return v, nil
	}
	return c.opt.Policy.OnMiss(k)
}

// TryGet returns the value for k and a presence flag.
func (c *cache[K, V]) TryGet(k K) (V, bool) {
	h := c.opt.Policy.Hash(k)
	return c.shardFor(h).lookup(k, h)
}

// Set inserts or updates k→v, evicting at most one entry of k's shard.
func (c *cache[K, V]) Set(k K, v V) error {
	h := c.opt.Policy.Hash(k)
	return c.shardFor(h).upsert(k, h, v)
}

// Add is Set: an existing key has its value replaced.
func (c *cache[K, V]) Add(k K, v V) error { return c.Set(k, v) }

// Remove deletes k if present and returns true on success.
func (c *cache[K, V]) Remove(k K) bool {
	h := c.opt.Policy.Hash(k)
	return c.shardFor(h).remove(k, h)
}

// RemoveEntry deletes k only if its stored value equals v under Options.Equal.
func (c *cache[K, V]) RemoveEntry(k K, v V) bool {
	h := c.opt.Policy.Hash(k)
	return c.shardFor(h).removeEntry(k, v, h, c.opt.Equal)
}

// ContainsKey reports whether k is resident without marking it used.
func (c *cache[K, V]) ContainsKey(k K) bool {
	h := c.opt.Policy.Hash(k)
	return c.shardFor(h).containsKey(k, h)
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key, and stores the result.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.TryGet(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	v, _, err := c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.TryGet(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err != nil {
			return v, err
		}
		return v, c.Set(k, v)
	})
	return v, err
}

// ---- whole-cache operations ----

// Capacity returns Shards*ShardSize.
func (c *cache[K, V]) Capacity() int { return len(c.slots) }

// Count returns the number of occupied slots at a single point in time.
func (c *cache[K, V]) Count() int {
	defer c.rlockAll()()
	return c.countLocked()
}

// Keys returns a snapshot of resident keys in slot order.
func (c *cache[K, V]) Keys() []K {
	defer c.rlockAll()()
	keys := make([]K, 0, c.countLocked())
	for i := range c.slots {
		if sl := &c.slots[i]; sl.occupied() {
			keys = append(keys, sl.key)
		}
	}
	return keys
}

// Values returns a snapshot of resident values in slot order.
func (c *cache[K, V]) Values() []V {
	defer c.rlockAll()()
	vals := make([]V, 0, c.countLocked())
	for i := range c.slots {
		if sl := &c.slots[i]; sl.occupied() {
			vals = append(vals, sl.val)
		}
	}
	return vals
}

// Clear empties every shard and restarts their recency generators.
func (c *cache[K, V]) Clear() {
	defer c.lockAll()()
	for _, s := range c.shards {
		s.resetLocked()
	}
}

// CopyTo copies every resident entry into dst starting at offset and
// returns the number copied. Nothing is copied if dst cannot hold them all.
func (c *cache[K, V]) CopyTo(dst []Entry[K, V], offset int) (int, error) {
	if offset < 0 || offset > len(dst) {
		return 0, fmt.Errorf("%w: offset %d, len %d", ErrOffsetOutOfRange, offset, len(dst))
	}

	it := c.Iterate()
	defer it.Close()

	n := c.countLocked()
	if room := len(dst) - offset; room < n {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientSpace, n, room)
	}
	i := offset
	for it.Next() {
		dst[i] = it.Entry()
		i++
	}
	return i - offset, nil
}

// Iterate opens a snapshot iterator; see Iterator for the locking contract.
func (c *cache[K, V]) Iterate() *Iterator[K, V] {
	release := c.rlockAll()
	return &Iterator[K, V]{slots: c.slots, pos: -1, release: release}
}

// All returns the resident entries as a range-over-func sequence. The
// iterator's locks are held for the duration of the loop.
func (c *cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := c.Iterate()
		defer it.Close()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Stats sums the per-shard hit/miss/eviction counters.
func (c *cache[K, V]) Stats() Stats {
	var st Stats
	for _, s := range c.shards {
		st.Hits += s.hits.Load()
		st.Misses += s.misses.Load()
		st.Evictions += s.evicts.Load()
	}
	return st
}

// ---- helpers ----

// shardFor routes a key hash to its shard (hash mod number of shards).
func (c *cache[K, V]) shardFor(h uint64) *shard[K, V] {
	return c.shards[util.ShardIndex(h, len(c.shards))]
}

// countLocked sums occupied slots; caller holds at least every read lock.
func (c *cache[K, V]) countLocked() int {
	n := 0
	for _, s := range c.shards {
		n += s.len
	}
	return n
}

// rlockAll read-locks every shard in ascending index order and returns the
// function that releases them in descending order.
func (c *cache[K, V]) rlockAll() (unlock func()) {
	for _, s := range c.shards {
		s.mu.RLock()
	}
	return func() {
		for i := len(c.shards) - 1; i >= 0; i-- {
			c.shards[i].mu.RUnlock()
		}
	}
}

// lockAll is rlockAll with exclusive locks.
func (c *cache[K, V]) lockAll() (unlock func()) {
	for _, s := range c.shards {
		s.mu.Lock()
	}
	return func() {
		for i := len(c.shards) - 1; i >= 0; i-- {
			c.shards[i].mu.Unlock()
		}
	}
}
