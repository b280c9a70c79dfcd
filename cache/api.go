package cache

import (
	"context"
	"iter"
)

// Cache is a fixed-capacity, N-way set-associative key/value cache.
// All methods are safe for concurrent use by multiple goroutines.
//
// Single-key operations lock only the key's shard and scan its ShardSize
// slots, so they cost O(ShardSize). Whole-cache operations (Count, Keys,
// Values, Clear, CopyTo, Iterate, All) lock every shard in ascending order.
type Cache[K comparable, V any] interface {
	// Get returns the value for k. On miss it returns whatever the policy's
	// OnMiss hook returns (ErrKeyNotFound by default).
	Get(k K) (V, error)

	// TryGet returns the value for k and a presence flag; it never calls OnMiss.
	TryGet(k K) (V, bool)

	// Set inserts or updates k→v. If k is new and its shard is full, the
	// slot the policy least prefers is evicted. Only hook errors are returned.
	Set(k K, v V) error

	// Add behaves exactly like Set.
	Add(k K, v V) error

	// Remove deletes k if present and returns true on success.
	Remove(k K) bool

	// RemoveEntry deletes k only if its stored value equals v.
	RemoveEntry(k K, v V) bool

	// ContainsKey reports whether k is resident. It does not count as a use.
	ContainsKey(k K) bool

	// Count returns the number of resident entries.
	Count() int

	// Capacity returns the fixed slot count, Shards*ShardSize.
	Capacity() int

	// Keys and Values return snapshots in slot order.
	Keys() []K
	Values() []V

	// Clear removes every entry.
	Clear()

	// CopyTo copies every entry into dst[offset:] and returns how many were
	// copied. It fails with ErrInsufficientSpace without copying anything if
	// they do not all fit.
	CopyTo(dst []Entry[K, V], offset int) (int, error)

	// Iterate opens a snapshot iterator that blocks writers until closed.
	Iterate() *Iterator[K, V]

	// All is Iterate as a range-over-func sequence.
	All() iter.Seq2[K, V]

	// GetOrLoad returns the value for k, loading it via Options.Loader on miss.
	// Concurrent loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Stats returns hit/miss/eviction counters summed over all shards.
	Stats() Stats
}
