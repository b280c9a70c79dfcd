package cache

import (
	"context"

	"github.com/IvanBrykalov/setcache/policy"
)

// Options configures a cache. Shards and ShardSize are required; New fills
// in the rest:
//   - nil Policy   => lru.New
//   - nil Equal    => reflect.DeepEqual
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Shards is the number of way-sets. Keys route to shard hash % Shards.
	Shards int

	// ShardSize is the number of slots per shard (the associativity).
	// Total capacity is Shards*ShardSize and never changes.
	ShardSize int

	// Policy supplies hashing, the eviction comparator and the miss and
	// replacement hooks.
	Policy policy.Policy[K, V]

	// Equal compares values for RemoveEntry.
	Equal func(a, b V) bool

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called under the shard lock when an entry is displaced by
	// the policy or dropped by Clear. Keep it lightweight and do not call
	// back into the cache.
	OnEvict func(k K, v V, reason EvictReason)

	Metrics Metrics
}
