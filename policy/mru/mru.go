// Package mru implements the most-recently-used eviction comparator, which
// suits cyclic scans larger than a shard where LRU would evict every entry
// just before it is needed again.
package mru

import (
	"github.com/IvanBrykalov/setcache/keyhash"
	"github.com/IvanBrykalov/setcache/policy"
)

// Policy keeps the slot with the smaller recency; the slot touched last is
// evicted first.
type Policy[K comparable, V any] struct {
	policy.Base[K, V]
	hash keyhash.Func[K]
}

// New returns an MRU policy using h for key hashing (keyhash.FNV64a if nil).
func New[K comparable, V any](h keyhash.Func[K]) *Policy[K, V] {
	if h == nil {
		h = keyhash.FNV64a[K]
	}
	return &Policy[K, V]{hash: h}
}

// Hash implements policy.Policy.
func (p *Policy[K, V]) Hash(k K) uint64 { return p.hash(k) }

// Prefer keeps the less recently used slot.
func (*Policy[K, V]) Prefer(a, b uint64) bool { return a < b }

var _ policy.Policy[string, int] = (*Policy[string, int])(nil)
