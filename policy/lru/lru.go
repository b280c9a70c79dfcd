// Package lru implements the least-recently-used eviction comparator.
package lru

import (
	"github.com/IvanBrykalov/setcache/keyhash"
	"github.com/IvanBrykalov/setcache/policy"
)

// Policy keeps the slot with the larger recency, so the slot read or written
// longest ago is the one evicted. Embed it to override individual hooks:
//
//	type closing struct{ *lru.Policy[string, io.Closer] }
//
//	func (closing) ReplaceValue(old, v io.Closer) (io.Closer, error) {
//		if old != nil {
//			return v, old.Close()
//		}
//		return v, nil
//	}
type Policy[K comparable, V any] struct {
	policy.Base[K, V]
	hash keyhash.Func[K]
}

// Option configures an LRU policy.
type Option[K comparable] func(*options[K])

type options[K comparable] struct {
	hash keyhash.Func[K]
}

// WithHasher overrides the default FNV-1a key hash.
func WithHasher[K comparable](h keyhash.Func[K]) Option[K] {
	return func(o *options[K]) { o.hash = h }
}

// New returns an LRU policy. Keys are hashed with keyhash.FNV64a unless
// WithHasher is given.
func New[K comparable, V any](opts ...Option[K]) *Policy[K, V] {
	o := options[K]{hash: keyhash.FNV64a[K]}
	for _, opt := range opts {
		opt(&o)
	}
	return &Policy[K, V]{hash: o.hash}
}

// Hash implements policy.Policy.
func (p *Policy[K, V]) Hash(k K) uint64 { return p.hash(k) }

// Prefer keeps the more recently used slot.
func (*Policy[K, V]) Prefer(a, b uint64) bool { return a > b }

var _ policy.Policy[string, int] = (*Policy[string, int])(nil)
