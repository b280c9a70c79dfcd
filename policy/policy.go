// Package policy defines the pluggable behaviours of a set-associative cache:
// key hashing, the eviction comparator, miss handling and the replacement
// hooks that run when a slot's key or value is overwritten.
package policy

import "errors"

// ErrNotFound is returned by the default OnMiss hook.
var ErrNotFound = errors.New("cache: key not found")

// Policy is the capability set a cache is constructed with.
// All methods may be called concurrently. Prefer, ReplaceKey and ReplaceValue
// run while the owning shard is locked: they must not call back into the
// same cache, and they should stay cheap.
type Policy[K comparable, V any] interface {
	// Hash returns the key hash used both for shard routing and as the cheap
	// pre-check before key equality inside a shard.
	Hash(k K) uint64

	// Prefer reports whether a slot stamped with recency a should be kept
	// over a slot stamped with recency b when one of them must be evicted.
	// Recency values are per-shard logical counters, never timestamps.
	Prefer(a, b uint64) bool

	// OnMiss decides what Get returns for an absent key.
	OnMiss(k K) (V, error)

	// ReplaceKey returns the key to store when old is overwritten by next.
	// For a fresh slot old is the zero value.
	ReplaceKey(old, next K) (K, error)

	// ReplaceValue returns the value to store when old is overwritten by next.
	// Cleanup of the displaced value (closing a handle, returning a buffer
	// to a pool) belongs here. For a fresh slot old is the zero value.
	ReplaceValue(old, next V) (V, error)
}

// Base implements the hooks every policy shares by default: a miss is
// ErrNotFound and the incoming key/value simply replaces the stored one.
// Concrete policies embed Base and add Hash and Prefer.
type Base[K comparable, V any] struct{}

// OnMiss returns ErrNotFound.
func (Base[K, V]) OnMiss(K) (V, error) {
	var zero V
	return zero, ErrNotFound
}

// ReplaceKey keeps the new key.
func (Base[K, V]) ReplaceKey(_, k K) (K, error) { return k, nil }

// ReplaceValue keeps the new value.
func (Base[K, V]) ReplaceValue(_, v V) (V, error) { return v, nil }

// Defaulting wraps a policy so that misses yield def instead of an error.
// Every other hook is delegated to p.
func Defaulting[K comparable, V any](p Policy[K, V], def V) Policy[K, V] {
	return defaulting[K, V]{Policy: p, def: def}
}

type defaulting[K comparable, V any] struct {
	Policy[K, V]
	def V
}

func (d defaulting[K, V]) OnMiss(K) (V, error) { return d.def, nil }
