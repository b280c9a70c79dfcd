package cache

import "sync/atomic"

// slot is one fixed storage cell inside a shard's range of the slot array.
// Slots are allocated once by New and mutated in place; a slot is empty iff
// its recency is zero.
//
// key, val and hash are only written under the owning shard's write lock.
// recency is also bumped by readers holding the shared lock, so every access
// to it goes through the atomic.
type slot[K comparable, V any] struct {
	key     K
	val     V
	hash    uint64
	recency atomic.Uint64
}

func (s *slot[K, V]) occupied() bool { return s.recency.Load() != 0 }

// matches applies the hash-then-equality rule.
func (s *slot[K, V]) matches(k K, h uint64) bool {
	return s.recency.Load() != 0 && s.hash == h && s.key == k
}

// touch raises recency to r unless a concurrent reader already stored a
// larger stamp.
func (s *slot[K, V]) touch(r uint64) {
	for {
		cur := s.recency.Load()
		if cur >= r || s.recency.CompareAndSwap(cur, r) {
			return
		}
	}
}

// store fills the slot. Caller holds the shard write lock.
func (s *slot[K, V]) store(k K, v V, h, r uint64) {
	s.key = k
	s.val = v
	s.hash = h
	s.recency.Store(r)
}

// reset empties the slot. Caller holds the shard write lock.
func (s *slot[K, V]) reset() {
	var (
		zk K
		zv V
	)
	s.key = zk
	s.val = zv
	s.hash = 0
	s.recency.Store(0)
}
