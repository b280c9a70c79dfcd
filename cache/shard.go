package cache

import (
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/setcache/internal/util"
	"github.com/IvanBrykalov/setcache/policy"
)

// shard is one way-set: a contiguous, fixed range of the cache's slot array
// with its own lock and recency generator. It is the only place slots are
// mutated.
type shard[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu    sync.RWMutex
	slots []slot[K, V] // slots[begin:end] of the cache's array
	len   int          // occupied slots

	// next is the last recency handed out; 0 means none yet.
	// Bumped by readers under RLock, reset only under Lock.
	next atomic.Uint64

	pol     policy.Policy[K, V]
	metrics Metrics
	onEvict func(k K, v V, reason EvictReason)

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicUint64
}

func newShard[K comparable, V any](slots []slot[K, V], opt *Options[K, V]) *shard[K, V] {
	return &shard[K, V]{
		slots:   slots,
		pol:     opt.Policy,
		metrics: opt.Metrics,
		onEvict: opt.OnEvict,
	}
}

func (s *shard[K, V]) nextRecency() uint64 { return s.next.Add(1) }

// lookup returns the value stored under k and stamps the slot as used.
func (s *shard[K, V]) lookup(k K, h uint64) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.matches(k, h) {
			continue
		}
		sl.touch(s.nextRecency())
		s.hits.Add(1)
		s.metrics.Hit()
		return sl.val, true
	}
	s.misses.Add(1)
	s.metrics.Miss()
	var zero V
	return zero, false
}

// containsKey reports presence without touching recency.
func (s *shard[K, V]) containsKey(k K, h uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.slots {
		if s.slots[i].matches(k, h) {
			return true
		}
	}
	return false
}

// upsert stores k→v in a single pass over the range. Resolution order:
// the slot already holding k, else the first empty slot, else the victim
// chosen by pairwise reduction with Policy.Prefer (first of equally bad
// candidates wins). A hook error leaves every slot untouched.
func (s *shard[K, V]) upsert(k K, h uint64, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		existing = -1
		empty    = -1
		victim   = -1
		victimR  uint64
	)
	for i := range s.slots {
		sl := &s.slots[i]
		r := sl.recency.Load()
		if r == 0 {
			if empty < 0 {
				empty = i
			}
			continue
		}
		if sl.hash == h && sl.key == k {
			existing = i
			break
		}
		if victim < 0 || s.pol.Prefer(victimR, r) {
			victim, victimR = i, r
		}
	}

	switch {
	case existing >= 0:
		sl := &s.slots[existing]
		nv, err := s.pol.ReplaceValue(sl.val, v)
		if err != nil {
			return err
		}
		sl.val = nv
		sl.touch(s.nextRecency())
		return nil

	case empty >= 0:
		var (
			zk K
			zv V
		)
		nk, nv, err := s.replace(zk, k, zv, v)
		if err != nil {
			return err
		}
		s.slots[empty].store(nk, nv, h, s.nextRecency())
		s.len++
		s.metrics.Resident(1)
		return nil

	default:
		sl := &s.slots[victim]
		oldK, oldV := sl.key, sl.val
		nk, nv, err := s.replace(oldK, k, oldV, v)
		if err != nil {
			return err
		}
		sl.store(nk, nv, h, s.nextRecency())
		s.evicted(oldK, oldV, EvictPolicy)
		return nil
	}
}

// replace runs both replacement hooks; both must succeed before a slot is written.
func (s *shard[K, V]) replace(oldK, k K, oldV, v V) (K, V, error) {
	nk, err := s.pol.ReplaceKey(oldK, k)
	if err != nil {
		var zv V
		return nk, zv, err
	}
	nv, err := s.pol.ReplaceValue(oldV, v)
	return nk, nv, err
}

// remove empties the slot holding k.
func (s *shard[K, V]) remove(k K, h uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		sl := &s.slots[i]
		if sl.matches(k, h) {
			s.clearSlot(sl)
			return true
		}
	}
	return false
}

// removeEntry empties the slot holding k only if its value equals v.
func (s *shard[K, V]) removeEntry(k K, v V, h uint64, equal func(a, b V) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.matches(k, h) {
			continue
		}
		if !equal(sl.val, v) {
			return false
		}
		s.clearSlot(sl)
		return true
	}
	return false
}

// -------------------- internals (mu held) --------------------

func (s *shard[K, V]) clearSlot(sl *slot[K, V]) {
	sl.reset()
	s.len--
	s.metrics.Resident(-1)
}

func (s *shard[K, V]) evicted(k K, v V, reason EvictReason) {
	s.evicts.Add(1)
	s.metrics.Evict(reason)
	if cb := s.onEvict; cb != nil {
		cb(k, v, reason)
	}
}

// resetLocked empties every slot and restarts the recency generator.
// Caller holds the write lock.
func (s *shard[K, V]) resetLocked() {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.occupied() {
			k, v := sl.key, sl.val
			sl.reset()
			s.evicted(k, v, EvictClear)
		}
	}
	if s.len > 0 {
		s.metrics.Resident(-s.len)
	}
	s.len = 0
	s.next.Store(0)
}
