package cache

// Entry is a key/value pair copied out of a slot.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Iterator walks the slot array in index order and yields occupied slots.
//
// It holds a read lock on every shard from Iterate until Close, so the view
// is a consistent point-in-time state of the whole cache and every writer
// blocks until Close. Readers on other goroutines proceed. The goroutine
// holding an open iterator must not call the cache: a writer queued on any
// shard makes further read locks wait, and a write from that goroutine
// deadlocks outright. Always Close the iterator, typically with defer.
//
// An Iterator is not restartable and is not safe for concurrent use.
type Iterator[K comparable, V any] struct {
	slots   []slot[K, V]
	pos     int
	release func()
}

// Next advances to the next occupied slot. It returns false once the slot
// array is exhausted or the iterator is closed.
func (it *Iterator[K, V]) Next() bool {
	if it.release == nil {
		return false
	}
	for it.pos++; it.pos < len(it.slots); it.pos++ {
		if it.slots[it.pos].occupied() {
			return true
		}
	}
	return false
}

// at returns the slot under the cursor, or nil before the first Next and
// after Next has returned false.
func (it *Iterator[K, V]) at() *slot[K, V] {
	if it.pos < 0 || it.pos >= len(it.slots) {
		return nil
	}
	return &it.slots[it.pos]
}

// Key returns the key at the current position, or the zero K when the
// iterator is not positioned on an entry.
func (it *Iterator[K, V]) Key() K {
	if sl := it.at(); sl != nil {
		return sl.key
	}
	var zero K
	return zero
}

// Value returns the value at the current position, or the zero V when the
// iterator is not positioned on an entry.
func (it *Iterator[K, V]) Value() V {
	if sl := it.at(); sl != nil {
		return sl.val
	}
	var zero V
	return zero
}

// Entry returns the current key/value pair, zero-valued when the iterator
// is not positioned on an entry.
func (it *Iterator[K, V]) Entry() Entry[K, V] {
	if sl := it.at(); sl != nil {
		return Entry[K, V]{Key: sl.key, Value: sl.val}
	}
	return Entry[K, V]{}
}

// Close releases every shard lock in reverse acquisition order.
// Calling Close more than once is a no-op.
func (it *Iterator[K, V]) Close() {
	if it.release == nil {
		return
	}
	it.release()
	it.release = nil
	it.pos = len(it.slots)
}
