// Package singleflight coalesces concurrent calls that load the same key.
package singleflight

import (
	"context"
	"errors"
	"sync"
)

// ErrPanicked is handed to followers when the leader's fn panicked.
var ErrPanicked = errors.New("singleflight: loader panicked")

// Group runs fn at most once per key at a time; concurrent callers for the
// same key wait for the leader's result.
//
// Cancelling a follower's ctx unblocks only that follower. The leader's fn
// keeps running; thread ctx into fn to stop the work itself.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed when val/err are published
	val  V
	err  error
	dups int // followers that joined; guarded by Group.mu
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for that call. shared reports whether the result was (or
// will be) handed to more than one caller.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, shared bool, err error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()

		select {
		case <-c.done:
			return c.val, true, c.err
		case <-ctx.Done():
			var zero V
			return zero, true, ctx.Err()
		}
	}

	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// Publish and unregister even if fn panics, so followers never hang.
	completed := false
	defer func() {
		if !completed {
			c.err = ErrPanicked
		}
		g.mu.Lock()
		delete(g.m, key)
		shared = c.dups > 0
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	completed = true
	return c.val, false, c.err
}
