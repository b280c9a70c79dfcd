package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Set/TryGet/Remove semantics under arbitrary string inputs.
// Guards against panics and ensures core invariants hold.
// Key/value lengths are capped to keep memory bounded during fuzzing.
func FuzzCache_SetGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string, string](Options[string, string]{Shards: 4, ShardSize: 4})
		if err != nil {
			t.Fatal(err)
		}

		if err := c.Set(k, v); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok := c.TryGet(k)
		if !ok || got != v {
			t.Fatalf("after Set/TryGet: want %q, got %q ok=%v", v, got, ok)
		}

		// Add replaces and never grows the cache for an existing key.
		if err := c.Add(k, "other"); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if n := c.Count(); n != 1 {
			t.Fatalf("Count after duplicate Add = %d", n)
		}
		if v != "other" && c.RemoveEntry(k, v) {
			t.Fatalf("RemoveEntry with stale value must fail")
		}

		if !c.Remove(k) {
			t.Fatalf("Remove must return true")
		}
		if c.ContainsKey(k) {
			t.Fatalf("key must be absent after Remove")
		}
		if c.Remove(k) {
			t.Fatalf("second Remove must return false")
		}
	})
}
