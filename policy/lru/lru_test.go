package lru

import (
	"errors"
	"testing"

	"github.com/IvanBrykalov/setcache/keyhash"
	"github.com/IvanBrykalov/setcache/policy"
)

// Larger recency is the more recently used slot and must be kept.
func TestLRU_PreferKeepsNewer(t *testing.T) {
	t.Parallel()

	p := New[string, int]()
	if !p.Prefer(5, 3) {
		t.Fatal("Prefer(5,3) must keep the newer slot")
	}
	if p.Prefer(3, 5) {
		t.Fatal("Prefer(3,5) must not keep the older slot")
	}
	if p.Prefer(4, 4) {
		t.Fatal("equal recency must not be preferred (first candidate stays the victim)")
	}
}

// Default hooks: miss is ErrNotFound, replacement keeps the incoming pair.
func TestLRU_DefaultHooks(t *testing.T) {
	t.Parallel()

	p := New[string, int]()

	if _, err := p.OnMiss("x"); !errors.Is(err, policy.ErrNotFound) {
		t.Fatalf("OnMiss err = %v, want ErrNotFound", err)
	}
	if k, err := p.ReplaceKey("old", "new"); err != nil || k != "new" {
		t.Fatalf("ReplaceKey = %q, %v", k, err)
	}
	if v, err := p.ReplaceValue(1, 2); err != nil || v != 2 {
		t.Fatalf("ReplaceValue = %d, %v", v, err)
	}
}

func TestLRU_Hasher(t *testing.T) {
	t.Parallel()

	if got, want := New[string, int]().Hash("k"), keyhash.FNV64a("k"); got != want {
		t.Fatalf("default hash = %d, want FNV64a %d", got, want)
	}
	p := New[string, int](WithHasher[string](keyhash.Murmur3[string]))
	if got, want := p.Hash("k"), keyhash.Murmur3("k"); got != want {
		t.Fatalf("murmur hash = %d, want %d", got, want)
	}
}

type countingValues struct {
	*Policy[string, int]
	displaced []int
}

func (c *countingValues) ReplaceValue(old, v int) (int, error) {
	c.displaced = append(c.displaced, old)
	return old + v, nil
}

// Embedding overrides a single hook while keeping the comparator.
func TestLRU_EmbeddedOverride(t *testing.T) {
	t.Parallel()

	c := &countingValues{Policy: New[string, int]()}
	var p policy.Policy[string, int] = c

	v, err := p.ReplaceValue(2, 3)
	if err != nil || v != 5 {
		t.Fatalf("ReplaceValue = %d, %v; want 5", v, err)
	}
	if len(c.displaced) != 1 || c.displaced[0] != 2 {
		t.Fatalf("displaced = %v", c.displaced)
	}
	if !p.Prefer(2, 1) {
		t.Fatal("comparator must still be LRU")
	}
}
