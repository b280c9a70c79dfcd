package util

import "testing"

func TestNextPow2(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want uint64 }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {64, 64}, {65, 128},
		{1<<63 + 1, 1 << 63},
	}
	for _, c := range cases {
		if got := NextPow2(c.in); got != c.want {
			t.Errorf("NextPow2(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestShardIndex(t *testing.T) {
	t.Parallel()

	for _, shards := range []int{1, 3, 4, 7, 16} {
		for h := uint64(0); h < 100; h++ {
			if got, want := ShardIndex(h*2654435761, shards), int((h*2654435761)%uint64(shards)); got != want {
				t.Fatalf("ShardIndex(%d, %d) = %d, want %d", h, shards, got, want)
			}
		}
	}
}

func TestSplitCapacity(t *testing.T) {
	t.Parallel()

	if got := SplitCapacity(10, 4); got != 3 {
		t.Fatalf("SplitCapacity(10,4) = %d", got)
	}
	if got := SplitCapacity(8, 4); got != 2 {
		t.Fatalf("SplitCapacity(8,4) = %d", got)
	}
	if got := SplitCapacity(0, 4); got != 0 {
		t.Fatalf("SplitCapacity(0,4) = %d", got)
	}
	if n := ReasonableShardCount(); n < 1 || n > 256 || !IsPowerOfTwo(uint64(n)) {
		t.Fatalf("ReasonableShardCount() = %d", n)
	}
}
