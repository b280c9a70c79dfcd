package util

import "runtime"

// ReasonableShardCount picks a practical shard count based on CPU
// parallelism: nextPow2(2*GOMAXPROCS), clamped to [1..256].
// Callers use it to fill in a shard count when the user asked for "auto";
// the cache itself rejects non-positive counts.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit hash to a shard index in [0, shards).
// Power-of-two shard counts take the mask path; any other count uses modulo,
// which is the same value.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}

// SplitCapacity returns the per-shard slot count needed so that shards*size
// covers at least total entries (ceil division). total <= 0 yields 0.
func SplitCapacity(total, shards int) int {
	if total <= 0 || shards <= 0 {
		return 0
	}
	return (total + shards - 1) / shards
}
