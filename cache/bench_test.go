package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/setcache/keyhash"
	"github.com/IvanBrykalov/setcache/policy/lru"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// String keys include strconv/concat costs and often allocate, which is fine
// for an end-to-end benchmark.
func benchmarkMix(b *testing.B, opt Options[string, string], readsPct int) {
	c, err := New[string, string](opt)
	if err != nil {
		b.Fatal(err)
	}

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < c.Capacity()/2; i++ {
		_ = c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.TryGet(k)
			} else {
				_ = c.Set(k, "v")
			}
			i++
		}
	})
}

func eightWay() Options[string, string] {
	return Options[string, string]{Shards: 8192, ShardSize: 8}
}

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, eightWay(), 90) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, eightWay(), 50) }

func BenchmarkCache_Murmur3_90r10w(b *testing.B) {
	opt := eightWay()
	opt.Policy = lru.New[string, string](lru.WithHasher[string](keyhash.Murmur3[string]))
	benchmarkMix(b, opt, 90)
}

// Associativity trades scan length for hit-rate; compare 2-, 8- and 32-way.
func BenchmarkCache_Ways(b *testing.B) {
	for _, ways := range []int{2, 8, 32} {
		b.Run(strconv.Itoa(ways)+"way", func(b *testing.B) {
			benchmarkMix(b, Options[string, string]{Shards: 65536 / ways, ShardSize: ways}, 90)
		})
	}
}
