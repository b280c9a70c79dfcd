package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/IvanBrykalov/setcache/cache"
	"github.com/IvanBrykalov/setcache/internal/util"
	"github.com/IvanBrykalov/setcache/keyhash"
	pmet "github.com/IvanBrykalov/setcache/metrics/prom"
	"github.com/IvanBrykalov/setcache/policy"
	"github.com/IvanBrykalov/setcache/policy/lru"
	"github.com/IvanBrykalov/setcache/policy/mru"
)

// counters are shared by all workers.
type counters struct {
	reads, writes, hits, misses, total atomic.Uint64
}

// buildOptions turns a validated Config into cache Options.
func buildOptions(cfg Config, m cache.Metrics) cache.Options[string, string] {
	shards := cfg.Shards
	if shards == 0 {
		shards = util.ReasonableShardCount()
	}
	size := cfg.ShardSize
	if size == 0 {
		size = util.SplitCapacity(cfg.Capacity, shards)
	}

	h := keyhash.FNV64a[string]
	if cfg.Hash == "murmur3" {
		h = keyhash.Murmur3[string]
	}
	var pol policy.Policy[string, string]
	switch cfg.Policy {
	case "mru":
		pol = mru.New[string, string](h)
	default:
		pol = lru.New[string, string](lru.WithHasher[string](h))
	}

	return cache.Options[string, string]{
		Shards:    shards,
		ShardSize: size,
		Policy:    pol,
		Metrics:   m,
	}
}

func run(ctx context.Context, cfg Config) error {
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "bench",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: os.Stderr,
	})

	// ---- pprof and Prometheus (both on DefaultServeMux) ----
	var metrics cache.Metrics = cache.NoopMetrics{}
	if cfg.MetricsAddr != "" {
		metrics = pmet.New(nil, "setcache", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		serve(log.Named("metrics"), cfg.MetricsAddr)
	}
	if cfg.PprofAddr != "" && cfg.PprofAddr != cfg.MetricsAddr {
		serve(log.Named("pprof"), cfg.PprofAddr)
	}

	opt := buildOptions(cfg, metrics)
	c, err := cache.New[string, string](opt)
	if err != nil {
		return err
	}
	log.Info("cache ready", "shards", opt.Shards, "shard_size", opt.ShardSize,
		"capacity", c.Capacity(), "policy", cfg.Policy, "hash", cfg.Hash)

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := cfg.Preload
	if pl == 0 {
		pl = c.Capacity() / 2
	}
	for i := 0; i < pl; i++ {
		if err := c.Set("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i)); err != nil {
			return fmt.Errorf("preload: %w", err)
		}
	}
	log.Debug("preloaded", "entries", c.Count())

	var lim *rate.Limiter
	if cfg.Rate > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.Rate), max(1, cfg.Workers))
	}

	var cnt counters
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	workers := max(1, cfg.Workers)
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error { return work(ctx, c, cfg, int64(w), lim, &cnt) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	report(cfg, c, &cnt, workers, elapsed)
	return nil
}

// work issues Zipf-distributed reads and writes until ctx is done.
func work(ctx context.Context, c cache.Cache[string, string], cfg Config, id int64, lim *rate.Limiter, cnt *counters) error {
	// rand.Rand is not goroutine-safe; each worker owns its RNG and Zipf.
	r := rand.New(rand.NewSource(cfg.Seed + id*9973))
	zipf := rand.NewZipf(r, cfg.ZipfS, cfg.ZipfV, uint64(cfg.Keys-1))
	key := func() string { return "k:" + strconv.FormatUint(zipf.Uint64(), 10) }

	for ctx.Err() == nil {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return nil // deadline reached while throttled
			}
		}
		cnt.total.Add(1)
		if int(r.Int31n(100)) < cfg.Reads {
			cnt.reads.Add(1)
			if _, ok := c.TryGet(key()); ok {
				cnt.hits.Add(1)
			} else {
				cnt.misses.Add(1)
			}
			continue
		}
		cnt.writes.Add(1)
		if err := c.Set(key(), "v"+strconv.Itoa(r.Int())); err != nil {
			return err
		}
	}
	return nil
}

func serve(log hclog.Logger, addr string) {
	go func() {
		log.Info("serving", "addr", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("server stopped", "error", err)
		}
	}()
}

func report(cfg Config, c cache.Cache[string, string], cnt *counters, workers int, elapsed time.Duration) {
	ops := cnt.total.Load()
	reads := cnt.reads.Load()
	hits := cnt.hits.Load()

	hitRate := 0.0
	if reads > 0 {
		hitRate = float64(hits) / float64(reads) * 100
	}
	st := c.Stats()

	fmt.Printf("policy=%s hash=%s cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		cfg.Policy, cfg.Hash, c.Capacity(), workers, cfg.Keys, elapsed, cfg.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), reads, cnt.writes.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d\n", hits, cnt.misses.Load(), hitRate, st.Evictions)
	fmt.Printf("Count()=%d\n", c.Count())
}
