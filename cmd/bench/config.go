package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix selects the environment variables read by loadConfig,
// e.g. SETCACHE_SHARD_SIZE=16.
const envPrefix = "SETCACHE_"

// Config describes one benchmark run. Sources, later ones winning:
// defaults, YAML file, SETCACHE_* environment, command-line flags.
type Config struct {
	Shards    int    `koanf:"shards"`     // 0 = auto
	ShardSize int    `koanf:"shard_size"` // 0 = derive from Capacity
	Capacity  int    `koanf:"capacity"`
	Policy    string `koanf:"policy"` // lru | mru
	Hash      string `koanf:"hash"`   // fnv | murmur3

	Workers  int           `koanf:"workers"`
	Duration time.Duration `koanf:"duration"`
	Reads    int           `koanf:"reads"` // read percentage [0..100]
	Rate     float64       `koanf:"rate"`  // ops/s across all workers, 0 = unlimited

	Keys    int     `koanf:"keys"`
	ZipfS   float64 `koanf:"zipf_s"`
	ZipfV   float64 `koanf:"zipf_v"`
	Seed    int64   `koanf:"seed"`
	Preload int     `koanf:"preload"` // 0 = capacity/2

	PprofAddr   string `koanf:"pprof"`
	MetricsAddr string `koanf:"http"`
	LogLevel    string `koanf:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Capacity:    100_000,
		Policy:      "lru",
		Hash:        "fnv",
		Workers:     2 * runtime.GOMAXPROCS(0),
		Duration:    10 * time.Second,
		Reads:       80,
		Keys:        1_000_000,
		ZipfS:       1.1,
		ZipfV:       1.0,
		Seed:        time.Now().UnixNano(),
		MetricsAddr: ":8080",
		LogLevel:    "info",
	}
}

// loadConfig layers the YAML file at path (optional) and the environment
// over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// SETCACHE_SHARD_SIZE -> shard_size
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// validate rejects settings the workload cannot run with.
func (c Config) validate() error {
	if c.Shards < 0 || c.ShardSize < 0 {
		return fmt.Errorf("shards and shard_size must be >= 0")
	}
	if c.ShardSize == 0 && c.Capacity <= 0 {
		return fmt.Errorf("either shard_size or capacity must be set")
	}
	if c.Reads < 0 || c.Reads > 100 {
		return fmt.Errorf("reads must be in [0..100], got %d", c.Reads)
	}
	if c.Keys < 2 {
		return fmt.Errorf("keys must be >= 2, got %d", c.Keys)
	}
	if c.ZipfS <= 1 || c.ZipfV < 1 {
		return fmt.Errorf("zipf_s must be > 1 and zipf_v >= 1")
	}
	switch c.Policy {
	case "lru", "mru":
	default:
		return fmt.Errorf("unknown policy %q (use lru or mru)", c.Policy)
	}
	switch c.Hash {
	case "fnv", "murmur3":
	default:
		return fmt.Errorf("unknown hash %q (use fnv or murmur3)", c.Hash)
	}
	return nil
}
