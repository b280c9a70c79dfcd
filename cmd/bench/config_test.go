package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/setcache/cache"
	"github.com/IvanBrykalov/setcache/keyhash"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shards: 16
shard_size: 4
policy: mru
duration: 3s
reads: 60
`), 0o600))

	t.Setenv("SETCACHE_SHARD_SIZE", "8")
	t.Setenv("SETCACHE_HASH", "murmur3")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Shards)
	assert.Equal(t, 8, cfg.ShardSize, "env overrides file")
	assert.Equal(t, "mru", cfg.Policy)
	assert.Equal(t, "murmur3", cfg.Hash)
	assert.Equal(t, 3*time.Second, cfg.Duration)
	assert.Equal(t, 60, cfg.Reads)
	assert.Equal(t, 1_000_000, cfg.Keys, "defaults survive")
	require.NoError(t, cfg.validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	bad := []func(*Config){
		func(c *Config) { c.Reads = 101 },
		func(c *Config) { c.Policy = "2q" },
		func(c *Config) { c.Hash = "crc" },
		func(c *Config) { c.ZipfS = 1 },
		func(c *Config) { c.Keys = 1 },
		func(c *Config) { c.ShardSize, c.Capacity = 0, 0 },
		func(c *Config) { c.Shards = -1 },
	}
	for i, mutate := range bad {
		cfg := defaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.validate(), "case %d", i)
	}
	assert.NoError(t, defaultConfig().validate())
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Shards = 10
	cfg.Capacity = 95
	cfg.Hash = "murmur3"

	opt := buildOptions(cfg, cache.NoopMetrics{})
	assert.Equal(t, 10, opt.Shards)
	assert.Equal(t, 10, opt.ShardSize, "ceil(95/10)")
	assert.Equal(t, keyhash.Murmur3("k"), opt.Policy.Hash("k"))
	assert.True(t, opt.Policy.Prefer(2, 1), "lru keeps the newer slot")

	cfg.Policy, cfg.Shards, cfg.ShardSize = "mru", 0, 4
	opt = buildOptions(cfg, cache.NoopMetrics{})
	assert.Positive(t, opt.Shards, "auto shard count")
	assert.Equal(t, 4, opt.ShardSize)
	assert.False(t, opt.Policy.Prefer(2, 1))

	c, err := cache.New(opt)
	require.NoError(t, err)
	require.NoError(t, c.Set("a", "b"))
}
