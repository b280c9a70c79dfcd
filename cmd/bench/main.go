// Command bench runs a synthetic Zipf workload against a set-associative
// cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "bench",
		Usage: "load-test a set-associative cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"SETCACHE_CONFIG"}},
			&cli.IntFlag{Name: "shards", Usage: "number of shards (0 = auto)"},
			&cli.IntFlag{Name: "shard-size", Usage: "slots per shard (0 = capacity/shards)"},
			&cli.IntFlag{Name: "cap", Usage: "total capacity used when shard-size is 0"},
			&cli.StringFlag{Name: "policy", Usage: "eviction comparator: lru | mru"},
			&cli.StringFlag{Name: "hash", Usage: "key hash: fnv | murmur3"},
			&cli.IntFlag{Name: "workers", Usage: "number of worker goroutines"},
			&cli.DurationFlag{Name: "duration", Usage: "benchmark duration"},
			&cli.IntFlag{Name: "reads", Usage: "read percentage [0..100]"},
			&cli.Float64Flag{Name: "rate", Usage: "total ops/s limit (0 = unlimited)"},
			&cli.IntFlag{Name: "keys", Usage: "keyspace size"},
			&cli.Float64Flag{Name: "zipf-s", Usage: "Zipf s > 1 (skew)"},
			&cli.Float64Flag{Name: "zipf-v", Usage: "Zipf v"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed"},
			&cli.IntFlag{Name: "preload", Usage: "preload entries (0 = capacity/2)"},
			&cli.StringFlag{Name: "pprof", Usage: "serve pprof at addr (e.g. :6060); empty = disabled"},
			&cli.StringFlag{Name: "http", Usage: "serve Prometheus metrics at addr; empty = disabled"},
			&cli.StringFlag{Name: "log-level", Usage: "trace | debug | info | warn | error"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			applyFlags(c, &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(c.Context, cfg)
		},
	}
}

// applyFlags overrides cfg with the flags given explicitly on the command line.
func applyFlags(c *cli.Context, cfg *Config) {
	ints := map[string]*int{
		"shards":     &cfg.Shards,
		"shard-size": &cfg.ShardSize,
		"cap":        &cfg.Capacity,
		"workers":    &cfg.Workers,
		"reads":      &cfg.Reads,
		"keys":       &cfg.Keys,
		"preload":    &cfg.Preload,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
	strs := map[string]*string{
		"policy":    &cfg.Policy,
		"hash":      &cfg.Hash,
		"pprof":     &cfg.PprofAddr,
		"http":      &cfg.MetricsAddr,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	floats := map[string]*float64{
		"rate":   &cfg.Rate,
		"zipf-s": &cfg.ZipfS,
		"zipf-v": &cfg.ZipfV,
	}
	for name, dst := range floats {
		if c.IsSet(name) {
			*dst = c.Float64(name)
		}
	}
	if c.IsSet("duration") {
		cfg.Duration = c.Duration("duration")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
}
