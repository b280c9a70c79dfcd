package cache

// EvictReason explains why an entry left the cache without an explicit Remove.
type EvictReason int

const (
	// EvictPolicy: displaced by a new key in a full shard, chosen by Policy.Prefer.
	EvictPolicy EvictReason = iota
	// EvictClear: dropped by Clear.
	EvictClear
)

func (r EvictReason) String() string {
	switch r {
	case EvictClear:
		return "clear"
	default:
		return "policy"
	}
}

// Metrics exposes cache-level observability hooks.
// Hooks are called from many goroutines, some while a shard lock is held.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	// Resident reports a change in the number of occupied slots.
	Resident(delta int)
}

// NoopMetrics is the default Metrics implementation; it does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()              {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Resident(int)      {}

var _ Metrics = NoopMetrics{}

// Stats is a point-in-time sum of the per-shard counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions uint64
}
