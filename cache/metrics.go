package cache

import "github.com/IvanBrykalov/minicache/internal/util"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Evict()   {}
func (NoopMetrics) Size(int) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

// Stats is a point-in-time snapshot of a Shared cache.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

// counters records Hit/Miss/Evict into padded atomics and forwards every
// signal to the user-supplied Metrics. Shared reads the atomics in Stats
// without taking the cache lock.
type counters struct {
	next Metrics

	_      util.CacheLinePad
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

func (c *counters) Hit() {
	c.hits.Add(1)
	c.next.Hit()
}

func (c *counters) Miss() {
	c.misses.Add(1)
	c.next.Miss()
}

func (c *counters) Evict() {
	c.evicts.Add(1)
	c.next.Evict()
}

func (c *counters) Size(entries int) { c.next.Size(entries) }

var _ Metrics = (*counters)(nil)
