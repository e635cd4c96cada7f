// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/minicache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	evicts   prometheus.Counter
	entries  prometheus.Gauge
	capacity prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}
	}
	a := &Adapter{
		hits:     prometheus.NewCounter(prometheus.CounterOpts(opts("hits_total", "Cache hits"))),
		misses:   prometheus.NewCounter(prometheus.CounterOpts(opts("misses_total", "Cache misses"))),
		evicts:   prometheus.NewCounter(prometheus.CounterOpts(opts("evictions_total", "LRU evictions"))),
		entries:  prometheus.NewGauge(prometheus.GaugeOpts(opts("size_entries", "Number of resident entries"))),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts(opts("capacity_entries", "Configured entry capacity"))),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.entries, a.capacity)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter.
func (a *Adapter) Evict() { a.evicts.Inc() }

// Size updates the resident entries gauge.
func (a *Adapter) Size(entries int) { a.entries.Set(float64(entries)) }

// SetCapacity publishes the configured capacity. It never changes after
// startup, so callers set it once.
func (a *Adapter) SetCapacity(n int) { a.capacity.Set(float64(n)) }

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
