package cache

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Hooks run while the cache lock is held; keep them cheap.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
}

// Options configures a Cache or a Shared cache. Zero values are safe
// except Capacity, which must be positive:
//   - nil Metrics => NoopMetrics
//   - nil OnEvict => no callback
type Options struct {
	// Capacity is the fixed entry count limit.
	Capacity int

	// Metrics receives Hit/Miss/Evict/Size signals.
	Metrics Metrics

	// OnEvict is called with the evicted key and value after the entry has
	// been unlinked and removed from the index. It runs under the lock.
	// A panic here poisons a Shared cache (see ErrPoisoned).
	OnEvict func(key, value []byte)
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		panic("Capacity must be > 0")
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}
