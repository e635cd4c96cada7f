// Package cache provides a fixed-capacity, in-memory LRU key/value cache for
// byte-slice keys and values, plus a single-lock wrapper for concurrent use.
//
// Design
//
//   - Storage: a map[string]*node index and an intrusive MRU↔LRU doubly
//     linked list. Get, Push and eviction are O(1) expected.
//
//   - Ordering: Get and Push both promote the entry to MRU. When a new key
//     arrives at full capacity the LRU entry is evicted first. Updating an
//     existing key never evicts.
//
//   - List surgery: detach and attachToHead are the only chain mutators.
//     Everything else is expressed in terms of them.
//
//   - Concurrency: Cache itself is not goroutine-safe. Shared wraps it with
//     one sync.Mutex; every call is serialized, reads included.
//
//   - Poisoning: a panic that escapes a critical section (e.g. from
//     Options.OnEvict) marks a Shared cache poisoned. Operations then return
//     an error wrapping ErrPoisoned until Reset is called; the process keeps
//     running.
//
//   - Copies: keys and values are copied in and out under the lock, so no
//     returned slice aliases cache memory.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals. By
//     default NoopMetrics is used; see package metrics/prom for Prometheus.
//
// Basic usage
//
//	c := cache.NewShared(cache.Options{Capacity: 100})
//	_ = c.Push([]byte("a"), []byte("1"))
//	if v, ok, err := c.Get([]byte("a")); err == nil && ok {
//	    _ = v // use value
//	}
//
// Exporting metrics
//
//	m := prom.New(nil, "minicache", "cache", nil) // implements Metrics
//	c := cache.NewShared(cache.Options{Capacity: 100, Metrics: m})
package cache
