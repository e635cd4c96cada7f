package cache

import (
	"fmt"
	"sync"
)

// Shared guards a Cache with one mutex. Every operation, reads included,
// takes the same exclusive lock because Get reorders the chain.
//
// A panic inside a critical section (for example from Options.OnEvict) is
// recovered and turns the Shared cache poisoned: that call and all later
// calls return an error wrapping ErrPoisoned until Reset is called.
type Shared struct {
	// ---- guarded by mu ----
	mu     sync.Mutex
	c      *Cache
	poison error

	opt   Options
	stats *counters
}

// NewShared constructs a Shared cache. It panics if opt.Capacity <= 0.
func NewShared(opt Options) *Shared {
	opt = opt.withDefaults()
	st := &counters{next: opt.Metrics}
	opt.Metrics = st
	return &Shared{
		c:     New(opt),
		opt:   opt,
		stats: st,
	}
}

// Get returns a copy of the value for key and promotes it to MRU.
func (s *Shared) Get(key []byte) (val []byte, ok bool, err error) {
	err = s.do(func(c *Cache) { val, ok = c.Get(key) })
	if err != nil {
		return nil, false, err
	}
	return val, ok, nil
}

// Push inserts or updates key→value.
func (s *Shared) Push(key, value []byte) error {
	return s.do(func(c *Cache) { c.Push(key, value) })
}

// Keys returns copies of the resident keys ordered MRU → LRU.
func (s *Shared) Keys() ([][]byte, error) {
	var keys [][]byte
	err := s.do(func(c *Cache) { keys = c.Keys() })
	return keys, err
}

// Len returns the number of resident entries.
func (s *Shared) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// Cap returns the fixed capacity.
func (s *Shared) Cap() int { return s.opt.Capacity }

// String renders the recency chain. A poisoned cache renders its error
// instead of walking a chain that may be inconsistent.
func (s *Shared) String() string {
	var out string
	if err := s.do(func(c *Cache) { out = c.String() }); err != nil {
		return err.Error()
	}
	return out
}

// Err reports the poisoning error, or nil if the cache is healthy.
func (s *Shared) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poison
}

// Reset drops every entry and clears the poisoned state.
// Counters in Stats are kept.
func (s *Shared) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = New(s.opt)
	s.poison = nil
	s.opt.Metrics.Size(0)
}

// Stats returns a snapshot of hit/miss/eviction counters and the size.
func (s *Shared) Stats() Stats {
	return Stats{
		Hits:      s.stats.hits.Load(),
		Misses:    s.stats.misses.Load(),
		Evictions: s.stats.evicts.Load(),
		Len:       s.Len(),
		Capacity:  s.opt.Capacity,
	}
}

// do runs fn under the lock. The unlock is deferred so it also runs when
// fn panics; the recover handler runs first and records the poison.
func (s *Shared) do(fn func(c *Cache)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poison != nil {
		return s.poison
	}
	defer func() {
		if r := recover(); r != nil {
			s.poison = fmt.Errorf("%w: %v", ErrPoisoned, r)
			err = s.poison
		}
	}()
	fn(s.c)
	return nil
}
