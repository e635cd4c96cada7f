package cache

// Store is the concurrency-safe cache surface consumed by request adapters.
// All methods are safe for concurrent use by multiple goroutines and are
// totally ordered by a single lock.
type Store interface {
	// Get returns a copy of the value for key and a presence flag.
	// On hit, the entry becomes most-recently-used.
	Get(key []byte) ([]byte, bool, error)

	// Push inserts or updates key→value and makes it most-recently-used.
	// A new key arriving at full capacity evicts the least-recently-used entry.
	Push(key, value []byte) error

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int

	// String renders the recency chain for diagnostics.
	String() string
}

var _ Store = (*Shared)(nil)
