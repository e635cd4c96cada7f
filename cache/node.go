package cache

// node is an intrusive doubly linked list element owned by the Cache.
// It keeps its own copy of the key so eviction can drop the index record
// without a second lookup.
type node struct {
	key []byte
	val []byte

	// Intrusive list links: head is MRU, tail is LRU.
	// next points toward the tail, prev toward the head.
	prev *node
	next *node
}

// clone returns a copy of b that does not alias the caller's backing array.
// A nil or empty input yields an empty, non-nil slice so hits are never
// mistaken for misses.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
