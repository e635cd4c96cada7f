package cache

import (
	"fmt"
	"strings"
)

// Cache is a fixed-capacity LRU key/value store: a map index plus an
// intrusive MRU↔LRU doubly linked list. Get, Push and eviction are O(1).
//
// Cache is NOT safe for concurrent use; wrap it in Shared (see NewShared).
type Cache struct {
	capacity int
	head     *node // MRU
	tail     *node // LRU
	index    map[string]*node

	opt Options
}

// New constructs an empty Cache. It panics if opt.Capacity <= 0.
func New(opt Options) *Cache {
	opt = opt.withDefaults()
	return &Cache{
		capacity: opt.Capacity,
		index:    make(map[string]*node, opt.Capacity),
		opt:      opt,
	}
}

// Get returns a copy of the value stored for key and promotes the entry
// to MRU. A miss returns (nil, false) and leaves the order untouched.
func (c *Cache) Get(key []byte) ([]byte, bool) {
	n, ok := c.index[string(key)]
	if !ok {
		c.opt.Metrics.Miss()
		return nil, false
	}
	c.detach(n)
	c.attachToHead(n)
	c.opt.Metrics.Hit()
	return clone(n.val), true
}

// Push inserts or updates key→value and makes the entry MRU.
// Updating an existing key never evicts. Inserting a new key into a full
// cache evicts the LRU entry first. Key and value are copied.
func (c *Cache) Push(key, value []byte) {
	if n, ok := c.index[string(key)]; ok {
		n.val = clone(value)
		c.detach(n)
		c.attachToHead(n)
		return
	}

	if len(c.index) >= c.capacity {
		c.evict()
	}

	n := &node{key: clone(key), val: clone(value)}
	c.index[string(n.key)] = n
	c.attachToHead(n)
	c.opt.Metrics.Size(len(c.index))
}

// Len returns the number of resident entries.
func (c *Cache) Len() int { return len(c.index) }

// Cap returns the fixed capacity.
func (c *Cache) Cap() int { return c.capacity }

// Keys returns copies of the resident keys ordered MRU → LRU.
func (c *Cache) Keys() [][]byte {
	keys := make([][]byte, 0, len(c.index))
	for n := c.head; n != nil; n = n.next {
		keys = append(keys, clone(n.key))
	}
	return keys
}

// String renders the chain from head to tail for diagnostics.
// The format is not stable.
func (c *Cache) String() string {
	var b strings.Builder
	b.WriteString("Cache [\n")
	for n := c.head; n != nil; n = n.next {
		if n != c.head {
			b.WriteString(" <-> \n")
		}
		fmt.Fprintf(&b, "(%q: %q)\n", n.key, n.val)
	}
	b.WriteString("]\n")
	return b.String()
}

// -------------------- list surgery --------------------

// detach unlinks n from the chain in O(1). It handles the sole, head, tail
// and interior positions and clears n's own links.
func (c *Cache) detach(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// attachToHead places a detached n at MRU in O(1).
func (c *Cache) attachToHead(n *node) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	} else {
		c.tail = n
	}
	c.head = n
}

// evict removes the LRU entry, if any, and reports it.
func (c *Cache) evict() {
	n := c.tail
	if n == nil {
		return
	}
	c.detach(n)
	delete(c.index, string(n.key))
	c.opt.Metrics.Evict()
	if cb := c.opt.OnEvict; cb != nil {
		cb(n.key, n.val)
	}
}
