package cache

// LRU is a capacity-bound cache that evicts the least recently used entry
// when a Put pushes it over capacity.
//
// Entries live in a map for O(1) lookup and in an intrusive doubly-linked
// list for O(1) recency updates. root.next is the most recently used entry,
// root.prev the least.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*lruNode[K, V]
	root     lruNode[K, V]
	opts     options[K, V]
}

type lruNode[K comparable, V any] struct {
	key        K
	value      V
	prev, next *lruNode[K, V]
}

// NewLRU creates an LRU holding at most capacity entries.
// A capacity <= 0 returns a *ConfigurationError.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, configError("capacity", capacity, ErrInvalidCapacity)
	}

	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*lruNode[K, V], capacity),
		opts:     buildOptions(opts),
	}
	c.root.next = &c.root
	c.root.prev = &c.root
	return c, nil
}

// Get returns the value for key and marks it most recently used.
// A miss has no side effect.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Peek returns the value for key without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Put stores value under key as the most recently used entry, evicting the
// least recently used entry if the cache grows past capacity.
func (c *LRU[K, V]) Put(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}

	n := &lruNode[K, V]{key: key, value: value}
	c.items[key] = n
	c.insertAfter(n, &c.root)

	// A single Put adds at most one entry, so at most one eviction is needed.
	if len(c.items) > c.capacity {
		victim := c.root.prev
		c.unlink(victim)
		delete(c.items, victim.key)
		c.opts.notify(victim.key, victim.value, RemovalEvicted)
	}
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	n, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.items, key)
	return true
}

// Clear removes every entry.
func (c *LRU[K, V]) Clear() {
	clear(c.items)
	c.root.next = &c.root
	c.root.prev = &c.root
}

// Len returns the number of stored entries.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the fixed capacity.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// Keys returns keys ordered from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, len(c.items))
	for n := c.root.next; n != &c.root; n = n.next {
		out = append(out, n.key)
	}
	return out
}

func (c *LRU[K, V]) moveToFront(n *lruNode[K, V]) {
	if c.root.next == n {
		return
	}
	c.unlink(n)
	c.insertAfter(n, &c.root)
}

func (c *LRU[K, V]) insertAfter(n, at *lruNode[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (c *LRU[K, V]) unlink(n *lruNode[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// Ensure LRU implements Strategy
var _ Strategy[string, any] = (*LRU[string, any])(nil)
