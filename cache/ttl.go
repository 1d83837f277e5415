package cache

import "time"

// TTL is a time-bound cache. An entry is visible while
// clock.Now() - writtenAt < ttl.
//
// Expiry is lazy: Get removes a stale entry when it observes one. Nothing
// runs in the background, so keys written once and never read again stay
// stored until Sweep, Delete or Clear removes them.
type TTL[K comparable, V any] struct {
	ttl     time.Duration
	clock   Clock
	entries map[K]ttlEntry[V]
	opts    options[K, V]
}

type ttlEntry[V any] struct {
	value     V
	writtenAt time.Time
}

// NewTTL creates a TTL cache. A ttl <= 0 returns a *ConfigurationError.
// A nil clock means SystemClock.
func NewTTL[K comparable, V any](ttl time.Duration, clock Clock, opts ...Option[K, V]) (*TTL[K, V], error) {
	if ttl <= 0 {
		return nil, configError("ttl", ttl, ErrInvalidTTL)
	}
	if clock == nil {
		clock = SystemClock()
	}

	return &TTL[K, V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[K]ttlEntry[V]),
		opts:    buildOptions(opts),
	}, nil
}

// Get returns the value for key if it was written less than ttl ago.
// A stale entry is removed and reported as a miss.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	now := c.clock.Now()
	if c.fresh(e, now) {
		return e.value, true
	}

	delete(c.entries, key)
	c.opts.notify(key, e.value, RemovalExpired)
	return zero, false
}

// Put stores value under key and restarts its lifetime from now.
func (c *TTL[K, V]) Put(key K, value V) {
	c.entries[key] = ttlEntry[V]{
		value:     value,
		writtenAt: c.clock.Now(),
	}
}

// Sweep removes every stale entry and returns how many were removed.
// It is never called implicitly.
func (c *TTL[K, V]) Sweep() int {
	now := c.clock.Now()
	removed := 0
	for key, e := range c.entries {
		if c.fresh(e, now) {
			continue
		}
		delete(c.entries, key)
		c.opts.notify(key, e.value, RemovalExpired)
		removed++
	}
	return removed
}

// Delete removes key and reports whether it was stored, stale or not.
func (c *TTL[K, V]) Delete(key K) bool {
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear removes every entry.
func (c *TTL[K, V]) Clear() {
	clear(c.entries)
}

// Len returns the number of stored entries, including stale ones that have
// not been observed yet.
func (c *TTL[K, V]) Len() int {
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *TTL[K, V]) TTL() time.Duration {
	return c.ttl
}

func (c *TTL[K, V]) fresh(e ttlEntry[V], now time.Time) bool {
	return now.Sub(e.writtenAt) < c.ttl
}

// Ensure TTL implements Strategy
var _ Strategy[string, any] = (*TTL[string, any])(nil)
