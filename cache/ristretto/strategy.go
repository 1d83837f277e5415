// Package ristretto adapts github.com/dgraph-io/ristretto/v2 to the
// cache.Strategy interface as a cost-bounded policy with TinyLFU admission.
package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/jonwraymond/cachekit/cache"
)

// Key lists the key types usable with this strategy. It is the comparable
// subset of ristretto.Key.
type Key interface {
	uint64 | string | byte | int | int32 | uint32 | int64
}

// Config sizes the underlying ristretto cache.
type Config[V any] struct {
	// MaxCost bounds the summed cost of admitted entries. Required.
	MaxCost int64

	// NumCounters is the number of frequency counters. Defaults to
	// 10 * MaxCost, which suits unit cost.
	NumCounters int64

	// TTL expires entries after the given duration. Zero means no expiry.
	TTL time.Duration

	// Cost computes an entry's cost. Nil means every entry costs 1.
	Cost func(V) int64
}

// Strategy is a cost-bounded cache.
//
// Unlike cache.LRU, admission is probabilistic: Put may drop a write when
// the admission policy prefers the entries already stored. Get never reports
// a value that was not admitted.
type Strategy[K Key, V any] struct {
	c   *ristretto.Cache[K, V]
	ttl time.Duration
}

// New creates a Strategy. A non-positive MaxCost or negative TTL returns a
// *cache.ConfigurationError.
func New[K Key, V any](cfg Config[V]) (*Strategy[K, V], error) {
	if cfg.MaxCost <= 0 {
		return nil, &cache.ConfigurationError{Field: "max_cost", Value: cfg.MaxCost, Err: cache.ErrInvalidCapacity}
	}
	if cfg.TTL < 0 {
		return nil, &cache.ConfigurationError{Field: "ttl", Value: cfg.TTL, Err: cache.ErrInvalidTTL}
	}

	counters := cfg.NumCounters
	if counters <= 0 {
		counters = cfg.MaxCost * 10
	}

	cost := cfg.Cost
	if cost == nil {
		cost = func(V) int64 { return 1 }
	}

	c, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters:        counters,
		MaxCost:            cfg.MaxCost,
		BufferItems:        64,
		Cost:               cost,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Strategy[K, V]{c: c, ttl: cfg.TTL}, nil
}

// Get returns the value for key if it was admitted and has not expired.
func (s *Strategy[K, V]) Get(key K) (V, bool) {
	return s.c.Get(key)
}

// Put offers value to the cache and waits until the write buffer is applied.
func (s *Strategy[K, V]) Put(key K, value V) {
	// Cost 0 defers to Config.Cost.
	if s.ttl > 0 {
		s.c.SetWithTTL(key, value, 0, s.ttl)
	} else {
		s.c.Set(key, value, 0)
	}
	s.c.Wait()
}

// Delete removes key.
func (s *Strategy[K, V]) Delete(key K) {
	s.c.Del(key)
}

// Clear removes every entry.
func (s *Strategy[K, V]) Clear() {
	s.c.Clear()
}

// Close stops the background goroutines owned by ristretto.
func (s *Strategy[K, V]) Close() {
	s.c.Close()
}

// Ensure Strategy implements cache.Strategy
var _ cache.Strategy[string, any] = (*Strategy[string, any])(nil)
