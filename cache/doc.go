// Package cache provides interchangeable in-process cache policies behind a
// single facade.
//
// It provides a Strategy interface with a capacity-bound recency policy (LRU)
// and a time-bound expiration policy (TTL), a Manager that binds exactly one
// strategy, an injectable Clock for deterministic expiry, and a read-through
// Loader with single-flight deduplication.
//
// Strategies are not safe for concurrent use. Wrap them with Synchronized
// when more than one goroutine mutates the same instance.
package cache
