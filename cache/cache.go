package cache

import "reflect"

// Strategy is the capability shared by every cache policy.
//
// Contract:
// - Concurrency: implementations are not required to be safe for concurrent use.
// - Errors: Get never fails; it returns (zero, false) on miss.
// - Put always succeeds and overwrites any existing entry for key.
type Strategy[K comparable, V any] interface {
	// Get returns the value for key. It may update internal bookkeeping
	// (recency) or lazily drop an entry that is no longer valid.
	Get(key K) (V, bool)

	// Put stores value under key.
	Put(key K, value V)
}

// RemovalReason describes why an entry left a cache without being deleted
// explicitly.
type RemovalReason int

const (
	// RemovalEvicted means a capacity-bound cache dropped its least recently
	// used entry.
	RemovalEvicted RemovalReason = iota
	// RemovalExpired means a time-bound cache observed a stale entry.
	RemovalExpired
)

// String returns the string representation of the reason.
func (r RemovalReason) String() string {
	switch r {
	case RemovalEvicted:
		return "evicted"
	case RemovalExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// RemovalFunc is notified synchronously after an entry is evicted or expires.
type RemovalFunc[K comparable, V any] func(key K, value V, reason RemovalReason)

type options[K comparable, V any] struct {
	onRemove RemovalFunc[K, V]
}

// Option configures a strategy at construction.
type Option[K comparable, V any] func(*options[K, V])

// WithRemovalHandler registers fn to be called after each eviction or expiry.
// Explicit Delete, Clear and overwrites do not trigger it.
func WithRemovalHandler[K comparable, V any](fn RemovalFunc[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.onRemove = fn
	}
}

func buildOptions[K comparable, V any](opts []Option[K, V]) options[K, V] {
	var o options[K, V]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options[K, V]) notify(key K, value V, reason RemovalReason) {
	if o.onRemove != nil {
		o.onRemove(key, value, reason)
	}
}

// isNil reports whether s is nil or wraps a nil pointer.
func isNil[K comparable, V any](s Strategy[K, V]) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
