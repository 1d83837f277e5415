package cache

import "sync"

// Sizer is implemented by strategies that report how many entries they hold.
type Sizer interface {
	Len() int
}

// Bounded is implemented by strategies with a fixed entry limit.
type Bounded interface {
	Cap() int
}

// Locked serializes every call to an underlying Strategy with a mutex.
//
// A plain RWMutex read lock is not enough for Get: LRU reorders its list and
// TTL deletes stale entries on read.
type Locked[K comparable, V any] struct {
	mu sync.Mutex
	s  Strategy[K, V]
}

// Synchronized wraps s for use by multiple goroutines. Callers must stop
// using s directly afterwards.
func Synchronized[K comparable, V any](s Strategy[K, V]) *Locked[K, V] {
	return &Locked[K, V]{s: s}
}

// Get calls the underlying Get under the lock.
func (l *Locked[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Get(key)
}

// Put calls the underlying Put under the lock.
func (l *Locked[K, V]) Put(key K, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.s.Put(key, value)
}

// Do runs fn with exclusive access to the underlying strategy, for compound
// operations such as Sweep or check-then-put.
func (l *Locked[K, V]) Do(fn func(s Strategy[K, V])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.s)
}

// Len reports the underlying size, or 0 if the strategy is not a Sizer.
func (l *Locked[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.s.(Sizer); ok {
		return s.Len()
	}
	return 0
}

// Cap reports the underlying limit, or 0 if the strategy is not Bounded.
func (l *Locked[K, V]) Cap() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.s.(Bounded); ok {
		return b.Cap()
	}
	return 0
}

var (
	_ Strategy[string, any] = (*Locked[string, any])(nil)
	_ Sizer                 = (*LRU[string, any])(nil)
	_ Bounded               = (*LRU[string, any])(nil)
	_ Sizer                 = (*TTL[string, any])(nil)
)
