package cache

// Manager binds exactly one Strategy for its lifetime and forwards Get and
// Put to it unchanged. Switching policy means building a new Manager.
type Manager[K comparable, V any] struct {
	strategy Strategy[K, V]
}

// NewManager binds s. A nil strategy, including a typed nil pointer such as
// (*LRU[K, V])(nil), returns ErrNilStrategy.
func NewManager[K comparable, V any](s Strategy[K, V]) (*Manager[K, V], error) {
	if isNil(s) {
		return nil, ErrNilStrategy
	}
	return &Manager[K, V]{strategy: s}, nil
}

// Get forwards to the bound strategy.
func (m *Manager[K, V]) Get(key K) (V, bool) {
	return m.strategy.Get(key)
}

// Put forwards to the bound strategy.
func (m *Manager[K, V]) Put(key K, value V) {
	m.strategy.Put(key, value)
}

// Strategy returns the bound strategy.
func (m *Manager[K, V]) Strategy() Strategy[K, V] {
	return m.strategy
}

// Ensure Manager implements Strategy
var _ Strategy[string, any] = (*Manager[string, any])(nil)
