package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc fetches the value for key on a cache miss.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader adds read-through loading on top of a Strategy.
//
// On a miss, GetOrLoad calls the LoadFunc once per key even when many
// goroutines miss at the same time, stores the result and returns it.
// Errors are returned to every waiting caller and are not cached.
//
// Loader serializes access to the strategy itself, so the strategy must not
// be used elsewhere.
type Loader[K comparable, V any] struct {
	cache *Locked[K, V]
	load  LoadFunc[K, V]
	keyer Keyer
	retry *RetryPolicy
	group singleflight.Group

	mu      sync.Mutex
	flights map[K]*flight
	seq     uint64
}

// flight tracks the callers waiting on one in-progress load.
type flight struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	keyer Keyer
	retry *RetryPolicy
}

// WithKeyer makes concurrent loads share a flight whenever k maps their keys
// to the same string, so k can fold equivalent keys together. k must map
// keys that should load different values to different strings.
//
// Without a Keyer, loads are grouped by key equality.
func WithKeyer(k Keyer) LoaderOption {
	return func(c *loaderConfig) {
		c.keyer = k
	}
}

// NewLoader creates a Loader. Both s and load are required.
func NewLoader[K comparable, V any](s Strategy[K, V], load LoadFunc[K, V], opts ...LoaderOption) (*Loader[K, V], error) {
	if isNil(s) {
		return nil, ErrNilStrategy
	}
	if load == nil {
		return nil, ErrNilLoadFunc
	}

	var cfg loaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	locked, ok := s.(*Locked[K, V])
	if !ok {
		locked = Synchronized(s)
	}

	return &Loader[K, V]{
		cache:   locked,
		load:    load,
		keyer:   cfg.keyer,
		retry:   cfg.retry,
		flights: make(map[K]*flight),
	}, nil
}

// Get returns a cached value without loading.
func (l *Loader[K, V]) Get(key K) (V, bool) {
	return l.cache.Get(key)
}

// Put stores a value directly.
func (l *Loader[K, V]) Put(key K, value V) {
	l.cache.Put(key, value)
}

// GetOrLoad returns the cached value for key, loading and storing it on a miss.
//
// The load runs detached from any single caller's cancellation. A caller
// whose ctx ends stops waiting and gets ctx.Err(). The load itself is
// cancelled only once every caller waiting on it has gone.
func (l *Loader[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	var zero V
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	f, err := l.join(ctx, key)
	if err != nil {
		return zero, err
	}
	defer l.leave(key, f)

	ch := l.group.DoChan(f.id, func() (any, error) {
		// Another flight may have stored it between our miss and now.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := l.fetch(f.ctx, key)
		if err != nil {
			return nil, err
		}
		l.cache.Put(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		// A nil interface V comes back as a nil any.
		v, _ := res.Val.(V)
		return v, nil
	}
}

// join registers the caller on the flight for key, starting one if needed.
func (l *Loader[K, V]) join(ctx context.Context, key K) (*flight, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.flights[key]; ok {
		f.waiters++
		return f, nil
	}

	var id string
	if l.keyer != nil {
		s, err := l.keyer.Key(key)
		if err != nil {
			return nil, fmt.Errorf("cache: load key: %w", err)
		}
		id = "k:" + s
	} else {
		l.seq++
		id = "n:" + strconv.FormatUint(l.seq, 10)
	}

	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight{id: id, ctx: fctx, cancel: cancel, waiters: 1}
	l.flights[key] = f
	return f, nil
}

// leave drops the caller from f and cancels the load once nobody waits.
func (l *Loader[K, V]) leave(key K, f *flight) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	l.group.Forget(f.id)
	if l.flights[key] == f {
		delete(l.flights, key)
	}
}

func (l *Loader[K, V]) fetch(ctx context.Context, key K) (V, error) {
	if l.retry == nil {
		return l.load(ctx, key)
	}
	var v V
	err := l.retry.run(ctx, func(ctx context.Context) error {
		var err error
		v, err = l.load(ctx, key)
		return err
	})
	return v, err
}

// Forget drops any in-flight load for key so the next miss starts a new one.
// Callers already waiting still receive the old result.
func (l *Loader[K, V]) Forget(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.flights[key]; ok {
		l.group.Forget(f.id)
		delete(l.flights, key)
	}
}

// Ensure Loader implements Strategy
var _ Strategy[string, any] = (*Loader[string, any])(nil)
