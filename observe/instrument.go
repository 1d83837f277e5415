package observe

import (
	"context"
	"fmt"

	"github.com/jonwraymond/cachekit/cache"
)

// Instrumented wraps a cache.Strategy with tracing, metrics and logging.
//
// Contract:
//   - Ownership: values pass through unchanged; the wrapped strategy keeps
//     its own concurrency rules.
//   - Logging: operations log at debug level; values are never logged.
type Instrumented[K comparable, V any] struct {
	next    cache.Strategy[K, V]
	meta    CacheMeta
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// Instrument wraps s. Nil tracer, metrics or logger fall back to no-ops.
func Instrument[K comparable, V any](s cache.Strategy[K, V], meta CacheMeta, tracer Tracer, metrics Metrics, logger Logger) *Instrumented[K, V] {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Instrumented[K, V]{
		next:    s,
		meta:    meta,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.WithCache(meta),
	}
}

// InstrumentFromObserver wraps s using the observer's tracer, meter and
// logger.
func InstrumentFromObserver[K comparable, V any](obs Observer, s cache.Strategy[K, V], meta CacheMeta) (*Instrumented[K, V], error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	if meta.Name == "" {
		return nil, ErrMissingCacheName
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, fmt.Errorf("observe: create metrics: %w", err)
	}
	return Instrument(s, meta, NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Get implements cache.Strategy.
func (i *Instrumented[K, V]) Get(key K) (V, bool) {
	return i.GetContext(context.Background(), key)
}

// Put implements cache.Strategy.
func (i *Instrumented[K, V]) Put(key K, value V) {
	i.PutContext(context.Background(), key, value)
}

// GetContext is Get with the span parented to ctx.
func (i *Instrumented[K, V]) GetContext(ctx context.Context, key K) (V, bool) {
	ctx, span := i.tracer.StartSpan(ctx, i.meta, OpGet)
	v, ok := i.next.Get(key)
	i.tracer.EndSpan(span, &ok)

	i.metrics.RecordGet(ctx, i.meta, ok)
	i.logger.Debug(ctx, "cache get",
		Field{Key: "key", Value: fmt.Sprint(key)},
		Field{Key: "hit", Value: ok},
	)
	return v, ok
}

// PutContext is Put with the span parented to ctx.
func (i *Instrumented[K, V]) PutContext(ctx context.Context, key K, value V) {
	ctx, span := i.tracer.StartSpan(ctx, i.meta, OpPut)
	i.next.Put(key, value)
	i.tracer.EndSpan(span, nil)

	i.metrics.RecordPut(ctx, i.meta)
	i.logger.Debug(ctx, "cache put", Field{Key: "key", Value: fmt.Sprint(key)})
}

// Unwrap returns the wrapped strategy.
func (i *Instrumented[K, V]) Unwrap() cache.Strategy[K, V] {
	return i.next
}

// RemovalRecorder returns a cache.RemovalFunc that records evictions and
// expiries. Pass it to cache.WithRemovalHandler.
func RemovalRecorder[K comparable, V any](meta CacheMeta, metrics Metrics, logger Logger) cache.RemovalFunc[K, V] {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	logger = logger.WithCache(meta)

	return func(key K, _ V, reason cache.RemovalReason) {
		ctx := context.Background()
		metrics.RecordRemoval(ctx, meta, reason)
		logger.Debug(ctx, "cache entry removed",
			Field{Key: "key", Value: fmt.Sprint(key)},
			Field{Key: "reason", Value: reason.String()},
		)
	}
}

// Ensure Instrumented implements cache.Strategy
var _ cache.Strategy[string, any] = (*Instrumented[string, any])(nil)
