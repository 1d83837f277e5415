package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/cachekit/cache"
)

// Metric instrument names.
const (
	MetricRequests = "cache.requests"
	MetricPuts     = "cache.puts"
	MetricRemovals = "cache.removals"
)

// Metrics records cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordGet counts a lookup as a hit or a miss.
	RecordGet(ctx context.Context, meta CacheMeta, hit bool)

	// RecordPut counts a write.
	RecordPut(ctx context.Context, meta CacheMeta)

	// RecordRemoval counts an eviction or expiry.
	RecordRemoval(ctx context.Context, meta CacheMeta, reason cache.RemovalReason)
}

type metricsImpl struct {
	requests metric.Int64Counter
	puts     metric.Int64Counter
	removals metric.Int64Counter
}

// NewMetrics creates Metrics backed by meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	requests, err := meter.Int64Counter(
		MetricRequests,
		metric.WithDescription("Cache lookups by result"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	puts, err := meter.Int64Counter(
		MetricPuts,
		metric.WithDescription("Cache writes"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	removals, err := meter.Int64Counter(
		MetricRemovals,
		metric.WithDescription("Entries evicted or expired"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		requests: requests,
		puts:     puts,
		removals: removals,
	}, nil
}

func (m *metricsImpl) RecordGet(ctx context.Context, meta CacheMeta, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	attrs := append(meta.attributes(), attribute.String("cache.result", result))
	m.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *metricsImpl) RecordPut(ctx context.Context, meta CacheMeta) {
	m.puts.Add(ctx, 1, metric.WithAttributes(meta.attributes()...))
}

func (m *metricsImpl) RecordRemoval(ctx context.Context, meta CacheMeta, reason cache.RemovalReason) {
	attrs := append(meta.attributes(), attribute.String("cache.removal.reason", reason.String()))
	m.removals.Add(ctx, 1, metric.WithAttributes(attrs...))
}

type noopMetrics struct{}

func (noopMetrics) RecordGet(context.Context, CacheMeta, bool)                   {}
func (noopMetrics) RecordPut(context.Context, CacheMeta)                         {}
func (noopMetrics) RecordRemoval(context.Context, CacheMeta, cache.RemovalReason) {}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}
