package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Operation names used in span names.
const (
	OpGet = "get"
	OpPut = "put"
)

// CacheMeta identifies a cache instance in telemetry.
type CacheMeta struct {
	Name   string // Cache name (required)
	Policy string // Policy label such as "lru" or "ttl" (optional)
}

// SpanName returns the span name for op.
// Format: cache.<op>.<name> or cache.<op>
func (m CacheMeta) SpanName(op string) string {
	if m.Name == "" {
		return "cache." + op
	}
	return "cache." + op + "." + m.Name
}

func (m CacheMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("cache.name", m.Name)}
	if m.Policy != "" {
		attrs = append(attrs, attribute.String("cache.policy", m.Policy))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with cache-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a span for one cache operation.
	StartSpan(ctx context.Context, meta CacheMeta, op string) (context.Context, trace.Span)

	// EndSpan ends the span. A non-nil hit is recorded as cache.hit.
	EndSpan(span trace.Span, hit *bool)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta CacheMeta, op string) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.String("cache.operation", op))
	return t.tracer.Start(ctx, meta.SpanName(op),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, hit *bool) {
	if hit != nil {
		span.SetAttributes(attribute.Bool("cache.hit", *hit))
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer whose spans are never recorded.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CacheMeta, op string) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName(op))
}

func (t *noopTracer) EndSpan(span trace.Span, _ *bool) {
	span.End()
}
