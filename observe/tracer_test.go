package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp.Tracer("test")), recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestCacheMeta_SpanName(t *testing.T) {
	tests := []struct {
		name string
		meta CacheMeta
		op   string
		want string
	}{
		{"named", CacheMeta{Name: "users"}, OpGet, "cache.get.users"},
		{"unnamed", CacheMeta{}, OpPut, "cache.put"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.SpanName(tt.op); got != tt.want {
				t.Errorf("SpanName(%q) = %q, want %q", tt.op, got, tt.want)
			}
		})
	}
}

// TestTracer_SpanAttributes verifies cache identity and hit status are recorded.
func TestTracer_SpanAttributes(t *testing.T) {
	tracer, recorder := newRecordingTracer()
	meta := CacheMeta{Name: "users", Policy: "ttl"}

	_, span := tracer.StartSpan(context.Background(), meta, OpGet)
	hit := true
	tracer.EndSpan(span, &hit)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != "cache.get.users" {
		t.Errorf("span name = %q, want %q", s.Name(), "cache.get.users")
	}
	if v, ok := spanAttr(s, "cache.name"); !ok || v.AsString() != "users" {
		t.Errorf("cache.name = %v", v)
	}
	if v, ok := spanAttr(s, "cache.policy"); !ok || v.AsString() != "ttl" {
		t.Errorf("cache.policy = %v", v)
	}
	if v, ok := spanAttr(s, "cache.operation"); !ok || v.AsString() != OpGet {
		t.Errorf("cache.operation = %v", v)
	}
	if v, ok := spanAttr(s, "cache.hit"); !ok || !v.AsBool() {
		t.Errorf("cache.hit = %v", v)
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}
}

// TestTracer_NoHitAttributeForPut verifies cache.hit is only set for lookups.
func TestTracer_NoHitAttributeForPut(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), CacheMeta{Name: "c"}, OpPut)
	tracer.EndSpan(span, nil)

	s := recorder.Ended()[0]
	if _, ok := spanAttr(s, "cache.hit"); ok {
		t.Error("cache.hit should not be set on put spans")
	}
}

// TestTracer_ChildOfContextSpan verifies spans join the caller's trace.
func TestTracer_ChildOfContextSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otelTracer := tp.Tracer("test")
	tracer := NewTracer(otelTracer)

	ctx, parent := otelTracer.Start(context.Background(), "request")
	_, span := tracer.StartSpan(ctx, CacheMeta{Name: "c"}, OpGet)
	tracer.EndSpan(span, nil)
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	child := spans[0]
	if child.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Error("cache span should be a child of the request span")
	}
}

func TestNopTracer_NoPanic(t *testing.T) {
	tracer := NopTracer()
	_, span := tracer.StartSpan(context.Background(), CacheMeta{Name: "noop"}, OpGet)
	hit := false
	tracer.EndSpan(span, &hit)
}
