package main

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/jonwraymond/cachekit/cache"
)

// syncBuffer is written by the logger and the span exporter goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func passthrough(s cache.Strategy[string, string], _ string) cache.Strategy[string, string] {
	return s
}

func TestRecencyReplay_EvictsUntouchedKey(t *testing.T) {
	var evicted []string
	got, err := scenarioRecency(passthrough, cache.WithRemovalHandler(func(k, _ string, _ cache.RemovalReason) {
		evicted = append(evicted, k)
	}))
	if err != nil {
		t.Fatalf("scenarioRecency() error = %v", err)
	}
	want := []string{
		"get(a) = 1",
		"get(b) = absent",
		"get(c) = 3",
		"get(a) = 1",
	}
	if !slices.Equal(got, want) {
		t.Errorf("steps = %q, want %q", got, want)
	}
	if !slices.Equal(evicted, []string{"b"}) {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
}

func TestExpiryReplay_MissesAfterLifetime(t *testing.T) {
	got, err := scenarioExpiry(passthrough)
	if err != nil {
		t.Fatalf("scenarioExpiry() error = %v", err)
	}
	want := []string{
		"t=5s get(x) = v",
		"t=11s get(x) = absent",
	}
	if !slices.Equal(got, want) {
		t.Errorf("steps = %q, want %q", got, want)
	}
}

func TestRun(t *testing.T) {
	cfg := Defaults()
	cfg.Observe.Tracing.Enabled = true
	cfg.Observe.Tracing.Exporter = "stdout"

	var buf syncBuffer
	if err := run(context.Background(), cfg, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`"msg":"cache health"`,
		`"status":"healthy"`,
		`"step":"get(b) = absent"`,
		`"step":"t=11s get(x) = absent"`,
		`cache.get.recency`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}
