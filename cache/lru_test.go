package cache

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func mustLRU[K comparable, V any](t *testing.T, capacity int, opts ...Option[K, V]) *LRU[K, V] {
	t.Helper()
	c, err := NewLRU(capacity, opts...)
	if err != nil {
		t.Fatalf("NewLRU(%d) error = %v", capacity, err)
	}
	return c
}

func TestNewLRU_RejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			c, err := NewLRU[string, int](capacity)
			if c != nil {
				t.Error("NewLRU should return nil cache on error")
			}
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Fatalf("NewLRU(%d) error = %v, want ErrInvalidCapacity", capacity, err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("NewLRU(%d) error should be *ConfigurationError, got %T", capacity, err)
			}
			if cfgErr.Field != "capacity" {
				t.Errorf("Field = %q, want %q", cfgErr.Field, "capacity")
			}
		})
	}
}

// Touching a before inserting c leaves b as the least recent entry.
func TestLRU_GetThenInsertEvictsUntouched(t *testing.T) {
	c := mustLRU[string, int](t, 2)

	c.Put("a", 1)
	c.Put("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v; want 3, true", v, ok)
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
}

func TestLRU_CapacityNeverExceeded(t *testing.T) {
	const capacity = 5
	c := mustLRU[int, int](t, capacity)

	for i := 0; i < 100; i++ {
		c.Put(i%17, i)
		if i%3 == 0 {
			c.Get(i % 7)
		}
		if c.Len() > capacity {
			t.Fatalf("after put %d: Len() = %d, exceeds capacity %d", i, c.Len(), capacity)
		}
	}
	if c.Len() != capacity {
		t.Errorf("Len() = %d, want %d", c.Len(), capacity)
	}
}

func TestLRU_EvictsFirstInsertedWithoutGets(t *testing.T) {
	const n = 4
	var evicted []int
	c := mustLRU[int, int](t, n, WithRemovalHandler(func(k, _ int, reason RemovalReason) {
		if reason != RemovalEvicted {
			t.Errorf("reason = %v, want evicted", reason)
		}
		evicted = append(evicted, k)
	}))

	for i := 0; i <= n; i++ {
		c.Put(i, i*10)
	}

	if _, ok := c.Get(0); ok {
		t.Error("first inserted key should be evicted")
	}
	for i := 1; i <= n; i++ {
		if v, ok := c.Get(i); !ok || v != i*10 {
			t.Errorf("Get(%d) = %v, %v; want %d, true", i, v, ok, i*10)
		}
	}
	if !slices.Equal(evicted, []int{0}) {
		t.Errorf("evicted = %v, want [0]", evicted)
	}
}

func TestLRU_GetProtectsFromEviction(t *testing.T) {
	c := mustLRU[string, string](t, 3)
	c.Put("old", "1")
	c.Put("mid", "2")
	c.Put("new", "3")

	// Touch the oldest so mid becomes least recent.
	c.Get("old")
	c.Put("next", "4")

	if _, ok := c.Get("mid"); ok {
		t.Error("expected mid to be evicted")
	}
	if _, ok := c.Get("old"); !ok {
		t.Error("expected touched key to survive")
	}
}

func TestLRU_PutOverwriteRefreshesRecency(t *testing.T) {
	c := mustLRU[string, int](t, 2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)
	c.Put("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %v, %v; want 10, true", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_OverwriteDoesNotNotify(t *testing.T) {
	calls := 0
	c := mustLRU[string, int](t, 1, WithRemovalHandler(func(string, int, RemovalReason) { calls++ }))
	c.Put("a", 1)
	c.Put("a", 2)
	if calls != 0 {
		t.Errorf("removal handler called %d times on overwrite", calls)
	}
}

func TestLRU_MissHasNoSideEffect(t *testing.T) {
	c := mustLRU[string, int](t, 2)
	c.Put("a", 1)
	c.Put("b", 2)

	before := c.Keys()
	if v, ok := c.Get("zzz"); ok || v != 0 {
		t.Errorf("Get(zzz) = %v, %v; want 0, false", v, ok)
	}
	if after := c.Keys(); !slices.Equal(before, after) {
		t.Errorf("Keys changed on miss: %v -> %v", before, after)
	}
}

func TestLRU_KeysMostRecentFirst(t *testing.T) {
	c := mustLRU[string, int](t, 3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")

	want := []string{"a", "c", "b"}
	if got := c.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestLRU_PeekDoesNotTouch(t *testing.T) {
	c := mustLRU[string, int](t, 2)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Peek("a"); !ok || v != 1 {
		t.Fatalf("Peek(a) = %v, %v; want 1, true", v, ok)
	}
	c.Put("c", 3)

	if _, ok := c.Peek("a"); ok {
		t.Error("Peek must not protect a from eviction")
	}
	if _, ok := c.Peek("missing"); ok {
		t.Error("Peek(missing) should miss")
	}
}

func TestLRU_DeleteAndClear(t *testing.T) {
	c := mustLRU[string, int](t, 3)
	c.Put("a", 1)
	c.Put("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get after Delete should miss")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if keys := c.Keys(); len(keys) != 0 {
		t.Errorf("Keys() after Clear = %v, want empty", keys)
	}

	// Still usable after Clear.
	c.Put("x", 9)
	if v, ok := c.Get("x"); !ok || v != 9 {
		t.Errorf("Get(x) = %v, %v; want 9, true", v, ok)
	}
}

func TestLRU_CapacityOne(t *testing.T) {
	c := mustLRU[string, int](t, 1)
	if c.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", c.Cap())
	}
	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %v, %v; want 2, true", v, ok)
	}
}

func TestLRU_RoundTrip(t *testing.T) {
	type point struct{ X, Y int }
	c := mustLRU[point, []string](t, 8)

	key := point{1, 2}
	val := []string{"a", "b"}
	c.Put(key, val)
	got, ok := c.Get(key)
	if !ok || !slices.Equal(got, val) {
		t.Errorf("Get(%v) = %v, %v; want %v, true", key, got, ok, val)
	}
}
