package cache

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"default", DefaultConfig(), nil},
		{"lru", Config{Policy: "lru", Capacity: 1}, nil},
		{"lru upper case", Config{Policy: " LRU ", Capacity: 3}, nil},
		{"lru zero capacity", Config{Policy: "lru"}, ErrInvalidCapacity},
		{"lru ignores ttl", Config{Policy: "lru", Capacity: 2, TTL: -1}, nil},
		{"ttl", Config{Policy: "ttl", TTL: time.Second}, nil},
		{"ttl zero", Config{Policy: "ttl"}, ErrInvalidTTL},
		{"ttl ignores capacity", Config{Policy: "ttl", TTL: time.Second, Capacity: -1}, nil},
		{"empty policy", Config{Capacity: 1}, ErrInvalidPolicy},
		{"unknown policy", Config{Policy: "lfu", Capacity: 1}, ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Validate() error type = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestNewStrategy_SelectsPolicy(t *testing.T) {
	s, err := NewStrategy[string, int](Config{Policy: "lru", Capacity: 4}, nil)
	if err != nil {
		t.Fatalf("NewStrategy(lru) error = %v", err)
	}
	if lru, ok := s.(*LRU[string, int]); !ok || lru.Cap() != 4 {
		t.Errorf("NewStrategy(lru) = %T, want *LRU with capacity 4", s)
	}

	s, err = NewStrategy[string, int](Config{Policy: "ttl", TTL: time.Minute}, NewManualClock(epoch))
	if err != nil {
		t.Fatalf("NewStrategy(ttl) error = %v", err)
	}
	if ttl, ok := s.(*TTL[string, int]); !ok || ttl.TTL() != time.Minute {
		t.Errorf("NewStrategy(ttl) = %T, want *TTL with ttl 1m", s)
	}
}

func TestNewStrategy_InvalidReturnsNilInterface(t *testing.T) {
	s, err := NewStrategy[string, int](Config{Policy: "ttl"}, nil)
	if err == nil {
		t.Fatal("NewStrategy should fail for zero ttl")
	}
	if s != nil {
		t.Errorf("NewStrategy returned non-nil strategy %T on error", s)
	}
}

func TestNewManagerFromConfig(t *testing.T) {
	m, err := NewManagerFromConfig[string, int](Config{Policy: "lru", Capacity: 1}, nil)
	if err != nil {
		t.Fatalf("NewManagerFromConfig() error = %v", err)
	}
	m.Put("a", 1)
	m.Put("b", 2)
	if _, ok := m.Get("a"); ok {
		t.Error("expected a to be evicted")
	}

	if _, err := NewManagerFromConfig[string, int](Config{Policy: "nope"}, nil); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("NewManagerFromConfig(nope) error = %v, want ErrInvalidPolicy", err)
	}
}
