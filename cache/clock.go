package cache

import (
	"sync"
	"time"
)

// Clock supplies timestamps for expiry decisions.
//
// Contract:
// - Readings must be monotonically non-decreasing.
// - Concurrency: implementations must be safe for concurrent use.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns time.Now, which carries a monotonic reading so Sub is immune
// to wall-clock steps.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the process clock.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a Clock that only moves when told to. Useful in tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current simulated time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to t. Times before the current reading are ignored.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	if t.After(c.now) {
		c.now = t
	}
	c.mu.Unlock()
}

var (
	_ Clock = systemClock{}
	_ Clock = (*ManualClock)(nil)
)
