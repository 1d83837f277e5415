package cache

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls how a Loader retries a failing LoadFunc.
// Zero fields take the defaults noted below.
type RetryPolicy struct {
	// MaxAttempts counts the first call. Default: 3
	MaxAttempts int

	// InitialDelay is the wait before the second attempt. Default: 50ms
	InitialDelay time.Duration

	// MaxDelay caps any single wait. Default: 2s
	MaxDelay time.Duration

	// Multiplier grows the delay after each attempt. Default: 2
	Multiplier float64

	// Jitter adds up to 25% random delay.
	Jitter bool

	// RetryIf reports whether err is worth another attempt.
	// Default: every error except context cancellation.
	RetryIf func(err error) bool
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 50 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 2 * time.Second
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 2
	}
	if p.RetryIf == nil {
		p.RetryIf = func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}
	}
	return p
}

// WithRetry makes GetOrLoad retry failed loads under p.
func WithRetry(p RetryPolicy) LoaderOption {
	return func(c *loaderConfig) {
		p = p.withDefaults()
		c.retry = &p
	}
}

// run calls op until it succeeds, RetryIf rejects the error, attempts run
// out, or ctx is done. The last error is returned.
func (p *RetryPolicy) run(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !p.RetryIf(lastErr) || attempt == p.MaxAttempts {
			return lastErr
		}

		t := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return lastErr
}

func (p *RetryPolicy) delay(attempt int) time.Duration {
	d := p.MaxDelay
	if f := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1)); f < float64(p.MaxDelay) {
		d = time.Duration(f)
	}
	if p.Jitter && d >= 4 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		d += time.Duration(rand.Int64N(int64(d / 4)))
	}
	return d
}
