package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/cachekit/cache"
)

const (
	defaultWarningRatio  = 0.8
	defaultCriticalRatio = 0.95
)

// OccupancyConfig configures an OccupancyChecker.
type OccupancyConfig struct {
	// Name identifies the checker. Default: "cache".
	Name string

	// MaxEntries is the entry count treated as full. When zero the target's
	// Cap() is used, which requires the target to implement cache.Bounded.
	// A cache bounded by its own Cap() reports at worst degraded.
	// TTL caches have no capacity, so they need MaxEntries.
	MaxEntries int

	// WarningRatio of MaxEntries triggers degraded status. Default: 0.8
	WarningRatio float64

	// CriticalRatio of MaxEntries triggers unhealthy status. Default: 0.95
	CriticalRatio float64
}

// OccupancyChecker reports how full a cache is.
//
// The target is read from the checking goroutine, so it must be safe for
// concurrent use. Wrap strategies with cache.Synchronized before passing them.
type OccupancyChecker struct {
	target cache.Sizer
	bound  int
	// selfBounded is set when bound is the target's own Cap. Such a cache
	// evicts instead of growing, so being full is not a failure.
	selfBounded bool
	config      OccupancyConfig
}

// NewOccupancyChecker creates a checker over target.
func NewOccupancyChecker(target cache.Sizer, config OccupancyConfig) (*OccupancyChecker, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if config.Name == "" {
		config.Name = "cache"
	}
	if config.WarningRatio <= 0 || config.WarningRatio >= 1 {
		config.WarningRatio = defaultWarningRatio
	}
	if config.CriticalRatio <= 0 || config.CriticalRatio > 1 {
		config.CriticalRatio = defaultCriticalRatio
	}
	if config.CriticalRatio < config.WarningRatio {
		config.CriticalRatio = config.WarningRatio
	}

	bound := config.MaxEntries
	selfBounded := false
	if bound <= 0 {
		if b, ok := target.(cache.Bounded); ok {
			bound = b.Cap()
			selfBounded = true
		}
	}
	if bound <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBound, config.Name)
	}

	return &OccupancyChecker{target: target, bound: bound, selfBounded: selfBounded, config: config}, nil
}

// Name returns the configured checker name.
func (o *OccupancyChecker) Name() string {
	return o.config.Name
}

// Check compares the current entry count against the thresholds.
func (o *OccupancyChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	entries := o.target.Len()
	ratio := float64(entries) / float64(o.bound)
	details := map[string]any{
		"entries":       entries,
		"bound":         o.bound,
		"usage_percent": ratio * 100,
	}

	switch {
	case ratio >= o.config.CriticalRatio && o.selfBounded:
		return Degraded(fmt.Sprintf("at capacity, evicting: %.1f%%", ratio*100)).WithDetails(details)
	case ratio >= o.config.CriticalRatio:
		return Unhealthy(fmt.Sprintf("occupancy critical: %.1f%%", ratio*100), ErrCheckFailed).WithDetails(details)
	case ratio >= o.config.WarningRatio:
		return Degraded(fmt.Sprintf("occupancy high: %.1f%%", ratio*100)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("occupancy normal: %.1f%%", ratio*100)).WithDetails(details)
	}
}
