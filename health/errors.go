package health

import "errors"

var (
	// ErrCheckFailed indicates a health check crossed its critical threshold.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a health check did not finish before the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under a name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNilTarget indicates an occupancy checker was given no cache.
	ErrNilTarget = errors.New("health: target is nil")

	// ErrNoBound indicates neither MaxEntries nor the cache's capacity bounds occupancy.
	ErrNoBound = errors.New("health: occupancy bound not configured")
)
