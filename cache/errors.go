package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for cache construction.
var (
	// ErrInvalidCapacity indicates a non-positive LRU capacity.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")

	// ErrInvalidTTL indicates a non-positive time-to-live.
	ErrInvalidTTL = errors.New("cache: ttl must be positive")

	// ErrInvalidPolicy indicates an unknown policy name in Config.
	ErrInvalidPolicy = errors.New("cache: unknown policy")

	// ErrNilStrategy indicates a nil Strategy was given to NewManager.
	ErrNilStrategy = errors.New("cache: strategy is nil")
)

// ConfigurationError reports an invalid construction parameter.
//
// It is the only error kind produced by strategy construction. Use errors.Is
// against the sentinels above or errors.As to inspect the offending field.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v (%s=%v)", e.Err, e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(field string, value any, err error) error {
	return &ConfigurationError{Field: field, Value: value, Err: err}
}

// ErrNilLoadFunc indicates a nil LoadFunc was given to NewLoader.
var ErrNilLoadFunc = errors.New("cache: load func is nil")
