// Package observe provides observability for cache strategies.
//
// It wraps any cache.Strategy with OpenTelemetry tracing and metrics and a
// JSON structured logger. Eviction and expiry are recorded through a
// cache.RemovalFunc built by RemovalRecorder. The package performs no I/O
// beyond exporter setup.
package observe
