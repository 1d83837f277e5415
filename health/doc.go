// Package health reports how full caches are.
//
// An OccupancyChecker compares a cache's entry count against a bound and
// reports degraded or unhealthy once a warning or critical ratio is crossed.
// LRU caches supply their own bound through Cap. A full LRU is evicting
// rather than growing, so it reports at worst degraded. TTL caches hold stale
// entries until they are read or swept, so they are bounded by a configured
// MaxEntries instead, which makes unchecked growth visible.
//
//	lru, _ := cache.NewLRU[string, []byte](1000)
//	shared := cache.Synchronized[string, []byte](lru)
//	checker, err := health.NewOccupancyChecker(shared, health.OccupancyConfig{Name: "sessions"})
//
// An Aggregator runs several checkers in parallel and OverallStatus folds
// their results to the worst status.
package health
