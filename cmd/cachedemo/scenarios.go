package main

import (
	"fmt"
	"time"

	"github.com/jonwraymond/cachekit/cache"
)

// wrapFunc decorates a strategy, typically with instrumentation.
type wrapFunc func(cache.Strategy[string, string], string) cache.Strategy[string, string]

// scenarioRecency replays puts and gets against a two-entry LRU. Inserting
// a third key evicts the least recently used one.
func scenarioRecency(wrap wrapFunc, opts ...cache.Option[string, string]) ([]string, error) {
	lru, err := cache.NewLRU[string, string](2, opts...)
	if err != nil {
		return nil, err
	}
	m, err := cache.NewManager(wrap(lru, cache.PolicyLRU))
	if err != nil {
		return nil, err
	}

	var out []string
	get := func(k string) {
		v, ok := m.Get(k)
		out = append(out, step("get", k, v, ok))
	}
	m.Put("a", "1")
	m.Put("b", "2")
	get("a")
	m.Put("c", "3")
	get("b")
	get("c")
	get("a")
	return out, nil
}

// scenarioExpiry replays reads against a ten second TTL on a manual clock.
func scenarioExpiry(wrap wrapFunc, opts ...cache.Option[string, string]) ([]string, error) {
	clock := cache.NewManualClock(time.Unix(0, 0))
	ttl, err := cache.NewTTL(10*time.Second, clock, opts...)
	if err != nil {
		return nil, err
	}
	m, err := cache.NewManager(wrap(ttl, cache.PolicyTTL))
	if err != nil {
		return nil, err
	}

	var out []string
	get := func(at time.Duration) {
		clock.Set(time.Unix(0, 0).Add(at))
		v, ok := m.Get("x")
		out = append(out, fmt.Sprintf("t=%s %s", at, step("get", "x", v, ok)))
	}
	m.Put("x", "v")
	get(5 * time.Second)
	get(11 * time.Second)
	return out, nil
}

func step(op, key, value string, ok bool) string {
	if !ok {
		return fmt.Sprintf("%s(%s) = absent", op, key)
	}
	return fmt.Sprintf("%s(%s) = %s", op, key, value)
}
