// Command cachedemo builds a cache from configuration and replays the
// recency and expiry scenarios with full instrumentation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/jonwraymond/cachekit/cache"
	"github.com/jonwraymond/cachekit/health"
	"github.com/jonwraymond/cachekit/observe"
)

func main() {
	path := flag.String("config", DefaultConfigFile, "path to the YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := LoadFrom(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cachedemo:", err)
		os.Exit(1)
	}
	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "cachedemo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, out io.Writer) (err error) {
	cfg.Observe.Output = out
	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	defer func() {
		if serr := obs.Shutdown(context.WithoutCancel(ctx)); serr != nil && err == nil {
			err = fmt.Errorf("shutdown: %w", serr)
		}
	}()

	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	tracer := observe.NewTracer(obs.Tracer())
	logger := obs.Logger()

	instrument := func(name string) wrapFunc {
		return func(s cache.Strategy[string, string], policy string) cache.Strategy[string, string] {
			return observe.Instrument(s, observe.CacheMeta{Name: name, Policy: policy}, tracer, metrics, logger)
		}
	}
	recorder := func(name, policy string) cache.Option[string, string] {
		meta := observe.CacheMeta{Name: name, Policy: policy}
		return cache.WithRemovalHandler(observe.RemovalRecorder[string, string](meta, metrics, logger))
	}

	if err := runConfigured(ctx, cfg, tracer, metrics, logger, recorder); err != nil {
		return err
	}

	lines, err := scenarioRecency(instrument("recency"), recorder("recency", cache.PolicyLRU))
	if err != nil {
		return fmt.Errorf("recency scenario: %w", err)
	}
	report(ctx, logger, "recency", lines)

	lines, err = scenarioExpiry(instrument("expiry"), recorder("expiry", cache.PolicyTTL))
	if err != nil {
		return fmt.Errorf("expiry scenario: %w", err)
	}
	report(ctx, logger, "expiry", lines)

	return nil
}

// runConfigured fills the configured cache and reports its occupancy.
func runConfigured(
	ctx context.Context,
	cfg Config,
	tracer observe.Tracer,
	metrics observe.Metrics,
	logger observe.Logger,
	recorder func(name, policy string) cache.Option[string, string],
) error {
	s, err := cache.NewStrategy[string, string](cfg.Cache, nil, recorder(cfg.Name, cfg.Cache.Policy))
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	shared := cache.Synchronized(s)

	checker, err := health.NewOccupancyChecker(shared, health.OccupancyConfig{
		Name:          cfg.Name,
		MaxEntries:    cfg.Health.MaxEntries,
		WarningRatio:  cfg.Health.WarningRatio,
		CriticalRatio: cfg.Health.CriticalRatio,
	})
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	agg := health.NewAggregator()
	agg.Register(checker)

	meta := observe.CacheMeta{Name: cfg.Name, Policy: cfg.Cache.Policy}
	m, err := cache.NewManager[string, string](observe.Instrument[string, string](shared, meta, tracer, metrics, logger))
	if err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		k := "key-" + strconv.Itoa(i)
		m.Put(k, strconv.Itoa(i*i))
		m.Get(k)
	}

	results := agg.CheckAll(ctx)
	r := results[cfg.Name]
	logger.Info(ctx, "cache health",
		observe.Field{Key: "status", Value: health.OverallStatus(results).String()},
		observe.Field{Key: "message", Value: r.Message},
		observe.Field{Key: "entries", Value: shared.Len()},
	)
	return nil
}

func report(ctx context.Context, logger observe.Logger, name string, lines []string) {
	for _, l := range lines {
		logger.Info(ctx, "scenario step", observe.Field{Key: "scenario", Value: name}, observe.Field{Key: "step", Value: l})
	}
}
