package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 10 * time.Second

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout bounds a full CheckAll run. Default: 10 seconds
	Timeout time.Duration
}

// Aggregator runs a set of checkers and folds their results.
type Aggregator struct {
	timeout  time.Duration
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	timeout := defaultTimeout
	if len(config) > 0 && config[0].Timeout > 0 {
		timeout = config[0].Timeout
	}
	return &Aggregator{
		timeout:  timeout,
		checkers: make(map[string]Checker),
	}
}

// Register adds or replaces a checker under its Name.
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := checker.Name()
	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// Names returns registered checker names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.order...)
}

// Check runs a single named checker.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, ErrCheckerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return runCheck(ctx, checker), nil
}

// CheckAll runs every registered checker in parallel.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, c := range a.checkers {
		checkers[name] = c
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	for name, c := range checkers {
		g.Go(func() error {
			r := runCheck(ctx, c)
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// OverallStatus returns the worst status among results.
// An empty set is healthy.
func OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		overall = overall.Worse(r.Status)
	}
	return overall
}

func runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()
	resultCh := make(chan Result, 1)

	go func() {
		r := checker.Check(ctx)
		r.Duration = time.Since(start)
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
		resultCh <- r
	}()

	select {
	case r := <-resultCh:
		return r
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}
}

// Checker exposes the aggregator as a single Checker named name.
func (a *Aggregator) Checker(name string) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		results := a.CheckAll(ctx)
		status := OverallStatus(results)

		details := make(map[string]any, len(results))
		for n, r := range results {
			details[n] = map[string]any{
				"status":  r.Status.String(),
				"message": r.Message,
			}
		}

		var message string
		switch status {
		case StatusHealthy:
			message = "all caches healthy"
		case StatusDegraded:
			message = "some caches degraded"
		default:
			message = "some caches unhealthy"
		}
		return Result{Status: status, Message: message, Details: details, Timestamp: time.Now()}
	})
}
