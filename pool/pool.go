package pool

import (
	"context"
	"maps"
	"slices"

	"github.com/utkarsh5026/asynckit/internal/backoff"
)

// Runner runs batches of tasks under a concurrency limit, with optional
// retry, per-attempt timeout, rate limiting and lifecycle hooks.
// A Runner holds no per-run state and may be used for many runs, including
// concurrent ones.
//
// Type parameters:
//   - R: The result type of the tasks
type Runner[R any] struct {
	conf    *runnerConfig
	backoff backoff.Strategy
}

// NewRunner creates a Runner with the given options.
//
// Default configuration:
//   - concurrency: runtime.GOMAXPROCS(0)
//   - retries: 0 (one attempt per task)
//   - backoff: constant (same delay before every retry)
//   - task timeout, rate limit: none
//
// Invalid option values are reported by Run, before any task starts.
//
// Example:
//
//	r := NewRunner[string](
//	    WithConcurrency(2),
//	    WithRetryPolicy(3, 100*time.Millisecond),
//	)
func NewRunner[R any](opts ...RunnerOption) *Runner[R] {
	cfg := defaultRunnerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Runner[R]{
		conf:    cfg,
		backoff: backoff.New(cfg.backoffType, cfg.retryDelay, cfg.maxDelay, cfg.jitter),
	}
}

// Concurrency returns the configured in-flight limit.
func (r *Runner[R]) Concurrency() int {
	return r.conf.concurrency
}

// Run executes tasks and returns one Outcome per task in input order.
// It has the same ordering and limit guarantees as RunBounded; every task
// additionally goes through the configured rate limit, hooks, retry policy
// and per-attempt timeout.
//
// The error is non-nil only when the configuration or the task slice is
// invalid (ErrInvalidArgument). Task failures are reported in the outcomes.
func (r *Runner[R]) Run(ctx context.Context, tasks []Task[R]) ([]Outcome[R], error) {
	if err := r.conf.validate(); err != nil {
		return nil, err
	}
	if err := checkTasks(tasks); err != nil {
		return nil, err
	}

	return runBounded(ctx, tasks, r.conf.concurrency, r.execute), nil
}

// RunKeyed is like Run but takes tasks keyed by name. Tasks start in
// ascending key order and Outcome.Index is the key's position in that
// order.
//
// Example:
//
//	outcomes, err := r.RunKeyed(ctx, map[string]Task[int]{"a": taskA, "b": taskB})
//	// outcomes["a"].Value, outcomes["b"].Err, ...
func (r *Runner[R]) RunKeyed(ctx context.Context, tasks map[string]Task[R]) (map[string]Outcome[R], error) {
	keys := slices.Sorted(maps.Keys(tasks))
	ordered := make([]Task[R], len(keys))
	for i, k := range keys {
		ordered[i] = tasks[k]
	}

	outcomes, err := r.Run(ctx, ordered)
	if err != nil {
		return nil, err
	}

	keyed := make(map[string]Outcome[R], len(keys))
	for i, k := range keys {
		keyed[k] = outcomes[i]
	}
	return keyed, nil
}

// execute is the per-task pipeline: rate limit, start hook, retry loop
// around the (optionally time-bounded) task, end hook.
func (r *Runner[R]) execute(ctx context.Context, index int, task Task[R]) (R, error) {
	var zero R
	conf := r.conf

	if conf.rateLimiter != nil {
		if err := conf.rateLimiter.Wait(ctx); err != nil {
			// Rate limiter's error doesn't wrap context errors, so check context explicitly
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, err
		}
	}

	if conf.beforeStart != nil {
		conf.beforeStart(index)
	}

	// A panicking attempt counts as a failed attempt.
	attempt := Task[R](func(ctx context.Context) (R, error) {
		return protect(ctx, task)
	})
	if conf.taskTimeout > 0 {
		attempt = TimeoutTask(task, conf.taskTimeout)
	}

	result, err := retry(ctx, attempt, conf.maxRetries, r.backoff, func(n int, err error) {
		conf.logger.Debug("retrying task", "index", index, "attempt", n, "error", err)
		if conf.onRetry != nil {
			conf.onRetry(index, n, err)
		}
	})
	if err != nil {
		conf.logger.Warn("task failed", "index", index, "max_attempts", conf.maxRetries+1, "error", err)
	}

	if conf.onTaskEnd != nil {
		conf.onTaskEnd(index, err)
	}

	return result, err
}
