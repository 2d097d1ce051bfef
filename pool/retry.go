package pool

import (
	"context"
	"time"

	"github.com/utkarsh5026/asynckit/internal/backoff"
)

// BackoffType selects how the wait between retries evolves.
type BackoffType = backoff.Type

const (
	// BackoffConstant waits the same delay before every retry (default).
	BackoffConstant = backoff.Constant
	// BackoffLinear grows the delay by one step per retry.
	BackoffLinear = backoff.Linear
	// BackoffExponential doubles the delay on every retry.
	BackoffExponential = backoff.Exponential
	// BackoffJittered is exponential with ±jitter randomisation.
	BackoffJittered = backoff.Jittered
)

// RetryOption customises Retry.
type RetryOption func(*retryConfig)

type retryConfig struct {
	backoffType BackoffType
	maxDelay    time.Duration
	jitter      float64
	onRetry     func(attempt int, err error)
}

// WithRetryBackoff replaces the fixed delay with a growing one. The delay
// passed to Retry becomes the first step; maxDelay caps it (0 = no cap).
func WithRetryBackoff(t BackoffType, maxDelay time.Duration, jitter float64) RetryOption {
	return func(cfg *retryConfig) {
		cfg.backoffType = t
		cfg.maxDelay = maxDelay
		cfg.jitter = jitter
	}
}

// WithRetryHook registers fn to observe every failed attempt that will be
// retried. attempt is 1 for the first retry.
func WithRetryHook(fn func(attempt int, err error)) RetryOption {
	return func(cfg *retryConfig) {
		cfg.onRetry = fn
	}
}

// Retry invokes task and retries it on failure up to maxRetries times,
// waiting delay before each retry. The first success is returned at once.
// When every attempt fails, the error of the last attempt is returned
// unchanged, so errors.Is and == comparisons against it keep working.
//
// maxRetries == 0 performs exactly one attempt. Negative arguments fail
// with ErrInvalidArgument without invoking task. If ctx ends while
// waiting, ctx.Err() is returned.
//
// Example:
//
//	user, err := pool.Retry(ctx, func(ctx context.Context) (User, error) {
//	    return api.GetUser(ctx, id)
//	}, 3, 100*time.Millisecond)
func Retry[R any](
	ctx context.Context,
	task Task[R],
	maxRetries int,
	delay time.Duration,
	opts ...RetryOption,
) (R, error) {
	var zero R
	if task == nil {
		return zero, invalidArgf("task is nil")
	}
	if maxRetries < 0 {
		return zero, invalidArgf("max retries must not be negative, got %d", maxRetries)
	}
	if err := checkDuration("retry delay", delay); err != nil {
		return zero, err
	}

	cfg := retryConfig{backoffType: BackoffConstant}
	for _, opt := range opts {
		opt(&cfg)
	}

	strategy := backoff.New(cfg.backoffType, delay, cfg.maxDelay, cfg.jitter)
	return retry(ctx, task, maxRetries, strategy, cfg.onRetry)
}

// retry is the attempt loop shared by Retry and Runner. Attempts for one
// task never overlap.
func retry[R any](
	ctx context.Context,
	task Task[R],
	maxRetries int,
	strategy backoff.Strategy,
	onRetry func(attempt int, err error),
) (R, error) {
	var zero R

	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := task(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= maxRetries {
			return zero, err
		}

		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		if wait := strategy.NextDelay(attempt); wait > 0 {
			if derr := Delay(ctx, wait); derr != nil {
				return zero, derr
			}
		}
	}
}
