package pool

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/time/rate"
)

// RunnerOption is a functional option for configuring a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	concurrency int
	maxRetries  int
	retryDelay  time.Duration
	backoffType BackoffType
	maxDelay    time.Duration
	jitter      float64
	taskTimeout time.Duration
	rateLimiter *rate.Limiter
	rateErr     error
	logger      *slog.Logger
	beforeStart func(index int)
	onTaskEnd   func(index int, err error)
	onRetry     func(index, attempt int, err error)
}

func defaultRunnerConfig() *runnerConfig {
	return &runnerConfig{
		concurrency: runtime.GOMAXPROCS(0),
		backoffType: BackoffConstant,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// validate rejects malformed settings before any task starts.
func (c *runnerConfig) validate() error {
	if c.concurrency < 1 {
		return invalidArgf("concurrency limit must be at least 1, got %d", c.concurrency)
	}
	if c.maxRetries < 0 {
		return invalidArgf("max retries must not be negative, got %d", c.maxRetries)
	}
	if err := checkDuration("retry delay", c.retryDelay); err != nil {
		return err
	}
	if err := checkDuration("task timeout", c.taskTimeout); err != nil {
		return err
	}
	return c.rateErr
}

// WithConcurrency sets how many tasks may be in flight at once.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithConcurrency(limit int) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.concurrency = limit
	}
}

// WithRetryPolicy retries each failed task up to maxRetries times, waiting
// delay before every retry. Each task therefore runs at most maxRetries+1
// times. If not specified, no retries are performed.
func WithRetryPolicy(maxRetries int, delay time.Duration) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.maxRetries = maxRetries
		cfg.retryDelay = delay
	}
}

// WithBackoff changes how the retry delay evolves between attempts.
// The delay from WithRetryPolicy becomes the first step; maxDelay caps
// later ones (0 = no cap). jitter is only used by BackoffJittered.
//
// Example:
//
//	WithBackoff(BackoffExponential, 5*time.Second, 0) // 100ms, 200ms, 400ms, ...
func WithBackoff(t BackoffType, maxDelay time.Duration, jitter float64) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.backoffType = t
		cfg.maxDelay = maxDelay
		cfg.jitter = jitter
	}
}

// WithTaskTimeout bounds every attempt of every task by d. A timed-out
// attempt fails with ErrTimeoutExceeded and may be retried.
func WithTaskTimeout(d time.Duration) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.taskTimeout = d
	}
}

// WithRateLimit sets a token bucket for controlling how fast tasks start.
// tasksPerSecond specifies the sustained rate, burst the bucket size.
// This is useful for preventing overwhelming external services or APIs.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) RunnerOption {
	return func(cfg *runnerConfig) {
		if tasksPerSecond <= 0 || burst <= 0 {
			cfg.rateErr = invalidArgf("rate limit needs a positive rate and burst, got %v/%d", tasksPerSecond, burst)
			return
		}
		cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
	}
}

// WithLogger sets the logger used for retry and failure events.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(cfg *runnerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithBeforeTaskStart registers a hook called right before a task's first
// attempt, with the task's input index.
func WithBeforeTaskStart(fn func(index int)) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.beforeStart = fn
	}
}

// WithOnTaskEnd registers a hook called once a task has resolved, after
// all of its retries.
func WithOnTaskEnd(fn func(index int, err error)) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.onTaskEnd = fn
	}
}

// WithOnRetry registers a hook called for every failed attempt that will be
// retried. attempt is 1 for the first retry.
func WithOnRetry(fn func(index, attempt int, err error)) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.onRetry = fn
	}
}
