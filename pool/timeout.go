package pool

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// WithTimeout runs op and returns its result if it resolves within d.
// Otherwise it fails with an error matching ErrTimeoutExceeded once d has
// elapsed.
//
// op is not forcibly stopped. It receives a context that expires after d,
// which it may honour, but the wrapper returns without waiting for it: a
// timed-out op keeps running in the background and its result is dropped.
// Callers must treat any side effects it still performs as outside their
// control.
//
// If ctx ends first, ctx.Err() is returned.
func WithTimeout[R any](ctx context.Context, op Task[R], d time.Duration) (R, error) {
	var zero R
	if op == nil {
		return zero, invalidArgf("operation is nil")
	}
	if err := checkDuration("timeout", d); err != nil {
		return zero, err
	}

	type result struct {
		value R
		err   error
	}

	opCtx, cancel := context.WithTimeout(ctx, d)
	// Buffered so an abandoned op can still deliver and exit.
	done := make(chan result, 1)

	go func() {
		defer cancel()
		value, err := protect(opCtx, op)
		done <- result{value: value, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case r := <-done:
		// An op that gave up because its context hit the deadline lost the
		// race, even if it reported back before our own timer fired.
		if r.err != nil && errors.Is(opCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, timeoutError(d)
		}
		return r.value, r.err
	case <-timer.C:
		return zero, timeoutError(d)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TimeoutTask wraps task so that every invocation is bounded by d.
func TimeoutTask[R any](task Task[R], d time.Duration) Task[R] {
	return func(ctx context.Context) (R, error) {
		return WithTimeout(ctx, task, d)
	}
}

func timeoutError(d time.Duration) error {
	return fmt.Errorf("%w after %s", ErrTimeoutExceeded, d)
}
