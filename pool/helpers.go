package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
)

var (
	// ErrInvalidArgument reports a malformed limit, attempt count, duration
	// or task. It is returned before any task starts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTimeoutExceeded reports that a deadline elapsed before the wrapped
	// task resolved.
	ErrTimeoutExceeded = errors.New("timeout exceeded")

	// ErrTaskPanic wraps a panic recovered from a task.
	ErrTaskPanic = errors.New("task panic")

	// ErrDebouncerStopped is returned to callers of a stopped Debouncer.
	ErrDebouncerStopped = errors.New("debouncer stopped")
)

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// protect runs task and converts a panic into an ErrTaskPanic carrying the
// panic value and the goroutine's stack trace.
func protect[R any](ctx context.Context, task Task[R]) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrTaskPanic, r, buf[:n])
		}
	}()

	return task(ctx)
}

func checkTasks[R any](tasks []Task[R]) error {
	for i, t := range tasks {
		if t == nil {
			return invalidArgf("task %d is nil", i)
		}
	}
	return nil
}

func checkDuration(name string, d time.Duration) error {
	if d < 0 {
		return invalidArgf("%s must not be negative, got %s", name, d)
	}
	return nil
}
