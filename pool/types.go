package pool

import "context"

// Task is a unit of asynchronous work. It is invoked with a context for
// cancellation and returns a value or an error. Tasks given to Retry may
// run more than once, so they must be safe to invoke repeatedly.
type Task[R any] func(ctx context.Context) (R, error)

// ProcessFunc turns one input item into a result.
//
// Type parameters:
//   - T: The type of input item
//   - R: The type of result produced
type ProcessFunc[T any, R any] func(ctx context.Context, item T) (R, error)

// Outcome is the result of exactly one task: either the success variant
// (Err == nil, Value set) or the failure variant (Err set).
//
// Fields:
//   - Value: The task's value (zero when Err is non-nil)
//   - Err: The task's own error, propagated unchanged
//   - Index: Position of the task in the input slice
type Outcome[R any] struct {
	Value R
	Err   error
	Index int
}

// Ok reports whether the outcome is the success variant.
func (o Outcome[R]) Ok() bool {
	return o.Err == nil
}

// Get returns the value and error as a regular Go result pair.
func (o Outcome[R]) Get() (R, error) {
	return o.Value, o.Err
}

// Tasks binds each item to fn, producing one task per item in order.
//
// Example:
//
//	tasks := pool.Tasks([]string{"a", "b"}, fetch)
//	outcomes, err := pool.RunBounded(ctx, tasks, 2)
func Tasks[T any, R any](items []T, fn ProcessFunc[T, R]) []Task[R] {
	tasks := make([]Task[R], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		}
	}
	return tasks
}

// Values splits outcomes into the successful values and the first error.
// Values of failed outcomes are left as the zero value at their index.
func Values[R any](outcomes []Outcome[R]) ([]R, error) {
	values := make([]R, len(outcomes))
	var firstErr error
	for i, o := range outcomes {
		if o.Err != nil {
			if firstErr == nil {
				firstErr = o.Err
			}
			continue
		}
		values[i] = o.Value
	}
	return values, firstErr
}
