package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// executeFunc runs one task on behalf of the bounded runner. index is the
// task's position in the input.
type executeFunc[R any] func(ctx context.Context, index int, task Task[R]) (R, error)

// RunBounded runs tasks with at most limit of them in flight at any time
// and returns one Outcome per task, in input order.
//
// Tasks start in input order. Whenever a running task resolves, with a
// value or an error, the next unstarted task takes its slot. A failing
// task never cancels its siblings: its error becomes its outcome.
//
//   - limit >= len(tasks) runs everything at once
//   - limit == 1 runs the tasks strictly one after another
//   - an empty tasks slice returns an empty result immediately
//
// The error is non-nil only for limit < 1 or a nil task, and is reported
// before any task starts. When ctx ends, tasks that have not started yet
// are not invoked and carry ctx.Err() as their outcome.
func RunBounded[R any](ctx context.Context, tasks []Task[R], limit int) ([]Outcome[R], error) {
	if limit < 1 {
		return nil, invalidArgf("concurrency limit must be at least 1, got %d", limit)
	}
	if err := checkTasks(tasks); err != nil {
		return nil, err
	}

	return runBounded(ctx, tasks, limit, func(ctx context.Context, _ int, task Task[R]) (R, error) {
		return task(ctx)
	}), nil
}

// runBounded dispatches from a single goroutine so that start order equals
// input order. errgroup's limit blocks the dispatcher in Go until one of
// the running tasks returns, which frees exactly one slot.
func runBounded[R any](ctx context.Context, tasks []Task[R], limit int, exec executeFunc[R]) []Outcome[R] {
	outcomes := make([]Outcome[R], len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(tasks); j++ {
				outcomes[j] = Outcome[R]{Err: err, Index: j}
			}
			break
		}

		g.Go(func() error {
			// The slot may have been granted after ctx ended.
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome[R]{Err: err, Index: i}
				return nil
			}
			value, err := protect[R](ctx, func(ctx context.Context) (R, error) {
				return exec(ctx, i, task)
			})
			// Each goroutine owns its own slot; no two writers share an index.
			outcomes[i] = Outcome[R]{Value: value, Err: err, Index: i}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
