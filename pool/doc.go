// Package pool provides small, generic building blocks for running
// independently failable asynchronous work.
//
// A Task is a zero-argument operation that yields a value or an error.
// The package runs tasks under three policies: fixed-delay retry,
// bounded parallelism and deadlines, and adds a debounce gate that
// coalesces bursts of calls into one.
//
// # Retry
//
// Retry invokes a task and, on failure, waits a fixed delay before trying
// again. A task that always fails is invoked maxRetries+1 times and the
// last error is returned unchanged:
//
//	v, err := pool.Retry(ctx, fetch, 3, 100*time.Millisecond)
//
// # Bounded Parallelism
//
// RunBounded starts tasks in input order with at most limit in flight.
// Failures never cancel siblings; each task gets its own Outcome and the
// i-th outcome always belongs to the i-th task:
//
//	outcomes, err := pool.RunBounded(ctx, tasks, 2)
//	for _, o := range outcomes {
//	    if !o.Ok() {
//	        log.Printf("task %d: %v", o.Index, o.Err)
//	    }
//	}
//
// The returned error is non-nil only for malformed arguments
// (ErrInvalidArgument), which are rejected before any task starts.
//
// # Timeouts
//
// WithTimeout races a task against a deadline and fails with
// ErrTimeoutExceeded when the deadline wins. The task is not stopped: it
// sees its context expire and is abandoned by the wrapper.
//
// # Debounce
//
// A Debouncer delays a function until its window has passed without new
// calls. Every caller of one burst receives the result of the single
// invocation, made with the arguments of the last call:
//
//	save, _ := pool.NewDebouncer(persist, 300*time.Millisecond)
//	go save.Call(ctx, draft1)
//	go save.Call(ctx, draft2) // only draft2 is persisted
//
// # Runner
//
// Runner bundles the policies behind functional options, the same way the
// examples in this repository configure a pool of workers:
//
//	r := pool.NewRunner[Result](
//	    pool.WithConcurrency(4),
//	    pool.WithRetryPolicy(3, 100*time.Millisecond),
//	    pool.WithTaskTimeout(2*time.Second),
//	    pool.WithRateLimit(10, 5),
//	)
//	outcomes, err := r.Run(ctx, tasks)
//
// Panics inside a task are recovered and reported as that task's failure
// (ErrTaskPanic) instead of crashing the process.
package pool
