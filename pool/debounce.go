package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer coalesces bursts of calls into a single invocation of fn.
//
// Each Call restarts the window. When the window elapses with no further
// call, fn runs once with the arguments of the most recent call, and every
// caller of that burst receives its result. Debouncers are independent of
// each other; any number may coexist.
//
// Type parameters:
//   - A: The argument type passed to fn
//   - R: The result type returned by fn
type Debouncer[A any, R any] struct {
	fn     func(ctx context.Context, arg A) (R, error)
	window time.Duration

	mu      sync.Mutex
	pending *generation[A, R]
	seq     uint64
	stopped bool

	fires atomic.Int64
}

// generation is one burst of calls that will share a single fire.
type generation[A any, R any] struct {
	ctx   context.Context
	arg   A
	seq   uint64
	timer *time.Timer
	done  chan struct{} // closed once value and err are set

	value R
	err   error
}

// NewDebouncer creates a gate that runs fn after window has passed without
// a new call. A zero window fires as soon as the timer goroutine runs.
func NewDebouncer[A any, R any](fn func(ctx context.Context, arg A) (R, error), window time.Duration) (*Debouncer[A, R], error) {
	if fn == nil {
		return nil, invalidArgf("debounced function is nil")
	}
	if err := checkDuration("debounce window", window); err != nil {
		return nil, err
	}

	return &Debouncer[A, R]{
		fn:     fn,
		window: window,
	}, nil
}

// Call schedules fn with arg and blocks until the fire that covers this
// call has completed. A later call inside the window supersedes arg but the
// caller still receives the result of the eventual fire.
//
// If ctx ends first, Call returns ctx.Err() without cancelling the shared
// fire. fn runs with a context that carries the values of the last
// caller's ctx but not its cancellation.
func (d *Debouncer[A, R]) Call(ctx context.Context, arg A) (R, error) {
	var zero R

	g, err := d.schedule(ctx, arg)
	if err != nil {
		return zero, err
	}

	select {
	case <-g.done:
		return g.value, g.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Flush fires the pending generation immediately, if there is one, and
// reports whether it did.
func (d *Debouncer[A, R]) Flush() bool {
	d.mu.Lock()
	g := d.pending
	if g == nil {
		d.mu.Unlock()
		return false
	}
	g.timer.Stop()
	d.pending = nil
	d.mu.Unlock()

	d.run(g)
	return true
}

// Stop cancels the pending generation and rejects further calls. Callers
// waiting on the cancelled generation receive ErrDebouncerStopped.
func (d *Debouncer[A, R]) Stop() {
	d.mu.Lock()
	d.stopped = true
	g := d.pending
	d.pending = nil
	if g != nil {
		g.timer.Stop()
	}
	d.mu.Unlock()

	if g != nil {
		g.err = ErrDebouncerStopped
		close(g.done)
	}
}

// Pending reports whether a fire is currently scheduled.
func (d *Debouncer[A, R]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Fires returns how many times fn has been invoked.
func (d *Debouncer[A, R]) Fires() int64 {
	return d.fires.Load()
}

func (d *Debouncer[A, R]) schedule(ctx context.Context, arg A) (*generation[A, R], error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil, ErrDebouncerStopped
	}

	g := d.pending
	if g == nil {
		g = &generation[A, R]{done: make(chan struct{})}
		d.pending = g
	} else {
		// A callback that already fired but has not taken the lock yet
		// will see a newer seq and back off.
		g.timer.Stop()
	}

	d.seq++
	seq := d.seq
	g.seq = seq
	g.arg = arg
	g.ctx = context.WithoutCancel(ctx)
	g.timer = time.AfterFunc(d.window, func() {
		d.fire(g, seq)
	})

	return g, nil
}

func (d *Debouncer[A, R]) fire(g *generation[A, R], seq uint64) {
	d.mu.Lock()
	if d.pending != g || g.seq != seq {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.run(g)
}

// run invokes fn for a generation that has been detached from d.pending,
// so its ctx and arg are no longer written by schedule.
func (d *Debouncer[A, R]) run(g *generation[A, R]) {
	d.fires.Add(1)
	g.value, g.err = protect[R](g.ctx, func(ctx context.Context) (R, error) {
		return d.fn(ctx, g.arg)
	})
	close(g.done)
}
