package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// inflightTracker records how many tasks are running at once and the
// highest value ever observed.
type inflightTracker struct {
	current atomic.Int32
	peak    atomic.Int32
}

func (t *inflightTracker) enter() {
	n := t.current.Add(1)
	for {
		p := t.peak.Load()
		if n <= p || t.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (t *inflightTracker) leave() {
	t.current.Add(-1)
}

// startLog records the order in which tasks begin running.
type startLog struct {
	mu    sync.Mutex
	order []int
}

func (l *startLog) record(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = append(l.order, i)
}

func (l *startLog) snapshot() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.order...)
}

// sleepTask returns value after sleeping d, tracking in-flight counts.
func sleepTask(tr *inflightTracker, d time.Duration, value int) Task[int] {
	return func(ctx context.Context) (int, error) {
		tr.enter()
		defer tr.leave()

		select {
		case <-time.After(d):
			return value, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// flaky fails with a fresh error on every call until it has been called
// succeedOn times. A succeedOn of 0 never succeeds.
type flaky struct {
	succeedOn int32
	value     int

	calls atomic.Int32
	mu    sync.Mutex
	errs  []error
}

func (f *flaky) task(ctx context.Context) (int, error) {
	n := f.calls.Add(1)
	if f.succeedOn > 0 && n >= f.succeedOn {
		return f.value, nil
	}

	err := fmt.Errorf("attempt %d failed", n)
	f.mu.Lock()
	f.errs = append(f.errs, err)
	f.mu.Unlock()
	return 0, err
}

func (f *flaky) lastErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs[len(f.errs)-1]
}
