package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDebouncer_InvalidArguments(t *testing.T) {
	if _, err := NewDebouncer[int, int](nil, time.Millisecond); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil fn: expected ErrInvalidArgument, got %v", err)
	}

	fn := func(ctx context.Context, n int) (int, error) { return n, nil }
	if _, err := NewDebouncer(fn, -time.Millisecond); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative window: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDebouncer_SingleCall(t *testing.T) {
	d, err := NewDebouncer(func(ctx context.Context, s string) (int, error) {
		return len(s), nil
	}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	got, err := d.Call(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("fired before the window elapsed: %v", elapsed)
	}
	if d.Fires() != 1 {
		t.Errorf("expected 1 fire, got %d", d.Fires())
	}
}

// Calls at t=0, 50, 80 with a 100ms window fire once at ~180ms with the
// arguments of the last call.
func TestDebouncer_BurstFiresOnceWithLastArgs(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	d, err := NewDebouncer(func(ctx context.Context, s string) (string, error) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
		return "got " + s, nil
	}, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	results := make([]string, 3)
	var wg sync.WaitGroup
	for i, call := range []struct {
		at  time.Duration
		arg string
	}{{0, "a"}, {50 * time.Millisecond, "b"}, {80 * time.Millisecond, "c"}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(call.at)
			v, err := d.Call(context.Background(), call.arg)
			if err != nil {
				t.Errorf("call %d: unexpected error: %v", i, err)
			}
			results[i] = v
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "c" {
		t.Fatalf("expected a single invocation with %q, got %v", "c", seen)
	}
	for i, r := range results {
		if r != "got c" {
			t.Errorf("caller %d got %q, want %q", i, r, "got c")
		}
	}
	if elapsed < 180*time.Millisecond {
		t.Errorf("fired at %v, expected no earlier than 180ms", elapsed)
	}
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	var calls atomic.Int32
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return n * 2, nil
	}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 3; i++ {
		got, err := d.Call(context.Background(), i)
		if err != nil {
			t.Fatalf("burst %d: unexpected error: %v", i, err)
		}
		if got != i*2 {
			t.Errorf("burst %d: expected %d, got %d", i, i*2, got)
		}
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 invocations, got %d", calls.Load())
	}
}

func TestDebouncer_ErrorSharedByBurst(t *testing.T) {
	fnErr := errors.New("debounced fn failed")
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		return 0, fnErr
	}, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Call(context.Background(), i); err != fnErr {
				t.Errorf("caller %d: expected fn error, got %v", i, err)
			}
		}()
	}
	wg.Wait()

	if d.Fires() != 1 {
		t.Errorf("expected 1 fire, got %d", d.Fires())
	}
}

func TestDebouncer_IndependentInstances(t *testing.T) {
	mk := func(tag string) *Debouncer[int, string] {
		d, err := NewDebouncer(func(ctx context.Context, n int) (string, error) {
			return tag, nil
		}, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return d
	}
	a, b := mk("a"), mk("b")

	var wg sync.WaitGroup
	var ra, rb string
	wg.Add(2)
	go func() { defer wg.Done(); ra, _ = a.Call(context.Background(), 1) }()
	go func() { defer wg.Done(); rb, _ = b.Call(context.Background(), 1) }()
	wg.Wait()

	if ra != "a" || rb != "b" {
		t.Errorf("results crossed between debouncers: a=%q b=%q", ra, rb)
	}
	if a.Fires() != 1 || b.Fires() != 1 {
		t.Errorf("expected one fire each, got a=%d b=%d", a.Fires(), b.Fires())
	}
}

func TestDebouncer_CallerContextCancelled(t *testing.T) {
	var calls atomic.Int32
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	}, 80*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := d.Call(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}

	// The fire still happens for the burst.
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("expected the pending fire to run, got %d invocations", calls.Load())
	}
}

func TestDebouncer_Flush(t *testing.T) {
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Flush() {
		t.Error("Flush with nothing pending should report false")
	}

	result := make(chan int, 1)
	go func() {
		v, _ := d.Call(context.Background(), 41)
		result <- v
	}()

	deadline := time.Now().Add(time.Second)
	for !d.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("call never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	if !d.Flush() {
		t.Fatal("Flush should fire the pending call")
	}

	select {
	case v := <-result:
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("flushed call did not return")
	}
	if d.Pending() {
		t.Error("nothing should be pending after Flush")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errc := make(chan error, 1)
	go func() {
		_, err := d.Call(context.Background(), 1)
		errc <- err
	}()

	for !d.Pending() {
		time.Sleep(time.Millisecond)
	}
	d.Stop()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrDebouncerStopped) {
			t.Errorf("waiting caller: expected ErrDebouncerStopped, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("waiting caller was not released by Stop")
	}

	if _, err := d.Call(context.Background(), 2); !errors.Is(err, ErrDebouncerStopped) {
		t.Errorf("call after Stop: expected ErrDebouncerStopped, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn must not run after Stop, ran %d times", calls.Load())
	}
}

func TestDebouncer_PanicDeliveredToCallers(t *testing.T) {
	d, err := NewDebouncer(func(ctx context.Context, n int) (int, error) {
		panic("debounced panic")
	}, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := d.Call(context.Background(), 1); !errors.Is(err, ErrTaskPanic) {
		t.Errorf("expected ErrTaskPanic, got %v", err)
	}
}
