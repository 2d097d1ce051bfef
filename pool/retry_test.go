package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	f := &flaky{succeedOn: 1, value: 42}

	got, err := Retry(context.Background(), f.task, 3, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	// Should only execute once since it succeeded on first attempt
	if f.calls.Load() != 1 {
		t.Errorf("expected 1 attempt, got %d", f.calls.Load())
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	f := &flaky{succeedOn: 3, value: 7}

	start := time.Now()
	got, err := Retry(context.Background(), f.task, 3, 100*time.Millisecond)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("expected 7, got %d", got)
	}

	// fail, fail, succeed
	if f.calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", f.calls.Load())
	}

	// Two fixed waits of 100ms each
	if elapsed < 200*time.Millisecond {
		t.Errorf("expected at least 200ms elapsed, got %v", elapsed)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	for _, maxRetries := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			f := &flaky{}

			_, err := Retry(context.Background(), f.task, maxRetries, time.Millisecond)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if got, want := f.calls.Load(), int32(maxRetries+1); got != want {
				t.Errorf("maxRetries=%d: expected %d attempts, got %d", maxRetries, want, got)
			}

			// The very error value of the last attempt, not a wrapper or aggregate
			if err != f.lastErr() {
				t.Errorf("expected last error %v, got %v", f.lastErr(), err)
			}
		})
	}
}

func TestRetry_ZeroRetriesPropagatesVerbatim(t *testing.T) {
	sentinel := errors.New("boom")
	var calls atomic.Int32

	start := time.Now()
	_, err := Retry(context.Background(), func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", sentinel
	}, 0, time.Second)

	if err != sentinel {
		t.Errorf("expected sentinel error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls.Load())
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("no delay should be applied when no retry follows")
	}
}

func TestRetry_FixedDelayBetweenAttempts(t *testing.T) {
	var (
		calls int
		times []time.Time
	)
	_, _ = Retry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		times = append(times, time.Now())
		return 0, errors.New("fail")
	}, 3, 50*time.Millisecond)

	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}

	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])
		if gap < 50*time.Millisecond {
			t.Errorf("gap before attempt %d = %v, want >= 50ms", i+1, gap)
		}
		// Not exponential: the third gap would be 200ms otherwise
		if gap > 180*time.Millisecond {
			t.Errorf("gap before attempt %d = %v, expected a fixed delay", i+1, gap)
		}
	}
}

func TestRetry_WithExponentialBackoff(t *testing.T) {
	f := &flaky{succeedOn: 3, value: 1}

	start := time.Now()
	_, err := Retry(context.Background(), f.task, 3, 50*time.Millisecond,
		WithRetryBackoff(BackoffExponential, time.Second, 0))
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 50ms + 100ms
	if elapsed < 150*time.Millisecond {
		t.Errorf("expected at least 150ms elapsed, got %v", elapsed)
	}
}

func TestRetry_Hook(t *testing.T) {
	f := &flaky{succeedOn: 3}

	var attempts []int
	_, err := Retry(context.Background(), f.task, 5, time.Millisecond,
		WithRetryHook(func(attempt int, err error) {
			if err == nil {
				t.Error("hook called with nil error")
			}
			attempts = append(attempts, attempt)
		}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("expected hook attempts [1 2], got %v", attempts)
	}
}

func TestRetry_InvalidArguments(t *testing.T) {
	ok := func(ctx context.Context) (int, error) { return 1, nil }

	tests := []struct {
		name       string
		task       Task[int]
		maxRetries int
		delay      time.Duration
	}{
		{"nil task", nil, 1, 0},
		{"negative retries", ok, -1, 0},
		{"negative delay", ok, 1, -time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Retry(context.Background(), tt.task, tt.maxRetries, tt.delay)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRetry_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := &flaky{}

	start := time.Now()
	_, err := Retry(ctx, f.task, 10, time.Second)
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("retry should stop waiting when ctx ends, took %v", elapsed)
	}
	if f.calls.Load() != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", f.calls.Load())
	}
}
