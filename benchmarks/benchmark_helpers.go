package benchmarks

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/asynckit/pool"
)

// runnerConfig names a set of Runner options to benchmark.
type runnerConfig struct {
	name string
	opts []pool.RunnerOption
}

// getRunnerConfigs returns the Runner variants compared in the benchmarks:
// plain bounded execution, then each optional stage switched on.
func getRunnerConfigs(limit int) []runnerConfig {
	return []runnerConfig{
		{
			name: "Plain",
			opts: []pool.RunnerOption{
				pool.WithConcurrency(limit),
			},
		},
		{
			name: "Retry",
			opts: []pool.RunnerOption{
				pool.WithConcurrency(limit),
				pool.WithRetryPolicy(3, 0),
			},
		},
		{
			name: "Timeout",
			opts: []pool.RunnerOption{
				pool.WithConcurrency(limit),
				pool.WithTaskTimeout(time.Second),
			},
		},
		{
			name: "Hooks",
			opts: []pool.RunnerOption{
				pool.WithConcurrency(limit),
				pool.WithBeforeTaskStart(func(int) {}),
				pool.WithOnTaskEnd(func(int, error) {}),
			},
		},
		{
			name: "All",
			opts: []pool.RunnerOption{
				pool.WithConcurrency(limit),
				pool.WithRetryPolicy(3, 0),
				pool.WithTaskTimeout(time.Second),
				pool.WithBeforeTaskStart(func(int) {}),
				pool.WithOnTaskEnd(func(int, error) {}),
			},
		},
	}
}

// makeTasks binds fn to the integers 0..n-1.
func makeTasks(n int, fn pool.ProcessFunc[int, int]) []pool.Task[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return pool.Tasks(items, fn)
}

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations int) pool.ProcessFunc[int, int] {
	return func(ctx context.Context, task int) (int, error) {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) pool.ProcessFunc[int, int] {
	return func(ctx context.Context, task int) (int, error) {
		if err := pool.Delay(ctx, delay); err != nil {
			return 0, err
		}
		return task * 2, nil
	}
}

// errorProneWork fails the first attempt of a task with probability
// errorRate; later attempts succeed.
func errorProneWork(errorRate float64) pool.ProcessFunc[int, int] {
	var attempts sync.Map
	return func(ctx context.Context, task int) (int, error) {
		val, _ := attempts.LoadOrStore(task, new(atomic.Int32))
		count := val.(*atomic.Int32).Add(1)

		if count == 1 && rand.Float64() < errorRate {
			return 0, fmt.Errorf("simulated error for task %d", task)
		}
		return task * 2, nil
	}
}

// reportThroughput adds a tasks/sec metric for taskCount tasks per op.
func reportThroughput(b interface {
	Elapsed() time.Duration
	ReportMetric(float64, string)
}, n, taskCount int) float64 {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(n)
	tasksPerSec := (float64(taskCount) / nsPerOp) * 1e9
	b.ReportMetric(tasksPerSec, "tasks/sec")
	return tasksPerSec
}
