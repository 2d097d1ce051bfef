// Command tasks demonstrates the pool package: retrying flaky calls,
// running a batch with bounded concurrency, per-call timeouts and a
// debounced handler.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/internal/config"
	"github.com/utkarsh5026/asynckit/pool"
)

// APIResult is what a simulated API call returns.
type APIResult struct {
	ID        int
	Data      string
	Timestamp time.Time
}

var errAPI = errors.New("api call failed")

// simulateAPICall waits up to 100ms and, when shouldFail is set, fails
// with the given probability.
func simulateAPICall(ctx context.Context, id int, shouldFail bool, failRate float64) (APIResult, error) {
	if err := pool.Delay(ctx, time.Duration(rand.IntN(100))*time.Millisecond); err != nil {
		return APIResult{}, err
	}

	if shouldFail && rand.Float64() < failRate {
		return APIResult{}, fmt.Errorf("%w: task %d", errAPI, id)
	}

	return APIResult{ID: id, Data: fmt.Sprintf("Result for task %d", id), Timestamp: time.Now()}, nil
}

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	taskCount := flag.Int("tasks", 20, "Number of tasks in the bounded run")
	limit := flag.Int("limit", 0, "Concurrency limit (overrides runner.concurrency)")
	failRate := flag.Float64("fail-rate", 0.3, "Probability that a simulated call fails")
	flag.Parse()

	cfg, log, err := cli.Bootstrap(*configFile)
	if err != nil {
		cli.Fail(err)
	}
	if *limit > 0 {
		cfg.Runner.Concurrency = *limit
	}

	ctx := context.Background()
	start := time.Now()

	cli.ColorPrintLn(cli.Bold, "⚡ Async Task Queue Example")

	processTasksWithRetry(ctx, *failRate)

	if err := processTasksConcurrently(ctx); err != nil {
		cli.Fail(err)
	}

	if err := runBatch(ctx, cfg.Runner, log, *taskCount, *failRate); err != nil {
		cli.Fail(err)
	}

	if err := timeoutAndDebounce(ctx); err != nil {
		cli.Fail(err)
	}

	fmt.Println()
	cli.ColorPrintf(cli.Bold, "⏱️  Total execution time: %v\n", time.Since(start).Round(time.Millisecond))
}

func processTasksWithRetry(ctx context.Context, failRate float64) {
	cli.SectionHeader("🔄 RETRY", "Each call is retried up to 3 times, 100ms apart")

	for id := 1; id <= 5; id++ {
		result, err := pool.Retry(ctx, func(ctx context.Context) (APIResult, error) {
			return simulateAPICall(ctx, id, true, failRate)
		}, 3, 100*time.Millisecond, pool.WithRetryHook(func(attempt int, err error) {
			cli.ColorPrintf(cli.Yellow, "  ↻ task %d attempt %d failed: %v\n", id, attempt, err)
		}))

		if err != nil {
			cli.ColorPrintf(cli.Red, "❌ Task %d failed after retries\n", id)
			continue
		}
		cli.ColorPrintf(cli.Green, "✅ Task %d completed: %s\n", id, result.Data)
	}
}

func processTasksConcurrently(ctx context.Context) error {
	cli.SectionHeader("🚀 BOUNDED RUN", "Six tasks, at most two in flight")

	tasks := make([]pool.Task[APIResult], 6)
	for i := range tasks {
		id := i + 1
		tasks[i] = func(ctx context.Context) (APIResult, error) {
			fmt.Printf("  ▶ Starting task %d\n", id)
			r, err := simulateAPICall(ctx, id, false, 0)
			fmt.Printf("  ✅ Completed task %d\n", id)
			return r, err
		}
	}

	outcomes, err := pool.RunBounded(ctx, tasks, 2)
	if err != nil {
		return err
	}

	values, err := pool.Values(outcomes)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Printf("  %d → %s\n", v.ID, v.Data)
	}
	return nil
}

type taskStats struct {
	started  time.Time
	elapsed  time.Duration
	attempts int
}

func runBatch(ctx context.Context, rc config.RunnerConfig, log *slog.Logger, n int, failRate float64) error {
	cli.SectionHeader("📦 RUNNER",
		fmt.Sprintf("  • Tasks: %d", n),
		fmt.Sprintf("  • Concurrency: %d", rc.Concurrency),
		fmt.Sprintf("  • Retries: %d (%s backoff from %v)", rc.MaxRetries, rc.Backoff, rc.RetryDelay))

	bar := progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Running tasks"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)

	var mu sync.Mutex
	stats := make([]taskStats, n)

	opts := append(rc.Options(),
		pool.WithLogger(log),
		pool.WithBeforeTaskStart(func(index int) {
			mu.Lock()
			stats[index].started = time.Now()
			stats[index].attempts = 1
			mu.Unlock()
		}),
		pool.WithOnRetry(func(index, attempt int, _ error) {
			mu.Lock()
			stats[index].attempts = attempt + 1
			mu.Unlock()
		}),
		pool.WithOnTaskEnd(func(index int, _ error) {
			mu.Lock()
			stats[index].elapsed = time.Since(stats[index].started)
			mu.Unlock()
			_ = bar.Add(1)
		}),
	)

	runner := pool.NewRunner[APIResult](opts...)
	tasks := make([]pool.Task[APIResult], n)
	for i := range tasks {
		id := i + 1
		tasks[i] = func(ctx context.Context) (APIResult, error) {
			return simulateAPICall(ctx, id, true, failRate)
		}
	}

	outcomes, err := runner.Run(ctx, tasks)
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	succeeded := 0
	rows := make([][]string, 0, n)
	for _, o := range outcomes {
		status := "✅ ok"
		if o.Ok() {
			succeeded++
		} else {
			status = "❌ " + o.Err.Error()
		}
		rows = append(rows, []string{
			strconv.Itoa(o.Index + 1),
			status,
			strconv.Itoa(stats[o.Index].attempts),
			stats[o.Index].elapsed.Round(time.Millisecond).String(),
		})
	}

	if err := cli.Table(os.Stdout, []string{"Task", "Status", "Attempts", "Time"}, rows); err != nil {
		cli.ColorPrintLn(cli.Red, "Error in rendering summary table")
	}

	fmt.Println()
	cli.ColorPrintf(cli.Green, "✅ %d/%d tasks succeeded\n", succeeded, n)
	return nil
}

func timeoutAndDebounce(ctx context.Context) error {
	cli.SectionHeader("⏳ TIMEOUT AND DEBOUNCE")

	_, err := pool.WithTimeout(ctx, func(ctx context.Context) (string, error) {
		if err := pool.Delay(ctx, 200*time.Millisecond); err != nil {
			return "", err
		}
		return "slow", nil
	}, 50*time.Millisecond)
	switch {
	case errors.Is(err, pool.ErrTimeoutExceeded):
		cli.ColorPrintf(cli.Yellow, "  slow call gave up: %v\n", err)
	case err != nil:
		return err
	}

	search, err := pool.NewDebouncer(func(_ context.Context, query string) (string, error) {
		return "results for " + query, nil
	}, 100*time.Millisecond)
	if err != nil {
		return err
	}
	defer search.Stop()

	var wg sync.WaitGroup
	for i, q := range []string{"g", "go", "gor", "goro", "gorou", "goroutine"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := search.Call(ctx, q)
			if err == nil && i == 0 {
				fmt.Printf("  typed 6 keystrokes, handler ran %d time(s): %s\n", search.Fires(), res)
			}
		}()
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	return nil
}
