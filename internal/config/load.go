package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/utkarsh5026/asynckit/internal/backoff"
	"github.com/utkarsh5026/asynckit/pool"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ASYNCKIT_RUNNER_CONCURRENCY.
const EnvPrefix = "ASYNCKIT"

var defaults = map[string]any{
	"log.level":  "info",
	"log.format": "text",

	"runner.concurrency":     4,
	"runner.max_retries":     3,
	"runner.retry_delay":     "100ms",
	"runner.backoff":         "constant",
	"runner.max_delay":       "0s",
	"runner.task_timeout":    "0s",
	"runner.rate_per_second": 0.0,
	"runner.burst":           0,

	"notes.path":   "notes.json",
	"profile.path": "profile.json",

	"turnaway.backend":    "file",
	"turnaway.path":       "turnaways.json",
	"turnaway.redis_addr": "",
	"turnaway.redis_key":  "shiftsmart-turnaways",
}

// Load reads configuration from environment variables and, when
// configFile is not empty, from that file (any format viper understands).
// Environment variables take precedence over the file; the file takes
// precedence over defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Options converts the runner settings into pool.Runner options.
// A zero rate disables rate limiting; a zero task timeout disables the
// per-attempt timeout.
func (c RunnerConfig) Options() []pool.RunnerOption {
	opts := []pool.RunnerOption{
		pool.WithConcurrency(c.Concurrency),
		pool.WithRetryPolicy(c.MaxRetries, c.RetryDelay),
	}

	if t, ok := backoff.Parse(c.Backoff); ok && t != backoff.Constant {
		opts = append(opts, pool.WithBackoff(t, c.MaxDelay, 0.2))
	}
	if c.TaskTimeout > 0 {
		opts = append(opts, pool.WithTaskTimeout(c.TaskTimeout))
	}
	if c.RatePerSecond > 0 {
		burst := max(c.Burst, 1)
		opts = append(opts, pool.WithRateLimit(c.RatePerSecond, burst))
	}

	return opts
}
