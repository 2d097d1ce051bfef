// Package config loads the settings shared by the command-line tools from
// environment variables and an optional config file. Library packages never
// read it; they take plain options built from it.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Runner   RunnerConfig   `mapstructure:"runner" validate:"required"`
	Notes    NotesConfig    `mapstructure:"notes" validate:"required"`
	Profile  ProfileConfig  `mapstructure:"profile" validate:"required"`
	Turnaway TurnawayConfig `mapstructure:"turnaway" validate:"required"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// RunnerConfig holds the defaults for pool.Runner in the task demo.
type RunnerConfig struct {
	Concurrency   int           `mapstructure:"concurrency" validate:"gte=1"`
	MaxRetries    int           `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	Backoff       string        `mapstructure:"backoff" validate:"oneof=constant fixed linear exponential jittered"`
	MaxDelay      time.Duration `mapstructure:"max_delay" validate:"gte=0"`
	TaskTimeout   time.Duration `mapstructure:"task_timeout" validate:"gte=0"`
	RatePerSecond float64       `mapstructure:"rate_per_second" validate:"gte=0"`
	Burst         int           `mapstructure:"burst" validate:"gte=0"`
}

// NotesConfig locates the notes file.
type NotesConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ProfileConfig locates the profile file.
type ProfileConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TurnawayConfig selects the turnaway storage backend.
type TurnawayConfig struct {
	Backend   string `mapstructure:"backend" validate:"required,oneof=memory file redis"`
	Path      string `mapstructure:"path" validate:"required_if=Backend file"`
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisKey  string `mapstructure:"redis_key" validate:"required"`
}
