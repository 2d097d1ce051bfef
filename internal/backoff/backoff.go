// Package backoff computes the wait between retry attempts.
//
// The retry helpers in package pool default to Constant, which waits the
// same delay before every retry. The other strategies are opt-in.
package backoff

import (
	"math/rand/v2"
	"time"
)

// maxShift caps the exponent so the shifted delay cannot overflow int64.
const maxShift = 62

// Type selects a Strategy implementation.
type Type int

const (
	// Constant waits the base delay before every retry.
	Constant Type = iota
	// Linear waits base * (attempt + 1), capped at the max delay.
	Linear
	// Exponential waits base * 2^attempt, capped at the max delay.
	Exponential
	// Jittered is Exponential scaled by a random factor in [1-j, 1+j].
	Jittered
)

// String returns the lower-case name used in configuration files.
func (t Type) String() string {
	switch t {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	case Jittered:
		return "jittered"
	default:
		return "unknown"
	}
}

// Parse maps a configuration name back to its Type.
// Unknown names report ok == false.
func Parse(name string) (Type, bool) {
	switch name {
	case "", "constant", "fixed":
		return Constant, true
	case "linear":
		return Linear, true
	case "exponential":
		return Exponential, true
	case "jittered":
		return Jittered, true
	default:
		return Constant, false
	}
}

// Strategy returns how long to wait before a retry.
type Strategy interface {
	// NextDelay is 0-indexed: attempt 0 is the first retry after the
	// initial failure.
	NextDelay(attempt int) time.Duration
}

// New builds the strategy for t. A maxDelay of zero or less means no cap.
// jitter is clamped to [0, 1] and only used by Jittered.
func New(t Type, base, maxDelay time.Duration, jitter float64) Strategy {
	if maxDelay <= 0 {
		maxDelay = time.Duration(1<<63 - 1)
	}

	switch t {
	case Linear:
		return &linearBackoff{base: base, maxDelay: maxDelay}
	case Exponential:
		return &exponentialBackoff{base: base, maxDelay: maxDelay}
	case Jittered:
		return &jitteredBackoff{base: base, maxDelay: maxDelay, jitter: clamp(jitter, 0, 1)}
	default:
		return constantBackoff(base)
	}
}

type constantBackoff time.Duration

func (c constantBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}
	return time.Duration(c)
}

type linearBackoff struct {
	base, maxDelay time.Duration
}

func (l *linearBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}

	steps := time.Duration(attempt + 1)
	if l.base > 0 && steps > l.maxDelay/l.base {
		return l.maxDelay
	}
	return min(l.base*steps, l.maxDelay)
}

type exponentialBackoff struct {
	base, maxDelay time.Duration
}

func (e *exponentialBackoff) NextDelay(attempt int) time.Duration {
	return exponentialDelay(attempt, e.base, e.maxDelay)
}

// jitteredBackoff spreads simultaneous retries apart.
// With jitter 0.1 a 1s step becomes a value in [900ms, 1100ms].
type jitteredBackoff struct {
	base, maxDelay time.Duration
	jitter         float64
}

func (j *jitteredBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}

	step := exponentialDelay(attempt, j.base, j.maxDelay)
	factor := 1 + (rand.Float64()*2-1)*j.jitter // #nosec G404 -- jitter does not need crypto rand
	return clamp(time.Duration(float64(step)*factor), 0, j.maxDelay)
}

func exponentialDelay(attempt int, base, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		return 0
	}
	if attempt >= maxShift {
		return maxDelay
	}

	delay := base << uint(attempt)
	if delay < 0 || delay>>uint(attempt) != base || delay > maxDelay {
		return maxDelay
	}
	return delay
}

func clamp[T ~int64 | ~float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
