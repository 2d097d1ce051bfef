package pool

import (
	"context"
	"time"
)

// Delay blocks for at least d. It never returns early on its own; the only
// error besides a negative d is ctx ending first, in which case ctx.Err()
// is returned.
func Delay(ctx context.Context, d time.Duration) error {
	if err := checkDuration("delay", d); err != nil {
		return err
	}
	if d == 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
