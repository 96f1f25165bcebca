package schedule

import (
	"context"
	"time"
)

// Pause blocks for d or until ctx is done.
// Returns immediately for non-positive durations.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jitter draws a whole number of seconds in [minSecs, maxSecs].
func Jitter(rng Rand, minSecs, maxSecs int) time.Duration {
	return time.Duration(Range{Min: minSecs, Max: maxSecs}.Draw(rng)) * time.Second
}
