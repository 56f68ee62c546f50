package watch

import (
	"context"
	"time"
)

// Timings are the measured durations of one cycle's phases.
type Timings struct {
	Execution  time.Duration
	Processing time.Duration
	Write      time.Duration
}

// Total is the time spent across all phases.
func (t Timings) Total() time.Duration {
	return t.Execution + t.Processing + t.Write
}

// sleepFor returns how long to wait before the next cycle. Precise mode
// subtracts the time already spent, never going below zero.
func sleepFor(interval time.Duration, precise bool, t Timings) time.Duration {
	if !precise {
		return interval
	}
	return max(0, interval-t.Total())
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
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
