// Package timer runs a single countdown for one interval kind, pushing
// periodic progress to a sink and observing cancellation at tick
// granularity.
package timer

import (
	"context"
	"time"

	"github.com/pomodux/pomodux/internal/domain"
)

// DefaultTick is the progress-update period for real runs
const DefaultTick = time.Second

// ProgressFunc receives the remaining time once at start and then once
// per tick. Implementations that render the update must swallow their
// own failures; the countdown never waits on a result.
type ProgressFunc func(remaining time.Duration, kind domain.IntervalKind)

// Run counts d down to zero, sleeping min(tick, remaining) each
// iteration so the final tick lands exactly on zero. Remaining is
// decremented by the planned sleep amount, not wall-clock measurement,
// so no drift accumulates. Cancellation of ctx is observed during every
// sleep and reported as OutcomeCancelled with at most one tick of
// latency. A non-positive d completes immediately.
func Run(ctx context.Context, d time.Duration, kind domain.IntervalKind, tick time.Duration, progress ProgressFunc) domain.Outcome {
	if tick <= 0 {
		tick = DefaultTick
	}

	remaining := d
	if remaining > 0 && progress != nil {
		progress(remaining, kind)
	}

	for remaining > 0 {
		sleep := tick
		if remaining < sleep {
			sleep = remaining
		}

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return domain.OutcomeCancelled
		case <-t.C:
		}

		remaining -= sleep
		if remaining > 0 && progress != nil {
			progress(remaining, kind)
		}
	}

	return domain.OutcomeCompleted
}
