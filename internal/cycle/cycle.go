// Package cycle drives an unbounded work/break sequence for one user:
// pomodoro, break, pomodoro, break, with every 4th break long. A cycle
// has no natural end; it runs until its context is cancelled.
package cycle

import (
	"context"
	"time"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/render"
	"github.com/pomodux/pomodux/internal/timer"
	"github.com/pomodux/pomodux/internal/userstate"
)

// state is the scheduler's position in the work/break machine
type state int

const (
	starting state = iota
	runningWork
	runningBreak
	stopped
)

// Report summarizes a finished cycle
type Report struct {
	Pomodoros int
}

// Scheduler runs cycles against a user state store, announcing every
// phase through the notifier.
type Scheduler struct {
	store    *userstate.Store
	notifier notify.Notifier

	// tick is both the progress-update period and the real length of
	// one countdown second. Production uses timer.DefaultTick; tests
	// shrink it to run whole cycles in milliseconds.
	tick time.Duration
}

// NewScheduler creates a cycle scheduler. A non-positive tick falls
// back to the one-second default.
func NewScheduler(store *userstate.Store, notifier notify.Notifier, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = timer.DefaultTick
	}
	return &Scheduler{store: store, notifier: notifier, tick: tick}
}

// Run executes the cycle until ctx is cancelled and returns how many
// pomodoros completed. Stats counters are bumped on every interval
// completion; a cancellation mid-interval counts nothing. Each phase
// reads its duration from the store once at phase start, announces
// itself with a fresh message, and streams its countdown into that
// message. Notifier failures never disturb the countdown.
func (s *Scheduler) Run(ctx context.Context, user domain.UserID) Report {
	var progress domain.CycleProgress

	iv := s.store.Intervals(user)
	main, _ := s.notifier.Announce(user, render.CycleStarted(iv), notify.StopControls())

	st := starting
	for st != stopped {
		switch st {
		case starting:
			st = runningWork

		case runningWork:
			n := progress.Pomodoros + 1
			seconds := s.store.IntervalSeconds(user, domain.Pomodoro)
			phase, _ := s.notifier.Announce(user, render.WorkPhase(n, seconds), notify.StopControls())

			outcome := s.runInterval(ctx, seconds, domain.Pomodoro, phase)
			s.notifier.Forget(phase)
			if outcome == domain.OutcomeCancelled {
				st = stopped
				break
			}

			progress.Pomodoros++
			s.store.RecordCompletion(user, domain.Pomodoro)

			// A stop between two intervals must not launch one more.
			if ctx.Err() != nil {
				st = stopped
				break
			}
			st = runningBreak

		case runningBreak:
			kind := progress.NextBreak()
			seconds := s.store.IntervalSeconds(user, kind)
			phase, _ := s.notifier.Announce(user, render.BreakPhase(kind, progress.Pomodoros, seconds), notify.StopControls())

			outcome := s.runInterval(ctx, seconds, kind, phase)
			s.notifier.Forget(phase)
			if outcome == domain.OutcomeCancelled {
				st = stopped
				break
			}

			s.store.RecordCompletion(user, kind)

			if ctx.Err() != nil {
				st = stopped
				break
			}
			st = runningWork
		}
	}

	// Stopping is the designed shutdown path, not an error: report how
	// far the cycle came.
	_ = s.notifier.Update(main, render.CycleStopped(progress.Pomodoros), notify.MenuControls())
	s.notifier.Forget(main)

	return Report{Pomodoros: progress.Pomodoros}
}

func (s *Scheduler) runInterval(ctx context.Context, seconds int, kind domain.IntervalKind, phase notify.Handle) domain.Outcome {
	d := time.Duration(seconds) * s.tick
	return timer.Run(ctx, d, kind, s.tick, func(remaining time.Duration, k domain.IntervalKind) {
		secs := int(remaining / s.tick)
		_ = s.notifier.Update(phase, render.Countdown(k, secs), notify.StopControls())
	})
}
