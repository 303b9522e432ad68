// Package run is the facade the transports call into: start a timer,
// start a cycle, stop, query and configure. Each operation maps onto
// the registry, store and scheduler contracts; nothing here blocks the
// caller while a run is in flight.
package run

import (
	"time"

	"github.com/pomodux/pomodux/internal/cycle"
	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/render"
	"github.com/pomodux/pomodux/internal/session"
	"github.com/pomodux/pomodux/internal/timer"
	"github.com/pomodux/pomodux/internal/userstate"
)

// Service owns the shared core state and spawns one goroutine per run
type Service struct {
	store    *userstate.Store
	registry *session.Registry
	notifier notify.Notifier
	tick     time.Duration
}

// NewService wires the core together. A non-positive tick falls back
// to the one-second default.
func NewService(store *userstate.Store, registry *session.Registry, notifier notify.Notifier, tick time.Duration) *Service {
	if tick <= 0 {
		tick = timer.DefaultTick
	}
	return &Service{store: store, registry: registry, notifier: notifier, tick: tick}
}

// Store exposes the user state store to the surfaces
func (s *Service) Store() *userstate.Store { return s.store }

// Registry exposes the session registry to the surfaces
func (s *Service) Registry() *session.Registry { return s.registry }

// StartTimer launches a single interval of the given kind. The duration
// is read from the store once, here, so later configuration changes do
// not touch the running countdown.
func (s *Service) StartTimer(user domain.UserID, kind domain.IntervalKind) error {
	h, err := s.registry.TryStart(user, domain.ModeTimer)
	if err != nil {
		return err
	}
	seconds := s.store.IntervalSeconds(user, kind)
	go s.runTimer(h, kind, seconds)
	return nil
}

func (s *Service) runTimer(h *session.Handle, kind domain.IntervalKind, seconds int) {
	defer h.Finish()
	user := h.User()

	phase, _ := s.notifier.Announce(user, render.Countdown(kind, seconds), notify.StopControls())
	defer s.notifier.Forget(phase)

	d := time.Duration(seconds) * s.tick
	outcome := timer.Run(h.Context(), d, kind, s.tick, func(remaining time.Duration, k domain.IntervalKind) {
		_ = s.notifier.Update(phase, render.Countdown(k, int(remaining/s.tick)), notify.StopControls())
	})

	if outcome == domain.OutcomeCancelled {
		_ = s.notifier.Update(phase, "⏹ Timer stopped.", notify.MenuControls())
		return
	}

	stats := s.store.RecordCompletion(user, kind)
	_ = s.notifier.Update(phase, render.TimerDone(kind, stats), notify.MenuControls())
}

// StartCycle launches the unbounded work/break cycle
func (s *Service) StartCycle(user domain.UserID) error {
	h, err := s.registry.TryStart(user, domain.ModeCycle)
	if err != nil {
		return err
	}
	go func() {
		defer h.Finish()
		cycle.NewScheduler(s.store, s.notifier, s.tick).Run(h.Context(), user)
	}()
	return nil
}

// Stop cancels the user's active run, if any
func (s *Service) Stop(user domain.UserID) error {
	return s.registry.Cancel(user)
}

// Active reports whether the user has a run in flight
func (s *Service) Active(user domain.UserID) bool {
	return s.registry.Active(user)
}

// Stats returns the user's lifetime counters
func (s *Service) Stats(user domain.UserID) domain.UserStats {
	return s.store.Stats(user)
}

// Intervals returns the user's configured durations
func (s *Service) Intervals(user domain.UserID) domain.UserIntervals {
	return s.store.Intervals(user)
}

// UpdateInterval changes one configured duration, in minutes. Refused
// while a run is active; the countdown in flight keeps the duration it
// started with either way.
func (s *Service) UpdateInterval(user domain.UserID, kind domain.IntervalKind, minutes int) error {
	if s.registry.Active(user) {
		return session.ErrAlreadyRunning
	}
	return s.store.UpdateInterval(user, kind, minutes)
}
