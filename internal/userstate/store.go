// Package userstate keeps the per-user mutable state: lifetime
// completion counters and configured interval durations. Everything
// lives in process memory and is lost on restart.
package userstate

import (
	"errors"
	"sync"

	"github.com/pomodux/pomodux/internal/domain"
)

// ErrInvalidValue is returned when an interval update is not a positive
// number of minutes. The prior value is kept.
var ErrInvalidValue = errors.New("interval must be a positive number of minutes")

// entry is one user's state. Each entry carries its own lock so that
// operations for one user never block on another user's.
type entry struct {
	mu        sync.Mutex
	stats     domain.UserStats
	intervals domain.UserIntervals
}

// Store owns all per-user state. The store-level lock only guards the
// map itself; per-user mutation goes through the entry lock.
type Store struct {
	mu       sync.RWMutex
	users    map[domain.UserID]*entry
	defaults domain.UserIntervals
}

// New creates a Store that initializes new users with the given
// interval defaults.
func New(defaults domain.UserIntervals) *Store {
	return &Store{
		users:    make(map[domain.UserID]*entry),
		defaults: defaults,
	}
}

// SetDefaults replaces the interval defaults applied to users seen for
// the first time after this call. Non-positive values are ignored and
// the previous defaults kept.
func (s *Store) SetDefaults(iv domain.UserIntervals) {
	if iv.Pomodoro <= 0 || iv.ShortBreak <= 0 || iv.LongBreak <= 0 {
		return
	}
	s.mu.Lock()
	s.defaults = iv
	s.mu.Unlock()
}

// get returns the entry for a user, creating it on first access
func (s *Store) get(user domain.UserID) *entry {
	s.mu.RLock()
	e, ok := s.users[user]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.users[user]; ok {
		return e
	}
	e = &entry{intervals: s.defaults}
	s.users[user] = e
	return e
}

// Stats returns a snapshot of the user's lifetime counters,
// initializing the user on first access.
func (s *Store) Stats(user domain.UserID) domain.UserStats {
	e := s.get(user)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Intervals returns a snapshot of the user's configured durations,
// initializing the user on first access.
func (s *Store) Intervals(user domain.UserID) domain.UserIntervals {
	e := s.get(user)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intervals
}

// IntervalSeconds returns the configured duration for one kind. Runs
// read this once at phase start, so a configuration change mid-interval
// never affects the countdown already underway.
func (s *Store) IntervalSeconds(user domain.UserID, kind domain.IntervalKind) int {
	e := s.get(user)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intervals.Seconds(kind)
}

// UpdateInterval sets the duration for one kind from a minute value.
// Non-positive input is rejected with ErrInvalidValue and the prior
// value kept.
func (s *Store) UpdateInterval(user domain.UserID, kind domain.IntervalKind, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidValue
	}
	e := s.get(user)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.intervals.Set(kind, minutes*60)
	return nil
}

// RecordCompletion increments the lifetime counter for a finished
// interval and returns the updated snapshot.
func (s *Store) RecordCompletion(user domain.UserID, kind domain.IntervalKind) domain.UserStats {
	e := s.get(user)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Add(kind)
	return e.stats
}

// Users returns the IDs of every user seen so far
func (s *Store) Users() []domain.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.UserID, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids
}
