// Package digest sends every known user a stats summary on a cron
// schedule. Summaries go out as plain announcements; nothing here
// touches running timers.
package digest

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/render"
	"github.com/pomodux/pomodux/internal/userstate"
)

// ParseCron parses a standard five-field cron expression
func ParseCron(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(expr)
}

// Scheduler fires the digest whenever the cron schedule comes due
type Scheduler struct {
	store    *userstate.Store
	notifier notify.Notifier

	mu       sync.RWMutex
	schedule cron.Schedule
	lastRun  time.Time

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a digest scheduler for the given cron expression
func NewScheduler(store *userstate.Store, notifier notify.Notifier, expr string) (*Scheduler, error) {
	schedule, err := ParseCron(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &Scheduler{
		store:    store,
		notifier: notifier,
		schedule: schedule,
		lastRun:  time.Now(),
		stopChan: make(chan struct{}),
	}, nil
}

// SetSchedule swaps the cron expression, e.g. after a config reload
func (s *Scheduler) SetSchedule(expr string) error {
	schedule, err := ParseCron(expr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()
	return nil
}

// NextRun returns the next time the digest is due
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Next(time.Now())
}

// shouldRun reports whether the schedule has come due since the last
// digest went out.
func (s *Scheduler) shouldRun() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Now().After(s.schedule.Next(s.lastRun))
}

// Start begins the scheduler loop. It polls once a minute, the same
// granularity the cron format has.
func (s *Scheduler) Start() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if s.shouldRun() {
				s.mu.Lock()
				s.lastRun = time.Now()
				s.mu.Unlock()
				s.SendAll()
			}
		}
	}
}

// Stop stops the scheduler loop
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// SendAll sends the stats digest to every user seen so far
func (s *Scheduler) SendAll() {
	for _, user := range s.store.Users() {
		stats := s.store.Stats(user)
		iv := s.store.Intervals(user)
		h, err := s.notifier.Announce(user, render.Stats(stats, iv), nil)
		if err != nil {
			log.Printf("digest for user %d failed: %v", user, err)
			continue
		}
		// A digest is never edited; release its handle right away
		s.notifier.Forget(h)
	}
}
