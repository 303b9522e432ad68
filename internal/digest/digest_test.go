package digest

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/userstate"
)

type recordingNotifier struct {
	mu        sync.Mutex
	messages  map[domain.UserID]string
	forgotten int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[domain.UserID]string)}
}

func (r *recordingNotifier) Announce(user domain.UserID, text string, controls notify.Controls) (notify.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[user] = text
	return "", nil
}

func (r *recordingNotifier) Update(h notify.Handle, text string, controls notify.Controls) error {
	return nil
}

func (r *recordingNotifier) Forget(h notify.Handle) {
	r.mu.Lock()
	r.forgotten++
	r.mu.Unlock()
}

func TestParseCron(t *testing.T) {
	tests := []struct {
		expr  string
		valid bool
	}{
		{"0 9 * * *", true},
		{"*/5 * * * *", true},
		{"30 18 * * 1-5", true},
		{"not a cron", false},
		{"0 9 * *", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := ParseCron(tt.expr)
		if tt.valid && err != nil {
			t.Errorf("ParseCron(%q) = %v, want nil", tt.expr, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseCron(%q) succeeded, want error", tt.expr)
		}
	}
}

func TestNewScheduler_InvalidCron(t *testing.T) {
	store := userstate.New(domain.DefaultIntervals())
	if _, err := NewScheduler(store, notify.NoopNotifier{}, "garbage"); err == nil {
		t.Error("NewScheduler with invalid cron succeeded, want error")
	}
}

func TestSetSchedule(t *testing.T) {
	store := userstate.New(domain.DefaultIntervals())
	s, err := NewScheduler(store, notify.NoopNotifier{}, "0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetSchedule("*/10 * * * *"); err != nil {
		t.Errorf("SetSchedule = %v, want nil", err)
	}
	if err := s.SetSchedule("bad"); err == nil {
		t.Error("SetSchedule with invalid cron succeeded, want error")
	}

	// The invalid expression must not have clobbered the schedule
	next := s.NextRun()
	if next.IsZero() || next.Before(time.Now().Add(-time.Minute)) {
		t.Errorf("NextRun = %v, want a future time", next)
	}
}

func TestSendAll(t *testing.T) {
	store := userstate.New(domain.DefaultIntervals())
	store.RecordCompletion(1, domain.Pomodoro)
	store.RecordCompletion(1, domain.Pomodoro)
	store.RecordCompletion(2, domain.ShortBreak)

	rec := newRecordingNotifier()
	s, err := NewScheduler(store, rec, "0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}

	s.SendAll()

	if len(rec.messages) != 2 {
		t.Fatalf("digests sent = %d, want 2", len(rec.messages))
	}
	if !strings.Contains(rec.messages[1], "Pomodoros completed: 2") {
		t.Errorf("user 1 digest = %q, want pomodoro count 2", rec.messages[1])
	}
	if !strings.Contains(rec.messages[2], "Short breaks: 1") {
		t.Errorf("user 2 digest = %q, want short break count 1", rec.messages[2])
	}
	// Digests are never edited, so their handles are released immediately
	if rec.forgotten != 2 {
		t.Errorf("handles released = %d, want 2", rec.forgotten)
	}
}

func TestSendAll_NoUsers(t *testing.T) {
	store := userstate.New(domain.DefaultIntervals())
	rec := newRecordingNotifier()
	s, err := NewScheduler(store, rec, "0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}

	s.SendAll()
	if len(rec.messages) != 0 {
		t.Errorf("digests sent = %d, want 0", len(rec.messages))
	}
}

func TestStartStop(t *testing.T) {
	store := userstate.New(domain.DefaultIntervals())
	s, err := NewScheduler(store, notify.NoopNotifier{}, "0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		s.Start()
		close(done)
	}()

	s.Stop()
	s.Stop() // idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
