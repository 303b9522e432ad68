package confwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pomodux/pomodux/internal/config"
)

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[intervals]\npomodoro_minutes = 25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *config.Config, 1)
	w, err := New(path, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.debounce = 50 * time.Millisecond

	w.Start(context.Background())

	if err := os.WriteFile(path, []byte("[intervals]\npomodoro_minutes = 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Intervals.PomodoroMinutes != 50 {
			t.Errorf("PomodoroMinutes = %d, want 50", cfg.Intervals.PomodoroMinutes)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback never fired")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := New(path, func(cfg *config.Config) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.debounce = 50 * time.Millisecond

	w.Start(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Error("callback fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 16)
	w, err := New(path, func(cfg *config.Config) {
		fired <- struct{}{}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.debounce = 200 * time.Millisecond

	w.Start(context.Background())

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[web]\nport = 9000\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// One flush for the whole burst
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback never fired")
	}
	select {
	case <-fired:
		t.Error("debounce let a second reload through")
	case <-time.After(400 * time.Millisecond):
	}
}
