// Package tui is the terminal dashboard: a live countdown view plus a
// stats tab, running in-process against the same core the API serves.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/run"
)

// Model is the TUI application model
type Model struct {
	svc    *run.Service
	user   domain.UserID
	events <-chan notify.Event

	// Live message state: the latest text per handle, newest last
	current string
	status  string

	// UI state
	width     int
	height    int
	activeTab int
}

// ModelConfig holds the wiring for the TUI model
type ModelConfig struct {
	Service *run.Service
	User    domain.UserID
	Events  <-chan notify.Event
}

// NewModel creates a new TUI model
func NewModel(cfg ModelConfig) Model {
	return Model{
		svc:    cfg.Service,
		user:   cfg.User,
		events: cfg.Events,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForEvent(m.events),
	)
}

// TickMsg triggers a refresh
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventMsg carries one notifier event into the update loop
type EventMsg notify.Event

func waitForEvent(events <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}
