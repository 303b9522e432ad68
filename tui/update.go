package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/session"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % 2
		case "p":
			m.start(func() error { return m.svc.StartTimer(m.user, domain.Pomodoro) })
		case "s":
			m.start(func() error { return m.svc.StartTimer(m.user, domain.ShortBreak) })
		case "l":
			m.start(func() error { return m.svc.StartTimer(m.user, domain.LongBreak) })
		case "c":
			m.start(func() error { return m.svc.StartCycle(m.user) })
		case "x":
			if err := m.svc.Stop(m.user); err != nil {
				if errors.Is(err, session.ErrNotRunning) {
					m.status = "Nothing to stop."
				} else {
					m.status = err.Error()
				}
			} else {
				m.status = "Stopped."
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tickCmd()

	case EventMsg:
		if msg.User == m.user {
			m.current = msg.Text
		}
		return m, waitForEvent(m.events)
	}

	return m, nil
}

// start runs a start operation and turns contention into a status hint
// instead of an error.
func (m *Model) start(op func() error) {
	if err := op(); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			m.status = "A timer or cycle is already running. Stop it first (x)."
		} else {
			m.status = err.Error()
		}
		return
	}
	m.status = ""
}
