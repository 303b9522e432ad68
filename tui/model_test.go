package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/run"
	"github.com/pomodux/pomodux/internal/session"
	"github.com/pomodux/pomodux/internal/userstate"
)

func newTestModel() Model {
	store := userstate.New(domain.UserIntervals{Pomodoro: 1000, ShortBreak: 5, LongBreak: 7})
	svc := run.NewService(store, session.NewRegistry(), notify.NoopNotifier{}, time.Millisecond)
	events := make(chan notify.Event)
	return NewModel(ModelConfig{Service: svc, User: 1, Events: events})
}

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	model := newTestModel()

	if model.user != 1 {
		t.Errorf("user = %d, want 1", model.user)
	}
	if model.activeTab != 0 {
		t.Errorf("activeTab = %d, want 0", model.activeTab)
	}
	if model.current != "" {
		t.Errorf("current = %q, want empty", model.current)
	}
}

func TestModel_TabSwitching(t *testing.T) {
	model := newTestModel()
	model.width = 100
	model.height = 40

	// Press tab to move to Stats (1)
	newModel, _ := model.Update(keyMsg("tab"))
	model = newModel.(Model)

	if model.activeTab != 1 {
		t.Errorf("after first tab: activeTab = %d, want 1", model.activeTab)
	}

	// Press tab again to wrap back to Timer (0)
	newModel, _ = model.Update(keyMsg("tab"))
	model = newModel.(Model)

	if model.activeTab != 0 {
		t.Errorf("after wrap: activeTab = %d, want 0", model.activeTab)
	}
}

func TestModel_StartTimerKey(t *testing.T) {
	model := newTestModel()

	newModel, _ := model.Update(keyMsg("p"))
	model = newModel.(Model)
	defer model.svc.Stop(1)

	if !model.svc.Active(1) {
		t.Error("no run active after p")
	}
	if model.status != "" {
		t.Errorf("status = %q, want empty on success", model.status)
	}

	// A second start hits contention and becomes a hint, not an error
	newModel, _ = model.Update(keyMsg("c"))
	model = newModel.(Model)

	if !strings.Contains(model.status, "already running") {
		t.Errorf("status = %q, want already-running hint", model.status)
	}
}

func TestModel_StopKeyWhenIdle(t *testing.T) {
	model := newTestModel()

	newModel, _ := model.Update(keyMsg("x"))
	model = newModel.(Model)

	if model.status != "Nothing to stop." {
		t.Errorf("status = %q, want %q", model.status, "Nothing to stop.")
	}
}

func TestModel_EventMsgUpdatesCurrent(t *testing.T) {
	model := newTestModel()

	newModel, cmd := model.Update(EventMsg{User: 1, Text: "countdown text"})
	model = newModel.(Model)

	if model.current != "countdown text" {
		t.Errorf("current = %q, want countdown text", model.current)
	}
	if cmd == nil {
		t.Error("no follow-up command; the model must keep listening")
	}

	// Another user's event leaves this user's view alone
	newModel, _ = model.Update(EventMsg{User: 2, Text: "someone else"})
	model = newModel.(Model)

	if model.current != "countdown text" {
		t.Errorf("current = %q, want unchanged countdown text", model.current)
	}
}

func TestModel_WindowSize(t *testing.T) {
	model := newTestModel()

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	model = newModel.(Model)

	if model.width != 120 || model.height != 50 {
		t.Errorf("size = %dx%d, want 120x50", model.width, model.height)
	}
}

func TestModel_ViewShowsSettingsWhenIdle(t *testing.T) {
	model := newTestModel()
	model.width = 100
	model.height = 40

	view := model.View()

	if !strings.Contains(view, "No timer running.") {
		t.Error("idle view missing the no-timer hint")
	}
	if !strings.Contains(view, "16 min") {
		t.Errorf("idle view missing the pomodoro setting, got:\n%s", view)
	}
}
