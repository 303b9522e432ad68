// Package notify renders run progress to the outside world. The core
// talks to an abstract Notifier: Announce creates a message and returns
// an opaque handle, Update edits it. Failure is an ordinary return
// value; callers in the core swallow it and keep counting.
package notify

import "github.com/pomodux/pomodux/internal/domain"

// Handle identifies one rendered message for later edits
type Handle string

// Control is a single action button attached to a message
type Control struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Controls is the button row attached to a message. The core never
// inspects it; surfaces render it however they like.
type Controls []Control

// StopControls is the button row shown while a run is active
func StopControls() Controls {
	return Controls{{Label: "⏹ Stop", Action: "stop"}}
}

// MenuControls is the button row shown when no run is active
func MenuControls() Controls {
	return Controls{
		{Label: "🔄 Start full cycle", Action: "start_cycle"},
		{Label: "🍅 Start pomodoro", Action: "start_timer"},
		{Label: "📊 Stats", Action: "stats"},
	}
}

// Notifier is the rendering interface the core depends on
type Notifier interface {
	// Announce creates a new message for the user and returns its handle
	Announce(user domain.UserID, text string, controls Controls) (Handle, error)
	// Update edits an existing message. A failed update is never retried.
	Update(h Handle, text string, controls Controls) error
	// Forget releases a handle once its message will never be edited
	// again. Updates on a forgotten handle fail. Callers must release
	// every handle they announce or the notifier retains it forever.
	Forget(h Handle)
}

// MultiNotifier sends to multiple notifiers. The handle of the first
// notifier is the one returned; side-channel notifiers (desktop, slack)
// issue their own throwaway handles.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Announce announces on every notifier and returns the first handle
func (m *MultiNotifier) Announce(user domain.UserID, text string, controls Controls) (Handle, error) {
	var first Handle
	var lastErr error
	for i, n := range m.notifiers {
		h, err := n.Announce(user, text, controls)
		if err != nil {
			lastErr = err
			continue
		}
		if i == 0 {
			first = h
		}
	}
	return first, lastErr
}

// Update forwards the edit to every notifier
func (m *MultiNotifier) Update(h Handle, text string, controls Controls) error {
	var lastErr error
	for _, n := range m.notifiers {
		if err := n.Update(h, text, controls); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Forget forwards the release to every notifier
func (m *MultiNotifier) Forget(h Handle) {
	for _, n := range m.notifiers {
		n.Forget(h)
	}
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Announce(user domain.UserID, text string, controls Controls) (Handle, error) {
	return "", nil
}

func (NoopNotifier) Update(h Handle, text string, controls Controls) error { return nil }

func (NoopNotifier) Forget(h Handle) {}
