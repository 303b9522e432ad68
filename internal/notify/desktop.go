package notify

import (
	"os/exec"
	"runtime"

	"github.com/google/uuid"

	"github.com/pomodux/pomodux/internal/domain"
)

// DesktopNotifier pops up a native notification on Announce. Popups are
// not editable, so Update is a no-op.
type DesktopNotifier struct {
	enabled bool
	title   string
}

// NewDesktopNotifier creates a new desktop notifier
func NewDesktopNotifier(enabled bool) *DesktopNotifier {
	return &DesktopNotifier{enabled: enabled, title: "pomodux"}
}

// Announce shows a desktop notification
func (d *DesktopNotifier) Announce(user domain.UserID, text string, controls Controls) (Handle, error) {
	handle := Handle(uuid.NewString())
	if !d.enabled {
		return handle, nil
	}

	switch runtime.GOOS {
	case "darwin":
		return handle, d.sendMacOS(text)
	case "linux":
		return handle, d.sendLinux(text)
	default:
		return handle, nil // Unsupported
	}
}

// Update does nothing; a popup cannot be edited
func (d *DesktopNotifier) Update(h Handle, text string, controls Controls) error {
	return nil
}

// Forget does nothing; popups hold no state to release
func (d *DesktopNotifier) Forget(h Handle) {}

func (d *DesktopNotifier) sendMacOS(text string) error {
	script := `display notification "` + text + `" with title "` + d.title + `"`
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

func (d *DesktopNotifier) sendLinux(text string) error {
	// Try notify-send (most common)
	cmd := exec.Command("notify-send", d.title, text)
	return cmd.Run()
}
