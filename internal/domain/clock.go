package domain

import "fmt"

// FormatClock renders a remaining-seconds value for display: plain
// seconds under a minute, MM:SS otherwise.
func FormatClock(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
