// Package domain holds the core types shared by the timer, cycle and
// state packages: interval kinds, per-user counters and configured
// interval durations.
package domain

// UserID identifies a user. It is opaque to the core; the transport
// decides what it means.
type UserID int64

// IntervalKind identifies which countdown is running
type IntervalKind string

const (
	Pomodoro   IntervalKind = "pomodoro"
	ShortBreak IntervalKind = "short_break"
	LongBreak  IntervalKind = "long_break"
)

// Label returns the human-readable name for the kind
func (k IntervalKind) Label() string {
	switch k {
	case Pomodoro:
		return "Pomodoro"
	case ShortBreak:
		return "Short break"
	case LongBreak:
		return "Long break"
	default:
		return string(k)
	}
}

// Emoji returns the marker shown next to the kind in rendered messages
func (k IntervalKind) Emoji() string {
	switch k {
	case Pomodoro:
		return "🍅"
	case ShortBreak:
		return "☕"
	case LongBreak:
		return "🌴"
	default:
		return "⏱"
	}
}

// Outcome is the result of running a single interval
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)

// RunMode distinguishes a single interval run from a full cycle
type RunMode string

const (
	ModeTimer RunMode = "timer"
	ModeCycle RunMode = "cycle"
)

// CycleProgress tracks how far a running cycle has come. It lives only
// for the lifetime of the run; the lifetime counters are in UserStats.
type CycleProgress struct {
	Pomodoros int
}

// NextBreak returns the break kind that follows the most recently
// completed pomodoro: every 4th gets a long break.
func (p CycleProgress) NextBreak() IntervalKind {
	if p.Pomodoros > 0 && p.Pomodoros%4 == 0 {
		return LongBreak
	}
	return ShortBreak
}
