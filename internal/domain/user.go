package domain

// Default interval durations in seconds
const (
	DefaultPomodoroSeconds   = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
)

// UserStats holds the lifetime completion counters for one user.
// Counters only ever grow; they reset when the process restarts.
type UserStats struct {
	Pomodoros   int `json:"pomodoros"`
	ShortBreaks int `json:"short_breaks"`
	LongBreaks  int `json:"long_breaks"`
}

// Add increments the counter matching the completed interval kind
func (s *UserStats) Add(kind IntervalKind) {
	switch kind {
	case Pomodoro:
		s.Pomodoros++
	case ShortBreak:
		s.ShortBreaks++
	case LongBreak:
		s.LongBreaks++
	}
}

// UserIntervals holds one user's configured durations in seconds.
// Every value is positive at all times.
type UserIntervals struct {
	Pomodoro   int `json:"pomodoro"`
	ShortBreak int `json:"short_break"`
	LongBreak  int `json:"long_break"`
}

// DefaultIntervals returns the standard 25/5/15 minute configuration
func DefaultIntervals() UserIntervals {
	return UserIntervals{
		Pomodoro:   DefaultPomodoroSeconds,
		ShortBreak: DefaultShortBreakSeconds,
		LongBreak:  DefaultLongBreakSeconds,
	}
}

// Seconds returns the configured duration for the given kind
func (iv UserIntervals) Seconds(kind IntervalKind) int {
	switch kind {
	case Pomodoro:
		return iv.Pomodoro
	case ShortBreak:
		return iv.ShortBreak
	case LongBreak:
		return iv.LongBreak
	default:
		return 0
	}
}

// Set replaces the duration for the given kind
func (iv *UserIntervals) Set(kind IntervalKind, seconds int) {
	switch kind {
	case Pomodoro:
		iv.Pomodoro = seconds
	case ShortBreak:
		iv.ShortBreak = seconds
	case LongBreak:
		iv.LongBreak = seconds
	}
}
