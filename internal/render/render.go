// Package render builds the user-facing message text for timer and
// cycle events. It is pure formatting; nothing here touches state.
package render

import (
	"fmt"

	"github.com/pomodux/pomodux/internal/domain"
)

// Countdown is the body of a live progress message
func Countdown(kind domain.IntervalKind, remainingSeconds int) string {
	return fmt.Sprintf("%s %s\n\n⏱ Time left: %s",
		kind.Emoji(), kind.Label(), domain.FormatClock(remainingSeconds))
}

// TimerDone is the completion message for a stand-alone interval. The
// congratulation uses the lifetime counter, not any in-cycle count.
func TimerDone(kind domain.IntervalKind, stats domain.UserStats) string {
	text := fmt.Sprintf("✅ %s finished!\n\n", kind.Label())
	if kind == domain.Pomodoro {
		text += fmt.Sprintf("🎉 Congratulations! You have completed %d pomodoro sessions!", stats.Pomodoros)
		if stats.Pomodoros%4 == 0 {
			text += "\n\n💡 Time to take a long break!"
		}
	} else {
		text += "💪 Ready to get back to work?"
	}
	return text
}

// CycleStarted announces a new cycle with its configured durations
func CycleStarted(iv domain.UserIntervals) string {
	return fmt.Sprintf("🔔 POMODORO CYCLE STARTED!\n\n"+
		"🍅 First pomodoro begins!\n\n"+
		"⏱ Time left: %s\n\n💪 Ready to focus?",
		domain.FormatClock(iv.Pomodoro))
}

// WorkPhase announces pomodoro number n of a cycle
func WorkPhase(n, seconds int) string {
	return fmt.Sprintf("🔔 BACK TO WORK!\n\n"+
		"🍅 Pomodoro #%d begins!\n\n"+
		"⏱ Time left: %s\n\n💪 Time to focus!",
		n, domain.FormatClock(seconds))
}

// BreakPhase announces the break following pomodoro number n
func BreakPhase(kind domain.IntervalKind, n, seconds int) string {
	return fmt.Sprintf("🔔 TIME TO REST!\n\n"+
		"%s %s after pomodoro #%d\n\n"+
		"⏱ Time left: %s\n\n😌 Relax and recharge!",
		kind.Emoji(), kind.Label(), n, domain.FormatClock(seconds))
}

// CycleStopped reports how far a cycle came before it was stopped
func CycleStopped(pomodoros int) string {
	return fmt.Sprintf("⏹ Pomodoro cycle stopped.\n\n✅ Pomodoros completed: %d", pomodoros)
}

// Stats renders the statistics summary
func Stats(stats domain.UserStats, iv domain.UserIntervals) string {
	text := fmt.Sprintf("📊 Your stats:\n\n"+
		"🍅 Pomodoros completed: %d\n"+
		"☕ Short breaks: %d\n"+
		"🌴 Long breaks: %d\n\n"+
		"⚙️ Current settings:\n"+
		"• Pomodoro: %d min\n"+
		"• Short break: %d min\n"+
		"• Long break: %d min\n",
		stats.Pomodoros, stats.ShortBreaks, stats.LongBreaks,
		iv.Pomodoro/60, iv.ShortBreak/60, iv.LongBreak/60)

	if stats.Pomodoros > 0 {
		text += fmt.Sprintf("\n⏱ Total focus time: %s", domain.FormatClock(stats.Pomodoros*iv.Pomodoro))
	} else {
		text += "\n💡 Start your first pomodoro!"
	}
	return text
}
