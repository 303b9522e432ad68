package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pomodux/pomodux/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🍅 pomodux"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.activeTab {
	case 0:
		b.WriteString(m.renderTimerTab())
	case 1:
		b.WriteString(m.renderStatsTab())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(hintStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(statusBarStyle.Render(" p pomodoro · s short break · l long break · c cycle · x stop · tab switch · q quit "))

	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"Timer", "Stats"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if i == m.activeTab {
			tabs[i] = tabActiveStyle.Render(name)
		} else {
			tabs[i] = tabInactiveStyle.Render(name)
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderTimerTab() string {
	text := m.current
	if text == "" {
		iv := m.svc.Intervals(m.user)
		text = "No timer running.\n\n" +
			"⚙️ Current settings:\n" +
			"• Pomodoro: " + minutes(iv.Pomodoro) + "\n" +
			"• Short break: " + minutes(iv.ShortBreak) + "\n" +
			"• Long break: " + minutes(iv.LongBreak)
	}
	return sectionStyle.Render(text)
}

func (m Model) renderStatsTab() string {
	return sectionStyle.Render(render.Stats(m.svc.Stats(m.user), m.svc.Intervals(m.user)))
}

func minutes(seconds int) string {
	return fmt.Sprintf("%d min", seconds/60)
}
