package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"wakealarm/internal/core/countdown"
)

var (
	colorNormal  = lipgloss.Color("#0ea5e9")
	colorWarning = lipgloss.Color("#f59e0b")
	colorUrgent  = lipgloss.Color("#ef4444")
	colorMuted   = lipgloss.Color("#64748b")
	colorLight   = lipgloss.Color("#f8fafc")
	colorStar    = lipgloss.Color("#facc15")
	colorTrack   = lipgloss.Color("#334155")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorNormal).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	nightStyle  = lipgloss.NewStyle().Foreground(colorLight)
	skyStyle    = lipgloss.NewStyle().Foreground(colorStar)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	fillStyle   = lipgloss.NewStyle().Foreground(colorNormal)
	trackStyle  = lipgloss.NewStyle().Foreground(colorTrack)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorTrack).
			Padding(1, 3)

	alarmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(colorUrgent).
			Foreground(colorUrgent).
			Bold(true).
			Padding(0, 2)

	noticeStyles = map[noticeLevel]lipgloss.Style{
		noticeInfo:    lipgloss.NewStyle().Foreground(colorNormal),
		noticeWarning: lipgloss.NewStyle().Foreground(colorWarning),
		noticeError:   lipgloss.NewStyle().Foreground(colorUrgent).Bold(true),
	}
)

// timerStyle colours the countdown by urgency.
func timerStyle(class countdown.ColorClass) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch class {
	case countdown.ClassUrgent:
		return style.Foreground(colorUrgent)
	case countdown.ClassWarning:
		return style.Foreground(colorWarning)
	default:
		return style.Foreground(colorNormal)
	}
}
