// Package terminal is a bubbletea frontend for running the alarm in a
// terminal session.
package terminal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wakealarm/internal/core/countdown"
)

const progressWidth = 32

var _ tea.Model = Model{}

// Commands is the part of the application the terminal drives.
type Commands interface {
	StartCountdown(name string, minutes float64) error
	PauseResume()
	Reset()
	Snapshot() countdown.Snapshot
	AlarmActive() bool
}

// Options describe the countdown that "s" (re)starts.
type Options struct {
	Name    string
	Minutes float64
}

// Model renders the countdown and maps keys onto commands.
type Model struct {
	commands Commands
	options  Options
	view     viewMsg
	notice   *noticeMsg
	alarm    *alarmMsg
	width    int
	height   int
}

// New creates the terminal model.
func New(commands Commands, options Options) Model {
	return Model{
		commands: commands,
		options:  options,
		view: viewMsg{
			timer: countdown.FormatRemaining(0),
			class: countdown.ClassNormal,
		},
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case viewMsg:
		m.view = msg

	case noticeMsg:
		m.notice = &msg

	case alarmMsg:
		m.alarm = &msg

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "enter":
		if m.alarm != nil {
			dismiss := m.alarm.onDismiss
			m.alarm = nil
			if dismiss != nil {
				dismiss()
			}
		}

	case " ", "p":
		m.notice = nil
		m.commands.PauseResume()

	case "r":
		m.notice = nil
		m.alarm = nil
		m.commands.Reset()

	case "s":
		m.notice = nil
		if err := m.commands.StartCountdown(m.options.Name, m.options.Minutes); err != nil {
			m.notice = &noticeMsg{level: noticeError, text: startError(err)}
		}
	}
	return m, nil
}

func (m Model) View() string {
	status := statusStyle
	if m.view.night {
		status = nightStyle
	}

	sections := []string{
		titleStyle.Render("⏰ Wake Alarm"),
		"",
		timerStyle(m.view.class).Render(m.view.timer),
		progressBar(m.view.progress, progressWidth),
		status.Render(m.view.status),
	}
	if len(m.view.sky) > 0 {
		sections = append(sections, "", skyStyle.Render(strings.Join(m.view.sky, "\n")))
	}
	if m.alarm != nil {
		bell := "alarm finished"
		if m.commands.AlarmActive() {
			bell = "🔔 ringing"
		}
		sections = append(sections, "", alarmStyle.Render("WAKE UP! "+m.alarm.text+"\n"+bell+" · [enter] I'm awake!"))
	}
	if m.notice != nil {
		sections = append(sections, "", noticeStyles[m.notice.level].Render(m.notice.text))
	}
	sections = append(sections, "", helpStyle.Render("space pause · r reset · s start · enter dismiss · q quit"))

	content := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// progressBar draws percent in [0, 100] as a fixed width bar.
func progressBar(percent float64, width int) string {
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * float64(width)))
	return fillStyle.Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", percent)
}

func startError(err error) string {
	var validation *countdown.ValidationError
	switch {
	case errors.As(err, &validation):
		return validation.Reason
	case errors.Is(err, countdown.ErrAwaitingAcknowledgement):
		return "dismiss the alarm before starting again"
	default:
		return err.Error()
	}
}
