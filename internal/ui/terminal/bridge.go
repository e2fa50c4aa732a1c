package terminal

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"wakealarm/internal/core/countdown"
	"wakealarm/internal/ui/animation"
)

// Bridge adapts the renderer and notifier callbacks to bubbletea messages.
// Render calls only record the latest state, so a slow terminal never holds
// up the frame loop; notices and alarms are queued and never dropped.
type Bridge struct {
	mu      sync.Mutex
	view    viewMsg
	dirty   bool
	queue   []tea.Msg
	wake    chan struct{}
	skyCols int
	skyRows int
}

// NewBridge creates a bridge that draws the sky in a cols x rows grid.
func NewBridge(cols, rows int) *Bridge {
	return &Bridge{
		view: viewMsg{
			timer: countdown.FormatRemaining(0),
			class: countdown.ClassNormal,
		},
		wake:    make(chan struct{}, 1),
		skyCols: cols,
		skyRows: rows,
	}
}

// RenderTimer records the timer text and colour class.
func (bridge *Bridge) RenderTimer(text string, class countdown.ColorClass) {
	bridge.update(func(view *viewMsg) {
		view.timer = text
		view.class = class
	})
}

// RenderProgress records the smoothed progress percentage.
func (bridge *Bridge) RenderProgress(percent float64) {
	bridge.update(func(view *viewMsg) { view.progress = percent })
}

// RenderStatus records the status line.
func (bridge *Bridge) RenderStatus(message string) {
	bridge.update(func(view *viewMsg) { view.status = message })
}

// RenderScene records the night flag and a character rendering of the sky.
func (bridge *Bridge) RenderScene(frame animation.Frame) {
	sky := skyLines(frame, bridge.skyCols, bridge.skyRows)
	bridge.update(func(view *viewMsg) {
		view.night = frame.Night
		view.sky = sky
	})
}

func (bridge *Bridge) ShowInfo(message string)    { bridge.enqueue(noticeMsg{level: noticeInfo, text: message}) }
func (bridge *Bridge) ShowWarning(message string) { bridge.enqueue(noticeMsg{level: noticeWarning, text: message}) }
func (bridge *Bridge) ShowError(message string)   { bridge.enqueue(noticeMsg{level: noticeError, text: message}) }

// ShowAlarm queues the wake-up prompt. onDismiss runs when the user confirms.
func (bridge *Bridge) ShowAlarm(message string, onDismiss func()) {
	bridge.enqueue(alarmMsg{text: message, onDismiss: onDismiss})
}

// Run forwards pending messages to send until ctx is cancelled. send is
// usually (*tea.Program).Send.
func (bridge *Bridge) Run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-bridge.wake:
		}
		for _, msg := range bridge.drain() {
			send(msg)
		}
	}
}

func (bridge *Bridge) drain() []tea.Msg {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()

	msgs := bridge.queue
	bridge.queue = nil
	if bridge.dirty {
		msgs = append(msgs, bridge.view)
		bridge.dirty = false
	}
	return msgs
}

func (bridge *Bridge) update(apply func(*viewMsg)) {
	bridge.mu.Lock()
	apply(&bridge.view)
	bridge.dirty = true
	bridge.mu.Unlock()
	bridge.signal()
}

func (bridge *Bridge) enqueue(msg tea.Msg) {
	bridge.mu.Lock()
	bridge.queue = append(bridge.queue, msg)
	bridge.mu.Unlock()
	bridge.signal()
}

func (bridge *Bridge) signal() {
	select {
	case bridge.wake <- struct{}{}:
	default:
	}
}
