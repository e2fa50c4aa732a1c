package app

import (
	"fmt"
	"sync"

	"wakealarm/internal/core/alarm"
	"wakealarm/internal/core/countdown"
	"wakealarm/internal/ui/animation"
)

// Status lines shown under the timer.
const (
	StatusReady   = "Ready to start"
	StatusPaused  = "Timer Paused"
	StatusRunning = "Timer Running..."
	StatusWakeUp  = "WAKE UP NOW!!!"
)

// Renderer draws the countdown. Implementations must not block; they are
// called from the frame loop and the event pump.
type Renderer interface {
	RenderTimer(text string, class countdown.ColorClass)
	RenderProgress(percent float64)
	RenderStatus(message string)
}

// SceneRenderer is implemented by renderers that draw the starfield.
type SceneRenderer interface {
	RenderScene(frame animation.Frame)
}

// Notifier shows messages and the blocking-style alarm prompt. ShowAlarm must
// return immediately and call onDismiss once the user closes the prompt.
type Notifier interface {
	alarm.Notifier
	ShowAlarm(message string, onDismiss func())
}

// viewState remembers what was last drawn so unchanged values are skipped.
type viewState struct {
	mu       sync.Mutex
	drawn    bool
	timer    string
	class    countdown.ColorClass
	progress float64
}

func (app *App) onFrame(frame animation.Frame) {
	snapshot := app.machine.Snapshot()
	text, class := timerView(snapshot)

	app.view.mu.Lock()
	timerChanged := !app.view.drawn || text != app.view.timer || class != app.view.class
	progressChanged := !app.view.drawn || frame.Progress != app.view.progress
	app.view.drawn = true
	app.view.timer = text
	app.view.class = class
	app.view.progress = frame.Progress
	app.view.mu.Unlock()

	renderer := app.deps.Renderer
	if renderer == nil {
		return
	}
	if timerChanged {
		renderer.RenderTimer(text, class)
	}
	if progressChanged {
		renderer.RenderProgress(frame.Progress)
	}
	if scene, ok := renderer.(SceneRenderer); ok {
		scene.RenderScene(frame)
	}
}

func (app *App) renderIdle() {
	app.view.mu.Lock()
	app.view.drawn = true
	app.view.timer = countdown.FormatRemaining(0)
	app.view.class = countdown.ClassNormal
	app.view.progress = 0
	app.view.mu.Unlock()

	if app.deps.Renderer != nil {
		app.deps.Renderer.RenderTimer(countdown.FormatRemaining(0), countdown.ClassNormal)
		app.deps.Renderer.RenderProgress(0)
	}
}

func (app *App) renderStatus(message string) {
	if app.deps.Renderer != nil {
		app.deps.Renderer.RenderStatus(message)
	}
}

// timerView picks the text and colour for the timer label. An idle timer is
// never drawn in the urgent colour.
func timerView(snapshot countdown.Snapshot) (string, countdown.ColorClass) {
	if snapshot.Status == countdown.StatusIdle {
		return countdown.FormatRemaining(0), countdown.ClassNormal
	}
	return countdown.FormatRemaining(snapshot.Remaining), countdown.ClassFor(snapshot.Remaining)
}

func statusFor(event countdown.Event) (string, bool) {
	switch event.Type {
	case countdown.EventStarted:
		return fmt.Sprintf("Hey %s! Timer started!", event.Owner), true
	case countdown.EventPaused:
		return StatusPaused, true
	case countdown.EventResumed:
		return StatusRunning, true
	case countdown.EventCompleted:
		return StatusWakeUp, true
	case countdown.EventReset, countdown.EventAcknowledged:
		return StatusReady, true
	default:
		return "", false
	}
}
