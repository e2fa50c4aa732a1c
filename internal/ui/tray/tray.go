// Package tray keeps the system tray menu in step with the countdown.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"wakealarm/internal/core/countdown"
	"wakealarm/resources"
)

const menuTitle = "Wake Alarm"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnStartPause func()
	OnReset      func()
	OnQuit       func()
}

// Manager handles system tray state. Call it from the fyne goroutine.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
	status     string
	state      countdown.Status
	icon       resources.IconKind
}

// New creates a tray manager with the provided callbacks. app may be nil on
// drivers without tray support; the manager then only tracks state.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "Ready to start",
		state:     countdown.StatusIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnStartPause) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })

	manager.apply()
	return manager
}

// Update shows a new status line and countdown state.
func (manager *Manager) Update(status string, state countdown.Status) {
	if status != "" {
		manager.status = status
	}
	manager.state = state
	manager.apply()
}

// Status returns the current status item label.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) apply() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.status)
	manager.pauseItem.Label = pauseLabel(manager.state)
	manager.pauseItem.Disabled = manager.state != countdown.StatusRunning && manager.state != countdown.StatusPaused
	manager.resetItem.Disabled = manager.state == countdown.StatusIdle

	if manager.app == nil {
		return
	}
	if icon := iconFor(manager.state); icon != manager.icon {
		manager.icon = icon
		manager.app.SetSystemTrayIcon(resources.MustIcon(icon))
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func pauseLabel(state countdown.Status) string {
	if state == countdown.StatusPaused {
		return "Resume"
	}
	return "Pause"
}

func iconFor(state countdown.Status) resources.IconKind {
	switch state {
	case countdown.StatusRunning, countdown.StatusPaused:
		return resources.IconRunning
	case countdown.StatusCompleted:
		return resources.IconAlarm
	default:
		return resources.IconIdle
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
