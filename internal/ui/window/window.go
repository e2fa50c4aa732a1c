// Package window is the fyne desktop frontend: the countdown form, timer,
// progress bar, starfield scene and dialogs.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"wakealarm/internal/core/alarm"
	"wakealarm/internal/core/countdown"
	"wakealarm/internal/core/model"
	"wakealarm/internal/ui/animation"
)

// Commands is the part of the application the window drives.
type Commands interface {
	StartCountdownText(name, minutes string) error
	PauseResume()
	Reset()
	SelectCustomSound(path string) error
	SetAlarmChoice(choice model.SoundChoice)
	AlarmChoice() model.SoundChoice
	Snapshot() countdown.Snapshot
}

// Config contains window options.
type Config struct {
	Title        string
	Width        float32
	Height       float32
	QuickMinutes []float64
}

// Window is the main application window. Every exported method is safe to
// call from any goroutine.
type Window struct {
	app      fyne.App
	window   fyne.Window
	config   Config
	commands Commands

	nameEntry    *widget.Entry
	minutesEntry *widget.Entry
	soundSelect  *widget.Select
	startButton  *widget.Button
	resetButton  *widget.Button
	progressBar  *widget.ProgressBar
	timerLabel   *canvas.Text
	statusLabel  *canvas.Text
	titleLabel   *canvas.Text
	scene        *scene
	night        bool
	onStatus     func(string)
}

// New creates the window. Bind must be called before it is shown.
func New(fyneApp fyne.App, config Config) *Window {
	if config.Title == "" {
		config.Title = "Wake Alarm"
	}
	if config.Width <= 0 || config.Height <= 0 {
		config.Width, config.Height = 420, 820
	}

	window := fyneApp.NewWindow(config.Title)
	if fyneApp.Icon() != nil {
		window.SetIcon(fyneApp.Icon())
	}

	titleLabel := canvas.NewText("⏰ Wake Alarm", colorNormal)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 26

	timerLabel := canvas.NewText(countdown.FormatRemaining(0), colorNormal)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	statusLabel := canvas.NewText("", colorMuted)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextSize = 15

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Your name")
	minutesEntry := widget.NewEntry()
	minutesEntry.SetPlaceHolder("Minutes")

	progressBar := widget.NewProgressBar()
	progressBar.Min, progressBar.Max = 0, 100

	win := &Window{
		app:          fyneApp,
		window:       window,
		config:       config,
		nameEntry:    nameEntry,
		minutesEntry: minutesEntry,
		progressBar:  progressBar,
		timerLabel:   timerLabel,
		statusLabel:  statusLabel,
		titleLabel:   titleLabel,
		scene:        newScene(),
	}

	win.soundSelect = widget.NewSelect(soundOptions(), win.handleSoundSelected)
	win.soundSelect.Selected = model.DefaultPreset().Name
	win.startButton = widget.NewButton(startLabel(countdown.StatusIdle), win.handleStartPause)
	win.startButton.Importance = widget.HighImportance
	win.resetButton = widget.NewButton("🔄 Reset", win.handleReset)

	quick := make([]fyne.CanvasObject, 0, len(config.QuickMinutes))
	for _, minutes := range config.QuickMinutes {
		quick = append(quick, widget.NewButton(quickLabel(minutes), func() {
			win.minutesEntry.SetText(strconv.FormatFloat(minutes, 'f', -1, 64))
		}))
	}

	form := container.NewVBox(
		titleLabel,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nameEntry,
		widget.NewLabelWithStyle("Duration (minutes)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		minutesEntry,
		container.NewGridWithColumns(max(len(quick), 1), quick...),
		widget.NewLabelWithStyle("Alarm sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		win.soundSelect,
		layout.NewSpacer(),
		timerLabel,
		progressBar,
		statusLabel,
		layout.NewSpacer(),
		container.NewGridWithColumns(2, win.startButton, win.resetButton),
	)

	backdrop := container.NewStack(win.scene.objects()...)
	window.SetContent(container.NewStack(backdrop, container.NewPadded(form)))
	window.Resize(fyne.NewSize(config.Width, config.Height))
	window.SetMaster()
	return win
}

// Bind attaches the command surface.
func (win *Window) Bind(commands Commands) {
	win.commands = commands
	if choice := commands.AlarmChoice(); choice != nil {
		win.soundSelect.Selected = choice.Label()
		win.soundSelect.Refresh()
	}
}

// SetOnStatus registers a listener for status lines, used by the tray.
func (win *Window) SetOnStatus(handler func(string)) {
	win.onStatus = handler
}

// Show displays the window and brings it forward.
func (win *Window) Show() {
	fyne.Do(func() {
		win.window.Show()
		win.window.RequestFocus()
	})
}

// ShowAndRun shows the window and runs the fyne event loop.
func (win *Window) ShowAndRun() {
	win.window.ShowAndRun()
}

// RenderTimer updates the MM:SS label and its colour.
func (win *Window) RenderTimer(text string, class countdown.ColorClass) {
	fyne.Do(func() {
		win.timerLabel.Text = text
		win.timerLabel.Color = timerColor(class)
		win.timerLabel.Refresh()
	})
}

// RenderProgress updates the progress bar.
func (win *Window) RenderProgress(percent float64) {
	fyne.Do(func() {
		win.progressBar.SetValue(percent)
	})
}

// RenderStatus updates the status line and the start button label.
func (win *Window) RenderStatus(message string) {
	fyne.Do(func() {
		win.statusLabel.Text = message
		win.statusLabel.Refresh()
		win.refreshControls()
		if win.onStatus != nil {
			win.onStatus(message)
		}
	})
}

// RenderScene draws one animation frame behind the form.
func (win *Window) RenderScene(frame animation.Frame) {
	fyne.Do(func() {
		win.scene.draw(frame)
		if frame.Night != win.night {
			win.night = frame.Night
			win.statusLabel.Color = statusColor(frame.Night)
			win.statusLabel.Refresh()
			win.titleLabel.Color = titleColor(frame.Night)
			win.titleLabel.Refresh()
		}
	})
}

// ShowInfo shows an informational dialog.
func (win *Window) ShowInfo(message string) {
	fyne.Do(func() {
		dialog.ShowInformation("Info", message, win.window)
	})
}

// ShowWarning shows a warning dialog.
func (win *Window) ShowWarning(message string) {
	fyne.Do(func() {
		dialog.ShowInformation("Warning", message, win.window)
	})
}

// ShowError shows an error dialog.
func (win *Window) ShowError(message string) {
	fyne.Do(func() {
		dialog.ShowError(errors.New(message), win.window)
	})
}

// ShowAlarm shows the wake-up prompt. onDismiss runs when it is closed.
func (win *Window) ShowAlarm(message string, onDismiss func()) {
	fyne.Do(func() {
		prompt := dialog.NewInformation("⏰ WAKE UP!", message, win.window)
		prompt.SetDismissText("I'm awake!")
		prompt.SetOnClosed(func() {
			if onDismiss != nil {
				onDismiss()
			}
		})
		win.window.Show()
		win.window.RequestFocus()
		prompt.Show()
	})
}

func (win *Window) handleStartPause() {
	if win.commands == nil {
		return
	}
	switch win.commands.Snapshot().Status {
	case countdown.StatusRunning, countdown.StatusPaused:
		win.commands.PauseResume()
		return
	}

	err := win.commands.StartCountdownText(win.nameEntry.Text, win.minutesEntry.Text)
	if err == nil {
		return
	}
	var validation *countdown.ValidationError
	switch {
	case errors.As(err, &validation):
		dialog.ShowInformation("Error", capitalize(validation.Reason)+"!", win.window)
	case errors.Is(err, countdown.ErrAwaitingAcknowledgement):
		dialog.ShowInformation("Alarm", "Dismiss the alarm before starting again.", win.window)
	default:
		dialog.ShowError(err, win.window)
	}
}

func (win *Window) handleReset() {
	if win.commands != nil {
		win.commands.Reset()
	}
}

func (win *Window) handleSoundSelected(name string) {
	if win.commands == nil {
		return
	}
	if name == model.CustomSoundName {
		win.chooseCustomSound()
		return
	}
	if tone, ok := model.LookupPresetByName(name); ok {
		win.commands.SetAlarmChoice(tone)
	}
}

func (win *Window) chooseCustomSound() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win.window)
			win.revertSoundSelection()
			return
		}
		if reader == nil {
			win.revertSoundSelection()
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		if err := win.commands.SelectCustomSound(path); err != nil {
			var fileErr *alarm.FileError
			if errors.As(err, &fileErr) {
				dialog.ShowError(fmt.Errorf("could not load sound file: %s", fileErr.Reason), win.window)
			} else {
				dialog.ShowError(err, win.window)
			}
			win.revertSoundSelection()
		}
	}, win.window)
	picker.SetFilter(storage.NewExtensionFileFilter(alarm.SupportedExtensions()))
	picker.Show()
}

// revertSoundSelection shows the active choice again without firing OnChanged.
func (win *Window) revertSoundSelection() {
	win.soundSelect.Selected = win.commands.AlarmChoice().Label()
	win.soundSelect.Refresh()
}

func (win *Window) refreshControls() {
	if win.commands == nil {
		return
	}
	status := win.commands.Snapshot().Status
	win.startButton.SetText(startLabel(status))
	if status == countdown.StatusCompleted {
		win.startButton.Disable()
	} else {
		win.startButton.Enable()
	}
}

func startLabel(status countdown.Status) string {
	switch status {
	case countdown.StatusRunning:
		return "⏸️ Pause Timer"
	case countdown.StatusPaused:
		return "▶️ Resume Timer"
	default:
		return "▶️ Start Timer"
	}
}

func quickLabel(minutes float64) string {
	if minutes < 1 {
		return fmt.Sprintf("%gs", math.Round(minutes*60))
	}
	return fmt.Sprintf("%gm", minutes)
}

func soundOptions() []string {
	presets := model.Presets()
	options := make([]string, 0, len(presets)+1)
	for _, preset := range presets {
		options = append(options, preset.Name)
	}
	return append(options, model.CustomSoundName)
}

func titleColor(night bool) color.Color {
	if night {
		return colorLight
	}
	return colorNormal
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	if text[0] >= 'a' && text[0] <= 'z' {
		return string(text[0]-'a'+'A') + text[1:]
	}
	return text
}
