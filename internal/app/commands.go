package app

import (
	"errors"
	"path/filepath"

	"wakealarm/internal/core/alarm"
	"wakealarm/internal/core/countdown"
	"wakealarm/internal/core/model"
	"wakealarm/internal/xslog"
)

// StartCountdown starts a fresh countdown or resumes a paused one. The sound
// choice in effect at a fresh start is kept for that whole session.
func (app *App) StartCountdown(name string, minutes float64) error {
	app.mu.Lock()
	choice := app.choice
	app.mu.Unlock()

	if err := app.machine.Start(name, minutes); err != nil {
		if errors.Is(err, countdown.ErrValidation) {
			app.logger.Debug("start rejected", xslog.Error(err))
		} else {
			app.logger.Warn("start refused", xslog.Error(err))
		}
		return err
	}

	snapshot := app.machine.Snapshot()
	fresh := false
	app.mu.Lock()
	if snapshot.ID != app.capturedID {
		app.capturedID = snapshot.ID
		app.capturedSound = choice
		fresh = true
	}
	app.mu.Unlock()

	if fresh {
		app.engine.ResetProgress()
	}
	return nil
}

// StartCountdownText parses minutes typed by the user before starting.
func (app *App) StartCountdownText(name, minutes string) error {
	value, err := countdown.ParseMinutes(minutes)
	if err != nil {
		return err
	}
	return app.StartCountdown(name, value)
}

// PauseResume toggles a running or paused countdown.
func (app *App) PauseResume() {
	app.machine.PauseResume()
}

// Reset silences the alarm and returns to Idle with zero progress. A
// completion of the cancelled session that is still being handed off never
// rings.
func (app *App) Reset() {
	app.trigger.Cancel(app.machine.Snapshot().ID)
	app.machine.Reset()
	app.engine.ResetProgress()
	app.renderIdle()
}

// Acknowledge dismisses a finished alarm.
func (app *App) Acknowledge() {
	app.acknowledge(app.machine.Snapshot().ID)
}

// acknowledge dismisses the alarm of sessionID only, so a stale prompt cannot
// silence a later session.
func (app *App) acknowledge(sessionID string) {
	if sessionID == "" || !app.machine.AcknowledgeSession(sessionID) {
		return
	}
	app.trigger.Stop()
	app.engine.ResetProgress()
	app.renderIdle()
}

// SelectCustomSound validates path and makes it the alarm sound. On failure
// the previous choice is kept.
func (app *App) SelectCustomSound(path string) error {
	if err := alarm.ValidateSoundFile(path); err != nil {
		app.logger.Warn("custom sound rejected", xslog.Path(path), xslog.Error(err))
		return err
	}

	app.SetAlarmChoice(model.CustomFile{Path: path})
	app.logger.Info("custom sound selected", xslog.Path(path))
	if app.deps.Notifier != nil {
		app.deps.Notifier.ShowInfo("Custom alarm sound loaded: " + filepath.Base(path))
	}
	return nil
}

// SetAlarmChoice replaces the sound used by the next fresh start. A nil
// choice selects the default preset.
func (app *App) SetAlarmChoice(choice model.SoundChoice) {
	if choice == nil {
		choice = model.DefaultPreset()
	}
	app.mu.Lock()
	app.choice = choice
	app.mu.Unlock()
}

// AlarmChoice returns the currently selected sound.
func (app *App) AlarmChoice() model.SoundChoice {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.choice
}

// Snapshot returns a consistent view of the countdown.
func (app *App) Snapshot() countdown.Snapshot {
	return app.machine.Snapshot()
}

// AlarmActive reports whether alarm playback is still running.
func (app *App) AlarmActive() bool {
	return app.trigger.Active()
}
