// Package alarm plays the completion alarm and emits the celebration cue.
package alarm

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"wakealarm/internal/core/model"
	"wakealarm/internal/xslog"
)

// Player is the audio backend.
type Player interface {
	// PlayTone blocks for the length of the beep.
	PlayTone(freqHz, durationMs int) error
	// PlayFile starts playing path loopCount times and returns immediately.
	PlayFile(path string, loopCount int) error
	// Playing reports whether file playback is still in progress.
	Playing() bool
	StopPlayback()
}

// Notifier shows user-visible messages.
type Notifier interface {
	ShowInfo(message string)
	ShowWarning(message string)
	ShowError(message string)
}

// Celebrator receives the visual celebration cue.
type Celebrator interface {
	Celebrate(model.Celebration)
}

// Config contains alarm playback timing.
type Config struct {
	ToneRepeats  int
	ToneGap      time.Duration
	FileLoops    int
	PollInterval time.Duration
	Celebration  model.Celebration
}

// DefaultConfig returns the standard beep pattern and celebration burst.
func DefaultConfig() Config {
	return Config{
		ToneRepeats:  10,
		ToneGap:      200 * time.Millisecond,
		FileLoops:    3,
		PollInterval: 100 * time.Millisecond,
		Celebration:  model.DefaultCelebration(),
	}
}

// Deps are the collaborators used by a Trigger. Any of them may be nil.
type Deps struct {
	Player     Player
	Notifier   Notifier
	Celebrator Celebrator
	Logger     *slog.Logger
}

// Trigger fires the alarm once per completed session.
type Trigger struct {
	mu          sync.Mutex
	config      Config
	deps        Deps
	logger      *slog.Logger
	playing     atomic.Bool
	active      atomic.Int32
	cancel      context.CancelFunc
	lastSession string
	tasks       sync.WaitGroup
}

// New creates a Trigger.
func New(config Config, deps Deps) *Trigger {
	defaults := DefaultConfig()
	if config.ToneRepeats <= 0 {
		config.ToneRepeats = defaults.ToneRepeats
	}
	if config.ToneGap < 0 {
		config.ToneGap = 0
	}
	if config.FileLoops <= 0 {
		config.FileLoops = defaults.FileLoops
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Trigger{
		config: config,
		deps:   deps,
		logger: logger.With(xslog.Component("alarm")),
	}
}

// Fire emits the celebration cue and starts playback for sessionID. Repeated
// calls for the same session are ignored. It reports whether the alarm fired.
func (trigger *Trigger) Fire(ctx context.Context, sessionID string, choice model.SoundChoice) bool {
	trigger.mu.Lock()
	if sessionID != "" && sessionID == trigger.lastSession {
		trigger.mu.Unlock()
		return false
	}
	trigger.lastSession = sessionID
	if trigger.cancel != nil {
		trigger.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	runCtx = xslog.WithLogger(runCtx, trigger.logger.With(xslog.SessionID(sessionID)))
	trigger.cancel = cancel
	trigger.playing.Store(true)
	trigger.active.Add(1)
	trigger.tasks.Add(1)
	trigger.mu.Unlock()

	trigger.logger.Info("alarm fired", xslog.SessionID(sessionID), xslog.Sound(labelOf(choice)))

	if trigger.deps.Celebrator != nil && trigger.config.Celebration.Count > 0 {
		trigger.deps.Celebrator.Celebrate(trigger.config.Celebration)
	}

	go func() {
		defer trigger.tasks.Done()
		defer trigger.active.Add(-1)
		trigger.play(runCtx, choice)
	}()
	return true
}

// Cancel stops playback and marks sessionID as handled, so a completion for
// that session that is still in flight cannot fire afterwards.
func (trigger *Trigger) Cancel(sessionID string) {
	if sessionID != "" {
		trigger.mu.Lock()
		trigger.lastSession = sessionID
		trigger.mu.Unlock()
	}
	trigger.Stop()
}

// Stop ends playback. The running task exits at its next checkpoint.
func (trigger *Trigger) Stop() {
	trigger.playing.Store(false)

	trigger.mu.Lock()
	cancel := trigger.cancel
	trigger.cancel = nil
	trigger.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if trigger.deps.Player != nil {
		trigger.deps.Player.StopPlayback()
	}
}

// Active reports whether a playback task is still running.
func (trigger *Trigger) Active() bool {
	return trigger.active.Load() > 0
}

// Wait blocks until every playback task has exited.
func (trigger *Trigger) Wait() {
	trigger.tasks.Wait()
}

func (trigger *Trigger) play(ctx context.Context, choice model.SoundChoice) {
	switch choice := choice.(type) {
	case model.CustomFile:
		trigger.playFile(ctx, choice)
	case model.PresetTone:
		trigger.playTone(ctx, choice)
	case nil:
		trigger.playTone(ctx, model.DefaultPreset())
	default:
		panic(fmt.Sprintf("alarm: unknown sound choice %T", choice))
	}
}

func (trigger *Trigger) playFile(ctx context.Context, choice model.CustomFile) {
	logger := xslog.FromContext(ctx, trigger.logger)
	player := trigger.deps.Player
	if player == nil || choice.Path == "" {
		logger.Warn("custom sound unavailable", xslog.Path(choice.Path))
		trigger.warn("No custom sound file selected or audio playback is not available!")
		return
	}

	if err := player.PlayFile(choice.Path, trigger.config.FileLoops); err != nil {
		playbackErr := &PlaybackError{Op: "play custom sound", Err: err}
		logger.Warn("custom sound failed", xslog.Path(choice.Path), xslog.Error(playbackErr))
		trigger.fail(fmt.Sprintf("Could not play custom sound file %s!", filepath.Base(choice.Path)))
		return
	}

	for trigger.playing.Load() && player.Playing() {
		if !sleepWithContext(ctx, trigger.config.PollInterval) {
			return
		}
	}
}

func (trigger *Trigger) playTone(ctx context.Context, tone model.PresetTone) {
	logger := xslog.FromContext(ctx, trigger.logger)
	player := trigger.deps.Player
	if player == nil {
		logger.Debug("no audio backend, alarm is visual only")
		return
	}

	for i := 0; i < trigger.config.ToneRepeats; i++ {
		if !trigger.playing.Load() || ctx.Err() != nil {
			return
		}
		freq := tone.FrequencyHz + (i%3)*100
		if err := player.PlayTone(freq, tone.DurationMillis()); err != nil {
			logger.Debug("beep failed",
				xslog.Repetition(i),
				xslog.FrequencyHz(freq),
				xslog.Error(err),
			)
		}
		if !sleepWithContext(ctx, trigger.config.ToneGap) {
			return
		}
	}
}

func (trigger *Trigger) warn(message string) {
	if trigger.deps.Notifier != nil {
		trigger.deps.Notifier.ShowWarning(message)
	}
}

func (trigger *Trigger) fail(message string) {
	if trigger.deps.Notifier != nil {
		trigger.deps.Notifier.ShowError(message)
	}
}

func labelOf(choice model.SoundChoice) string {
	if choice == nil {
		return model.DefaultPreset().Label()
	}
	return choice.Label()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
