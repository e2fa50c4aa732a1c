// Package app wires the countdown, animation loop and alarm into one object
// that presentation layers drive through commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"wakealarm/internal/config"
	"wakealarm/internal/core/alarm"
	"wakealarm/internal/core/clock"
	"wakealarm/internal/core/countdown"
	"wakealarm/internal/core/model"
	"wakealarm/internal/ui/animation"
	"wakealarm/internal/xslog"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("app already started")

// QuickMinutes are the preset durations offered by both frontends.
var QuickMinutes = []float64{0.1, 1, 5, 10}

// Deps are the collaborators supplied by the frontend. Only Renderer is
// required.
type Deps struct {
	Renderer Renderer
	Notifier Notifier
	Player   alarm.Player
	Clock    clock.Clock
	Logger   *slog.Logger
}

// App owns the single countdown and everything that reacts to it.
type App struct {
	deps    Deps
	logger  *slog.Logger
	machine *countdown.Machine
	engine  *animation.Engine
	trigger *alarm.Trigger
	events  <-chan countdown.Event

	mu            sync.Mutex
	choice        model.SoundChoice
	capturedID    string
	capturedSound model.SoundChoice
	runCtx        context.Context
	cancel        context.CancelFunc
	group         *errgroup.Group

	view viewState
}

// New builds an idle App from cfg. Nothing runs until Start.
func New(cfg config.Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem()
	}
	deps.Logger = logger

	app := &App{
		deps:   deps,
		logger: logger.With(xslog.Component("app")),
		choice: initialChoice(cfg.DefaultSound),
		runCtx: context.Background(),
	}

	app.machine = countdown.New(countdown.Config{
		TickInterval: cfg.TickInterval,
		Clock:        deps.Clock,
		Logger:       logger,
	})

	animationConfig := animation.DefaultConfig()
	animationConfig.FrameInterval = cfg.FrameInterval
	animationConfig.StarCount = cfg.StarCount
	animationConfig.FieldWidth = cfg.FieldWidth
	animationConfig.FieldHeight = cfg.FieldHeight
	animationConfig.Clock = deps.Clock
	app.engine = animation.New(animationConfig, app.target, app.onFrame)

	alarmConfig := alarm.DefaultConfig()
	alarmConfig.ToneRepeats = cfg.ToneRepeats
	alarmConfig.ToneGap = cfg.ToneGap
	alarmConfig.FileLoops = cfg.FileLoops
	alarmConfig.Celebration.Count = cfg.CelebrationCount
	alarmDeps := alarm.Deps{
		Player:     deps.Player,
		Celebrator: app.engine,
		Logger:     logger,
	}
	if deps.Notifier != nil {
		alarmDeps.Notifier = deps.Notifier
	}
	app.trigger = alarm.New(alarmConfig, alarmDeps)

	app.machine.SetOnComplete(app.onComplete)
	app.events = app.machine.Subscribe(32)
	return app
}

// Start launches the tick producer, the frame loop and the event pump.
func (app *App) Start(ctx context.Context) error {
	app.mu.Lock()
	if app.group != nil {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	app.runCtx = groupCtx
	app.cancel = cancel
	app.group = group
	app.mu.Unlock()

	app.renderStatus(StatusReady)
	app.renderIdle()

	group.Go(func() error {
		if err := app.machine.Run(groupCtx); err != nil {
			return fmt.Errorf("tick producer: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		if err := app.engine.Run(groupCtx); err != nil {
			return fmt.Errorf("frame loop: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		app.pump(groupCtx)
		return nil
	})

	app.logger.Info("app started")
	return nil
}

// Shutdown stops the alarm and the background loops and waits for them.
// It is safe to call more than once.
func (app *App) Shutdown() error {
	app.trigger.Stop()

	app.mu.Lock()
	cancel := app.cancel
	group := app.group
	app.cancel = nil
	app.mu.Unlock()

	var err error
	if cancel != nil {
		cancel()
		err = group.Wait()
	}
	app.trigger.Wait()
	app.machine.Close()
	app.logger.Info("app stopped")
	return err
}

// Engine exposes the animation engine for frontends that draw the scene.
func (app *App) Engine() *animation.Engine {
	return app.engine
}

func (app *App) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-app.events:
			if !ok {
				return
			}
			if message, ok := statusFor(event); ok {
				app.renderStatus(message)
			}
		}
	}
}

func (app *App) onComplete(session countdown.Session) {
	sound := app.soundFor(session.ID)

	app.mu.Lock()
	ctx := app.runCtx
	app.mu.Unlock()

	if !app.trigger.Fire(ctx, session.ID, sound) {
		return
	}
	// A reset may have landed while the trigger was firing.
	if snapshot := app.machine.Snapshot(); snapshot.ID != session.ID || snapshot.Status != countdown.StatusCompleted {
		app.trigger.Cancel(session.ID)
		return
	}
	if app.deps.Notifier != nil {
		app.deps.Notifier.ShowAlarm(
			fmt.Sprintf("Time's up %s! Time to wake up!", session.Owner),
			func() { app.acknowledge(session.ID) },
		)
	}
}

func (app *App) soundFor(sessionID string) model.SoundChoice {
	app.mu.Lock()
	defer app.mu.Unlock()
	if sessionID == app.capturedID && app.capturedSound != nil {
		return app.capturedSound
	}
	return app.choice
}

func (app *App) target() animation.Target {
	snapshot := app.machine.Snapshot()
	return animation.Target{
		Percent: snapshot.TargetPercent,
		Night:   snapshot.Status == countdown.StatusRunning || snapshot.Status == countdown.StatusPaused,
	}
}

func initialChoice(key string) model.SoundChoice {
	if tone, ok := model.LookupPreset(key); ok {
		return tone
	}
	return model.DefaultPreset()
}
