package main

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"wakealarm/internal/app"
	"wakealarm/internal/config"
	"wakealarm/internal/platform"
	"wakealarm/internal/platform/audio"
	"wakealarm/internal/ui/tray"
	"wakealarm/internal/ui/window"
	"wakealarm/internal/xslog"
	"wakealarm/resources"
)

const appID = "com.wakealarm.app"

func runGUI(ctx context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	guard, err := platform.AcquireSingleInstance(config.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.ActivateRunning(config.AppName); err != nil {
			logger.Warn("could not activate running instance", xslog.Error(err))
		}
		logger.Info("another instance is already running")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))

	player := audio.New(audio.Config{SampleRate: cfg.SampleRate, Volume: cfg.Volume}, logger)
	win := window.New(fyneApp, window.Config{
		Title:        "Wake Alarm",
		Width:        float32(cfg.FieldWidth),
		Height:       float32(cfg.FieldHeight),
		QuickMinutes: app.QuickMinutes,
	})

	application := app.New(cfg, app.Deps{
		Renderer: win,
		Notifier: win,
		Player:   player,
		Logger:   logger,
	})
	win.Bind(application)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:       win.Show,
			OnStartPause: application.PauseResume,
			OnReset:      application.Reset,
			OnQuit:       fyneApp.Quit,
		})
		win.SetOnStatus(func(message string) {
			trayManager.Update(message, application.Snapshot().Status)
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := guard.Serve(runCtx, win.Show); err != nil {
			logger.Warn("single instance listener stopped", xslog.Error(err))
		}
	}()

	if err := application.Start(runCtx); err != nil {
		return err
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			logger.Warn("shutdown", xslog.Error(err))
		}
		player.StopPlayback()
	}()

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-stopped:
		}
	}()

	win.ShowAndRun()
	close(stopped)
	return nil
}
