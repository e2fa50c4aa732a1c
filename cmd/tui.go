package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wakealarm/internal/app"
	"wakealarm/internal/config"
	"wakealarm/internal/core/model"
	"wakealarm/internal/platform/audio"
	"wakealarm/internal/ui/terminal"
	"wakealarm/internal/xslog"
)

const (
	skyCols = 40
	skyRows = 8
)

type tuiFlags struct {
	name    string
	minutes float64
	sound   string
	file    string
	logFile string
}

func tuiCmd(root *rootFlags) *cobra.Command {
	flags := &tuiFlags{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the countdown in the terminal",
		Long:  "Starts a countdown immediately and shows it full-screen in the terminal.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), root, flags)
		},
	}
	cmd.Flags().StringVar(&flags.name, "name", "", "who to wake up")
	cmd.Flags().Float64Var(&flags.minutes, "minutes", 1, "countdown length in minutes")
	cmd.Flags().StringVar(&flags.sound, "sound", "", "preset sound: "+strings.Join(model.PresetKeys(), ", "))
	cmd.Flags().StringVar(&flags.file, "file", "", "custom alarm sound file")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of discarding them")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("sound", "file")
	return cmd
}

func runTUI(ctx context.Context, root *rootFlags, flags *tuiFlags) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	// The alternate screen owns stderr, so logs go to a file or nowhere.
	logger := xslog.Discard()
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		logger = xslog.NewLogger(file, cfg.Level(), xslog.Format(cfg.LogFormat))
	}
	slog.SetDefault(logger)

	bridge := terminal.NewBridge(skyCols, skyRows)
	player := audio.New(audio.Config{SampleRate: cfg.SampleRate, Volume: cfg.Volume}, logger)
	application := app.New(cfg, app.Deps{
		Renderer: bridge,
		Notifier: bridge,
		Player:   player,
		Logger:   logger,
	})

	if err := chooseSound(application, flags); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := application.Start(runCtx); err != nil {
		return err
	}
	defer func() {
		_ = application.Shutdown()
		player.StopPlayback()
	}()

	if err := application.StartCountdown(flags.name, flags.minutes); err != nil {
		return err
	}

	program := tea.NewProgram(
		terminal.New(application, terminal.Options{Name: flags.name, Minutes: flags.minutes}),
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
	)
	go bridge.Run(runCtx, program.Send)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func chooseSound(application *app.App, flags *tuiFlags) error {
	switch {
	case flags.file != "":
		return application.SelectCustomSound(flags.file)
	case flags.sound != "":
		tone, ok := model.LookupPreset(flags.sound)
		if !ok {
			return &config.Error{Key: "sound", Err: fmt.Errorf("unknown preset %q, want one of %s", flags.sound, strings.Join(model.PresetKeys(), ", "))}
		}
		application.SetAlarmChoice(tone)
	}
	return nil
}
