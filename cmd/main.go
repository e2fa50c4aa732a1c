package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wakealarm/internal/config"
	"wakealarm/internal/xslog"
)

var version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
}

func main() {
	_ = godotenv.Load()

	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:     config.AppName,
		Short:   "Countdown alarm with a starfield",
		Long:    "Runs a named countdown, then rings an alarm and celebrates until you confirm you are awake.",
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), flags)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(tuiCmd(flags))

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the --log-level flag over the file and environment.
func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	logger := xslog.NewLogger(os.Stderr, cfg.Level(), xslog.Format(cfg.LogFormat))
	slog.SetDefault(logger)
	return logger
}
