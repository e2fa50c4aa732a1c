// Package config loads runtime settings from defaults, an optional YAML file
// and WAKEALARM_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"wakealarm/internal/core/model"
	"wakealarm/internal/platform"
	"wakealarm/internal/xslog"
)

const (
	AppName    = "wakealarm"
	EnvPrefix  = "WAKEALARM_"
	fileName   = "config.yaml"
	maxSamples = 192000
)

// Config holds every tunable. Settings are never written back to disk.
type Config struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	TickInterval  time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`

	DefaultSound string  `yaml:"default_sound" env:"DEFAULT_SOUND"`
	SampleRate   int     `yaml:"sample_rate" env:"SAMPLE_RATE"`
	Volume       float64 `yaml:"volume" env:"VOLUME"`

	ToneRepeats int           `yaml:"tone_repeats" env:"TONE_REPEATS"`
	ToneGap     time.Duration `yaml:"tone_gap" env:"TONE_GAP"`
	FileLoops   int           `yaml:"file_loops" env:"FILE_LOOPS"`

	StarCount        int     `yaml:"star_count" env:"STAR_COUNT"`
	CelebrationCount int     `yaml:"celebration_count" env:"CELEBRATION_COUNT"`
	FieldWidth       float64 `yaml:"field_width" env:"FIELD_WIDTH"`
	FieldHeight      float64 `yaml:"field_height" env:"FIELD_HEIGHT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:         string(xslog.Default),
		LogFormat:        string(xslog.FormatText),
		TickInterval:     time.Second,
		FrameInterval:    50 * time.Millisecond,
		DefaultSound:     model.DefaultPresetKey,
		SampleRate:       44100,
		Volume:           0,
		ToneRepeats:      10,
		ToneGap:          200 * time.Millisecond,
		FileLoops:        3,
		StarCount:        80,
		CelebrationCount: 30,
		FieldWidth:       420,
		FieldHeight:      820,
	}
}

// Load builds the effective configuration. An empty path means the default
// location, which may be absent. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		resolved, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = resolved
	}

	if err := ApplyFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, nil); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, fileName), nil
}

// ApplyFile overlays the YAML file at path. Keys absent from the file keep
// their current values; unknown keys are rejected.
func ApplyFile(cfg *Config, path string) error {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(rawData))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays WAKEALARM_* variables. A nil environment reads the
// process environment.
func ApplyEnv(cfg *Config, environment map[string]string) error {
	options := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		options.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (cfg Config) Validate() error {
	if _, err := xslog.Parse(cfg.LogLevel); err != nil {
		return &Error{Key: "log_level", Err: err}
	}
	switch xslog.Format(cfg.LogFormat) {
	case xslog.FormatJSON, xslog.FormatText:
	default:
		return &Error{Key: "log_format", Err: fmt.Errorf("unknown format %q (valid: json, text)", cfg.LogFormat)}
	}
	if cfg.TickInterval <= 0 {
		return &Error{Key: "tick_interval", Err: errors.New("must be positive")}
	}
	if cfg.FrameInterval <= 0 {
		return &Error{Key: "frame_interval", Err: errors.New("must be positive")}
	}
	if _, ok := model.LookupPreset(cfg.DefaultSound); !ok {
		return &Error{Key: "default_sound", Err: fmt.Errorf("unknown preset %q", cfg.DefaultSound)}
	}
	if cfg.SampleRate <= 0 || cfg.SampleRate > maxSamples {
		return &Error{Key: "sample_rate", Err: fmt.Errorf("must be in (0, %d]", maxSamples)}
	}
	if cfg.Volume < -5 || cfg.Volume > 2 {
		return &Error{Key: "volume", Err: errors.New("must be in [-5, 2]")}
	}
	if cfg.ToneRepeats <= 0 {
		return &Error{Key: "tone_repeats", Err: errors.New("must be positive")}
	}
	if cfg.ToneGap < 0 {
		return &Error{Key: "tone_gap", Err: errors.New("must not be negative")}
	}
	if cfg.FileLoops <= 0 {
		return &Error{Key: "file_loops", Err: errors.New("must be positive")}
	}
	if cfg.StarCount < 0 || cfg.CelebrationCount < 0 {
		return &Error{Key: "star_count", Err: errors.New("effect counts must not be negative")}
	}
	if cfg.FieldWidth <= 0 || cfg.FieldHeight <= 0 {
		return &Error{Key: "field_width", Err: errors.New("field dimensions must be positive")}
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (cfg Config) Level() xslog.Level {
	level, err := xslog.Parse(cfg.LogLevel)
	if err != nil {
		return xslog.Default
	}
	return level
}

// Error reports an invalid configuration key.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
