package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestApplyFileOverlaysPresentKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
tick_interval: 500ms
default_sound: urgent
star_count: 12
`)

	cfg := Default()
	if err := ApplyFile(&cfg, path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	want := Default()
	want.LogLevel = "debug"
	want.TickInterval = 500 * time.Millisecond
	want.DefaultSound = "urgent"
	want.StarCount = 12
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFileRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "alarm_volume: 11\n")
	cfg := Default()
	if err := ApplyFile(&cfg, path); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestApplyFileEmptyDocument(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "")
	cfg := Default()
	if err := ApplyFile(&cfg, path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("empty file changed config (-want +got):\n%s", diff)
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DefaultSound = "gentle"
	err := ApplyEnv(&cfg, map[string]string{
		"WAKEALARM_DEFAULT_SOUND":  "space",
		"WAKEALARM_FRAME_INTERVAL": "20ms",
		"WAKEALARM_VOLUME":         "-1.5",
		"DEFAULT_SOUND":            "melodic",
	})
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	want := Default()
	want.DefaultSound = "space"
	want.FrameInterval = 20 * time.Millisecond
	want.Volume = -1.5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := ApplyEnv(&cfg, map[string]string{"WAKEALARM_STAR_COUNT": "lots"}); err == nil {
		t.Fatal("non-numeric star count accepted")
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantKey: "log_level"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantKey: "log_format"},
		{name: "zero tick", mutate: func(c *Config) { c.TickInterval = 0 }, wantKey: "tick_interval"},
		{name: "negative frame", mutate: func(c *Config) { c.FrameInterval = -time.Millisecond }, wantKey: "frame_interval"},
		{name: "unknown sound", mutate: func(c *Config) { c.DefaultSound = "foghorn" }, wantKey: "default_sound"},
		{name: "sample rate", mutate: func(c *Config) { c.SampleRate = 0 }, wantKey: "sample_rate"},
		{name: "volume", mutate: func(c *Config) { c.Volume = 9 }, wantKey: "volume"},
		{name: "repeats", mutate: func(c *Config) { c.ToneRepeats = 0 }, wantKey: "tone_repeats"},
		{name: "gap", mutate: func(c *Config) { c.ToneGap = -time.Second }, wantKey: "tone_gap"},
		{name: "loops", mutate: func(c *Config) { c.FileLoops = 0 }, wantKey: "file_loops"},
		{name: "stars", mutate: func(c *Config) { c.StarCount = -1 }, wantKey: "star_count"},
		{name: "field", mutate: func(c *Config) { c.FieldHeight = 0 }, wantKey: "field_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var configErr *Error
			if !errors.As(err, &configErr) {
				t.Fatalf("Validate() = %v, want *Error", err)
			}
			if configErr.Key != tt.wantKey {
				t.Fatalf("key = %q, want %q", configErr.Key, tt.wantKey)
			}
		})
	}
}
