// Package audio is the speaker backend for alarm playback.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"wakealarm/internal/core/alarm"
	"wakealarm/internal/xslog"
)

// Config contains speaker settings.
type Config struct {
	SampleRate int
	// Volume is a base-2 exponent; 0 leaves samples untouched.
	Volume float64
}

// Player plays generated tones and decoded files through the system speaker.
// The speaker is opened lazily on first use.
type Player struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	volume     float64
	logger     *slog.Logger

	initOnce sync.Once
	initErr  error
	ready    atomic.Bool

	playing    atomic.Bool
	generation uint64
	file       *os.File
}

var _ alarm.Player = (*Player)(nil)

// New creates a Player. Nothing touches the audio device until playback.
func New(config Config, logger *slog.Logger) *Player {
	if config.SampleRate <= 0 {
		config.SampleRate = 44100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		sampleRate: beep.SampleRate(config.SampleRate),
		volume:     config.Volume,
		logger:     logger.With(xslog.Component("audio")),
	}
}

// PlayTone plays a sine beep and blocks until it has been mixed.
func (player *Player) PlayTone(freqHz, durationMs int) error {
	if err := player.open(); err != nil {
		return err
	}
	duration := time.Duration(durationMs) * time.Millisecond
	done := make(chan struct{})
	speaker.Play(beep.Seq(
		player.withVolume(sineTone(player.sampleRate, float64(freqHz), duration)),
		beep.Callback(func() { close(done) }),
	))

	// StopPlayback clears the mixer, so the callback may never run.
	select {
	case <-done:
	case <-time.After(duration + 250*time.Millisecond):
		player.logger.Debug("tone ended without callback",
			xslog.FrequencyHz(freqHz),
			xslog.Duration(duration),
		)
	}
	return nil
}

// PlayFile starts looping path loopCount times and returns immediately.
func (player *Player) PlayFile(path string, loopCount int) error {
	if err := alarm.ValidateSoundFile(path); err != nil {
		return err
	}
	decode, err := decoderFor(path)
	if err != nil {
		return err
	}
	if err := player.open(); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound file: %w", err)
	}
	stream, format, err := decode(file)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if loopCount <= 0 {
		loopCount = 1
	}

	var source beep.Streamer = beep.Loop(loopCount, stream)
	if format.SampleRate != player.sampleRate {
		source = beep.Resample(4, format.SampleRate, player.sampleRate, source)
	}

	player.mu.Lock()
	if player.file != nil {
		speaker.Clear()
		player.stopLocked()
	}
	player.generation++
	generation := player.generation
	player.file = file
	player.playing.Store(true)
	player.mu.Unlock()

	player.logger.Debug("playing sound file", xslog.Path(path), xslog.Loops(loopCount))
	speaker.Play(beep.Seq(
		player.withVolume(source),
		beep.Callback(func() { go player.finished(generation) }),
	))
	return nil
}

// Playing reports whether a file is still being played.
func (player *Player) Playing() bool {
	return player.playing.Load()
}

// StopPlayback silences everything that is currently mixed.
func (player *Player) StopPlayback() {
	if player.ready.Load() {
		speaker.Clear()
	}

	player.mu.Lock()
	player.generation++
	player.stopLocked()
	player.mu.Unlock()
}

func (player *Player) finished(generation uint64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if generation != player.generation {
		return
	}
	player.stopLocked()
}

func (player *Player) stopLocked() {
	player.playing.Store(false)
	if player.file != nil {
		_ = player.file.Close()
		player.file = nil
	}
}

func (player *Player) open() error {
	player.initOnce.Do(func() {
		err := speaker.Init(player.sampleRate, player.sampleRate.N(time.Second/10))
		if err != nil {
			player.initErr = errors.Join(alarm.ErrBackendUnavailable, err)
			player.logger.Warn("audio device unavailable", xslog.Error(err))
			return
		}
		player.ready.Store(true)
	})
	return player.initErr
}

func (player *Player) withVolume(source beep.Streamer) beep.Streamer {
	if player.volume == 0 {
		return source
	}
	return &effects.Volume{
		Streamer: source,
		Base:     2,
		Volume:   player.volume,
		Silent:   player.volume <= -5,
	}
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
