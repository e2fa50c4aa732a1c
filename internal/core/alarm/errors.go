package alarm

import (
	"errors"
	"fmt"
)

var (
	// ErrSoundFile matches every *FileError.
	ErrSoundFile = errors.New("sound file rejected")
	// ErrPlayback matches every *PlaybackError.
	ErrPlayback = errors.New("playback failed")
	// ErrBackendUnavailable is returned by players that cannot reach an audio device.
	ErrBackendUnavailable = errors.New("audio backend unavailable")
)

// FileError reports a custom sound file that cannot be used.
type FileError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sound file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("sound file %s: %s", e.Path, e.Reason)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Is(target error) bool { return target == ErrSoundFile }

// PlaybackError wraps a failure reported by the audio backend.
type PlaybackError struct {
	Op  string
	Err error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

func (e *PlaybackError) Is(target error) bool { return target == ErrPlayback }
