package xslog

import (
	"log/slog"
	"time"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(keyError, "<nil>")
	}
	return slog.String(keyError, err.Error())
}

func SessionID(id string) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, id)
}

func Owner(name string) slog.Attr {
	const ownerKey = "owner"
	return slog.String(ownerKey, name)
}

func Remaining(seconds int) slog.Attr {
	const remainingKey = "remaining_seconds"
	return slog.Int(remainingKey, seconds)
}

func Sound(label string) slog.Attr {
	const soundKey = "sound"
	return slog.String(soundKey, label)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Repetition(i int) slog.Attr {
	const repetitionKey = "repetition"
	return slog.Int(repetitionKey, i)
}

func FrequencyHz(freq int) slog.Attr {
	const frequencyKey = "frequency_hz"
	return slog.Int(frequencyKey, freq)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Component(name string) slog.Attr {
	const componentKey = "component"
	return slog.String(componentKey, name)
}

func Loops(count int) slog.Attr {
	const loopsKey = "loops"
	return slog.Int(loopsKey, count)
}
