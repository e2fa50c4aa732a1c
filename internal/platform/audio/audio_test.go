package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"

	"wakealarm/internal/core/alarm"
)

func TestDecoderFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "alarm.mp3"},
		{path: "alarm.WAV"},
		{path: "alarm.ogg"},
		{path: "alarm.flac"},
		{path: "alarm.aiff", wantErr: true},
		{path: "alarm", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			decode, err := decoderFor(tt.path)
			if tt.wantErr {
				if !errors.Is(err, alarm.ErrSoundFile) {
					t.Fatalf("decoderFor(%q) error = %v, want ErrSoundFile", tt.path, err)
				}
				return
			}
			if err != nil || decode == nil {
				t.Fatalf("decoderFor(%q) = %v, %v", tt.path, decode, err)
			}
		})
	}
}

func TestSineToneLength(t *testing.T) {
	t.Parallel()

	rate := beep.SampleRate(8000)
	stream := sineTone(rate, 1000, 500*time.Millisecond)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := stream.Stream(buf)
		if !ok {
			break
		}
		for _, sample := range buf[:n] {
			if sample[0] != sample[1] {
				t.Fatal("channels differ")
			}
			peak = math.Max(peak, math.Abs(sample[0]))
		}
		total += n
	}

	if want := rate.N(500 * time.Millisecond); total != want {
		t.Fatalf("streamed %d samples, want %d", total, want)
	}
	if peak > toneAmplitude || peak < toneAmplitude*0.9 {
		t.Fatalf("peak amplitude %.3f outside expected range", peak)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	t.Parallel()

	if got := envelope(0, 100, 10); got != 0 {
		t.Fatalf("envelope at start = %v, want 0", got)
	}
	if got := envelope(50, 100, 10); got != 1 {
		t.Fatalf("envelope in the middle = %v, want 1", got)
	}
	if got := envelope(99, 100, 10); got != 0.1 {
		t.Fatalf("envelope at the end = %v, want 0.1", got)
	}
}

func TestPlayFileRejectsBadPathWithoutDevice(t *testing.T) {
	t.Parallel()

	player := New(Config{}, nil)
	err := player.PlayFile("/nonexistent/alarm.mp3", 3)
	if !errors.Is(err, alarm.ErrSoundFile) {
		t.Fatalf("PlayFile error = %v, want ErrSoundFile", err)
	}
	if player.Playing() {
		t.Fatal("Playing after a failed PlayFile")
	}
	player.StopPlayback()
}
