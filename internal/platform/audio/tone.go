package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	toneAmplitude = 0.4
	// Short linear ramps at both ends keep the beep from clicking.
	toneRamp = 5 * time.Millisecond
)

// sineTone returns a mono sine wave copied to both channels.
func sineTone(rate beep.SampleRate, freqHz float64, duration time.Duration) beep.Streamer {
	total := rate.N(duration)
	ramp := rate.N(toneRamp)
	if ramp*2 > total {
		ramp = total / 2
	}
	step := 2 * math.Pi * freqHz / float64(rate)
	position := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && position < total {
			value := toneAmplitude * envelope(position, total, ramp) * math.Sin(step*float64(position))
			samples[n][0] = value
			samples[n][1] = value
			n++
			position++
		}
		return n, true
	})
}

func envelope(position, total, ramp int) float64 {
	if ramp <= 0 {
		return 1
	}
	if position < ramp {
		return float64(position) / float64(ramp)
	}
	if tail := total - position; tail < ramp {
		return float64(tail) / float64(ramp)
	}
	return 1
}
