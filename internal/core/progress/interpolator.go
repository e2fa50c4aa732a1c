// Package progress smooths the displayed completion percentage toward the
// value computed by the countdown, one animation frame at a time.
package progress

import "math"

const (
	DefaultSmoothing = 0.15
	DefaultEpsilon   = 0.1
	DefaultMinStep   = 0.25
)

// Interpolator eases Current toward Target. It is not safe for concurrent use;
// the render loop owns it.
type Interpolator struct {
	current   float64
	target    float64
	smoothing float64
	epsilon   float64
	minStep   float64
}

// New returns an interpolator with the default smoothing parameters.
func New() *Interpolator {
	return NewWithRates(DefaultSmoothing, DefaultEpsilon, DefaultMinStep)
}

// NewWithRates returns an interpolator with explicit parameters. smoothing
// must be in (0, 1].
func NewWithRates(smoothing, epsilon, minStep float64) *Interpolator {
	if smoothing <= 0 || smoothing > 1 {
		panic("progress: smoothing must be in (0, 1]")
	}
	if epsilon < 0 {
		epsilon = 0
	}
	if minStep < 0 {
		minStep = 0
	}
	return &Interpolator{smoothing: smoothing, epsilon: epsilon, minStep: minStep}
}

// SetTarget moves the goal. Values are clamped to [0, 100].
func (interp *Interpolator) SetTarget(target float64) {
	interp.target = clamp(target)
}

// Advance performs one frame of easing and returns the new current value.
func (interp *Interpolator) Advance() float64 {
	diff := interp.target - interp.current
	if math.Abs(diff) <= interp.epsilon {
		interp.current = interp.target
		return interp.current
	}

	step := diff * interp.smoothing
	if math.Abs(step) < interp.minStep {
		step = math.Copysign(interp.minStep, diff)
	}
	next := interp.current + step
	if (diff > 0 && next > interp.target) || (diff < 0 && next < interp.target) {
		next = interp.target
	}
	interp.current = next
	return interp.current
}

// Reset zeroes both values.
func (interp *Interpolator) Reset() {
	interp.current = 0
	interp.target = 0
}

func (interp *Interpolator) Current() float64 { return interp.current }
func (interp *Interpolator) Target() float64  { return interp.target }

// Settled reports whether the current value has reached the target.
func (interp *Interpolator) Settled() bool {
	return interp.current == interp.target
}

func clamp(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
