package animation

import (
	"time"

	"wakealarm/internal/core/clock"
)

// Config contains frame loop and effect parameters.
type Config struct {
	FrameInterval time.Duration
	FieldWidth    float64
	FieldHeight   float64

	StarCount    int
	StarSize     Range
	StarSpeed    Range
	StarDrift    Range
	TwinkleSpeed Range
	StarOpacity  Range

	ParticleSize     Range
	ParticleVX       Range
	ParticleVY       Range
	Gravity          float64
	ParticleDecay    float64
	ParticleLifetime float64

	ShootingStarChance float64
	ShootingStarVX     Range
	ShootingStarVY     Range
	ShootingStarLength Range
	ShootingStarDecay  float64

	ThemeStep uint8

	Clock clock.Clock
	// Seed fixes the random source. Zero seeds from the current time.
	Seed int64
}

// DefaultConfig returns the standard starfield look.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 50 * time.Millisecond,
		FieldWidth:    420,
		FieldHeight:   820,

		StarCount:    80,
		StarSize:     Range{Min: 2, Max: 7},
		StarSpeed:    Range{Min: 0.15, Max: 0.6},
		StarDrift:    Range{Min: -0.25, Max: 0.25},
		TwinkleSpeed: Range{Min: 0.02, Max: 0.08},
		StarOpacity:  Range{Min: 0.6, Max: 1.0},

		ParticleSize:     Range{Min: 3, Max: 6},
		ParticleVX:       Range{Min: -2, Max: 2},
		ParticleVY:       Range{Min: -3, Max: -1},
		Gravity:          0.1,
		ParticleDecay:    2,
		ParticleLifetime: 100,

		ShootingStarChance: 0.002,
		ShootingStarVX:     Range{Min: 3, Max: 6},
		ShootingStarVY:     Range{Min: 1, Max: 3},
		ShootingStarLength: Range{Min: 30, Max: 60},
		ShootingStarDecay:  5,

		ThemeStep: 2,
	}
}
