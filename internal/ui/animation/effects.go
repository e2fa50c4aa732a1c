package animation

import (
	"image/color"
	"math"
	"math/rand"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64
	Max float64
}

// Random returns a value within the range.
func (value Range) Random(rng *rand.Rand) float64 {
	if value.Max <= value.Min {
		return value.Min
	}
	return value.Min + rng.Float64()*(value.Max-value.Min)
}

// Star is one drifting, twinkling point of the background field.
type Star struct {
	X, Y         float64
	Size         float64
	Speed        float64
	Drift        float64
	TwinkleSpeed float64
	TwinklePhase float64
	BaseOpacity  float64
	Color        color.NRGBA
}

// Opacity is the twinkle-modulated alpha in [0, 1].
func (star Star) Opacity() float64 {
	twinkle := (math.Sin(star.TwinklePhase) + 1) / 2
	return star.BaseOpacity * (0.3 + 0.7*twinkle)
}

func newStar(config Config, rng *rand.Rand, night bool) Star {
	return Star{
		X:            math.Round(Range{Max: config.FieldWidth}.Random(rng)),
		Y:            math.Round(Range{Max: config.FieldHeight}.Random(rng)),
		Size:         math.Round(config.StarSize.Random(rng)),
		Speed:        config.StarSpeed.Random(rng),
		Drift:        config.StarDrift.Random(rng),
		TwinkleSpeed: config.TwinkleSpeed.Random(rng),
		TwinklePhase: rng.Float64() * 2 * math.Pi,
		BaseOpacity:  config.StarOpacity.Random(rng),
		Color:        pick(rng, paletteFor(night)),
	}
}

// advance moves the star one frame and wraps it around the field edges.
func (star *Star) advance(config Config, rng *rand.Rand, night bool) {
	star.Y += star.Speed
	star.X += star.Drift
	star.TwinklePhase += star.TwinkleSpeed

	if star.Y > config.FieldHeight+20 {
		star.Y = math.Round(Range{Min: -50, Max: -10}.Random(rng))
		star.X = math.Round(Range{Max: config.FieldWidth}.Random(rng))
		star.Drift = config.StarDrift.Random(rng)
		star.Color = pick(rng, paletteFor(night))
	}
	if star.X < -10 {
		star.X = config.FieldWidth + 10
	} else if star.X > config.FieldWidth+10 {
		star.X = -10
	}
}

// Particle is one fragment of a celebration burst.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Life    float64
	MaxLife float64
	Color   color.NRGBA
}

// Opacity fades linearly with remaining life.
func (particle Particle) Opacity() float64 {
	if particle.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, particle.Life/particle.MaxLife)
}

func newParticle(config Config, rng *rand.Rand, x, y float64) Particle {
	return Particle{
		X:       x,
		Y:       y,
		VX:      config.ParticleVX.Random(rng),
		VY:      config.ParticleVY.Random(rng),
		Size:    math.Round(config.ParticleSize.Random(rng)),
		Life:    config.ParticleLifetime,
		MaxLife: config.ParticleLifetime,
		Color:   pick(rng, celebrationPalette),
	}
}

// advance applies velocity and gravity. It reports whether the particle is
// still alive.
func (particle *Particle) advance(config Config) bool {
	particle.X += particle.VX
	particle.Y += particle.VY
	particle.VY += config.Gravity
	particle.Life -= config.ParticleDecay
	return particle.Life > 0
}

// ShootingStar is a short-lived streak crossing the night sky.
type ShootingStar struct {
	X, Y   float64
	VX, VY float64
	Length float64
	Life   float64
}

// Trail returns the segment end points behind the head, nearest first.
func (shooting ShootingStar) Trail(segments int) [][2]float64 {
	points := make([][2]float64, 0, segments)
	for i := 1; i <= segments; i++ {
		points = append(points, [2]float64{
			shooting.X - shooting.VX*float64(i)*2,
			shooting.Y - shooting.VY*float64(i)*2,
		})
	}
	return points
}

func newShootingStar(config Config, rng *rand.Rand) ShootingStar {
	return ShootingStar{
		X:      math.Round(Range{Max: config.FieldWidth}.Random(rng)),
		Y:      math.Round(Range{Max: config.FieldHeight / 2}.Random(rng)),
		VX:     config.ShootingStarVX.Random(rng),
		VY:     config.ShootingStarVY.Random(rng),
		Length: math.Round(config.ShootingStarLength.Random(rng)),
		Life:   100,
	}
}

func (shooting *ShootingStar) advance(config Config) bool {
	shooting.X += shooting.VX
	shooting.Y += shooting.VY
	shooting.Life -= config.ShootingStarDecay
	return shooting.Life > 0
}

func pick(rng *rand.Rand, palette []color.NRGBA) color.NRGBA {
	return palette[rng.Intn(len(palette))]
}
