// Package animation runs the fixed-period frame loop behind the starfield,
// celebration particles, background theme and smoothed progress bar.
package animation

import (
	"context"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"wakealarm/internal/core/clock"
	"wakealarm/internal/core/model"
	"wakealarm/internal/core/progress"
)

// Target is what the frame loop eases toward.
type Target struct {
	Percent float64
	Night   bool
}

// Frame is an immutable view of one rendered step.
type Frame struct {
	Seq           uint64
	Width, Height float64
	Background    color.NRGBA
	Night         bool
	Progress      float64
	Stars         []Star
	Particles     []Particle
	ShootingStars []ShootingStar
}

// Engine owns all animation state. Step and Celebrate may be called from any
// goroutine.
type Engine struct {
	mu        sync.Mutex
	config    Config
	source    func() Target
	redraw    func(Frame)
	rng       *rand.Rand
	stars     []Star
	particles []Particle
	shooting  []ShootingStar
	fade      ColorFade
	progress  *progress.Interpolator
	night     bool
	seq       uint64
}

// New creates an engine in the day theme. source is polled once per frame;
// redraw receives every frame.
func New(config Config, source func() Target, redraw func(Frame)) *Engine {
	defaults := DefaultConfig()
	if config.FrameInterval <= 0 {
		config.FrameInterval = defaults.FrameInterval
	}
	if config.FieldWidth <= 0 || config.FieldHeight <= 0 {
		config.FieldWidth = defaults.FieldWidth
		config.FieldHeight = defaults.FieldHeight
	}
	if config.ThemeStep == 0 {
		config.ThemeStep = defaults.ThemeStep
	}
	if config.Clock == nil {
		config.Clock = clock.NewSystem()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := &Engine{
		config:   config,
		source:   source,
		redraw:   redraw,
		rng:      rand.New(rand.NewSource(seed)),
		fade:     ColorFade{Current: DayBackground, Target: DayBackground},
		progress: progress.New(),
	}
	engine.stars = make([]Star, 0, config.StarCount)
	for i := 0; i < config.StarCount; i++ {
		engine.stars = append(engine.stars, newStar(config, engine.rng, false))
	}
	return engine
}

// Run steps the engine every FrameInterval until ctx is cancelled.
func (engine *Engine) Run(ctx context.Context) error {
	ticker := engine.config.Clock.NewTicker(engine.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			engine.Step()
		}
	}
}

// Step advances every effect by one frame and hands the result to redraw.
func (engine *Engine) Step() Frame {
	var target Target
	if engine.source != nil {
		target = engine.source()
	}

	engine.mu.Lock()
	if target.Night != engine.night {
		engine.setNightLocked(target.Night)
	}

	for i := range engine.stars {
		engine.stars[i].advance(engine.config, engine.rng, engine.night)
	}

	particles := engine.particles[:0]
	for _, particle := range engine.particles {
		if particle.advance(engine.config) {
			particles = append(particles, particle)
		}
	}
	engine.particles = particles

	shooting := engine.shooting[:0]
	for _, streak := range engine.shooting {
		if streak.advance(engine.config) {
			shooting = append(shooting, streak)
		}
	}
	engine.shooting = shooting

	if engine.night && engine.rng.Float64() < engine.config.ShootingStarChance {
		engine.shooting = append(engine.shooting, newShootingStar(engine.config, engine.rng))
	}

	engine.fade.Step(engine.config.ThemeStep)
	engine.progress.SetTarget(target.Percent)
	engine.progress.Advance()

	engine.seq++
	frame := engine.frameLocked()
	redraw := engine.redraw
	engine.mu.Unlock()

	if redraw != nil {
		redraw(frame)
	}
	return frame
}

// Celebrate emits a particle burst at the celebration anchor.
func (engine *Engine) Celebrate(celebration model.Celebration) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for i := 0; i < celebration.Count; i++ {
		engine.particles = append(engine.particles,
			newParticle(engine.config, engine.rng, celebration.Anchor.X, celebration.Anchor.Y))
	}
}

// ResetProgress drops the displayed progress to zero immediately.
func (engine *Engine) ResetProgress() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.progress.Reset()
}

// Progress returns the currently displayed percentage.
func (engine *Engine) Progress() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.progress.Current()
}

func (engine *Engine) setNightLocked(night bool) {
	engine.night = night
	engine.fade.Target = backgroundFor(night)
	palette := paletteFor(night)
	for i := range engine.stars {
		engine.stars[i].Color = pick(engine.rng, palette)
	}
}

func (engine *Engine) frameLocked() Frame {
	return Frame{
		Seq:           engine.seq,
		Width:         engine.config.FieldWidth,
		Height:        engine.config.FieldHeight,
		Background:    engine.fade.Current,
		Night:         engine.night,
		Progress:      engine.progress.Current(),
		Stars:         append([]Star(nil), engine.stars...),
		Particles:     append([]Particle(nil), engine.particles...),
		ShootingStars: append([]ShootingStar(nil), engine.shooting...),
	}
}
