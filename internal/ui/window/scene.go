package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"wakealarm/internal/ui/animation"
)

const trailSegments = 5

// scene draws animation frames onto a free-layout container. Canvas objects
// are pooled and hidden when unused. Only call draw on the fyne goroutine.
type scene struct {
	background *canvas.Rectangle
	layer      *fyne.Container
	stars      []*canvas.Circle
	particles  []*canvas.Circle
	trails     []*canvas.Line
}

func newScene() *scene {
	background := canvas.NewRectangle(animation.DayBackground)
	return &scene{
		background: background,
		layer:      container.NewWithoutLayout(),
	}
}

func (s *scene) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{s.background, s.layer}
}

func (s *scene) draw(frame animation.Frame) {
	s.background.FillColor = frame.Background
	s.background.Refresh()

	size := s.layer.Size()
	scaleX, scaleY := scaleFor(size, frame)

	s.stars = s.grow(s.stars, len(frame.Stars))
	for i, star := range frame.Stars {
		circle := s.stars[i]
		circle.FillColor = withAlpha(star.Color, star.Opacity())
		placeDot(circle, star.X*scaleX, star.Y*scaleY, star.Size)
	}
	hideFrom(s.stars, len(frame.Stars))

	s.particles = s.grow(s.particles, len(frame.Particles))
	for i, particle := range frame.Particles {
		circle := s.particles[i]
		circle.FillColor = withAlpha(particle.Color, particle.Opacity())
		placeDot(circle, particle.X*scaleX, particle.Y*scaleY, particle.Size)
	}
	hideFrom(s.particles, len(frame.Particles))

	needed := len(frame.ShootingStars) * trailSegments
	s.growTrails(needed)
	for i, streak := range frame.ShootingStars {
		head := fyne.NewPos(float32(streak.X*scaleX), float32(streak.Y*scaleY))
		for j, end := range streak.Trail(trailSegments) {
			line := s.trails[i*trailSegments+j]
			line.StrokeColor = animation.ShootingStarTrail
			if j == 0 {
				line.StrokeColor = animation.ShootingStarHead
			}
			line.StrokeWidth = float32(3 - float64(j)*0.5)
			line.Position1 = head
			line.Position2 = fyne.NewPos(float32(end[0]*scaleX), float32(end[1]*scaleY))
			line.Show()
			line.Refresh()
		}
	}
	for i := needed; i < len(s.trails); i++ {
		s.trails[i].Hide()
	}
}

func (s *scene) grow(pool []*canvas.Circle, n int) []*canvas.Circle {
	for len(pool) < n {
		circle := canvas.NewCircle(animation.DayBackground)
		pool = append(pool, circle)
		s.layer.Add(circle)
	}
	return pool
}

func (s *scene) growTrails(n int) {
	for len(s.trails) < n {
		line := canvas.NewLine(animation.ShootingStarTrail)
		s.trails = append(s.trails, line)
		s.layer.Add(line)
	}
}

func placeDot(circle *canvas.Circle, x, y, size float64) {
	circle.Move(fyne.NewPos(float32(x), float32(y)))
	circle.Resize(fyne.NewSize(float32(size), float32(size)))
	circle.Show()
	circle.Refresh()
}

func hideFrom(pool []*canvas.Circle, from int) {
	for i := from; i < len(pool); i++ {
		pool[i].Hide()
	}
}

// scaleFor maps field coordinates onto the drawable area.
func scaleFor(size fyne.Size, frame animation.Frame) (float64, float64) {
	if frame.Width <= 0 || frame.Height <= 0 || size.Width <= 0 || size.Height <= 0 {
		return 1, 1
	}
	return float64(size.Width) / frame.Width, float64(size.Height) / frame.Height
}
