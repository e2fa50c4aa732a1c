package terminal

import (
	"strings"

	"wakealarm/internal/ui/animation"
)

// skyLines projects stars, particles and shooting stars onto a character
// grid. Day frames without particles render as an empty sky.
func skyLines(frame animation.Frame, cols, rows int) []string {
	if cols <= 0 || rows <= 0 || frame.Width <= 0 || frame.Height <= 0 {
		return nil
	}
	if !frame.Night && len(frame.Particles) == 0 {
		return nil
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	plot := func(x, y float64, glyph rune) {
		col := int(x / frame.Width * float64(cols))
		row := int(y / frame.Height * float64(rows))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			return
		}
		grid[row][col] = glyph
	}

	for _, star := range frame.Stars {
		switch {
		case star.Opacity() > 0.75:
			plot(star.X, star.Y, '*')
		case star.Opacity() > 0.4:
			plot(star.X, star.Y, '·')
		}
	}
	for _, streak := range frame.ShootingStars {
		for _, point := range streak.Trail(3) {
			plot(point[0], point[1], '-')
		}
		plot(streak.X, streak.Y, '✦')
	}
	for _, particle := range frame.Particles {
		if particle.Opacity() > 0.2 {
			plot(particle.X, particle.Y, '•')
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}
