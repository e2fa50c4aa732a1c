package model

// Point is a position on the animation field.
type Point struct {
	X float64
	Y float64
}

// Celebration asks the render loop to emit Count particles from Anchor.
type Celebration struct {
	Count  int
	Anchor Point
}

// DefaultCelebration is the burst emitted when an alarm fires.
func DefaultCelebration() Celebration {
	return Celebration{Count: 30, Anchor: Point{X: 210, Y: 325}}
}
