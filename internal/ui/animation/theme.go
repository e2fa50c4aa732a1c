package animation

import "image/color"

var (
	// DayBackground is the idle sky.
	DayBackground = color.NRGBA{R: 0xe0, G: 0xf2, B: 0xfe, A: 0xff}
	// NightBackground is shown while a countdown is active.
	NightBackground = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}

	dayPalette = []color.NRGBA{
		rgb(0xba, 0xe6, 0xfd), rgb(0x7d, 0xd3, 0xfc), rgb(0x38, 0xbd, 0xf8),
		rgb(0x0e, 0xa5, 0xe9), rgb(0xff, 0xff, 0xff), rgb(0x93, 0xc5, 0xfd),
	}
	nightPalette = []color.NRGBA{
		rgb(0xfe, 0xf0, 0x8a), rgb(0xfd, 0xe0, 0x47), rgb(0xfa, 0xcc, 0x15),
		rgb(0xea, 0xb3, 0x08), rgb(0xff, 0xff, 0xff), rgb(0xfb, 0xbf, 0x24),
		rgb(0xfc, 0xd3, 0x4d),
	}
	celebrationPalette = []color.NRGBA{
		rgb(0xfd, 0xe0, 0x47), rgb(0xfa, 0xcc, 0x15), rgb(0xfb, 0x92, 0x3c),
		rgb(0xf4, 0x72, 0xb6), rgb(0xa7, 0x8b, 0xfa),
	}

	// ShootingStarHead and ShootingStarTrail colour the streak.
	ShootingStarHead  = rgb(0xff, 0xff, 0xff)
	ShootingStarTrail = rgb(0xfd, 0xe0, 0x47)
)

// ColorFade walks Current toward Target by a fixed step per channel.
type ColorFade struct {
	Current color.NRGBA
	Target  color.NRGBA
}

// Step moves each channel at most step units toward the target.
func (fade *ColorFade) Step(step uint8) {
	fade.Current.R = approach(fade.Current.R, fade.Target.R, step)
	fade.Current.G = approach(fade.Current.G, fade.Target.G, step)
	fade.Current.B = approach(fade.Current.B, fade.Target.B, step)
	fade.Current.A = approach(fade.Current.A, fade.Target.A, step)
}

// Done reports whether the fade reached its target.
func (fade ColorFade) Done() bool {
	return fade.Current == fade.Target
}

func backgroundFor(night bool) color.NRGBA {
	if night {
		return NightBackground
	}
	return DayBackground
}

func paletteFor(night bool) []color.NRGBA {
	if night {
		return nightPalette
	}
	return dayPalette
}

func approach(current, target, step uint8) uint8 {
	switch {
	case current < target:
		if target-current <= step {
			return target
		}
		return current + step
	case current > target:
		if current-target <= step {
			return target
		}
		return current - step
	default:
		return current
	}
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
