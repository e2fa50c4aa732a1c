package window

import (
	"image/color"

	"wakealarm/internal/core/countdown"
)

var (
	colorNormal  = color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
	colorWarning = color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorUrgent  = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	colorMuted   = color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
	colorLight   = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
)

// timerColor maps the urgency class to the timer text colour.
func timerColor(class countdown.ColorClass) color.NRGBA {
	switch class {
	case countdown.ClassUrgent:
		return colorUrgent
	case countdown.ClassWarning:
		return colorWarning
	default:
		return colorNormal
	}
}

// statusColor keeps the status line readable on the night background.
func statusColor(night bool) color.NRGBA {
	if night {
		return colorLight
	}
	return colorMuted
}

func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
