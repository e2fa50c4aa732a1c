// Package resources renders the application icons.
package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

// IconKind selects one of the generated icons.
type IconKind string

const (
	IconIdle    IconKind = "idle"
	IconRunning IconKind = "running"
	IconAlarm   IconKind = "alarm"
)

const iconSize = 64

var iconPalette = map[IconKind]struct{ face, ring color.NRGBA }{
	IconIdle:    {face: color.NRGBA{R: 0xe0, G: 0xf2, B: 0xfe, A: 0xff}, ring: color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}},
	IconRunning: {face: color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}, ring: color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}},
	IconAlarm:   {face: color.NRGBA{R: 0xfe, G: 0xf2, B: 0xf2, A: 0xff}, ring: color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}},
}

var iconCache sync.Map

// Icon returns the clock-face icon for kind.
func Icon(kind IconKind) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(kind); ok {
		return cached.(fyne.Resource), nil
	}

	colors, ok := iconPalette[kind]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", kind)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, drawClock(colors.face, colors.ring)); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", kind, err)
	}

	resource := fyne.NewStaticResource("wakealarm-"+string(kind)+".png", buf.Bytes())
	iconCache.Store(kind, resource)
	return resource, nil
}

// MustIcon returns the icon or panics on error.
func MustIcon(kind IconKind) fyne.Resource {
	resource, err := Icon(kind)
	if err != nil {
		panic(err)
	}
	return resource
}

// drawClock paints a round clock face with a ring and two hands.
func drawClock(face, ring color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize-1) / 2
	outer := center - 1
	inner := outer - 6

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			distance := math.Hypot(float64(x)-center, float64(y)-center)
			switch {
			case distance <= inner:
				img.SetNRGBA(x, y, face)
			case distance <= outer:
				img.SetNRGBA(x, y, ring)
			}
		}
	}

	drawHand(img, center, -math.Pi/2, inner*0.7, ring)
	drawHand(img, center, 0, inner*0.5, ring)
	return img
}

func drawHand(img *image.NRGBA, center, angle, length float64, c color.NRGBA) {
	for step := 0.0; step <= length; step += 0.5 {
		x := center + step*math.Cos(angle)
		y := center + step*math.Sin(angle)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				img.SetNRGBA(int(math.Round(x))+dx, int(math.Round(y))+dy, c)
			}
		}
	}
}
