// Package renderer draws the field with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// HSBA converts hue in degrees, saturation and brightness in [0, 100] and alpha in [0, 1]
// to a raylib color. Out-of-range inputs are wrapped or clamped.
func HSBA(hue, sat, bri, alpha float64) rl.Color {
	r, g, b := colorful.Hsv(wrapHue(hue), unitClamp(sat/100), unitClamp(bri/100)).RGB255()
	return rl.Color{R: r, G: g, B: b, A: uint8(unitClamp(alpha)*255 + 0.5)}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func unitClamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
