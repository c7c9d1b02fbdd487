package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/components"
)

// BackgroundRenderer clears the canvas to a dark wash of the preset hue.
type BackgroundRenderer struct {
	brightness float64
}

// NewBackgroundRenderer creates a backdrop renderer with the given brightness (0-100).
func NewBackgroundRenderer(brightness float64) *BackgroundRenderer {
	return &BackgroundRenderer{brightness: brightness}
}

// Color returns the backdrop color for a preset.
func (b *BackgroundRenderer) Color(p components.Preset) rl.Color {
	return HSBA(p.Hue, p.Saturation*0.4, b.brightness, 1)
}

// Draw clears the screen and lays a faint vertical gradient over it.
func (b *BackgroundRenderer) Draw(p components.Preset, width, height int32) {
	base := b.Color(p)
	rl.ClearBackground(base)

	top := HSBA(p.Hue+20, p.Saturation*0.5, b.brightness*1.8, 0.5)
	rl.DrawRectangleGradientV(0, 0, width, height, top, rl.Fade(base, 0))
}
