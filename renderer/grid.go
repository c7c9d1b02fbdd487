package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
)

// GridRenderer draws the decorative arc lattice behind the particles.
type GridRenderer struct {
	lattice  systems.GridLattice
	alpha    float64
	hueRange float64
	arcs     []systems.GridArc
}

// NewGridRenderer creates a grid renderer from config.
func NewGridRenderer(cfg *config.Config) *GridRenderer {
	g := cfg.Grid
	return &GridRenderer{
		lattice: systems.GridLattice{
			Cols:       g.Cols,
			Rows:       g.Rows,
			Margin:     float32(g.Margin),
			NoiseScale: g.NoiseScale,
			ArcRadius:  float32(g.ArcRadius),
		},
		alpha:    g.Alpha,
		hueRange: cfg.Noise.HueRange,
		arcs:     make([]systems.GridArc, 0, g.Cols*g.Rows),
	}
}

// Draw renders one arc per lattice node, tinted by the preset.
func (r *GridRenderer) Draw(noise *systems.NoiseField, p components.Preset, t float64, width, height float32) {
	r.arcs = r.lattice.AppendArcs(r.arcs[:0], width, height, t, noise)

	for i := range r.arcs {
		a := &r.arcs[i]
		col := HSBA(
			systems.LocalHue(p.Hue, float64(a.Level), r.hueRange),
			p.Saturation*0.6,
			p.Brightness,
			r.alpha*(0.4+0.6*float64(a.Level)),
		)
		rl.DrawRing(rl.Vector2{X: a.X, Y: a.Y}, a.Radius-0.6, a.Radius+0.6, a.Start, a.End, 8, col)
	}
}
