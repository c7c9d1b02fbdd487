package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Preset      string
	PresetIndex int
	PresetCount int
	Mode        string
	Shape       string
	Particles   int
	FPS         int32
	Audio       string
	Seed        int64
	Swatch      rl.Color
}

// Lines returns the label/value rows shown under the title.
func (d HUDData) Lines() [][2]string {
	return [][2]string{
		{"Preset", fmt.Sprintf("%s (%d/%d)", d.Preset, d.PresetIndex+1, d.PresetCount)},
		{"Mode", d.Mode},
		{"Shape", d.Shape},
		{"Particles", fmt.Sprintf("%d", d.Particles)},
		{"FPS", fmt.Sprintf("%d", d.FPS)},
		{"Audio", d.Audio},
		{"Seed", fmt.Sprintf("%d", d.Seed)},
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    200,
	}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	lines := data.Lines()
	padding := r.Theme.Padding
	height := padding*2 + r.Theme.LineHeight + 2 + int32(len(lines)+1)*r.Theme.LineHeight

	r.DrawPanel(padding, padding, h.width, height)

	x := padding * 2
	y := r.DrawSectionHeader(x, padding*2, data.Title)
	for _, l := range lines {
		y = r.DrawLabelValue(x, y, l[0], l[1])
	}
	r.DrawColorSwatch(x, y, "Hue", data.Swatch)
}

// DrawStatus draws a transient status line, e.g. the last saved file.
func (h *HUD) DrawStatus(screenHeight int32, text string) {
	if text == "" {
		return
	}
	rl.DrawText(text, h.renderer.Theme.Padding, screenHeight-25, 14, rl.Yellow)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Budget     time.Duration // Frame budget at the target FPS
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    240,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, order []string) {
	r := p.renderer
	padding := r.Theme.Padding
	height := padding*2 + r.Theme.LineHeight*int32(len(order)+2) + 4

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Frame Timing")

	load := float32(0)
	if data.Budget > 0 {
		load = float32(data.Total) / float32(data.Budget)
	}
	y = r.DrawBar(x, y, "Budget", load, p.width-padding*2)

	for _, name := range order {
		avg := data.PhaseTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight - 2
	}
}
