package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/telemetry"
	"github.com/pthm-cable/driftfield/ui"
)

// statusFrames is how long a status message stays on screen.
const statusFrames = 180

// Draw renders the frame and exports it afterwards if a save was requested.
func (g *Game) Draw() {
	w, h := int32(g.width), int32(g.height)

	rl.BeginDrawing()

	g.frameTimer.Mark(telemetry.PhaseGrid)
	g.background.Draw(g.preset, w, h)
	if g.grid != nil {
		g.grid.Draw(g.noise, g.preset, g.time, g.width, g.height)
	}

	g.frameTimer.Mark(telemetry.PhaseDraw)
	g.collectSprites()
	g.scene = renderer.Scene{
		Noise:   g.noise,
		Preset:  g.preset,
		Mode:    g.mode,
		Shape:   g.shape,
		Time:    g.time,
		Pointer: g.pointer,
		Width:   g.width,
	}
	g.particles.Draw(g.sprites, &g.scene)

	// H hides the HUD together with the legend.
	if g.legend.IsVisible() {
		g.hud.Draw(g.hudData())
		g.hud.DrawStatus(h, g.status)
	}
	g.legend.Draw(w)

	if g.showPerf {
		g.drawPerfPanel()
	}

	rl.EndDrawing()
	g.frameTimer.EndFrame()
	g.frameTimer.Present()

	if g.saveRequested {
		g.saveRequested = false
		g.exportFrame()
	}
}

// collectSprites copies particle state into the draw buffer in collection order.
func (g *Game) collectSprites() {
	if cap(g.sprites) < g.particleCount {
		g.sprites = make([]renderer.Sprite, 0, g.particleCount)
	}
	g.sprites = g.sprites[:0]

	query := g.particleFilter.Query()
	for query.Next() {
		pos, trail, _, m := query.Get()
		g.sprites = append(g.sprites, renderer.Sprite{
			X:     pos.X,
			Y:     pos.Y,
			PrevX: trail.X,
			PrevY: trail.Y,
			Size:  m.Size,
			Seed:  m.Seed,
		})
	}
}

func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Title:       config.Cfg().Screen.Title,
		Preset:      g.preset.Name,
		PresetIndex: g.presetIndex,
		PresetCount: g.presets.Len(),
		Mode:        g.mode.String(),
		Shape:       g.shape.String(),
		Particles:   g.particleCount,
		FPS:         rl.GetFPS(),
		Audio:       g.audio.State().String(),
		Seed:        g.seed,
		Swatch:      renderer.HSBA(g.preset.Hue, g.preset.Saturation, g.preset.Brightness, 1),
	}
}

func (g *Game) drawPerfPanel() {
	stats := g.frameTimer.Stats()
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseTimes: stats.PhaseAvg,
		Total:      stats.AvgFrame,
		Budget:     time.Duration(config.Cfg().Derived.FrameDT * float64(time.Second)),
	}, telemetry.Phases)
}

// exportFrame writes the presented frame as a PNG.
func (g *Game) exportFrame() {
	cfg := config.Cfg()
	path, err := telemetry.PrepareFrameExport(g.exportDir, cfg.Export.Prefix, g.preset.Name, time.Now(), g.frame)
	if err != nil {
		slog.Warn("failed to prepare frame export", "error", err)
		g.setStatus("save failed")
		return
	}

	img := rl.LoadImageFromScreen()
	ok := rl.ExportImage(*img, path)
	rl.UnloadImage(img)

	if !ok {
		slog.Warn("failed to export frame", "path", path)
		g.setStatus("save failed")
		return
	}

	g.collector.RecordSave()
	logFrameSaved(g.frame, path)
	g.setStatus(fmt.Sprintf("saved %s", path))
}

func (g *Game) setStatus(text string) {
	g.status = text
	g.statusAt = g.frame
}

func (g *Game) expireStatus() {
	if g.status != "" && g.frame-g.statusAt > statusFrames {
		g.status = ""
	}
}
