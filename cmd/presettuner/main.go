// Preset tuner - interactive preset editing with sliders and a live flow preview.
//
// Usage: go run ./cmd/presettuner [-config path] [-out presets.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
	flowStep     = 16
)

// slider describes one editable preset field.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.PresetConfig) float64
	set      func(*config.PresetConfig, float64)
}

var sliders = []slider{
	{"Hue", 0, 359.9, "%.0f",
		func(p *config.PresetConfig) float64 { return p.Hue },
		func(p *config.PresetConfig, v float64) { p.Hue = v }},
	{"Saturation", 0, 100, "%.0f",
		func(p *config.PresetConfig) float64 { return p.Saturation },
		func(p *config.PresetConfig, v float64) { p.Saturation = v }},
	{"Brightness", 0, 100, "%.0f",
		func(p *config.PresetConfig) float64 { return p.Brightness },
		func(p *config.PresetConfig, v float64) { p.Brightness = v }},
	{"Speed", 0.1, 4, "%.2f",
		func(p *config.PresetConfig) float64 { return p.Speed },
		func(p *config.PresetConfig, v float64) { p.Speed = v }},
	{"Noise scale", 0.0005, 0.01, "%.4f",
		func(p *config.PresetConfig) float64 { return p.NoiseScale },
		func(p *config.PresetConfig, v float64) { p.NoiseScale = v }},
	{"Particle size", 0.5, 10, "%.1f",
		func(p *config.PresetConfig) float64 { return p.ParticleSize },
		func(p *config.PresetConfig, v float64) { p.ParticleSize = v }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "presets.yaml", "Where Save writes the preset list")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	book := systems.NewPresetBook(cfg.Presets)
	presets := book.Configs()
	names := book.Names()
	noise := systems.NewNoiseField(cfg.Noise.Backend, 1, cfg.Noise.Octaves, cfg.Noise.Falloff)
	background := renderer.NewBackgroundRenderer(cfg.Render.BackdropBright)
	rate := cfg.Motion.TimeRate
	turns := cfg.Motion.FlowTurns

	rl.InitWindow(windowWidth, windowHeight, "Preset Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	selected := 0
	animating := true
	status := ""
	var t float64

	for !rl.WindowShouldClose() {
		p := &presets[selected]
		if animating {
			t += rate * p.Speed
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPreview(background, noise, components.PresetFromConfig(*p), t, turns)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Presets", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		for i := range presets {
			label := fmt.Sprintf("%d %s", i+1, names[i])
			if i == selected {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: panelX + float32(i%2)*200, Y: panelY + float32(i/2)*34, Width: 190, Height: 28}, label) {
				selected = i
			}
		}
		panelY += float32((len(presets)+1)/2)*34 + 12

		for _, s := range sliders {
			v := float32(s.get(p))
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				v, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, s.get(p)), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if nv != v {
				s.set(p, float64(nv))
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			if tpl, ok := book.Template(selected); ok {
				presets[selected] = tpl.Config()
			}
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save") {
			status = save(*outPath, presets)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Copy YAML") {
			if data, err := config.PresetsYAML(presets); err == nil {
				rl.SetClipboardText(string(data))
				status = "copied to clipboard"
			}
		}
		panelY += 45

		rl.DrawText(status, int32(panelX), int32(panelY), 14, rl.DarkGray)

		rl.EndDrawing()
	}
}

// drawPreview paints the backdrop and a lattice of flow strokes for p.
func drawPreview(bg *renderer.BackgroundRenderer, noise *systems.NoiseField, p components.Preset, t, turns float64) {
	rl.DrawRectangle(10, 10, previewSize, previewSize, bg.Color(p))

	length := float32(p.ParticleSize * 3)
	for y := flowStep / 2; y < previewSize; y += flowStep {
		for x := flowStep / 2; x < previewSize; x += flowStep {
			angle := systems.FlowAngle(noise, float32(x), float32(y), p.NoiseScale, t, 0, turns)
			dx := float32(math.Cos(angle)) * length
			dy := float32(math.Sin(angle)) * length

			level := noise.Sample(float64(x)*0.002, float64(y)*0.002, t)
			col := renderer.HSBA(systems.LocalHue(p.Hue, level, 40), p.Saturation, p.Brightness, 0.8)

			cx, cy := float32(10+x), float32(10+y)
			rl.DrawLineEx(rl.Vector2{X: cx - dx/2, Y: cy - dy/2}, rl.Vector2{X: cx + dx/2, Y: cy + dy/2}, float32(p.ParticleSize*0.6), col)
		}
	}
}

// save validates and writes the preset list.
func save(path string, presets []config.PresetConfig) string {
	for i, p := range presets {
		if err := p.Validate(); err != nil {
			return fmt.Sprintf("preset %d invalid: %v", i+1, err)
		}
	}
	data, err := config.PresetsYAML(presets)
	if err != nil {
		return err.Error()
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Error("failed to save presets", "path", path, "error", err)
		return err.Error()
	}
	slog.Info("presets saved", "path", path, "count", len(presets))
	return "saved " + path
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
