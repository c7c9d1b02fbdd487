package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
	"github.com/pthm-cable/driftfield/telemetry"
)

// Step advances the field by one frame and returns the number of particles
// that wrapped. Motion is per frame; dt only feeds the wall-clock tally.
func (g *Game) Step(dt float64, pointer components.Pointer) int {
	g.frameTimer.Mark(telemetry.PhaseTimeAdvance)
	g.pointer = pointer
	g.elapsed += dt
	g.time += config.Cfg().Motion.TimeRate * g.preset.Speed

	g.frameTimer.Mark(telemetry.PhaseParticles)
	f := systems.Frame{
		Noise:   g.noise,
		Rand:    g.rng,
		Pointer: pointer,
		Preset:  g.preset,
		Mode:    g.mode,
		Time:    g.time,
		Width:   g.width,
		Height:  g.height,
		Params:  g.flowParams,
	}

	wraps := 0
	query := g.particleFilter.Query()
	for query.Next() {
		pos, trail, vel, m := query.Get()
		if systems.UpdateParticle(pos, trail, vel, m, &f) {
			wraps++
		}
	}

	g.frame++
	g.collector.RecordWraps(wraps)
	if pointer.Pressed {
		g.collector.RecordDragFrame()
	}
	return wraps
}

// SelectPreset activates a copy of template i and re-rolls every particle size.
// Out-of-range indices are ignored and return false.
func (g *Game) SelectPreset(i int) bool {
	p, ok := g.presets.Template(i)
	if !ok {
		slog.Debug("preset index out of range", "index", i, "count", g.presets.Len())
		return false
	}
	g.preset = p
	g.presetIndex = i

	f := config.Cfg().Field
	query := g.particleFilter.Query()
	for query.Next() {
		_, _, _, m := query.Get()
		m.Size = systems.JitteredSize(p.ParticleSize, f.SizeJitterMin, f.SizeJitterMax, g.rng)
	}

	g.collector.RecordPresetChange()
	g.audio.PlayPreset(i)
	logPresetChange(g.frame, i, p)
	return true
}

// CycleShape advances to the next particle-mode shape.
func (g *Game) CycleShape() components.ShapeKind {
	g.shape = g.shape.Next()
	g.collector.RecordShapeChange()
	g.audio.PlayShape(int(g.shape))
	slog.Debug("shape cycled", "shape", g.shape.String(), "frame", g.frame)
	return g.shape
}

// ToggleMode flips between wave and particle mode.
func (g *Game) ToggleMode() components.Mode {
	g.mode = g.mode.Toggle()
	g.collector.RecordModeToggle()
	g.audio.PlayModeToggle(g.mode == components.ModeWave)
	slog.Debug("mode toggled", "mode", g.mode.String(), "frame", g.frame)
	return g.mode
}

// OnClick cycles the shape and pushes nearby particles away from (x, y).
// Returns the number of particles that received an impulse.
func (g *Game) OnClick(x, y float32) int {
	g.CycleShape()
	n := g.applyClickImpulse(x, y)
	g.collector.RecordClick(n)
	return n
}

func (g *Game) applyClickImpulse(x, y float32) int {
	n := 0
	query := g.particleFilter.Query()
	for query.Next() {
		pos, _, vel, _ := query.Get()
		if _, _, ok := systems.ApplyClickImpulse(pos, vel, x, y, g.impulseParams, g.rng); ok {
			n++
		}
	}
	return n
}

// startAudio opens the audio device. Devices may only open after a user
// gesture, so the first click calls this. Failure leaves the sketch silent.
func (g *Game) startAudio() {
	if err := g.audio.Start(); err != nil {
		slog.Warn("audio unavailable", "error", err)
		g.setStatus("audio unavailable")
	}
}

// Resize updates the canvas extent. Particles outside it wrap on their next step.
func (g *Game) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	if g.perfPanel != nil {
		g.perfPanel.SetPosition(10, int32(height)-220)
	}
	slog.Debug("canvas resized", "width", width, "height", height)
}

// Mode returns the active mode.
func (g *Game) Mode() components.Mode { return g.mode }

// Shape returns the active particle-mode shape.
func (g *Game) Shape() components.ShapeKind { return g.shape }

// Preset returns a copy of the active preset.
func (g *Game) Preset() components.Preset { return g.preset }

// PresetIndex returns the index of the template the active preset was copied from.
func (g *Game) PresetIndex() int { return g.presetIndex }

// Time returns the field time.
func (g *Game) Time() float64 { return g.time }

// Elapsed returns the wall-clock seconds passed to Step so far.
func (g *Game) Elapsed() float64 { return g.elapsed }

// ParticleCount returns the fixed number of particles.
func (g *Game) ParticleCount() int { return g.particleCount }

// Size returns the canvas extent.
func (g *Game) Size() (float32, float32) { return g.width, g.height }

// Update runs the simulation half of a windowed frame. Draw closes the frame timing.
func (g *Game) Update() {
	g.frameTimer.BeginFrame()

	pointer := g.handleInput()
	g.Step(frameTime(), pointer)

	g.frameTimer.Mark(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.expireStatus()
}

// UpdateHeadless runs one frame without raylib, holding the last pointer state.
func (g *Game) UpdateHeadless() {
	g.frameTimer.BeginFrame()

	g.Step(config.Cfg().Derived.FrameDT, g.pointer)

	g.frameTimer.Mark(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.frameTimer.EndFrame()
}

// speedOf returns the velocity magnitude.
func speedOf(v *components.Velocity) float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}
