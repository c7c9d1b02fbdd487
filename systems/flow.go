package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
)

// FlowParams holds the motion constants applied to every particle.
type FlowParams struct {
	WaveBlend       float32
	ParticleBlend   float32
	WaveSpeed       float64
	ParticleSpeed   float64
	Oscillation     float64
	OscillationRate float64
	Jitter          float64
	FlowTurns       float64
	DragGain        float32
	DragSpeedCap    float32 // 0 = uncapped
	PhaseRate       float32
	LifeDecay       float32
	Margin          float32
	InfluenceFactor float32
}

// FlowParamsFromConfig extracts flow parameters from the loaded config.
func FlowParamsFromConfig(cfg *config.Config) FlowParams {
	m := cfg.Motion
	return FlowParams{
		WaveBlend:       float32(m.WaveBlend),
		ParticleBlend:   float32(m.ParticleBlend),
		WaveSpeed:       m.WaveSpeed,
		ParticleSpeed:   m.ParticleSpeed,
		Oscillation:     m.Oscillation,
		OscillationRate: m.OscillationRate,
		Jitter:          m.Jitter,
		FlowTurns:       m.FlowTurns,
		DragGain:        float32(m.DragGain),
		DragSpeedCap:    float32(m.DragSpeedCap),
		PhaseRate:       float32(m.PhaseRate),
		LifeDecay:       float32(m.LifeDecay),
		Margin:          float32(cfg.Field.Margin),
		InfluenceFactor: float32(cfg.Field.InfluenceFactor),
	}
}

// Frame is the read-only per-frame context shared by all particle updates.
type Frame struct {
	Noise   *NoiseField
	Rand    *rand.Rand
	Pointer components.Pointer
	Preset  components.Preset
	Mode    components.Mode
	Time    float64
	Width   float32
	Height  float32
	Params  FlowParams
}

// Influence returns pointer influence in [0, 1]: 1 at distance 0, 0 at factor*width.
func Influence(d, width, factor float32) float32 {
	reach := width * factor
	if reach <= 0 {
		return 0
	}
	return clamp01(1 - d/reach)
}

// FlowAngle returns the flow direction at a position.
func FlowAngle(noise *NoiseField, x, y float32, noiseScale, t, seed, turns float64) float64 {
	n := noise.Sample(float64(x)*noiseScale, float64(y)*noiseScale, t+seed)
	return n * 2 * math.Pi * turns
}

// Wrap teleports v to the opposite edge once it leaves [-margin, extent+margin].
func Wrap(v, extent, margin float32) (float32, bool) {
	if v < -margin {
		return extent + margin, true
	}
	if v > extent+margin {
		return -margin, true
	}
	return v, false
}

// UpdateParticle advances one particle by a frame. Returns true if it wrapped.
func UpdateParticle(pos *components.Position, trail *components.Trail, vel *components.Velocity, m *components.Motion, f *Frame) bool {
	p := &f.Params
	speed := f.Preset.Speed

	angle := FlowAngle(f.Noise, pos.X, pos.Y, f.Preset.NoiseScale, f.Time, float64(m.Seed), p.FlowTurns)
	flowX, flowY := unit(angle)

	d := distance(pos.X, pos.Y, f.Pointer.X, f.Pointer.Y)
	influence := Influence(d, f.Width, p.InfluenceFactor)

	if f.Pointer.Pressed {
		// Additive pull with no decay; wrap and the later blend keep it from diverging.
		s := influence * p.DragGain
		dx, dy := limit((f.Pointer.X-pos.X)*s, (f.Pointer.Y-pos.Y)*s, s)
		vel.X += dx
		vel.Y += dy
		if p.DragSpeedCap > 0 {
			vel.X, vel.Y = limit(vel.X, vel.Y, p.DragSpeedCap)
		}
	} else {
		var tx, ty, w float32
		switch f.Mode {
		case components.ModeParticle:
			jx, jy := unit(f.Rand.Float64() * 2 * math.Pi)
			tx = flowX*float32(speed*p.ParticleSpeed) + jx*float32(p.Jitter)
			ty = flowY*float32(speed*p.ParticleSpeed) + jy*float32(p.Jitter)
			w = p.ParticleBlend
		default:
			ox, oy := unit(float64(m.Phase) + f.Time*p.OscillationRate)
			tx = flowX*float32(speed*p.WaveSpeed) + ox*float32(p.Oscillation)
			ty = flowY*float32(speed*p.WaveSpeed) + oy*float32(p.Oscillation)
			w = p.WaveBlend
		}
		vel.X = lerpf(vel.X, tx, w)
		vel.Y = lerpf(vel.Y, ty, w)
	}

	trail.X, trail.Y = pos.X, pos.Y
	pos.X += vel.X
	pos.Y += vel.Y

	var wx, wy bool
	pos.X, wx = Wrap(pos.X, f.Width, p.Margin)
	pos.Y, wy = Wrap(pos.Y, f.Height, p.Margin)
	if wx || wy {
		// No streak across the canvas on teleport
		trail.X, trail.Y = pos.X, pos.Y
	}

	m.Phase += p.PhaseRate * float32(speed)
	m.Life -= p.LifeDecay

	return wx || wy
}
