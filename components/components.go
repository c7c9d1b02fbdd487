// Package components defines ECS components and shared value types for the sketch.
package components

import "github.com/pthm-cable/driftfield/config"

// Position represents a particle's canvas position.
type Position struct {
	X, Y float32
}

// Trail holds the position a particle occupied before its last integration step.
type Trail struct {
	X, Y float32
}

// Velocity represents a particle's velocity in canvas units per frame.
type Velocity struct {
	X, Y float32
}

// Motion holds per-particle scalar state.
type Motion struct {
	Size  float32 // Render size, jittered around the preset particle size
	Phase float32 // Wave-mode oscillation phase (radians)
	Seed  float32 // Time offset into the noise field
	Life  float32 // Decremented every frame; never consulted for removal
}

// Mode selects both the motion policy and the rendering style.
type Mode uint8

const (
	ModeWave     Mode = iota // Flow-following trails
	ModeParticle             // Jittery morphing shapes
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeWave {
		return ModeParticle
	}
	return ModeWave
}

func (m Mode) String() string {
	switch m {
	case ModeWave:
		return "wave"
	case ModeParticle:
		return "particle"
	}
	return "unknown"
}

// ShapeKind selects the particle-mode shape.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeSquare
	ShapeTriangle
	ShapeStar

	ShapeCount = 4
)

// Next returns the following shape, wrapping after the last.
func (s ShapeKind) Next() ShapeKind {
	return ShapeKind((int(s) + 1) % ShapeCount)
}

func (s ShapeKind) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeStar:
		return "star"
	}
	return "unknown"
}

// Preset is a named bundle of visual and motion parameters.
// It is passed by value so the active copy never aliases a template.
type Preset struct {
	Name         string
	Hue          float64 // [0, 360)
	Saturation   float64 // [0, 100]
	Brightness   float64 // [0, 100]
	Speed        float64
	NoiseScale   float64
	ParticleSize float64
}

// PresetFromConfig converts a preset config entry.
func PresetFromConfig(p config.PresetConfig) Preset {
	return Preset{
		Name:         p.Name,
		Hue:          p.Hue,
		Saturation:   p.Saturation,
		Brightness:   p.Brightness,
		Speed:        p.Speed,
		NoiseScale:   p.NoiseScale,
		ParticleSize: p.ParticleSize,
	}
}

// Config converts the preset back into its config form.
func (p Preset) Config() config.PresetConfig {
	return config.PresetConfig{
		Name:         p.Name,
		Hue:          p.Hue,
		Saturation:   p.Saturation,
		Brightness:   p.Brightness,
		Speed:        p.Speed,
		NoiseScale:   p.NoiseScale,
		ParticleSize: p.ParticleSize,
	}
}

// Pointer is the input collaborator's pointer state for one frame.
type Pointer struct {
	X, Y    float32
	Pressed bool // Button held: particles are pulled toward the pointer
}
