package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
)

// Sprite is the per-particle data needed for drawing.
type Sprite struct {
	X, Y         float32
	PrevX, PrevY float32
	Size         float32
	Seed         float32
}

// Scene is the shared per-frame drawing state.
type Scene struct {
	Noise   *systems.NoiseField
	Preset  components.Preset
	Mode    components.Mode
	Shape   components.ShapeKind
	Time    float64
	Pointer components.Pointer
	Width   float32
}

// ParticleStyle holds drawing constants.
type ParticleStyle struct {
	StrokeFactor float32
	ShapeFactor  float32
	TrailJitter  float32
	HueScale     float64
	HueRange     float64
	Alpha        systems.AlphaParams
	Shape        systems.ShapeParams
}

// ParticleStyleFromConfig extracts drawing constants from the loaded config.
func ParticleStyleFromConfig(cfg *config.Config) ParticleStyle {
	rc := cfg.Render
	return ParticleStyle{
		StrokeFactor: float32(rc.StrokeFactor),
		ShapeFactor:  float32(rc.ShapeFactor),
		TrailJitter:  float32(rc.TrailJitter),
		HueScale:     cfg.Noise.HueScale,
		HueRange:     cfg.Noise.HueRange,
		Alpha: systems.AlphaParams{
			Near:   float32(rc.AlphaNear),
			Far:    float32(rc.AlphaFar),
			Floor:  float32(rc.AlphaFloor),
			Factor: float32(cfg.Field.InfluenceFactor),
		},
		Shape: systems.ShapeParams{
			PolyWobble:     rc.PolyWobble,
			TriangleWobble: rc.TriangleWobble,
			StarInner:      rc.StarInner,
		},
	}
}

// ParticleRenderer draws particles as wave trails or shapes.
type ParticleRenderer struct {
	style ParticleStyle
	rng   *rand.Rand // Trail jitter only; kept apart from the simulation RNG

	verts []systems.Vec2
}

// NewParticleRenderer creates a particle renderer.
func NewParticleRenderer(style ParticleStyle, seed int64) *ParticleRenderer {
	return &ParticleRenderer{
		style: style,
		rng:   rand.New(rand.NewSource(seed)),
		verts: make([]systems.Vec2, 0, 10),
	}
}

// Color returns the tinted, distance-faded color of a particle.
func (r *ParticleRenderer) Color(s *Sprite, sc *Scene) rl.Color {
	n := sc.Noise.Sample(float64(s.X)*r.style.HueScale, float64(s.Y)*r.style.HueScale, sc.Time)
	hue := systems.LocalHue(sc.Preset.Hue, n, r.style.HueRange)

	dx := s.X - sc.Pointer.X
	dy := s.Y - sc.Pointer.Y
	d := float32(rl.Vector2Length(rl.Vector2{X: dx, Y: dy}))
	alpha := systems.DistanceAlpha(d, sc.Width, r.style.Alpha)

	return HSBA(hue, sc.Preset.Saturation, sc.Preset.Brightness, float64(alpha))
}

// Draw renders all sprites in the current mode.
func (r *ParticleRenderer) Draw(sprites []Sprite, sc *Scene) {
	for i := range sprites {
		s := &sprites[i]
		col := r.Color(s, sc)
		if sc.Mode == components.ModeWave {
			r.drawTrail(s, col)
		} else {
			r.drawShape(s, sc, col)
		}
	}
}

func (r *ParticleRenderer) drawTrail(s *Sprite, col rl.Color) {
	c := r.trailControls(s)
	rl.DrawSplineSegmentCatmullRom(c[0], c[1], c[2], c[3], s.Size*r.style.StrokeFactor, col)
}

// trailControls returns the four Catmull-Rom control points of a wave trail:
// jittered previous, previous, current, jittered current.
func (r *ParticleRenderer) trailControls(s *Sprite) [4]rl.Vector2 {
	prev := systems.Vec2{X: s.PrevX, Y: s.PrevY}
	cur := systems.Vec2{X: s.X, Y: s.Y}
	return [4]rl.Vector2{toVec(r.jitter(prev)), toVec(prev), toVec(cur), toVec(r.jitter(cur))}
}

func (r *ParticleRenderer) drawShape(s *Sprite, sc *Scene, col rl.Color) {
	center := rl.Vector2{X: s.X, Y: s.Y}
	radius := s.Size * r.style.ShapeFactor

	if sc.Shape == components.ShapeCircle {
		rl.DrawCircleV(center, radius, col)
		return
	}

	seed := float64(s.Seed)
	r.verts = systems.AppendShapeVertices(r.verts[:0], sc.Shape, radius, sc.Time+seed, sc.Time, seed, sc.Noise, r.style.Shape)

	// Vertices run clockwise on screen; raylib wants counter-clockwise.
	n := len(r.verts)
	for i := 0; i < n; i++ {
		a := r.verts[i]
		b := r.verts[(i+1)%n]
		rl.DrawTriangle(
			center,
			rl.Vector2{X: center.X + b.X, Y: center.Y + b.Y},
			rl.Vector2{X: center.X + a.X, Y: center.Y + a.Y},
			col,
		)
	}
}

func (r *ParticleRenderer) jitter(p systems.Vec2) systems.Vec2 {
	j := r.style.TrailJitter
	return systems.Vec2{
		X: p.X + (r.rng.Float32()*2-1)*j,
		Y: p.Y + (r.rng.Float32()*2-1)*j,
	}
}

func toVec(v systems.Vec2) rl.Vector2 {
	return rl.Vector2{X: v.X, Y: v.Y}
}
