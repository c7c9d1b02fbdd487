package systems

import (
	"math"

	"github.com/pthm-cable/driftfield/components"
)

// ShapeParams controls per-vertex distortion of particle-mode shapes.
type ShapeParams struct {
	PolyWobble     float64 // Square and star radius perturbation
	TriangleWobble float64 // Triangle radius perturbation
	StarInner      float64 // Inner radius as a fraction of outer
}

const (
	starPoints   = 10
	squareStart  = math.Pi / 4
	triangleFrom = -math.Pi / 2
	starFrom     = -math.Pi / 2
)

// AppendShapeVertices appends the outline of kind, centered at the origin,
// rotated by rotation. Vertices are in increasing angle order.
// Circles have no vertices; callers draw them directly.
func AppendShapeVertices(dst []Vec2, kind components.ShapeKind, radius float32, rotation, t, seed float64, noise *NoiseField, sp ShapeParams) []Vec2 {
	r := float64(radius)

	switch kind {
	case components.ShapeSquare:
		for k := 0; k < 4; k++ {
			a := squareStart + float64(k)*math.Pi/2
			rr := r * (1 + sp.PolyWobble*math.Sin(a+t+seed))
			dst = append(dst, polar(rr, a+rotation))
		}

	case components.ShapeTriangle:
		for k := 0; k < 3; k++ {
			a := triangleFrom + float64(k)*2*math.Pi/3
			n := noise.Sample(a+seed, a-seed, t)
			rr := r * (1 + (n*2-1)*sp.TriangleWobble)
			dst = append(dst, polar(rr, a+rotation))
		}

	case components.ShapeStar:
		for k := 0; k < starPoints; k++ {
			a := starFrom + float64(k)*2*math.Pi/starPoints
			base := r
			if k%2 == 1 {
				base = r * sp.StarInner
			}
			rr := base * (1 + sp.PolyWobble*math.Cos(a+t+seed))
			dst = append(dst, polar(rr, a+rotation))
		}
	}

	return dst
}

func polar(r, a float64) Vec2 {
	return Vec2{X: float32(r * math.Cos(a)), Y: float32(r * math.Sin(a))}
}

// AlphaParams maps pointer distance to opacity.
type AlphaParams struct {
	Near   float32 // Alpha at distance 0
	Far    float32 // Alpha at factor*width
	Floor  float32
	Factor float32
}

// DistanceAlpha fades linearly from Near at distance 0 toward Far at factor*width,
// continuing past it, then clamps to [Floor, 1].
func DistanceAlpha(d, width float32, ap AlphaParams) float32 {
	reach := width * ap.Factor
	if reach <= 0 {
		return clampFloat(ap.Near, ap.Floor, 1)
	}
	a := ap.Near + (ap.Far-ap.Near)*d/reach
	return clampFloat(a, ap.Floor, 1)
}

// LocalHue offsets a base hue by a noise value in [0,1] scaled to hueRange degrees.
func LocalHue(base, noise, hueRange float64) float64 {
	return wrapDegrees(base + noise*hueRange)
}
