// Package systems contains the raylib-free simulation logic for the sketch.
package systems

import "math"

// Vec2 is a plain 2D point used by geometry helpers.
type Vec2 struct {
	X, Y float32
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerpf linearly interpolates from a to b by t.
func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}

// unit returns the unit vector at angle a.
func unit(a float64) (float32, float32) {
	return float32(math.Cos(a)), float32(math.Sin(a))
}

// limit scales (x, y) down so its magnitude does not exceed maxMag.
func limit(x, y, maxMag float32) (float32, float32) {
	mag := velocityMagnitude(x, y)
	if mag > maxMag && mag > 0 {
		s := maxMag / mag
		return x * s, y * s
	}
	return x, y
}

// wrapDegrees wraps a hue angle to [0, 360).
func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
