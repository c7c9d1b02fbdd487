package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/driftfield/components"
)

// ImpulseParams configures the click burst.
type ImpulseParams struct {
	Radius float32
	Min    float64
	Max    float64
	Spread float64 // Max deviation from the outward direction (radians)
}

// ApplyClickImpulse pushes a particle away from (px, py) if it lies within the radius.
// A particle exactly at the pointer gets a uniformly random direction.
// Returns the added impulse and whether one was applied.
func ApplyClickImpulse(pos *components.Position, vel *components.Velocity, px, py float32, ip ImpulseParams, rng *rand.Rand) (ix, iy float32, ok bool) {
	dx := pos.X - px
	dy := pos.Y - py
	d := velocityMagnitude(dx, dy)
	if d > ip.Radius {
		return 0, 0, false
	}

	var angle float64
	if d == 0 {
		angle = rng.Float64() * 2 * math.Pi
	} else {
		angle = math.Atan2(float64(dy), float64(dx)) + (rng.Float64()*2-1)*ip.Spread
	}

	mag := ip.Min + rng.Float64()*(ip.Max-ip.Min)
	ux, uy := unit(angle)
	ix = ux * float32(mag)
	iy = uy * float32(mag)

	vel.X += ix
	vel.Y += iy
	return ix, iy, true
}

// Scatter places a particle uniformly in the canvas with a small random velocity.
func Scatter(pos *components.Position, trail *components.Trail, vel *components.Velocity, width, height, speed float32, rng *rand.Rand) {
	pos.X = rng.Float32() * width
	pos.Y = rng.Float32() * height
	trail.X, trail.Y = pos.X, pos.Y

	vx, vy := unit(rng.Float64() * 2 * math.Pi)
	vel.X = vx * speed
	vel.Y = vy * speed
}

// SpawnPosition picks a position biased toward the center of a random cell of a
// cols x rows virtual grid. spread is the offset stddev as a fraction of cell size.
func SpawnPosition(width, height float32, cols, rows int, spread float64, rng *rand.Rand) (float32, float32) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cellW := width / float32(cols)
	cellH := height / float32(rows)

	cx := (float32(rng.Intn(cols)) + 0.5) * cellW
	cy := (float32(rng.Intn(rows)) + 0.5) * cellH

	x := cx + float32(rng.NormFloat64()*spread)*cellW
	y := cy + float32(rng.NormFloat64()*spread)*cellH

	return clampFloat(x, 0, width), clampFloat(y, 0, height)
}
