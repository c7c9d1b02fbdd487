package systems

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Noise backends.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// NoiseSource is a coherent 3D noise function returning values in roughly [-1, 1].
type NoiseSource interface {
	Eval3(x, y, z float64) float64
}

// NoiseField samples fractal coherent noise over (x, y, t), normalized to [0, 1].
// Output is deterministic for a given seed; Reseed only affects later samples.
type NoiseField struct {
	backend string
	octaves int
	falloff float64
	seed    int64
	src     NoiseSource
	norm    float64 // Sum of octave amplitudes
}

// NewNoiseField creates a noise field with the given backend and fractal parameters.
// Unknown backends fall back to simplex.
func NewNoiseField(backend string, seed int64, octaves int, falloff float64) *NoiseField {
	if octaves < 1 {
		octaves = 1
	}
	if falloff <= 0 {
		falloff = 0.5
	}
	n := &NoiseField{
		backend: backend,
		octaves: octaves,
		falloff: falloff,
	}

	amp := 1.0
	for i := 0; i < octaves; i++ {
		n.norm += amp
		amp *= falloff
	}

	n.Reseed(seed)
	return n
}

// Reseed replaces the underlying source.
func (n *NoiseField) Reseed(seed int64) {
	n.seed = seed
	switch n.backend {
	case NoisePerlin:
		n.src = NewPerlinNoise(seed)
	default:
		n.src = opensimplex.New(seed)
	}
}

// Seed returns the current seed.
func (n *NoiseField) Seed() int64 {
	return n.seed
}

// Backend returns the backend name.
func (n *NoiseField) Backend() string {
	return n.backend
}

// Sample returns the fractal noise value at (x, y, t) in [0, 1].
func (n *NoiseField) Sample(x, y, t float64) float64 {
	var sum float64
	amp := 1.0
	freq := 1.0
	for i := 0; i < n.octaves; i++ {
		sum += n.src.Eval3(x*freq, y*freq, t*freq) * amp
		amp *= n.falloff
		freq *= 2
	}

	v := (sum/n.norm + 1) * 0.5
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// perlinGrads are the twelve cube-edge gradients.
var perlinGrads = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// PerlinNoise is gradient noise over a seeded 256-entry lattice hash.
// It is zero on every integer lattice point.
type PerlinNoise struct {
	hash [512]int // permutation repeated twice so corner lookups never wrap
}

// NewPerlinNoise builds the lattice hash from seed.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	for i, v := range rand.New(rand.NewSource(seed)).Perm(256) {
		p.hash[i] = v
		p.hash[i+256] = v
	}
	return p
}

// Eval3 implements NoiseSource.
func (p *PerlinNoise) Eval3(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	cx, cy, cz := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz

	// Corner i sits at offset (i&1, i>>1&1, i>>2&1) from the cell origin.
	var dots [8]float64
	for i := range dots {
		ox, oy, oz := i&1, i>>1&1, i>>2&1
		h := p.hash[p.hash[p.hash[cx+ox]+cy+oy]+cz+oz]
		g := perlinGrads[h%12]
		dots[i] = g[0]*(x-float64(ox)) + g[1]*(y-float64(oy)) + g[2]*(z-float64(oz))
	}

	u, v, w := smootherstep(x), smootherstep(y), smootherstep(z)
	near := mix(mix(dots[0], dots[1], u), mix(dots[2], dots[3], u), v)
	far := mix(mix(dots[4], dots[5], u), mix(dots[6], dots[7], u), v)
	return mix(near, far, w)
}

func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
