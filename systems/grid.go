package systems

// GridArc is one decorative arc of the grid overlay. Angles are in degrees.
type GridArc struct {
	X, Y       float32
	Radius     float32
	Start, End float32
	Level      float32 // Noise value in [0, 1] at this node
}

// GridLattice maps a cols x rows lattice onto [margin, width-margin] x [margin, height-margin].
type GridLattice struct {
	Cols, Rows int
	Margin     float32
	NoiseScale float64
	ArcRadius  float32
}

// Node returns the canvas position of lattice node (i, j).
func (g GridLattice) Node(i, j int, width, height float32) (float32, float32) {
	x := g.Margin
	y := g.Margin
	if g.Cols > 1 {
		x += float32(i) * (width - 2*g.Margin) / float32(g.Cols-1)
	}
	if g.Rows > 1 {
		y += float32(j) * (height - 2*g.Margin) / float32(g.Rows-1)
	}
	return x, y
}

// AppendArcs appends one noise-perturbed arc per lattice node.
func (g GridLattice) AppendArcs(dst []GridArc, width, height float32, t float64, noise *NoiseField) []GridArc {
	for j := 0; j < g.Rows; j++ {
		for i := 0; i < g.Cols; i++ {
			x, y := g.Node(i, j, width, height)
			n := noise.Sample(float64(i)*g.NoiseScale, float64(j)*g.NoiseScale, t)
			start := float32(n * 720)
			sweep := float32(30 + n*150)
			dst = append(dst, GridArc{
				X:      x,
				Y:      y,
				Radius: g.ArcRadius * float32(0.5+n),
				Start:  start,
				End:    start + sweep,
				Level:  float32(n),
			})
		}
	}
	return dst
}
