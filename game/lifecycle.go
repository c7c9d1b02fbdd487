package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
)

// spawnParticles creates n particles biased toward the centers of a virtual grid.
func (g *Game) spawnParticles(n int) {
	cfg := config.Cfg()
	f := cfg.Field

	for i := 0; i < n; i++ {
		x, y := systems.SpawnPosition(g.width, g.height, f.SpawnCols, f.SpawnRows, f.SpawnSpread, g.rng)

		pos := components.Position{X: x, Y: y}
		trail := components.Trail{X: x, Y: y}
		vel := components.Velocity{}
		motion := components.Motion{
			Size:  systems.JitteredSize(g.preset.ParticleSize, f.SizeJitterMin, f.SizeJitterMax, g.rng),
			Phase: float32(g.rng.Float64() * 2 * math.Pi),
			Seed:  float32(g.rng.Float64() * 1000),
			Life:  1,
		}

		g.particleMapper.NewEntity(&pos, &trail, &vel, &motion)
	}
	g.particleCount += n
}

// Reseed replaces the noise seed and random stream, then scatters every
// particle uniformly with a small random velocity.
func (g *Game) Reseed(seed int64) {
	g.seed = seed
	g.noise.Reseed(seed)
	g.rng = rand.New(rand.NewSource(seed))

	speed := float32(config.Cfg().Field.ReseedSpeed)

	query := g.particleFilter.Query()
	for query.Next() {
		pos, trail, vel, _ := query.Get()
		systems.Scatter(pos, trail, vel, g.width, g.height, speed, g.rng)
	}

	g.collector.RecordReseed()
	g.audio.PlayReseed()
	slog.Info("field reseeded", "seed", seed, "frame", g.frame)
}
