package game

import (
	"log/slog"

	"github.com/pthm-cable/driftfield/telemetry"
)

// flushTelemetry closes the stats window once it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.sampleField())
	perfStats := g.frameTimer.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		slog.Info("stats", "window", stats)
		slog.Info("perf", "frame", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleField captures particle speeds and how many sit in the wrap margin.
func (g *Game) sampleField() telemetry.FieldSample {
	s := telemetry.FieldSample{
		FieldTime: g.time,
		Preset:    g.preset.Name,
		Mode:      g.mode.String(),
		Shape:     g.shape.String(),
		Speeds:    make([]float64, 0, g.particleCount),
	}

	query := g.particleFilter.Query()
	for query.Next() {
		pos, _, vel, _ := query.Get()
		s.Speeds = append(s.Speeds, speedOf(vel))
		if pos.X < 0 || pos.X > g.width || pos.Y < 0 || pos.Y > g.height {
			s.InMargin++
		}
	}
	return s
}
