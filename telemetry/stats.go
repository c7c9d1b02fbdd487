package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStart int64   `csv:"-"`
	WindowEnd   int64   `csv:"window_end"`
	FieldTime   float64 `csv:"field_time"` // Noise time coordinate t at window end

	// Sketch state at window end
	Preset    string `csv:"preset"`
	Mode      string `csv:"mode"`
	Shape     string `csv:"shape"`
	Particles int    `csv:"particles"`

	// Events during window
	Clicks        int `csv:"clicks"`
	Impulses      int `csv:"impulses"` // Particles pushed by clicks
	PresetChanges int `csv:"preset_changes"`
	ModeToggles   int `csv:"mode_toggles"`
	ShapeChanges  int `csv:"shape_changes"`
	Reseeds       int `csv:"reseeds"`
	Saves         int `csv:"saves"`
	Wraps         int `csv:"wraps"`
	DragFrames    int `csv:"drag_frames"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Fraction of particles in the wrap margin outside the visible canvas
	MarginFrac float64 `csv:"margin_frac"`
}

// Percentile returns the smallest sample at or above fraction p of a sorted slice.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// SpeedStats summarizes a set of particle speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSpeedStats calculates mean, std and percentiles. values is not modified.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := SpeedStats{
		Mean: stat.Mean(sorted, nil),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  sorted[n-1],
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStart),
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("field_time", s.FieldTime),
		slog.String("preset", s.Preset),
		slog.String("mode", s.Mode),
		slog.String("shape", s.Shape),
		slog.Int("particles", s.Particles),
		slog.Int("clicks", s.Clicks),
		slog.Int("impulses", s.Impulses),
		slog.Int("preset_changes", s.PresetChanges),
		slog.Int("mode_toggles", s.ModeToggles),
		slog.Int("shape_changes", s.ShapeChanges),
		slog.Int("reseeds", s.Reseeds),
		slog.Int("saves", s.Saves),
		slog.Int("wraps", s.Wraps),
		slog.Int("drag_frames", s.DragFrames),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("margin_frac", s.MarginFrac),
	)
}
