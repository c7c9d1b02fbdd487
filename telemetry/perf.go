package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Frame phases, in the order a windowed frame runs them.
const (
	PhaseTimeAdvance = "time_advance"
	PhaseParticles   = "particles"
	PhaseGrid        = "grid"
	PhaseDraw        = "draw"
	PhaseTelemetry   = "telemetry"
)

const phaseCount = 5

// Phases lists every phase name; FrameTimer slots are indexed in this order.
var Phases = []string{PhaseTimeAdvance, PhaseParticles, PhaseGrid, PhaseDraw, PhaseTelemetry}

func phaseSlot(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

type frameTiming struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// FrameTimer keeps a ring of the last N frame timings split by phase.
// A phase runs from its Mark until the next Mark or EndFrame.
type FrameTimer struct {
	ring   []frameTiming
	next   int
	filled int

	cur   frameTiming
	begun time.Time
	mark  time.Time
	open  int // slot of the running phase, -1 for none

	presented time.Time
	interval  time.Duration
}

// NewFrameTimer returns a timer averaging over frames frames (60 if < 1).
func NewFrameTimer(frames int) *FrameTimer {
	if frames < 1 {
		frames = 60
	}
	return &FrameTimer{ring: make([]frameTiming, frames), open: -1}
}

// BeginFrame resets the in-progress frame.
func (t *FrameTimer) BeginFrame() {
	t.begun = time.Now()
	t.cur = frameTiming{}
	t.open = -1
}

// Mark closes the running phase and opens phase. Unknown names close
// the running phase and time nothing until the next Mark.
func (t *FrameTimer) Mark(phase string) {
	now := time.Now()
	t.closePhase(now)
	t.mark = now
	t.open = phaseSlot(phase)
}

// EndFrame stores the in-progress frame in the ring.
func (t *FrameTimer) EndFrame() {
	now := time.Now()
	t.closePhase(now)
	t.cur.total = now.Sub(t.begun)

	t.ring[t.next] = t.cur
	t.next = (t.next + 1) % len(t.ring)
	if t.filled < len(t.ring) {
		t.filled++
	}
	t.open = -1
}

func (t *FrameTimer) closePhase(now time.Time) {
	if t.open >= 0 {
		t.cur.phases[t.open] += now.Sub(t.mark)
	}
}

// Present records that a frame reached the screen.
func (t *FrameTimer) Present() {
	now := time.Now()
	if !t.presented.IsZero() {
		t.interval = now.Sub(t.presented)
	}
	t.presented = now
}

// PerfStats summarises a FrameTimer window.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of AvgFrame, 0-100

	FramesPerSecond float64 // Throughput if frames ran back to back

	Interval time.Duration // Between the last two presented frames
	FPS      float64
}

// Stats summarises the frames currently in the ring.
func (t *FrameTimer) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration, phaseCount),
		PhasePct: make(map[string]float64, phaseCount),
		Interval: t.interval,
	}
	if t.interval > 0 {
		s.FPS = float64(time.Second) / float64(t.interval)
	}
	if t.filled == 0 {
		return s
	}

	totals := make([]float64, t.filled)
	var phaseSum [phaseCount]time.Duration
	for i, f := range t.ring[:t.filled] {
		totals[i] = float64(f.total)
		for k, d := range f.phases {
			phaseSum[k] += d
		}
	}

	s.AvgFrame = time.Duration(stat.Mean(totals, nil))
	s.MinFrame = time.Duration(floats.Min(totals))
	s.MaxFrame = time.Duration(floats.Max(totals))
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}

	for k, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		avg := sum / time.Duration(t.filled)
		s.PhaseAvg[Phases[k]] = avg
		if s.AvgFrame > 0 {
			s.PhasePct[Phases[k]] = float64(avg) / float64(s.AvgFrame) * 100
		}
	}
	return s
}

// LogValue reports frame times in microseconds and phases above 0.1%.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	MinFrameUS     int64   `csv:"min_frame_us"`
	MaxFrameUS     int64   `csv:"max_frame_us"`
	FramesPerSec   float64 `csv:"frames_per_sec"`
	FPS            float64 `csv:"fps"`
	TimeAdvancePct float64 `csv:"time_advance_pct"`
	ParticlesPct   float64 `csv:"particles_pct"`
	GridPct        float64 `csv:"grid_pct"`
	DrawPct        float64 `csv:"draw_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgFrameUS:     s.AvgFrame.Microseconds(),
		MinFrameUS:     s.MinFrame.Microseconds(),
		MaxFrameUS:     s.MaxFrame.Microseconds(),
		FramesPerSec:   s.FramesPerSecond,
		FPS:            s.FPS,
		TimeAdvancePct: s.PhasePct[PhaseTimeAdvance],
		ParticlesPct:   s.PhasePct[PhaseParticles],
		GridPct:        s.PhasePct[PhaseGrid],
		DrawPct:        s.PhasePct[PhaseDraw],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
