// Package telemetry collects frame timing and interaction stats and writes them as CSV.
package telemetry

// FieldSample is the sketch state captured when a window closes.
type FieldSample struct {
	FieldTime float64
	Preset    string
	Mode      string
	Shape     string
	Speeds    []float64
	InMargin  int // Particles outside the visible canvas but inside the wrap margin
}

// Collector accumulates interaction events within frame windows and produces WindowStats.
type Collector struct {
	windowFrames int64
	windowStart  int64

	clicks        int
	impulses      int
	presetChanges int
	modeToggles   int
	shapeChanges  int
	reseeds       int
	saves         int
	wraps         int
	dragFrames    int
}

// NewCollector creates a collector whose windows last windowSec at frameDT seconds per frame.
func NewCollector(windowSec, frameDT float64) *Collector {
	frames := int64(1)
	if frameDT > 0 {
		frames = int64(windowSec/frameDT + 0.5)
	}
	if frames < 1 {
		frames = 1
	}
	return &Collector{windowFrames: frames}
}

// RecordClick records a click and the number of particles it pushed.
func (c *Collector) RecordClick(impulses int) {
	c.clicks++
	c.impulses += impulses
}

// RecordPresetChange records a preset switch.
func (c *Collector) RecordPresetChange() { c.presetChanges++ }

// RecordModeToggle records a mode toggle.
func (c *Collector) RecordModeToggle() { c.modeToggles++ }

// RecordShapeChange records a shape cycle.
func (c *Collector) RecordShapeChange() { c.shapeChanges++ }

// RecordReseed records a reseed.
func (c *Collector) RecordReseed() { c.reseeds++ }

// RecordSave records a successful frame export.
func (c *Collector) RecordSave() { c.saves++ }

// RecordWraps adds particle edge wraps from one frame.
func (c *Collector) RecordWraps(n int) { c.wraps += n }

// RecordDragFrame records a frame with the pointer held down.
func (c *Collector) RecordDragFrame() { c.dragFrames++ }

// ShouldFlush returns true once a full window of frames has elapsed.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}

// Flush produces a WindowStats for the window ending at frame and resets counters.
func (c *Collector) Flush(frame int64, s FieldSample) WindowStats {
	speed := ComputeSpeedStats(s.Speeds)

	var marginFrac float64
	if n := len(s.Speeds); n > 0 {
		marginFrac = float64(s.InMargin) / float64(n)
	}

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   frame,
		FieldTime:   s.FieldTime,

		Preset:    s.Preset,
		Mode:      s.Mode,
		Shape:     s.Shape,
		Particles: len(s.Speeds),

		Clicks:        c.clicks,
		Impulses:      c.impulses,
		PresetChanges: c.presetChanges,
		ModeToggles:   c.modeToggles,
		ShapeChanges:  c.shapeChanges,
		Reseeds:       c.reseeds,
		Saves:         c.saves,
		Wraps:         c.wraps,
		DragFrames:    c.dragFrames,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,

		MarginFrac: marginFrac,
	}

	*c = Collector{windowFrames: c.windowFrames, windowStart: frame}
	return stats
}
