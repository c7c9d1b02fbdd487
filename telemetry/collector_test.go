package telemetry

import "testing"

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if c.WindowFrames() != 600 {
		t.Fatalf("window = %d frames, want 600", c.WindowFrames())
	}
	if c.ShouldFlush(599) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(600) {
		t.Error("should flush at the window end")
	}

	if NewCollector(0, 1.0/60).WindowFrames() != 1 {
		t.Error("window should be at least one frame")
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(1, 0.5)

	c.RecordClick(12)
	c.RecordClick(3)
	c.RecordPresetChange()
	c.RecordModeToggle()
	c.RecordModeToggle()
	c.RecordShapeChange()
	c.RecordReseed()
	c.RecordSave()
	c.RecordWraps(4)
	c.RecordDragFrame()

	stats := c.Flush(2, FieldSample{
		FieldTime: 0.01,
		Preset:    "aurora",
		Mode:      "wave",
		Shape:     "circle",
		Speeds:    []float64{0.1, 0.2, 0.3, 0.4},
		InMargin:  1,
	})

	if stats.Clicks != 2 || stats.Impulses != 15 {
		t.Errorf("clicks=%d impulses=%d, want 2 and 15", stats.Clicks, stats.Impulses)
	}
	if stats.ModeToggles != 2 || stats.PresetChanges != 1 || stats.ShapeChanges != 1 {
		t.Errorf("unexpected toggles %+v", stats)
	}
	if stats.Reseeds != 1 || stats.Saves != 1 || stats.Wraps != 4 || stats.DragFrames != 1 {
		t.Errorf("unexpected counters %+v", stats)
	}
	if stats.Particles != 4 || stats.MarginFrac != 0.25 {
		t.Errorf("particles=%d margin=%v, want 4 and 0.25", stats.Particles, stats.MarginFrac)
	}
	if stats.WindowStart != 0 || stats.WindowEnd != 2 {
		t.Errorf("window = [%d, %d], want [0, 2]", stats.WindowStart, stats.WindowEnd)
	}

	next := c.Flush(4, FieldSample{})
	if next.Clicks != 0 || next.Wraps != 0 || next.Reseeds != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStart != 2 {
		t.Errorf("next window starts at %d, want 2", next.WindowStart)
	}
	if c.WindowFrames() != 2 {
		t.Errorf("window frames lost on flush: %d", c.WindowFrames())
	}
}
