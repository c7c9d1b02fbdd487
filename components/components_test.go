package components

import (
	"testing"

	"github.com/pthm-cable/driftfield/config"
)

func TestModeToggleTwiceRestores(t *testing.T) {
	for _, m := range []Mode{ModeWave, ModeParticle} {
		if got := m.Toggle().Toggle(); got != m {
			t.Errorf("%v toggled twice = %v", m, got)
		}
		if m.Toggle() == m {
			t.Errorf("%v toggle should change mode", m)
		}
	}
}

func TestShapeNextCycles(t *testing.T) {
	for start := ShapeKind(0); start < ShapeCount; start++ {
		s := start
		for i := 0; i < ShapeCount; i++ {
			s = s.Next()
		}
		if s != start {
			t.Errorf("cycling %v %d times ended at %v", start, ShapeCount, s)
		}
	}

	if ShapeStar.Next() != ShapeCircle {
		t.Errorf("star should wrap to circle, got %v", ShapeStar.Next())
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ModeWave.String(), "wave"},
		{ModeParticle.String(), "particle"},
		{ShapeCircle.String(), "circle"},
		{ShapeSquare.String(), "square"},
		{ShapeTriangle.String(), "triangle"},
		{ShapeStar.String(), "star"},
		{ShapeKind(9).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestPresetConfigConversion(t *testing.T) {
	pc := config.PresetConfig{
		Name: "test", Hue: 120, Saturation: 50, Brightness: 90,
		Speed: 1.5, NoiseScale: 0.003, ParticleSize: 2,
	}
	p := PresetFromConfig(pc)
	if p.Config() != pc {
		t.Errorf("conversion mismatch: %+v vs %+v", p.Config(), pc)
	}
}
