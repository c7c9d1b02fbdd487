package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 800 {
		t.Errorf("screen = %dx%d, want 1280x800", cfg.Screen.Width, cfg.Screen.Height)
	}
	if len(cfg.Presets) != 4 {
		t.Fatalf("expected 4 default presets, got %d", len(cfg.Presets))
	}
	if cfg.Grid.Cols != 60 || cfg.Grid.Rows != 40 {
		t.Errorf("grid = %dx%d, want 60x40", cfg.Grid.Cols, cfg.Grid.Rows)
	}
	if cfg.Field.Margin != 50 {
		t.Errorf("margin = %v, want 50", cfg.Field.Margin)
	}
	if cfg.Derived.ScreenW32 != 1280 {
		t.Errorf("derived width = %v, want 1280", cfg.Derived.ScreenW32)
	}
	if idx, ok := cfg.Derived.PresetIndex["ember"]; !ok || idx != 1 {
		t.Errorf("preset index for ember = %d (ok=%v), want 1", idx, ok)
	}
	m := cfg.Motion
	if m.ParticleBlend != 0.06 || m.ParticleSpeed != 1.4 || m.Jitter != 0.5 || m.OscillationRate != 2.0 {
		t.Errorf("particle motion = %+v", m)
	}
	if cfg.Render.TrailJitter != 6 {
		t.Errorf("trail jitter = %v, want 6", cfg.Render.TrailJitter)
	}
	if cfg.Telemetry.PerfFrames != 60 {
		t.Errorf("perf frames = %d, want 60", cfg.Telemetry.PerfFrames)
	}
}

func TestLoadUserFileOverridesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("field:\n  particle_count: 42\nnoise:\n  backend: perlin\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Field.ParticleCount != 42 {
		t.Errorf("particle_count = %d, want 42", cfg.Field.ParticleCount)
	}
	if cfg.Noise.Backend != "perlin" {
		t.Errorf("backend = %q, want perlin", cfg.Noise.Backend)
	}
	// Untouched fields keep defaults
	if cfg.Field.ClickRadius != 140 {
		t.Errorf("click_radius = %v, want default 140", cfg.Field.ClickRadius)
	}
	if len(cfg.Presets) != 4 {
		t.Errorf("presets should keep defaults, got %d", len(cfg.Presets))
	}
}

func TestMergeReplacesPresetList(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("presets:\n  - name: mono\n    hue: 0\n    saturation: 0\n    brightness: 80\n    speed: 1\n    noise_scale: 0.002\n    particle_size: 2\n")
	if err := Merge(cfg, data); err != nil {
		t.Fatalf("Merge error: %v", err)
	}

	if len(cfg.Presets) != 1 || cfg.Presets[0].Name != "mono" {
		t.Errorf("expected single mono preset, got %+v", cfg.Presets)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero particles", func(c *Config) { c.Field.ParticleCount = 0 }},
		{"bad backend", func(c *Config) { c.Noise.Backend = "value" }},
		{"no presets", func(c *Config) { c.Presets = nil }},
		{"hue out of range", func(c *Config) { c.Presets[0].Hue = 360 }},
		{"negative speed", func(c *Config) { c.Presets[0].Speed = -1 }},
		{"inverted impulse", func(c *Config) { c.Field.ImpulseMin = 3 }},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			c.Presets = append([]PresetConfig(nil), base.Presets...)
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := base.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestPresetsYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	data, err := PresetsYAML(cfg.Presets[:1])
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Presets []PresetConfig `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Presets) != 1 || out.Presets[0] != cfg.Presets[0] {
		t.Errorf("round trip mismatch: %+v vs %+v", out.Presets, cfg.Presets[0])
	}
}
