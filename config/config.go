// Package config provides configuration loading and access for the sketch.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Motion    MotionConfig    `yaml:"motion"`
	Noise     NoiseConfig     `yaml:"noise"`
	Render    RenderConfig    `yaml:"render"`
	Grid      GridConfig      `yaml:"grid"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Export    ExportConfig    `yaml:"export"`
	Presets   []PresetConfig  `yaml:"presets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds particle population and interaction geometry.
type FieldConfig struct {
	ParticleCount   int     `yaml:"particle_count"`
	SpawnCols       int     `yaml:"spawn_cols"`       // Virtual grid columns used to bias initial positions
	SpawnRows       int     `yaml:"spawn_rows"`       // Virtual grid rows used to bias initial positions
	SpawnSpread     float64 `yaml:"spawn_spread"`     // Stddev of spawn offset as a fraction of cell size
	Margin          float64 `yaml:"margin"`           // Wrap margin outside the canvas
	InfluenceFactor float64 `yaml:"influence_factor"` // Pointer influence reaches zero at this fraction of width
	ClickRadius     float64 `yaml:"click_radius"`     // Particles within this distance receive a click impulse
	ImpulseMin      float64 `yaml:"impulse_min"`
	ImpulseMax      float64 `yaml:"impulse_max"`
	ImpulseSpread   float64 `yaml:"impulse_spread"` // Max angular deviation (radians) from the outward direction
	SizeJitterMin   float64 `yaml:"size_jitter_min"`
	SizeJitterMax   float64 `yaml:"size_jitter_max"`
	ReseedSpeed     float64 `yaml:"reseed_speed"` // Velocity magnitude given to particles on reseed
}

// MotionConfig holds per-frame motion policy parameters.
type MotionConfig struct {
	WaveBlend       float64 `yaml:"wave_blend"`
	ParticleBlend   float64 `yaml:"particle_blend"`
	WaveSpeed       float64 `yaml:"wave_speed"`       // Flow multiplier in wave mode (times preset speed)
	ParticleSpeed   float64 `yaml:"particle_speed"`   // Flow multiplier in particle mode (times preset speed)
	Oscillation     float64 `yaml:"oscillation"`      // Wave-mode oscillation magnitude
	OscillationRate float64 `yaml:"oscillation_rate"` // Multiplier on t inside the oscillation angle
	Jitter          float64 `yaml:"jitter"`           // Particle-mode random jitter magnitude
	FlowTurns       float64 `yaml:"flow_turns"`       // Noise value is scaled by 2*pi*flow_turns
	DragGain        float64 `yaml:"drag_gain"`        // Pull toward pointer while dragging (times influence)
	DragSpeedCap    float64 `yaml:"drag_speed_cap"`   // 0 disables the cap
	PhaseRate       float64 `yaml:"phase_rate"`       // Phase advance per frame (times preset speed)
	LifeDecay       float64 `yaml:"life_decay"`       // Life decrement per frame
	TimeRate        float64 `yaml:"time_rate"`        // Time advance per frame (times preset speed)
}

// NoiseConfig holds coherent noise parameters.
type NoiseConfig struct {
	Backend  string  `yaml:"backend"` // "simplex" or "perlin"
	Octaves  int     `yaml:"octaves"`
	Falloff  float64 `yaml:"falloff"`
	HueScale float64 `yaml:"hue_scale"` // Spatial scale of the hue offset noise
	HueRange float64 `yaml:"hue_range"` // Max hue offset in degrees
}

// RenderConfig holds particle drawing parameters.
type RenderConfig struct {
	AlphaNear      float64 `yaml:"alpha_near"`
	AlphaFar       float64 `yaml:"alpha_far"`
	AlphaFloor     float64 `yaml:"alpha_floor"`
	StrokeFactor   float64 `yaml:"stroke_factor"`   // Wave stroke width = size * this
	ShapeFactor    float64 `yaml:"shape_factor"`    // Shape radius = size * this
	TrailJitter    float64 `yaml:"trail_jitter"`    // Max offset of the outer curve control points
	PolyWobble     float64 `yaml:"poly_wobble"`     // Square/star radius perturbation
	TriangleWobble float64 `yaml:"triangle_wobble"` // Triangle radius perturbation
	StarInner      float64 `yaml:"star_inner"`      // Star inner radius as a fraction of outer
	BackdropBright float64 `yaml:"backdrop_bright"` // Backdrop brightness (0-100)
}

// GridConfig holds decorative grid overlay parameters.
type GridConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	Margin     float64 `yaml:"margin"`
	NoiseScale float64 `yaml:"noise_scale"`
	ArcRadius  float64 `yaml:"arc_radius"`
	Alpha      float64 `yaml:"alpha"`
}

// AudioConfig holds optional audio feedback parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	BufferMs   int     `yaml:"buffer_ms"`
	Volume     float64 `yaml:"volume"` // 0.0-1.0
	NoteMs     int     `yaml:"note_ms"`
	RootHz     float64 `yaml:"root_hz"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	PerfFrames  int     `yaml:"perf_frames"`  // Frames averaged by the frame timer
}

// ExportConfig holds frame export parameters.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// PresetConfig defines a named visual/motion parameter bundle.
type PresetConfig struct {
	Name         string  `yaml:"name"`
	Hue          float64 `yaml:"hue"`
	Saturation   float64 `yaml:"saturation"`
	Brightness   float64 `yaml:"brightness"`
	Speed        float64 `yaml:"speed"`
	NoiseScale   float64 `yaml:"noise_scale"`
	ParticleSize float64 `yaml:"particle_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32        // Screen.Width as float32
	ScreenH32   float32        // Screen.Height as float32
	FrameDT     float64        // Seconds per frame at the target FPS
	PresetIndex map[string]int // name -> index for preset lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Merge unmarshals data over cfg. Only fields present in data are overwritten,
// except presets: a non-empty preset list replaces the defaults wholesale.
func Merge(cfg *Config, data []byte) error {
	defaults := cfg.Presets
	cfg.Presets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Presets = defaults
		return fmt.Errorf("parsing config file: %w", err)
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = defaults
	}
	return nil
}

// ErrNoPresets is returned when the configuration defines no presets.
var ErrNoPresets = errors.New("at least one preset is required")

// Validate checks value ranges the sketch relies on.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.ParticleCount <= 0 {
		return fmt.Errorf("field.particle_count must be positive, got %d", c.Field.ParticleCount)
	}
	if c.Field.ImpulseMin > c.Field.ImpulseMax {
		return fmt.Errorf("field.impulse_min %.2f exceeds impulse_max %.2f", c.Field.ImpulseMin, c.Field.ImpulseMax)
	}
	if c.Field.SizeJitterMin <= 0 || c.Field.SizeJitterMin > c.Field.SizeJitterMax {
		return fmt.Errorf("field size jitter range [%.2f, %.2f] is invalid", c.Field.SizeJitterMin, c.Field.SizeJitterMax)
	}
	switch c.Noise.Backend {
	case "simplex", "perlin":
	default:
		return fmt.Errorf("noise.backend must be simplex or perlin, got %q", c.Noise.Backend)
	}
	if len(c.Presets) == 0 {
		return ErrNoPresets
	}
	for i, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %d (%s): %w", i, p.Name, err)
		}
	}
	return nil
}

// Validate checks a single preset's ranges.
func (p PresetConfig) Validate() error {
	switch {
	case p.Hue < 0 || p.Hue >= 360:
		return fmt.Errorf("hue %.1f outside [0,360)", p.Hue)
	case p.Saturation < 0 || p.Saturation > 100:
		return fmt.Errorf("saturation %.1f outside [0,100]", p.Saturation)
	case p.Brightness < 0 || p.Brightness > 100:
		return fmt.Errorf("brightness %.1f outside [0,100]", p.Brightness)
	case p.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %.3f", p.Speed)
	case p.NoiseScale <= 0:
		return fmt.Errorf("noise_scale must be positive, got %.4f", p.NoiseScale)
	case p.ParticleSize <= 0:
		return fmt.Errorf("particle_size must be positive, got %.2f", p.ParticleSize)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameDT = 1.0 / float64(fps)

	if c.Telemetry.PerfFrames <= 0 {
		c.Telemetry.PerfFrames = fps
	}
	if c.Noise.Octaves <= 0 {
		c.Noise.Octaves = 1
	}

	c.Derived.PresetIndex = make(map[string]int, len(c.Presets))
	for i, p := range c.Presets {
		c.Derived.PresetIndex[p.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// PresetsYAML marshals a preset list under a top-level presets key.
func PresetsYAML(presets []PresetConfig) ([]byte, error) {
	data, err := yaml.Marshal(struct {
		Presets []PresetConfig `yaml:"presets"`
	}{presets})
	if err != nil {
		return nil, fmt.Errorf("marshaling presets: %w", err)
	}
	return data, nil
}
