// Package game wires the particle field, its renderers and input into a frame loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftfield/audio"
	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/systems"
	"github.com/pthm-cable/driftfield/telemetry"
	"github.com/pthm-cable/driftfield/ui"
)

// Options configures game behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string // CSV logs and config snapshot; empty disables
	ExportDir      string // Frame export directory; empty uses config
	Headless       bool
	Muted          bool
}

// Game holds the complete sketch state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	particleMapper *ecs.Map4[
		components.Position,
		components.Trail,
		components.Velocity,
		components.Motion,
	]
	particleFilter *ecs.Filter4[
		components.Position,
		components.Trail,
		components.Velocity,
		components.Motion,
	]
	particleCount int

	// Field state
	noise       *systems.NoiseField
	presets     *systems.PresetBook
	preset      components.Preset
	presetIndex int
	mode        components.Mode
	shape       components.ShapeKind
	time        float64
	elapsed     float64 // Wall-clock seconds accumulated from Step
	frame       int64
	seed        int64
	pointer     components.Pointer

	width, height float32

	flowParams    systems.FlowParams
	impulseParams systems.ImpulseParams

	// Rendering (nil when headless)
	background *renderer.BackgroundRenderer
	grid       *renderer.GridRenderer
	particles  *renderer.ParticleRenderer
	sprites    []renderer.Sprite
	scene      renderer.Scene

	// UI
	hud       *ui.HUD
	legend    *ui.LegendPanel
	perfPanel *ui.PerfPanel
	showPerf  bool
	status    string
	statusAt  int64

	saveRequested bool
	exportDir     string

	headless bool

	audio *audio.Engine

	// Telemetry
	collector     *telemetry.Collector
	frameTimer    *telemetry.FrameTimer
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game instance from the global config.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	world := ecs.NewWorld()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = cfg.Export.Dir
	}

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),

		particleMapper: ecs.NewMap4[
			components.Position,
			components.Trail,
			components.Velocity,
			components.Motion,
		](world),
		particleFilter: ecs.NewFilter4[
			components.Position,
			components.Trail,
			components.Velocity,
			components.Motion,
		](world),

		noise:   systems.NewNoiseField(cfg.Noise.Backend, opts.Seed, cfg.Noise.Octaves, cfg.Noise.Falloff),
		presets: systems.NewPresetBook(cfg.Presets),
		mode:    components.ModeWave,
		shape:   components.ShapeCircle,
		seed:    opts.Seed,
		width:   cfg.Derived.ScreenW32,
		height:  cfg.Derived.ScreenH32,

		flowParams: systems.FlowParamsFromConfig(cfg),
		impulseParams: systems.ImpulseParams{
			Radius: float32(cfg.Field.ClickRadius),
			Min:    cfg.Field.ImpulseMin,
			Max:    cfg.Field.ImpulseMax,
			Spread: cfg.Field.ImpulseSpread,
		},

		exportDir: exportDir,
		headless:  opts.Headless,

		audio: audio.NewEngine(cfg.Audio, opts.Muted || opts.Headless),

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.FrameDT),
		frameTimer:    telemetry.NewFrameTimer(cfg.Telemetry.PerfFrames),
		logStats:      opts.LogStats,
	}

	g.preset, _ = g.presets.Template(0)
	g.pointer = components.Pointer{X: g.width / 2, Y: g.height / 2}

	if !opts.Headless {
		g.background = renderer.NewBackgroundRenderer(cfg.Render.BackdropBright)
		if cfg.Grid.Enabled {
			g.grid = renderer.NewGridRenderer(cfg)
		}
		// Renderer jitter gets its own stream so drawing never perturbs the simulation.
		g.particles = renderer.NewParticleRenderer(renderer.ParticleStyleFromConfig(cfg), opts.Seed^0x5eed)
		g.hud = ui.NewHUD()
		g.legend = ui.NewLegendPanel(ui.DefaultLegend())
		g.perfPanel = ui.NewPerfPanel(10, int32(g.height)-220)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.spawnParticles(cfg.Field.ParticleCount)

	slog.Info("field created",
		"seed", opts.Seed,
		"particles", g.particleCount,
		"preset", g.preset.Name,
		"noise", g.noise.Backend(),
		"headless", opts.Headless,
	)

	return g
}

// SetStatsCallback registers a function called on every stats window flush.
func (g *Game) SetStatsCallback(cb func(telemetry.WindowStats)) {
	g.statsCallback = cb
}

// Frame returns the number of frames stepped so far.
func (g *Game) Frame() int64 {
	return g.frame
}

// Seed returns the current field seed.
func (g *Game) Seed() int64 {
	return g.seed
}

// Unload releases audio and flushes output files.
func (g *Game) Unload() {
	g.audio.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
