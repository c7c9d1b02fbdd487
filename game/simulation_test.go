package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/telemetry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	config.MustInit("")
	g := NewGameWithOptions(Options{Seed: 7, Headless: true})
	t.Cleanup(g.Unload)
	return g
}

func eachParticle(g *Game, fn func(pos *components.Position, trail *components.Trail, vel *components.Velocity, m *components.Motion)) {
	query := g.particleFilter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

func TestNewGameSpawnsParticlesInCanvas(t *testing.T) {
	g := newTestGame(t)
	cfg := config.Cfg()

	if g.ParticleCount() != cfg.Field.ParticleCount {
		t.Fatalf("particle count = %d, want %d", g.ParticleCount(), cfg.Field.ParticleCount)
	}
	if g.Mode() != components.ModeWave || g.Shape() != components.ShapeCircle {
		t.Errorf("initial mode/shape = %v/%v, want wave/circle", g.Mode(), g.Shape())
	}
	if g.Preset().Name != cfg.Presets[0].Name {
		t.Errorf("initial preset = %s, want %s", g.Preset().Name, cfg.Presets[0].Name)
	}

	w, h := g.Size()
	n := 0
	eachParticle(g, func(pos *components.Position, trail *components.Trail, _ *components.Velocity, m *components.Motion) {
		n++
		if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
			t.Errorf("particle spawned outside canvas at (%.1f, %.1f)", pos.X, pos.Y)
		}
		if trail.X != pos.X || trail.Y != pos.Y {
			t.Error("trail should start at the spawn position")
		}
		if m.Size <= 0 {
			t.Errorf("non-positive size %v", m.Size)
		}
	})
	if n != g.ParticleCount() {
		t.Errorf("query saw %d particles, want %d", n, g.ParticleCount())
	}
}

func TestSelectPresetRerollsSizes(t *testing.T) {
	g := newTestGame(t)
	f := config.Cfg().Field

	for round := 0; round < 2; round++ {
		if !g.SelectPreset(2) {
			t.Fatal("SelectPreset(2) rejected")
		}
		want := config.Cfg().Presets[2]
		if g.Preset() != components.PresetFromConfig(want) {
			t.Fatalf("round %d: active preset %+v, want template %+v", round, g.Preset(), want)
		}

		lo := float32(want.ParticleSize*f.SizeJitterMin) - 1e-4
		hi := float32(want.ParticleSize*f.SizeJitterMax) + 1e-4
		eachParticle(g, func(_ *components.Position, _ *components.Trail, _ *components.Velocity, m *components.Motion) {
			if m.Size < lo || m.Size > hi {
				t.Errorf("size %v outside [%v, %v]", m.Size, lo, hi)
			}
		})
	}
	if g.PresetIndex() != 2 {
		t.Errorf("preset index = %d, want 2", g.PresetIndex())
	}
}

func TestSelectPresetOutOfRange(t *testing.T) {
	g := newTestGame(t)
	before := g.Preset()

	for _, i := range []int{-1, len(config.Cfg().Presets), 99} {
		if g.SelectPreset(i) {
			t.Errorf("SelectPreset(%d) accepted", i)
		}
	}
	if g.Preset() != before || g.PresetIndex() != 0 {
		t.Error("rejected selection changed the active preset")
	}
}

func TestActivePresetDoesNotAliasTemplate(t *testing.T) {
	g := newTestGame(t)
	g.SelectPreset(1)
	g.preset.Speed = 42

	tpl, _ := g.presets.Template(1)
	if tpl.Speed == 42 {
		t.Fatal("mutating the active preset changed its template")
	}
	g.SelectPreset(1)
	if g.Preset().Speed != tpl.Speed {
		t.Errorf("reselect speed = %v, want %v", g.Preset().Speed, tpl.Speed)
	}
}

func TestCycleShapeWraps(t *testing.T) {
	g := newTestGame(t)
	want := []components.ShapeKind{
		components.ShapeSquare,
		components.ShapeTriangle,
		components.ShapeStar,
		components.ShapeCircle,
	}
	for i, w := range want {
		if got := g.CycleShape(); got != w {
			t.Errorf("cycle %d = %v, want %v", i+1, got, w)
		}
	}
}

func TestToggleModeTwiceRestores(t *testing.T) {
	g := newTestGame(t)
	if g.ToggleMode() != components.ModeParticle {
		t.Fatal("first toggle should select particle mode")
	}
	if g.ToggleMode() != components.ModeWave {
		t.Fatal("second toggle should restore wave mode")
	}
}

func TestReseedScattersWithFixedSpeed(t *testing.T) {
	g := newTestGame(t)
	speed := config.Cfg().Field.ReseedSpeed
	w, h := g.Size()

	g.Reseed(1234)

	if g.Seed() != 1234 || g.noise.Seed() != 1234 {
		t.Errorf("seed = %d/%d, want 1234", g.Seed(), g.noise.Seed())
	}
	eachParticle(g, func(pos *components.Position, trail *components.Trail, vel *components.Velocity, _ *components.Motion) {
		if got := speedOf(vel); math.Abs(got-speed) > 1e-4 {
			t.Errorf("speed after reseed = %v, want %v", got, speed)
		}
		if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
			t.Errorf("reseeded particle outside canvas at (%.1f, %.1f)", pos.X, pos.Y)
		}
		if trail.X != pos.X || trail.Y != pos.Y {
			t.Error("reseed should reset the trail")
		}
	})
}

func TestReseedIsDeterministic(t *testing.T) {
	a := newTestGame(t)
	b := newTestGame(t)
	a.Reseed(99)
	b.Reseed(99)

	var pa, pb []components.Position
	eachParticle(a, func(pos *components.Position, _ *components.Trail, _ *components.Velocity, _ *components.Motion) {
		pa = append(pa, *pos)
	})
	eachParticle(b, func(pos *components.Position, _ *components.Trail, _ *components.Velocity, _ *components.Motion) {
		pb = append(pb, *pos)
	})
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs after identical reseeds: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestOnClickPushesOnlyNearbyParticles(t *testing.T) {
	g := newTestGame(t)
	radius := float32(config.Cfg().Field.ClickRadius)
	cx, cy := float32(640), float32(400)

	type snapshot struct {
		pos components.Position
		vel components.Velocity
	}
	var before []snapshot
	eachParticle(g, func(pos *components.Position, _ *components.Trail, vel *components.Velocity, _ *components.Motion) {
		before = append(before, snapshot{*pos, *vel})
	})

	n := g.OnClick(cx, cy)
	if g.Shape() != components.ShapeSquare {
		t.Errorf("click should cycle the shape, got %v", g.Shape())
	}

	i, pushed := 0, 0
	eachParticle(g, func(pos *components.Position, _ *components.Trail, vel *components.Velocity, _ *components.Motion) {
		b := before[i]
		i++
		d := float32(math.Hypot(float64(b.pos.X-cx), float64(b.pos.Y-cy)))
		changed := *vel != b.vel
		if changed {
			pushed++
		}
		if d > radius && changed {
			t.Errorf("particle at distance %.1f received an impulse", d)
		}
		if *pos != b.pos {
			t.Error("click should not move particles directly")
		}
	})
	if pushed != n {
		t.Errorf("OnClick reported %d impulses, observed %d", n, pushed)
	}
	if n == 0 {
		t.Error("expected some particles near the canvas center")
	}
}

func TestStepAdvancesTimeByPresetSpeed(t *testing.T) {
	g := newTestGame(t)
	g.SelectPreset(1)
	rate := config.Cfg().Motion.TimeRate

	g.Step(1.0/60, components.Pointer{})
	g.Step(1.0/60, components.Pointer{})

	want := 2 * rate * g.Preset().Speed
	if math.Abs(g.Time()-want) > 1e-12 {
		t.Errorf("time = %v, want %v", g.Time(), want)
	}
	if g.Frame() != 2 {
		t.Errorf("frame = %d, want 2", g.Frame())
	}
	if math.Abs(g.Elapsed()-2.0/60) > 1e-12 {
		t.Errorf("elapsed = %v, want %v", g.Elapsed(), 2.0/60)
	}
}

func TestStepKeepsParticlesWithinMargin(t *testing.T) {
	g := newTestGame(t)
	margin := float32(config.Cfg().Field.Margin)
	w, h := g.Size()

	for i := 0; i < 300; i++ {
		if i == 150 {
			g.ToggleMode()
		}
		p := components.Pointer{X: w / 2, Y: h / 2, Pressed: (i/20)%2 == 1}
		g.Step(1.0/60, p)
	}

	eachParticle(g, func(pos *components.Position, _ *components.Trail, _ *components.Velocity, _ *components.Motion) {
		if pos.X < -margin || pos.X > w+margin || pos.Y < -margin || pos.Y > h+margin {
			t.Errorf("particle escaped to (%.1f, %.1f)", pos.X, pos.Y)
		}
	})
}

func TestResizeIgnoresEmptyExtent(t *testing.T) {
	g := newTestGame(t)
	g.Resize(0, 500)
	if w, h := g.Size(); w != 1280 || h != 800 {
		t.Errorf("size = %vx%v after empty resize, want 1280x800", w, h)
	}
	g.Resize(640, 480)
	if w, h := g.Size(); w != 640 || h != 480 {
		t.Errorf("size = %vx%v, want 640x480", w, h)
	}
}

func TestHeadlessStatsWindow(t *testing.T) {
	config.MustInit("")
	g := NewGameWithOptions(Options{Seed: 3, Headless: true, StatsWindowSec: 0.5})
	defer g.Unload()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	g.OnClick(640, 400)
	g.ToggleMode()
	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	first := windows[0]
	if first.Clicks != 1 || first.ModeToggles != 1 || first.ShapeChanges != 1 {
		t.Errorf("first window counters %+v", first)
	}
	if first.Particles != g.ParticleCount() || first.Mode != "particle" {
		t.Errorf("first window particles=%d mode=%s", first.Particles, first.Mode)
	}
	if windows[1].Clicks != 0 {
		t.Error("second window should start with fresh counters")
	}
}
