package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/driftfield/config"
)

// State describes the engine lifecycle.
type State int

const (
	StateIdle    State = iota // Enabled but not started yet
	StateRunning              // Speaker initialized
	StateFailed               // Start failed; triggers are no-ops
	StateOff                  // Disabled by config or flag
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "on"
	case StateFailed:
		return "failed"
	default:
		return "off"
	}
}

// Output is the device the engine plays through.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

// Engine plays interaction tones. It starts lazily on the first user gesture
// and degrades to silence if the device cannot be opened.
type Engine struct {
	mu     sync.Mutex
	out    Output
	mixer  *beep.Mixer
	voice  Voice
	buffer time.Duration
	state  State
	played int
}

// NewEngine creates an engine from config. muted forces StateOff.
func NewEngine(cfg config.AudioConfig, muted bool) *Engine {
	return NewEngineWithOutput(cfg, muted, speakerOutput{})
}

// NewEngineWithOutput creates an engine that plays through out.
func NewEngineWithOutput(cfg config.AudioConfig, muted bool, out Output) *Engine {
	e := &Engine{
		out:    out,
		mixer:  &beep.Mixer{},
		buffer: time.Duration(cfg.BufferMs) * time.Millisecond,
		voice: Voice{
			Rate:   beep.SampleRate(cfg.SampleRate),
			Note:   time.Duration(cfg.NoteMs) * time.Millisecond,
			Root:   cfg.RootHz,
			Volume: cfg.Volume,
		},
		state: StateIdle,
	}
	if !cfg.Enabled || muted {
		e.state = StateOff
	}
	return e
}

// Start opens the output device once. Later calls are no-ops.
// A failure leaves the engine permanently silent.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return nil
	}

	if err := e.out.Init(e.voice.Rate, e.voice.Rate.N(e.buffer)); err != nil {
		e.state = StateFailed
		return fmt.Errorf("initializing audio output: %w", err)
	}

	e.out.Play(e.mixer)
	e.state = StateRunning
	slog.Info("audio started", "sample_rate", int(e.voice.Rate))
	return nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Played returns the number of tones queued since start.
func (e *Engine) Played() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.played
}

// PlayModeToggle plays a chord for the new mode.
func (e *Engine) PlayModeToggle(wave bool) {
	e.play(func(v Voice) beep.Streamer { return v.ModeChord(wave) })
}

// PlayPreset plays the note tied to a preset index.
func (e *Engine) PlayPreset(index int) {
	e.play(func(v Voice) beep.Streamer { return v.PresetNote(index) })
}

// PlayShape plays a short blip for the new shape.
func (e *Engine) PlayShape(shape int) {
	e.play(func(v Voice) beep.Streamer { return v.ShapeBlip(shape) })
}

// PlayReseed plays a falling arpeggio.
func (e *Engine) PlayReseed() {
	e.play(func(v Voice) beep.Streamer { return v.ReseedArpeggio() })
}

func (e *Engine) play(build func(Voice) beep.Streamer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}

	s := build(e.voice)
	e.out.Lock()
	e.mixer.Add(s)
	e.out.Unlock()
	e.played++
}

// Close silences any queued tones.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}
	e.out.Lock()
	e.mixer.Clear()
	e.out.Unlock()
	e.state = StateOff
}
