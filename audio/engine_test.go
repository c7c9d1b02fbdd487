package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/driftfield/config"
)

type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeOutput) Lock()                   {}
func (f *fakeOutput) Unlock()                 {}

func testAudioConfig() config.AudioConfig {
	return config.AudioConfig{
		Enabled:    true,
		SampleRate: 44100,
		BufferMs:   100,
		Volume:     0.35,
		NoteMs:     420,
		RootHz:     220,
	}
}

func TestEngineLazyStart(t *testing.T) {
	out := &fakeOutput{}
	e := NewEngineWithOutput(testAudioConfig(), false, out)

	// Triggers before the first gesture do nothing
	e.PlayReseed()
	if e.Played() != 0 {
		t.Fatalf("played %d tones before start", e.Played())
	}
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle", e.State())
	}

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if out.inits != 1 {
		t.Errorf("output initialized %d times, want 1", out.inits)
	}
	if len(out.played) != 1 {
		t.Errorf("mixer played %d times, want 1", len(out.played))
	}

	e.PlayModeToggle(true)
	e.PlayPreset(2)
	e.PlayShape(1)
	e.PlayReseed()
	if e.Played() != 4 {
		t.Errorf("played = %d, want 4", e.Played())
	}

	e.Close()
	e.PlayReseed()
	if e.Played() != 4 {
		t.Error("closed engine should not queue tones")
	}
}

func TestEngineStartFailureIsSilent(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	e := NewEngineWithOutput(testAudioConfig(), false, out)

	if err := e.Start(); err == nil {
		t.Fatal("expected start error")
	}
	if e.State() != StateFailed {
		t.Errorf("state = %v, want failed", e.State())
	}

	// Later starts and triggers are no-ops
	if err := e.Start(); err != nil {
		t.Errorf("second start returned %v", err)
	}
	e.PlayPreset(0)
	if out.inits != 1 || e.Played() != 0 {
		t.Errorf("inits=%d played=%d, want 1 and 0", out.inits, e.Played())
	}
}

func TestEngineMutedOrDisabled(t *testing.T) {
	cfg := testAudioConfig()
	out := &fakeOutput{}

	muted := NewEngineWithOutput(cfg, true, out)
	cfg.Enabled = false
	disabled := NewEngineWithOutput(cfg, false, out)

	for _, e := range []*Engine{muted, disabled} {
		if e.State() != StateOff {
			t.Errorf("state = %v, want off", e.State())
		}
		if err := e.Start(); err != nil {
			t.Error(err)
		}
		e.PlayShape(0)
	}
	if out.inits != 0 {
		t.Errorf("output initialized %d times", out.inits)
	}
}

func TestScaleFreq(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 220},
		{3, 220 * math.Pow(2, 7.0/12)},
		{5, 440},
		{10, 880},
		{-5, 110},
		{-1, 110 * math.Pow(2, 9.0/12)},
	}
	for _, tt := range tests {
		if got := ScaleFreq(220, tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScaleFreq(220, %d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func drain(t *testing.T, s beep.Streamer) (samples int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if a := math.Abs(smp[0]); a > peak {
				peak = a
			}
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
	t.Fatal("streamer never finished")
	return
}

func TestVoiceTonesFinish(t *testing.T) {
	v := Voice{Rate: 44100, Note: 420 * time.Millisecond, Root: 220, Volume: 0.35}

	tests := []struct {
		name string
		s    beep.Streamer
		want int
	}{
		{"preset note", v.PresetNote(1), v.Rate.N(v.Note)},
		{"mode chord", v.ModeChord(true), v.Rate.N(v.Note * 3 / 2)},
		{"shape blip", v.ShapeBlip(2), v.Rate.N(v.Note / 4)},
		{"reseed arpeggio", v.ReseedArpeggio(), 4 * v.Rate.N(v.Note/3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.s)
			// Mixers may pad the final buffer with silence
			if n < tt.want || n >= tt.want+512 {
				t.Errorf("streamed %d samples, want %d", n, tt.want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak %v outside (0, 1]", peak)
			}
		})
	}
}

func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, 44100)
	buf := make([][2]float64, 64)
	n, ok := osc.Stream(buf)
	if !ok || n != 64 {
		t.Fatalf("Stream = (%d, %v)", n, ok)
	}
	for i, s := range buf[:n] {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %v, want +-1", i, s[0])
		}
	}
}
