// Package audio synthesizes short interaction tones with beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform selects an oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
)

// oscillator generates a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Waveform
	rate     beep.SampleRate
}

// NewOscillator creates a tone of the given frequency and duration.
func NewOscillator(freq float64, d time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveTriangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * o.phase)
		}

		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and exponential release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	length   int
	decay    float64 // Release time constant in samples
}

// NewEnvelope shapes s with a short attack and a release that fades to near zero by d.
func NewEnvelope(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	length := rate.N(d)
	att := rate.N(attack)
	return &envelope{
		streamer: s,
		attack:   att,
		length:   length,
		decay:    float64(length-att) / 5,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.length {
			return i, i > 0
		}

		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		} else if e.decay > 0 {
			gain = math.Exp(-float64(e.position-e.attack) / e.decay)
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pentatonic major scale steps in semitones.
var pentatonic = []int{0, 2, 4, 7, 9}

// ScaleFreq returns the frequency of scale degree n above root.
func ScaleFreq(root float64, n int) float64 {
	octave := n / len(pentatonic)
	step := n % len(pentatonic)
	if step < 0 {
		step += len(pentatonic)
		octave--
	}
	semis := octave*12 + pentatonic[step]
	return root * math.Pow(2, float64(semis)/12)
}

// Voice is the timing and level shared by every tone builder.
type Voice struct {
	Rate   beep.SampleRate
	Note   time.Duration
	Root   float64
	Volume float64
}

func (v Voice) tone(freq float64, d time.Duration, wave Waveform) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, v.Rate), d, 8*time.Millisecond, v.Rate)
}

// PresetNote is a single note tied to the preset index.
func (v Voice) PresetNote(index int) beep.Streamer {
	return withVolume(v.tone(ScaleFreq(v.Root, index+5), v.Note, WaveSine), v.Volume)
}

// ModeChord is a three-note chord: bright for wave mode, darker for particle mode.
func (v Voice) ModeChord(wave bool) beep.Streamer {
	degrees := []int{0, 2, 3}
	if !wave {
		degrees = []int{-5, -3, 0}
	}
	parts := make([]beep.Streamer, len(degrees))
	for i, d := range degrees {
		parts[i] = withVolume(v.tone(ScaleFreq(v.Root, d+5), v.Note*3/2, WaveTriangle), 1.0/float64(len(degrees)))
	}
	return withVolume(beep.Mix(parts...), v.Volume)
}

// ShapeBlip is a short high blip whose pitch follows the shape index.
func (v Voice) ShapeBlip(shape int) beep.Streamer {
	d := v.Note / 4
	return withVolume(v.tone(ScaleFreq(v.Root, 10+shape), d, WaveSquare), v.Volume*0.4)
}

// ReseedArpeggio is a falling run of four notes.
func (v Voice) ReseedArpeggio() beep.Streamer {
	steps := []int{12, 9, 6, 3}
	d := v.Note / 3
	parts := make([]beep.Streamer, len(steps))
	for i, s := range steps {
		parts[i] = v.tone(ScaleFreq(v.Root, s), d, WaveSine)
	}
	return withVolume(beep.Seq(parts...), v.Volume)
}
