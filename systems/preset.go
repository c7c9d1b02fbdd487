package systems

import (
	"math/rand"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
)

// PresetBook holds the immutable preset templates defined at startup.
type PresetBook struct {
	templates []components.Preset
}

// NewPresetBook builds the template list from config entries.
func NewPresetBook(cfgs []config.PresetConfig) *PresetBook {
	b := &PresetBook{templates: make([]components.Preset, len(cfgs))}
	for i, c := range cfgs {
		b.templates[i] = components.PresetFromConfig(c)
	}
	return b
}

// Len returns the number of templates.
func (b *PresetBook) Len() int {
	return len(b.templates)
}

// Template returns a copy of template i. ok is false for out-of-range indices.
func (b *PresetBook) Template(i int) (p components.Preset, ok bool) {
	if i < 0 || i >= len(b.templates) {
		return components.Preset{}, false
	}
	return b.templates[i], true
}

// Names returns template names in index order.
func (b *PresetBook) Names() []string {
	names := make([]string, len(b.templates))
	for i, t := range b.templates {
		names[i] = t.Name
	}
	return names
}

// Configs returns the templates in config form.
func (b *PresetBook) Configs() []config.PresetConfig {
	out := make([]config.PresetConfig, len(b.templates))
	for i, t := range b.templates {
		out[i] = t.Config()
	}
	return out
}

// JitteredSize returns base * U(minF, maxF).
func JitteredSize(base, minF, maxF float64, rng *rand.Rand) float32 {
	return float32(base * (minF + rng.Float64()*(maxF-minF)))
}
