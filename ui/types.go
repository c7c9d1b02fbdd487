// Package ui draws the on-screen HUD and key legend for the sketch.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	KeyColor       rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 16, A: 190},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 200},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		KeyColor:       rl.Color{R: 140, G: 200, B: 255, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillHigh:    rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     72,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// KeyBinding is one entry of the key legend.
type KeyBinding struct {
	Key    string
	Action string
}

// DefaultLegend returns the sketch's key bindings in display order.
func DefaultLegend() []KeyBinding {
	return []KeyBinding{
		{"Space", "wave / particle"},
		{"1-9", "preset"},
		{"Click", "burst + next shape"},
		{"Drag", "pull particles"},
		{"R", "reseed"},
		{"S", "save frame"},
		{"H", "hide HUD"},
		{"P", "perf panel"},
		{"F11", "fullscreen"},
	}
}
