package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/components"
)

// presetKeys maps number keys to preset indices.
var presetKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// handleInput processes keyboard and mouse input and returns this frame's pointer state.
func (g *Game) handleInput() components.Pointer {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.ToggleMode()
	}

	for i, key := range presetKeys {
		if rl.IsKeyPressed(key) {
			g.SelectPreset(i)
		}
	}

	// raylib reports letter keys case-insensitively, so s and S both land here.
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveRequested = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reseed(time.Now().UnixNano())
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.legend.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	mouse := rl.GetMousePosition()
	pointer := components.Pointer{
		X:       mouse.X,
		Y:       mouse.Y,
		Pressed: rl.IsMouseButtonDown(rl.MouseButtonLeft),
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.startAudio()
		g.OnClick(pointer.X, pointer.Y)
	}

	return pointer
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() && !rl.IsWindowFullscreen() {
		return
	}
	g.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}
