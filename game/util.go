package game

import rl "github.com/gen2brain/raylib-go/raylib"

// frameTime returns the last frame's duration in seconds.
func frameTime() float64 {
	return float64(rl.GetFrameTime())
}
