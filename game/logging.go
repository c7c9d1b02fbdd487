package game

import (
	"log/slog"

	"github.com/pthm-cable/driftfield/components"
)

// logPresetChange records a preset switch.
func logPresetChange(frame int64, index int, p components.Preset) {
	slog.Info("preset selected",
		"frame", frame,
		"index", index,
		"name", p.Name,
		"hue", p.Hue,
		"speed", p.Speed,
	)
}

// logFrameSaved records a frame export.
func logFrameSaved(frame int64, path string) {
	slog.Info("frame saved", "frame", frame, "path", path)
}
