package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FrameFileName builds <dir>/<prefix>-<preset>-<YYYYMMDD-HHMMSS>-<frame>.png.
func FrameFileName(dir, prefix, preset string, at time.Time, frame int64) string {
	name := fmt.Sprintf("%s-%s-%s-%d.png", prefix, sanitizeName(preset), at.Format("20060102-150405"), frame)
	return filepath.Join(dir, name)
}

// PrepareFrameExport ensures dir exists and returns the file path for a frame.
func PrepareFrameExport(dir, prefix, preset string, at time.Time, frame int64) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return FrameFileName(dir, prefix, preset, at, frame), nil
}

// sanitizeName lowercases s and replaces anything outside [a-z0-9_] with '-'.
func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "preset"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
