// Package debug provides global debug logging flags
package debug

import "github.com/teslashibe/facecenter/internal/log"

// Enabled controls whether debug logging is active
var Enabled bool

// Frames controls per-frame logs (detections, selections, displacement).
// Very verbose at camera frame rates; set with --debug-frames.
var Frames bool

// Log logs a message only if debug mode is enabled
func Log(msg string, args ...any) {
	if Enabled {
		log.Debug(msg, args...)
	}
}

// Frame logs a per-frame message only if frame debugging is enabled
func Frame(msg string, args ...any) {
	if Frames {
		log.Debug(msg, args...)
	}
}
