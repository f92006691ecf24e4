package camera

import "errors"

var (
	// ErrOpenFailed is returned when the capture device cannot be opened.
	ErrOpenFailed = errors.New("camera: cannot open device")

	// ErrReadFailed is returned when a frame cannot be read.
	ErrReadFailed = errors.New("camera: cannot read frame")

	// ErrInvalidConfig is returned when a config fails validation.
	ErrInvalidConfig = errors.New("camera: invalid config")

	// ErrApplyFailed is returned when OnConfigChange rejects a config.
	ErrApplyFailed = errors.New("camera: failed to apply config")
)
