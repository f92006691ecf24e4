package detection

import "errors"

var (
	// ErrEmptyInput is returned when selecting from zero candidates.
	ErrEmptyInput = errors.New("detection: no candidates to select from")

	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("detection: model file not found")

	// ErrModelLoad is returned when the model file cannot be loaded.
	ErrModelLoad = errors.New("detection: failed to load model")

	// ErrUnknownBackend is returned for an unsupported backend name.
	ErrUnknownBackend = errors.New("detection: unknown backend")

	// ErrEmptyFrame is returned when Detect is given an empty Mat.
	ErrEmptyFrame = errors.New("detection: empty frame")
)
