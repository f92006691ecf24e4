// Package detection provides face detection and candidate selection
package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Rect is an axis-aligned face candidate in frame pixels.
// X, Y is the top-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFrom converts a gocv/image rectangle.
func RectFrom(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Image returns the rectangle in image.Rectangle form for drawing.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Center returns the center point using integer division
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area returns the area of the bounding box
func (r Rect) Area() int {
	return r.Width * r.Height
}

// FrameSize is the pixel size of a frame
type FrameSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SizeOf returns the size of a gocv frame.
func SizeOf(m gocv.Mat) FrameSize {
	return FrameSize{Width: m.Cols(), Height: m.Rows()}
}

// Center returns the geometric center of the frame
func (f FrameSize) Center() (x, y int) {
	return f.Width / 2, f.Height / 2
}

// Empty reports whether either dimension is zero or negative.
func (f FrameSize) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in a grayscale frame and returns their boxes.
	// An empty result is not an error.
	Detect(gray gocv.Mat) ([]Rect, error)

	// Close releases resources
	Close() error
}

// Tunable detectors take new parameters without reloading the model.
// ModelPath and Backend in cfg are ignored.
type Tunable interface {
	SetParams(cfg Config)
}

var (
	_ Tunable = (*CascadeDetector)(nil)
	_ Tunable = (*YuNetDetector)(nil)
)

// backendParams lists the runtime parameters each backend honours.
var backendParams = map[string][]string{
	BackendCascade: {"scale_factor", "min_neighbors", "min_width", "min_height", "max_width", "max_height"},
	BackendYuNet:   {"confidence_thresh"},
}

// UsesParam reports whether backend reads the named parameter.
// An empty backend means cascade.
func UsesParam(backend, param string) bool {
	if backend == "" {
		backend = BackendCascade
	}
	for _, p := range backendParams[backend] {
		if p == param {
			return true
		}
	}
	return false
}

// Backend names accepted by New.
const (
	BackendCascade = "cascade"
	BackendYuNet   = "yunet"
)

// Config holds detector configuration. The cascade parameters are
// passed to DetectMultiScale unmodified.
type Config struct {
	Backend   string `yaml:"backend" json:"backend" validate:"oneof=cascade yunet"`
	ModelPath string `yaml:"model_path" json:"model_path" validate:"required"`

	// Cascade
	ScaleFactor  float64 `yaml:"scale_factor" json:"scale_factor" validate:"gt=1"`
	MinNeighbors int     `yaml:"min_neighbors" json:"min_neighbors" validate:"gte=0"`
	MinWidth     int     `yaml:"min_width" json:"min_width" validate:"gte=0"`
	MinHeight    int     `yaml:"min_height" json:"min_height" validate:"gte=0"`
	MaxWidth     int     `yaml:"max_width" json:"max_width" validate:"gte=0"` // 0 = unbounded
	MaxHeight    int     `yaml:"max_height" json:"max_height" validate:"gte=0"`

	// YuNet
	ConfidenceThresh float64 `yaml:"confidence_thresh" json:"confidence_thresh" validate:"gte=0,lte=1"`
	InputWidth       int     `yaml:"input_width" json:"input_width" validate:"gte=0"`
	InputHeight      int     `yaml:"input_height" json:"input_height" validate:"gte=0"`
}

// DefaultConfig returns the cascade defaults used by the tracker
func DefaultConfig() Config {
	return Config{
		Backend:      BackendCascade,
		ModelPath:    "models/haarcascade_frontalface_alt_tree.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 2,
		MinWidth:     100,
		MinHeight:    100,
		MaxWidth:     0,
		MaxHeight:    0,

		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// YuNetConfig returns defaults for the YuNet ONNX backend
func YuNetConfig() Config {
	cfg := DefaultConfig()
	cfg.Backend = BackendYuNet
	cfg.ModelPath = "models/face_detection_yunet.onnx"
	return cfg
}

// New creates the detector named by cfg.Backend.
func New(cfg Config) (Detector, error) {
	switch cfg.Backend {
	case BackendYuNet:
		d, err := NewYuNet(cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendCascade, "":
		d, err := NewCascade(cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
