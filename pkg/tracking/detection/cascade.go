package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/facecenter/pkg/debug"
	"gocv.io/x/gocv"
)

// cascadeScaleImage is OpenCV's CASCADE_SCALE_IMAGE flag.
const cascadeScaleImage = 2

// CascadeDetector uses an OpenCV Haar/LBP cascade classifier
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	config     Config
	mu         sync.Mutex
}

// NewCascade loads the cascade XML named by cfg.ModelPath.
func NewCascade(cfg Config) (*CascadeDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cfg.ModelPath) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, cfg.ModelPath)
	}

	return &CascadeDetector{
		classifier: classifier,
		config:     cfg,
	}, nil
}

// Detect runs multi-scale detection on a grayscale frame
func (d *CascadeDetector) Detect(gray gocv.Mat) ([]Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gray.Empty() {
		return nil, ErrEmptyFrame
	}

	found := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.config.ScaleFactor,
		d.config.MinNeighbors,
		cascadeScaleImage,
		image.Pt(d.config.MinWidth, d.config.MinHeight),
		image.Pt(d.config.MaxWidth, d.config.MaxHeight),
	)

	rects := make([]Rect, 0, len(found))
	for _, r := range found {
		rects = append(rects, RectFrom(r))
	}

	if len(rects) > 0 {
		debug.Frame("cascade found faces", "count", len(rects))
	}

	return rects, nil
}

// SetParams swaps the detection parameters without reloading the model.
// ModelPath and Backend changes are ignored.
func (d *CascadeDetector) SetParams(cfg Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cfg.ModelPath = d.config.ModelPath
	cfg.Backend = d.config.Backend
	d.config = cfg
}

// Close releases the classifier
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
