package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/facecenter/pkg/debug"
	"gocv.io/x/gocv"
)

// YuNetDetector uses OpenCV's FaceDetectorYN for face detection
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a new YuNet face detector using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg Config) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	// Initial size is replaced per frame
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the frame. YuNet expects three channels, so a
// grayscale input is expanded first.
func (d *YuNetDetector) Detect(gray gocv.Mat) ([]Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gray.Empty() {
		return nil, ErrEmptyFrame
	}

	img := gocv.NewMat()
	defer img.Close()
	if gray.Channels() == 1 {
		if err := gocv.CvtColor(gray, &img, gocv.ColorGrayToBGR); err != nil {
			return nil, fmt.Errorf("expand grayscale: %w", err)
		}
	} else {
		gray.CopyTo(&img)
	}

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	// Output rows: 0-3 box in pixels, 4-13 landmarks, 14 score
	rects := make([]Rect, 0, faces.Rows())
	for r := 0; r < faces.Rows(); r++ {
		w := int(faces.GetFloatAt(r, 2))
		h := int(faces.GetFloatAt(r, 3))
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		rects = append(rects, Rect{
			X:      int(faces.GetFloatAt(r, 0)),
			Y:      int(faces.GetFloatAt(r, 1)),
			Width:  w,
			Height: h,
		})
	}

	if len(rects) > 0 {
		debug.Frame("yunet found faces", "count", len(rects))
	}

	return rects, nil
}

// SetParams updates the score threshold. The model and input size are
// kept; the input size follows each frame anyway.
func (d *YuNetDetector) SetParams(cfg Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config.ConfidenceThresh = cfg.ConfidenceThresh
	d.detector.SetScoreThreshold(float32(cfg.ConfidenceThresh))
}

// Close releases the detector resources
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
