package camera

import (
	"fmt"

	"github.com/teslashibe/facecenter/internal/log"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// Source reads frames from a local capture device
type Source struct {
	capture *gocv.VideoCapture
	config  Config
	size    detection.FrameSize
}

// Open opens the device and reads one warm-up frame to learn the frame
// size. A device that opens but yields nothing is an error.
func Open(cfg Config) (*Source, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}

	capture, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %v", ErrOpenFailed, cfg.DeviceID, err)
	}

	if cfg.Width > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.FPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))
	}

	s := &Source{capture: capture, config: cfg}

	warm := gocv.NewMat()
	defer warm.Close()
	if err := s.Read(&warm); err != nil {
		capture.Close()
		return nil, err
	}
	s.size = detection.SizeOf(warm)

	log.Info("camera opened",
		"device", cfg.DeviceID,
		"width", s.size.Width,
		"height", s.size.Height,
		"fps", capture.Get(gocv.VideoCaptureFPS))

	return s, nil
}

// Read blocks until the next frame is available
func (s *Source) Read(dst *gocv.Mat) error {
	if ok := s.capture.Read(dst); !ok {
		return fmt.Errorf("%w from device %d", ErrReadFailed, s.config.DeviceID)
	}
	if dst.Empty() {
		return fmt.Errorf("%w from device %d: empty frame", ErrReadFailed, s.config.DeviceID)
	}
	return nil
}

// Size returns the frame size seen on the warm-up read
func (s *Source) Size() detection.FrameSize {
	return s.size
}

// Close releases the device
func (s *Source) Close() error {
	return s.capture.Close()
}
