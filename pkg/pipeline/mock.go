package pipeline

import (
	"errors"
	"sync"

	"github.com/teslashibe/facecenter/pkg/tracking"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// ErrMockExhausted is returned by MockSource after its last frame.
var ErrMockExhausted = errors.New("mock: no more frames")

// MockSource yields solid BGR frames of a fixed size for testing.
type MockSource struct {
	Size   detection.FrameSize
	Frames int // frames to yield before ErrMockExhausted, 0 = unlimited

	mu    sync.Mutex
	reads int
}

// Read fills dst with a mid-grey frame
func (m *MockSource) Read(dst *gocv.Mat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Frames > 0 && m.reads >= m.Frames {
		return ErrMockExhausted
	}
	m.reads++

	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), m.Size.Height, m.Size.Width, gocv.MatTypeCV8UC3)
	defer src.Close()
	src.CopyTo(dst)
	return nil
}

// Reads returns how many frames were handed out.
func (m *MockSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// MockDetector returns scripted detections, one entry per call.
// Calls past the script return no faces.
type MockDetector struct {
	Script [][]detection.Rect
	Err    error

	calls int
}

// Detect returns the next scripted result
func (m *MockDetector) Detect(gray gocv.Mat) ([]detection.Rect, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if gray.Channels() != 1 {
		return nil, errors.New("mock: expected grayscale frame")
	}
	defer func() { m.calls++ }()
	if m.calls < len(m.Script) {
		return m.Script[m.calls], nil
	}
	return nil, nil
}

// Close does nothing
func (m *MockDetector) Close() error { return nil }

// MockDisplay records selections and quits after QuitAfter frames.
type MockDisplay struct {
	QuitAfter int // 0 = never
	Err       error

	Shown []*detection.Rect
}

// Show records the selection
func (m *MockDisplay) Show(frame *gocv.Mat, selected *detection.Rect) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.Shown = append(m.Shown, selected)
	return m.QuitAfter > 0 && len(m.Shown) >= m.QuitAfter, nil
}

// Close does nothing
func (m *MockDisplay) Close() error { return nil }

// RecordingSink keeps every report it receives.
type RecordingSink struct {
	mu      sync.Mutex
	Reports []tracking.Report
}

// Publish records r
func (s *RecordingSink) Publish(r tracking.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reports = append(s.Reports, r)
}
