// Package pipeline runs the capture, detect, select and display loop.
//
// The loop is single threaded and blocking. A stalled camera read
// stalls everything, which is accepted.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teslashibe/facecenter/internal/log"
	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/debug"
	"github.com/teslashibe/facecenter/pkg/display"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"gocv.io/x/gocv"
	"golang.org/x/time/rate"
)

// FrameSource produces BGR frames
type FrameSource interface {
	Read(dst *gocv.Mat) error
}

// Sink receives one report per frame
type Sink interface {
	Publish(r tracking.Report)
}

// PreviewSink receives annotated frames, throttled by the loop
type PreviewSink interface {
	PublishFrame(frame gocv.Mat)
}

// Loop wires a frame source through detection and tracking to a display
type Loop struct {
	source   FrameSource
	detector detection.Detector
	display  display.Display
	tracker  *tracking.Tracker

	sinks   []Sink
	preview PreviewSink
	limiter *rate.Limiter
	manager *camera.Manager

	logger   *slog.Logger
	logEvery uint64
}

// New creates a loop. The tracker is owned by the loop from here on.
func New(source FrameSource, detector detection.Detector, disp display.Display, tracker *tracking.Tracker) *Loop {
	if disp == nil {
		disp = display.Null{}
	}
	return &Loop{
		source:   source,
		detector: detector,
		display:  disp,
		tracker:  tracker,
		logger:   log.L(),
		logEvery: 1,
	}
}

// AddSink registers a report consumer
func (l *Loop) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// SetPreview sends at most fps annotated frames per second to p
func (l *Loop) SetPreview(p PreviewSink, fps float64) {
	l.preview = p
	l.limiter = rate.NewLimiter(rate.Limit(fps), 1)
}

// SetManager makes the loop pick up nominal location/size changes
func (l *Loop) SetManager(m *camera.Manager) {
	l.manager = m
}

// SetLogger replaces the logger used for per-frame reports
func (l *Loop) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// SetLogEvery logs the displacement every n frames (0 disables)
func (l *Loop) SetLogEvery(n uint64) {
	l.logEvery = n
}

// Run loops until ctx is cancelled, the display asks to quit, or a
// read, detect or display call fails. Failures are returned; there is
// no retry.
func (l *Loop) Run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	gray := gocv.NewMat()
	defer gray.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		quit, err := l.Step(&frame, &gray)
		if err != nil {
			return err
		}
		if quit {
			l.logger.Info("display closed, stopping")
			return nil
		}
	}
}

// Step runs one cycle using the caller's buffers.
func (l *Loop) Step(frame, gray *gocv.Mat) (quit bool, err error) {
	start := time.Now()

	if err := l.source.Read(frame); err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}
	size := detection.SizeOf(*frame)

	if err := gocv.CvtColor(*frame, gray, gocv.ColorBGRToGray); err != nil {
		return false, fmt.Errorf("grayscale: %w", err)
	}

	faces, err := l.detector.Detect(*gray)
	if err != nil {
		return false, fmt.Errorf("detect faces: %w", err)
	}

	if l.manager != nil {
		l.tracker.SetNominal(l.manager.GetConfig())
	}

	report, err := l.tracker.Update(size, faces)
	if err != nil {
		return false, fmt.Errorf("track: %w", err)
	}

	l.logReport(report)
	debug.Frame("frame processed", "frame", report.Frame, "faces", report.Faces, "took", time.Since(start))

	quit, err = l.display.Show(frame, report.Selected)
	if err != nil {
		return false, fmt.Errorf("display: %w", err)
	}

	for _, s := range l.sinks {
		s.Publish(report)
	}
	if l.preview != nil && l.limiter.Allow() {
		l.preview.PublishFrame(*frame)
	}

	return quit, nil
}

func (l *Loop) logReport(r tracking.Report) {
	if l.logEvery == 0 || r.Frame%l.logEvery != 0 {
		return
	}
	if r.SizeDiff != nil {
		l.logger.Info("size difference", "dw", r.SizeDiff.Width, "dh", r.SizeDiff.Height)
	}
	l.logger.Info("displacement",
		"frame", r.Frame,
		"faces", r.Faces,
		"dx", r.Displacement.X,
		"dy", r.Displacement.Y)
}
