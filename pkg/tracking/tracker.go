// Package tracking follows the most centered face across frames and
// reports its displacement from a nominal position.
package tracking

import (
	"errors"
	"time"

	"github.com/teslashibe/facecenter/pkg/tracking/detection"
)

// ErrInvalidFrame is returned when candidates arrive with a zero-sized frame.
var ErrInvalidFrame = errors.New("tracking: frame has zero width or height")

// Location is a point normalized to frame width and height.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns l - o component-wise.
func (l Location) Sub(o Location) Location {
	return Location{X: l.X - o.X, Y: l.Y - o.Y}
}

// Normalize converts a pixel point to a frame-relative location.
func Normalize(x, y int, frame detection.FrameSize) Location {
	return Location{
		X: float64(x) / float64(frame.Width),
		Y: float64(y) / float64(frame.Height),
	}
}

// SizeDiff is nominal size minus the selected face size. Informational only.
type SizeDiff struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Report is the outcome of a single tracking cycle
type Report struct {
	Frame        uint64              `json:"frame"`
	Time         time.Time           `json:"time"`
	FrameSize    detection.FrameSize `json:"frame_size"`
	Faces        int                 `json:"faces"`
	Selected     *detection.Rect     `json:"selected,omitempty"`
	DistanceSq   int64               `json:"distance_sq"`
	Location     Location            `json:"location"`
	Displacement Location            `json:"displacement"`
	SizeDiff     *SizeDiff           `json:"size_diff,omitempty"`
}

// Tracker holds the last known face location. It is created once at
// startup, updated once per frame and never reset implicitly.
// Not safe for concurrent use; the capture loop owns it.
type Tracker struct {
	nominal     Location
	nominalSize detection.FrameSize
	current     Location
	frames      uint64
	now         func() time.Time
}

// NewTracker creates a tracker starting at the frame center
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		nominal:     cfg.NominalLocation,
		nominalSize: detection.FrameSize{Width: cfg.NominalWidth, Height: cfg.NominalHeight},
		current:     StartLocation,
		now:         time.Now,
	}
}

// Location returns the most recently selected face center
func (t *Tracker) Location() Location {
	return t.current
}

// Displacement returns the current location minus the nominal location
func (t *Tracker) Displacement() Location {
	return t.current.Sub(t.nominal)
}

// Nominal returns the configured target location
func (t *Tracker) Nominal() Location {
	return t.nominal
}

// SetNominal changes the target. The current location is kept.
func (t *Tracker) SetNominal(cfg Config) {
	t.nominal = cfg.NominalLocation
	t.nominalSize = detection.FrameSize{Width: cfg.NominalWidth, Height: cfg.NominalHeight}
}

// Reset moves the current location back to the frame center.
func (t *Tracker) Reset() {
	t.current = StartLocation
}

// Update runs one cycle. With no candidates the selector is skipped and
// the previous location is kept as is.
func (t *Tracker) Update(frame detection.FrameSize, candidates []detection.Rect) (Report, error) {
	t.frames++
	r := Report{
		Frame:     t.frames,
		Time:      t.now(),
		FrameSize: frame,
		Faces:     len(candidates),
	}

	if len(candidates) > 0 {
		if frame.Empty() {
			return r, ErrInvalidFrame
		}

		best, err := detection.MostCentered(frame, candidates)
		if err != nil {
			return r, err
		}

		cx, cy := best.Center()
		t.current = Normalize(cx, cy, frame)

		r.Selected = &best
		r.DistanceSq = detection.DistanceSquared(frame, best)
		r.SizeDiff = &SizeDiff{
			Width:  t.nominalSize.Width - best.Width,
			Height: t.nominalSize.Height - best.Height,
		}
	}

	r.Location = t.current
	r.Displacement = t.current.Sub(t.nominal)
	return r, nil
}
