// Package display renders annotated frames.
package display

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// Display shows a frame with the selected face outlined
type Display interface {
	// Show draws selected (if any) onto frame and renders it.
	// quit is true when the user asked to stop.
	Show(frame *gocv.Mat, selected *detection.Rect) (quit bool, err error)

	Close() error
}

// ErrEmptyFrame is returned when asked to show an empty frame.
var ErrEmptyFrame = errors.New("display: empty frame")

// Outline style for the selected face
var (
	OutlineColor     = color.RGBA{G: 255}
	OutlineThickness = 2
)

// Annotate draws the selected face outline onto frame.
func Annotate(frame *gocv.Mat, selected *detection.Rect) error {
	if selected == nil {
		return nil
	}
	if err := gocv.Rectangle(frame, selected.Image(), OutlineColor, OutlineThickness); err != nil {
		return fmt.Errorf("draw outline: %w", err)
	}
	return nil
}

// Window renders frames in a native OpenCV window
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window with the given title
func NewWindow(title string) *Window {
	w := gocv.NewWindow(title)
	return &Window{window: w}
}

// Show annotates and renders the frame, then polls the keyboard for 1ms.
// Any key press or a closed window means quit.
func (w *Window) Show(frame *gocv.Mat, selected *detection.Rect) (bool, error) {
	if frame.Empty() {
		return false, ErrEmptyFrame
	}
	if err := Annotate(frame, selected); err != nil {
		return false, err
	}
	w.window.IMShow(*frame)
	if w.window.WaitKey(1) >= 0 {
		return true, nil
	}
	return !w.window.IsOpen(), nil
}

// Close destroys the window
func (w *Window) Close() error {
	return w.window.Close()
}

// Null annotates frames but renders nothing. Used for headless runs,
// where the dashboard preview is the only view.
type Null struct{}

// Show annotates the frame so previews still carry the outline
func (Null) Show(frame *gocv.Mat, selected *detection.Rect) (bool, error) {
	return false, Annotate(frame, selected)
}

// Close does nothing
func (Null) Close() error { return nil }
