package display

import (
	"testing"

	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

func TestAnnotate_DrawsOutline(t *testing.T) {
	frame := black(640, 480)
	defer frame.Close()

	sel := &detection.Rect{X: 270, Y: 190, Width: 100, Height: 100}
	if err := Annotate(&frame, sel); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	// top-left corner of the outline is green (BGR)
	px := frame.GetVecbAt(190, 270)
	if px[0] != 0 || px[1] != 255 || px[2] != 0 {
		t.Errorf("expected green outline pixel, got %v", px)
	}

	// center is untouched
	px = frame.GetVecbAt(240, 320)
	if px[1] != 0 {
		t.Errorf("expected untouched center, got %v", px)
	}
}

func TestAnnotate_NilSelection(t *testing.T) {
	frame := black(64, 48)
	defer frame.Close()

	if err := Annotate(&frame, nil); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	for _, pt := range [][2]int{{0, 0}, {10, 10}, {24, 32}, {47, 63}} {
		if px := frame.GetVecbAt(pt[0], pt[1]); px[0] != 0 || px[1] != 0 || px[2] != 0 {
			t.Fatalf("nil selection drew on the frame at %v: %v", pt, px)
		}
	}
}

func TestNull_NeverQuits(t *testing.T) {
	frame := black(64, 48)
	defer frame.Close()

	var d Display = Null{}
	quit, err := d.Show(&frame, &detection.Rect{X: 1, Y: 1, Width: 10, Height: 10})
	if err != nil || quit {
		t.Errorf("Null.Show: quit=%v err=%v", quit, err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Null.Close: %v", err)
	}
}

func black(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
}
