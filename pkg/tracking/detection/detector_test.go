package detection

import (
	"errors"
	"image"
	"testing"
)

func TestRect_Center(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rect
		wantX int
		wantY int
	}{
		{"even size", Rect{X: 0, Y: 0, Width: 100, Height: 100}, 50, 50},
		{"odd size floors", Rect{X: 10, Y: 20, Width: 5, Height: 7}, 12, 23},
		{"zero size", Rect{X: 30, Y: 40}, 30, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.rect.Center()
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("Center: got (%d,%d), want (%d,%d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestFrameSize_Center(t *testing.T) {
	x, y := FrameSize{Width: 641, Height: 481}.Center()
	if x != 320 || y != 240 {
		t.Errorf("Center: got (%d,%d), want (320,240)", x, y)
	}
}

func TestFrameSize_Empty(t *testing.T) {
	if !(FrameSize{Width: 0, Height: 480}).Empty() {
		t.Error("zero width should be empty")
	}
	if (FrameSize{Width: 640, Height: 480}).Empty() {
		t.Error("640x480 should not be empty")
	}
}

func TestRectFrom_RoundTrip(t *testing.T) {
	ir := image.Rect(10, 20, 110, 220)
	r := RectFrom(ir)

	want := Rect{X: 10, Y: 20, Width: 100, Height: 200}
	if r != want {
		t.Errorf("RectFrom: got %+v, want %+v", r, want)
	}
	if r.Image() != ir {
		t.Errorf("Image: got %v, want %v", r.Image(), ir)
	}
	if r.Area() != 20000 {
		t.Errorf("Area: got %d, want 20000", r.Area())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendCascade {
		t.Errorf("Backend: got %q, want %q", cfg.Backend, BackendCascade)
	}
	if cfg.ModelPath == "" {
		t.Error("ModelPath should not be empty")
	}
	if cfg.ScaleFactor != 1.1 {
		t.Errorf("ScaleFactor: got %v, want 1.1", cfg.ScaleFactor)
	}
	if cfg.MinNeighbors != 2 {
		t.Errorf("MinNeighbors: got %d, want 2", cfg.MinNeighbors)
	}
	if cfg.MinWidth != 100 || cfg.MinHeight != 100 {
		t.Errorf("MinSize: got %dx%d, want 100x100", cfg.MinWidth, cfg.MinHeight)
	}
	if cfg.MaxWidth != 0 || cfg.MaxHeight != 0 {
		t.Errorf("MaxSize: got %dx%d, want 0x0", cfg.MaxWidth, cfg.MaxHeight)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "yolo"

	_, err := New(cfg)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestNewCascade_MissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/path/cascade.xml"

	_, err := NewCascade(cfg)
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestUsesParam(t *testing.T) {
	tests := []struct {
		backend, param string
		want           bool
	}{
		{BackendCascade, "scale_factor", true},
		{BackendCascade, "min_width", true},
		{"", "min_neighbors", true},
		{BackendCascade, "confidence_thresh", false},
		{BackendYuNet, "confidence_thresh", true},
		{BackendYuNet, "scale_factor", false},
		{BackendYuNet, "max_height", false},
		{"bogus", "scale_factor", false},
	}

	for _, tc := range tests {
		if got := UsesParam(tc.backend, tc.param); got != tc.want {
			t.Errorf("UsesParam(%q, %q): got %v, want %v", tc.backend, tc.param, got, tc.want)
		}
	}
}
