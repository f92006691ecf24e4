package detection

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMostCentered_SingleCentered(t *testing.T) {
	frame := FrameSize{Width: 640, Height: 480}
	c := Rect{X: 270, Y: 190, Width: 100, Height: 100}

	got, err := MostCentered(frame, []Rect{c})
	if err != nil {
		t.Fatalf("MostCentered: %v", err)
	}
	if got != c {
		t.Errorf("got %+v, want %+v", got, c)
	}
	if d := DistanceSquared(frame, got); d != 0 {
		t.Errorf("DistanceSquared: got %d, want 0", d)
	}
}

func TestMostCentered_Scenario(t *testing.T) {
	frame := FrameSize{Width: 640, Height: 480}
	candidates := []Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 270, Y: 190, Width: 100, Height: 100},
	}

	if d := DistanceSquared(frame, candidates[0]); d != 109000 {
		t.Errorf("first candidate distance: got %d, want 109000", d)
	}
	if d := DistanceSquared(frame, candidates[1]); d != 0 {
		t.Errorf("second candidate distance: got %d, want 0", d)
	}

	got, err := MostCentered(frame, candidates)
	if err != nil {
		t.Fatalf("MostCentered: %v", err)
	}
	if got != candidates[1] {
		t.Errorf("got %+v, want %+v", got, candidates[1])
	}
}

func TestMostCentered_Empty(t *testing.T) {
	frame := FrameSize{Width: 640, Height: 480}

	tests := []struct {
		name       string
		candidates []Rect
	}{
		{"nil", nil},
		{"empty slice", []Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MostCentered(frame, tc.candidates)
			if !errors.Is(err, ErrEmptyInput) {
				t.Fatalf("expected ErrEmptyInput, got %v", err)
			}
			if got != (Rect{}) {
				t.Errorf("expected zero Rect, got %+v", got)
			}
			if len(tc.candidates) != 0 {
				t.Errorf("input modified: %v", tc.candidates)
			}
		})
	}
}

func TestMostCentered_TieKeepsFirst(t *testing.T) {
	frame := FrameSize{Width: 640, Height: 480}

	tests := []struct {
		name       string
		candidates []Rect
		want       int
	}{
		{
			name: "mirror images left then right",
			candidates: []Rect{
				{X: 200, Y: 190, Width: 100, Height: 100}, // center (250,240)
				{X: 340, Y: 190, Width: 100, Height: 100}, // center (390,240)
			},
			want: 0,
		},
		{
			name: "mirror images right then left",
			candidates: []Rect{
				{X: 340, Y: 190, Width: 100, Height: 100},
				{X: 200, Y: 190, Width: 100, Height: 100},
			},
			want: 0,
		},
		{
			name: "same center different size",
			candidates: []Rect{
				{X: 300, Y: 220, Width: 40, Height: 40},
				{X: 220, Y: 140, Width: 200, Height: 200},
			},
			want: 0,
		},
		{
			name: "tie after a farther candidate",
			candidates: []Rect{
				{X: 0, Y: 0, Width: 10, Height: 10},
				{X: 310, Y: 200, Width: 20, Height: 20}, // center (320,210), d=900
				{X: 310, Y: 260, Width: 20, Height: 20}, // center (320,270), d=900
			},
			want: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MostCentered(frame, tc.candidates)
			if err != nil {
				t.Fatalf("MostCentered: %v", err)
			}
			if got != tc.candidates[tc.want] {
				t.Errorf("got %+v, want %+v", got, tc.candidates[tc.want])
			}
		})
	}
}

func TestMostCentered_ZeroArea(t *testing.T) {
	frame := FrameSize{Width: 100, Height: 100}
	candidates := []Rect{
		{X: 10, Y: 10, Width: 20, Height: 20},
		{X: 50, Y: 50, Width: 0, Height: 0},
	}

	got, err := MostCentered(frame, candidates)
	if err != nil {
		t.Fatalf("MostCentered: %v", err)
	}
	// No special case: the degenerate box is closer and wins
	if got != candidates[1] {
		t.Errorf("got %+v, want %+v", got, candidates[1])
	}
}

func TestMostCentered_ReturnsCopy(t *testing.T) {
	frame := FrameSize{Width: 640, Height: 480}
	candidates := []Rect{{X: 270, Y: 190, Width: 100, Height: 100}}

	got, _ := MostCentered(frame, candidates)
	candidates[0].X = 0

	if got.X != 270 {
		t.Errorf("selected rect changed with input: %+v", got)
	}
}

func TestMostCentered_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		frame := FrameSize{Width: 160 + rng.Intn(3680), Height: 120 + rng.Intn(2040)}
		n := 1 + rng.Intn(12)

		candidates := make([]Rect, 0, n)
		seen := make(map[int64]bool)
		for len(candidates) < n {
			r := Rect{
				X:      rng.Intn(frame.Width),
				Y:      rng.Intn(frame.Height),
				Width:  rng.Intn(frame.Width / 2),
				Height: rng.Intn(frame.Height / 2),
			}
			d := bruteDistance(frame, r)
			if seen[d] {
				continue
			}
			seen[d] = true
			candidates = append(candidates, r)
		}

		want := 0
		for i := range candidates {
			if bruteDistance(frame, candidates[i]) < bruteDistance(frame, candidates[want]) {
				want = i
			}
		}

		got, err := MostCentered(frame, candidates)
		if err != nil {
			t.Fatalf("iter %d: %v", iter, err)
		}
		if got != candidates[want] {
			t.Fatalf("iter %d: got %+v, want %+v (frame %+v)", iter, got, candidates[want], frame)
		}
	}
}

func TestDistanceSquared_LargeFrames(t *testing.T) {
	// 32-bit products would overflow here
	frame := FrameSize{Width: 0, Height: 0}
	r := Rect{X: 60000, Y: 60000}

	want := int64(60000)*60000 + int64(60000)*60000
	if got := DistanceSquared(frame, r); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func bruteDistance(frame FrameSize, r Rect) int64 {
	cx := int64(r.X + r.Width/2)
	cy := int64(r.Y + r.Height/2)
	fx := int64(frame.Width / 2)
	fy := int64(frame.Height / 2)
	return (cx-fx)*(cx-fx) + (cy-fy)*(cy-fy)
}
