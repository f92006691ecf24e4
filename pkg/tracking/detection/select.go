package detection

// DistanceSquared returns the squared distance between the center of r
// and the center of the frame. No square root is taken since only the
// ordering matters.
func DistanceSquared(frame FrameSize, r Rect) int64 {
	cx, cy := r.Center()
	fx, fy := frame.Center()
	dx := int64(cx) - int64(fx)
	dy := int64(cy) - int64(fy)
	return dx*dx + dy*dy
}

// MostCentered picks the candidate whose center is closest to the frame
// center. Ties go to the earliest candidate. The returned Rect is a copy.
func MostCentered(frame FrameSize, candidates []Rect) (Rect, error) {
	if len(candidates) == 0 {
		return Rect{}, ErrEmptyInput
	}

	best := candidates[0]
	bestDist := DistanceSquared(frame, best)

	for _, c := range candidates[1:] {
		// strict < keeps the earliest on ties
		if d := DistanceSquared(frame, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, nil
}
