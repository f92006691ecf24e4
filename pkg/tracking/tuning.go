package tracking

// TuningParams holds the real-time adjustable detection parameters.
// These can be modified via the dashboard API or the config file
// without restarting the loop.
type TuningParams struct {
	ScaleFactor  float64 `json:"scale_factor"`
	MinNeighbors int     `json:"min_neighbors"`
	MinWidth     int     `json:"min_width"`
	MinHeight    int     `json:"min_height"`
	MaxWidth     int     `json:"max_width"`
	MaxHeight    int     `json:"max_height"`

	ConfidenceThresh float64 `json:"confidence_thresh"`

	NominalX      float64 `json:"nominal_x"`
	NominalY      float64 `json:"nominal_y"`
	NominalWidth  int     `json:"nominal_width"`
	NominalHeight int     `json:"nominal_height"`
}

// Tuning extracts the tunable parameters from a config.
func (c Config) Tuning() TuningParams {
	return TuningParams{
		ScaleFactor:      c.Detection.ScaleFactor,
		MinNeighbors:     c.Detection.MinNeighbors,
		MinWidth:         c.Detection.MinWidth,
		MinHeight:        c.Detection.MinHeight,
		MaxWidth:         c.Detection.MaxWidth,
		MaxHeight:        c.Detection.MaxHeight,
		ConfidenceThresh: c.Detection.ConfidenceThresh,
		NominalX:         c.NominalLocation.X,
		NominalY:         c.NominalLocation.Y,
		NominalWidth:     c.NominalWidth,
		NominalHeight:    c.NominalHeight,
	}
}

// WithTuning returns a copy of c with every tunable field taken from p.
// Start from c.Tuning() to change only some of them.
func (c Config) WithTuning(p TuningParams) Config {
	c.Detection.ScaleFactor = p.ScaleFactor
	c.Detection.MinNeighbors = p.MinNeighbors
	c.Detection.MinWidth = p.MinWidth
	c.Detection.MinHeight = p.MinHeight
	c.Detection.MaxWidth = p.MaxWidth
	c.Detection.MaxHeight = p.MaxHeight
	c.Detection.ConfidenceThresh = p.ConfidenceThresh
	c.NominalLocation = Location{X: p.NominalX, Y: p.NominalY}
	c.NominalWidth = p.NominalWidth
	c.NominalHeight = p.NominalHeight
	return c
}
