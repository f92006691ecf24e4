package tracking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
)

// StartLocation is where the tracker begins before any face is seen.
var StartLocation = Location{X: 0.5, Y: 0.5}

// Config holds the tracking parameters
type Config struct {
	// Target the selected face should sit at (normalized)
	NominalLocation Location `yaml:"nominal_location" json:"nominal_location"`

	// Nominal face size in pixels for size-difference reporting
	NominalWidth  int `yaml:"nominal_width" json:"nominal_width" validate:"gte=0"`
	NominalHeight int `yaml:"nominal_height" json:"nominal_height" validate:"gte=0"`

	// Detection parameters, passed to the detector unmodified
	Detection detection.Config `yaml:"detection" json:"detection"`
}

// DefaultConfig returns the recommended configuration: center target,
// 390x390 nominal face, cascade detection.
func DefaultConfig() Config {
	return Config{
		NominalLocation: Location{X: 0.5, Y: 0.5},
		NominalWidth:    390,
		NominalHeight:   390,
		Detection:       detection.DefaultConfig(),
	}
}

// CloseConfig expects a face near the camera
func CloseConfig() Config {
	cfg := DefaultConfig()
	cfg.NominalWidth = 520
	cfg.NominalHeight = 520
	cfg.Detection.MinWidth = 160
	cfg.Detection.MinHeight = 160
	return cfg
}

// FarConfig finds smaller faces at the cost of more false positives
func FarConfig() Config {
	cfg := DefaultConfig()
	cfg.NominalWidth = 200
	cfg.NominalHeight = 200
	cfg.Detection.MinWidth = 40
	cfg.Detection.MinHeight = 40
	cfg.Detection.MinNeighbors = 4
	return cfg
}

// YuNetTrackingConfig uses the YuNet ONNX detector
func YuNetTrackingConfig() Config {
	cfg := DefaultConfig()
	cfg.Detection = detection.YuNetConfig()
	return cfg
}

// Preset names
const (
	PresetDefault = "default"
	PresetClose   = "close"
	PresetFar     = "far"
	PresetYuNet   = "yunet"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault: DefaultConfig(),
		PresetClose:   CloseConfig(),
		PresetFar:     FarConfig(),
		PresetYuNet:   YuNetTrackingConfig(),
	}
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	return []string{PresetDefault, PresetClose, PresetFar, PresetYuNet}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	if cfg, ok := Presets()[name]; ok {
		return &cfg
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var problems []string

	if c.NominalLocation.X < 0 || c.NominalLocation.X > 1 ||
		c.NominalLocation.Y < 0 || c.NominalLocation.Y > 1 {
		problems = append(problems, "nominal_location must be within [0,1]")
	}

	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	} else if err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
