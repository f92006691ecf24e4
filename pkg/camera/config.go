// Package camera provides webcam capture and runtime-configurable
// tracking settings.
package camera

// Config holds capture configuration. Width, Height and FPS are
// requests; the driver may pick something else.
type Config struct {
	// Video device index
	DeviceID int `yaml:"device_id" json:"device_id"`

	// Requested frame size and rate, 0 = driver default
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	FPS    int `yaml:"fps" json:"fps"`
}

// Limits for requested capture properties
const (
	MaxWidth  = 4096
	MaxHeight = 2160
	MaxFPS    = 120
)

// DefaultConfig opens device 0 at whatever resolution it offers.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
	}
}

// LegacyConfig returns the 640x480 configuration.
func LegacyConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	cfg.FPS = 30
	return cfg
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.DeviceID < 0 {
		errors = append(errors, "device_id must not be negative")
	}
	if c.Width != 0 && (c.Width < 160 || c.Width > MaxWidth) {
		errors = append(errors, "width must be 0 or between 160 and 4096")
	}
	if c.Height != 0 && (c.Height < 120 || c.Height > MaxHeight) {
		errors = append(errors, "height must be 0 or between 120 and 2160")
	}
	if c.FPS < 0 || c.FPS > MaxFPS {
		errors = append(errors, "fps must be between 0 and 120")
	}

	return errors
}
