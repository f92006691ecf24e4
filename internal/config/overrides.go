package config

import (
	"fmt"

	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
)

// Overrides are command-line settings. They sit on top of the file and
// the environment, both at startup and on every reload.
type Overrides struct {
	Preset       string // replaces the whole tracking section
	CameraPreset string // keeps the device index
	Device       *int
	Backend      string
	ModelPath    string
	Headless     bool
	Dashboard    string
	LogLevel     string
	LogFile      string
	LogEvery     *uint64
}

// Apply writes the set overrides into cfg.
func (o Overrides) Apply(cfg *File) error {
	if o.Preset != "" {
		p := tracking.GetPreset(o.Preset)
		if p == nil {
			return fmt.Errorf("unknown preset %q (available: %v)", o.Preset, tracking.PresetNames())
		}
		cfg.Tracking = *p
	}
	if o.CameraPreset != "" {
		if err := applyCameraPreset(cfg, o.CameraPreset); err != nil {
			return err
		}
	}
	if o.Device != nil {
		cfg.Camera.DeviceID = *o.Device
	}

	if o.Backend == detection.BackendYuNet && cfg.Tracking.Detection.Backend != detection.BackendYuNet {
		cfg.Tracking.Detection = detection.YuNetConfig()
	} else if o.Backend != "" {
		cfg.Tracking.Detection.Backend = o.Backend
	}
	if o.ModelPath != "" {
		cfg.Tracking.Detection.ModelPath = o.ModelPath
	}

	if o.Headless {
		cfg.Display.Headless = true
	}
	if o.Dashboard != "" {
		cfg.Dashboard.Enabled = true
		cfg.Dashboard.Addr = o.Dashboard
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if o.LogEvery != nil {
		cfg.Log.Every = *o.LogEvery
	}
	return nil
}

// Resolve builds the effective configuration: defaults, the YAML file at
// path, the environment, then o.
func Resolve(path string, o Overrides) (File, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := o.Apply(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyCameraPreset(cfg *File, name string) error {
	p := camera.GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown camera preset %q (available: %v)", name, camera.PresetNames())
	}
	p.DeviceID = cfg.Camera.DeviceID
	cfg.Camera = *p
	return nil
}
