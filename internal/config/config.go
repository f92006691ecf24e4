// Package config loads facecenter settings from defaults, a YAML file
// and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	EnvDevice    = "FACECENTER_DEVICE"
	EnvCascade   = "FACECENTER_CASCADE"
	EnvDashboard = "FACECENTER_DASHBOARD"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFile   = "LOG_FILE"

	EnvCameraPreset = "FACECENTER_CAMERA_PRESET"
)

// Default addresses and names.
const (
	DefaultDashboardAddr = "127.0.0.1:8090"
	DefaultWindowTitle   = "facecenter"
)

// File is the full application configuration
type File struct {
	Camera    camera.Config   `yaml:"camera"`
	Tracking  tracking.Config `yaml:"tracking"`
	Dashboard Dashboard       `yaml:"dashboard"`
	Display   Display         `yaml:"display"`
	Log       Log             `yaml:"log"`
}

// Dashboard configures the web dashboard
type Dashboard struct {
	Enabled    bool    `yaml:"enabled"`
	Addr       string  `yaml:"addr"`
	PreviewFPS float64 `yaml:"preview_fps"`
}

// Display configures the local window
type Display struct {
	Headless bool   `yaml:"headless"`
	Title    string `yaml:"title"`
}

// Log configures logging
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`

	// Log the displacement every n frames, 0 = never
	Every uint64 `yaml:"every"`
}

// Default returns the built-in configuration
func Default() File {
	return File{
		Camera:   camera.DefaultConfig(),
		Tracking: tracking.DefaultConfig(),
		Dashboard: Dashboard{
			Addr:       DefaultDashboardAddr,
			PreviewFPS: 5,
		},
		Display: Display{
			Title: DefaultWindowTitle,
		},
		Log: Log{
			Level: "info",
			Every: 1,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the environment. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any environment variables that are set.
func ApplyEnv(cfg *File) error {
	if v := os.Getenv(EnvCameraPreset); v != "" {
		if err := applyCameraPreset(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", EnvCameraPreset, err)
		}
	}
	if v := os.Getenv(EnvDevice); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDevice, err)
		}
		cfg.Camera.DeviceID = id
	}
	if v := os.Getenv(EnvCascade); v != "" {
		cfg.Tracking.Detection.ModelPath = v
	}
	if v := os.Getenv(EnvDashboard); v != "" {
		cfg.Dashboard.Enabled = true
		cfg.Dashboard.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Validate checks every section.
func (f *File) Validate() []string {
	var problems []string
	for _, p := range f.Camera.Validate() {
		problems = append(problems, "camera: "+p)
	}
	for _, p := range f.Tracking.Validate() {
		problems = append(problems, "tracking: "+p)
	}
	if f.Dashboard.Enabled && f.Dashboard.Addr == "" {
		problems = append(problems, "dashboard: addr is required when enabled")
	}
	if f.Dashboard.PreviewFPS < 0 {
		problems = append(problems, "dashboard: preview_fps must not be negative")
	}
	return problems
}
