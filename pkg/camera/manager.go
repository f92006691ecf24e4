package camera

import (
	"fmt"
	"sync"

	"github.com/spf13/cast"
	"github.com/teslashibe/facecenter/pkg/debug"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
)

// Manager holds the current tracking configuration and handles updates
// coming from the dashboard or the config file.
type Manager struct {
	config tracking.Config
	mu     sync.RWMutex

	// Serializes SetConfig so callbacks apply in the order configs are stored
	applyMu sync.Mutex

	// Callback when config changes (for applying to the detector)
	OnConfigChange func(cfg tracking.Config) error
}

// NewManager creates a manager holding cfg.
func NewManager(cfg tracking.Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// GetConfig returns the current tracking configuration.
func (m *Manager) GetConfig() tracking.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig replaces the configuration. The model path and backend are
// fixed at startup and cannot be changed here. The new config is only
// stored once OnConfigChange accepts it.
func (m *Manager) SetConfig(cfg tracking.Config) error {
	if errors := cfg.Validate(); len(errors) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errors)
	}

	m.applyMu.Lock()
	defer m.applyMu.Unlock()

	current := m.GetConfig()
	if cfg.Detection.ModelPath != current.Detection.ModelPath ||
		cfg.Detection.Backend != current.Detection.Backend {
		return fmt.Errorf("%w: model and backend are fixed at startup", ErrInvalidConfig)
	}

	if m.OnConfigChange != nil {
		if err := m.OnConfigChange(cfg); err != nil {
			return fmt.Errorf("%w: %w", ErrApplyFailed, err)
		}
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	debug.Log("tracking config stored", "tuning", cfg.Tuning())
	return nil
}

// UpdateConfig updates specific fields of the configuration.
// Accepts a map of field names to values, as decoded from JSON or YAML.
// A "preset" key applies a tracking preset first, keeping the model.
func (m *Manager) UpdateConfig(params map[string]any) error {
	cfg := m.GetConfig()

	if raw, ok := params["preset"]; ok {
		name := cast.ToString(raw)
		preset := tracking.GetPreset(name)
		if preset == nil {
			return fmt.Errorf("unknown preset: %s", name)
		}
		preset.Detection.ModelPath = cfg.Detection.ModelPath
		preset.Detection.Backend = cfg.Detection.Backend
		cfg = *preset
	}

	p := cfg.Tuning()
	for key, value := range params {
		if isDetectionParam(key) && !detection.UsesParam(cfg.Detection.Backend, key) {
			return fmt.Errorf("%w: parameter %s does not apply to the %s backend",
				ErrInvalidConfig, key, cfg.Detection.Backend)
		}

		var err error
		switch key {
		case "preset":
		case "scale_factor":
			p.ScaleFactor, err = cast.ToFloat64E(value)
		case "min_neighbors":
			p.MinNeighbors, err = cast.ToIntE(value)
		case "min_width":
			p.MinWidth, err = cast.ToIntE(value)
		case "min_height":
			p.MinHeight, err = cast.ToIntE(value)
		case "max_width":
			p.MaxWidth, err = cast.ToIntE(value)
		case "max_height":
			p.MaxHeight, err = cast.ToIntE(value)
		case "confidence_thresh":
			p.ConfidenceThresh, err = cast.ToFloat64E(value)
		case "nominal_x":
			p.NominalX, err = cast.ToFloat64E(value)
		case "nominal_y":
			p.NominalY, err = cast.ToFloat64E(value)
		case "nominal_width":
			p.NominalWidth, err = cast.ToIntE(value)
		case "nominal_height":
			p.NominalHeight, err = cast.ToIntE(value)
		default:
			return fmt.Errorf("unknown parameter: %s", key)
		}
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
	}

	return m.SetConfig(cfg.WithTuning(p))
}

func isDetectionParam(key string) bool {
	return detection.UsesParam(detection.BackendCascade, key) ||
		detection.UsesParam(detection.BackendYuNet, key)
}

// Tuning returns the current tunable parameters.
func (m *Manager) Tuning() tracking.TuningParams {
	return m.GetConfig().Tuning()
}
