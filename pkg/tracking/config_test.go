package tracking

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NominalLocation != (Location{X: 0.5, Y: 0.5}) {
		t.Errorf("Expected NominalLocation=(0.5,0.5), got %+v", cfg.NominalLocation)
	}
	if cfg.NominalWidth != 390 || cfg.NominalHeight != 390 {
		t.Errorf("Expected nominal size 390x390, got %dx%d", cfg.NominalWidth, cfg.NominalHeight)
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		t.Errorf("DefaultConfig invalid: %v", problems)
	}
}

func TestPresets_Valid(t *testing.T) {
	for _, name := range PresetNames() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Errorf("%s: preset missing", name)
			continue
		}
		if problems := cfg.Validate(); len(problems) > 0 {
			t.Errorf("%s: invalid preset: %v", name, problems)
		}
	}

	if GetPreset("nope") != nil {
		t.Error("unknown preset should be nil")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"nominal out of range", func(c *Config) { c.NominalLocation.X = 1.5 }, "nominal_location"},
		{"scale factor too small", func(c *Config) { c.Detection.ScaleFactor = 1.0 }, "ScaleFactor"},
		{"negative neighbors", func(c *Config) { c.Detection.MinNeighbors = -1 }, "MinNeighbors"},
		{"unknown backend", func(c *Config) { c.Detection.Backend = "haar" }, "Backend"},
		{"missing model", func(c *Config) { c.Detection.ModelPath = "" }, "ModelPath"},
		{"negative nominal size", func(c *Config) { c.NominalWidth = -4 }, "NominalWidth"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			problems := cfg.Validate()
			if len(problems) == 0 {
				t.Fatal("expected validation problems")
			}
			if !strings.Contains(strings.Join(problems, "; "), tc.want) {
				t.Errorf("expected a problem mentioning %q, got %v", tc.want, problems)
			}
		})
	}
}

func TestWithTuning(t *testing.T) {
	cfg := DefaultConfig()

	p := cfg.Tuning()
	p.MinNeighbors = 0
	p.NominalX = 0
	next := cfg.WithTuning(p)

	if next.Detection.MinNeighbors != 0 {
		t.Errorf("MinNeighbors: got %d, want 0", next.Detection.MinNeighbors)
	}
	if next.NominalLocation.X != 0 || next.NominalLocation.Y != 0.5 {
		t.Errorf("NominalLocation: got %+v", next.NominalLocation)
	}
	if next.Detection.ScaleFactor != cfg.Detection.ScaleFactor {
		t.Error("untouched params should keep their values")
	}
	if next.Detection.ModelPath != cfg.Detection.ModelPath {
		t.Error("ModelPath is not tunable")
	}
	if cfg.Detection.MinNeighbors != 2 {
		t.Error("WithTuning modified the receiver")
	}
	if problems := next.Validate(); len(problems) > 0 {
		t.Errorf("zero tuning values should be valid: %v", problems)
	}

	if cfg.WithTuning(cfg.Tuning()) != cfg {
		t.Error("Tuning round trip changed the config")
	}
}
