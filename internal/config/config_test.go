package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Physics.Timestep != 1.0/60.0 {
		t.Errorf("expected 1/60 timestep, got %f", cfg.Physics.Timestep)
	}
	if cfg.Boundary.Limit != 3 {
		t.Errorf("expected boundary limit 3, got %f", cfg.Boundary.Limit)
	}
	if cfg.Scene.InitialScale != 2 {
		t.Errorf("expected initial scale 2, got %f", cfg.Scene.InitialScale)
	}
	if cfg.Physics.Gravity != (Vec{}) {
		t.Errorf("gravity should be zero, got %+v", cfg.Physics.Gravity)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Breathing.Amplitude != 0.02 {
		t.Errorf("expected amplitude 0.02, got %f", cfg.Breathing.Amplitude)
	}

	// presets must not leak into the defaults
	if DefaultConfig().Breathing.Amplitude != DefaultAmplitude {
		t.Error("preset modified the default config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timestep", func(c *Config) { c.Physics.Timestep = 0 }},
		{"zero mass", func(c *Config) { c.Physics.Mass = 0 }},
		{"full damping", func(c *Config) { c.Physics.LinearDamping = 1 }},
		{"ratio one", func(c *Config) { c.Split.Ratio = 1 }},
		{"negative limit", func(c *Config) { c.Boundary.Limit = -3 }},
		{"velocity factor above one", func(c *Config) { c.Boundary.VelocityFactor = 1.5 }},
		{"scale under amplitude", func(c *Config) { c.Scene.InitialScale = 0.01 }},
		{"negative cap", func(c *Config) { c.Split.MaxObjects = -1 }},
		{"zero fps", func(c *Config) { c.View.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mitosis.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Split.MaxObjects = 64
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Split.MaxObjects != 64 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("boundary:\n  limit: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Boundary.Limit != 5 {
		t.Errorf("expected limit 5, got %f", cfg.Boundary.Limit)
	}
	if cfg.Boundary.ForceFactor != DefaultForceFactor {
		t.Errorf("unset keys should keep defaults, got %f", cfg.Boundary.ForceFactor)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("split:\n  ratio: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOntoPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("boundary:\n  limit: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOnto(path, GetPreset("swarm"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Boundary.Limit != 5 {
		t.Errorf("file should override the preset limit, got %f", cfg.Boundary.Limit)
	}
	if cfg.Split.MaxObjects != 256 {
		t.Errorf("preset cap should survive, got %d", cfg.Split.MaxObjects)
	}
}
