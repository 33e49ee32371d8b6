package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if _, err := cfg.Settings(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSettings_MixModes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.MixFriction = "mul"
	cfg.Solver.MixRestitution = "max"

	set, err := cfg.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Solver.MixFriction.String() != "mul" {
		t.Errorf("expected mul, got %s", set.Solver.MixFriction)
	}
	if set.Solver.MixRestitution.String() != "max" {
		t.Errorf("expected max, got %s", set.Solver.MixRestitution)
	}
}

func TestSettings_UnknownMixMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.MixFriction = "harmonic"

	if _, err := cfg.Settings(); err == nil {
		t.Error("expected error for unknown mix mode")
	}
}

func TestSettings_BadDt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0

	if _, err := cfg.Settings(); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestSettings_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = -1

	if _, err := cfg.Settings(); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Scene = "pyramid"
	cfg.Solver.VelocityIterations = 12
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Scene != "pyramid" {
		t.Errorf("expected scene pyramid, got %s", loaded.Scene)
	}
	if loaded.Solver.VelocityIterations != 12 {
		t.Errorf("expected 12 velocity iterations, got %d", loaded.Solver.VelocityIterations)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("stack", "tall")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Solver.VelocityIterations != 16 {
		t.Errorf("expected 16 velocity iterations, got %d", cfg.Solver.VelocityIterations)
	}
	if _, err := cfg.Settings(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("stack", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("stack")
	if len(presets) == 0 {
		t.Error("expected presets for stack")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for scene, scenePresets := range Presets {
		for name, cfg := range scenePresets {
			if _, err := cfg.Settings(); err != nil {
				t.Errorf("preset %s/%s: %v", scene, name, err)
			}
		}
	}
}
