package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playmode.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("failed to save default settings: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("loaded settings differ from defaults:\n%+v\n%+v", s, DefaultSettings())
	}
}

func TestLoadKeepsDefaultsForMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playmode.toml")
	data := "[Enemies]\nCap = 3\n\n[Robot]\nHealth = 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if s.Enemies.Cap != 3 || s.Robot.Health != 2 {
		t.Fatalf("expected overrides to apply, got cap %d health %d", s.Enemies.Cap, s.Robot.Health)
	}
	if s.Walk.MaxIterations != DefaultSettings().Walk.MaxIterations {
		t.Fatalf("expected default iteration budget, got %d", s.Walk.MaxIterations)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(dir, "playmode.toml")
	if err := os.WriteFile(path, []byte("[Bullets]\nCapacity = 0\n"), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for zero bullet capacity")
	}
}

func TestLocomotionOptions(t *testing.T) {
	s := DefaultSettings()
	s.Walk.MaxIterations = 4
	s.Walk.Restitution = 1
	opts := s.LocomotionOptions()
	if opts.MaxIterations != 4 || opts.Restitution != 1 || opts.WallBias != s.Walk.WallBias {
		t.Fatalf("unexpected options %+v", opts)
	}
}
