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
	if cfg.Bodies != 0 {
		t.Errorf("expected body count drawn from seed, got %d", cfg.Bodies)
	}
	if cfg.Streamline.Steps != 512 {
		t.Errorf("expected 512 streamline steps, got %d", cfg.Streamline.Steps)
	}
	if cfg.Equipotential.MinIterations != 64 {
		t.Errorf("expected 64 minimum iterations, got %d", cfg.Equipotential.MinIterations)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("binary")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", cfg.Bodies)
	}

	cfg.Bodies = 7
	again, _ := GetPreset("binary")
	if again.Bodies != 2 {
		t.Error("editing a preset copy changed the preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets returned %d names for %d presets", len(names), len(Presets))
	}
	for _, name := range names {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"too many bodies", func(c *Config) { c.Bodies = 9 }},
		{"empty mass range", func(c *Config) { c.Orbit.MassMin, c.Orbit.MassMax = 3, 2 }},
		{"probability above one", func(c *Config) { c.Moons.Probability = 1.5 }},
		{"tiny grid", func(c *Config) { c.Grid.Width = 1 }},
		{"zero delta", func(c *Config) { c.Streamline.Delta = 0 }},
		{"inverted clamp", func(c *Config) { c.Streamline.MaxSpeed = 1 }},
		{"zero skip", func(c *Config) { c.Record.Skip = 0 }},
		{"flow probability below zero", func(c *Config) { c.Flow.Probability = -0.1 }},
		{"tiny flow texture", func(c *Config) { c.Flow.Resolution = 1 }},
		{"zero flow alpha", func(c *Config) { c.Flow.Alpha = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := DefaultConfig()
	cfg.Seed = "ooh"
	cfg.Bodies = 2
	cfg.Streamline.Duty = 6

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != "ooh" || got.Bodies != 2 || got.Streamline.Duty != 6 {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("seed: abc\nbodies: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != "abc" || cfg.Bodies != 5 {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Size != DefaultSize {
		t.Errorf("missing keys should keep defaults, size = %d", cfg.Size)
	}
}
