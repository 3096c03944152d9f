package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Screen.Width != 1000 || cfg.Screen.Height != 700 {
		t.Errorf("screen = %dx%d, want 1000x700", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Physics.SeparationBias != 1.02 {
		t.Errorf("separation_bias = %g, want 1.02", cfg.Physics.SeparationBias)
	}
	if cfg.Physics.MinSpeed != 60 {
		t.Errorf("min_speed = %g, want 60", cfg.Physics.MinSpeed)
	}
	if cfg.Morph.Cooldown != 0.25 {
		t.Errorf("morph cooldown = %g, want 0.25", cfg.Morph.Cooldown)
	}
	if cfg.Derived.PlayfieldW != 780 {
		t.Errorf("PlayfieldW = %d, want 780", cfg.Derived.PlayfieldW)
	}
	if len(cfg.Icons.Assets) != 3 {
		t.Errorf("assets = %d entries, want 3", len(cfg.Icons.Assets))
	}
}

func TestLoadUserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("population:\n  per_kind: 25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Population.PerKind != 25 {
		t.Errorf("per_kind = %d, want 25", cfg.Population.PerKind)
	}
	// Keys absent from the user file keep their defaults
	if cfg.Physics.Restitution != 1.0 {
		t.Errorf("restitution = %g, want 1.0", cfg.Physics.Restitution)
	}
	if cfg.Screen.TargetFPS != 120 {
		t.Errorf("target_fps = %d, want 120", cfg.Screen.TargetFPS)
	}
}

func TestIconSizeFor(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	tests := []struct{ n, want int }{
		{1, 100}, {2, 100}, {3, 64}, {5, 64}, {6, 48}, {10, 48},
		{11, 40}, {20, 40}, {21, 32}, {40, 32}, {41, 24}, {200, 24},
	}
	for _, tt := range tests {
		if got := cfg.Icons.SizeFor(tt.n); got != tt.want {
			t.Errorf("SizeFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }},
		{"zero frame clamp", func(c *Config) { c.Physics.MaxFrameDT = 0 }},
		{"separation bias below one", func(c *Config) { c.Physics.SeparationBias = 0.9 }},
		{"inverted speed range", func(c *Config) { c.Population.SpeedMin = 300; c.Population.SpeedMax = 200 }},
		{"negative min speed", func(c *Config) { c.Physics.MinSpeed = -1 }},
		{"cell scale below diameter", func(c *Config) { c.Population.RadiusScale = 0.7 }},
		{"panel wider than screen", func(c *Config) { c.Screen.PanelWidth = 1000 }},
		{"unknown asset kind", func(c *Config) { c.Icons.Assets["lizard"] = "img/lizard.png" }},
		{"zero per kind", func(c *Config) { c.Population.PerKind = 0 }},
		{"negative cooldown", func(c *Config) { c.Morph.Cooldown = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
