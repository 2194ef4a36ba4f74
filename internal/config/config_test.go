package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playground.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Particles.Count != 50 || cfg.Particles.TTL.Std() != time.Second {
		t.Errorf("particles = %+v", cfg.Particles)
	}
	if cfg.Shapes.RemovalGrace.Std() != 50*time.Millisecond || cfg.Shapes.MaxShapes != 0 {
		t.Errorf("shapes = %+v", cfg.Shapes)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Particles.Count != Default().Particles.Count {
		t.Errorf("Count = %d, want default", cfg.Particles.Count)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 42
particles:
  count: 80
  ttl: 1500ms
  color: ""
shapes:
  max_shapes: 30
  removal_grace: 20ms
simulation:
  reap_interval: 500ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Seed != 42 || cfg.Particles.Count != 80 || cfg.Particles.TTL.Std() != 1500*time.Millisecond {
		t.Errorf("particles = %+v seed %d", cfg.Particles, cfg.Seed)
	}
	if cfg.Particles.Color != "" {
		t.Errorf("Color = %q, want empty", cfg.Particles.Color)
	}
	if cfg.Particles.Size != 0.2 {
		t.Errorf("Size = %v, want default 0.2 kept", cfg.Particles.Size)
	}
	opts := cfg.ShapeOptions()
	if opts.MaxShapes != 30 || opts.RemovalGrace != 20*time.Millisecond || opts.HalfExtent != 5 {
		t.Errorf("ShapeOptions() = %+v", opts)
	}
	if cfg.Simulation.ReapInterval.Std() != 500*time.Millisecond {
		t.Errorf("ReapInterval = %v", cfg.Simulation.ReapInterval.Std())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"malformed yaml", "particles: [", false},
		{"bad duration", "particles:\n  ttl: soon\n", false},
		{"zero count", "particles:\n  count: 0\n", true},
		{"bad color", "particles:\n  color: pink\n", true},
		{"inverted heights", "shapes:\n  min_height: 9\n  max_height: 8\n", true},
		{"negative cap", "shapes:\n  max_shapes: -1\n", true},
		{"cap below initial population", "shapes:\n  max_shapes: 11\n", true},
		{"default scale out of range", "shapes:\n  default_scale: 2\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err %v)", !tt.invalid, tt.invalid, err)
			}
			if cfg.Particles.Count != Default().Particles.Count {
				t.Error("failed Load should return defaults")
			}
		})
	}
}

func TestPathHonorsEnv(t *testing.T) {
	t.Setenv(PathEnv, "")
	if Path() != DefaultPath {
		t.Errorf("Path() = %q, want %q", Path(), DefaultPath)
	}
	t.Setenv(PathEnv, "/tmp/custom.yaml")
	if Path() != "/tmp/custom.yaml" {
		t.Errorf("Path() = %q", Path())
	}
}
