// Package config loads playground tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cosmic-playground/internal/shapes"
)

// DefaultPath is the config file location relative to the working directory.
const DefaultPath = "config/playground.yaml"

// PathEnv overrides DefaultPath when set.
const PathEnv = "PLAYGROUND_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid playground config")

// Duration is a time.Duration written in YAML as a string ("50ms", "1s").
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full playground tuning.
type Config struct {
	// Seed drives every random source; 0 picks a time-based seed.
	Seed       int64      `yaml:"seed"`
	Particles  Particles  `yaml:"particles"`
	Shapes     Shapes     `yaml:"shapes"`
	Simulation Simulation `yaml:"simulation"`
}

// Particles tunes explosion bursts.
type Particles struct {
	Count int      `yaml:"count"`
	TTL   Duration `yaml:"ttl"`
	// Size is the render size of one particle.
	Size float32 `yaml:"size"`
	// Color overrides the burst color; empty uses the destroyed shape's color.
	Color string `yaml:"color"`
}

// Shapes tunes spawning and removal.
type Shapes struct {
	Palette      []string `yaml:"palette"`
	HalfExtent   float32  `yaml:"half_extent"`
	MinHeight    float32  `yaml:"min_height"`
	MaxHeight    float32  `yaml:"max_height"`
	ScaleMin     float32  `yaml:"scale_min"`
	ScaleMax     float32  `yaml:"scale_max"`
	InitialMin   int      `yaml:"initial_min"`
	InitialMax   int      `yaml:"initial_max"`
	RemovalGrace Duration `yaml:"removal_grace"`
	MaxShapes    int      `yaml:"max_shapes"`
	// Panel defaults for newly added shapes.
	DefaultColor string  `yaml:"default_color"`
	DefaultScale float32 `yaml:"default_scale"`
	MinAddScale  float32 `yaml:"min_add_scale"`
	MaxAddScale  float32 `yaml:"max_add_scale"`
}

// Simulation tunes the tick loop and interactions.
type Simulation struct {
	ReapInterval Duration `yaml:"reap_interval"`
	LaunchSpeed  float32  `yaml:"launch_speed"`
	MaxSpin      float32  `yaml:"max_spin"`
	// MaxStep caps the dt fed to physics so a stalled frame cannot tunnel bodies.
	MaxStep Duration `yaml:"max_step"`
}

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Particles: Particles{
			Count: 50,
			TTL:   Duration(time.Second),
			Size:  0.2,
			Color: "#ff69b4",
		},
		Shapes: Shapes{
			Palette:      append([]string(nil), shapes.DefaultPalette...),
			HalfExtent:   5,
			MinHeight:    5,
			MaxHeight:    8,
			ScaleMin:     0.5,
			ScaleMax:     1.0,
			InitialMin:   1,
			InitialMax:   3,
			RemovalGrace: Duration(shapes.DefaultRemovalGrace),
			DefaultColor: "#ff69b4",
			DefaultScale: 1.0,
			MinAddScale:  0.5,
			MaxAddScale:  1.5,
		},
		Simulation: Simulation{
			ReapInterval: Duration(time.Second),
			LaunchSpeed:  8,
			MaxSpin:      3,
			MaxStep:      Duration(100 * time.Millisecond),
		},
	}
}

// Path returns the config path, honoring PathEnv.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path over Default(). A missing file returns the
// defaults; a malformed or invalid one returns an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read playground config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse playground config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every field is in range.
func (c *Config) Validate() error {
	p := c.Particles
	if p.Count <= 0 {
		return fmt.Errorf("%w: particles.count must be positive, got %d", ErrInvalid, p.Count)
	}
	if p.TTL <= 0 {
		return fmt.Errorf("%w: particles.ttl must be positive", ErrInvalid)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: particles.size must be positive, got %v", ErrInvalid, p.Size)
	}
	if p.Color != "" {
		if _, err := shapes.ParseColor(p.Color); err != nil {
			return fmt.Errorf("%w: particles.color: %v", ErrInvalid, err)
		}
	}

	s := c.Shapes
	if len(s.Palette) == 0 {
		return fmt.Errorf("%w: shapes.palette is empty", ErrInvalid)
	}
	for _, col := range s.Palette {
		if _, err := shapes.ParseColor(col); err != nil {
			return fmt.Errorf("%w: shapes.palette: %v", ErrInvalid, err)
		}
	}
	if s.HalfExtent <= 0 {
		return fmt.Errorf("%w: shapes.half_extent must be positive", ErrInvalid)
	}
	if s.MinHeight >= s.MaxHeight {
		return fmt.Errorf("%w: shapes height range invalid: min(%.1f) >= max(%.1f)", ErrInvalid, s.MinHeight, s.MaxHeight)
	}
	if s.ScaleMin <= 0 || s.ScaleMin >= s.ScaleMax {
		return fmt.Errorf("%w: shapes scale range invalid: min(%.2f) max(%.2f)", ErrInvalid, s.ScaleMin, s.ScaleMax)
	}
	if s.InitialMin <= 0 || s.InitialMin > s.InitialMax {
		return fmt.Errorf("%w: shapes initial range invalid: min(%d) max(%d)", ErrInvalid, s.InitialMin, s.InitialMax)
	}
	if s.RemovalGrace <= 0 {
		return fmt.Errorf("%w: shapes.removal_grace must be positive", ErrInvalid)
	}
	if s.MaxShapes < 0 {
		return fmt.Errorf("%w: shapes.max_shapes must be >= 0, got %d", ErrInvalid, s.MaxShapes)
	}
	if minCap := len(shapes.Types) * s.InitialMax; s.MaxShapes > 0 && s.MaxShapes < minCap {
		return fmt.Errorf("%w: shapes.max_shapes %d below the initial population bound %d", ErrInvalid, s.MaxShapes, minCap)
	}
	if _, err := shapes.ParseColor(s.DefaultColor); err != nil {
		return fmt.Errorf("%w: shapes.default_color: %v", ErrInvalid, err)
	}
	if s.MinAddScale <= 0 || s.MinAddScale > s.MaxAddScale {
		return fmt.Errorf("%w: shapes add scale range invalid: min(%.2f) max(%.2f)", ErrInvalid, s.MinAddScale, s.MaxAddScale)
	}
	if s.DefaultScale < s.MinAddScale || s.DefaultScale > s.MaxAddScale {
		return fmt.Errorf("%w: shapes.default_scale %.2f outside [%.2f, %.2f]", ErrInvalid, s.DefaultScale, s.MinAddScale, s.MaxAddScale)
	}

	m := c.Simulation
	if m.ReapInterval <= 0 {
		return fmt.Errorf("%w: simulation.reap_interval must be positive", ErrInvalid)
	}
	if m.LaunchSpeed <= 0 {
		return fmt.Errorf("%w: simulation.launch_speed must be positive", ErrInvalid)
	}
	if m.MaxSpin < 0 {
		return fmt.Errorf("%w: simulation.max_spin must be >= 0", ErrInvalid)
	}
	if m.MaxStep <= 0 {
		return fmt.Errorf("%w: simulation.max_step must be positive", ErrInvalid)
	}
	return nil
}

// ShapeOptions maps the shapes section onto registry options.
func (c *Config) ShapeOptions() shapes.Options {
	s := c.Shapes
	return shapes.Options{
		Palette:      append([]string(nil), s.Palette...),
		HalfExtent:   s.HalfExtent,
		MinHeight:    s.MinHeight,
		MaxHeight:    s.MaxHeight,
		ScaleMin:     s.ScaleMin,
		ScaleMax:     s.ScaleMax,
		InitialMin:   s.InitialMin,
		InitialMax:   s.InitialMax,
		RemovalGrace: s.RemovalGrace.Std(),
		MaxShapes:    s.MaxShapes,
	}
}
