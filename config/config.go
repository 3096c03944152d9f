// Package config loads, validates and exposes the battle configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mkord/rps-arena/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Morph      MorphConfig      `yaml:"morph"`
	Population PopulationConfig `yaml:"population"`
	Icons      IconsConfig      `yaml:"icons"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // right-side UI panel, excluded from the playfield
}

// ArenaConfig holds the battle square geometry.
type ArenaConfig struct {
	Margin int `yaml:"margin"` // inset from the playfield edges
	Border int `yaml:"border"` // frame thickness in pixels
}

// PhysicsConfig holds integration and collision tuning.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`              // fixed step for headless runs
	MaxFrameDT     float64 `yaml:"max_frame_dt"`    // clamp for windowed frame time
	Restitution    float64 `yaml:"restitution"`     // 1.0 = perfectly elastic
	SeparationBias float64 `yaml:"separation_bias"` // >1 pushes a bit extra apart to prevent re-sticking
	MinSpeed       float64 `yaml:"min_speed"`       // speed floor after collisions, px/s
	CellScale      float64 `yaml:"cell_scale"`      // grid cell = icon width * this
	MinCellSize    int     `yaml:"min_cell_size"`
}

// MorphConfig holds transmutation tuning.
type MorphConfig struct {
	Cooldown float64 `yaml:"cooldown"` // seconds an entity keeps its kind after a morph
}

// PopulationConfig holds spawn parameters.
type PopulationConfig struct {
	PerKind     int     `yaml:"per_kind"`
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	RadiusScale float64 `yaml:"radius_scale"` // collision radius = max(icon dims) * this
	SpawnMargin int     `yaml:"spawn_margin"` // wall clearance beyond the icon half-size
}

// IconSizeStep maps a per-kind population bound to an icon edge length.
type IconSizeStep struct {
	MaxCount int `yaml:"max_count"`
	Size     int `yaml:"size"`
}

// IconsConfig holds the icon sizing policy and per-kind image assets.
type IconsConfig struct {
	DefaultSize int               `yaml:"default_size"`
	Sizes       []IconSizeStep    `yaml:"sizes"`
	Assets      map[string]string `yaml:"assets"`
}

// SizeFor returns the icon edge length for a per-kind population count.
// Steps are checked in ascending max_count order; counts above every
// step fall back to DefaultSize.
func (ic *IconsConfig) SizeFor(perKind int) int {
	for _, step := range ic.Sizes {
		if perKind <= step.MaxCount {
			return step.Size
		}
	}
	return ic.DefaultSize
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	PanelW32   float32 // Screen.PanelWidth as float32
	PlayfieldW int     // screen width minus the side panel
}

var global *Config

// Init loads the process-wide configuration. An empty path keeps the
// embedded defaults. It must run before Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load parses the embedded defaults, overlays the optional user file,
// then validates and fills derived values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decoding over the defaults struct, absent keys keep their default
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded configuration for contract violations.
// It runs before the first tick so bad tunables fail fast.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen: size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.PanelWidth < 0 || c.Screen.PanelWidth >= c.Screen.Width {
		return fmt.Errorf("screen: panel_width %d must be in [0, width)", c.Screen.PanelWidth)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics: dt %g must be positive", c.Physics.DT)
	}
	if c.Physics.MaxFrameDT <= 0 {
		return fmt.Errorf("physics: max_frame_dt %g must be positive", c.Physics.MaxFrameDT)
	}
	if c.Physics.Restitution < 0 {
		return fmt.Errorf("physics: restitution %g must not be negative", c.Physics.Restitution)
	}
	if c.Physics.SeparationBias < 1 {
		return fmt.Errorf("physics: separation_bias %g must be >= 1", c.Physics.SeparationBias)
	}
	if c.Physics.MinSpeed < 0 {
		return fmt.Errorf("physics: min_speed %g must not be negative", c.Physics.MinSpeed)
	}
	if c.Physics.MinCellSize <= 0 {
		return fmt.Errorf("physics: min_cell_size %d must be positive", c.Physics.MinCellSize)
	}
	if c.Population.RadiusScale <= 0 {
		return fmt.Errorf("population: radius_scale %g must be positive", c.Population.RadiusScale)
	}
	// Two touching circles must never sit more than one grid cell apart.
	if c.Physics.CellScale < 2*c.Population.RadiusScale {
		return fmt.Errorf("physics: cell_scale %g must cover an entity diameter (>= %g)",
			c.Physics.CellScale, 2*c.Population.RadiusScale)
	}
	if side := min(c.Screen.Width-c.Screen.PanelWidth, c.Screen.Height) - 2*c.Arena.Margin; side <= 0 {
		return fmt.Errorf("arena: margin %d leaves no interior (side %d)", c.Arena.Margin, side)
	}
	if c.Morph.Cooldown < 0 {
		return fmt.Errorf("morph: cooldown %g must not be negative", c.Morph.Cooldown)
	}
	if c.Population.PerKind <= 0 {
		return fmt.Errorf("population: per_kind %d must be positive", c.Population.PerKind)
	}
	if c.Population.SpeedMin <= 0 || c.Population.SpeedMax < c.Population.SpeedMin {
		return fmt.Errorf("population: speed range [%g, %g] is invalid",
			c.Population.SpeedMin, c.Population.SpeedMax)
	}
	if c.Population.SpawnMargin < 0 {
		return fmt.Errorf("population: spawn_margin %d must not be negative", c.Population.SpawnMargin)
	}
	if c.Icons.DefaultSize <= 0 {
		return fmt.Errorf("icons: default_size %d must be positive", c.Icons.DefaultSize)
	}
	for _, step := range c.Icons.Sizes {
		if step.Size <= 0 {
			return fmt.Errorf("icons: size %d for max_count %d must be positive", step.Size, step.MaxCount)
		}
	}
	for name := range c.Icons.Assets {
		if _, err := components.ParseKind(name); err != nil {
			return fmt.Errorf("icons: assets: %w", err)
		}
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry: stats_window %g must be positive", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived fills the float32 mirrors and the playfield width.
func (c *Config) computeDerived() {
	// SizeFor scans steps in ascending order regardless of file order.
	sort.Slice(c.Icons.Sizes, func(i, j int) bool {
		return c.Icons.Sizes[i].MaxCount < c.Icons.Sizes[j].MaxCount
	})

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.PanelW32 = float32(c.Screen.PanelWidth)
	c.Derived.PlayfieldW = c.Screen.Width - c.Screen.PanelWidth
}

// WriteYAML snapshots the effective configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
