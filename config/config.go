// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all aquarium configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Tank        TankConfig        `yaml:"tank"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Fishing     FishingConfig     `yaml:"fishing"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Toast       ToastConfig       `yaml:"toast"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Terminal    TerminalConfig    `yaml:"terminal"`
	Species     []SpeciesConfig   `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// TankConfig describes the swimmable area inside the window.
// Fish are kept Padding away from every edge, with extra room below the
// water surface and above the sand.
type TankConfig struct {
	Padding       float64 `yaml:"padding"`
	SurfaceMargin float64 `yaml:"surface_margin"`
	FloorMargin   float64 `yaml:"floor_margin"`
}

// BehaviorConfig holds the idle/moving state machine parameters.
type BehaviorConfig struct {
	MinSpeed         float64 `yaml:"min_speed"`          // px/s when a fish starts moving
	MaxSpeed         float64 `yaml:"max_speed"`          // px/s
	MinStateDuration float64 `yaml:"min_state_duration"` // ms
	MaxStateDuration float64 `yaml:"max_state_duration"` // ms
}

// SpawnConfig holds parameters for newly created fish.
type SpawnConfig struct {
	Padding          float64 `yaml:"padding"`            // distance from the window edges
	FloorReserve     float64 `yaml:"floor_reserve"`      // extra room kept above the sand
	MinSpeed         float64 `yaml:"min_speed"`          // px/s
	MaxSpeed         float64 `yaml:"max_speed"`          // px/s
	MinStateDuration float64 `yaml:"min_state_duration"` // ms
	MaxStateDuration float64 `yaml:"max_state_duration"` // ms
}

// FishingConfig holds the catch minigame parameters.
// Per-frame quantities are expressed for a FrameMs-long frame and scaled by
// the real tick duration.
type FishingConfig struct {
	TrackHeight   float64 `yaml:"track_height"`
	ZoneSize      float64 `yaml:"zone_size"`
	TargetSize    float64 `yaml:"target_size"`
	TargetStart   float64 `yaml:"target_start"`
	ZoneStart     float64 `yaml:"zone_start"`
	ProgressStart float64 `yaml:"progress_start"`
	Accel         float64 `yaml:"accel"`        // random-walk perturbation span per frame
	MaxVelocity   float64 `yaml:"max_velocity"` // target speed clamp per frame
	Rise          float64 `yaml:"rise"`         // zone movement while holding
	Fall          float64 `yaml:"fall"`         // zone movement while released
	RateIn        float64 `yaml:"rate_in"`      // progress gained per frame when contained
	RateOut       float64 `yaml:"rate_out"`     // progress lost per frame otherwise
	FrameMs       float64 `yaml:"frame_ms"`
}

// PersistenceConfig holds key-value store settings.
type PersistenceConfig struct {
	Path           string  `yaml:"path"`
	FishKey        string  `yaml:"fish_key"`
	VisitedKey     string  `yaml:"visited_key"`
	SaveIntervalMs float64 `yaml:"save_interval_ms"`
}

// ToastConfig holds notification timing.
type ToastConfig struct {
	VisibleMs float64 `yaml:"visible_ms"`
	FadeMs    float64 `yaml:"fade_ms"`
}

// TelemetryConfig holds stats window and output settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	MetricsFile string  `yaml:"metrics_file"` // prometheus textfile name inside the output dir
}

// TerminalConfig holds settings for the terminal front-end.
type TerminalConfig struct {
	FrameMs   int    `yaml:"frame_ms"`
	HoldMs    int    `yaml:"hold_ms"` // how long one Space key event counts as held
	Sound     bool   `yaml:"sound"`
	LogFile   string `yaml:"log_file"`
	CellWidth int    `yaml:"cell_width"` // tank pixels per terminal column
}

// SpeciesConfig describes how a species is presented.
type SpeciesConfig struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Scale       float64 `yaml:"scale"`
	Color       string  `yaml:"color"` // hex RGB, e.g. "#f2a33a"
	Glyph       string  `yaml:"glyph"` // terminal glyph facing right
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	SpeciesIndex map[string]int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects parameter combinations the simulation cannot run with.
func (c *Config) validate() error {
	b := c.Behavior
	if b.MinSpeed < 0 || b.MaxSpeed < b.MinSpeed {
		return fmt.Errorf("behavior: invalid speed range [%v, %v]", b.MinSpeed, b.MaxSpeed)
	}
	if b.MinStateDuration <= 0 || b.MaxStateDuration < b.MinStateDuration {
		return fmt.Errorf("behavior: invalid state duration range [%v, %v]", b.MinStateDuration, b.MaxStateDuration)
	}
	s := c.Spawn
	if s.MinSpeed < 0 || s.MaxSpeed < s.MinSpeed {
		return fmt.Errorf("spawn: invalid speed range [%v, %v]", s.MinSpeed, s.MaxSpeed)
	}
	if s.MinStateDuration <= 0 || s.MaxStateDuration < s.MinStateDuration {
		return fmt.Errorf("spawn: invalid state duration range [%v, %v]", s.MinStateDuration, s.MaxStateDuration)
	}
	f := c.Fishing
	if f.FrameMs <= 0 {
		return fmt.Errorf("fishing: frame_ms must be positive, got %v", f.FrameMs)
	}
	if f.RateIn <= 0 || f.RateOut <= 0 {
		return fmt.Errorf("fishing: progress rates must be positive")
	}
	if f.ZoneSize > f.TrackHeight || f.TargetSize > f.TrackHeight {
		return fmt.Errorf("fishing: zone and target must fit the %v track", f.TrackHeight)
	}
	if c.Persistence.FishKey == "" {
		return fmt.Errorf("persistence: fish_key must be set")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		if sp.DisplayName == "" {
			c.Species[i].DisplayName = sp.Name
		}
		if sp.Scale == 0 {
			c.Species[i].Scale = 0.15
		}
		c.Derived.SpeciesIndex[sp.Name] = i
	}
}

// SpeciesByName returns the presentation settings for a species.
// Unknown names get a neutral fallback so adapters never have to nil-check.
func (c *Config) SpeciesByName(name string) SpeciesConfig {
	if i, ok := c.Derived.SpeciesIndex[name]; ok {
		return c.Species[i]
	}
	return SpeciesConfig{Name: name, DisplayName: name, Scale: 0.15, Color: "#cccccc", Glyph: "><>"}
}

// WriteYAML writes the configuration to a YAML file.
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
