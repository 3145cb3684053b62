// Package config provides configuration loading for the garden simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every static tunable of the garden.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Window  WindowConfig  `yaml:"window"`
	Tick    TickConfig    `yaml:"tick"`
	Growth  GrowthConfig  `yaml:"growth"`
	Goal    GoalConfig    `yaml:"goal"`
	Camera  CameraConfig  `yaml:"camera"`
	Minimap MinimapConfig `yaml:"minimap"`
	Tools   ToolsConfig   `yaml:"tools"`
	Terrain TerrainConfig `yaml:"terrain"`
	Persist PersistConfig `yaml:"persist"`
	Notify  NotifyConfig  `yaml:"notify"`
	Auth    AuthConfig    `yaml:"auth"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// GridConfig sizes the world.
type GridConfig struct {
	Size     int `yaml:"size"`      // cells per side
	CellSize int `yaml:"cell_size"` // pixels per cell
}

// WindowConfig is the initial viewport size in pixels.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TickConfig controls the fixed simulation cadence.
type TickConfig struct {
	IntervalMS int `yaml:"interval_ms"`
	MaxCatchUp int `yaml:"max_catch_up"` // ticks run at most per frame after a stall
}

// GrowthConfig holds the randomized lifecycle ranges, in milliseconds.
type GrowthConfig struct {
	SeedMinMS   int64 `yaml:"seed_min_ms"`
	SeedMaxMS   int64 `yaml:"seed_max_ms"`
	SproutMinMS int64 `yaml:"sprout_min_ms"`
	SproutMaxMS int64 `yaml:"sprout_max_ms"`
	CycleMS     int64 `yaml:"cycle_ms"`
}

// GoalConfig holds the celebration threshold.
type GoalConfig struct {
	Trees int `yaml:"trees"`
}

// CameraConfig tunes panning.
type CameraConfig struct {
	Decay         float64 `yaml:"decay"`          // velocity multiplier per tick
	StopThreshold float64 `yaml:"stop_threshold"` // px/tick below which inertia ends
	WheelStep     float64 `yaml:"wheel_step"`     // px per wheel event
}

// MinimapConfig places the minimap.
type MinimapConfig struct {
	Scale  int `yaml:"scale"` // pixels per grid cell
	Margin int `yaml:"margin"`
}

// ToolsConfig selects tool policies.
type ToolsConfig struct {
	BucketPolicy string `yaml:"bucket_policy"` // "place" or "toggle"
}

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// TerrainConfig drives procedural water generation.
type TerrainConfig struct {
	Policy         string      `yaml:"policy"` // "composite" or "random"
	Lakes          Range       `yaml:"lakes"`
	RandomFeatures Range       `yaml:"random_features"`
	Lake           LakeConfig  `yaml:"lake"`
	River          RiverConfig `yaml:"river"`
	Coast          CoastConfig `yaml:"coast"`
}

// LakeConfig shapes lakes.
type LakeConfig struct {
	RadiusMin   int     `yaml:"radius_min"`
	RadiusMax   int     `yaml:"radius_max"`
	Irregular   bool    `yaml:"irregular"`
	Band        float64 `yaml:"band"`        // radius multiplier stays in [1-band, 1+band]
	NoiseScale  float64 `yaml:"noise_scale"` // frequency of the coastline wobble
	EdgeMargin  int     `yaml:"edge_margin"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// RiverConfig shapes rivers.
type RiverConfig struct {
	WidthMin    int     `yaml:"width_min"`
	WidthMax    int     `yaml:"width_max"`
	Step        float64 `yaml:"step"`
	TurnChance  float64 `yaml:"turn_chance"`
	MaxTurnDeg  float64 `yaml:"max_turn_deg"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// CoastConfig shapes coastlines.
type CoastConfig struct {
	ThicknessMin int     `yaml:"thickness_min"`
	ThicknessMax int     `yaml:"thickness_max"`
	Amplitude    float64 `yaml:"amplitude"`
	Period       float64 `yaml:"period"`
}

// PersistConfig controls saving.
type PersistConfig struct {
	DebounceMS int          `yaml:"debounce_ms"`
	AppName    string       `yaml:"app_name"`
	Slot       string       `yaml:"slot"`
	Remote     RemoteConfig `yaml:"remote"`
}

// RemoteConfig points at the shared REST record.
type RemoteConfig struct {
	URL       string `yaml:"url"`
	RecordID  string `yaml:"record_id"`
	APIKey    string `yaml:"api_key"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// NotifyConfig points at the form endpoint used when the goal is reached.
type NotifyConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// AuthConfig holds the entry PINs. An empty SharedPIN disables shared mode.
type AuthConfig struct {
	LocalPIN  string `yaml:"local_pin"`
	SharedPIN string `yaml:"shared_pin"`
}

// AssetsConfig locates sprite images.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// Bucket policies.
const (
	BucketPlace  = "place"
	BucketToggle = "toggle"
)

// Terrain policies.
const (
	TerrainComposite = "composite"
	TerrainRandom    = "random"
)

// Default returns the embedded defaults. It panics if they do not parse, which
// only happens when defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
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
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Size <= 0 {
		errs = append(errs, fmt.Errorf("grid.size must be positive, got %d", c.Grid.Size))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %d", c.Grid.CellSize))
	}
	if c.Tick.IntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("tick.interval_ms must be positive, got %d", c.Tick.IntervalMS))
	}
	if c.Growth.SeedMinMS < 0 || c.Growth.SeedMaxMS < c.Growth.SeedMinMS {
		errs = append(errs, fmt.Errorf("growth seed range [%d,%d] is invalid", c.Growth.SeedMinMS, c.Growth.SeedMaxMS))
	}
	if c.Growth.SproutMinMS < 0 || c.Growth.SproutMaxMS < c.Growth.SproutMinMS {
		errs = append(errs, fmt.Errorf("growth sprout range [%d,%d] is invalid", c.Growth.SproutMinMS, c.Growth.SproutMaxMS))
	}
	if c.Growth.CycleMS <= 0 {
		errs = append(errs, fmt.Errorf("growth.cycle_ms must be positive, got %d", c.Growth.CycleMS))
	}
	if c.Goal.Trees <= 0 {
		errs = append(errs, fmt.Errorf("goal.trees must be positive, got %d", c.Goal.Trees))
	}
	if c.Camera.Decay <= 0 || c.Camera.Decay >= 1 {
		errs = append(errs, fmt.Errorf("camera.decay must be in (0,1), got %g", c.Camera.Decay))
	}
	if c.Camera.StopThreshold <= 0 {
		errs = append(errs, fmt.Errorf("camera.stop_threshold must be positive, got %g", c.Camera.StopThreshold))
	}
	switch c.Tools.BucketPolicy {
	case BucketPlace, BucketToggle:
	default:
		errs = append(errs, fmt.Errorf("tools.bucket_policy %q is not one of place|toggle", c.Tools.BucketPolicy))
	}
	switch c.Terrain.Policy {
	case TerrainComposite, TerrainRandom:
	default:
		errs = append(errs, fmt.Errorf("terrain.policy %q is not one of composite|random", c.Terrain.Policy))
	}
	if c.Terrain.Lakes.Max < c.Terrain.Lakes.Min || c.Terrain.RandomFeatures.Max < c.Terrain.RandomFeatures.Min {
		errs = append(errs, errors.New("terrain feature count ranges must have max >= min"))
	}
	if c.Terrain.Lake.RadiusMin <= 0 || c.Terrain.Lake.RadiusMax < c.Terrain.Lake.RadiusMin {
		errs = append(errs, fmt.Errorf("terrain.lake radius range [%d,%d] is invalid", c.Terrain.Lake.RadiusMin, c.Terrain.Lake.RadiusMax))
	}
	if c.Terrain.Lake.Band < 0 || c.Terrain.Lake.Band >= 1 {
		errs = append(errs, fmt.Errorf("terrain.lake.band must be in [0,1), got %g", c.Terrain.Lake.Band))
	}
	if c.Terrain.River.WidthMin <= 0 || c.Terrain.River.WidthMax < c.Terrain.River.WidthMin {
		errs = append(errs, fmt.Errorf("terrain.river width range [%d,%d] is invalid", c.Terrain.River.WidthMin, c.Terrain.River.WidthMax))
	}
	if c.Terrain.River.Step <= 0 || c.Terrain.River.Step > 1 {
		errs = append(errs, fmt.Errorf("terrain.river.step must be in (0,1], got %g", c.Terrain.River.Step))
	}
	if c.Terrain.Coast.ThicknessMin <= 0 || c.Terrain.Coast.ThicknessMax < c.Terrain.Coast.ThicknessMin {
		errs = append(errs, fmt.Errorf("terrain.coast thickness range [%d,%d] is invalid", c.Terrain.Coast.ThicknessMin, c.Terrain.Coast.ThicknessMax))
	}
	if c.Persist.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("persist.debounce_ms must not be negative, got %d", c.Persist.DebounceMS))
	}
	if c.Auth.LocalPIN == "" {
		errs = append(errs, errors.New("auth.local_pin must be set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TickInterval returns the simulation tick period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Tick.IntervalMS) * time.Millisecond
}

// DebounceWindow returns the minimum spacing between saves.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Persist.DebounceMS) * time.Millisecond
}

// WorldPixels returns the world edge length in pixels.
func (c *Config) WorldPixels() int {
	return c.Grid.Size * c.Grid.CellSize
}

// Shared reports whether a remote record is configured.
func (r RemoteConfig) Shared() bool {
	return r.URL != "" && r.RecordID != ""
}

// Timeout returns the remote request timeout.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutMS <= 0 {
		return 8 * time.Second
	}
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// WriteYAML encodes the configuration as YAML.
func (c *Config) WriteYAML(path string) error {
	data, err := c.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// MarshalYAMLBytes returns the YAML form of the configuration.
func (c *Config) MarshalYAMLBytes() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
