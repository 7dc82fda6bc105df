// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned (wrapped) when a loaded configuration cannot drive the scene.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Scene     SceneConfig     `yaml:"scene"`
	Ambient   ClassConfig     `yaml:"ambient"`
	Ornaments ClassConfig     `yaml:"ornaments"`
	Filler    ClassConfig     `yaml:"filler"`
	Gifts     GiftsConfig     `yaml:"gifts"`
	Snow      SnowConfig      `yaml:"snow"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // Clear color (hex)
}

// SceneConfig holds the shared geometry of both arrangements.
type SceneConfig struct {
	ScatterRadius  float64 `yaml:"scatter_radius"`   // Radius of the scattered cloud
	TreeHeight     float64 `yaml:"tree_height"`      // Cone height, centered on y=0
	TreeRadiusBase float64 `yaml:"tree_radius_base"` // Cone radius at its base
	TopperSize     float64 `yaml:"topper_size"`      // Star topper radius
	Seed           int64   `yaml:"seed"`             // RNG seed (0 = time-based)
}

// ClassConfig holds per-class element counts.
type ClassConfig struct {
	Count int `yaml:"count"`
}

// GiftsConfig holds gift generation and interaction parameters.
type GiftsConfig struct {
	Count              int     `yaml:"count"`
	MaxAttempts        int     `yaml:"max_attempts"`         // Placement retry budget per gift
	CollisionSafety    float64 `yaml:"collision_safety"`     // Footprint radius multiplier
	StackedMin         int     `yaml:"stacked_min"`          // Minimum gifts stacked at the base
	StackedExtra       int     `yaml:"stacked_extra"`        // Random extra stacked gifts [0, extra)
	StackedRadiusMin   float64 `yaml:"stacked_radius_min"`   // Inner radius of the base ring
	StackedRadiusSpan  float64 `yaml:"stacked_radius_span"`  // Width of the base ring
	SurfaceHeightLimit float64 `yaml:"surface_height_limit"` // Max height fraction for surface gifts
	SurfaceOffsetScale float64 `yaml:"surface_offset_scale"` // Outward push as a fraction of half-extent
	OpenDelayMS        int     `yaml:"open_delay_ms"`        // Delay before the card is revealed
}

// SnowConfig holds fall simulator parameters.
type SnowConfig struct {
	Count      int     `yaml:"count"`
	Size       float64 `yaml:"size"`
	Speed      float64 `yaml:"speed"`
	WindX      float64 `yaml:"wind_x"`
	WindZ      float64 `yaml:"wind_z"`
	Bound      float64 `yaml:"bound"`       // Vertical wrap span
	Wrap       float64 `yaml:"wrap"`        // Horizontal half-extent for X/Z wrap
	ConeBuffer float64 `yaml:"cone_buffer"` // Distance kept outside the cone surface
	Color      string  `yaml:"color"`       // Flake tint (hex)
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Fovy            float64 `yaml:"fovy"`
	Distance        float64 `yaml:"distance"`
	Height          float64 `yaml:"height"`
	MinDistance     float64 `yaml:"min_distance"`
	MaxDistance     float64 `yaml:"max_distance"`
	MinPolar        float64 `yaml:"min_polar"`
	MaxPolar        float64 `yaml:"max_polar"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"` // Radians per second in formation mode
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Frames averaged by the perf collector
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background color.RGBA
	SnowColor  color.RGBA
	ScreenW32  float32
	ScreenH32  float32
	TotalCount int // Elements driven by the CPU morph engine
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
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded default configuration without validation.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that describe an impossible scene.
func (c *Config) Validate() error {
	checks := []struct {
		ok    bool
		field string
	}{
		{c.Scene.ScatterRadius > 0, "scene.scatter_radius"},
		{c.Scene.TreeHeight > 0, "scene.tree_height"},
		{c.Scene.TreeRadiusBase > 0, "scene.tree_radius_base"},
		{c.Ambient.Count >= 0, "ambient.count"},
		{c.Ornaments.Count >= 0, "ornaments.count"},
		{c.Filler.Count >= 0, "filler.count"},
		{c.Gifts.Count >= 0, "gifts.count"},
		{c.Gifts.MaxAttempts >= 50, "gifts.max_attempts"},
		{c.Gifts.CollisionSafety > 0, "gifts.collision_safety"},
		{c.Gifts.StackedMin >= 0 && c.Gifts.StackedExtra >= 0, "gifts.stacked_min"},
		{c.Gifts.SurfaceHeightLimit > 0 && c.Gifts.SurfaceHeightLimit <= 1, "gifts.surface_height_limit"},
		{c.Gifts.OpenDelayMS >= 0, "gifts.open_delay_ms"},
		{c.Snow.Count >= 0, "snow.count"},
		{c.Snow.Bound > 0, "snow.bound"},
		{c.Snow.Wrap > 0, "snow.wrap"},
		{c.Camera.MinDistance > 0 && c.Camera.MinDistance <= c.Camera.MaxDistance, "camera.min_distance"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, ch.field)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	bg, err := ParseHex(c.Screen.Background)
	if err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	snow, err := ParseHex(c.Snow.Color)
	if err != nil {
		return fmt.Errorf("snow.color: %w", err)
	}
	c.Derived.Background = bg
	c.Derived.SnowColor = snow
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.TotalCount = c.Ambient.Count + c.Ornaments.Count + c.Filler.Count
	return nil
}

// ParseHex parses a "#RRGGBB" string into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, s)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
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
