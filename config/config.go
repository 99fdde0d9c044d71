// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Text      TextConfig      `yaml:"text"`
	Particles ParticlesConfig `yaml:"particles"`
	Animation AnimationConfig `yaml:"animation"`
	Palette   PaletteConfig   `yaml:"palette"`
	Camera    CameraConfig    `yaml:"camera"`
	Lights    LightsConfig    `yaml:"lights"`
	Fog       FogConfig       `yaml:"fog"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

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

// TextConfig controls glyph rasterization and sampling.
type TextConfig struct {
	Content      string  `yaml:"content"`
	FontPath     string  `yaml:"font_path"`     // Empty = embedded serif bold
	FontSize     float64 `yaml:"font_size"`     // Points at 72 DPI (= pixels)
	CanvasWidth  int     `yaml:"canvas_width"`  // Sampling bitmap width
	CanvasHeight int     `yaml:"canvas_height"` // Sampling bitmap height
	Stride       int     `yaml:"stride"`        // Sample every Nth pixel
	Threshold    int     `yaml:"threshold"`     // Brightness cutoff (0-255)
	PixelScale   float64 `yaml:"pixel_scale"`   // Scene units per pixel
	Jitter       float64 `yaml:"jitter"`        // Full width of x/y jitter
}

// ParticlesConfig holds particle shape parameters.
type ParticlesConfig struct {
	Size          float64 `yaml:"size"`           // Base instance size
	DepthLayers   int     `yaml:"depth_layers"`   // Stacked copies along z
	DepthSpacing  float64 `yaml:"depth_spacing"`  // Distance between layers
	ScatterRadius float64 `yaml:"scatter_radius"` // Scatter cube edge length
	EdgeGoldBias  float64 `yaml:"edge_gold_bias"` // P(gold) on front/back layers
	CoreGoldBias  float64 `yaml:"core_gold_bias"` // P(gold) on interior layers
}

// AnimationConfig holds interpolation parameters.
type AnimationConfig struct {
	TransitionSpeed float64 `yaml:"transition_speed"` // Lerp rate per second
	SpeedVariance   float64 `yaml:"speed_variance"`   // Per-index speed wobble amplitude
	SpeedFrequency  float64 `yaml:"speed_frequency"`  // Per-index speed wobble frequency
	RotationRateX   float64 `yaml:"rotation_rate_x"`
	RotationRateY   float64 `yaml:"rotation_rate_y"`
	SettleDistance  float64 `yaml:"settle_distance"` // Telemetry only: distance counted as settled
}

// PaletteConfig holds hex colors.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Gold       string `yaml:"gold"`
	WhiteGold  string `yaml:"white_gold"`
	Emerald    string `yaml:"emerald"`
	Glow       string `yaml:"glow"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance          float64 `yaml:"distance"`
	FOV               float64 `yaml:"fov"`
	MinDistance       float64 `yaml:"min_distance"`
	MaxDistance       float64 `yaml:"max_distance"`
	AutoRotateSpeed   float64 `yaml:"auto_rotate_speed"` // 1.0 = one orbit per 60s
	Damping           float64 `yaml:"damping"`
	RotateSensitivity float64 `yaml:"rotate_sensitivity"` // Radians per pixel of drag
	ZoomStep          float64 `yaml:"zoom_step"`
}

// LightsConfig holds the decorative light rig.
type LightsConfig struct {
	Ambient AmbientLightConfig `yaml:"ambient"`
	Point   PointLightConfig   `yaml:"point"`
	Spots   []SpotLightConfig  `yaml:"spots"`
}

// AmbientLightConfig holds ambient light settings.
type AmbientLightConfig struct {
	Color     string  `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

// PointLightConfig holds the moving point light. Its position is
// base + (sin(t*freq_x)*amp_x, cos(t*freq_y)*amp_y, 0).
type PointLightConfig struct {
	Color     string     `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Distance  float64    `yaml:"distance"`
	Base      [3]float64 `yaml:"base"`
	AmpX      float64    `yaml:"amp_x"`
	FreqX     float64    `yaml:"freq_x"`
	AmpY      float64    `yaml:"amp_y"`
	FreqY     float64    `yaml:"freq_y"`
}

// SpotLightConfig holds a static spot light.
type SpotLightConfig struct {
	Color     string     `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Position  [3]float64 `yaml:"position"`
}

// FogConfig holds linear fog distances.
type FogConfig struct {
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// HeadlessConfig holds headless run behavior.
type HeadlessConfig struct {
	ToggleEvery float64 `yaml:"toggle_every"` // Seconds between automatic state toggles (0 = never)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow     float64 `yaml:"stats_window"`     // Seconds between frame stat samples
	PerfWindow      int     `yaml:"perf_window"`      // Frames averaged by the perf collector
	SettleThreshold float64 `yaml:"settle_threshold"` // Settled fraction that completes a transition
	SpikeFactor     float64 `yaml:"spike_factor"`     // Max/average frame time ratio reported as a spike
	SpikeHistory    int     `yaml:"spike_history"`    // Stat windows averaged for spike detection
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32
	ScreenH32  float32
	Background color.RGBA
	Gold       color.RGBA
	WhiteGold  color.RGBA
	Emerald    color.RGBA
	Glow       color.RGBA
	Ambient    color.RGBA
	Point      color.RGBA
	Spots      []color.RGBA
	FrameDT    float64 // 1 / TargetFPS
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values the generator or loop cannot work with.
func (c *Config) validate() error {
	switch {
	case c.Text.Stride < 1:
		return fmt.Errorf("text.stride must be >= 1, got %d", c.Text.Stride)
	case c.Text.Threshold < 0 || c.Text.Threshold > 255:
		return fmt.Errorf("text.threshold must be in [0, 255], got %d", c.Text.Threshold)
	case c.Particles.DepthLayers < 1:
		return fmt.Errorf("particles.depth_layers must be >= 1, got %d", c.Particles.DepthLayers)
	case c.Screen.TargetFPS < 1:
		return fmt.Errorf("screen.target_fps must be >= 1, got %d", c.Screen.TargetFPS)
	case c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("camera.min_distance %.2f exceeds max_distance %.2f", c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Telemetry.SettleThreshold <= 0 || c.Telemetry.SettleThreshold > 1:
		return fmt.Errorf("telemetry.settle_threshold must be in (0, 1], got %.2f", c.Telemetry.SettleThreshold)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FrameDT = 1.0 / float64(c.Screen.TargetFPS)

	colors := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"palette.background", c.Palette.Background, &c.Derived.Background},
		{"palette.gold", c.Palette.Gold, &c.Derived.Gold},
		{"palette.white_gold", c.Palette.WhiteGold, &c.Derived.WhiteGold},
		{"palette.emerald", c.Palette.Emerald, &c.Derived.Emerald},
		{"palette.glow", c.Palette.Glow, &c.Derived.Glow},
		{"lights.ambient.color", c.Lights.Ambient.Color, &c.Derived.Ambient},
		{"lights.point.color", c.Lights.Point.Color, &c.Derived.Point},
	}
	for _, col := range colors {
		rgba, err := ParseHex(col.hex)
		if err != nil {
			return fmt.Errorf("%s: %w", col.name, err)
		}
		*col.dst = rgba
	}

	c.Derived.Spots = make([]color.RGBA, len(c.Lights.Spots))
	for i, spot := range c.Lights.Spots {
		rgba, err := ParseHex(spot.Color)
		if err != nil {
			return fmt.Errorf("lights.spots[%d].color: %w", i, err)
		}
		c.Derived.Spots[i] = rgba
	}
	return nil
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
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
