// Package config provides configuration loading and access for the animation.
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

// Config holds all animation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Tree      TreeConfig      `yaml:"tree"`
	Growth    GrowthConfig    `yaml:"growth"`
	Hearts    HeartsConfig    `yaml:"hearts"`
	Intro     IntroConfig     `yaml:"intro"`
	Text      TextConfig      `yaml:"text"`
	Audio     AudioConfig     `yaml:"audio"`
	Reveal    RevealConfig    `yaml:"reveal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	Background string `yaml:"background"` // hex color
}

// PhysicsConfig holds the fixed simulation step.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// TreeConfig holds branch generator parameters.
type TreeConfig struct {
	Depth            int     `yaml:"depth"`
	TrunkLength      float64 `yaml:"trunk_length"`
	TrunkWidth       float64 `yaml:"trunk_width"`
	BranchAngle      float64 `yaml:"branch_angle"`       // radians between parent and child
	LengthDecay      float64 `yaml:"length_decay"`       // child length = parent * this
	WidthDecay       float64 `yaml:"width_decay"`        // child width = parent * this
	FullnessMinDepth int     `yaml:"fullness_min_depth"` // fullness branch only above this depth
	FullnessLength   float64 `yaml:"fullness_length"`    // fullness branch length relative to a child
	FullnessJitter   float64 `yaml:"fullness_jitter"`    // full angular spread of the fullness branch
	BaseOffset       float64 `yaml:"base_offset"`        // tree base distance above the bottom edge
	ColorBase        []int   `yaml:"color_base"`         // RGB gradient at depth 0
	ColorStep        []int   `yaml:"color_step"`         // RGB subtracted per remaining depth
}

// GrowthConfig holds growth animator parameters.
type GrowthConfig struct {
	Increment float64 `yaml:"increment"` // progress added per tick
	Margin    float64 `yaml:"margin"`    // extra progress past the last level before completion
}

// HeartsConfig holds particle system parameters.
type HeartsConfig struct {
	Max           int      `yaml:"max"`
	SpawnEvery    int      `yaml:"spawn_every"` // frames between steady-state spawns
	BurstCount    int      `yaml:"burst_count"`
	BurstInterval float64  `yaml:"burst_interval"` // seconds between burst spawns
	SpawnSpread   float64  `yaml:"spawn_spread"`   // horizontal spread at the tree base
	CurveScale    float64  `yaml:"curve_scale"`
	CurveLift     float64  `yaml:"curve_lift"` // heart center height above the tree base
	TargetJitter  float64  `yaml:"target_jitter"`
	SizeMin       float64  `yaml:"size_min"`
	SizeMax       float64  `yaml:"size_max"`
	BurstSpeedMin float64  `yaml:"burst_speed_min"`
	BurstSpeedMax float64  `yaml:"burst_speed_max"`
	BurstSpread   float64  `yaml:"burst_spread"` // radians around straight up
	Spring        float64  `yaml:"spring"`
	Damping       float64  `yaml:"damping"`
	BloomDistance float64  `yaml:"bloom_distance"`
	FadeIn        float64  `yaml:"fade_in"`    // alpha per frame while growing
	BloomFade     float64  `yaml:"bloom_fade"` // alpha per frame while blooming
	FloatLife     float64  `yaml:"float_life"` // seconds a floating heart lives (0 = forever)
	FadeOut       float64  `yaml:"fade_out"`   // alpha per frame once life runs out
	EvictOldest   bool     `yaml:"evict_oldest"`
	Palette       []string `yaml:"palette"` // hex colors
}

// IntroConfig holds intro sequencer parameters.
type IntroConfig struct {
	TriggerTimeout float64 `yaml:"trigger_timeout"` // seconds before auto start
	Prompt         string  `yaml:"prompt"`
}

// TextConfig holds text reveal parameters.
type TextConfig struct {
	Lines        []string `yaml:"lines"`
	LineDelay    float64  `yaml:"line_delay"`
	FadeDuration float64  `yaml:"fade_duration"`
	FontSize     int      `yaml:"font_size"`
	Top          float64  `yaml:"top"` // y of the first line
	Color        string   `yaml:"color"`
}

// AudioConfig holds background music parameters.
type AudioConfig struct {
	Path   string  `yaml:"path"` // empty disables music
	Volume float64 `yaml:"volume"`
}

// RevealConfig holds age reveal page parameters.
type RevealConfig struct {
	Number       string  `yaml:"number"`
	NewNumber    string  `yaml:"new_number"`
	Subtitle     string  `yaml:"subtitle"`
	Button       string  `yaml:"button"`
	BurningLabel string  `yaml:"burning_label"`
	BurnDelay    float64 `yaml:"burn_delay"` // seconds
	BurnColor    string  `yaml:"burn_color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32      // Physics.DT as float32
	Background  color.RGBA   // parsed Screen.Background
	Palette     []color.RGBA // parsed Hearts.Palette
	TextColor   color.RGBA   // parsed Text.Color
	BurnColor   color.RGBA   // parsed Reveal.BurnColor
	TicksPerSec float64      // 1 / Physics.DT
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
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
		// Unmarshal into same struct - only overwrites fields present in file
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

// validate rejects values the animation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	case c.Tree.Depth < 0:
		return fmt.Errorf("tree.depth must be non-negative, got %d", c.Tree.Depth)
	case c.Tree.LengthDecay <= 0 || c.Tree.LengthDecay >= 1:
		return fmt.Errorf("tree.length_decay must be in (0, 1), got %v", c.Tree.LengthDecay)
	case c.Tree.WidthDecay <= 0 || c.Tree.WidthDecay >= 1:
		return fmt.Errorf("tree.width_decay must be in (0, 1), got %v", c.Tree.WidthDecay)
	case c.Growth.Increment <= 0:
		return fmt.Errorf("growth.increment must be positive, got %v", c.Growth.Increment)
	case c.Hearts.Max < 0:
		return fmt.Errorf("hearts.max must be non-negative, got %d", c.Hearts.Max)
	case c.Hearts.SpawnEvery < 1:
		return fmt.Errorf("hearts.spawn_every must be at least 1, got %d", c.Hearts.SpawnEvery)
	case len(c.Tree.ColorBase) != 3 || len(c.Tree.ColorStep) != 3:
		return fmt.Errorf("tree.color_base and tree.color_step need 3 components")
	case len(c.Hearts.Palette) == 0:
		return fmt.Errorf("hearts.palette must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	var err error
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.TicksPerSec = 1 / c.Physics.DT

	if c.Derived.Background, err = ParseHex(c.Screen.Background); err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	if c.Derived.TextColor, err = ParseHex(c.Text.Color); err != nil {
		return fmt.Errorf("text.color: %w", err)
	}
	if c.Derived.BurnColor, err = ParseHex(c.Reveal.BurnColor); err != nil {
		return fmt.Errorf("reveal.burn_color: %w", err)
	}

	c.Derived.Palette = make([]color.RGBA, len(c.Hearts.Palette))
	for i, h := range c.Hearts.Palette {
		if c.Derived.Palette[i], err = ParseHex(h); err != nil {
			return fmt.Errorf("hearts.palette[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" into an opaque or translucent color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
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
