package conway

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loadable from YAML. Zero or
// missing fields fall back to DefaultConfig values, because LoadConfig
// unmarshals on top of the defaults.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	View       ViewConfig       `yaml:"view"`
	Projection ProjectionConfig `yaml:"projection"`
	Theme      ThemeConfig      `yaml:"theme"`

	// Rule is the B/S rulestring stepping the world.
	Rule string `yaml:"rule"`

	// GensPerSec is how many generations the updater targets per second
	// while running.
	GensPerSec float64 `yaml:"generations_per_second"`

	// FontPath names an optional TTF for the HUD. Empty selects the
	// built-in bitmap face.
	FontPath string `yaml:"font"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type ViewConfig struct {
	// Zoom is the starting zoom factor. Larger values show more of the
	// grid.
	Zoom float64 `yaml:"zoom"`

	// ZoomMin and ZoomMax clamp user zooming. They are this layer's
	// guarantee that the projection below never sees a non-positive
	// zoom.
	ZoomMin float64 `yaml:"zoom_min"`
	ZoomMax float64 `yaml:"zoom_max"`

	// ZoomSpeed scales one wheel notch: each notch multiplies zoom by
	// (1 + ZoomSpeed).
	ZoomSpeed float64 `yaml:"zoom_speed"`

	// TweenSeconds is how long zoom changes take to ease in.
	TweenSeconds float64 `yaml:"tween_seconds"`
}

type ProjectionConfig struct {
	// Mode is "grid-normalized" or "raw-scaled".
	Mode  string  `yaml:"mode"`
	Depth float64 `yaml:"depth"`
}

// Projection translates the config into a Projection value.
func (pc ProjectionConfig) Projection() (Projection, error) {
	mode, err := ParseProjectionMode(pc.Mode)
	if err != nil {
		return Projection{}, err
	}
	return Projection{Mode: mode, Depth: pc.Depth}, nil
}

type ThemeConfig struct {
	Background ColorConfig `yaml:"background"`
	Cell       ColorConfig `yaml:"cell"`
	GridLine   ColorConfig `yaml:"grid_line"`
}

type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA converts the config color to an image/color value.
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// DefaultConfig returns the shipped configuration: the classic rule on a
// 600x600 window with the teal background.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     RefPixelWidth,
			Height:    RefPixelHeight,
			Title:     "Conway's Game of Life",
			Resizable: true,
		},
		View: ViewConfig{
			Zoom:         10,
			ZoomMin:      0.25,
			ZoomMax:      100,
			ZoomSpeed:    0.1,
			TweenSeconds: 0.15,
		},
		Projection: ProjectionConfig{
			Mode:  ModeGridNormalized.String(),
			Depth: DefaultDepth,
		},
		Theme: ThemeConfig{
			Background: ColorConfig{R: 51, G: 77, B: 77, A: 255},
			Cell:       ColorConfig{R: 230, G: 230, B: 230, A: 255},
			GridLine:   ColorConfig{R: 255, G: 255, B: 255, A: 40},
		},
		Rule:       "B3/S23",
		GensPerSec: 10,
	}
}

// LoadConfig reads a YAML config file on top of the defaults, so partial
// files only override what they mention.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("conway: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("conway: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("conway: write config: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("conway: encode config: %w", err)
	}
	return enc.Close()
}

// Validate rejects configurations the rest of the program cannot honor.
func (c Config) Validate() error {
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("conway: config window %dx%d: need at least 1x1", c.Window.Width, c.Window.Height)
	}
	if c.View.ZoomMin <= 0 {
		return fmt.Errorf("conway: config zoom_min %g: must be positive", c.View.ZoomMin)
	}
	if c.View.ZoomMax < c.View.ZoomMin {
		return fmt.Errorf("conway: config zoom_max %g below zoom_min %g", c.View.ZoomMax, c.View.ZoomMin)
	}
	if c.View.Zoom < c.View.ZoomMin || c.View.Zoom > c.View.ZoomMax {
		return fmt.Errorf("conway: config zoom %g outside [%g, %g]", c.View.Zoom, c.View.ZoomMin, c.View.ZoomMax)
	}
	if c.View.ZoomSpeed <= 0 {
		return fmt.Errorf("conway: config zoom_speed %g: must be positive", c.View.ZoomSpeed)
	}
	if c.View.TweenSeconds < 0 {
		return fmt.Errorf("conway: config tween_seconds %g: must not be negative", c.View.TweenSeconds)
	}
	if c.GensPerSec <= 0 {
		return fmt.Errorf("conway: config generations_per_second %g: must be positive", c.GensPerSec)
	}
	if _, err := ParseRule(c.Rule); err != nil {
		return err
	}
	if _, err := c.Projection.Projection(); err != nil {
		return err
	}
	return nil
}
