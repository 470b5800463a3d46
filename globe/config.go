package globe

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid globe config")

// Config fixes the geometry and look of the globe. It is copied into the
// render loop at construction and never mutated afterwards.
type Config struct {
	Radius       float64 `yaml:"radius"`
	Points       int     `yaml:"points"`
	RotationStep float64 `yaml:"rotation_step"` // radians per frame
	Proximity    float64 `yaml:"proximity"`     // edge threshold, strict <
	Focal        float64 `yaml:"focal"`

	Stars      int     `yaml:"stars"`
	StarScale  float64 `yaml:"star_scale"`
	StarAlpha  float64 `yaml:"star_alpha"`
	StarSpeedX float64 `yaml:"star_speed_x"`
	StarSpeedY float64 `yaml:"star_speed_y"`

	NodeRadius float64 `yaml:"node_radius"`
	NodeAlpha  float64 `yaml:"node_alpha"`
	EdgeAlpha  float64 `yaml:"edge_alpha"`
	EdgeWidth  float64 `yaml:"edge_width"`

	// Globe centre relative to the viewport centre.
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`

	Background string `yaml:"background"`
	StarColor  string `yaml:"star_color"`
	NodeColor  string `yaml:"node_color"`
	EdgeColor  string `yaml:"edge_color"`

	FPS int `yaml:"fps"`
}

// DefaultConfig returns the stock globe: 400 points on a radius 250 sphere.
func DefaultConfig() Config {
	return Config{
		Radius:       250,
		Points:       400,
		RotationStep: 0.002,
		Proximity:    40,
		Focal:        400,

		Stars:      30,
		StarScale:  2,
		StarAlpha:  0.2,
		StarSpeedX: 0.5,
		StarSpeedY: 0.3,

		NodeRadius: 1.5,
		NodeAlpha:  0.8,
		EdgeAlpha:  0.15,
		EdgeWidth:  0.5,

		OffsetX: 100,

		Background: "#020408",
		StarColor:  "#0e7490",
		NodeColor:  "#06b6d4",
		EdgeColor:  "#06b6d4",

		FPS: 60,
	}
}

// Palette holds the parsed colours of a Config.
type Palette struct {
	Background, Star, Node, Edge colorful.Color
}

// Palette parses the hex colours.
func (c Config) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", c.Background, &p.Background},
		{"star_color", c.StarColor, &p.Star},
		{"node_color", c.NodeColor, &p.Node},
		{"edge_color", c.EdgeColor, &p.Edge},
	}
	for _, f := range fields {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, f.name, f.hex, err)
		}
		*f.dst = col
	}
	return p, nil
}

// MaxFPS bounds the host tick rate; faster tickers would round to a zero
// interval.
const MaxFPS = 1000

// Validate checks ranges and colours.
func (c Config) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"radius", c.Radius},
		{"rotation_step", c.RotationStep},
		{"proximity", c.Proximity},
		{"focal", c.Focal},
		{"star_scale", c.StarScale},
		{"star_alpha", c.StarAlpha},
		{"star_speed_x", c.StarSpeedX},
		{"star_speed_y", c.StarSpeedY},
		{"node_radius", c.NodeRadius},
		{"node_alpha", c.NodeAlpha},
		{"edge_alpha", c.EdgeAlpha},
		{"edge_width", c.EdgeWidth},
		{"offset_x", c.OffsetX},
		{"offset_y", c.OffsetY},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}

	switch {
	case c.Points < 0:
		return fmt.Errorf("%w: points must be >= 0, got %d", ErrInvalidConfig, c.Points)
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius must be > 0, got %g", ErrInvalidConfig, c.Radius)
	case c.Focal <= 0:
		return fmt.Errorf("%w: focal must be > 0, got %g", ErrInvalidConfig, c.Focal)
	case c.RotationStep < 0:
		return fmt.Errorf("%w: rotation_step must be >= 0, got %g", ErrInvalidConfig, c.RotationStep)
	case c.Proximity < 0:
		return fmt.Errorf("%w: proximity must be >= 0, got %g", ErrInvalidConfig, c.Proximity)
	case c.Stars < 0:
		return fmt.Errorf("%w: stars must be >= 0, got %d", ErrInvalidConfig, c.Stars)
	case c.StarScale < 0:
		return fmt.Errorf("%w: star_scale must be >= 0, got %g", ErrInvalidConfig, c.StarScale)
	case c.NodeRadius < 0:
		return fmt.Errorf("%w: node_radius must be >= 0, got %g", ErrInvalidConfig, c.NodeRadius)
	case c.EdgeWidth < 0:
		return fmt.Errorf("%w: edge_width must be >= 0, got %g", ErrInvalidConfig, c.EdgeWidth)
	case c.FPS <= 0 || c.FPS > MaxFPS:
		return fmt.Errorf("%w: fps must be within [1,%d], got %d", ErrInvalidConfig, MaxFPS, c.FPS)
	}
	for _, f := range floats {
		if strings.HasSuffix(f.name, "_alpha") && (f.v < 0 || f.v > 1) {
			return fmt.Errorf("%w: %s must be within [0,1], got %g", ErrInvalidConfig, f.name, f.v)
		}
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
