package globe

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 400, cfg.Points)
	assert.Equal(t, 250.0, cfg.Radius)
	assert.Equal(t, 0.002, cfg.RotationStep)
	assert.Equal(t, 40.0, cfg.Proximity)
	assert.Equal(t, 400.0, cfg.Focal)
	assert.Equal(t, 30, cfg.Stars)

	p, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, "#06b6d4", p.Node.Hex())
	assert.Equal(t, "#020408", p.Background.Hex())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative points", func(c *Config) { c.Points = -1 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"zero focal", func(c *Config) { c.Focal = 0 }},
		{"negative step", func(c *Config) { c.RotationStep = -0.1 }},
		{"negative proximity", func(c *Config) { c.Proximity = -1 }},
		{"negative stars", func(c *Config) { c.Stars = -2 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = 2_000_000_000 }},
		{"edge alpha above one", func(c *Config) { c.EdgeAlpha = 1.5 }},
		{"nan node alpha", func(c *Config) { c.NodeAlpha = math.NaN() }},
		{"nan radius", func(c *Config) { c.Radius = math.NaN() }},
		{"infinite focal", func(c *Config) { c.Focal = math.Inf(1) }},
		{"infinite offset", func(c *Config) { c.OffsetX = math.Inf(-1) }},
		{"nan star scale", func(c *Config) { c.StarScale = math.NaN() }},
		{"negative star scale", func(c *Config) { c.StarScale = -1 }},
		{"negative node radius", func(c *Config) { c.NodeRadius = -0.5 }},
		{"negative edge width", func(c *Config) { c.EdgeWidth = -1 }},
		{"bad colour", func(c *Config) { c.NodeColor = "cyan" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.yaml")
	data := []byte("points: 120\nradius: 90\nedge_color: \"#ff0000\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Points)
	assert.Equal(t, 90.0, cfg.Radius)
	assert.Equal(t, "#ff0000", cfg.EdgeColor)
	assert.Equal(t, 400.0, cfg.Focal, "unset keys keep defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("points: [1, 2"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("focal: -3\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMarshalRoundTrip(t *testing.T) {
	b, err := DefaultConfig().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(b), "rotation_step: 0.002")

	var back Config
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, DefaultConfig(), back)
}

func TestValidateAcceptsBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = MaxFPS
	cfg.StarScale = 0
	cfg.NodeRadius = 0
	cfg.EdgeWidth = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("radius: .nan\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
