package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "random", c.Scene)
	assert.Equal(t, 600, c.Width)
	assert.Equal(t, 20, c.SamplesPerPixel)
	assert.Equal(t, 5, c.MaxDepth)
	assert.Equal(t, int64(42), c.Seed)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	c := Default()
	c.Scene = "two-spheres"
	c.Width = 320
	c.Height = 200
	c.Accelerator = scene.AcceleratorList
	c.Output = "out.png"
	c.Camera.LookFrom = []float64{1, 2, 3}
	c.Camera.VFov = 35
	c.Camera.ShutterClose = 0.5

	require.NoError(t, Save(path, c))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	yamlText := "scene: spheregrid\nsamples_per_pixel: 4\ncamera:\n  look_at: [0, 1, 0]\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spheregrid", c.Scene)
	assert.Equal(t, 4, c.SamplesPerPixel)
	assert.Equal(t, []float64{0, 1, 0}, c.Camera.LookAt)
	assert.Equal(t, Default().Width, c.Width)
	assert.Equal(t, Default().MaxDepth, c.MaxDepth)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [not a number\n"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("max_depth: -1\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, true},
		{"scene aspect ratio", func(c *Config) { c.AspectRatio = 0 }, true},
		{"unknown scene", func(c *Config) { c.Scene = "cornell" }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, false},
		{"negative aspect", func(c *Config) { c.AspectRatio = -1.5 }, false},
		{"no samples", func(c *Config) { c.SamplesPerPixel = 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }, false},
		{"negative workers", func(c *Config) { c.Workers = -2 }, false},
		{"unknown accelerator", func(c *Config) { c.Accelerator = "kdtree" }, false},
		{"short vector", func(c *Config) { c.Camera.Up = []float64{0, 1} }, false},
		{"vfov too wide", func(c *Config) { c.Camera.VFov = 180 }, false},
		{"negative aperture", func(c *Config) { c.Camera.Aperture = -0.1 }, false},
		{"shutter reversed", func(c *Config) { c.Camera.ShutterOpen = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestNewScene_AppliesOverrides(t *testing.T) {
	c := Default()
	c.Scene = "two-spheres"
	c.Width = 60
	c.SamplesPerPixel = 3
	c.MaxDepth = 2
	c.Accelerator = scene.AcceleratorList
	c.Camera.LookFrom = []float64{0, 5, 10}
	c.Camera.VFov = 30

	s, err := c.NewScene()
	require.NoError(t, err)
	assert.Equal(t, scene.SamplingConfig{Width: 60, Height: 40, SamplesPerPixel: 3, MaxDepth: 2}, s.SamplingConfig)
	assert.Equal(t, scene.AcceleratorList, s.Accelerator)
	assert.Equal(t, core.NewVec3(0, 5, 10), s.CameraConfig.Center)
	assert.Equal(t, 30.0, s.CameraConfig.VFov)
	// Unset overrides keep the scene's camera
	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up)
}

func TestNewScene_ExplicitHeight(t *testing.T) {
	c := Default()
	c.Width = 100
	c.Height = 30

	s, err := c.NewScene()
	require.NoError(t, err)
	assert.Equal(t, 100, s.SamplingConfig.Width)
	assert.Equal(t, 30, s.SamplingConfig.Height)
	assert.InDelta(t, 100.0/30.0, s.CameraConfig.AspectRatio, 1e-12)
}

func TestRenderConfig(t *testing.T) {
	c := Default()
	c.TileSize = 16
	c.Workers = 3
	c.Seed = 7

	rc := c.RenderConfig()
	assert.Equal(t, 16, rc.TileSize)
	assert.Equal(t, 3, rc.NumWorkers)
	assert.Equal(t, int64(7), rc.Seed)
}
