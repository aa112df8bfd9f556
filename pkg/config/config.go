// Package config loads and validates YAML render settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Camera holds optional overrides for the scene camera; zero values keep the scene's own
type Camera struct {
	LookFrom      []float64 `yaml:"look_from,omitempty,flow"`
	LookAt        []float64 `yaml:"look_at,omitempty,flow"`
	Up            []float64 `yaml:"up,omitempty,flow"`
	VFov          float64   `yaml:"vfov,omitempty"`
	Aperture      float64   `yaml:"aperture,omitempty"`
	FocusDistance float64   `yaml:"focus_distance,omitempty"`
	ShutterOpen   float64   `yaml:"shutter_open,omitempty"`
	ShutterClose  float64   `yaml:"shutter_close,omitempty"`
}

type Config struct {
	Scene           string  `yaml:"scene"`
	Width           int     `yaml:"width"`
	AspectRatio     float64 `yaml:"aspect_ratio"`     // 0 keeps the scene's aspect ratio
	Height          int     `yaml:"height,omitempty"` // overrides aspect_ratio when set
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        int     `yaml:"max_depth"`
	TileSize        int     `yaml:"tile_size"`
	Workers         int     `yaml:"workers"` // 0 = one per logical CPU
	Seed            int64   `yaml:"seed"`
	Accelerator     string  `yaml:"accelerator"` // "bvh" | "list"
	Output          string  `yaml:"output"`      // .png or .ppm; empty or "-" streams PPM to stdout

	Camera Camera `yaml:"camera,omitempty"`
}

// Default returns the settings used when no file or flag says otherwise
func Default() *Config {
	return &Config{
		Scene:           "random",
		Width:           600,
		AspectRatio:     3.0 / 2.0,
		SamplesPerPixel: 20,
		MaxDepth:        5,
		TileSize:        32,
		Workers:         0,
		Seed:            42,
		Accelerator:     scene.AcceleratorBVH,
		Output:          "",
	}
}

// Load reads a YAML file on top of Default and validates the result
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first setting that cannot produce a render
func (c *Config) Validate() error {
	switch {
	case !slices.Contains(scene.Names(), c.Scene):
		return fmt.Errorf("%w: scene %q is not one of %v", ErrInvalid, c.Scene, scene.Names())
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalid, c.Width)
	case c.Height < 0:
		return fmt.Errorf("%w: height must not be negative, got %d", ErrInvalid, c.Height)
	case c.AspectRatio < 0:
		return fmt.Errorf("%w: aspect_ratio must not be negative, got %g", ErrInvalid, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples_per_pixel must be at least 1, got %d", ErrInvalid, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalid, c.MaxDepth)
	case c.TileSize < 1:
		return fmt.Errorf("%w: tile_size must be at least 1, got %d", ErrInvalid, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	case c.Accelerator != scene.AcceleratorBVH && c.Accelerator != scene.AcceleratorList:
		return fmt.Errorf("%w: accelerator must be %q or %q, got %q",
			ErrInvalid, scene.AcceleratorBVH, scene.AcceleratorList, c.Accelerator)
	}

	vectors := []struct {
		name  string
		value []float64
	}{
		{"camera.look_from", c.Camera.LookFrom},
		{"camera.look_at", c.Camera.LookAt},
		{"camera.up", c.Camera.Up},
	}
	for _, v := range vectors {
		if len(v.value) != 0 && len(v.value) != 3 {
			return fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalid, v.name, len(v.value))
		}
	}

	if c.Camera.VFov < 0 || c.Camera.VFov >= 180 {
		return fmt.Errorf("%w: camera.vfov must be in [0, 180), got %g", ErrInvalid, c.Camera.VFov)
	}
	if c.Camera.Aperture < 0 || c.Camera.FocusDistance < 0 {
		return fmt.Errorf("%w: camera.aperture and camera.focus_distance must not be negative", ErrInvalid)
	}
	if c.Camera.ShutterClose < c.Camera.ShutterOpen {
		return fmt.Errorf("%w: camera.shutter_close %g is before shutter_open %g",
			ErrInvalid, c.Camera.ShutterClose, c.Camera.ShutterOpen)
	}
	return nil
}

func toVec3(v []float64) core.Vec3 {
	if len(v) != 3 {
		return core.Vec3{}
	}
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneOptions converts the camera overrides and seed for scene.New
func (c *Config) SceneOptions() scene.Options {
	aspect := c.AspectRatio
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}

	return scene.Options{
		Seed: c.Seed,
		Camera: geometry.CameraConfig{
			Center:        toVec3(c.Camera.LookFrom),
			LookAt:        toVec3(c.Camera.LookAt),
			Up:            toVec3(c.Camera.Up),
			Width:         c.Width,
			AspectRatio:   aspect,
			VFov:          c.Camera.VFov,
			Aperture:      c.Camera.Aperture,
			FocusDistance: c.Camera.FocusDistance,
			ShutterOpen:   c.Camera.ShutterOpen,
			ShutterClose:  c.Camera.ShutterClose,
		},
	}
}

// ApplySampling writes the render settings into a built scene
func (c *Config) ApplySampling(s *scene.Scene) {
	s.SamplingConfig.Width = c.Width
	if c.Height > 0 {
		s.SamplingConfig.Height = c.Height
	}
	s.SamplingConfig.SamplesPerPixel = c.SamplesPerPixel
	s.SamplingConfig.MaxDepth = c.MaxDepth
	s.Accelerator = c.Accelerator
}

// NewScene builds the configured scene with every override applied
func (c *Config) NewScene() (*scene.Scene, error) {
	s, err := scene.New(c.Scene, c.SceneOptions())
	if err != nil {
		return nil, err
	}
	c.ApplySampling(s)
	return s, nil
}

// RenderConfig returns the tiling and parallelism settings for the renderer
func (c *Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
		Seed:       c.Seed,
	}
}
