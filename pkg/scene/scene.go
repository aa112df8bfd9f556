package scene

import (
	"fmt"

	"github.com/df07/go-offline-pathtracer/pkg/geometry"
)

// Accelerator names accepted by Scene.Accelerator
const (
	AcceleratorBVH  = "bvh"
	AcceleratorList = "list"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene, in insertion order
	Time0, Time1   float64          // Shutter window used to bound moving shapes
	SamplingConfig SamplingConfig
	Accelerator    string         // AcceleratorBVH (default) or AcceleratorList
	Root           geometry.Shape // Set by Preprocess; what rays are traced against
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the image size and quality used when nothing overrides it
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           600,
		Height:          400,
		SamplesPerPixel: 20,
		MaxDepth:        5,
	}
}

// Preprocess builds the acceleration structure over the scene's shapes.
// It must run before rendering and after the last shape is added.
func (s *Scene) Preprocess() error {
	switch s.Accelerator {
	case "", AcceleratorBVH:
		bvh, err := geometry.NewBVH(s.Shapes, s.Time0, s.Time1)
		if err != nil {
			return fmt.Errorf("building BVH: %w", err)
		}
		s.Root = bvh
	case AcceleratorList:
		if len(s.Shapes) == 0 {
			return fmt.Errorf("building list: %w", geometry.ErrEmptyScene)
		}
		s.Root = geometry.NewHitableList(s.Shapes)
	default:
		return fmt.Errorf("unknown accelerator %q", s.Accelerator)
	}
	return nil
}

// SetCamera rebuilds the camera from config
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// BVHStats reports the acceleration structure built by Preprocess, if it is a BVH
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	bvh, ok := s.Root.(*geometry.BVH)
	if !ok {
		return geometry.BVHStats{}, false
	}
	return bvh.Stats(), true
}

// newScene wires a camera, shapes and shutter window into a scene.
// The camera aspect ratio follows the sampling config so pixels stay square.
func newScene(cameraConfig geometry.CameraConfig, sampling SamplingConfig, opts Options, shapes []geometry.Shape) *Scene {
	cameraConfig = geometry.MergeCameraConfig(cameraConfig, opts.Camera)
	if cameraConfig.Width > 0 && cameraConfig.AspectRatio > 0 {
		sampling.Width = cameraConfig.Width
		sampling.Height = int(float64(cameraConfig.Width) / cameraConfig.AspectRatio)
	}

	s := &Scene{
		Shapes:         shapes,
		Time0:          cameraConfig.ShutterOpen,
		Time1:          cameraConfig.ShutterClose,
		SamplingConfig: sampling,
		Accelerator:    AcceleratorBVH,
	}
	s.SetCamera(cameraConfig)
	return s
}
