package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-offline-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned by New for names missing from the registry
var ErrUnknownScene = errors.New("unknown scene")

// Options tune a built-in scene
type Options struct {
	Seed   int64                 // Seeds random placement and noise tables
	Camera geometry.CameraConfig // Non-zero fields override the scene's camera
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type builder struct {
	info  SceneInfo
	build func(opts Options) *Scene
}

var registry = map[string]builder{
	"random": {
		info:  SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Checker ground with a grid of small diffuse, metal and glass spheres; diffuse ones move during the shutter"},
		build: NewRandomScene,
	},
	"two-spheres": {
		info:  SceneInfo{ID: "two-spheres", DisplayName: "Two Spheres", Description: "Two large checker-textured spheres"},
		build: NewTwoSpheresScene,
	},
	"two-perlin-spheres": {
		info:  SceneInfo{ID: "two-perlin-spheres", DisplayName: "Two Perlin Spheres", Description: "Marble noise texture on a ground sphere and a small sphere"},
		build: NewTwoPerlinSpheresScene,
	},
	"default": {
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Diffuse, metal and glass spheres including a hollow glass sphere"},
		build: NewDefaultScene,
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Grid of metal spheres coloured across the OKLCH hue wheel"},
		build: NewSphereGridScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every registered scene, sorted by ID
func ListScenes() []SceneInfo {
	names := Names()
	infos := make([]SceneInfo, len(names))
	for i, name := range names {
		infos[i] = registry[name].info
	}
	return infos
}

// New builds the named scene
func New(name string, opts Options) (*Scene, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.build(opts), nil
}
