package scene

import (
	"math/rand"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// NewTwoSpheresScene creates two touching checker spheres, one above the other
func NewTwoSpheresScene(opts Options) *Scene {
	cameraConfig := randomSceneCamera()
	cameraConfig.Aperture = 0

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, material.NewTexturedLambertian(checkerGround())),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, material.NewTexturedLambertian(checkerGround())),
	}

	return newScene(cameraConfig, DefaultSamplingConfig(), opts, shapes)
}

// NewTwoPerlinSpheresScene puts a marble-textured sphere on a marble-textured ground
func NewTwoPerlinSpheresScene(opts Options) *Scene {
	cameraConfig := randomSceneCamera()
	cameraConfig.VFov = 20
	cameraConfig.Aperture = 0

	noise := material.NewPerlin(rand.New(rand.NewSource(opts.Seed)))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(noise, 4))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}

	return newScene(cameraConfig, DefaultSamplingConfig(), opts, shapes)
}
