package material

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Materials are shared by many shapes and must not change after construction.
type Material interface {
	// Scatter decides whether and how rayIn continues after hitting the surface.
	// Returning false means the path was absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit outward surface normal
	T         float64   // Parameter t along the ray
	U, V      float64   // Surface parametrization
	FrontFace bool      // Whether the ray arrived from outside (opposed to Normal)
	Material  Material  // Material of the hit object
}

// SetOutwardNormal stores the outward normal and records which side the ray came from.
// Unlike a face-forward convention the normal is never flipped.
func (h *HitRecord) SetOutwardNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.Normal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
