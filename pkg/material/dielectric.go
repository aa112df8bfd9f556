package material

import (
	"math"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()
	cosIncident := unitDirection.Dot(hit.Normal)

	// The record carries the outward normal, so the sign tells us which side we are on
	var facingNormal core.Vec3
	var refractionRatio float64
	if cosIncident > 0 {
		facingNormal = hit.Normal.Negate() // exiting the medium
		refractionRatio = d.RefractiveIndex
	} else {
		facingNormal = hit.Normal // entering the medium
		refractionRatio = 1.0 / d.RefractiveIndex
		cosIncident = -cosIncident
	}

	refracted, canRefract := refractVector(unitDirection, facingNormal, refractionRatio)

	var direction core.Vec3
	if !canRefract {
		// Total internal reflection
		direction = reflect(unitDirection, facingNormal)
	} else {
		// Schlick uses the angle on the less dense side of the interface
		cosine := cosIncident
		if refractionRatio > 1.0 {
			cosine = -refracted.Normalize().Dot(facingNormal)
		}
		if sampler.Get1D() < Reflectance(cosine, d.RefractiveIndex) {
			direction = reflect(unitDirection, facingNormal)
		} else {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// refractVector refracts the unit vector uv through a surface whose normal n faces it.
// Returns false when Snell's law has no solution (total internal reflection).
func refractVector(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	dt := uv.Dot(n)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-dt*dt)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	perpendicular := uv.Subtract(n.Multiply(dt)).Multiply(etaiOverEtat)
	return perpendicular.Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (refractiveIndex - 1) / (refractiveIndex + 1)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
