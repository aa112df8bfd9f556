package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Shapes are immutable once built and safe to query from many goroutines.
type Shape interface {
	// Hit returns the nearest intersection with t strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	// BoundingBox returns a box enclosing the shape over the time window [time0, time1].
	// The boolean is false for shapes that cannot be bounded.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
