package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// HitableList is a flat collection of shapes searched linearly
type HitableList struct {
	Shapes []Shape
}

// NewHitableList creates a list over a copy of shapes
func NewHitableList(shapes []Shape) *HitableList {
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)
	return &HitableList{Shapes: shapesCopy}
}

// Hit returns the closest hit among all members
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of member boxes.
// An empty list, or one containing an unbounded member, has no box.
func (l *HitableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Shapes) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, shape := range l.Shapes {
		shapeBox, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = shapeBox
		} else {
			box = box.Union(shapeBox)
		}
	}
	return box, true
}
