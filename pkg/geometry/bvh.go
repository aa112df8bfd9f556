package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

var (
	// ErrEmptyScene is returned when building over no primitives
	ErrEmptyScene = errors.New("cannot build acceleration structure over an empty scene")
	// ErrNoBoundingBox is returned when a primitive cannot be bounded
	ErrNoBoundingBox = errors.New("primitive has no bounding box")
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A leaf holds exactly one shape; a branch holds two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shape       Shape // Set for leaf nodes only
}

// IsLeaf reports whether the node wraps a single shape
func (n *BVHNode) IsLeaf() bool {
	return n.Shape != nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// primitiveRef pairs a shape with the box computed for it once at build time
type primitiveRef struct {
	shape Shape
	box   core.AABB
}

// NewBVH constructs a BVH over shapes for the shutter window [time0, time1].
// The input slice is left untouched.
func NewBVH(shapes []Shape, time0, time1 float64) (*BVH, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyScene
	}

	refs := make([]primitiveRef, len(shapes))
	for i, shape := range shapes {
		box, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("primitive %d: %w", i, ErrNoBoundingBox)
		}
		refs[i] = primitiveRef{shape: shape, box: box}
	}

	return &BVH{Root: buildBVH(refs)}, nil
}

// buildBVH recursively splits at the median along the axis where box centres spread the most
func buildBVH(refs []primitiveRef) *BVHNode {
	if len(refs) == 1 {
		return &BVHNode{BoundingBox: refs[0].box, Shape: refs[0].shape}
	}

	axis := centroidSplitAxis(refs)
	sort.SliceStable(refs, func(i, j int) bool {
		// min+max is twice the centre; the factor does not change the order
		keyI := refs[i].box.Min.Axis(axis) + refs[i].box.Max.Axis(axis)
		keyJ := refs[j].box.Min.Axis(axis) + refs[j].box.Max.Axis(axis)
		return keyI < keyJ
	})

	mid := len(refs) / 2
	left := buildBVH(refs[:mid])
	right := buildBVH(refs[mid:])

	return &BVHNode{
		BoundingBox: core.SurroundingBox(left.BoundingBox, right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// centroidSplitAxis returns the axis with the largest extent of primitive box centres
func centroidSplitAxis(refs []primitiveRef) int {
	first := refs[0].box.Center()
	centroids := core.NewAABB(first, first)
	for _, ref := range refs[1:] {
		c := ref.box.Center()
		centroids = centroids.Union(core.NewAABB(c, c))
	}
	return centroids.LongestAxis()
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.IsLeaf() {
		return node.Shape.Hit(ray, tMin, tMax)
	}

	leftHit, hitLeft := hitNode(node.Left, ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	// Anything the right child finds is strictly closer than the left hit
	if rightHit, hitRight := hitNode(node.Right, ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox implements the Shape interface - returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if bvh.Root == nil {
		return core.AABB{}, false
	}
	return bvh.Root.BoundingBox, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64 // Mean depth of leaves
}

// Stats walks the tree and returns its shape
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
