package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

// ErrEmptyBVH is returned when building a hierarchy over no shapes
var ErrEmptyBVH = errors.New("geometry: cannot build BVH from zero shapes")

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A node over one shape stores it in Left and leaves Right nil.
type BVHNode struct {
	Box   core.AABB
	Left  Shape
	Right Shape
}

// boxedShape pairs a shape with its box so construction queries each box once
type boxedShape struct {
	shape Shape
	box   core.AABB
}

// NewBVHNode builds a hierarchy over shapes for the shutter interval
// [time0, time1]. The input slice is not modified.
func NewBVHNode(shapes []Shape, time0, time1 float64) (*BVHNode, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyBVH
	}

	boxed := make([]boxedShape, len(shapes))
	for i, shape := range shapes {
		box, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("geometry: shape %d (%T) has no bounding box", i, shape)
		}
		if !box.IsValid() {
			return nil, fmt.Errorf("geometry: shape %d (%T) has invalid bounding box %v", i, shape, box)
		}
		boxed[i] = boxedShape{shape: shape, box: box}
	}

	return buildBVH(boxed), nil
}

// buildBVH recursively splits at the median along the longest axis
func buildBVH(shapes []boxedShape) *BVHNode {
	box := shapes[0].box
	for _, s := range shapes[1:] {
		box = core.SurroundingBox(box, s.box)
	}

	switch len(shapes) {
	case 1:
		return &BVHNode{Box: box, Left: shapes[0].shape}
	case 2:
		return &BVHNode{Box: box, Left: shapes[0].shape, Right: shapes[1].shape}
	}

	sortShapesByAxis(shapes, box.LongestAxis())

	mid := len(shapes) / 2
	return &BVHNode{
		Box:   box,
		Left:  buildBVH(shapes[:mid]),
		Right: buildBVH(shapes[mid:]),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []boxedShape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].box.Center().Axis(axis) < shapes[j].box.Center().Axis(axis)
	})
}

// Hit tests both children and returns the nearer hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	closestHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	closestSoFar := tMax
	if hitLeft {
		closestSoFar = closestHit.T
	}

	if n.Right != nil {
		if hit, isHit := n.Right.Hit(ray, tMin, closestSoFar); isHit {
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the stored box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes    int // interior BVHNodes including the root
	Shapes   int // primitives stored under the tree
	MaxDepth int
}

// Stats walks the tree and reports its size and depth
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range []Shape{n.Left, n.Right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Shapes++
		}
	}
}
