package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

// mediumExitEpsilon offsets the search for the boundary exit point
const mediumExitEpsilon = 1e-4

// ConstantMedium is a volume of uniform density filling a closed boundary.
// A ray passing through scatters at an exponentially distributed depth.
type ConstantMedium struct {
	Boundary Shape
	Density  float64
	Phase    material.Material

	// uniform returns samples in [0, 1). Hit carries no sampler, so the
	// default draws from the goroutine-safe top-level generator.
	uniform func() float64
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Shape, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary: boundary,
		Density:  density,
		Phase:    material.NewTexturedIsotropic(albedo),
		uniform:  rand.Float64,
	}
}

// Hit finds where the ray enters and leaves the boundary and samples a
// scattering distance between them. A non-positive density never scatters.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.Density <= 0 {
		return nil, false
	}

	enter, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, enter.T+mediumExitEpsilon, math.Inf(1))
	if !ok {
		return nil, false
	}

	t1 := math.Max(enter.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	// 1-U lies in (0, 1] so the logarithm stays finite
	hitDistance := -(1 / m.Density) * math.Log(1-m.uniform())
	if hitDistance >= distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   core.NewVec3(1, 0, 0),
		Material: m.Phase,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
