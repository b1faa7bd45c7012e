package geometry

import (
	"math"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

// FlipNormals reverses the normal of every hit on the wrapped shape
type FlipNormals struct {
	Shape Shape
}

// NewFlipNormals wraps shape so its normals point the other way
func NewFlipNormals(shape Shape) *FlipNormals {
	return &FlipNormals{Shape: shape}
}

// Hit delegates and negates the normal
func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	hit, ok := f.Shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Normal = hit.Normal.Negate()
	return hit, true
}

// BoundingBox returns the wrapped shape's box unchanged
func (f *FlipNormals) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Shape.BoundingBox(time0, time1)
}

// Translate displaces the wrapped shape by Offset
type Translate struct {
	Shape  Shape
	Offset core.Vec3
}

// NewTranslate wraps shape, moving it by offset
func NewTranslate(shape Shape, offset core.Vec3) *Translate {
	return &Translate{Shape: shape, Offset: offset}
}

// Hit moves the ray into the shape's frame and the hit point back out
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Shape.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the wrapped box shifted by Offset
func (tr *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := tr.Shape.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(tr.Offset), true
}

// RotateY rotates the wrapped shape about the y axis
type RotateY struct {
	Shape    Shape
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps shape, rotating it by angle degrees about the y axis.
// The world box is computed once from the shape's box over times [0, 1].
func NewRotateY(shape Shape, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Shape:    shape,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box, ok := shape.BoundingBox(0, 1)
	if !ok {
		return r
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					lerp(box.Min.X, box.Max.X, float64(i)),
					lerp(box.Min.Y, box.Max.Y, float64(j)),
					lerp(box.Min.Z, box.Max.Z, float64(k)),
				)
				corners = append(corners, r.toWorld(corner))
			}
		}
	}
	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true
	return r
}

func lerp(a, b, t float64) float64 {
	return t*b + (1-t)*a
}

// toLocal maps a world-space vector into the shape's frame
func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld is the inverse of toLocal
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into the shape's frame and the hit back out
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)
	hit, ok := r.Shape.Hit(rotated, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the precomputed world box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}
