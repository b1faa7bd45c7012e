package geometry

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

// rectThickness pads the flat axis of a rectangle's bounding box
const rectThickness = 1e-4

// Plane identifies the axis-aligned plane a Rect lies in
type Plane int

const (
	PlaneXY Plane = iota // spans x and y at fixed z
	PlaneYZ              // spans y and z at fixed x
	PlaneZX              // spans z and x at fixed y
)

// axes returns the indices of the two spanning axes and the fixed axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneYZ:
		return 1, 2, 0
	case PlaneZX:
		return 2, 0, 1
	default:
		return 0, 1, 2
	}
}

// String returns the plane name
func (p Plane) String() string {
	switch p {
	case PlaneYZ:
		return "YZ"
	case PlaneZX:
		return "ZX"
	default:
		return "XY"
	}
}

// Rect is an axis-aligned rectangle [A0,A1]×[B0,B1] at K on the fixed axis.
// Its normal is the positive unit vector of the fixed axis.
type Rect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewRect creates a rectangle in the given plane
func NewRect(plane Plane, a0, a1, b0, b1, k float64, material material.Material) *Rect {
	return &Rect{Plane: plane, A0: a0, A1: a1, B0: b0, B1: b1, K: k, Material: material}
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z=k
func NewXYRect(x0, x1, y0, y1, k float64, material material.Material) *Rect {
	return NewRect(PlaneXY, x0, x1, y0, y1, k, material)
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x=k
func NewYZRect(y0, y1, z0, z1, k float64, material material.Material) *Rect {
	return NewRect(PlaneYZ, y0, y1, z0, z1, k, material)
}

// NewZXRect creates a rectangle spanning [z0,z1]×[x0,x1] at y=k
func NewZXRect(z0, z1, x0, x1, k float64, material material.Material) *Rect {
	return NewRect(PlaneZX, z0, z1, x0, x1, k, material)
}

// Hit intersects the ray with the rectangle's plane and checks the bounds.
// A ray parallel to the plane yields a NaN or infinite t and misses.
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	t := (r.K - ray.Origin.Axis(kAxis)) / ray.Direction.Axis(kAxis)
	if !(t >= tMin && t <= tMax) {
		return nil, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if !(a >= r.A0 && a <= r.A1 && b >= r.B0 && b <= r.B1) {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Point:    ray.At(t),
		Normal:   core.Vec3{}.WithAxis(kAxis, 1),
		Material: r.Material,
	}, true
}

// BoundingBox returns the rectangle's box padded along the fixed axis
func (r *Rect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()
	min := core.Vec3{}.WithAxis(aAxis, r.A0).WithAxis(bAxis, r.B0).WithAxis(kAxis, r.K-rectThickness)
	max := core.Vec3{}.WithAxis(aAxis, r.A1).WithAxis(bAxis, r.B1).WithAxis(kAxis, r.K+rectThickness)
	return core.NewAABB(min, max), true
}
