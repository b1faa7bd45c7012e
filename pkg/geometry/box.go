package geometry

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

// Block represents an axis-aligned box made up of 6 rectangles whose normals
// all point outward
type Block struct {
	Min, Max core.Vec3
	faces    *HittableList
}

// NewBlock creates a block spanning pmin to pmax with one material on every face
func NewBlock(pmin, pmax core.Vec3, mat material.Material) *Block {
	faces := NewHittableList(
		// Z faces
		NewXYRect(pmin.X, pmax.X, pmin.Y, pmax.Y, pmax.Z, mat),
		NewFlipNormals(NewXYRect(pmin.X, pmax.X, pmin.Y, pmax.Y, pmin.Z, mat)),
		// Y faces
		NewZXRect(pmin.Z, pmax.Z, pmin.X, pmax.X, pmax.Y, mat),
		NewFlipNormals(NewZXRect(pmin.Z, pmax.Z, pmin.X, pmax.X, pmin.Y, mat)),
		// X faces
		NewYZRect(pmin.Y, pmax.Y, pmin.Z, pmax.Z, pmax.X, mat),
		NewFlipNormals(NewYZRect(pmin.Y, pmax.Y, pmin.Z, pmax.Z, pmin.X, mat)),
	)

	return &Block{Min: pmin, Max: pmax, faces: faces}
}

// Hit tests if a ray intersects with any face of the block
func (b *Block) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax)
}

// BoundingBox returns exactly [Min, Max]
func (b *Block) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
