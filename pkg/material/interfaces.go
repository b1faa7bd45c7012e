package material

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when the
	// incoming ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light. Materials that do not
// implement it emit black.
type Emitter interface {
	Emit(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, cast at the incoming ray's time
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// Normal is the geometric normal of the surface and is not flipped to face
// the incoming ray; materials that care compare it against the ray direction.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	UV       core.Vec2 // Surface parametrization
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Surface normal at intersection
	Material Material  // Material of the hit object
}

// Emitted returns the light emitted at the hit, or black for non-emitters
func (h *HitRecord) Emitted() core.Vec3 {
	if emitter, ok := h.Material.(Emitter); ok {
		return emitter.Emit(h.UV, h.Point)
	}
	return core.Vec3{}
}
