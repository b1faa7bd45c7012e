package integrator

import (
	"math"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting their own origin
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing without
// light sampling: every bounce follows the material's scattered ray
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray.
// Rays that escape return the background (black unless configured). Once
// depth reaches the bounce limit only the emitted light is returned.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.config.Background
	}

	emitted := hit.Emitted()
	if depth >= pt.config.EffectiveMaxDepth() {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.RayColor(scatter.Scattered, world, sampler, depth+1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
