package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

// NewFinalScene creates the closing showcase: a field of boxes, moving,
// glass, metal and textured spheres, fog and a rotated cluster of spheres
func NewFinalScene(opts Options) (*Scene, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	shapes := make([]geometry.Shape, 0, 16)

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Shape, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000 + float64(i)*w
			z0 := -1000 + float64(j)*w
			y1 := 100 * (rng.Float64() + 0.01)
			boxes = append(boxes, geometry.NewBlock(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVHNode(boxes, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("scene final: ground: %w", err)
	}
	shapes = append(shapes, groundBVH)

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	shapes = append(shapes, geometry.NewZXRect(147, 412, 123, 423, 554, light))

	center := core.NewVec3(400, 400, 200)
	shapes = append(shapes,
		geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
			material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 10)),
	)

	// Glass shell filled with blue subsurface fog
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	shapes = append(shapes,
		shell,
		geometry.NewConstantMedium(shell, 0.2, material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9))),
	)

	// Thin mist over the whole scene
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	shapes = append(shapes, geometry.NewConstantMedium(mist, 0.0001, material.NewSolidColor(core.NewVec3(1, 1, 1))))

	earth, warning := earthTexture(opts)
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
			material.NewTexturedLambertian(material.NewNoiseTexture(0.1, rng))),
	)

	// Cluster of small white spheres, rotated and moved into view
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Shape, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		p := core.NewVec3(165*rng.Float64(), 165*rng.Float64(), 165*rng.Float64())
		cluster = append(cluster, geometry.NewSphere(p, 10, white))
	}
	clusterBVH, err := geometry.NewBVHNode(cluster, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("scene final: cluster: %w", err)
	}
	shapes = append(shapes, geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	s := &Scene{
		Name: "final",
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(478, 278, -600),
			LookAt:        core.NewVec3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40,
			Aperture:      0,
			FocusDistance: 10,
			Time0:         0,
			Time1:         1,
		},
		Shapes: shapes,
		SamplingConfig: core.SamplingConfig{
			Width:           400,
			Height:          400,
			SamplesPerPixel: 100,
			MaxDepth:        core.DefaultMaxDepth,
		},
	}
	if warning != "" {
		s.Warnings = append(s.Warnings, warning)
	}
	return s, nil
}
