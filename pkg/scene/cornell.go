package scene

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		Aperture:      0,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

func cornellSampling() core.SamplingConfig {
	return core.SamplingConfig{
		Width:           300,
		Height:          300,
		SamplesPerPixel: 40,
		MaxDepth:        core.DefaultMaxDepth,
	}
}

// cornellWalls builds the five walls of the box plus the ceiling light.
// Walls that face away from the interior are flipped so every normal points in.
func cornellWalls(light geometry.Shape) []geometry.Shape {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []geometry.Shape{
		geometry.NewFlipNormals(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green)), // Left wall (green) at x=555
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),                                  // Right wall (red) at x=0
		light,
		geometry.NewFlipNormals(geometry.NewZXRect(0, boxSize, 0, boxSize, boxSize, white)), // Ceiling
		geometry.NewZXRect(0, boxSize, 0, boxSize, 0, white),                                // Floor
		geometry.NewFlipNormals(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white)), // Back wall
	}
}

// cornellBlocks returns the short and tall boxes, rotated and placed in the room
func cornellBlocks() (short, tall geometry.Shape) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	short = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white), -18),
		core.NewVec3(130, 0, 65),
	)
	tall = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white), 15),
		core.NewVec3(265, 0, 295),
	)
	return short, tall
}

// NewCornellScene creates the empty Cornell box with a small ceiling light
func NewCornellScene(opts Options) (*Scene, error) {
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	return &Scene{
		Name:           "cornell",
		CameraConfig:   cornellCamera(),
		Shapes:         cornellWalls(geometry.NewZXRect(227, 332, 213, 343, 554, light)),
		SamplingConfig: cornellSampling(),
	}, nil
}

// NewCornellBlocksScene adds the two rotated boxes to the Cornell box
func NewCornellBlocksScene(opts Options) (*Scene, error) {
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	short, tall := cornellBlocks()

	shapes := cornellWalls(geometry.NewZXRect(227, 332, 213, 343, 554, light))
	shapes = append(shapes, short, tall)

	return &Scene{
		Name:           "cornell-blocks",
		CameraConfig:   cornellCamera(),
		Shapes:         shapes,
		SamplingConfig: cornellSampling(),
	}, nil
}

// NewCornellSmokeScene replaces the boxes with white and black smoke under a wide light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	short, tall := cornellBlocks()

	shapes := cornellWalls(geometry.NewZXRect(127, 432, 113, 443, 554, light))
	shapes = append(shapes,
		geometry.NewConstantMedium(short, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
		geometry.NewConstantMedium(tall, 0.01, material.NewSolidColor(core.NewVec3(0, 0, 0))),
	)

	sampling := cornellSampling()
	sampling.SamplesPerPixel = 100

	return &Scene{
		Name:           "cornell-smoke",
		CameraConfig:   cornellCamera(),
		Shapes:         shapes,
		SamplingConfig: sampling,
	}, nil
}
