package scene

import (
	"math/rand"
	"path/filepath"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/loaders"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

// DefaultTextureDir is searched for image textures when Options.TextureDir is empty
const DefaultTextureDir = "texture"

// outdoorCamera is the camera shared by the sphere scenes
func outdoorCamera(aperture float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      aperture,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

func outdoorSampling() core.SamplingConfig {
	return core.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        core.DefaultMaxDepth,
	}
}

// groundSphere is the huge sphere the outdoor scenes stand on
func groundSphere(mat material.Material) geometry.Shape {
	return geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mat)
}

// sphereField scatters small random spheres over a 10x10 grid around the
// origin, leaving room for the large metal sphere at (4, 0.2, 0)
func sphereField(rng *rand.Rand, motion bool) []geometry.Shape {
	var shapes []geometry.Shape
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			chooseMat := rng.Float64()
			center := core.NewVec3(float64(a)+0.9*rng.Float64(), 0.2, float64(b)+0.9*rng.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
				)
				if motion {
					center1 := center.Add(core.NewVec3(0, 0.5*rng.Float64(), 0))
					shapes = append(shapes, geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
				} else {
					shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
				}
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+rng.Float64()),
					0.5*(1+rng.Float64()),
					0.5*(1+rng.Float64()),
				)
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*rng.Float64())))
			default:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}
	return shapes
}

// NewRandomScene creates the field of random spheres around three large ones
func NewRandomScene(opts Options) (*Scene, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	shapes := []geometry.Shape{
		groundSphere(material.NewLambertian(core.NewVec3(0.5, 1.0, 0.5))),
	}
	shapes = append(shapes, sphereField(rng, false)...)
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return &Scene{
		Name:           "random",
		CameraConfig:   outdoorCamera(0.1),
		Shapes:         shapes,
		SamplingConfig: outdoorSampling(),
	}, nil
}

// NewRandomMotionScene is the random scene with bouncing diffuse spheres on a checker ground
func NewRandomMotionScene(opts Options) (*Scene, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	checker := material.NewSolidCheckerTexture(core.NewVec3(0.2, 0.2, 0.8), core.NewVec3(0.9, 0.9, 0.9))
	shapes := []geometry.Shape{
		groundSphere(material.NewTexturedLambertian(checker)),
	}
	shapes = append(shapes, sphereField(rng, true)...)
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.2, 0.6, 0.8))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.9, 0.8, 0.8), 0)),
	)

	return &Scene{
		Name:           "random-motion",
		CameraConfig:   outdoorCamera(0),
		Shapes:         shapes,
		SamplingConfig: outdoorSampling(),
	}, nil
}

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(
		material.NewSolidCheckerTexture(core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0, 0, 0)),
	)

	return &Scene{
		Name:         "two-spheres",
		CameraConfig: outdoorCamera(0),
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
			geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
		},
		SamplingConfig: outdoorSampling(),
	}, nil
}

// NewTwoPerlinSpheresScene creates a marble sphere on a marble ground
func NewTwoPerlinSpheresScene(opts Options) (*Scene, error) {
	noise := material.NewTexturedLambertian(material.NewNoiseTexture(20, rand.New(rand.NewSource(opts.Seed))))

	return &Scene{
		Name:         "two-perlin-spheres",
		CameraConfig: outdoorCamera(0),
		Shapes: []geometry.Shape{
			groundSphere(noise),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, noise),
		},
		SamplingConfig: outdoorSampling(),
	}, nil
}

// earthTexture loads earth.jpg from the texture directory. A generated
// checkerboard stands in when the file cannot be read.
func earthTexture(opts Options) (material.ColorSource, string) {
	dir := opts.TextureDir
	if dir == "" {
		dir = DefaultTextureDir
	}
	path := filepath.Join(dir, "earth.jpg")

	data, err := loaders.LoadTexture(path, opts.MaxTextureSize)
	if err != nil {
		fallback := material.NewCheckerboardTexture(256, 128, 16,
			core.NewVec3(0.1, 0.3, 0.8), core.NewVec3(0.2, 0.6, 0.2))
		return fallback, "earth texture unavailable, using checkerboard: " + err.Error()
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), ""
}

// NewEarthScene creates an image-textured globe on a marble ground
func NewEarthScene(opts Options) (*Scene, error) {
	earth, warning := earthTexture(opts)
	noise := material.NewNoiseTexture(18, rand.New(rand.NewSource(opts.Seed)))

	s := &Scene{
		Name:         "earth",
		CameraConfig: outdoorCamera(0),
		Shapes: []geometry.Shape{
			groundSphere(material.NewTexturedLambertian(noise)),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(earth)),
		},
		SamplingConfig: outdoorSampling(),
	}
	if warning != "" {
		s.Warnings = append(s.Warnings, warning)
	}
	return s, nil
}

// NewSimpleLightScene lights two marble spheres with a single emissive rectangle
func NewSimpleLightScene(opts Options) (*Scene, error) {
	noise := material.NewTexturedLambertian(material.NewNoiseTexture(4, rand.New(rand.NewSource(opts.Seed))))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	config := outdoorCamera(0)
	config.Center = core.NewVec3(26, 3, 6)
	config.LookAt = core.NewVec3(0, 2, 0)

	sampling := outdoorSampling()
	sampling.SamplesPerPixel = 200

	return &Scene{
		Name:         "simple-light",
		CameraConfig: config,
		Shapes: []geometry.Shape{
			groundSphere(noise),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, noise),
			geometry.NewXYRect(3, 5, 1, 3, -2, light),
		},
		SamplingConfig: sampling,
	}, nil
}
