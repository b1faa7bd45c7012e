package scene

import (
	"fmt"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	SamplingConfig core.SamplingConfig
	World          geometry.Shape    // Intersection root built by Preprocess
	BVH            *geometry.BVHNode // Set when the world is a BVH
	Warnings       []string          // Non-fatal problems met while building
}

// Options adjusts a built-in scene. Zero fields keep the scene's defaults.
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64  // Seed for scene layout, procedural textures and render tiles
	TextureDir      string // Directory holding image textures such as earth.jpg
	MaxTextureSize  int    // Downscale image textures larger than this (0 = keep)
	DisableBVH      bool   // Intersect the flat object list instead of a BVH
	Background      *core.Vec3
}

// apply overrides the scene's sampling defaults with non-zero options
func (o Options) apply(config core.SamplingConfig) core.SamplingConfig {
	if o.Width > 0 {
		config.Width = o.Width
	}
	if o.Height > 0 {
		config.Height = o.Height
	}
	if o.SamplesPerPixel > 0 {
		config.SamplesPerPixel = o.SamplesPerPixel
	}
	if o.MaxDepth > 0 {
		config.MaxDepth = o.MaxDepth
	}
	if o.Background != nil {
		config.Background = *o.Background
	}
	config.Seed = o.Seed
	return config
}

// Preprocess builds the camera for the final image size and the intersection
// root of the scene
func (s *Scene) Preprocess(useBVH bool) error {
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		return fmt.Errorf("scene %s: invalid image size %dx%d", s.Name, s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	s.CameraConfig.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
	s.Camera = renderer.NewCamera(s.CameraConfig)

	s.BVH = nil
	if !useBVH || len(s.Shapes) == 0 {
		s.World = geometry.NewHittableList(s.Shapes...)
		return nil
	}

	bvh, err := geometry.NewBVHNode(s.Shapes, s.CameraConfig.Time0, s.CameraConfig.Time1)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	s.BVH = bvh
	s.World = bvh
	return nil
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetSamplingConfig implements renderer.Scene
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling nested objects
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.BVHNode:
		return obj.Stats().Shapes
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Shapes {
			count += countPrimitivesInShape(child)
		}
		return count
	case *geometry.Translate:
		return countPrimitivesInShape(obj.Shape)
	case *geometry.RotateY:
		return countPrimitivesInShape(obj.Shape)
	case *geometry.FlipNormals:
		return countPrimitivesInShape(obj.Shape)
	case *geometry.ConstantMedium:
		return countPrimitivesInShape(obj.Boundary)
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}
