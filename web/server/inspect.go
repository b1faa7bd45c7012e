package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
	"github.com/df07/go-nextweek-raytracer/pkg/output"
	"github.com/df07/go-nextweek-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult holds the nearest hit under a pixel and the top-level shape it belongs to
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
	Ray       core.Ray
}

const tMinInspect = 0.001

// inspectPixel casts one ray through the center of output pixel (x, y),
// where y = 0 is the top row
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) InspectResult {
	s := (float64(x) + 0.5) / float64(width)
	t := (float64(height-1-y) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(s, t, core.NewSeededSampler(sceneObj.SamplingConfig.Seed))

	result := InspectResult{Ray: ray}
	closest := 1e30
	for _, shape := range sceneObj.Shapes {
		if hit, ok := shape.Hit(ray, tMinInspect, closest); ok {
			closest = hit.T
			result.Hit = true
			result.HitRecord = hit
			result.Shape = shape
		}
	}
	return result
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", output.ToByte(v.X), output.ToByte(v.Y), output.ToByte(v.Z))
}

// colorSourceInfo describes a texture and its color at the hit
func colorSourceInfo(source material.ColorSource, hit *material.HitRecord) (core.Vec3, string) {
	c := source.Evaluate(hit.UV, hit.Point)
	switch source.(type) {
	case *material.SolidColor:
		return c, "solid"
	case *material.CheckerTexture:
		return c, "checker"
	case *material.NoiseTexture:
		return c, "noise"
	case *material.ImageTexture:
		return c, "image"
	default:
		return c, "unknown"
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo, texture := colorSourceInfo(m.Albedo, hit)
		properties["albedo"] = vecArray(albedo)
		properties["texture"] = texture
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission, texture := colorSourceInfo(m.Emission, hit)
		properties["emission"] = vecArray(emission)
		properties["texture"] = texture
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo, texture := colorSourceInfo(m.Albedo, hit)
		properties["albedo"] = vecArray(albedo)
		properties["texture"] = texture
		properties["color"] = hexColor(albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts geometry information, descending into wrappers
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	wrapped := func(inner geometry.Shape) {
		innerType, innerProps := s.extractGeometryInfo(inner)
		properties["inner"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(geom.Center0)
		properties["center1"] = vecArray(geom.Center1)
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	case *geometry.Rect:
		properties["plane"] = geom.Plane.String()
		properties["a"] = [2]float64{geom.A0, geom.A1}
		properties["b"] = [2]float64{geom.B0, geom.B1}
		properties["k"] = geom.K
		return "rect", properties

	case *geometry.Block:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "block", properties

	case *geometry.Translate:
		properties["offset"] = vecArray(geom.Offset)
		wrapped(geom.Shape)
		return "translate", properties

	case *geometry.RotateY:
		wrapped(geom.Shape)
		return "rotate_y", properties

	case *geometry.FlipNormals:
		wrapped(geom.Shape)
		return "flip_normals", properties

	case *geometry.ConstantMedium:
		properties["density"] = geom.Density
		wrapped(geom.Boundary)
		return "constant_medium", properties

	case *geometry.BVHNode:
		stats := geom.Stats()
		properties["nodes"] = stats.Nodes
		properties["shapes"] = stats.Shapes
		properties["maxDepth"] = stats.MaxDepth
		return "bvh", properties

	case *geometry.HittableList:
		properties["shapes"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneID
	}

	width, err := parseIntParam(query, "width", 0, MinImageSize, MaxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	height, err := parseIntParam(query, "height", 0, MinImageSize, MaxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	seed, err := parseInt64Param(query, "seed", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if _, ok := scene.Lookup(sceneName); !ok {
		writeError(w, http.StatusBadRequest, "Unknown scene: "+sceneName)
		return
	}
	sceneObj, err := scene.New(sceneName, scene.Options{
		Width:      width,
		Height:     height,
		Seed:       seed,
		TextureDir: s.TextureDir,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	config := sceneObj.GetSamplingConfig()
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, config.Width, config.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material, result.HitRecord)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.Ray.Direction.Dot(result.HitRecord.Normal) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
