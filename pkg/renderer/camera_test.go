package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestCamera_PinholeDirections(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	})
	sampler := newTestSampler(1)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"top center", 0.5, 1, core.NewVec3(0, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.ApproxEquals(core.Vec3{}, 1e-12) {
				t.Errorf("Expected pinhole origin at camera center, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEquals(tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_ThinLensFocus(t *testing.T) {
	// FocusDistance unset: the look-at point is in focus
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 1.5,
		Aperture:    2,
	})
	sampler := newTestSampler(7)

	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(core.NewVec3(0, 0, 3))
		if offset.Length() > 1+1e-12 {
			t.Fatalf("Lens offset %v exceeds aperture radius", offset)
		}
		if math.Abs(offset.Z) > 1e-12 {
			t.Fatalf("Lens offset %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}

		focus := ray.Origin.Add(ray.Direction)
		if !focus.ApproxEquals(core.Vec3{}, 1e-9) {
			t.Fatalf("Expected ray to pass through focus point, got %v", focus)
		}
	}
	if !moved {
		t.Error("Expected lens sampling to jitter ray origins")
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	tests := []struct {
		name         string
		time0, time1 float64
	}{
		{"zero interval", 0, 0},
		{"unit interval", 0, 1},
		{"offset interval", 1, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera(CameraConfig{
				Center:      core.NewVec3(0, 0, 0),
				LookAt:      core.NewVec3(0, 0, -1),
				Up:          core.NewVec3(0, 1, 0),
				VFov:        60,
				AspectRatio: 1,
				Time0:       tt.time0,
				Time1:       tt.time1,
			})
			sampler := newTestSampler(3)
			for i := 0; i < 50; i++ {
				ray := camera.GetRay(0.5, 0.5, sampler)
				if ray.Time < tt.time0 || ray.Time > tt.time1 {
					t.Fatalf("Ray time %f outside [%f, %f]", ray.Time, tt.time0, tt.time1)
				}
			}
		})
	}
}
