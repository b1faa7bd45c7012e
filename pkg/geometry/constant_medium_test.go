package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/material"
)

func newTestMedium(density, sample float64) *ConstantMedium {
	medium := NewConstantMedium(
		NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial{}),
		density,
		material.NewSolidColor(core.NewVec3(1, 1, 1)),
	)
	medium.uniform = func() float64 { return sample }
	return medium
}

func TestConstantMedium_Hit(t *testing.T) {
	ln2 := math.Log(2)

	tests := []struct {
		name      string
		density   float64
		sample    float64
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{
			name:      "Scatters inside from outside",
			density:   1,
			sample:    0.5,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: true,
			expectedT: 4 + ln2,
		},
		{
			name:      "Direction length scales t",
			density:   1,
			sample:    0.5,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, -2),
			expectHit: true,
			expectedT: 2 + ln2/2,
		},
		{
			name:      "Thin medium lets ray through",
			density:   0.1,
			sample:    0.5,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "Origin inside starts at tMin",
			density:   1,
			sample:    0.5,
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, 1),
			expectHit: true,
			expectedT: 0.001 + ln2,
		},
		{
			name:      "Zero density never scatters",
			density:   0,
			sample:    0.999,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "Ray misses boundary",
			density:   1,
			sample:    0.5,
			origin:    core.NewVec3(5, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium := newTestMedium(tt.density, tt.sample)
			hit, isHit := medium.Hit(core.NewRay(tt.origin, tt.direction), 0.001, math.Inf(1))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if !tt.expectHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, hit.T)
			}
			if !hit.Normal.Equals(core.NewVec3(1, 0, 0)) {
				t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
			}
			if _, ok := hit.Material.(*material.Isotropic); !ok {
				t.Errorf("Expected isotropic phase material, got %T", hit.Material)
			}
		})
	}
}

func TestConstantMedium_ClippedByTMax(t *testing.T) {
	medium := newTestMedium(1, 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	// Only 0.5 units of the medium lie before tMax; ln2 is further
	if _, isHit := medium.Hit(ray, 0.001, 4.5); isHit {
		t.Error("Expected miss when the sampled distance passes tMax")
	}
}

func TestConstantMedium_ScatterProbability(t *testing.T) {
	medium := NewConstantMedium(
		NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial{}),
		1,
		material.NewSolidColor(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	const trials = 20000
	hits := 0
	for i := 0; i < trials; i++ {
		if _, isHit := medium.Hit(ray, 0.001, math.Inf(1)); isHit {
			hits++
		}
	}

	// Path length 2 through density 1
	expected := 1 - math.Exp(-2)
	got := float64(hits) / trials
	if math.Abs(got-expected) > 0.02 {
		t.Errorf("Expected scatter fraction %.3f, got %.3f", expected, got)
	}
}

func TestConstantMedium_BoundingBox(t *testing.T) {
	medium := newTestMedium(1, 0.5)
	box, ok := medium.BoundingBox(0, 1)
	expected := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	if !ok || box != expected {
		t.Errorf("Expected boundary box %v, got %v", expected, box)
	}
}
