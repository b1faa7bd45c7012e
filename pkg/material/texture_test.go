package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	odd := core.NewVec3(0.2, 0.3, 0.1)
	even := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewSolidCheckerTexture(odd, even)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"All positive sines", core.NewVec3(0.1, 0.1, 0.1), even},
		{"One negative sine", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"Two negative sines", core.NewVec3(-0.1, -0.1, 0.1), even},
		{"Zero product", core.NewVec3(0, 0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	perlin := NewPerlin(rand.New(rand.NewSource(42)))
	for _, p := range []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(3, -2, 7),
		core.NewVec3(-300, 511, 12),
	} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Expected zero noise at lattice point %v, got %v", p, n)
		}
	}
}

func TestPerlin_BoundedAndContinuous(t *testing.T) {
	perlin := NewPerlin(rand.New(rand.NewSource(42)))
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		p := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		n := perlin.Noise(p)
		if math.Abs(n) > 1.0 {
			t.Fatalf("Noise %v at %v out of range", n, p)
		}

		nearby := perlin.Noise(p.Add(core.NewVec3(1e-6, 0, 0)))
		if math.Abs(n-nearby) > 1e-4 {
			t.Fatalf("Noise not continuous at %v: %v vs %v", p, n, nearby)
		}

		if turb := perlin.Turbulence(p, 7); turb < 0 {
			t.Fatalf("Turbulence must be non-negative, got %v", turb)
		}
	}
}

func TestPerlin_SameSeedSameTables(t *testing.T) {
	a := NewPerlin(rand.New(rand.NewSource(11)))
	b := NewPerlin(rand.New(rand.NewSource(11)))
	p := core.NewVec3(1.3, -4.2, 0.7)
	if a.Noise(p) != b.Noise(p) {
		t.Error("Perlin tables from the same seed must match")
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	tests := []struct {
		name    string
		texture *NoiseTexture
	}{
		{"Marble", NewNoiseTexture(4, rand.New(rand.NewSource(42)))},
		{"Fine marble", NewNoiseTexture(20, rand.New(rand.NewSource(7)))},
	}

	random := rand.New(rand.NewSource(3))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				p := core.NewVec3(random.Float64()*10, random.Float64()*10, random.Float64()*10)
				c := tt.texture.Evaluate(core.Vec2{}, p)
				if c.X != c.Y || c.Y != c.Z {
					t.Fatalf("Expected grey color, got %v", c)
				}
				if c.X < 0 || c.X > 1 {
					t.Fatalf("Value %v out of [0,1] at %v", c.X, p)
				}
			}
		})
	}
}

func TestImageTexture_Evaluate(t *testing.T) {
	// 2x2 image, rows top to bottom:
	//   red   green
	//   blue  white
	data := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
	texture := NewImageTexture(2, 2, data)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"Bottom left", core.NewVec2(0.1, 0.1), core.NewVec3(0, 0, 1)},
		{"Bottom right", core.NewVec2(0.9, 0.1), core.NewVec3(1, 1, 1)},
		{"Top left", core.NewVec2(0.1, 0.9), core.NewVec3(1, 0, 0)},
		{"Top right", core.NewVec2(0.9, 0.9), core.NewVec3(0, 1, 0)},
		{"Clamp u=1 v=0", core.NewVec2(1.0, 0.0), core.NewVec3(1, 1, 1)},
		{"Clamp out of range", core.NewVec2(-0.5, 1.5), core.NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageTexture_MissingDataIsCyan(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !got.Equals(core.NewVec3(0, 1, 1)) {
		t.Errorf("Expected cyan, got %v", got)
	}
}

func TestCheckerboardTexture(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewCheckerboardTexture(4, 4, 2, white, black)

	if got := texture.Evaluate(core.NewVec2(0.1, 0.9), core.Vec3{}); !got.Equals(white) {
		t.Errorf("Expected top-left white, got %v", got)
	}
	if got := texture.Evaluate(core.NewVec2(0.9, 0.9), core.Vec3{}); !got.Equals(black) {
		t.Errorf("Expected top-right black, got %v", got)
	}
}
