package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vec3
	}{
		{"Axis aligned", NewVec3(3, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 1)},
		{"Large components", NewVec3(1e6, -2e6, 3e6)},
		{"Small components", NewVec3(1e-6, 2e-6, -3e-6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length := tt.vector.Normalize().Length()
			if math.Abs(length-1.0) > 1e-12 {
				t.Errorf("Expected unit length, got %v", length)
			}
		})
	}

	if zero := (Vec3{}).Normalize(); !zero.Equals(Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-4, 0.5, 2)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v is not orthogonal to inputs", c)
	}

	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if z := x.Cross(y); !z.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x cross y = z, got %v", z)
	}
}

func TestVec3_AxisAccess(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis(%d): expected %v, got %v", axis, expected, got)
		}
	}

	w := v.WithAxis(1, 7)
	if !w.Equals(NewVec3(1, 7, 3)) {
		t.Errorf("WithAxis: expected (1,7,3), got %v", w)
	}
	if !v.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("WithAxis must not modify the receiver, got %v", v)
	}
}

func TestVec3_SqrtGamma(t *testing.T) {
	got := NewVec3(4, 9, 0.25).Sqrt()
	if !got.Equals(NewVec3(2, 3, 0.5)) {
		t.Errorf("Expected (2,3,0.5), got %v", got)
	}
}

func TestVec3_Clamp(t *testing.T) {
	got := NewVec3(-1, 0.5, 3).Clamp(0, 1)
	if !got.Equals(NewVec3(0, 0.5, 1)) {
		t.Errorf("Expected (0,0.5,1), got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(0, 0, 0), NewVec3(1, 2, 3), 0.5)
	if p := ray.At(2); !p.Equals(NewVec3(2, 4, 6)) {
		t.Errorf("Expected (2,4,6), got %v", p)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %v", ray.Time)
	}
}
