package vmath

import (
	"math"
	"testing"
)

func TestV3FNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3F
		want Vec3F
	}{
		{"x axis", Vec3F{5, 0, 0}, Vec3F{1, 0, 0}},
		{"negative y", Vec3F{0, -0.25, 0}, Vec3F{0, -1, 0}},
		{"diagonal", Vec3F{3, 4, 0}, Vec3F{0.6, 0.8, 0}},
		{"zero stays zero", Vec3F{}, Vec3F{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V3FNormalize(tt.in)
			if !V3FNear(got, tt.want, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestV3FCross(t *testing.T) {
	if got := V3FCross(UnitX, UnitY); got != UnitZ {
		t.Errorf("Expected X×Y = Z, got %v", got)
	}
	if got := V3FCross(UnitY, UnitX); got != V3FNeg(UnitZ) {
		t.Errorf("Expected Y×X = -Z, got %v", got)
	}
}

func TestV3FMinMax(t *testing.T) {
	a := Vec3F{1, -2, 3}
	b := Vec3F{-1, 2, 3}
	if got := V3FMin(a, b); got != (Vec3F{-1, -2, 3}) {
		t.Errorf("Expected min (-1,-2,3), got %v", got)
	}
	if got := V3FMax(a, b); got != (Vec3F{1, 2, 3}) {
		t.Errorf("Expected max (1,2,3), got %v", got)
	}
}

func TestV3FRotateY(t *testing.T) {
	got := V3FRotateY(UnitX, math.Pi/2)
	if !V3FNear(got, Vec3F{0, 0, -1}, 1e-12) {
		t.Errorf("Expected X rotated 90° about Y to be -Z, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned value outside range")
	}
}
