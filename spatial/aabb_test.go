package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/vi-lander/vmath"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{Min: vmath.Vec3F{X: minX, Y: minY, Z: minZ}, Max: vmath.Vec3F{X: maxX, Y: maxY, Z: maxZ}}
}

func TestAABBOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"identical", box(0, 0, 0, 1, 1, 1), box(0, 0, 0, 1, 1, 1), true},
		{"contained", box(0, 0, 0, 10, 10, 10), box(2, 2, 2, 3, 3, 3), true},
		{"touching face", box(0, 0, 0, 1, 1, 1), box(1, 0, 0, 2, 1, 1), true},
		{"touching corner", box(0, 0, 0, 1, 1, 1), box(1, 1, 1, 2, 2, 2), true},
		{"separated x", box(0, 0, 0, 1, 1, 1), box(1.01, 0, 0, 2, 1, 1), false},
		{"separated y only", box(0, 0, 0, 1, 1, 1), box(0, 2, 0, 1, 3, 1), false},
		{"separated z only", box(0, 0, 0, 1, 1, 1), box(0, 0, -3, 1, 1, -2), false},
		{"partial", box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 3, 3, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); got != tt.want {
				t.Errorf("Expected a.Overlap(b) = %v, got %v", tt.want, got)
			}
			if got := tt.b.Overlap(tt.a); got != tt.want {
				t.Errorf("Expected symmetric b.Overlap(a) = %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAABBIntersectRay(t *testing.T) {
	unit := box(-1, -1, -1, 1, 1, 1)
	inf := math.Inf(1)

	tests := []struct {
		name      string
		origin    vmath.Vec3F
		direction vmath.Vec3F
		want      bool
	}{
		{"through centre", vmath.Vec3F{X: -5}, vmath.UnitX, true},
		{"origin inside", vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 1, Z: 1}, true},
		{"pointing away", vmath.Vec3F{X: 5}, vmath.UnitX, false},
		{"miss above", vmath.Vec3F{X: -5, Y: 2}, vmath.UnitX, false},
		{"parallel inside slab", vmath.Vec3F{Y: 5, X: 0.5}, vmath.Vec3F{Y: -1}, true},
		{"parallel outside slab", vmath.Vec3F{Y: 5, X: 1.5}, vmath.Vec3F{Y: -1}, false},
		{"grazing edge", vmath.Vec3F{X: -5, Y: 1}, vmath.UnitX, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, err := NewRay(tt.origin, tt.direction)
			if err != nil {
				t.Fatalf("NewRay failed: %v", err)
			}
			if got := unit.IntersectRay(ray, 0, inf); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAABBRayInterval(t *testing.T) {
	ray, _ := NewRay(vmath.Vec3F{X: -5}, vmath.UnitX)
	enter, exit, ok := box(-1, -1, -1, 1, 1, 1).RayInterval(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(enter-4) > 1e-12 || math.Abs(exit-6) > 1e-12 {
		t.Errorf("Expected interval [4,6], got [%v,%v]", enter, exit)
	}

	// Origin inside: entry clamps to zero
	ray, _ = NewRay(vmath.Vec3F{}, vmath.UnitX)
	enter, _, ok = box(-1, -1, -1, 1, 1, 1).RayInterval(ray, -10, math.Inf(1))
	if !ok || enter != 0 {
		t.Errorf("Expected entry 0 for origin inside, got %v (ok=%v)", enter, ok)
	}

	// Bounded range stopping short of the box
	ray, _ = NewRay(vmath.Vec3F{X: -5}, vmath.UnitX)
	if box(-1, -1, -1, 1, 1, 1).IntersectRay(ray, 0, 3) {
		t.Error("Expected miss when tMax ends before the box")
	}
}

func TestNewRayRejectsZeroDirection(t *testing.T) {
	_, err := NewRay(vmath.Vec3F{X: 1}, vmath.Vec3F{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}

	r, err := NewRay(vmath.Vec3F{}, vmath.Vec3F{Y: -10})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.Direction != (vmath.Vec3F{Y: -1}) {
		t.Errorf("Expected normalised direction (0,-1,0), got %v", r.Direction)
	}
}

func TestAABBOctantsPartition(t *testing.T) {
	b := box(0, 0, 0, 4, 2, 8)
	var volume float64
	for i := 0; i < 8; i++ {
		o := b.Octant(i)
		s := o.Size()
		volume += s.X * s.Y * s.Z
		if !b.Contains(o.Min) || !b.Contains(o.Max) {
			t.Errorf("Octant %d escapes parent: %v", i, o)
		}
	}
	if volume != 64 {
		t.Errorf("Expected octant volumes to sum to 64, got %v", volume)
	}
	if o := b.Octant(7); o.Min != b.Center() || o.Max != b.Max {
		t.Errorf("Expected octant 7 to be the high corner, got %v", o)
	}
}

func TestBoundPoints(t *testing.T) {
	if _, ok := BoundPoints(nil); ok {
		t.Error("Expected empty set to report not ok")
	}
	got, ok := BoundPoints([]vmath.Vec3F{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 5, Z: 0}})
	if !ok || got != box(-1, -2, 0, 1, 5, 3) {
		t.Errorf("Expected (-1,-2,0)-(1,5,3), got %v", got)
	}
}
