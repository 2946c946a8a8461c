package spatial

import (
	"math"

	"github.com/lixenwraith/vi-lander/vmath"
)

// parallelEpsilon is the direction magnitude below which a ray is treated as parallel to a slab
const parallelEpsilon = 1e-9

// AABB is an axis-aligned box with inclusive bounds, Min[i] <= Max[i] on every axis
type AABB struct {
	Min vmath.Vec3F
	Max vmath.Vec3F
}

// NewAABB creates a box from two corners in any order
func NewAABB(a, b vmath.Vec3F) AABB {
	return AABB{Min: vmath.V3FMin(a, b), Max: vmath.V3FMax(a, b)}
}

// BoundPoints returns the tight box of points, ok is false for an empty set
func BoundPoints(points []vmath.Vec3F) (box AABB, ok bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box = AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = vmath.V3FMin(box.Min, p)
		box.Max = vmath.V3FMax(box.Max, p)
	}
	return box, true
}

// Overlap reports whether the boxes intersect on all three axes, touching counts
func (b AABB) Overlap(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether p lies inside the box, bounds inclusive
func (b AABB) Contains(p vmath.Vec3F) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) Center() vmath.Vec3F {
	return vmath.V3FScale(vmath.V3FAdd(b.Min, b.Max), 0.5)
}

func (b AABB) Size() vmath.Vec3F {
	return vmath.V3FSub(b.Max, b.Min)
}

// Translate returns the box moved by offset
func (b AABB) Translate(offset vmath.Vec3F) AABB {
	return AABB{Min: vmath.V3FAdd(b.Min, offset), Max: vmath.V3FAdd(b.Max, offset)}
}

// Octant returns one of the 8 equal sub-boxes split at the centre
// Index bits: 1 = +X half, 2 = +Y half, 4 = +Z half
func (b AABB) Octant(i int) AABB {
	c := b.Center()
	o := b
	if i&1 != 0 {
		o.Min.X = c.X
	} else {
		o.Max.X = c.X
	}
	if i&2 != 0 {
		o.Min.Y = c.Y
	} else {
		o.Max.Y = c.Y
	}
	if i&4 != 0 {
		o.Min.Z = c.Z
	} else {
		o.Max.Z = c.Z
	}
	return o
}

// Corners returns the 8 box corners indexed with the same bit layout as Octant
func (b AABB) Corners() [8]vmath.Vec3F {
	var out [8]vmath.Vec3F
	for i := range out {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		out[i] = p
	}
	return out
}

// IntersectRay runs the slab test of ray against the box over [tMin, tMax]
// Fails when the resulting interval is empty or lies entirely behind the origin
func (b AABB) IntersectRay(ray Ray, tMin, tMax float64) bool {
	_, _, ok := b.RayInterval(ray, tMin, tMax)
	return ok
}

// RayInterval is IntersectRay returning the clipped entry and exit parameters
// Entry is clamped to 0 when the caller range starts behind the origin
func (b AABB) RayInterval(ray Ray, tMin, tMax float64) (tEnter, tExit float64, ok bool) {
	for axis := 0; axis < 3; axis++ {
		lo := vmath.V3FAxis(b.Min, axis)
		hi := vmath.V3FAxis(b.Max, axis)
		origin := vmath.V3FAxis(ray.Origin, axis)
		dir := vmath.V3FAxis(ray.Direction, axis)

		// Parallel: origin must already be inside the slab
		if math.Abs(dir) < parallelEpsilon {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}

		inv := 1.0 / dir
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}

	if tMax < 0 {
		return 0, 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, tMax, true
}
