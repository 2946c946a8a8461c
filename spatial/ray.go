package spatial

import (
	"fmt"

	"github.com/lixenwraith/vi-lander/vmath"
)

// Ray is an origin and a unit direction, parametrised by distance t along the direction
type Ray struct {
	Origin    vmath.Vec3F
	Direction vmath.Vec3F
}

// NewRay normalises direction, a zero-length direction is rejected
func NewRay(origin, direction vmath.Vec3F) (Ray, error) {
	mag := vmath.V3FMag(direction)
	if mag == 0 {
		return Ray{}, fmt.Errorf("%w: zero-length ray direction", ErrInvalidArgument)
	}
	return Ray{Origin: origin, Direction: vmath.V3FScale(direction, 1/mag)}, nil
}

// At returns the point at distance t
func (r Ray) At(t float64) vmath.Vec3F {
	return vmath.V3FAdd(r.Origin, vmath.V3FScale(r.Direction, t))
}

// Project returns the ray parameter of the foot of the perpendicular from p
func (r Ray) Project(p vmath.Vec3F) float64 {
	return vmath.V3FDot(vmath.V3FSub(p, r.Origin), r.Direction)
}

// DistanceSq returns the squared perpendicular distance from p to the infinite line
func (r Ray) DistanceSq(p vmath.Vec3F) float64 {
	d := vmath.V3FSub(p, r.Origin)
	t := vmath.V3FDot(d, r.Direction)
	return vmath.V3FMagSq(d) - t*t
}

// normalized re-validates a ray that may have been built without NewRay
func (r Ray) normalized() (Ray, error) {
	return NewRay(r.Origin, r.Direction)
}
