package camera

import (
	"math"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Orbit is the free camera circling a centre point
type Orbit struct {
	view
	center   vmath.Vec3F
	yaw      float64 // Radians about +Y
	pitch    float64 // Radians above the horizon
	distance float64
}

// NewOrbit returns an orbit camera around center with parameter defaults
func NewOrbit(center vmath.Vec3F) *Orbit {
	o := &Orbit{
		center:   center,
		yaw:      parameter.OrbitYaw,
		pitch:    parameter.OrbitPitch,
		distance: parameter.OrbitDistance,
	}
	o.update()
	return o
}

func (o *Orbit) LookAt(target vmath.Vec3F) {
	o.center = target
	o.update()
}

// Track is a no-op; the free camera ignores the lander
func (o *Orbit) Track(vmath.Vec3F) {}

// Rotate changes yaw by delta radians
func (o *Orbit) Rotate(delta float64) {
	o.yaw += delta
	o.update()
}

// Zoom changes distance, clamped to stay outside the centre
func (o *Orbit) Zoom(delta float64) {
	o.distance = math.Max(parameter.OrbitZoomStep, o.distance+delta)
	o.update()
}

func (o *Orbit) Distance() float64 {
	return o.distance
}

func (o *Orbit) update() {
	cp := math.Cos(o.pitch)
	eye := vmath.Vec3F{
		X: o.center.X + o.distance*cp*math.Sin(o.yaw),
		Y: o.center.Y + o.distance*math.Sin(o.pitch),
		Z: o.center.Z + o.distance*cp*math.Cos(o.yaw),
	}
	o.place(eye, o.center)
}
