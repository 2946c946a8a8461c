package camera

import (
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Tracking rides along with the lander at a fixed offset, aiming at lander+aim
type Tracking struct {
	view
	offset vmath.Vec3F
	aim    vmath.Vec3F
}

// NewTracking creates a tracking camera
func NewTracking(offset, aim vmath.Vec3F) *Tracking {
	t := &Tracking{offset: offset, aim: aim}
	t.Track(vmath.Vec3F{})
	return t
}

// NewTop looks straight down from just above the lander
func NewTop() *Tracking {
	return NewTracking(vmath.Vec3F{Y: parameter.SensorOffset}, vmath.Vec3F{Y: -10})
}

// NewFollow trails the lander and looks at it
func NewFollow() *Tracking {
	return NewTracking(parameter.FollowOffset, vmath.Vec3F{})
}

// NewFront sits above the lander's nose looking ahead and down
func NewFront() *Tracking {
	return NewTracking(parameter.FrontOffset, vmath.Vec3F{Y: -5, Z: -30})
}

// LookAt overrides the aim point until the next Track
func (t *Tracking) LookAt(target vmath.Vec3F) {
	t.place(t.eye, target)
}

func (t *Tracking) Track(lander vmath.Vec3F) {
	t.place(vmath.V3FAdd(lander, t.offset), vmath.V3FAdd(lander, t.aim))
}

// Fixed stays in place and turns to face the lander
type Fixed struct {
	view
}

// NewFixed creates a fixed camera at eye looking at target
func NewFixed(eye, target vmath.Vec3F) *Fixed {
	f := &Fixed{}
	f.place(eye, target)
	return f
}

func (f *Fixed) LookAt(target vmath.Vec3F) {
	f.place(f.eye, target)
}

func (f *Fixed) Track(lander vmath.Vec3F) {
	f.place(f.eye, lander)
}
