package camera

import (
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Mode selects the active camera
type Mode uint8

const (
	ModeOrbit Mode = iota
	ModeTop
	ModeFollow
	ModeFront
	ModeGround
	modeCount
)

var modeNames = [...]string{"orbit", "top", "follow", "front", "ground"}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a name to a mode, ok is false for unknown names
func ParseMode(s string) (Mode, bool) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return ModeOrbit, false
}

// Rig owns one camera per mode and tracks the lander with all of them
type Rig struct {
	cameras [modeCount]Camera
	active  Mode
	orbit   *Orbit
}

// NewRig builds the default camera set; center is the orbit focus
func NewRig(center vmath.Vec3F) *Rig {
	orbit := NewOrbit(center)
	r := &Rig{orbit: orbit}
	r.cameras[ModeOrbit] = orbit
	r.cameras[ModeTop] = NewTop()
	r.cameras[ModeFollow] = NewFollow()
	r.cameras[ModeFront] = NewFront()
	r.cameras[ModeGround] = NewFixed(parameter.GroundCameraPosition, center)
	return r
}

// Select makes m the active camera, out of range modes are ignored
func (r *Rig) Select(m Mode) {
	if m < modeCount {
		r.active = m
	}
}

func (r *Rig) Mode() Mode {
	return r.active
}

func (r *Rig) Active() Camera {
	return r.cameras[r.active]
}

// Camera returns the camera for mode m, nil when out of range
func (r *Rig) Camera(m Mode) Camera {
	if m < modeCount {
		return r.cameras[m]
	}
	return nil
}

// Orbit exposes the free camera for rotate and zoom controls
func (r *Rig) Orbit() *Orbit {
	return r.orbit
}

// Track updates every camera with the lander position
func (r *Rig) Track(lander vmath.Vec3F) {
	for _, c := range r.cameras {
		c.Track(lander)
	}
}
