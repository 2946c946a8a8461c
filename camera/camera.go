package camera

import (
	"math"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Camera is a viewpoint that can follow the lander and map between world and screen
type Camera interface {
	Position() vmath.Vec3F
	Target() vmath.Vec3F

	// LookAt aims the camera at target
	LookAt(target vmath.Vec3F)

	// Track is called once per tick with the lander position
	Track(lander vmath.Vec3F)

	// Project maps a world point to fractional screen cell coordinates and view depth
	Project(p vmath.Vec3F, vp Viewport) (x, y, depth float64, ok bool)

	// ScreenToWorld returns the ray from the eye through the centre of cell (sx, sy)
	ScreenToWorld(sx, sy int, vp Viewport) spatial.Ray
}

// Viewport is the terminal area a camera renders into
type Viewport struct {
	Width, Height int
	FovY          float64 // Degrees
	CellAspect    float64 // Cell height / width
	Near          float64
}

// NewViewport returns a viewport with parameter defaults
func NewViewport(width, height int) Viewport {
	return Viewport{
		Width:      width,
		Height:     height,
		FovY:       parameter.CameraFovY,
		CellAspect: parameter.CameraCellAspect,
		Near:       parameter.CameraNear,
	}
}

func (vp Viewport) scale() float64 {
	return float64(vp.Height) / 2 / math.Tan(vp.FovY*math.Pi/360)
}

// view is the shared eye/target state and orthonormal basis
type view struct {
	eye     vmath.Vec3F
	target  vmath.Vec3F
	forward vmath.Vec3F
	right   vmath.Vec3F
	up      vmath.Vec3F
}

func (v *view) Position() vmath.Vec3F { return v.eye }
func (v *view) Target() vmath.Vec3F   { return v.target }

// place sets eye and target and rebuilds the basis
// Looking straight up or down uses -Z as screen up so north stays at the top
func (v *view) place(eye, target vmath.Vec3F) {
	v.eye = eye
	v.target = target

	forward := vmath.V3FSub(target, eye)
	if vmath.V3FIsZero(forward) {
		forward = vmath.Vec3F{Z: -1}
	}
	v.forward = vmath.V3FNormalize(forward)

	worldUp := vmath.UnitY
	if math.Abs(vmath.V3FDot(v.forward, worldUp)) > 0.999 {
		worldUp = vmath.Vec3F{Z: -1}
	}
	v.right = vmath.V3FNormalize(vmath.V3FCross(v.forward, worldUp))
	v.up = vmath.V3FCross(v.right, v.forward)
}

func (v *view) Project(p vmath.Vec3F, vp Viewport) (x, y, depth float64, ok bool) {
	d := vmath.V3FSub(p, v.eye)
	depth = vmath.V3FDot(d, v.forward)
	if depth <= vp.Near {
		return 0, 0, depth, false
	}
	s := vp.scale()
	x = float64(vp.Width)/2 + vmath.V3FDot(d, v.right)/depth*s*vp.CellAspect
	y = float64(vp.Height)/2 - vmath.V3FDot(d, v.up)/depth*s
	return x, y, depth, true
}

func (v *view) ScreenToWorld(sx, sy int, vp Viewport) spatial.Ray {
	s := vp.scale()
	nx := (float64(sx) + 0.5 - float64(vp.Width)/2) / (s * vp.CellAspect)
	ny := -(float64(sy) + 0.5 - float64(vp.Height)/2) / s
	dir := vmath.V3FAdd(v.forward, vmath.V3FAdd(vmath.V3FScale(v.right, nx), vmath.V3FScale(v.up, ny)))
	// Forward is unit length so dir is never zero
	return spatial.Ray{Origin: v.eye, Direction: vmath.V3FNormalize(dir)}
}
