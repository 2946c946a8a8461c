package render

import (
	"math"

	"github.com/lixenwraith/vi-lander/camera"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// boxEdges are corner index pairs of the 12 box edges, corners follow AABB.Corners bit layout
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Z
}

// Canvas draws world-space primitives through a camera into a RenderBuffer
type Canvas struct {
	buf *RenderBuffer
	cam camera.Camera
	vp  camera.Viewport
}

func NewCanvas(buf *RenderBuffer, cam camera.Camera, vp camera.Viewport) *Canvas {
	return &Canvas{buf: buf, cam: cam, vp: vp}
}

// Point plots r at the projection of p
func (c *Canvas) Point(p vmath.Vec3F, r rune, fg RGB) bool {
	x, y, depth, ok := c.cam.Project(p, c.vp)
	if !ok {
		return false
	}
	return c.buf.Plot(int(math.Floor(x)), int(math.Floor(y)), depth, r, fg)
}

// Line samples the segment a-b once per crossed cell, clipping at the near plane
func (c *Canvas) Line(a, b vmath.Vec3F, r rune, fg RGB) {
	a, b, ok := c.clip(a, b)
	if !ok {
		return
	}
	ax, ay, ad, _ := c.cam.Project(a, c.vp)
	bx, by, bd, _ := c.cam.Project(b, c.vp)

	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	// Off-screen segments can project to huge spans
	steps = min(steps, 4*(c.vp.Width+c.vp.Height))
	if steps == 0 {
		c.buf.Plot(int(math.Floor(ax)), int(math.Floor(ay)), ad, r, fg)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + (bx-ax)*t
		y := ay + (by-ay)*t
		d := ad + (bd-ad)*t
		c.buf.Plot(int(math.Floor(x)), int(math.Floor(y)), d, r, fg)
	}
}

// clip trims the segment to the part in front of the near plane
func (c *Canvas) clip(a, b vmath.Vec3F) (vmath.Vec3F, vmath.Vec3F, bool) {
	eye := c.cam.Position()
	fwd := vmath.V3FNormalize(vmath.V3FSub(c.cam.Target(), eye))
	if vmath.V3FIsZero(fwd) {
		fwd = vmath.Vec3F{Z: -1}
	}
	near := c.vp.Near * 1.0001
	da := vmath.V3FDot(vmath.V3FSub(a, eye), fwd) - near
	db := vmath.V3FDot(vmath.V3FSub(b, eye), fwd) - near
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = vmath.V3FLerp(a, b, da/(da-db))
	case db < 0:
		b = vmath.V3FLerp(b, a, db/(db-da))
	}
	return a, b, true
}

// Box draws the 12 edges of box
func (c *Canvas) Box(box spatial.AABB, r rune, fg RGB) {
	corners := box.Corners()
	for _, e := range boxEdges {
		c.Line(corners[e[0]], corners[e[1]], r, fg)
	}
}

// DrawBox implements spatial.Drawer, coloring octree nodes by depth
func (c *Canvas) DrawBox(box spatial.AABB, depth int, leaf bool) {
	r := '·'
	if leaf {
		r = '+'
	}
	c.Box(box, r, LevelColor(depth))
}
