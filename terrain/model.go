package terrain

import (
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Model is the lander's static geometry in local space
type Model struct {
	Name    string
	Extents spatial.AABB

	// Outline points drawn by the renderer
	Outline []vmath.Vec3F
}

// LanderModel returns the default lander sized to the parameter extents
func LanderModel() Model {
	return NewModel("lander", spatial.NewAABB(parameter.LanderExtentMin, parameter.LanderExtentMax))
}

// NewModel builds an outline of a descent stage body over four splayed legs within extents
func NewModel(name string, extents spatial.AABB) Model {
	c := extents.Center()
	s := extents.Size()
	bodyLow := extents.Min.Y + s.Y*0.35

	var outline []vmath.Vec3F
	// Body: top and bottom rings of the inner box
	for _, y := range []float64{bodyLow, extents.Max.Y} {
		for _, dx := range []float64{-0.3, 0.3} {
			for _, dz := range []float64{-0.3, 0.3} {
				outline = append(outline, vmath.Vec3F{X: c.X + dx*s.X, Y: y, Z: c.Z + dz*s.Z})
			}
		}
	}
	// Legs: feet on the four base corners, knees halfway to the body
	corners := extents.Corners()
	hip := vmath.Vec3F{X: c.X, Y: bodyLow, Z: c.Z}
	for _, i := range []int{0, 1, 4, 5} {
		outline = append(outline, corners[i], vmath.V3FLerp(corners[i], hip, 0.5))
	}

	return Model{Name: name, Extents: extents, Outline: outline}
}
