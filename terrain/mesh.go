package terrain

import (
	"math"

	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Mesh is a read-only indexed triangle mesh
type Mesh struct {
	Vertices []vmath.Vec3F
	Indices  []uint32

	grid *gridLayout
}

// gridLayout describes a heightfield mesh for constant-time height lookup
type gridLayout struct {
	cells   int
	spacing float64
	originX float64
	originZ float64
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns vertex i
func (m *Mesh) Vertex(i int) vmath.Vec3F {
	return m.Vertices[i]
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i
func (m *Mesh) Triangle(i int) [3]vmath.Vec3F {
	return [3]vmath.Vec3F{
		m.Vertices[m.Indices[3*i]],
		m.Vertices[m.Indices[3*i+1]],
		m.Vertices[m.Indices[3*i+2]],
	}
}

// Bounds returns the tight box of all vertices, zero box for an empty mesh
func (m *Mesh) Bounds() spatial.AABB {
	b, _ := spatial.BoundPoints(m.Vertices)
	return b
}

// HeightAt returns the height of the grid sample nearest (x, z)
// ok is false outside the grid or for meshes not built by Generate
func (m *Mesh) HeightAt(x, z float64) (float64, bool) {
	g := m.grid
	if g == nil {
		return 0, false
	}
	col := int(math.Round((x - g.originX) / g.spacing))
	row := int(math.Round((z - g.originZ) / g.spacing))
	if col < 0 || row < 0 || col > g.cells || row > g.cells {
		return 0, false
	}
	return m.Vertices[row*(g.cells+1)+col].Y, true
}
