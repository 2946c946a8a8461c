package spatial

import (
	"fmt"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// BuildOption configures Build
type BuildOption func(*Octree)

// WithMaxDepth caps subdivision depth, the root is depth 0
func WithMaxDepth(depth int) BuildOption {
	return func(t *Octree) {
		t.maxDepth = depth
	}
}

// WithPickPolicy sets the leaf point policy used by QueryNearest
func WithPickPolicy(p PickPolicy) BuildOption {
	return func(t *Octree) {
		t.pick = p
	}
}

// Build indexes every vertex of mesh into a new octree
// A node splits while it holds more than leafCapacity points and is above the max depth
func Build(mesh Mesh, leafCapacity int, opts ...BuildOption) (*Octree, error) {
	if leafCapacity <= 0 {
		return nil, fmt.Errorf("%w: leaf capacity %d must be positive", ErrInvalidArgument, leafCapacity)
	}
	if mesh == nil || mesh.VertexCount() == 0 {
		return nil, fmt.Errorf("%w: mesh has no vertices", ErrConfiguration)
	}

	t := &Octree{
		mesh:         mesh,
		leafCapacity: leafCapacity,
		maxDepth:     parameter.OctreeMaxDepth,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidArgument, t.maxDepth)
	}

	count := mesh.VertexCount()
	points := make([]int, count)
	root := AABB{Min: mesh.Vertex(0), Max: mesh.Vertex(0)}
	for i := 0; i < count; i++ {
		points[i] = i
		v := mesh.Vertex(i)
		root.Min = vmath.V3FMin(root.Min, v)
		root.Max = vmath.V3FMax(root.Max, v)
	}

	// Rough arena estimate, grows as needed
	t.nodes = make([]Node, 0, 2*count/leafCapacity+1)
	t.subdivide(root, points, 0)
	return t, nil
}

// subdivide appends the node for box and its descendants, returning its id
func (t *Octree) subdivide(box AABB, points []int, depth int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Bounds:   box,
		Depth:    depth,
		Children: [8]NodeID{NoNode, NoNode, NoNode, NoNode, NoNode, NoNode, NoNode, NoNode},
	})

	if len(points) <= t.leafCapacity || depth >= t.maxDepth {
		t.nodes[id].Points = points
		t.leafCount++
		return id
	}

	var buckets [8][]int
	center := box.Center()
	for _, p := range points {
		i := octantOf(t.mesh.Vertex(p), center)
		buckets[i] = append(buckets[i], p)
	}

	for i := range buckets {
		if len(buckets[i]) == 0 {
			continue
		}
		child := t.subdivide(box.Octant(i), buckets[i], depth+1)
		// Slice may have grown, index rather than hold a pointer
		t.nodes[id].Children[i] = child
	}
	return id
}

// octantOf picks the octant index for p, coordinates equal to the centre go low
func octantOf(p, center vmath.Vec3F) int {
	i := 0
	if p.X > center.X {
		i |= 1
	}
	if p.Y > center.Y {
		i |= 2
	}
	if p.Z > center.Z {
		i |= 4
	}
	return i
}
