package spatial

import (
	"github.com/lixenwraith/vi-lander/vmath"
)

// NodeID addresses a node in the octree arena
type NodeID int32

// NoNode marks an absent child
const NoNode NodeID = -1

// RootID is the arena index of the root of a built tree
const RootID NodeID = 0

// Mesh is the read-only vertex source indexed by the tree
type Mesh interface {
	VertexCount() int
	Vertex(i int) vmath.Vec3F
}

// Node is one octree cell; only leaves carry points
type Node struct {
	Bounds   AABB
	Depth    int
	Children [8]NodeID
	Points   []int
}

// IsLeaf reports whether the node has no materialised children
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != NoNode {
			return false
		}
	}
	return true
}

// PickPolicy selects which stored point of the hit leaf a ray query reports
type PickPolicy uint8

const (
	// PickClosest returns the point nearest the ray line
	PickClosest PickPolicy = iota
	// PickFirst returns the first stored point of the leaf
	PickFirst
)

// ParsePickPolicy maps a config string to a policy, unknown values fall back to PickClosest
func ParsePickPolicy(s string) PickPolicy {
	if s == "first" {
		return PickFirst
	}
	return PickClosest
}

func (p PickPolicy) String() string {
	if p == PickFirst {
		return "first"
	}
	return "closest"
}

// Octree is a bounding-volume hierarchy over mesh vertices
// Immutable after Build and safe for concurrent readers
type Octree struct {
	mesh         Mesh
	nodes        []Node
	leafCapacity int
	maxDepth     int
	pick         PickPolicy
	leafCount    int
}

// Node returns the arena node for id, nil when out of range
func (t *Octree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// NodeCount returns the number of materialised nodes
func (t *Octree) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

func (t *Octree) LeafCount() int {
	if t == nil {
		return 0
	}
	return t.leafCount
}

// Bounds returns the root box, ok is false for an empty tree
func (t *Octree) Bounds() (AABB, bool) {
	if t.empty() {
		return AABB{}, false
	}
	return t.nodes[RootID].Bounds, true
}

func (t *Octree) Mesh() Mesh {
	if t == nil {
		return nil
	}
	return t.mesh
}

func (t *Octree) PickPolicy() PickPolicy {
	return t.pick
}

func (t *Octree) empty() bool {
	return t == nil || len(t.nodes) == 0
}
