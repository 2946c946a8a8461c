package spatial

import (
	"math"
	"sort"

	"github.com/lixenwraith/vi-lander/vmath"
)

// Hit is the result of a ray query
type Hit struct {
	Leaf     NodeID
	Point    int
	Position vmath.Vec3F
	T        float64
}

type childEntry struct {
	id NodeID
	t  float64
}

// QueryNearest descends nodes the ray enters, nearest child first, and reports a point of the first leaf reached
func (t *Octree) QueryNearest(ray Ray) (Hit, bool, error) {
	r, err := ray.normalized()
	if err != nil {
		return Hit{}, false, err
	}
	if t.empty() {
		return Hit{}, false, nil
	}
	if !t.nodes[RootID].Bounds.IntersectRay(r, 0, math.Inf(1)) {
		return Hit{}, false, nil
	}
	hit, ok := t.rayDescend(RootID, r)
	return hit, ok, nil
}

func (t *Octree) rayDescend(id NodeID, r Ray) (Hit, bool) {
	n := &t.nodes[id]
	if n.IsLeaf() {
		if len(n.Points) == 0 {
			return Hit{}, false
		}
		return t.pickPoint(id, r), true
	}

	var entries [8]childEntry
	count := 0
	for _, c := range n.Children {
		if c == NoNode {
			continue
		}
		tEnter, _, ok := t.nodes[c].Bounds.RayInterval(r, 0, math.Inf(1))
		if !ok {
			continue
		}
		entries[count] = childEntry{id: c, t: tEnter}
		count++
	}
	sorted := entries[:count]
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].t < sorted[b].t })

	for _, e := range sorted {
		if hit, ok := t.rayDescend(e.id, r); ok {
			return hit, true
		}
	}
	return Hit{}, false
}

func (t *Octree) pickPoint(id NodeID, r Ray) Hit {
	points := t.nodes[id].Points
	if t.pick == PickFirst {
		p := t.mesh.Vertex(points[0])
		return Hit{Leaf: id, Point: points[0], Position: p, T: r.Project(p)}
	}

	// Points ahead of the origin win on perpendicular distance; when the origin
	// sits past every point of the leaf the nearest along the ray is reported
	best := -1
	var bestPos vmath.Vec3F
	var bestDist, bestT float64
	for _, idx := range points {
		p := t.mesh.Vertex(idx)
		tp := r.Project(p)
		if tp < 0 {
			continue
		}
		d := r.DistanceSq(p)
		if best < 0 || d < bestDist || (d == bestDist && (tp < bestT || (tp == bestT && idx < best))) {
			best, bestPos, bestDist, bestT = idx, p, d, tp
		}
	}
	if best >= 0 {
		return Hit{Leaf: id, Point: best, Position: bestPos, T: bestT}
	}

	for _, idx := range points {
		p := t.mesh.Vertex(idx)
		tp := r.Project(p)
		d := r.DistanceSq(p)
		if best < 0 || -tp < -bestT || (tp == bestT && (d < bestDist || (d == bestDist && idx < best))) {
			best, bestPos, bestDist, bestT = idx, p, d, tp
		}
	}
	return Hit{Leaf: id, Point: best, Position: bestPos, T: bestT}
}

// QueryOverlapping returns the boxes of every leaf overlapping box
func (t *Octree) QueryOverlapping(box AABB) ([]AABB, bool) {
	out := t.AppendOverlapping(nil, box)
	return out, len(out) > 0
}

// AppendOverlapping appends overlapping leaf boxes to dst, reusing its capacity
func (t *Octree) AppendOverlapping(dst []AABB, box AABB) []AABB {
	if t.empty() {
		return dst
	}
	return t.appendOverlapping(dst, RootID, box)
}

func (t *Octree) appendOverlapping(dst []AABB, id NodeID, box AABB) []AABB {
	n := &t.nodes[id]
	if !n.Bounds.Overlap(box) {
		return dst
	}
	if n.IsLeaf() {
		return append(dst, n.Bounds)
	}
	for _, c := range n.Children {
		if c != NoNode {
			dst = t.appendOverlapping(dst, c, box)
		}
	}
	return dst
}

// OverlappingLeaves returns the ids of leaves overlapping box in traversal order
func (t *Octree) OverlappingLeaves(box AABB) []NodeID {
	if t.empty() {
		return nil
	}
	var out []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := &t.nodes[id]
		if !n.Bounds.Overlap(box) {
			return
		}
		if n.IsLeaf() {
			out = append(out, id)
			return
		}
		for _, c := range n.Children {
			if c != NoNode {
				walk(c)
			}
		}
	}
	walk(RootID)
	return out
}

// Leaves returns every leaf id in traversal order
func (t *Octree) Leaves() []NodeID {
	if t.empty() {
		return nil
	}
	out := make([]NodeID, 0, t.leafCount)
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			out = append(out, NodeID(i))
		}
	}
	return out
}
