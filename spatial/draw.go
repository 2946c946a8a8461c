package spatial

// Drawer receives boxes from debug traversal
type Drawer interface {
	DrawBox(box AABB, depth int, leaf bool)
}

// DrawerFunc adapts a function to Drawer
type DrawerFunc func(box AABB, depth int, leaf bool)

func (f DrawerFunc) DrawBox(box AABB, depth int, leaf bool) {
	f(box, depth, leaf)
}

// DrawBounded renders every node with depth <= maxDepth, returns the number drawn
func (t *Octree) DrawBounded(d Drawer, maxDepth int) int {
	if t.empty() || maxDepth < 0 {
		return 0
	}
	return t.drawBounded(d, RootID, maxDepth)
}

func (t *Octree) drawBounded(d Drawer, id NodeID, maxDepth int) int {
	n := &t.nodes[id]
	if n.Depth > maxDepth {
		return 0
	}
	leaf := n.IsLeaf()
	d.DrawBox(n.Bounds, n.Depth, leaf)
	drawn := 1
	if leaf || n.Depth == maxDepth {
		return drawn
	}
	for _, c := range n.Children {
		if c != NoNode {
			drawn += t.drawBounded(d, c, maxDepth)
		}
	}
	return drawn
}

// DrawLeaves renders only leaves regardless of depth and returns how many were drawn
func (t *Octree) DrawLeaves(d Drawer) int {
	if t.empty() {
		return 0
	}
	return t.drawLeaves(d, RootID)
}

func (t *Octree) drawLeaves(d Drawer, id NodeID) int {
	n := &t.nodes[id]
	if n.IsLeaf() {
		d.DrawBox(n.Bounds, n.Depth, true)
		return 1
	}
	count := 0
	for _, c := range n.Children {
		if c != NoNode {
			count += t.drawLeaves(d, c)
		}
	}
	return count
}
