package spatial

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"

	"github.com/lixenwraith/vi-lander/vmath"
)

type pointMesh []vmath.Vec3F

func (m pointMesh) VertexCount() int { return len(m) }
func (m pointMesh) Vertex(i int) vmath.Vec3F { return m[i] }

func randomMesh(seed uint64, n int, extent float64) pointMesh {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	m := make(pointMesh, n)
	for i := range m {
		m[i] = vmath.Vec3F{
			X: (rng.Float64()*2 - 1) * extent,
			Y: (rng.Float64()*2 - 1) * extent * 0.25,
			Z: (rng.Float64()*2 - 1) * extent,
		}
	}
	return m
}

func gridMesh(n int, spacing float64) pointMesh {
	var m pointMesh
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			m = append(m, vmath.Vec3F{X: float64(x) * spacing, Z: float64(z) * spacing})
		}
	}
	return m
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(pointMesh{}, 4); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for empty mesh, got %v", err)
	}
	if _, err := Build(nil, 4); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for nil mesh, got %v", err)
	}
	if _, err := Build(gridMesh(3, 1), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero capacity, got %v", err)
	}
	if _, err := Build(gridMesh(3, 1), 1, WithMaxDepth(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative depth, got %v", err)
	}
}

func TestBuildLeafUnionIsInputSet(t *testing.T) {
	for _, capacity := range []int{1, 4, 20, 1000} {
		mesh := randomMesh(uint64(capacity), 500, 100)
		tree, err := Build(mesh, capacity)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		seen := make(map[int]int)
		for _, id := range tree.Leaves() {
			n := tree.Node(id)
			for _, p := range n.Points {
				seen[p]++
				if !n.Bounds.Contains(mesh[p]) {
					t.Errorf("capacity %d: point %d outside its leaf %v", capacity, p, n.Bounds)
				}
			}
			if len(n.Points) > capacity && n.Depth < tree.maxDepth {
				t.Errorf("capacity %d: leaf %d holds %d points above max depth", capacity, id, len(n.Points))
			}
		}

		if len(seen) != len(mesh) {
			t.Errorf("capacity %d: expected %d distinct points, got %d", capacity, len(mesh), len(seen))
		}
		for p, c := range seen {
			if c != 1 {
				t.Errorf("capacity %d: point %d stored %d times", capacity, p, c)
			}
		}
	}
}

func TestBuildRootIsTightBound(t *testing.T) {
	mesh := pointMesh{{X: -3, Y: 1, Z: 2}, {X: 4, Y: -2, Z: 0}, {X: 0, Y: 7, Z: -1}}
	tree, err := Build(mesh, 1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	root, ok := tree.Bounds()
	if !ok || root != box(-3, -2, -1, 4, 7, 2) {
		t.Errorf("Expected tight root bound, got %v", root)
	}
}

func TestBuildCentreGoesLow(t *testing.T) {
	// Two corners plus the exact centre, capacity 1 forces one split
	mesh := pointMesh{{}, {X: 2, Y: 2, Z: 2}, {X: 1, Y: 1, Z: 1}}
	tree, err := Build(mesh, 2, WithMaxDepth(1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	root := tree.Node(RootID)
	low := tree.Node(root.Children[0])
	if low == nil {
		t.Fatal("Expected low octant to exist")
	}
	if !reflect.DeepEqual(low.Points, []int{0, 2}) {
		t.Errorf("Expected centre point in octant 0 with origin, got %v", low.Points)
	}
	for i := 1; i < 7; i++ {
		if root.Children[i] != NoNode {
			t.Errorf("Expected empty octant %d to be absent", i)
		}
	}
}

func TestBuildMaxDepthStopsDuplicates(t *testing.T) {
	mesh := make(pointMesh, 50)
	tree, err := Build(mesh, 1, WithMaxDepth(3))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Expected single leaf for coincident points, got %d", len(leaves))
	}
	if n := tree.Node(leaves[0]); n.Depth != 3 || len(n.Points) != 50 {
		t.Errorf("Expected depth 3 leaf with 50 points, got depth %d with %d", n.Depth, len(n.Points))
	}
}

func TestBuildIdempotent(t *testing.T) {
	mesh := randomMesh(7, 300, 50)
	a, err := Build(mesh, 8)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := Build(mesh, 8)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !reflect.DeepEqual(a.nodes, b.nodes) {
		t.Error("Expected identical trees from identical input")
	}
}

func TestQueryOverlappingMatchesExhaustiveScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 43))
	for seed := uint64(1); seed <= 5; seed++ {
		mesh := randomMesh(seed, 400, 80)
		tree, err := Build(mesh, 6)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		for q := 0; q < 50; q++ {
			c := vmath.Vec3F{X: rng.Float64()*200 - 100, Y: rng.Float64()*50 - 25, Z: rng.Float64()*200 - 100}
			half := vmath.Vec3F{X: rng.Float64() * 20, Y: rng.Float64() * 20, Z: rng.Float64() * 20}
			query := NewAABB(vmath.V3FSub(c, half), vmath.V3FAdd(c, half))

			var want []NodeID
			for _, id := range tree.Leaves() {
				if tree.Node(id).Bounds.Overlap(query) {
					want = append(want, id)
				}
			}
			got := tree.OverlappingLeaves(query)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			if len(got) != len(want) || (len(want) > 0 && !reflect.DeepEqual(got, want)) {
				t.Fatalf("seed %d query %d: expected %v, got %v", seed, q, want, got)
			}

			boxes, ok := tree.QueryOverlapping(query)
			if ok != (len(want) > 0) || len(boxes) != len(want) {
				t.Fatalf("seed %d query %d: expected %d boxes (ok=%v), got %d", seed, q, len(want), len(want) > 0, len(boxes))
			}
			wantBoxes := make(map[AABB]int, len(want))
			for _, id := range want {
				wantBoxes[tree.Node(id).Bounds]++
			}
			for _, b := range boxes {
				if wantBoxes[b] == 0 {
					t.Fatalf("seed %d query %d: unexpected box %v", seed, q, b)
				}
				wantBoxes[b]--
			}
		}
	}
}

func TestAppendOverlappingReusesBuffer(t *testing.T) {
	tree, err := Build(gridMesh(10, 1), 4)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	buf := make([]AABB, 0, 64)
	buf = tree.AppendOverlapping(buf[:0], box(-1, -1, -1, 20, 1, 20))
	if len(buf) != tree.LeafCount() {
		t.Errorf("Expected all %d leaves, got %d", tree.LeafCount(), len(buf))
	}
	buf = tree.AppendOverlapping(buf[:0], box(100, 100, 100, 101, 101, 101))
	if len(buf) != 0 {
		t.Errorf("Expected no overlap far away, got %d", len(buf))
	}
}

func TestQueryNearestThroughCentre(t *testing.T) {
	mesh := gridMesh(9, 1)
	tree, err := Build(mesh, 4)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	root, _ := tree.Bounds()
	c := root.Center()

	ray, _ := NewRay(vmath.Vec3F{X: c.X, Y: 10, Z: c.Z}, vmath.Vec3F{Y: -1})
	hit, ok, err := tree.QueryNearest(ray)
	if err != nil || !ok {
		t.Fatalf("Expected hit through centre, got ok=%v err=%v", ok, err)
	}
	if hit.Position != (vmath.Vec3F{X: 4, Z: 4}) {
		t.Errorf("Expected closest point (4,0,4), got %v", hit.Position)
	}
	if hit.T != 10 {
		t.Errorf("Expected t=10, got %v", hit.T)
	}
	if !tree.Node(hit.Leaf).IsLeaf() {
		t.Error("Expected hit node to be a leaf")
	}
}

func TestQueryNearestMissAndErrors(t *testing.T) {
	tree, err := Build(gridMesh(5, 1), 2)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	away, _ := NewRay(vmath.Vec3F{X: 2, Y: 10, Z: 2}, vmath.Vec3F{Y: 1})
	if _, ok, _ := tree.QueryNearest(away); ok {
		t.Error("Expected miss for ray pointing away")
	}

	if _, _, err := tree.QueryNearest(Ray{Origin: vmath.Vec3F{}, Direction: vmath.Vec3F{}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}

	var empty *Octree
	down, _ := NewRay(vmath.Vec3F{Y: 10}, vmath.Vec3F{Y: -1})
	if _, ok, err := empty.QueryNearest(down); ok || err != nil {
		t.Errorf("Expected no hit on nil tree, got ok=%v err=%v", ok, err)
	}
}

func TestQueryNearestPickFirst(t *testing.T) {
	mesh := pointMesh{{X: 0}, {X: 1}, {X: 2}}
	tree, err := Build(mesh, 10, WithPickPolicy(PickFirst))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ray, _ := NewRay(vmath.Vec3F{X: 2, Y: 5}, vmath.Vec3F{Y: -1})
	hit, ok, _ := tree.QueryNearest(ray)
	if !ok || hit.Point != 0 {
		t.Errorf("Expected first stored point 0, got %d (ok=%v)", hit.Point, ok)
	}

	closest, _ := Build(mesh, 10)
	hit, ok, _ = closest.QueryNearest(ray)
	if !ok || hit.Point != 2 {
		t.Errorf("Expected closest point 2, got %d (ok=%v)", hit.Point, ok)
	}
}

func TestQueryNearestIgnoresPointsBehindOrigin(t *testing.T) {
	// Sloped leaf whose box contains the ray origin
	mesh := pointMesh{{X: 0.5, Y: 8}, {X: 1.5, Y: 2}, {X: 3}}
	tree, err := Build(mesh, 20)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ray, _ := NewRay(vmath.Vec3F{X: 0.6, Y: 5}, vmath.Vec3F{Y: -1})
	hit, ok, _ := tree.QueryNearest(ray)
	if !ok {
		t.Fatal("Expected a hit from inside the leaf")
	}
	if hit.Point != 1 || hit.T != 3 {
		t.Errorf("Expected point 1 ahead at t=3, got point %d at t=%v", hit.Point, hit.T)
	}
	if hit.T < 0 {
		t.Errorf("Expected non-negative t, got %v", hit.T)
	}
}

func TestQueryNearestAllPointsBehindOrigin(t *testing.T) {
	mesh := pointMesh{{X: 1}, {Y: 1}}
	tree, err := Build(mesh, 20)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ray, _ := NewRay(vmath.Vec3F{X: 0.8, Y: 0.8}, vmath.Vec3F{X: 1, Y: 1})
	hit, ok, _ := tree.QueryNearest(ray)
	if !ok {
		t.Fatal("Expected a hit from inside the leaf")
	}
	if hit.Point != 0 {
		t.Errorf("Expected nearest-along-ray point 0, got %d", hit.Point)
	}
	if hit.T >= 0 {
		t.Errorf("Expected negative t when every point is behind, got %v", hit.T)
	}
}

func TestAltitudeNeverNegativeAboveTerrain(t *testing.T) {
	mesh := randomMesh(11, 800, 40)
	tree, err := Build(mesh, 20)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	root, _ := tree.Bounds()

	for x := root.Min.X; x <= root.Max.X; x += 2 {
		for z := root.Min.Z; z <= root.Max.Z; z += 2 {
			ray, _ := NewRay(vmath.Vec3F{X: x, Y: root.Max.Y - 0.5, Z: z}, vmath.Vec3F{Y: -1})
			hit, ok, _ := tree.QueryNearest(ray)
			if !ok {
				continue
			}
			if hit.T >= 0 {
				continue
			}
			for _, idx := range tree.Node(hit.Leaf).Points {
				if mesh[idx].Y <= ray.Origin.Y {
					t.Fatalf("Expected point %v below (%.1f, %.1f) over t=%v", mesh[idx], x, z, hit.T)
				}
			}
		}
	}
}

func TestDrawBoundedAndLeaves(t *testing.T) {
	mesh := randomMesh(3, 600, 60)
	tree, err := Build(mesh, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for maxDepth := 0; maxDepth <= 4; maxDepth++ {
		deepest := -1
		drawn := tree.DrawBounded(DrawerFunc(func(_ AABB, depth int, _ bool) {
			if depth > deepest {
				deepest = depth
			}
		}), maxDepth)

		want := 0
		for i := 0; i < tree.NodeCount(); i++ {
			if tree.Node(NodeID(i)).Depth <= maxDepth {
				want++
			}
		}
		if drawn != want {
			t.Errorf("maxDepth %d: expected %d nodes, got %d", maxDepth, want, drawn)
		}
		if deepest > maxDepth {
			t.Errorf("maxDepth %d: visited depth %d", maxDepth, deepest)
		}
	}

	leaves := 0
	count := tree.DrawLeaves(DrawerFunc(func(_ AABB, _ int, leaf bool) {
		if !leaf {
			t.Error("DrawLeaves rendered an internal node")
		}
		leaves++
	}))
	if count != tree.LeafCount() || leaves != count {
		t.Errorf("Expected %d leaves, got count=%d drawn=%d", tree.LeafCount(), count, leaves)
	}
}
