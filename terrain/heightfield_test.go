package terrain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

func smallConfig() HeightfieldConfig {
	cfg := DefaultHeightfield()
	cfg.GridSize = 16
	cfg.Spacing = 4
	cfg.Craters = 5
	cfg.Pad = spatial.AABB{Min: vmath.Vec3F{X: -8, Z: -8}, Max: vmath.Vec3F{X: 8, Y: 1, Z: 8}}
	cfg.PadHeight = 2
	return cfg
}

func TestGenerateLayout(t *testing.T) {
	m, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.VertexCount() != 17*17 {
		t.Errorf("Expected 289 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 16*16*2 {
		t.Errorf("Expected 512 triangles, got %d", m.TriangleCount())
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("Index %d out of range", idx)
		}
	}

	b := m.Bounds()
	if b.Min.X != -32 || b.Max.X != 32 || b.Min.Z != -32 || b.Max.Z != 32 {
		t.Errorf("Expected grid centred on origin spanning ±32, got %v", b)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(smallConfig())
	b, _ := Generate(smallConfig())
	if !reflect.DeepEqual(a.Vertices, b.Vertices) {
		t.Error("Expected identical meshes from identical config")
	}

	cfg := smallConfig()
	cfg.Seed++
	c, _ := Generate(cfg)
	if reflect.DeepEqual(a.Vertices, c.Vertices) {
		t.Error("Expected seed to change the surface")
	}
}

func TestGeneratePadIsFlat(t *testing.T) {
	m, _ := Generate(smallConfig())
	for _, v := range m.Vertices {
		if v.X >= -8 && v.X <= 8 && v.Z >= -8 && v.Z <= 8 && v.Y != 2 {
			t.Errorf("Expected pad height 2 at (%v,%v), got %v", v.X, v.Z, v.Y)
		}
	}
	h, ok := m.HeightAt(0.4, -0.3)
	if !ok || h != 2 {
		t.Errorf("Expected HeightAt pad centre = 2, got %v (ok=%v)", h, ok)
	}
	if _, ok := m.HeightAt(100, 0); ok {
		t.Error("Expected HeightAt outside grid to report not ok")
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	for _, mutate := range []func(*HeightfieldConfig){
		func(c *HeightfieldConfig) { c.GridSize = 0 },
		func(c *HeightfieldConfig) { c.Spacing = 0 },
		func(c *HeightfieldConfig) { c.Craters = -1 },
	} {
		cfg := smallConfig()
		mutate(&cfg)
		if _, err := Generate(cfg); !errors.Is(err, spatial.ErrConfiguration) {
			t.Errorf("Expected ErrConfiguration, got %v", err)
		}
	}
}

func TestGeneratedMeshBuildsOctree(t *testing.T) {
	m, _ := Generate(smallConfig())
	tree, err := spatial.Build(m, 8)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ray, _ := spatial.NewRay(vmath.Vec3F{Y: 50}, vmath.Vec3F{Y: -1})
	hit, ok, err := tree.QueryNearest(ray)
	if err != nil || !ok {
		t.Fatalf("Expected sensor ray to hit terrain, got ok=%v err=%v", ok, err)
	}
	if !tree.Node(hit.Leaf).Bounds.Contains(hit.Position) {
		t.Errorf("Expected hit point inside its leaf, got %v", hit.Position)
	}
}

func TestLanderModel(t *testing.T) {
	m := LanderModel()
	if len(m.Outline) == 0 {
		t.Fatal("Expected outline points")
	}
	for _, p := range m.Outline {
		if !m.Extents.Contains(p) {
			t.Errorf("Outline point %v outside extents %v", p, m.Extents)
		}
	}
}
