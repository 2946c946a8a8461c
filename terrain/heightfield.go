package terrain

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// HeightfieldConfig parameterises procedural terrain
type HeightfieldConfig struct {
	GridSize  int     // Cells per side
	Spacing   float64 // World distance between vertices
	Amplitude float64
	Seed      uint64
	Craters   int

	// Pad is flattened to PadHeight across its XZ extent when non-empty
	Pad       spatial.AABB
	PadHeight float64
}

// DefaultHeightfield returns the parameter defaults with the landing zone as the pad
func DefaultHeightfield() HeightfieldConfig {
	return HeightfieldConfig{
		GridSize:  parameter.TerrainGridSize,
		Spacing:   parameter.TerrainSpacing,
		Amplitude: parameter.TerrainAmplitude,
		Seed:      parameter.TerrainSeed,
		Craters:   parameter.TerrainCraters,
		Pad:       spatial.AABB{Min: parameter.LandingZoneMin, Max: parameter.LandingZoneMax},
		PadHeight: parameter.TerrainPadHeight,
	}
}

type crater struct {
	x, z   float64
	radius float64
	depth  float64
}

// Generate builds a centred (N+1)x(N+1) vertex grid with two triangles per cell
// Identical configs produce identical meshes
func Generate(cfg HeightfieldConfig) (*Mesh, error) {
	if cfg.GridSize < 1 {
		return nil, fmt.Errorf("%w: terrain grid size %d", spatial.ErrConfiguration, cfg.GridSize)
	}
	if cfg.Spacing <= 0 {
		return nil, fmt.Errorf("%w: terrain spacing %v", spatial.ErrConfiguration, cfg.Spacing)
	}
	if cfg.Craters < 0 {
		return nil, fmt.Errorf("%w: crater count %d", spatial.ErrConfiguration, cfg.Craters)
	}

	n := cfg.GridSize
	half := float64(n) * cfg.Spacing / 2
	layout := &gridLayout{cells: n, spacing: cfg.Spacing, originX: -half, originZ: -half}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5deece66d))
	craters := make([]crater, cfg.Craters)
	for i := range craters {
		craters[i] = crater{
			x:      (rng.Float64()*2 - 1) * half,
			z:      (rng.Float64()*2 - 1) * half,
			radius: cfg.Spacing * (2 + rng.Float64()*6),
			depth:  cfg.Amplitude * (0.3 + rng.Float64()*0.7),
		}
	}

	padded := !vmath.V3FIsZero(cfg.Pad.Size())
	padMargin := 4 * cfg.Spacing

	vertices := make([]vmath.Vec3F, 0, (n+1)*(n+1))
	for row := 0; row <= n; row++ {
		z := layout.originZ + float64(row)*cfg.Spacing
		for col := 0; col <= n; col++ {
			x := layout.originX + float64(col)*cfg.Spacing
			y := surface(x, z, cfg.Amplitude, craters)
			if padded {
				w := padWeight(x, z, cfg.Pad, padMargin)
				y = y*(1-w) + cfg.PadHeight*w
			}
			vertices = append(vertices, vmath.Vec3F{X: x, Y: y, Z: z})
		}
	}

	indices := make([]uint32, 0, n*n*6)
	stride := uint32(n + 1)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := uint32(row)*stride + uint32(col)
			indices = append(indices,
				i, i+stride, i+1,
				i+1, i+stride, i+stride+1,
			)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices, grid: layout}, nil
}

// surface is layered sine waves plus crater bowls with raised rims
func surface(x, z, amplitude float64, craters []crater) float64 {
	h := amplitude * (0.6*math.Sin(x/17) + 0.8*math.Sin((x+z)/29) + 0.3*math.Cos(z/11))
	for _, c := range craters {
		d := math.Hypot(x-c.x, z-c.z) / c.radius
		switch {
		case d < 1:
			h -= c.depth * (1 - d*d)
		case d < 1.5:
			h += c.depth * 0.25 * math.Cos((d-1)*math.Pi)
		}
	}
	return h
}

// padWeight is 1 inside the pad, fading linearly to 0 across margin
func padWeight(x, z float64, pad spatial.AABB, margin float64) float64 {
	dx := math.Max(0, math.Max(pad.Min.X-x, x-pad.Max.X))
	dz := math.Max(0, math.Max(pad.Min.Z-z, z-pad.Max.Z))
	d := math.Hypot(dx, dz)
	return vmath.Clamp(1-d/margin, 0, 1)
}
