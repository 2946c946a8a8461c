package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/telemetry"
	"github.com/lixenwraith/vi-lander/terrain"
)

// TerrainFromConfig generates the heightfield with the landing zone flattened into a pad
func TerrainFromConfig(cfg *config.Config) (*terrain.Mesh, error) {
	tc := cfg.Terrain
	return terrain.Generate(terrain.HeightfieldConfig{
		GridSize:  tc.GridSize,
		Spacing:   tc.Spacing,
		Amplitude: tc.Amplitude,
		Seed:      tc.Seed,
		Craters:   tc.Craters,
		Pad:       spatial.NewAABB(cfg.Sim.ZoneMin.V(), cfg.Sim.ZoneMax.V()),
		PadHeight: tc.PadHeight,
	})
}

// NewFromConfig generates terrain, indexes it and creates a simulation in Standby
func NewFromConfig(cfg *config.Config, log zerolog.Logger, metrics *telemetry.Metrics) (*Simulation, error) {
	start := time.Now()
	mesh, err := TerrainFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate terrain: %w", err)
	}

	tree, err := spatial.Build(mesh, cfg.Octree.LeafCapacity,
		spatial.WithMaxDepth(cfg.Octree.MaxDepth),
		spatial.WithPickPolicy(spatial.ParsePickPolicy(cfg.Octree.PickPolicy)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build terrain octree: %w", err)
	}

	log.Info().
		Int("vertices", mesh.VertexCount()).
		Int("triangles", mesh.TriangleCount()).
		Int("nodes", tree.NodeCount()).
		Int("leaves", tree.LeafCount()).
		Str("pick", tree.PickPolicy().String()).
		Dur("took", time.Since(start)).
		Msg("Terrain indexed")

	return NewSimulation(tree, SettingsFromConfig(cfg), log, metrics)
}
