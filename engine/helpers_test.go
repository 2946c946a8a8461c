package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/terrain"
	"github.com/lixenwraith/vi-lander/vmath"
)

// flatTree builds an octree over a level 50x50 grid at y=0 centred on the origin
func flatTree(t *testing.T) *spatial.Octree {
	t.Helper()
	mesh, err := terrain.Generate(terrain.HeightfieldConfig{GridSize: 20, Spacing: 2.5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	tree, err := spatial.Build(mesh, 20)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tree
}

// newTestSim creates a simulation over flat terrain with the lander spawned at spawn
func newTestSim(t *testing.T, spawn vmath.Vec3F) *Simulation {
	t.Helper()
	settings := DefaultSettings()
	settings.Spawn.Position = spawn
	sim, err := NewSimulation(flatTree(t), settings, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return sim
}

// collect drains the simulation queue and returns the events by type
func collect(sim *Simulation) map[event.EventType][]event.GameEvent {
	out := make(map[event.EventType][]event.GameEvent)
	for _, ev := range sim.Queue.Consume() {
		out[ev.Type] = append(out[ev.Type], ev)
	}
	return out
}
