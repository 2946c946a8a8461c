package parameter

// Procedural terrain defaults
const (
	// TerrainGridSize is the number of cells per side, vertices are (N+1)²
	TerrainGridSize = 96

	// TerrainSpacing is the world distance between grid vertices
	TerrainSpacing = 2.5

	// TerrainAmplitude scales the layered height waves
	TerrainAmplitude = 6.0

	// TerrainSeed seeds crater placement
	TerrainSeed = 1969

	// TerrainCraters is the number of seeded craters stamped on the surface
	TerrainCraters = 24

	// TerrainPadHeight is the flattened landing pad elevation
	TerrainPadHeight = 0.0
)
