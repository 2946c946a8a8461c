package parameter

// Terrain octree
const (
	// OctreeLeafCapacity is the point count at or below which a node becomes a leaf
	OctreeLeafCapacity = 20

	// OctreeMaxDepth bounds recursion on duplicate or degenerate point sets
	OctreeMaxDepth = 12

	// OctreePickPolicy selects the representative point of a ray hit leaf: "closest" or "first"
	OctreePickPolicy = "closest"

	// DebugLevelsDefault/Min/Max bound the octree depth slider of the debug display
	DebugLevelsDefault = 1
	DebugLevelsMin     = 1
	DebugLevelsMax     = 10
)
