package render

// Scene palette
var (
	RgbBackground = RGB{10, 10, 18}    // Space black
	RgbZone       = RGB{135, 206, 250} // Light sky blue landing area
	RgbLander     = RGB{144, 238, 144} // Light green
	RgbLanderBox  = RGB{80, 160, 80}   // Dim green bounding box
	RgbContact    = RGB{255, 255, 255} // White contact leaves
	RgbSensor     = RGB{255, 255, 0}   // Yellow altitude ray
	RgbPick       = RGB{255, 60, 60}   // Red picked vertex
	RgbExhaust    = RGB{255, 165, 0}   // Orange
	RgbExplosion  = RGB{255, 90, 30}   // Red-orange
)

// Octree debug colors cycle by depth
var octreeLevelColors = []RGB{
	{255, 80, 80},
	{255, 165, 0},
	{255, 255, 0},
	{0, 200, 0},
	{0, 200, 200},
	{100, 150, 255},
	{160, 100, 255},
	{219, 112, 147},
}

// LevelColor returns the debug color of octree depth
func LevelColor(depth int) RGB {
	return octreeLevelColors[depth%len(octreeLevelColors)]
}

// Interface colors
var (
	RgbHudText     = RGB{220, 220, 220}
	RgbHudLabel    = RGB{140, 140, 160}
	RgbHudWarn     = RGB{255, 80, 80}
	RgbBannerWin   = RGB{144, 238, 144}
	RgbBannerLose  = RGB{255, 90, 90}
	RgbBannerPlain = RGB{255, 255, 255}
	RgbStatusText  = RGB{0, 0, 0}
	RgbStatusBg    = RGB{135, 206, 250}
)
