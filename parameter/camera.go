package parameter

import "github.com/lixenwraith/vi-lander/vmath"

// Camera rig
const (
	// CameraFovY is the vertical field of view in degrees
	CameraFovY = 60.0

	// CameraNear is the near clip distance
	CameraNear = 0.1

	// CameraCellAspect is terminal cell height divided by width
	CameraCellAspect = 2.0

	// OrbitDistance/Yaw/Pitch are the free camera defaults
	OrbitDistance = 110.0
	OrbitYaw      = 0.6
	OrbitPitch    = 0.5
	OrbitStep     = 0.08
	OrbitZoomStep = 5.0
)

// Tracking offsets relative to the lander
var (
	FollowOffset = vmath.Vec3F{X: 0, Y: 0, Z: 40}
	FrontOffset  = vmath.Vec3F{X: 0, Y: 5, Z: -5}

	// GroundCameraPosition is the fixed eye of the ground camera near the landing zone
	GroundCameraPosition = vmath.Vec3F{X: 10, Y: 3, Z: 45}
)
