package parameter

import "github.com/lixenwraith/vi-lander/vmath"

// Integrator timing
const (
	// TickRate is the fixed number of simulation ticks per second, one tick per rendered frame
	TickRate = 60

	// TickDt is the fixed integration step in seconds
	TickDt = 1.0 / TickRate
)

// Lander flight model
const (
	// ShipThrust is the force magnitude applied by any thruster
	ShipThrust = 25.0

	// ShipDamping is the per-tick multiplicative velocity decay
	ShipDamping = 0.99

	// ShipFuel is the fuel supply at spawn
	ShipFuel = 200.0

	// FuelBurnPerSecond is the fuel consumed per second of non-zero thrust
	FuelBurnPerSecond = 30.0

	// TurnThrustFactor scales thrust into turn acceleration (degrees/sec²)
	TurnThrustFactor = 3.0
)

// Contact resolution
const (
	// ImpulseStiffness is the contact stiffness k in impulse = k * (-v·n) * n
	ImpulseStiffness = 60 * 1.85

	// LandingImpulseMax is the exclusive upper bound of a soft landing impulse
	LandingImpulseMax = 500.0

	// ExplosionImpulseMin is the exclusive lower bound of a destructive impulse
	ExplosionImpulseMin = 800.0
)

// Spawn state and geometry
var (
	// ShipGravity is the constant gravity force
	ShipGravity = vmath.Vec3F{X: 0, Y: -8.0, Z: 0}

	// SpawnPosition is where the lander appears on load and after reset
	SpawnPosition = vmath.Vec3F{X: -50, Y: 30, Z: -50}

	// ContactNormal is the ground normal used for impulse computation
	ContactNormal = vmath.UnitY

	// LanderExtentMin/Max are the static local-space extents of the lander model
	LanderExtentMin = vmath.Vec3F{X: -1.5, Y: 0, Z: -1.5}
	LanderExtentMax = vmath.Vec3F{X: 1.5, Y: 3.2, Z: 1.5}

	// LandingZoneMin/Max bound the valid landing area
	LandingZoneMin = vmath.Vec3F{X: -24.8, Y: -1.6, Z: -18.6}
	LandingZoneMax = vmath.Vec3F{X: 21.7, Y: 16.1, Z: 27.5}
)

// Altitude sensor
const (
	// SensorOffset is the height above the lander origin where the sensor ray starts
	SensorOffset = 1.0
)

// Autopilot descent profile
const (
	AutopilotGain        = 0.35
	AutopilotMinDescent  = 1.0
	AutopilotMaxDescent  = 5.0
	AutopilotDriftFactor = 0.1
)
