package physics

import (
	"math"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// SpawnState is the captured initial state restored by Reset
type SpawnState struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Rotation float64
	Thrust   float64
	Fuel     float64
	Gravity  vmath.Vec3F
	Damping  float64
}

// DefaultSpawn returns the spawn state built from parameter defaults
func DefaultSpawn() SpawnState {
	return SpawnState{
		Position: parameter.SpawnPosition,
		Thrust:   parameter.ShipThrust,
		Fuel:     parameter.ShipFuel,
		Gravity:  parameter.ShipGravity,
		Damping:  parameter.ShipDamping,
	}
}

// Ship is the lander's rigid-body state; unit mass, forces equal accelerations
type Ship struct {
	Position     vmath.Vec3F
	Velocity     vmath.Vec3F
	Acceleration vmath.Vec3F // Manual override added to forces each step

	// Heading about +Y in degrees
	Rotation         float64
	TurnVelocity     float64
	TurnAcceleration float64

	Thrust        float64 // Capability, zeroed on touchdown
	AppliedThrust vmath.Vec3F
	Gravity       vmath.Vec3F
	ImpulseForce  vmath.Vec3F // Consumed by the next Integrate
	Damping       float64

	Fuel        float64
	FuelPerTick float64

	// Extents are the static local-space model bounds, Bounds the world box
	Extents spatial.AABB
	Bounds  spatial.AABB

	spawn SpawnState
}

// NewShip creates a ship at spawn with the given local extents
func NewShip(spawn SpawnState, extents spatial.AABB, fuelPerTick float64) *Ship {
	s := &Ship{
		Extents:     extents,
		FuelPerTick: fuelPerTick,
	}
	s.Reset(spawn)
	return s
}

// Integrate advances linear state by one fixed step
func (s *Ship) Integrate(dt float64) {
	s.Position = vmath.V3FAdd(s.Position, vmath.V3FScale(s.Velocity, dt))

	forces := vmath.V3FAdd(vmath.V3FAdd(s.Gravity, s.AppliedThrust), s.ImpulseForce)
	accel := vmath.V3FAdd(s.Acceleration, forces)
	s.Velocity = vmath.V3FAdd(s.Velocity, vmath.V3FScale(accel, dt))
	s.Velocity = vmath.V3FScale(s.Velocity, s.Damping)

	s.ImpulseForce = vmath.Vec3F{}
}

// IntegrateTurn advances heading by one fixed step
func (s *Ship) IntegrateTurn(dt float64) {
	s.Rotation += s.TurnVelocity * dt
	s.TurnVelocity += s.TurnAcceleration * dt
	s.TurnVelocity *= s.Damping
}

// SetPosition moves the ship and refreshes its world box
func (s *Ship) SetPosition(p vmath.Vec3F) {
	s.Position = p
	s.UpdateBoundingBox()
}

// UpdateBoundingBox translates the static extents to the current position
func (s *Ship) UpdateBoundingBox() {
	s.Bounds = s.Extents.Translate(s.Position)
}

// ApplyThrust sets applied thrust to Thrust along direction for this tick and burns fuel
// Combined controls share one thruster, so direction is normalised
// Returns false and clears applied thrust when direction is zero, fuel is exhausted or capability is zero
func (s *Ship) ApplyThrust(direction vmath.Vec3F) bool {
	if vmath.V3FIsZero(direction) || s.Fuel <= 0 || s.Thrust == 0 {
		s.AppliedThrust = vmath.Vec3F{}
		return false
	}
	s.AppliedThrust = vmath.V3FScale(vmath.V3FNormalize(direction), s.Thrust)
	s.Fuel = math.Max(0, s.Fuel-s.FuelPerTick)
	return true
}

// SetTurn sets turn acceleration from the sign of the requested turn
func (s *Ship) SetTurn(sign float64) {
	switch {
	case sign > 0:
		s.TurnAcceleration = s.Thrust * parameter.TurnThrustFactor
	case sign < 0:
		s.TurnAcceleration = -s.Thrust * parameter.TurnThrustFactor
	default:
		s.TurnAcceleration = 0
	}
}

// Cutoff permanently disables thrust until Reset
func (s *Ship) Cutoff() {
	s.Thrust = 0
	s.AppliedThrust = vmath.Vec3F{}
	s.TurnAcceleration = 0
}

// Halt stops all motion, used when the ship comes to rest
func (s *Ship) Halt() {
	s.Velocity = vmath.Vec3F{}
	s.TurnVelocity = 0
	s.ImpulseForce = vmath.Vec3F{}
}

// Heading returns the unit forward vector in the XZ plane
func (s *Ship) Heading() vmath.Vec3F {
	return vmath.V3FRotateY(vmath.Vec3F{Z: -1}, s.Rotation*math.Pi/180)
}

// Spawn returns the state restored by Reset
func (s *Ship) Spawn() SpawnState {
	return s.spawn
}

// Reset restores every mutable field from spawn and stores spawn for later resets
func (s *Ship) Reset(spawn SpawnState) {
	s.spawn = spawn
	s.Position = spawn.Position
	s.Velocity = spawn.Velocity
	s.Acceleration = vmath.Vec3F{}
	s.Rotation = spawn.Rotation
	s.TurnVelocity = 0
	s.TurnAcceleration = 0
	s.Thrust = spawn.Thrust
	s.AppliedThrust = vmath.Vec3F{}
	s.Gravity = spawn.Gravity
	s.ImpulseForce = vmath.Vec3F{}
	s.Damping = spawn.Damping
	s.Fuel = spawn.Fuel
	s.UpdateBoundingBox()
}
