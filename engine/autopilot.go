package engine

import (
	"math"

	"github.com/lixenwraith/vi-lander/input"
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Autopilot is a bang-bang descent controller driven by the altitude sensor
// It launches from Standby, drifts toward Target in XZ and fires the up thruster
// whenever the lander sinks faster than the altitude-scaled target rate
type Autopilot struct {
	Target vmath.Vec3F

	Gain       float64
	MinDescent float64
	MaxDescent float64
	Drift      float64

	// Horizontal speed error tolerated before side thrusters fire
	Deadband float64
}

func NewAutopilot(target vmath.Vec3F) *Autopilot {
	return &Autopilot{
		Target:     target,
		Gain:       parameter.AutopilotGain,
		MinDescent: parameter.AutopilotMinDescent,
		MaxDescent: parameter.AutopilotMaxDescent,
		Drift:      parameter.AutopilotDriftFactor,
		Deadband:   0.5,
	}
}

// DescentRate returns the target sink speed for altitude
func (a *Autopilot) DescentRate(altitude float64) float64 {
	return vmath.Clamp(altitude*a.Gain, a.MinDescent, a.MaxDescent)
}

// Control returns the snapshot to apply on the next tick
func (a *Autopilot) Control(s *Simulation) input.Snapshot {
	var snap input.Snapshot

	switch s.State() {
	case StateStandby:
		snap.Intents = append(snap.Intents, input.Intent{Type: input.IntentLaunch})
		return snap
	case StateFlying:
	default:
		return snap
	}

	ship := s.Ship
	sensor := s.Sensor()
	altitude := math.Inf(1)
	if sensor.Valid {
		altitude = sensor.Altitude
	}

	if -ship.Velocity.Y > a.DescentRate(altitude) {
		snap.Thrust.Y = 1
	}

	// Steer only high above ground, close in the lander settles vertically
	if altitude > a.MaxDescent {
		snap.Thrust.X = a.steer(a.Target.X-ship.Position.X, ship.Velocity.X)
		snap.Thrust.Z = a.steer(a.Target.Z-ship.Position.Z, ship.Velocity.Z)
	}
	return snap
}

func (a *Autopilot) steer(offset, velocity float64) float64 {
	want := offset * a.Drift
	switch {
	case velocity < want-a.Deadband:
		return 1
	case velocity > want+a.Deadband:
		return -1
	default:
		return 0
	}
}
