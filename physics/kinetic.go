package physics

import (
	"github.com/lixenwraith/vi-lander/vmath"
)

// Body is a point mass used by particles and other unpowered objects
type Body struct {
	Position     vmath.Vec3F
	Velocity     vmath.Vec3F
	Acceleration vmath.Vec3F
}

// Integrate performs physics integration: p = p + v*dt; v = (v + (a+g)*dt) * damping
// Position advances with the previous velocity, matching the lander integrator
func Integrate(b *Body, gravity vmath.Vec3F, damping, dt float64) {
	b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(b.Velocity, dt))
	accel := vmath.V3FAdd(b.Acceleration, gravity)
	b.Velocity = vmath.V3FScale(vmath.V3FAdd(b.Velocity, vmath.V3FScale(accel, dt)), damping)
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(b *Body, dv vmath.Vec3F) {
	b.Velocity = vmath.V3FAdd(b.Velocity, dv)
}
