package parameter

import "time"

// Exhaust emitter
const (
	ExhaustRate     = 90.0 // particles per second while thrusting
	ExhaustSpeed    = 25.0
	ExhaustSpread   = 3.0
	ExhaustLifespan = 800 * time.Millisecond
	ExhaustNozzleY  = 0.0
)

// Explosion emitter
const (
	ExplosionGroupSize = 400
	ExplosionSpeed     = 30.0
	ExplosionLifespan  = 2 * time.Second
	ExplosionOffsetY   = 2.5
)

// ParticleDamping is the per-tick velocity decay of particles
const ParticleDamping = 0.97
