package effects

import (
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Manager owns the lander's exhaust and explosion emitters
type Manager struct {
	Exhaust   *Emitter
	Explosion *Emitter
}

// NewManager builds emitters from parameter defaults
func NewManager(gravity vmath.Vec3F) *Manager {
	exhaust := NewEmitter(1)
	exhaust.Velocity = vmath.Vec3F{Y: -parameter.ExhaustSpeed}
	exhaust.Spread = parameter.ExhaustSpread
	exhaust.Rate = parameter.ExhaustRate
	exhaust.Lifespan = parameter.ExhaustLifespan
	exhaust.Gravity = gravity
	exhaust.Damping = parameter.ParticleDamping

	explosion := NewEmitter(2)
	explosion.Velocity = vmath.Vec3F{Y: parameter.ExplosionSpeed}
	explosion.Radial = true
	explosion.Spread = parameter.ExplosionSpeed * 0.3
	explosion.GroupSize = parameter.ExplosionGroupSize
	explosion.Lifespan = parameter.ExplosionLifespan
	explosion.OneShot = true
	explosion.Gravity = gravity
	explosion.Damping = parameter.ParticleDamping

	return &Manager{Exhaust: exhaust, Explosion: explosion}
}

// Subscribe wires emitters to lifecycle events
func (m *Manager) Subscribe(r *event.Router) {
	r.Subscribe(event.EventThrustStart, func(event.GameEvent) { m.Exhaust.Start() })
	r.Subscribe(event.EventThrustStop, func(event.GameEvent) { m.Exhaust.Stop() })
	r.Subscribe(event.EventLanded, func(event.GameEvent) { m.Exhaust.Stop() })
	r.Subscribe(event.EventExploded, func(ev event.GameEvent) {
		m.Exhaust.Stop()
		if p, ok := ev.Payload.(*event.TouchdownPayload); ok {
			m.Explosion.Position = vmath.V3FAdd(p.Position, vmath.Vec3F{Y: parameter.ExplosionOffsetY})
		}
		m.Explosion.Start()
	})
}

// Update moves emitters to the lander and advances all particles
func (m *Manager) Update(lander vmath.Vec3F, dt float64) {
	m.Exhaust.Position = vmath.V3FAdd(lander, vmath.Vec3F{Y: parameter.ExhaustNozzleY})
	m.Exhaust.Update(dt)
	m.Explosion.Update(dt)
}

// Clear drops all particles, used on reset
func (m *Manager) Clear() {
	m.Exhaust.Clear()
	m.Explosion.Clear()
}

// Each calls fn for every live particle
func (m *Manager) Each(fn func(p *Particle)) {
	for _, e := range [...]*Emitter{m.Exhaust, m.Explosion} {
		ps := e.Particles()
		for i := range ps {
			fn(&ps[i])
		}
	}
}

// Count returns the number of live particles
func (m *Manager) Count() int {
	return len(m.Exhaust.Particles()) + len(m.Explosion.Particles())
}
