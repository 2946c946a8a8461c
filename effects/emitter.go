package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/vi-lander/physics"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Particle is a short-lived point integrated like the lander
type Particle struct {
	physics.Body
	Age      time.Duration
	Lifespan time.Duration
}

// Life returns remaining life in [0,1]
func (p *Particle) Life() float64 {
	if p.Lifespan <= 0 {
		return 0
	}
	return math.Max(0, 1-float64(p.Age)/float64(p.Lifespan))
}

// Emitter spawns particles either continuously at Rate or as a one-shot burst of GroupSize
type Emitter struct {
	Position  vmath.Vec3F
	Velocity  vmath.Vec3F // Base launch velocity
	Spread    float64     // Random velocity jitter per axis
	Radial    bool        // Launch in random directions at |Velocity| instead of along it
	Rate      float64     // Particles per second when continuous
	GroupSize int         // Burst size when one-shot
	Lifespan  time.Duration
	OneShot   bool
	Gravity   vmath.Vec3F
	Damping   float64

	active    bool
	accum     float64
	particles []Particle
	rng       *rand.Rand
}

// NewEmitter returns an idle emitter with a deterministic jitter source
func NewEmitter(seed uint64) *Emitter {
	return &Emitter{
		Damping:   1,
		rng:       rand.New(rand.NewPCG(seed, seed+1)),
		particles: make([]Particle, 0, 64),
	}
}

// Start begins emission; a one-shot emitter releases its whole group immediately
func (e *Emitter) Start() {
	if e.OneShot {
		for i := 0; i < e.GroupSize; i++ {
			e.spawn()
		}
		return
	}
	e.active = true
}

// Stop ends continuous emission, live particles keep flying
func (e *Emitter) Stop() {
	e.active = false
	e.accum = 0
}

func (e *Emitter) Active() bool {
	return e.active
}

// Clear stops emission and removes all particles
func (e *Emitter) Clear() {
	e.Stop()
	e.particles = e.particles[:0]
}

// Particles returns live particles; valid until the next Update
func (e *Emitter) Particles() []Particle {
	return e.particles
}

// Update spawns due particles, integrates all of them and drops expired ones
func (e *Emitter) Update(dt float64) {
	if e.active && e.Rate > 0 {
		e.accum += e.Rate * dt
		for e.accum >= 1 {
			e.spawn()
			e.accum--
		}
	}

	step := time.Duration(dt * float64(time.Second))
	live := e.particles[:0]
	for i := range e.particles {
		p := e.particles[i]
		p.Age += step
		if p.Age >= p.Lifespan {
			continue
		}
		physics.Integrate(&p.Body, e.Gravity, e.Damping, dt)
		live = append(live, p)
	}
	e.particles = live
}

func (e *Emitter) spawn() {
	v := e.Velocity
	if e.Radial {
		v = vmath.V3FScale(e.randomUnit(), vmath.V3FMag(e.Velocity))
	}
	if e.Spread > 0 {
		v = vmath.V3FAdd(v, vmath.Vec3F{
			X: (e.rng.Float64()*2 - 1) * e.Spread,
			Y: (e.rng.Float64()*2 - 1) * e.Spread,
			Z: (e.rng.Float64()*2 - 1) * e.Spread,
		})
	}
	e.particles = append(e.particles, Particle{
		Body:     physics.Body{Position: e.Position, Velocity: v},
		Lifespan: e.Lifespan,
	})
}

// randomUnit samples a direction uniformly on the sphere
func (e *Emitter) randomUnit() vmath.Vec3F {
	z := e.rng.Float64()*2 - 1
	phi := e.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return vmath.Vec3F{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}
