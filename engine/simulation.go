package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/engine/fsm"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/input"
	"github.com/lixenwraith/vi-lander/logging"
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/physics"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/telemetry"
	"github.com/lixenwraith/vi-lander/terrain"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Settings are the flight rules of one simulation, stored with every recorded flight
type Settings struct {
	Spawn       physics.SpawnState     `json:"spawn"`
	FuelPerTick float64                `json:"fuel_per_tick"`
	Dt          float64                `json:"dt"`
	Contact     physics.ContactProfile `json:"contact"`
	Zone        spatial.AABB           `json:"zone"`
	Lander      spatial.AABB           `json:"lander"`
}

// DefaultSettings returns settings built from parameter defaults
func DefaultSettings() Settings {
	return Settings{
		Spawn:       physics.DefaultSpawn(),
		FuelPerTick: parameter.FuelBurnPerSecond * parameter.TickDt,
		Dt:          parameter.TickDt,
		Contact:     physics.GroundContact,
		Zone:        spatial.AABB{Min: parameter.LandingZoneMin, Max: parameter.LandingZoneMax},
		Lander:      spatial.NewAABB(parameter.LanderExtentMin, parameter.LanderExtentMax),
	}
}

// SettingsFromConfig maps the sim section of cfg to settings
func SettingsFromConfig(cfg *config.Config) Settings {
	sim := cfg.Sim
	return Settings{
		Spawn: physics.SpawnState{
			Position: sim.Spawn.V(),
			Thrust:   sim.Thrust,
			Fuel:     sim.Fuel,
			Gravity:  sim.Gravity.V(),
			Damping:  sim.Damping,
		},
		FuelPerTick: sim.FuelPerTick(),
		Dt:          sim.TickDt(),
		Contact: physics.ContactProfile{
			Stiffness:    sim.Stiffness,
			LandingMax:   sim.LandingMax,
			ExplosionMin: sim.ExplosionMin,
			Normal:       parameter.ContactNormal,
		},
		Zone:   spatial.NewAABB(sim.ZoneMin.V(), sim.ZoneMax.V()),
		Lander: spatial.NewAABB(sim.LanderMin.V(), sim.LanderMax.V()),
	}
}

// Sensor is the downward altitude ray of the last tick
type Sensor struct {
	Origin   vmath.Vec3F
	Hit      spatial.Hit
	Altitude float64
	Valid    bool
}

// Simulation owns the lander, the terrain index and the lifecycle
// Single-goroutine: Tick, Pick and accessors must be called from the loop goroutine
// Events are published on Queue for consumers draining it through Router
type Simulation struct {
	Ship   *physics.Ship
	Tree   *spatial.Octree
	Queue  *event.EventQueue
	Router *event.Router

	settings Settings
	fsm      *fsm.Machine[*Simulation]
	resolver *Resolver
	metrics  *telemetry.Metrics
	log      zerolog.Logger
	trace    zerolog.Logger
	ctx      context.Context

	tickDuration time.Duration
	frame        int64
	inZone       bool
	contact      Contact
	sensor       Sensor
	thrusting    bool
	fuelEmpty    bool
	outcome      Outcome
	touchdown    event.TouchdownPayload
}

// NewSimulation creates a simulation in Standby over tree
// A nil metrics records nothing
func NewSimulation(tree *spatial.Octree, settings Settings, log zerolog.Logger, metrics *telemetry.Metrics) (*Simulation, error) {
	if tree == nil {
		return nil, fmt.Errorf("simulation requires a terrain octree")
	}
	if settings.Dt <= 0 {
		return nil, fmt.Errorf("invalid tick step %v", settings.Dt)
	}
	if metrics == nil {
		metrics = telemetry.Noop()
	}

	machine, err := newLifecycle()
	if err != nil {
		return nil, fmt.Errorf("failed to build lifecycle: %w", err)
	}

	s := &Simulation{
		Ship:         physics.NewShip(settings.Spawn, settings.Lander, settings.FuelPerTick),
		Tree:         tree,
		Queue:        event.NewEventQueue(),
		Router:       event.NewRouter(),
		settings:     settings,
		fsm:          machine,
		resolver:     NewResolver(tree, settings.Contact, metrics),
		metrics:      metrics,
		log:          log.With().Str("component", "simulation").Logger(),
		ctx:          context.Background(),
		tickDuration: time.Duration(settings.Dt * float64(time.Second)),
	}
	s.trace = logging.Sampled(s.log)

	if err := s.fsm.Init(s); err != nil {
		return nil, fmt.Errorf("failed to enter initial state: %w", err)
	}
	s.updateSensor()
	return s, nil
}

// Tick advances the simulation by one fixed step using snap
// Physics only runs while Flying; terminal states hold the ship until Reset
func (s *Simulation) Tick(snap *input.Snapshot) {
	for _, in := range snap.Intents {
		switch in.Type {
		case input.IntentLaunch:
			s.Launch()
		case input.IntentReset:
			s.Reset()
		}
	}

	if s.fsm.IsIn(StateFlying) {
		s.applyControls(snap)

		s.Ship.Integrate(s.settings.Dt)
		s.Ship.IntegrateTurn(s.settings.Dt)
		s.Ship.UpdateBoundingBox()
		s.inZone = InZone(s.Ship.Bounds, s.settings.Zone)

		s.contact = s.resolver.Resolve(s.ctx, s.Ship)
		if s.contact.Class != physics.ContactNone {
			// Consumed by the next Integrate; only a firm contact survives to bounce
			s.Ship.ImpulseForce = s.contact.Impulse
			s.metrics.Contact(s.ctx)
			event.EmitWith(s.Queue, event.EventContact, &event.ContactPayload{
				Impulse: s.contact.Magnitude,
				Leaves:  s.contact.Leaves,
			}, s.frame)
			s.log.Debug().
				Int64("frame", s.frame).
				Str("class", s.contact.Class.String()).
				Float64("impulse", s.contact.Magnitude).
				Int("leaves", s.contact.Leaves).
				Msg("Terrain contact")
		}
	}

	s.fsm.Update(s, s.tickDuration)
	s.updateSensor()

	s.trace.Trace().
		Int64("frame", s.frame).
		Str("state", s.fsm.ActiveStateName()).
		Float64("y", s.Ship.Position.Y).
		Float64("vy", s.Ship.Velocity.Y).
		Float64("altitude", s.sensor.Altitude).
		Msg("Tick")
	s.frame++
}

func (s *Simulation) applyControls(snap *input.Snapshot) {
	thrusting := s.Ship.ApplyThrust(snap.Thrust)
	s.Ship.SetTurn(snap.Turn)

	switch {
	case thrusting && !s.thrusting:
		s.thrusting = true
		event.Emit(s.Queue, event.EventThrustStart, s.frame)
	case !thrusting:
		s.stopThrust()
	}

	if s.Ship.Fuel <= 0 && !s.fuelEmpty {
		s.fuelEmpty = true
		event.Emit(s.Queue, event.EventFuelEmpty, s.frame)
		s.log.Info().Int64("frame", s.frame).Msg("Fuel exhausted")
	}
}

func (s *Simulation) stopThrust() {
	if s.thrusting {
		s.thrusting = false
		event.Emit(s.Queue, event.EventThrustStop, s.frame)
	}
}

func (s *Simulation) updateSensor() {
	origin := vmath.V3FAdd(s.Ship.Position, vmath.Vec3F{Y: parameter.SensorOffset})
	ray, _ := spatial.NewRay(origin, vmath.Vec3F{Y: -1})

	start := time.Now()
	hit, ok, _ := s.Tree.QueryNearest(ray)
	s.metrics.RayQuery(s.ctx, time.Since(start))

	s.sensor = Sensor{Origin: origin, Hit: hit, Valid: ok}
	if ok {
		s.sensor.Altitude = s.Ship.Position.Y - hit.Position.Y
	}
}

// Launch starts the flight when in Standby, reports whether it did
func (s *Simulation) Launch() bool {
	return s.fsm.HandleEvent(s, event.EventLaunch)
}

// Reset returns a finished flight to Standby at the spawn state, reports whether it did
func (s *Simulation) Reset() bool {
	return s.fsm.HandleEvent(s, event.EventReset)
}

// Pick casts ray into the terrain and publishes the selected vertex
func (s *Simulation) Pick(ray spatial.Ray) (spatial.Hit, bool, error) {
	start := time.Now()
	hit, ok, err := s.Tree.QueryNearest(ray)
	s.metrics.RayQuery(s.ctx, time.Since(start))
	if err != nil || !ok {
		return hit, ok, err
	}
	event.EmitWith(s.Queue, event.EventPick, &event.PickPayload{
		Point:    hit.Point,
		Position: hit.Position,
		Distance: hit.T,
	}, s.frame)
	return hit, true, nil
}

// Drain dispatches queued events to Router subscribers
func (s *Simulation) Drain() int {
	return s.Router.Drain(s.Queue)
}

// SetContext sets the context used for metric recording
func (s *Simulation) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// State returns the active lifecycle state
func (s *Simulation) State() fsm.StateID {
	return s.fsm.ActiveStateID()
}

// StateName returns the active lifecycle state name
func (s *Simulation) StateName() string {
	return s.fsm.ActiveStateName()
}

// TimeInState returns simulated time since the last transition
func (s *Simulation) TimeInState() time.Duration {
	return s.fsm.TimeInState()
}

// Terminal reports whether the flight has ended
func (s *Simulation) Terminal() bool {
	return s.fsm.IsIn(StateLanded) || s.fsm.IsIn(StateExploded)
}

func (s *Simulation) Frame() int64 {
	return s.frame
}

func (s *Simulation) InZone() bool {
	return s.inZone
}

func (s *Simulation) Contact() Contact {
	return s.contact
}

// ContactBoxes returns the terrain leaves overlapped on the last tick
func (s *Simulation) ContactBoxes() []spatial.AABB {
	return s.resolver.Hits()
}

func (s *Simulation) Sensor() Sensor {
	return s.sensor
}

func (s *Simulation) Thrusting() bool {
	return s.thrusting
}

func (s *Simulation) Outcome() Outcome {
	return s.outcome
}

// Touchdown returns the contact that ended the flight, zero while undecided
func (s *Simulation) Touchdown() event.TouchdownPayload {
	return s.touchdown
}

func (s *Simulation) Settings() Settings {
	return s.settings
}

// Zone returns the valid landing area
func (s *Simulation) Zone() spatial.AABB {
	return s.settings.Zone
}

// Model builds the lander model for the configured extents
func (s *Simulation) Model() terrain.Model {
	return terrain.NewModel("lander", s.settings.Lander)
}
