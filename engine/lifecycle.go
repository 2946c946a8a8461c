package engine

import (
	"github.com/lixenwraith/vi-lander/engine/fsm"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/physics"
)

// Lifecycle states
const (
	StateStandby fsm.StateID = iota + 1
	StateFlying
	StateLanded
	StateExploded
)

// Guard and action registry names
const (
	guardSoftContact = "softContact"
	guardHardContact = "hardContact"

	actionEnter     = "enter"
	actionRespawn   = "respawn"
	actionTouchdown = "touchdown"
	actionExplode   = "explode"
)

// newLifecycle builds Standby → Flying → {Landed | Exploded} → Standby
func newLifecycle() (*fsm.Machine[*Simulation], error) {
	m := fsm.NewMachine[*Simulation]()

	m.RegisterGuard(guardSoftContact, func(s *Simulation) bool {
		return s.contact.Class == physics.ContactSoft
	})
	m.RegisterGuard(guardHardContact, func(s *Simulation) bool {
		return s.contact.Class == physics.ContactHard
	})

	m.RegisterAction(actionEnter, (*Simulation).onEnter)
	m.RegisterAction(actionRespawn, (*Simulation).onRespawn)
	m.RegisterAction(actionTouchdown, (*Simulation).onTouchdown)
	m.RegisterAction(actionExplode, (*Simulation).onExplode)

	m.AddState(StateStandby, "Standby", fsm.StateNone)
	m.AddState(StateFlying, "Flying", fsm.StateNone)
	m.AddState(StateLanded, "Landed", fsm.StateNone)
	m.AddState(StateExploded, "Exploded", fsm.StateNone)
	m.InitialStateID = StateStandby

	wiring := []struct {
		src, tgt fsm.StateID
		ev       event.EventType
		guard    string
	}{
		{StateStandby, StateFlying, event.EventLaunch, ""},
		// Hard is evaluated first so one contact cannot satisfy both
		{StateFlying, StateExploded, event.EventTick, guardHardContact},
		{StateFlying, StateLanded, event.EventTick, guardSoftContact},
		{StateLanded, StateStandby, event.EventReset, ""},
		{StateExploded, StateStandby, event.EventReset, ""},
	}
	for _, w := range wiring {
		if err := m.Connect(w.src, w.tgt, w.ev, w.guard); err != nil {
			return nil, err
		}
	}

	entries := []struct {
		id     fsm.StateID
		action string
	}{
		{StateStandby, actionEnter},
		{StateStandby, actionRespawn},
		{StateFlying, actionEnter},
		{StateLanded, actionEnter},
		{StateLanded, actionTouchdown},
		{StateExploded, actionEnter},
		{StateExploded, actionExplode},
	}
	for _, e := range entries {
		if err := m.OnEnter(e.id, e.action, nil); err != nil {
			return nil, err
		}
	}

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Simulation) onEnter(any) {
	name := s.fsm.ActiveStateName()
	s.metrics.Transition(s.ctx, name)
	s.log.Info().Int64("frame", s.frame).Str("state", name).Msg("Lifecycle transition")
}

func (s *Simulation) onRespawn(any) {
	s.Ship.Reset(s.Ship.Spawn())
	s.resolver.Clear()
	s.contact = Contact{}
	s.outcome = OutcomeNone
	s.touchdown = event.TouchdownPayload{}
	s.thrusting = false
	s.fuelEmpty = false
	s.inZone = InZone(s.Ship.Bounds, s.settings.Zone)
	event.Emit(s.Queue, event.EventReset, s.frame)
}

func (s *Simulation) onTouchdown(any) {
	s.outcome = OutcomeOffTarget
	if s.inZone {
		s.outcome = OutcomeLanded
	}
	s.settle(event.EventLanded)
}

func (s *Simulation) onExplode(any) {
	s.outcome = OutcomeCrashed
	s.settle(event.EventExploded)
}

// settle records the touchdown, stops the ship and emits the terminal event once
func (s *Simulation) settle(t event.EventType) {
	s.touchdown = event.TouchdownPayload{
		Impulse:  s.contact.Magnitude,
		Position: s.Ship.Position,
		Velocity: s.Ship.Velocity,
		InZone:   s.inZone,
		Fuel:     s.Ship.Fuel,
	}
	s.Ship.Cutoff()
	s.Ship.Halt()
	s.stopThrust()

	payload := s.touchdown
	event.EmitWith(s.Queue, t, &payload, s.frame)
	s.log.Info().
		Int64("frame", s.frame).
		Str("outcome", s.outcome.String()).
		Float64("impulse", s.touchdown.Impulse).
		Bool("in_zone", s.inZone).
		Float64("fuel", s.touchdown.Fuel).
		Msg("Touchdown")
}
