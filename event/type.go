package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved: FSM transitions with this type fire on Update, not on events
	EventTick EventType = iota

	// === Lifecycle Event ===

	// EventLaunch starts a flight from Standby
	// Trigger: Space in Standby, autopilot | Consumer: FSM | Payload: nil
	EventLaunch

	// EventLanded is emitted once on entering Landed
	// Trigger: FSM OnEnter | Consumer: audio, recorder, HUD | Payload: *TouchdownPayload
	EventLanded

	// EventExploded is emitted once on entering Exploded
	// Trigger: FSM OnEnter | Consumer: audio, particles, recorder | Payload: *TouchdownPayload
	EventExploded

	// EventReset returns the simulation to Standby from a terminal state
	// Trigger: R key | Consumer: FSM | Payload: nil
	EventReset

	// === Flight Event ===

	// EventThrustStart fires on the tick thrust goes from zero to non-zero
	// Consumer: audio exhaust loop, exhaust emitter | Payload: nil
	EventThrustStart

	// EventThrustStop fires on the tick thrust returns to zero
	// Consumer: audio exhaust loop, exhaust emitter | Payload: nil
	EventThrustStop

	// EventContact fires on every tick the lander box overlaps terrain leaves while descending
	// Consumer: telemetry, logging | Payload: *ContactPayload
	EventContact

	// EventFuelEmpty fires once when fuel reaches zero
	// Consumer: HUD, logging | Payload: nil
	EventFuelEmpty

	// === Interface Event ===

	// EventPick reports a terrain point selected through the camera
	// Trigger: mouse click | Consumer: renderer | Payload: *PickPayload
	EventPick

	// EventScreenshot requests a screenshot of the current frame
	// Trigger: P key | Consumer: renderer | Payload: nil
	EventScreenshot

	// EventMuteToggle toggles audio output
	// Trigger: M key | Consumer: SoundManager | Payload: nil
	EventMuteToggle
)

var eventNames = map[EventType]string{
	EventTick:        "tick",
	EventLaunch:      "launch",
	EventLanded:      "landed",
	EventExploded:    "exploded",
	EventReset:       "reset",
	EventThrustStart: "thrust_start",
	EventThrustStop:  "thrust_stop",
	EventContact:     "contact",
	EventFuelEmpty:   "fuel_empty",
	EventPick:        "pick",
	EventScreenshot:  "screenshot",
	EventMuteToggle:  "mute_toggle",
}

// String returns the log name of the event type
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
