package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/input"
	"github.com/lixenwraith/vi-lander/physics"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/vmath"
)

// launchAt starts a flight with the lander just below the surface moving down at vy
func launchAt(t *testing.T, vy float64) *Simulation {
	t.Helper()
	sim := newTestSim(t, vmath.Vec3F{Y: -0.5})
	if !sim.Launch() {
		t.Fatal("Expected launch from Standby")
	}
	sim.Ship.Velocity = vmath.Vec3F{Y: vy}
	sim.Queue.Consume()
	return sim
}

func TestSimulationStartsInStandby(t *testing.T) {
	sim := newTestSim(t, vmath.Vec3F{Y: 30})

	if sim.State() != StateStandby {
		t.Errorf("Expected Standby, got %s", sim.StateName())
	}

	// Standby holds the ship in place
	var snap input.Snapshot
	for i := 0; i < 10; i++ {
		sim.Tick(&snap)
	}
	if sim.Ship.Position != (vmath.Vec3F{Y: 30}) {
		t.Errorf("Expected ship to hold at spawn in Standby, got %v", sim.Ship.Position)
	}
	if sim.Frame() != 10 {
		t.Errorf("Expected frame 10, got %d", sim.Frame())
	}
	if !sim.Sensor().Valid || sim.Sensor().Altitude != 30 {
		t.Errorf("Expected sensor altitude 30, got %+v", sim.Sensor())
	}
}

func TestSimulationLaunchIntent(t *testing.T) {
	sim := newTestSim(t, vmath.Vec3F{Y: 30})
	snap := input.Snapshot{Intents: []input.Intent{{Type: input.IntentLaunch}}}
	sim.Tick(&snap)

	if sim.State() != StateFlying {
		t.Fatalf("Expected Flying after launch intent, got %s", sim.StateName())
	}
	if sim.Ship.Position.Y >= 30 && sim.Ship.Velocity.Y >= 0 {
		t.Errorf("Expected gravity to act after launch, got pos %v vel %v", sim.Ship.Position, sim.Ship.Velocity)
	}

	// Reset is refused mid-flight
	if sim.Reset() {
		t.Error("Expected reset to be refused while Flying")
	}
}

func TestSimulationSoftContactLands(t *testing.T) {
	sim := launchAt(t, -3)
	sim.Tick(&input.Snapshot{})

	if sim.State() != StateLanded {
		t.Fatalf("Expected Landed, got %s (contact %v %.1f)", sim.StateName(), sim.Contact().Class, sim.Contact().Magnitude)
	}
	if sim.Outcome() != OutcomeLanded {
		t.Errorf("Expected outcome landed inside the zone, got %v", sim.Outcome())
	}
	if sim.Ship.Thrust != 0 {
		t.Errorf("Expected thrust capability zeroed on landing, got %v", sim.Ship.Thrust)
	}
	if sim.Ship.ApplyThrust(vmath.Vec3F{Y: 1}) {
		t.Error("Expected thrust refused after landing")
	}

	events := collect(sim)
	if len(events[event.EventLanded]) != 1 {
		t.Fatalf("Expected one landed event, got %d", len(events[event.EventLanded]))
	}
	p, ok := events[event.EventLanded][0].Payload.(*event.TouchdownPayload)
	if !ok {
		t.Fatalf("Expected touchdown payload, got %T", events[event.EventLanded][0].Payload)
	}
	if p.Impulse <= 0 || p.Impulse >= 500 || !p.InZone {
		t.Errorf("Expected soft in-zone touchdown, got %+v", p)
	}
	if len(events[event.EventContact]) != 1 {
		t.Errorf("Expected one contact event, got %d", len(events[event.EventContact]))
	}

	// Terminal state holds position and emits nothing further
	pos := sim.Ship.Position
	for i := 0; i < 30; i++ {
		sim.Tick(&input.Snapshot{Thrust: vmath.Vec3F{Y: 1}})
	}
	if sim.Ship.Position != pos {
		t.Errorf("Expected ship to stay put after landing, moved %v -> %v", pos, sim.Ship.Position)
	}
	if n := sim.Queue.Len(); n != 0 {
		t.Errorf("Expected no events after landing, got %d", n)
	}
}

func TestSimulationHardContactExplodesOnce(t *testing.T) {
	sim := launchAt(t, -8)
	sim.Tick(&input.Snapshot{})

	if sim.State() != StateExploded {
		t.Fatalf("Expected Exploded, got %s", sim.StateName())
	}
	if sim.Outcome() != OutcomeCrashed {
		t.Errorf("Expected outcome crashed, got %v", sim.Outcome())
	}
	if sim.Touchdown().Impulse <= 800 {
		t.Errorf("Expected touchdown impulse above 800, got %v", sim.Touchdown().Impulse)
	}

	for i := 0; i < 30; i++ {
		sim.Tick(&input.Snapshot{})
	}
	events := collect(sim)
	if len(events[event.EventExploded]) != 1 {
		t.Errorf("Expected exactly one exploded event, got %d", len(events[event.EventExploded]))
	}
	if len(events[event.EventLanded]) != 0 {
		t.Errorf("Expected no landed event, got %d", len(events[event.EventLanded]))
	}
	if sim.Ship.Thrust != 0 {
		t.Errorf("Expected thrust permanently zero, got %v", sim.Ship.Thrust)
	}
}

func TestSimulationMidBandBounces(t *testing.T) {
	sim := launchAt(t, -5)
	sim.Tick(&input.Snapshot{})

	if sim.State() != StateFlying {
		t.Fatalf("Expected Flying in the mid band, got %s", sim.StateName())
	}
	if sim.Contact().Class != physics.ContactFirm {
		t.Errorf("Expected firm contact, got %v", sim.Contact().Class)
	}

	sim.Tick(&input.Snapshot{})
	if sim.Ship.Velocity.Y <= 0 {
		t.Errorf("Expected the impulse to bounce the ship upward, got vy %v", sim.Ship.Velocity.Y)
	}
	if sim.State() != StateFlying {
		t.Errorf("Expected Flying after bounce, got %s", sim.StateName())
	}
}

func TestSimulationOffTargetLanding(t *testing.T) {
	sim := newTestSim(t, vmath.Vec3F{X: -24, Y: -0.5, Z: -24})
	sim.Launch()
	sim.Ship.Velocity = vmath.Vec3F{Y: -3}
	sim.Tick(&input.Snapshot{})

	if sim.State() != StateLanded {
		t.Fatalf("Expected Landed, got %s", sim.StateName())
	}
	if sim.InZone() {
		t.Error("Expected lander outside the landing zone")
	}
	if sim.Outcome() != OutcomeOffTarget {
		t.Errorf("Expected off target outcome, got %v", sim.Outcome())
	}
	if sim.Outcome().Message() != "You lose: did not land in correct area" {
		t.Errorf("Unexpected message %q", sim.Outcome().Message())
	}
}

func TestSimulationResetRestoresSpawn(t *testing.T) {
	sim := launchAt(t, -8)
	spawn := sim.Ship.Spawn()
	sim.Tick(&input.Snapshot{})
	if !sim.Terminal() {
		t.Fatalf("Expected terminal state, got %s", sim.StateName())
	}

	snap := input.Snapshot{Intents: []input.Intent{{Type: input.IntentReset}}}
	sim.Tick(&snap)

	if sim.State() != StateStandby {
		t.Fatalf("Expected Standby after reset, got %s", sim.StateName())
	}
	s := sim.Ship
	if s.Position != spawn.Position || s.Velocity != spawn.Velocity || s.Rotation != spawn.Rotation {
		t.Errorf("Expected kinematics restored, got pos %v vel %v rot %v", s.Position, s.Velocity, s.Rotation)
	}
	if s.Thrust != spawn.Thrust || s.Fuel != spawn.Fuel || s.Gravity != spawn.Gravity || s.Damping != spawn.Damping {
		t.Errorf("Expected ship parameters restored, got thrust %v fuel %v", s.Thrust, s.Fuel)
	}
	if !vmath.V3FIsZero(s.ImpulseForce) || !vmath.V3FIsZero(s.AppliedThrust) {
		t.Errorf("Expected forces cleared, got impulse %v thrust %v", s.ImpulseForce, s.AppliedThrust)
	}
	if sim.Outcome() != OutcomeNone {
		t.Errorf("Expected outcome cleared, got %v", sim.Outcome())
	}
	if len(collect(sim)[event.EventReset]) != 1 {
		t.Error("Expected one reset event")
	}
}

func TestSimulationThrustEdges(t *testing.T) {
	sim := newTestSim(t, vmath.Vec3F{Y: 30})
	sim.Launch()
	sim.Queue.Consume()

	up := input.Snapshot{Thrust: vmath.Vec3F{Y: 1}}
	idle := input.Snapshot{}
	sim.Tick(&up)
	sim.Tick(&up)
	sim.Tick(&idle)
	sim.Tick(&idle)

	events := collect(sim)
	if len(events[event.EventThrustStart]) != 1 || len(events[event.EventThrustStop]) != 1 {
		t.Errorf("Expected one start and one stop, got %d and %d",
			len(events[event.EventThrustStart]), len(events[event.EventThrustStop]))
	}
	wantFuel := sim.Ship.Spawn().Fuel - 2*sim.Ship.FuelPerTick
	if sim.Ship.Fuel != wantFuel {
		t.Errorf("Expected fuel %v after two thrust ticks, got %v", wantFuel, sim.Ship.Fuel)
	}
}

func TestSimulationFuelExhaustion(t *testing.T) {
	settings := DefaultSettings()
	settings.Spawn.Position = vmath.Vec3F{Y: 30}
	settings.Spawn.Fuel = 1
	sim, err := NewSimulation(flatTree(t), settings, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	sim.Launch()

	up := input.Snapshot{Thrust: vmath.Vec3F{Y: 1}}
	for i := 0; i < 5; i++ {
		sim.Tick(&up)
	}

	events := collect(sim)
	if len(events[event.EventFuelEmpty]) != 1 {
		t.Errorf("Expected one fuel empty event, got %d", len(events[event.EventFuelEmpty]))
	}
	if sim.Ship.Fuel != 0 || sim.Thrusting() {
		t.Errorf("Expected empty tank and no thrust, got fuel %v thrusting %v", sim.Ship.Fuel, sim.Thrusting())
	}
}

func TestSimulationDeterminism(t *testing.T) {
	a := newTestSim(t, vmath.Vec3F{X: 3, Y: 25, Z: -4})
	b := newTestSim(t, vmath.Vec3F{X: 3, Y: 25, Z: -4})
	pa := NewAutopilot(vmath.Vec3F{})
	pb := NewAutopilot(vmath.Vec3F{})

	for i := 0; i < 600; i++ {
		sa, sb := pa.Control(a), pb.Control(b)
		a.Tick(&sa)
		b.Tick(&sb)
		if a.Ship.Position != b.Ship.Position || a.Ship.Velocity != b.Ship.Velocity || a.State() != b.State() {
			t.Fatalf("Diverged at tick %d: %v/%v vs %v/%v", i, a.Ship.Position, a.Ship.Velocity, b.Ship.Position, b.Ship.Velocity)
		}
	}
}

func TestSimulationPick(t *testing.T) {
	sim := newTestSim(t, vmath.Vec3F{Y: 30})
	ray, err := spatial.NewRay(vmath.Vec3F{X: 5, Y: 20, Z: 5}, vmath.Vec3F{Y: -1})
	if err != nil {
		t.Fatalf("NewRay failed: %v", err)
	}

	hit, ok, err := sim.Pick(ray)
	if err != nil || !ok {
		t.Fatalf("Expected a pick hit, got ok=%v err=%v", ok, err)
	}
	if hit.Position != (vmath.Vec3F{X: 5, Y: 0, Z: 5}) {
		t.Errorf("Expected vertex (5,0,5), got %v", hit.Position)
	}

	events := collect(sim)
	if len(events[event.EventPick]) != 1 {
		t.Fatalf("Expected one pick event, got %d", len(events[event.EventPick]))
	}
	if p := events[event.EventPick][0].Payload.(*event.PickPayload); p.Point != hit.Point {
		t.Errorf("Expected payload point %d, got %d", hit.Point, p.Point)
	}

	if _, _, err := sim.Pick(spatial.Ray{Origin: vmath.Vec3F{}}); err == nil {
		t.Error("Expected error for zero-length pick ray")
	}
}

func TestOutcomeMessages(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeNone, ""},
		{OutcomeLanded, "You landed!"},
		{OutcomeOffTarget, "You lose: did not land in correct area"},
		{OutcomeCrashed, "You lose: landed too hard"},
	}
	for _, tt := range tests {
		if got := tt.o.Message(); got != tt.want {
			t.Errorf("Expected %q for %v, got %q", tt.want, tt.o, got)
		}
	}
	if !OutcomeLanded.Won() || OutcomeOffTarget.Won() {
		t.Error("Expected only OutcomeLanded to win")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.GridSize = 48

	sim, err := NewFromConfig(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if sim.State() != StateStandby {
		t.Errorf("Expected Standby, got %s", sim.StateName())
	}
	if sim.Tree.PickPolicy() != spatial.PickClosest {
		t.Errorf("Expected closest pick policy, got %v", sim.Tree.PickPolicy())
	}
	if !sim.Sensor().Valid {
		t.Error("Expected the altitude sensor to hit terrain below spawn")
	}

	// Pad is flattened, so the centre of the zone sits at pad height
	mesh, _ := TerrainFromConfig(cfg)
	if h, ok := mesh.HeightAt(0, 0); !ok || h != cfg.Terrain.PadHeight {
		t.Errorf("Expected pad height %v at origin, got %v (ok=%v)", cfg.Terrain.PadHeight, h, ok)
	}
}
