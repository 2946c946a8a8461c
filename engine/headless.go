package engine

// Observer is called after every tick of a headless run
type Observer func(s *Simulation)

// RunAutopilot ticks s under pilot until the flight ends or maxSteps ticks ran
// Queued events are drained after each tick. Returns the number of ticks executed
func RunAutopilot(s *Simulation, pilot *Autopilot, maxSteps int, observe Observer) int {
	steps := 0
	for steps < maxSteps {
		snap := pilot.Control(s)
		s.Tick(&snap)
		s.Drain()
		steps++
		if observe != nil {
			observe(s)
		}
		if s.Terminal() {
			break
		}
	}
	return steps
}
