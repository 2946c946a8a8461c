// Command lander-headless flies the autopilot without a terminal and reports the outcome
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/logging"
	"github.com/lixenwraith/vi-lander/recorder"
	"github.com/lixenwraith/vi-lander/telemetry"
	"github.com/lixenwraith/vi-lander/vmath"
)

var (
	stepsFlag   = flag.Int("steps", 60*120, "Maximum ticks to simulate")
	configFlag  = flag.String("config", "", "Config file")
	seedFlag    = flag.Uint64("seed", 0, "Terrain seed override, 0 keeps the configured seed")
	targetXFlag = flag.Float64("x", 0, "Autopilot target X")
	targetZFlag = flag.Float64("z", 0, "Autopilot target Z")
	recordFlag  = flag.String("record", "", "Record the flight to this sqlite file")
	verboseFlag = flag.Bool("v", false, "Log to stderr")
)

// result is the printed summary of one run
type result struct {
	Steps     int
	Outcome   engine.Outcome
	Impulse   float64
	Fuel      float64
	Touchdown vmath.Vec3F
	Elapsed   time.Duration
}

func main() {
	flag.Parse()
	res, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lander-headless: %v\n", err)
		os.Exit(1)
	}
	printResult(os.Stdout, res)
	if !res.Outcome.Won() {
		os.Exit(2)
	}
}

func run() (result, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return result{}, err
	}
	if *seedFlag != 0 {
		cfg.Terrain.Seed = *seedFlag
	}
	if *recordFlag != "" {
		cfg.Recorder.Driver = "sqlite"
		cfg.Recorder.Path = *recordFlag
	}
	cfg.Log.Console = *verboseFlag

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return result{}, err
	}
	defer closer.Close()

	return fly(cfg, log, vmath.Vec3F{X: *targetXFlag, Z: *targetZFlag}, *stepsFlag)
}

// fly runs the autopilot over the configured world, recording when a driver is set
func fly(cfg *config.Config, log zerolog.Logger, target vmath.Vec3F, maxSteps int) (result, error) {
	metrics := telemetry.Noop()
	if cfg.Telemetry.Enabled {
		m, err := telemetry.Default()
		if err != nil {
			return result{}, fmt.Errorf("failed to create metrics: %w", err)
		}
		metrics = m
	}

	sim, err := engine.NewFromConfig(cfg, log, metrics)
	if err != nil {
		return result{}, err
	}

	var observe engine.Observer
	rec, err := recorder.Open(cfg.Recorder, log)
	switch {
	case err == nil:
		defer rec.Close()
		observe = rec.Observe
	case !errors.Is(err, recorder.ErrDisabled):
		log.Warn().Err(err).Msg("Flight recorder unavailable")
	}

	start := time.Now()
	steps := engine.RunAutopilot(sim, engine.NewAutopilot(target), maxSteps, observe)
	td := sim.Touchdown()

	res := result{
		Steps:     steps,
		Outcome:   sim.Outcome(),
		Impulse:   td.Impulse,
		Fuel:      sim.Ship.Fuel,
		Touchdown: td.Position,
		Elapsed:   time.Since(start),
	}
	log.Info().
		Int("steps", steps).
		Str("outcome", res.Outcome.String()).
		Float64("impulse", res.Impulse).
		Dur("took", res.Elapsed).
		Msg("Headless flight finished")
	return res, nil
}

func printResult(w io.Writer, r result) {
	msg := r.Outcome.Message()
	if msg == "" {
		msg = "No touchdown"
	}
	fmt.Fprintf(w, "%s\n", msg)
	fmt.Fprintf(w, "  outcome   %s\n", r.Outcome)
	fmt.Fprintf(w, "  ticks     %d\n", r.Steps)
	fmt.Fprintf(w, "  impulse   %.1f\n", r.Impulse)
	fmt.Fprintf(w, "  fuel      %.1f\n", r.Fuel)
	fmt.Fprintf(w, "  touchdown (%.2f, %.2f, %.2f)\n", r.Touchdown.X, r.Touchdown.Y, r.Touchdown.Z)
	fmt.Fprintf(w, "  wall time %s\n", r.Elapsed.Round(time.Microsecond))
}
