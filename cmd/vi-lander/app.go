package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/audio"
	"github.com/lixenwraith/vi-lander/camera"
	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/effects"
	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/input"
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/recorder"
	"github.com/lixenwraith/vi-lander/render"
	"github.com/lixenwraith/vi-lander/telemetry"
)

// App wires the simulation to the terminal, audio and the flight recorder
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	screen   tcell.Screen
	clock    engine.TimeProvider
	sim      *engine.Simulation
	rig      *camera.Rig
	fx       *effects.Manager
	renderer *render.Renderer
	tracker  *input.Tracker
	fps      engine.FrameRate

	// Optional subsystems, nil when unavailable
	sound    *audio.SoundManager
	recorder *recorder.Recorder
}

// newApp builds every subsystem; audio and recording fail soft
func newApp(cfg *config.Config, log zerolog.Logger, screen tcell.Screen, clock engine.TimeProvider) (*App, error) {
	metrics := telemetry.Noop()
	if cfg.Telemetry.Enabled {
		m, err := telemetry.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
		metrics = m
	}

	sim, err := engine.NewFromConfig(cfg, log, metrics)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		clock:    clock,
		sim:      sim,
		rig:      camera.NewRig(sim.Zone().Center()),
		fx:       effects.NewManager(sim.Ship.Gravity),
		renderer: render.NewRenderer(screen),
		tracker:  input.NewTracker(input.DefaultKeyTable(), cfg.Input.HoldWindow),
	}
	if mode, ok := camera.ParseMode(cfg.Camera.Mode); ok {
		a.rig.Select(mode)
	}
	a.renderer.Options.Levels = cfg.Octree.DebugLevels

	a.renderer.Subscribe(sim.Router)
	a.fx.Subscribe(sim.Router)
	sim.Router.Subscribe(event.EventReset, func(event.GameEvent) { a.fx.Clear() })

	if cfg.Audio.Enabled {
		a.sound = audio.NewSoundManager()
		if err := a.sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("Audio unavailable, continuing without sound")
			a.sound = nil
		} else {
			a.sound.Subscribe(sim.Router)
		}
	}

	a.openRecorder()
	return a, nil
}

func (a *App) openRecorder() {
	rec, err := recorder.Open(a.cfg.Recorder, a.log)
	if err != nil {
		if !errors.Is(err, recorder.ErrDisabled) {
			a.log.Warn().Err(err).Msg("Flight recorder unavailable")
		}
		return
	}
	if a.cfg.Influx.Enabled {
		sink, err := recorder.NewInfluxSink(a.cfg.Influx, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("InfluxDB sink unavailable")
		} else {
			rec.AddSink(sink)
		}
	}
	a.recorder = rec
}

// Close releases audio and flushes the recorder
func (a *App) Close() {
	if a.sound != nil {
		a.sound.Cleanup()
	}
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close flight recorder")
		}
	}
}

// handleIntents applies display, camera and capture intents, reports quit
// Launch and reset are left in the snapshot for the simulation
func (a *App) handleIntents(intents []input.Intent) bool {
	for _, in := range intents {
		switch in.Type {
		case input.IntentQuit:
			return true
		case input.IntentResize:
			a.screen.Sync()
			a.renderer.Resize()
		case input.IntentMute:
			event.Emit(a.sim.Queue, event.EventMuteToggle, a.sim.Frame())
		case input.IntentToggleOctree:
			a.renderer.Options.Octree = !a.renderer.Options.Octree
		case input.IntentToggleLeaves:
			a.renderer.Options.Leaves = !a.renderer.Options.Leaves
		case input.IntentToggleContacts:
			a.renderer.Options.Contacts = !a.renderer.Options.Contacts
		case input.IntentToggleSensor:
			a.renderer.Options.Sensor = !a.renderer.Options.Sensor
		case input.IntentToggleHUD:
			a.renderer.Options.HUD = !a.renderer.Options.HUD
		case input.IntentLevelUp:
			a.renderer.Options.AdjustLevels(1)
		case input.IntentLevelDown:
			a.renderer.Options.AdjustLevels(-1)
		case input.IntentCamera:
			a.rig.Select(camera.Mode(in.Arg))
		case input.IntentOrbitLeft:
			a.rig.Orbit().Rotate(-parameter.OrbitStep)
		case input.IntentOrbitRight:
			a.rig.Orbit().Rotate(parameter.OrbitStep)
		case input.IntentZoomIn:
			a.rig.Orbit().Zoom(-parameter.OrbitZoomStep)
		case input.IntentZoomOut:
			a.rig.Orbit().Zoom(parameter.OrbitZoomStep)
		case input.IntentScreenshot:
			event.Emit(a.sim.Queue, event.EventScreenshot, a.sim.Frame())
		case input.IntentPick:
			a.pick(in.X, in.Y)
		}
	}
	return false
}

func (a *App) pick(x, y int) {
	vp := a.renderer.Viewport()
	if y >= vp.Height {
		return
	}
	ray := a.rig.Active().ScreenToWorld(x, y, vp)
	if _, ok, err := a.sim.Pick(ray); err != nil {
		a.log.Debug().Err(err).Int("x", x).Int("y", y).Msg("Pick failed")
	} else if !ok {
		a.renderer.SetStatus("No terrain under cursor")
	}
}

// step runs one frame: input, simulation tick, event dispatch, recording and drawing
func (a *App) step(now time.Time) bool {
	snap := a.tracker.Snapshot(now)
	if a.handleIntents(snap.Intents) {
		return false
	}

	a.sim.Tick(&snap)
	a.fx.Update(a.sim.Ship.Position, a.sim.Settings().Dt)
	a.sim.Drain()
	if a.recorder != nil {
		a.recorder.Observe(a.sim)
	}

	a.rig.Track(a.sim.Ship.Position)
	a.fps.Mark(now)
	a.renderer.Draw(&render.Frame{
		Sim:        a.sim,
		Camera:     a.rig.Active(),
		CameraMode: a.rig.Mode(),
		Effects:    a.fx,
		FPS:        a.fps.FPS(),
		Muted:      a.sound == nil || a.sound.Muted(),
	})
	a.renderer.Show()
	return true
}

// pollEvents forwards terminal events until the screen finalises or done closes
func (a *App) pollEvents(done <-chan struct{}, events chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run polls terminal events and steps one frame per tick until quit or ctx ends
func (a *App) Run(ctx context.Context) error {
	a.sim.SetContext(ctx)

	events := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(done, events)

	ticker := time.NewTicker(time.Duration(a.sim.Settings().Dt * float64(time.Second)))
	defer ticker.Stop()

	a.log.Info().Str("camera", a.rig.Mode().String()).Msg("Lander ready")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.tracker.HandleEvent(ev, a.clock.Now())
		case <-ticker.C:
			if !a.step(a.clock.Now()) {
				return nil
			}
		}
	}
}
