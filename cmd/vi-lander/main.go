package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/logging"
)

var (
	configFlag = flag.String("config", "", "Config file (default ./vi-lander.toml or ~/.config/vi-lander/vi-lander.toml)")
	debugFlag  = flag.Bool("debug", false, "Log at debug level")
	seedFlag   = flag.Uint64("seed", 0, "Terrain seed override, 0 keeps the configured seed")
	cameraFlag = flag.String("camera", "", "Initial camera: orbit, top, follow, front, ground")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-lander: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Terminal must be restored even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Crashed")
			fmt.Fprintf(os.Stderr, "\n\x1b[31mVI-LANDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	app, err := newApp(cfg, log, screen, engine.NewMonotonicTimeProvider())
	if err != nil {
		screen.Fini()
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx)
	screen.Fini()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func applyFlags(cfg *config.Config) {
	if *debugFlag {
		cfg.Log.Level = "debug"
	}
	if *seedFlag != 0 {
		cfg.Terrain.Seed = *seedFlag
	}
	if *cameraFlag != "" {
		cfg.Camera.Mode = *cameraFlag
	}
}
