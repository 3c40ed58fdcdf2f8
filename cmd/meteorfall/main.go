//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"meteorfall/internal/app"
	"meteorfall/internal/core"
	_ "meteorfall/internal/impact"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.LogLevel, false)
	slog.SetDefault(logger)
	logger.Info("starting", "sim", cfg.Sim, "seed", cfg.Seed, "overrides", cfg.Overrides.Keys())

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	game := app.New(sim, app.Options{
		Scale:    cfg.Scale,
		Seed:     cfg.Seed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		HUDWidth: cfg.HUDWidth,
		Prefs:    app.OpenPreferences(cfg.Prefs, logger),
		Logger:   logger,
	})

	ebiten.SetWindowTitle("meteorfall - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
