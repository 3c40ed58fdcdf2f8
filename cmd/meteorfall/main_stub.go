//go:build !ebiten

// Command meteorfall runs the impact simulation headless in real time when
// built without the ebiten tag. It launches one meteor, optionally deflects it,
// and exits once the flight and its effects have finished.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meteorfall/internal/app"
	"meteorfall/internal/core"
	"meteorfall/internal/impact"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	deflectAt := flag.Int("deflect-at", -1, "tick at which to attempt a deflection (-1 disables)")
	timeout := flag.Duration("timeout", 30*time.Second, "give up after this long")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.LogLevel, true)
	slog.SetDefault(logger)
	logger.Info("starting", "sim", cfg.Sim, "seed", cfg.Seed, "overrides", cfg.Overrides.Keys())

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}
	sim, ok := factory(cfg.SimOptions()).(*impact.Simulation)
	if !ok {
		log.Fatalf("sim %q cannot run headless", cfg.Sim)
	}
	sim.Reset(cfg.Seed)

	prefs := app.OpenPreferences(cfg.Prefs, logger)
	prefs.Apply(sim)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	sim.Launch()
	var loop *core.Loop
	loop = core.NewLoop(cfg.TPS, func() {
		if int(sim.Ticks()) == *deflectAt {
			if _, err := sim.Deflect(); err != nil && !errors.Is(err, impact.ErrTooLateToDeflect) {
				logger.Error("deflection failed", "err", err)
			}
		}
		sim.Step()
		if finished(sim) {
			loop.Stop()
		}
	})

	err := loop.Run(ctx)
	s := sim.Status()
	logger.Info("run finished",
		"ticks", s.Tick,
		"outcome", s.Outcome.String(),
		"impacts", s.Impacts,
		"flash_starts", s.FlashStarts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "meteorfall:", err)
		os.Exit(1)
	}
}

// finished reports whether the flight is over and every effect, including the
// flash, has run its course.
func finished(sim *impact.Simulation) bool {
	s := sim.Status()
	if s.State == impact.InFlight || s.Explosions > 0 || s.Shockwaves > 0 {
		return false
	}
	if s.FlashPending || s.FlashVisible {
		return false
	}
	return s.Outcome != impact.Idle
}
