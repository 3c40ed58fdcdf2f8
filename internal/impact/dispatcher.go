package impact

import (
	"log/slog"

	"meteorfall/pkg/core"
)

// Dispatcher turns impact events into effects. Each flight dispatches at most
// once.
type Dispatcher struct {
	explosion ExplosionConfig
	shockwave ShockwaveConfig
	flashCfg  FlashConfig

	explosions *Pool
	shockwaves *Pool
	flash      *Flash
	rng        *core.RNG
	logger     *slog.Logger

	lastFlight uint64
	dispatched int
}

// NewDispatcher wires the dispatcher to its pools and flash. flash may be nil
// when the flash is disabled.
func NewDispatcher(cfg Config, explosions, shockwaves *Pool, flash *Flash, rng *core.RNG, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		explosion:  cfg.Explosion,
		shockwave:  cfg.Shockwave,
		flashCfg:   cfg.Flash,
		explosions: explosions,
		shockwaves: shockwaves,
		flash:      flash,
		rng:        rng,
		logger:     logger,
	}
}

// OnImpact spawns the explosion, the shockwave and schedules the flash. It
// returns false for a flight that has already been dispatched.
func (d *Dispatcher) OnImpact(ev ImpactEvent) bool {
	if ev.Flight <= d.lastFlight {
		return false
	}
	d.lastFlight = ev.Flight
	d.dispatched++

	d.explosions.Add(NewExplosion(ev.Position, d.explosion, d.rng))
	if d.shockwave.Enabled {
		d.shockwaves.Add(NewShockwave(ev.Position, d.shockwave))
	}
	if d.flashCfg.Enabled && d.flash != nil {
		d.flash.Schedule(d.flashCfg.Delay)
	}
	d.logger.Debug("impact dispatched", "flight", ev.Flight, "explosions", d.explosions.Len(), "shockwaves", d.shockwaves.Len())
	return true
}

// Reset zeroes the impact count and swaps the particle RNG. Flight ids keep
// increasing across resets, so the last dispatched id is kept.
func (d *Dispatcher) Reset(rng *core.RNG) {
	d.rng = rng
	d.dispatched = 0
}

// Dispatched returns how many impacts produced effects.
func (d *Dispatcher) Dispatched() int { return d.dispatched }
