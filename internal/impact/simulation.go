// Package impact implements the meteor flight, impact dispatch and effect
// lifecycle. All state lives in Simulation and is mutated only from Step and
// the input methods, which callers must serialize.
package impact

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"meteorfall/internal/core"
	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
	pcore "meteorfall/pkg/core"
)

// Option customizes a Simulation.
type Option func(*Simulation)

// WithClock sets the clock driving the screen flash.
func WithClock(c core.Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithName overrides the registry name reported by Name.
func WithName(name string) Option {
	return func(s *Simulation) { s.name = name }
}

// Simulation is the complete state of one impact scene.
type Simulation struct {
	name   string
	cfg    Config
	clock  core.Clock
	logger *slog.Logger

	graph   *scene.Graph
	rng     *pcore.RNG
	surface geom.Sphere

	pending Parameters
	params  Parameters

	targets    *TargetSelector
	motion     *MotionController
	explosions *Pool
	shockwaves *Pool
	flash      *Flash
	dispatcher *Dispatcher

	tick           uint64
	lastDeflection Deflection
	deflected      bool
}

// New builds a simulation from cfg. It does not validate cfg; use
// Config.Validate for user-supplied values.
func New(cfg Config, opts ...Option) *Simulation {
	s := &Simulation{
		name:    "impact",
		cfg:     cfg,
		surface: geom.UnitSphere,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = core.SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.graph = scene.NewGraph()
	s.rng = pcore.NewRNG(cfg.Seed)
	s.pending = cfg.Defaults.Clamped()
	s.params = s.pending
	s.targets = NewTargetSelector(s.graph, s.surface, cfg.Target.Lat, cfg.Target.Lon)
	s.motion = NewMotionController(s.graph, s.surface, cfg.Motion, cfg.Deflection)
	s.explosions = NewPool(s.graph)
	s.shockwaves = NewPool(s.graph)
	s.flash = NewFlash(s.clock, cfg.Flash.Duration, cfg.Flash.Step)
	s.dispatcher = NewDispatcher(cfg, s.explosions, s.shockwaves, s.flash, s.rng, s.logger)
	return s
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return s.name }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Scene exposes the renderable entities.
func (s *Simulation) Scene() *scene.Graph { return s.graph }

// Reset clears every entity and restores the default target and inputs. A
// zero seed reuses the configured seed.
func (s *Simulation) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.motion.Reset()
	s.explosions.Clear()
	s.shockwaves.Clear()
	s.flash.Stop()
	s.targets.Reset(s.cfg.Target.Lat, s.cfg.Target.Lon)
	s.graph.Clear()
	s.rng = pcore.NewRNG(seed)
	s.dispatcher.Reset(s.rng)
	s.pending = s.cfg.Defaults.Clamped()
	s.params = s.pending
	s.tick = 0
	s.deflected = false
	s.lastDeflection = Deflection{}
	s.logger.Debug("simulation reset", "seed", seed)
}

// Step advances the meteor and every effect by one tick.
func (s *Simulation) Step() {
	s.tick++
	wasFlying := s.motion.State() == InFlight
	if ev, ok := s.motion.Tick(s.targets.Target()); ok {
		if s.dispatcher.OnImpact(ev) {
			lat, lon := geom.UnitSphereToLatLon(ev.Position)
			s.logger.Info("meteor impact", "flight", ev.Flight, "tick", s.tick, "lat", lat, "lon", lon)
		}
	} else if wasFlying && s.motion.State() == Idle {
		s.logger.Info("meteor missed", "tick", s.tick, "outcome", s.motion.LastOutcome().String())
	}
	s.explosions.Update()
	s.shockwaves.Update()
}

// Launch captures the pending inputs and spawns a meteor at the current
// target, replacing any meteor in flight.
func (s *Simulation) Launch() *Meteor {
	s.params = s.pending.Clamped()
	s.deflected = false
	m := s.motion.Spawn(s.targets.Target(), s.params)
	s.logger.Info("meteor launched",
		"flight", m.Flight,
		"mass", s.params.Mass,
		"velocity", s.params.Velocity,
		"strength", s.params.Strength,
		"step", m.Velocity.Len())
	return m
}

// LaunchWith sets the pending inputs to p and launches.
func (s *Simulation) LaunchWith(p Parameters) *Meteor {
	s.pending = p.Clamped()
	return s.Launch()
}

// Deflect applies the deflection impulse to the meteor in flight.
func (s *Simulation) Deflect() (Deflection, error) {
	d, err := s.motion.Deflect(s.targets.Target(), s.params)
	switch {
	case errors.Is(err, ErrTooLateToDeflect):
		s.logger.Warn("deflection refused", "distance", d.DistanceWas, "min", s.cfg.Deflection.MinDistance)
		return d, err
	case err != nil:
		return d, err
	}
	s.lastDeflection = d
	s.deflected = true
	if d.PredictedHit {
		lat, lon := geom.UnitSphereToLatLon(d.Predicted)
		s.logger.Info("meteor deflected", "delta_v", d.DeltaV, "predicted_lat", lat, "predicted_lon", lon)
	} else {
		s.logger.Info("meteor deflected", "delta_v", d.DeltaV, "predicted", "miss")
	}
	return d, nil
}

// Pick moves the target to where the ray meets the planet surface.
func (s *Simulation) Pick(origin, direction mgl64.Vec3) bool {
	p, ok := s.targets.PickSurface(geom.Ray{Origin: origin, Direction: direction})
	if ok {
		lat, lon := geom.UnitSphereToLatLon(p)
		s.logger.Debug("target picked", "lat", lat, "lon", lon)
	}
	return ok
}

// SetTargetLatLon moves the target to a geographic coordinate.
func (s *Simulation) SetTargetLatLon(lat, lon float64) {
	s.targets.SetTarget(s.surface.Center.Add(geom.LatLonToUnitSphere(lat, lon, s.surface.Radius)))
}

// Target returns the active target.
func (s *Simulation) Target() mgl64.Vec3 { return s.targets.Target() }

// TargetLatLon returns the active target in geographic degrees.
func (s *Simulation) TargetLatLon() (lat, lon float64) {
	return geom.UnitSphereToLatLon(s.targets.Target().Sub(s.surface.Center))
}

// Pending returns the inputs the next launch will capture.
func (s *Simulation) Pending() Parameters { return s.pending }

// SetPending replaces the pending inputs, clamped.
func (s *Simulation) SetPending(p Parameters) { s.pending = p.Clamped() }

// Captured returns the inputs of the current or last run.
func (s *Simulation) Captured() Parameters { return s.params }

// State returns the flight state.
func (s *Simulation) State() FlightState { return s.motion.State() }

// Meteor returns the live meteor or nil.
func (s *Simulation) Meteor() *Meteor { return s.motion.Meteor() }

// Motion exposes the motion controller.
func (s *Simulation) Motion() *MotionController { return s.motion }

// Explosions exposes the explosion pool.
func (s *Simulation) Explosions() *Pool { return s.explosions }

// Shockwaves exposes the shockwave pool.
func (s *Simulation) Shockwaves() *Pool { return s.shockwaves }

// Flash exposes the screen flash.
func (s *Simulation) Flash() *Flash { return s.flash }

// Impacts returns how many impacts have been dispatched.
func (s *Simulation) Impacts() int { return s.dispatcher.Dispatched() }

// Ticks returns the number of steps since the last reset.
func (s *Simulation) Ticks() uint64 { return s.tick }

// LastDeflection returns the most recent successful deflection.
func (s *Simulation) LastDeflection() (Deflection, bool) { return s.lastDeflection, s.deflected }

// DistanceToTarget returns the meteor's distance to the target, or -1 when no
// meteor is in flight.
func (s *Simulation) DistanceToTarget() float64 {
	m := s.motion.Meteor()
	if m == nil {
		return -1
	}
	return m.Position.Sub(s.targets.Target()).Len()
}

// Status is a point-in-time summary of the simulation.
type Status struct {
	Tick         uint64
	State        FlightState
	Outcome      FlightState
	Distance     float64
	Impacts      int
	Explosions   int
	Shockwaves   int
	FlashPending bool
	FlashVisible bool
	FlashOpacity float64
	FlashStarts  int
	Deflected    bool
	Predicted    mgl64.Vec3
	PredictedHit bool
}

// Status snapshots the simulation.
func (s *Simulation) Status() Status {
	opacity, visible := s.flash.Opacity()
	st := Status{
		Tick:         s.tick,
		State:        s.motion.State(),
		Outcome:      s.motion.LastOutcome(),
		Distance:     s.DistanceToTarget(),
		Impacts:      s.Impacts(),
		Explosions:   s.explosions.Len(),
		Shockwaves:   s.shockwaves.Len(),
		FlashPending: s.flash.Pending(),
		FlashVisible: visible,
		FlashOpacity: opacity,
		FlashStarts:  s.flash.Starts(),
	}
	if d, ok := s.LastDeflection(); ok {
		st.Deflected = true
		st.Predicted, st.PredictedHit = d.Predicted, d.PredictedHit
	}
	return st
}

// StatusLines summarizes the simulation for the HUD.
func (s *Simulation) StatusLines() []string {
	st := s.Status()
	lat, lon := s.TargetLatLon()
	lines := []string{
		fmt.Sprintf("Target %.1f, %.1f", lat, lon),
		fmt.Sprintf("State  %s", st.State),
	}
	if st.Distance >= 0 {
		lines = append(lines, fmt.Sprintf("Range  %.3f", st.Distance))
	} else if st.Outcome != Idle {
		lines = append(lines, fmt.Sprintf("Last   %s", st.Outcome))
	}
	lines = append(lines, fmt.Sprintf("Impacts %d", st.Impacts))
	if st.Deflected {
		if st.PredictedHit {
			plat, plon := geom.UnitSphereToLatLon(st.Predicted)
			lines = append(lines, fmt.Sprintf("Predict %.1f, %.1f", plat, plon))
		} else {
			lines = append(lines, "Predict miss")
		}
	}
	return lines
}
