package impact

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
)

var (
	// ErrTooLateToDeflect is returned when a deflection is attempted inside
	// the minimum safety distance. The meteor is left untouched.
	ErrTooLateToDeflect = errors.New("too late to deflect: the meteor is too close to Earth")
	// ErrNotInFlight is returned when there is no meteor to deflect.
	ErrNotInFlight = errors.New("no meteor in flight")
)

// FlightState is the motion controller state.
type FlightState uint8

const (
	// Idle means no meteor is live.
	Idle FlightState = iota
	// InFlight means a meteor is advancing toward the target.
	InFlight
	// Impacted marks a flight that reached the proximity threshold.
	Impacted
	// Missed marks a flight that left the escape radius.
	Missed
)

func (s FlightState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Impacted:
		return "impacted"
	case Missed:
		return "missed"
	default:
		return "unknown"
	}
}

var (
	meteorColor    = colorful.Color{R: 1, G: 0x55 / 255.0, B: 0}
	meteorEmissive = colorful.Color{R: 1, G: 0x33 / 255.0, B: 0}
	deflectorColor = colorful.Color{R: 1, G: 1, B: 1}
)

const (
	deflectorRadius = 0.07
	deflectorHeight = 0.15
)

// Meteor is the single projectile of a flight.
type Meteor struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Active   bool
	Flight   uint64

	visual *scene.Visual
}

// Visual returns the meteor's scene entity.
func (m *Meteor) Visual() *scene.Visual { return m.visual }

// ImpactEvent is emitted once when a flight reaches its target.
type ImpactEvent struct {
	Flight   uint64
	Position mgl64.Vec3
}

// Deflection describes an applied impulse.
type Deflection struct {
	DeltaV       float64
	Before       mgl64.Vec3
	After        mgl64.Vec3
	Predicted    mgl64.Vec3
	PredictedHit bool
	DistanceWas  float64
}

// MotionController owns the meteor and advances it one step per tick.
type MotionController struct {
	cfg        MotionConfig
	deflection DeflectionConfig
	scene      scene.Scene
	surface    geom.Sphere

	state     FlightState
	outcome   FlightState
	meteor    *Meteor
	deflector *scene.Visual
	flights   uint64
}

// NewMotionController returns an idle controller.
func NewMotionController(sc scene.Scene, surface geom.Sphere, motion MotionConfig, deflection DeflectionConfig) *MotionController {
	return &MotionController{cfg: motion, deflection: deflection, scene: sc, surface: surface}
}

// State returns the current flight state.
func (c *MotionController) State() FlightState { return c.state }

// LastOutcome returns Impacted or Missed for the most recent finished flight,
// or Idle when none has finished.
func (c *MotionController) LastOutcome() FlightState { return c.outcome }

// Meteor returns the live meteor or nil.
func (c *MotionController) Meteor() *Meteor { return c.meteor }

// Deflector returns the deflector marker or nil.
func (c *MotionController) Deflector() *scene.Visual { return c.deflector }

// Flights returns how many meteors have been spawned.
func (c *MotionController) Flights() uint64 { return c.flights }

// Spawn replaces any live meteor with a new one offset from target and aimed
// at it.
func (c *MotionController) Spawn(target mgl64.Vec3, p Parameters) *Meteor {
	c.release()
	c.flights++

	pos := target.Add(c.cfg.Offset())
	vel := geom.Direction(pos, target).Mul(c.cfg.SpeedScale(p.Velocity))
	m := &Meteor{
		Position: pos,
		Velocity: vel,
		Active:   true,
		Flight:   c.flights,
		visual: &scene.Visual{
			Kind:     scene.KindMeteor,
			Position: pos,
			Radius:   c.cfg.MeteorRadius,
			Color:    meteorColor,
			Emissive: meteorEmissive,
			Opacity:  1,
			Scale:    1,
		},
	}
	c.scene.Add(m.visual)
	c.meteor = m
	c.state = InFlight
	return m
}

// Tick advances an in-flight meteor by one step. It returns an impact event
// on the tick the meteor first comes within the proximity threshold.
func (c *MotionController) Tick(target mgl64.Vec3) (ImpactEvent, bool) {
	if c.state != InFlight || c.meteor == nil {
		return ImpactEvent{}, false
	}
	m := c.meteor
	m.Position = m.Position.Add(m.Velocity)
	m.visual.Position = m.Position

	if m.Position.Sub(target).Len() < c.cfg.ProximityThreshold {
		c.finish(Impacted)
		return ImpactEvent{Flight: m.Flight, Position: target}, true
	}
	if m.Position.Sub(c.surface.Center).Len() > c.cfg.EscapeRadius {
		c.finish(Missed)
	}
	return ImpactEvent{}, false
}

// Deflect adds a one-shot impulse perpendicular to the current velocity and
// the world up-axis.
func (c *MotionController) Deflect(target mgl64.Vec3, p Parameters) (Deflection, error) {
	if c.state != InFlight || c.meteor == nil {
		return Deflection{}, ErrNotInFlight
	}
	m := c.meteor
	dist := m.Position.Sub(target).Len()
	if dist < c.deflection.MinDistance {
		return Deflection{DistanceWas: dist}, ErrTooLateToDeflect
	}

	dv := c.deflection.DeltaV(p)
	before := m.Velocity
	m.Velocity = m.Velocity.Add(geom.Perpendicular(m.Velocity, geom.Up).Mul(dv))

	if c.deflector != nil {
		c.scene.Remove(c.deflector)
	}
	c.deflector = &scene.Visual{
		Kind:     scene.KindDeflector,
		Position: m.Position.Add(mgl64.Vec3(c.deflection.MarkerOffset)),
		Radius:   deflectorRadius,
		Height:   deflectorHeight,
		Color:    deflectorColor,
		Emissive: deflectorColor,
		Opacity:  1,
		Scale:    1,
		Facing:   m.Position,
	}
	c.scene.Add(c.deflector)

	d := Deflection{DeltaV: dv, Before: before, After: m.Velocity, DistanceWas: dist}
	d.Predicted, d.PredictedHit = c.surface.Intersect(geom.Ray{Origin: m.Position, Direction: m.Velocity})
	return d, nil
}

// Reset drops the meteor and deflector without emitting events.
func (c *MotionController) Reset() {
	c.release()
	if c.deflector != nil {
		c.scene.Remove(c.deflector)
		c.deflector = nil
	}
	c.state = Idle
	c.outcome = Idle
}

func (c *MotionController) finish(state FlightState) {
	c.state = state
	c.outcome = state
	c.release()
	c.state = Idle
}

func (c *MotionController) release() {
	if c.meteor == nil {
		return
	}
	c.meteor.Active = false
	c.scene.Remove(c.meteor.visual)
	c.meteor = nil
}
