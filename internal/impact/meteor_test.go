package impact

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
)

func newController() (*MotionController, *scene.Graph, mgl64.Vec3) {
	cfg := DefaultConfig()
	g := scene.NewGraph()
	c := NewMotionController(g, geom.UnitSphere, cfg.Motion, cfg.Deflection)
	target := geom.LatLonToUnitSphere(26, 30, 1)
	return c, g, target
}

func TestSpawnAimsAtTarget(t *testing.T) {
	c, g, target := newController()
	m := c.Spawn(target, DefaultParameters())

	wantPos := target.Add(mgl64.Vec3{2, 2, 2})
	if !m.Position.ApproxEqual(wantPos) {
		t.Fatalf("spawn position = %v, want %v", m.Position, wantPos)
	}
	if got := m.Velocity.Len(); math.Abs(got-0.02) > 1e-12 {
		t.Fatalf("step length = %v, want 0.02", got)
	}
	toTarget := target.Sub(m.Position).Normalize()
	if dot := m.Velocity.Normalize().Dot(toTarget); dot < 1-1e-12 {
		t.Fatalf("velocity not aimed at target, dot = %v", dot)
	}
	if c.State() != InFlight || !m.Active {
		t.Fatalf("state = %v active = %v, want in-flight", c.State(), m.Active)
	}
	if g.Count(scene.KindMeteor) != 1 {
		t.Fatalf("meteor visuals = %d, want 1", g.Count(scene.KindMeteor))
	}
}

func TestSpawnReplacesMeteor(t *testing.T) {
	c, g, target := newController()
	first := c.Spawn(target, DefaultParameters())
	second := c.Spawn(target, DefaultParameters())

	if first.Active {
		t.Fatal("replaced meteor still active")
	}
	if g.Contains(first.Visual()) {
		t.Fatal("replaced meteor visual still in scene")
	}
	if second.Flight != first.Flight+1 {
		t.Fatalf("flight ids %d, %d not consecutive", first.Flight, second.Flight)
	}
	if g.Count(scene.KindMeteor) != 1 {
		t.Fatalf("meteor visuals = %d, want 1", g.Count(scene.KindMeteor))
	}
}

func TestFlightApproachesAndImpactsOnce(t *testing.T) {
	c, g, target := newController()
	c.Spawn(target, DefaultParameters())

	prev := math.Inf(1)
	impacts := 0
	impactTick := 0
	for tick := 1; tick <= 400; tick++ {
		if m := c.Meteor(); m != nil {
			d := m.Position.Sub(target).Len()
			if d >= prev {
				t.Fatalf("tick %d: distance %v did not decrease from %v", tick, d, prev)
			}
			prev = d
		}
		ev, ok := c.Tick(target)
		if ok {
			impacts++
			impactTick = tick
			if !ev.Position.ApproxEqual(target) {
				t.Fatalf("impact at %v, want target %v", ev.Position, target)
			}
		}
	}
	if impacts != 1 {
		t.Fatalf("impacts = %d, want exactly 1", impacts)
	}
	// |(2,2,2)| = 3.464; the first step inside 0.05 is 171.
	if impactTick != 171 {
		t.Fatalf("impact on tick %d, want 171", impactTick)
	}
	if c.State() != Idle || c.LastOutcome() != Impacted {
		t.Fatalf("state = %v outcome = %v after impact", c.State(), c.LastOutcome())
	}
	if c.Meteor() != nil || g.Count(scene.KindMeteor) != 0 {
		t.Fatal("meteor not released after impact")
	}
}

func TestTickIdleIsNoop(t *testing.T) {
	c, _, target := newController()
	if _, ok := c.Tick(target); ok {
		t.Fatal("idle controller emitted an impact")
	}
}

func TestDeflectTooLate(t *testing.T) {
	c, g, target := newController()
	m := c.Spawn(target, DefaultParameters())
	for i := 0; i < 160; i++ {
		c.Tick(target)
	}
	before := m.Velocity

	_, err := c.Deflect(target, DefaultParameters())
	if !errors.Is(err, ErrTooLateToDeflect) {
		t.Fatalf("err = %v, want ErrTooLateToDeflect", err)
	}
	if m.Velocity != before {
		t.Fatalf("velocity changed to %v on refused deflection", m.Velocity)
	}
	if c.Deflector() != nil || g.Count(scene.KindDeflector) != 0 {
		t.Fatal("deflector marker shown on refused deflection")
	}
}

func TestDeflectWithoutMeteor(t *testing.T) {
	c, _, target := newController()
	if _, err := c.Deflect(target, DefaultParameters()); !errors.Is(err, ErrNotInFlight) {
		t.Fatalf("err = %v, want ErrNotInFlight", err)
	}
}

func TestDeflectAppliesPerpendicularImpulse(t *testing.T) {
	c, g, target := newController()
	m := c.Spawn(target, DefaultParameters())
	before := m.Velocity

	d, err := c.Deflect(target, DefaultParameters())
	if err != nil {
		t.Fatalf("Deflect: %v", err)
	}
	if math.Abs(d.DeltaV-0.01) > 1e-12 {
		t.Fatalf("delta v = %v, want 0.01", d.DeltaV)
	}
	impulse := m.Velocity.Sub(before)
	if got := impulse.Len(); math.Abs(got-d.DeltaV) > 1e-12 {
		t.Fatalf("impulse length = %v, want %v", got, d.DeltaV)
	}
	if dot := impulse.Dot(before); math.Abs(dot) > 1e-12 {
		t.Fatalf("impulse not perpendicular to velocity, dot = %v", dot)
	}
	if dot := impulse.Dot(geom.Up); math.Abs(dot) > 1e-12 {
		t.Fatalf("impulse not perpendicular to up, dot = %v", dot)
	}
	if delta := math.Abs(m.Velocity.Len() - before.Len()); delta > d.DeltaV {
		t.Fatalf("speed changed by %v, more than delta v", delta)
	}
	if g.Count(scene.KindDeflector) != 1 {
		t.Fatalf("deflector visuals = %d, want 1", g.Count(scene.KindDeflector))
	}

	// A second deflection replaces the marker.
	if _, err := c.Deflect(target, DefaultParameters()); err != nil {
		t.Fatalf("second Deflect: %v", err)
	}
	if g.Count(scene.KindDeflector) != 1 {
		t.Fatalf("deflector visuals = %d after second deflection, want 1", g.Count(scene.KindDeflector))
	}
}

func TestDeflectedMeteorEscapes(t *testing.T) {
	c, _, target := newController()
	c.Spawn(target, DefaultParameters())
	if _, err := c.Deflect(target, DefaultParameters()); err != nil {
		t.Fatalf("Deflect: %v", err)
	}
	for i := 0; i < 5000 && c.State() == InFlight; i++ {
		if _, ok := c.Tick(target); ok {
			t.Fatal("deflected meteor still hit the target")
		}
	}
	if c.State() != Idle || c.LastOutcome() != Missed {
		t.Fatalf("state = %v outcome = %v, want idle after a miss", c.State(), c.LastOutcome())
	}
}

func TestDeflectionScalesWithMassAndVelocity(t *testing.T) {
	cfg := DefaultConfig().Deflection
	base := cfg.DeltaV(DefaultParameters())
	heavy := cfg.DeltaV(Parameters{Mass: 1e10, Velocity: 20000, Strength: 1e7})
	fast := cfg.DeltaV(Parameters{Mass: 1e8, Velocity: 40000, Strength: 1e7})
	if math.Abs(heavy-base/100) > 1e-15 {
		t.Fatalf("heavy delta v = %v, want %v", heavy, base/100)
	}
	if math.Abs(fast-2*base) > 1e-15 {
		t.Fatalf("fast delta v = %v, want %v", fast, 2*base)
	}
}

func TestResetDropsMeteorAndDeflector(t *testing.T) {
	c, g, target := newController()
	c.Spawn(target, DefaultParameters())
	if _, err := c.Deflect(target, DefaultParameters()); err != nil {
		t.Fatalf("Deflect: %v", err)
	}
	c.Reset()
	if c.State() != Idle || c.Meteor() != nil || c.Deflector() != nil {
		t.Fatal("Reset left flight state behind")
	}
	if g.Len() != 0 {
		t.Fatalf("scene holds %d visuals after reset", g.Len())
	}
}

func TestTargetSelectorPick(t *testing.T) {
	g := scene.NewGraph()
	sel := NewTargetSelector(g, geom.UnitSphere, 26, 30)
	initial := sel.Target()
	if sel.Marker() != nil {
		t.Fatal("marker shown before any pick")
	}

	miss := geom.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 1, 0}}
	if _, ok := sel.PickSurface(miss); ok {
		t.Fatal("ray pointing away from the planet picked a target")
	}
	if sel.Target() != initial || g.Len() != 0 {
		t.Fatal("miss changed the target")
	}

	hit := geom.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}
	p, ok := sel.PickSurface(hit)
	if !ok {
		t.Fatal("ray at the planet missed")
	}
	if !p.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("picked %v, want front pole", p)
	}
	first := sel.Marker()
	if first == nil || g.Count(scene.KindTargetMarker) != 1 {
		t.Fatal("pick did not place a marker")
	}

	sel.PickSurface(geom.Ray{Origin: mgl64.Vec3{5, 0, 0}, Direction: mgl64.Vec3{-1, 0, 0}})
	if g.Contains(first) || g.Count(scene.KindTargetMarker) != 1 {
		t.Fatal("second pick did not replace the marker")
	}
	if math.Abs(sel.Target().Len()-1) > 1e-9 {
		t.Fatalf("target %v not on the surface", sel.Target())
	}
}
