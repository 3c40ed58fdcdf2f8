package impact

import (
	"context"
	"testing"
)

func TestRunScenarioImpactTicks(t *testing.T) {
	cfg := ClassicConfig()
	cases := []struct {
		velocity float64
		ticks    int
	}{
		{20000, 171},
		{40000, 86},
		{11000, 311},
	}
	for _, tc := range cases {
		p := DefaultParameters()
		p.Velocity = tc.velocity
		res := RunScenario(cfg, Scenario{Params: p, DeflectAt: -1})
		if res.Outcome != Impacted {
			t.Fatalf("velocity %v: outcome = %v", tc.velocity, res.Outcome)
		}
		if res.Ticks != tc.ticks {
			t.Fatalf("velocity %v: impact after %d ticks, want %d", tc.velocity, res.Ticks, tc.ticks)
		}
	}
}

func TestRunScenarioDeflection(t *testing.T) {
	cfg := ClassicConfig()
	early := RunScenario(cfg, Scenario{Params: DefaultParameters(), DeflectAt: 10})
	if !early.Deflected || early.Outcome != Missed {
		t.Fatalf("early deflection = %+v", early)
	}
	if early.Closest <= cfg.Motion.ProximityThreshold {
		t.Fatalf("closest approach %v inside threshold", early.Closest)
	}
	late := RunScenario(cfg, Scenario{Params: DefaultParameters(), DeflectAt: 160})
	if !late.TooLate || late.Deflected || late.Outcome != Impacted {
		t.Fatalf("late deflection = %+v", late)
	}
}

func TestSweepKeepsOrder(t *testing.T) {
	velocities := []float64{72000, 11000, 30000, 20000}
	scenarios := VelocityScenarios(DefaultParameters(), velocities, -1)
	results, err := Sweep(context.Background(), ClassicConfig(), scenarios, 3)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(results) != len(velocities) {
		t.Fatalf("results = %d", len(results))
	}
	for i, res := range results {
		if res.Scenario.Params.Velocity != velocities[i] {
			t.Fatalf("result %d has velocity %v, want %v", i, res.Scenario.Params.Velocity, velocities[i])
		}
		if i > 0 && velocities[i] > velocities[i-1] && res.Ticks > results[i-1].Ticks {
			t.Fatalf("faster meteor took longer")
		}
	}
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scenarios := VelocityScenarios(DefaultParameters(), []float64{20000}, -1)
	if _, err := Sweep(ctx, ClassicConfig(), scenarios, 1); err == nil {
		t.Fatal("cancelled sweep returned no error")
	}
}
