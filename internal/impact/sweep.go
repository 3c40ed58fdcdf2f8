package impact

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"meteorfall/internal/core"
	"meteorfall/internal/geom"
)

// Scenario is one headless flight.
type Scenario struct {
	Params Parameters
	// DeflectAt is the tick before which a deflection is attempted; negative
	// disables it.
	DeflectAt int
	MaxTicks  int
}

// ScenarioResult summarizes a finished Scenario.
type ScenarioResult struct {
	Scenario  Scenario
	Outcome   FlightState
	Ticks     int
	Closest   float64
	Deflected bool
	TooLate   bool
	DeltaV    float64

	PredictedHit bool
	PredictedLat float64
	PredictedLon float64
}

// RunScenario flies one meteor at the configured target with a manual clock
// and reports how the flight ended.
func RunScenario(cfg Config, sc Scenario) ScenarioResult {
	if sc.MaxTicks <= 0 {
		sc.MaxTicks = 20000
	}
	sim := New(cfg, WithClock(core.NewManualClock(time.Unix(0, 0))))
	sim.LaunchWith(sc.Params)

	res := ScenarioResult{Scenario: sc, Closest: math.Inf(1)}
	for tick := 0; tick < sc.MaxTicks && sim.State() == InFlight; tick++ {
		if tick == sc.DeflectAt {
			d, err := sim.Deflect()
			switch {
			case errors.Is(err, ErrTooLateToDeflect):
				res.TooLate = true
			case err == nil:
				res.Deflected = true
				res.DeltaV = d.DeltaV
				res.PredictedHit = d.PredictedHit
				if d.PredictedHit {
					res.PredictedLat, res.PredictedLon = geom.UnitSphereToLatLon(d.Predicted)
				}
			}
		}
		sim.Step()
		res.Ticks = tick + 1
		if d := sim.DistanceToTarget(); d >= 0 && d < res.Closest {
			res.Closest = d
		}
	}
	res.Outcome = sim.Motion().LastOutcome()
	if sim.State() == InFlight {
		res.Outcome = InFlight
	}
	if res.Outcome == Impacted {
		res.Closest = 0
	}
	return res
}

// Sweep runs scenarios on up to workers goroutines. Results keep the input
// order. Cancelling ctx stops scheduling new scenarios.
func Sweep(ctx context.Context, cfg Config, scenarios []Scenario, workers int) ([]ScenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]ScenarioResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = RunScenario(cfg, sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// VelocityScenarios builds one scenario per velocity on top of base.
func VelocityScenarios(base Parameters, velocities []float64, deflectAt int) []Scenario {
	out := make([]Scenario, 0, len(velocities))
	for _, v := range velocities {
		p := base
		p.Velocity = v
		out = append(out, Scenario{Params: p.Clamped(), DeflectAt: deflectAt})
	}
	return out
}
