// Command impact-sweep flies one meteor per velocity in parallel and reports
// ticks to impact and whether a deflection at a given tick comes too late.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"meteorfall/internal/app"
	"meteorfall/internal/impact"
)

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid velocity %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	velocities := floatList{11000, 15000, 20000, 30000, 45000, 60000, 72000}
	flag.Var(&velocities, "velocities", "comma separated entry velocities in m/s")
	deflectAt := flag.Int("deflect-at", -1, "tick at which to attempt a deflection (-1 disables)")
	mass := flag.Float64("mass", impact.DefaultParameters().Mass, "meteor mass in kg")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario evaluations")
	configPath := flag.String("config", "", "YAML file with simulation tunables")
	var overrides app.KVList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	cfg := impact.DefaultConfig()
	if *configPath != "" {
		loaded, err := impact.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	opts := map[string]string{}
	for _, kv := range overrides {
		opts[kv.Key] = kv.Value
	}
	cfg = impact.ApplyMap(cfg, opts)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	base := cfg.Defaults
	base.Mass = *mass
	scenarios := impact.VelocityScenarios(base.Clamped(), velocities, *deflectAt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d velocities (%d workers, deflect at %d)\n", len(scenarios), *workers, *deflectAt)
	start := time.Now()
	results, err := impact.Sweep(ctx, cfg, scenarios, *workers)
	if err != nil {
		log.Fatal(err)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scenario.Params.Velocity < results[j].Scenario.Params.Velocity
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, res := range results {
		p := res.Scenario.Params
		line := fmt.Sprintf("v=%6.0f m=%.2e outcome=%-9s ticks=%5d closest=%.3f",
			p.Velocity, p.Mass, res.Outcome, res.Ticks, res.Closest)
		switch {
		case res.TooLate:
			line += " deflection=too-late"
		case res.Deflected && res.PredictedHit:
			line += fmt.Sprintf(" deflection=%.4f predicted=%.1f,%.1f", res.DeltaV, res.PredictedLat, res.PredictedLon)
		case res.Deflected:
			line += fmt.Sprintf(" deflection=%.4f predicted=miss", res.DeltaV)
		}
		fmt.Println(line)
	}
}
