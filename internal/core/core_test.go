package core

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestFixedStepAccumulates(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStepWithClock(10, func() time.Time { return now })

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a period elapsed, should not step")
	}
	if got := fs.Until(); got != 50*time.Millisecond {
		t.Fatalf("Until = %v, want 50ms", got)
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full period elapsed, should step")
	}
}

func TestLoopStopsFromTick(t *testing.T) {
	var loop *Loop
	calls := 0
	loop = NewLoop(1000, func() {
		calls++
		if calls == 5 {
			loop.Stop()
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if calls != 5 || loop.Ticks() != 5 {
		t.Fatalf("calls=%d ticks=%d, want 5", calls, loop.Ticks())
	}
	loop.Stop()
}

func TestLoopHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := NewLoop(60, func() { t.Fatal("tick after cancellation") })
	if err := loop.Run(ctx); err != context.Canceled {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestManualClockOrdering(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })
	ticks := 0
	var every Timer
	every = clock.Every(10*time.Millisecond, func() {
		ticks++
		if ticks == 4 {
			every.Stop()
		}
	})

	clock.Advance(100 * time.Millisecond)

	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("order = %v", order)
	}
	if ticks != 4 {
		t.Fatalf("periodic ran %d times, want 4", ticks)
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending = %d", clock.Pending())
	}
	if got := clock.Now(); !got.Equal(time.Unix(0, 0).Add(100 * time.Millisecond)) {
		t.Fatalf("Now = %v", got)
	}
}

func TestManualClockNestedSchedule(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	fired := time.Time{}
	clock.AfterFunc(time.Second, func() {
		clock.AfterFunc(500*time.Millisecond, func() { fired = clock.Now() })
	})
	clock.Advance(2 * time.Second)
	if want := time.Unix(0, 0).Add(1500 * time.Millisecond); !fired.Equal(want) {
		t.Fatalf("nested timer fired at %v, want %v", fired, want)
	}
}

func TestParameterControlAdjust(t *testing.T) {
	lin := ParameterControl{Step: 1000, Min: 11000, Max: 72000, HasMin: true, HasMax: true}
	if got := lin.Adjust(20000, 1); got != 21000 {
		t.Fatalf("linear +1 = %v", got)
	}
	if got := lin.Adjust(11500, -1); got != 11000 {
		t.Fatalf("linear clamp = %v", got)
	}

	log := ParameterControl{Step: 0.5, Logarithmic: true, Min: 1e6, Max: 1e12, HasMin: true, HasMax: true}
	if got := log.Adjust(1e8, 2); math.Abs(got-1e9)/1e9 > 1e-12 {
		t.Fatalf("log +2 = %v", got)
	}
	if got := log.Adjust(2e11, 4); got != 1e12 {
		t.Fatalf("log clamp = %v", got)
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "mass", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "velocity", Value: "2"}}},
	}}
	if p, ok := snap.Lookup("velocity"); !ok || p.Value != "2" {
		t.Fatalf("Lookup(velocity) = %v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}
}
