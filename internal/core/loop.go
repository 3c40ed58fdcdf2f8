package core

import (
	"context"
	"sync"
	"time"
)

// Loop drives a tick function at a fixed rate without a display. Ticks never
// overlap: each runs to completion on the goroutine calling Run.
type Loop struct {
	step *FixedStep
	tick func()

	stop     chan struct{}
	stopOnce sync.Once
	ticks    uint64
}

// NewLoop returns a loop calling tick tps times per second.
func NewLoop(tps int, tick func()) *Loop {
	return NewLoopWithStep(NewFixedStep(tps), tick)
}

// NewLoopWithStep uses an existing FixedStep, typically one with a custom clock.
func NewLoopWithStep(step *FixedStep, tick func()) *Loop {
	return &Loop{step: step, tick: tick, stop: make(chan struct{})}
}

// Run ticks until ctx is cancelled or Stop is called. It returns ctx.Err() on
// cancellation and nil after Stop.
func (l *Loop) Run(ctx context.Context) error {
	wait := time.NewTimer(0)
	defer wait.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		default:
		}

		if l.step.ShouldStep() {
			l.ticks++
			l.tick()
			continue
		}

		if !wait.Stop() {
			select {
			case <-wait.C:
			default:
			}
		}
		wait.Reset(l.step.Until())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-wait.C:
		}
	}
}

// Stop ends Run after the current tick. Safe to call from inside the tick
// function and more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Ticks returns how many ticks Run has executed. Only read it from the loop
// goroutine or after Run returns.
func (l *Loop) Ticks() uint64 { return l.ticks }
