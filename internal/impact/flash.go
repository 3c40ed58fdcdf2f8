package impact

import (
	"sync"
	"time"

	"meteorfall/internal/core"
)

// Flash is a full-screen overlay that fades from opaque to clear. It runs on
// its own clock, independent of the simulation tick; the frame loop only
// reads it.
type Flash struct {
	clock    core.Clock
	duration time.Duration
	step     time.Duration

	mu      sync.Mutex
	opacity float64
	visible bool
	gen     uint64
	sched   uint64
	pending core.Timer
	fader   core.Timer
	starts  int
}

// NewFlash returns an idle flash fading over duration in step increments.
func NewFlash(clock core.Clock, duration, step time.Duration) *Flash {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if duration <= 0 {
		duration = time.Second
	}
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	return &Flash{clock: clock, duration: duration, step: step}
}

// Schedule starts the flash after delay. A pending start is replaced.
func (f *Flash) Schedule(delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
	}
	f.sched++
	sched := f.sched
	f.pending = f.clock.AfterFunc(delay, func() { f.startScheduled(sched) })
}

// Start shows the overlay at full opacity and begins fading. Starting while
// already visible restarts the fade on the same overlay.
func (f *Flash) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start()
}

// startScheduled runs a delayed start unless it was replaced or stopped after
// its timer fired.
func (f *Flash) startScheduled(sched uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sched != f.sched {
		return
	}
	f.pending = nil
	f.start()
}

func (f *Flash) start() {
	if f.fader != nil {
		f.fader.Stop()
	}
	f.gen++
	gen := f.gen
	f.opacity = 1
	f.visible = true
	f.starts++
	f.fader = f.clock.Every(f.step, func() { f.fade(gen) })
}

// Stop cancels a pending start and hides the overlay.
func (f *Flash) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.sched++
	if f.fader != nil {
		f.fader.Stop()
		f.fader = nil
	}
	f.gen++
	f.opacity = 0
	f.visible = false
}

// Opacity returns the current overlay opacity and whether it is visible.
func (f *Flash) Opacity() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opacity, f.visible
}

// Pending reports whether a start is scheduled.
func (f *Flash) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending != nil
}

// Starts returns how many times the overlay has been shown.
func (f *Flash) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func (f *Flash) fade(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen || !f.visible {
		return
	}
	f.opacity -= float64(f.step) / float64(f.duration)
	if f.opacity <= 0 {
		f.opacity = 0
		f.visible = false
		if f.fader != nil {
			f.fader.Stop()
			f.fader = nil
		}
	}
}
