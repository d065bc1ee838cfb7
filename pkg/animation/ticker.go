// Package animation provides the timing primitives that drive sheet motion:
// a frame-stepped ticker registry, easing curves, spring physics and a
// scalar transition driver.
//
// # Frame Loop
//
// Tickers do not run on their own goroutines. A host embedding the kit
// calls [StepTickers] once per frame; each active ticker then receives the
// time elapsed since it started, measured against the package [Clock].
// Tests swap the clock with [SetClock] to step frames deterministically.
//
// # Driving a Value
//
// [Driver] owns a scalar and converges it on per-call targets:
//
//	driver := animation.NewDriver(800)
//	driver.AnimateTo(500, animation.TransitionSpec{
//	    Duration: 300 * time.Millisecond,
//	    Curve:    animation.QuadraticCurve,
//	})
//	// each frame:
//	animation.StepTickers()
//
// Calling AnimateTo again preempts the transition in flight, starting the
// new one from the current mid-flight value. Spring transitions are backed
// by [SpringSimulation]; request one with [TransitionSpring] and a
// [SpringDescription].
package animation

import (
	"sync"
	"time"
)

var (
	registryMu sync.Mutex
	registry   = make(map[*Ticker]struct{})
)

// Ticker invokes a callback on each frame while running.
//
// Ticker is the low-level timing primitive underneath [Driver]; most code
// should use Driver rather than Ticker. The callback receives the time
// elapsed since Start, and fires only when the host's frame loop calls
// [StepTickers].
type Ticker struct {
	fn        func(elapsed time.Duration)
	running   bool
	startedAt time.Time
}

// NewTicker creates a stopped ticker with the given callback.
func NewTicker(fn func(elapsed time.Duration)) *Ticker {
	return &Ticker{fn: fn}
}

// Start registers the ticker with the frame loop. Starting a running
// ticker does nothing; in particular it does not reset the start time.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.startedAt = Now()
	registryMu.Lock()
	registry[t] = struct{}{}
	registryMu.Unlock()
}

// Stop removes the ticker from the frame loop.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	registryMu.Lock()
	delete(registry, t)
	registryMu.Unlock()
}

// IsActive reports whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.running
}

// Elapsed returns the time since the ticker started, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return Now().Sub(t.startedAt)
}

// StepTickers advances every running ticker. Hosts call it once per frame.
func StepTickers() {
	// Snapshot under the lock; a callback may start or stop tickers.
	registryMu.Lock()
	if len(registry) == 0 {
		registryMu.Unlock()
		return
	}
	running := make([]*Ticker, 0, len(registry))
	for t := range registry {
		running = append(running, t)
	}
	registryMu.Unlock()

	now := Now()
	for _, t := range running {
		if t.running && t.fn != nil {
			t.fn(now.Sub(t.startedAt))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	return len(registry) > 0
}
