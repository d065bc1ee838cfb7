package animation

import "time"

// TransitionKind selects how a [Driver] moves its value toward a target.
type TransitionKind int

const (
	// TransitionTimed interpolates over a fixed duration with an easing curve.
	TransitionTimed TransitionKind = iota
	// TransitionSpring integrates a damped spring until it settles.
	TransitionSpring
)

// String returns a human-readable representation of the transition kind.
func (k TransitionKind) String() string {
	switch k {
	case TransitionTimed:
		return "timed"
	case TransitionSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// DefaultDuration is used by timed transitions whose Duration is zero.
const DefaultDuration = 300 * time.Millisecond

// TransitionSpec describes a single transition request passed to
// [Driver.AnimateTo]. The zero value is a timed transition over
// [DefaultDuration] with linear easing.
type TransitionSpec struct {
	Kind TransitionKind

	// Duration and Curve apply to timed transitions. A zero Duration uses
	// DefaultDuration; a nil Curve is linear.
	Duration time.Duration
	Curve    Curve

	// Spring and Velocity apply to spring transitions. Velocity is the
	// initial velocity in units per second.
	Spring   SpringDescription
	Velocity float64
}

// Driver owns a single scalar value and moves it toward per-call targets.
//
// The value can be written directly with SetValue or driven by AnimateTo.
// At most one transition is active at a time: a new AnimateTo, a direct
// write, or Stop preempts the transition in flight, which then continues
// from the current mid-flight value. Nothing is queued.
//
// Driver is frame-loop confined: ticks arrive via [StepTickers], and all
// methods must be called from the goroutine that steps frames.
type Driver struct {
	value  float64
	target float64

	startValue float64
	spec       TransitionSpec
	spring     *SpringSimulation
	ticker     *Ticker

	listeners      map[int]func(float64)
	nextListenerID int

	// OnComplete fires when a transition reaches its target naturally.
	// Preempted transitions never fire it. The argument is the target the
	// value settled on.
	OnComplete func(target float64)
}

// NewDriver creates a driver holding the given initial value.
func NewDriver(initial float64) *Driver {
	return &Driver{
		value:     initial,
		listeners: make(map[int]func(float64)),
	}
}

// Value returns the current scalar value.
func (d *Driver) Value() float64 { return d.value }

// IsAnimating reports whether a transition is in flight.
func (d *Driver) IsAnimating() bool { return d.ticker != nil }

// SetValue writes the value directly, preempting any in-flight transition.
// Listeners are notified even when the written value is unchanged.
func (d *Driver) SetValue(v float64) {
	d.Stop()
	d.value = v
	d.notify()
}

// Stop halts the in-flight transition, leaving the value where it is.
// The stopped transition's OnComplete does not fire.
func (d *Driver) Stop() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
	d.spring = nil
}

// AnimateTo starts a transition from the current value to target,
// preempting any transition already in flight. There is no no-op guard:
// animating to the current value still runs a full transition.
func (d *Driver) AnimateTo(target float64, spec TransitionSpec) {
	d.Stop()

	d.target = target
	d.startValue = d.value
	d.spec = spec

	switch spec.Kind {
	case TransitionSpring:
		d.spring = NewSpringSimulation(spec.Spring, d.value, spec.Velocity, target)
		lastTime := Now()
		d.ticker = NewTicker(func(time.Duration) {
			now := Now()
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			d.tickSpring(dt)
		})
	default:
		if d.spec.Duration <= 0 {
			d.spec.Duration = DefaultDuration
		}
		d.ticker = NewTicker(d.tickTimed)
	}
	d.ticker.Start()
}

func (d *Driver) tickTimed(elapsed time.Duration) {
	progress := float64(elapsed) / float64(d.spec.Duration)
	if progress >= 1 {
		progress = 1
	}

	eased := progress
	if d.spec.Curve != nil {
		eased = d.spec.Curve(progress)
	}
	d.value = d.startValue + (d.target-d.startValue)*eased
	d.notify()

	if progress >= 1 {
		d.complete()
	}
}

func (d *Driver) tickSpring(dt float64) {
	done := d.spring.Step(dt)
	d.value = d.spring.Position()
	d.notify()

	if done {
		d.complete()
	}
}

func (d *Driver) complete() {
	target := d.target
	d.Stop()
	if d.OnComplete != nil {
		d.OnComplete(target)
	}
}

// AddListener registers a callback invoked with the new value on every
// write. Returns an unsubscribe function.
func (d *Driver) AddListener(fn func(value float64)) func() {
	id := d.nextListenerID
	d.nextListenerID++
	d.listeners[id] = fn
	return func() {
		delete(d.listeners, id)
	}
}

func (d *Driver) notify() {
	// Copy first so a listener can unsubscribe during notification.
	fns := make([]func(float64), 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(d.value)
	}
}

// Dispose stops any transition and drops all listeners.
func (d *Driver) Dispose() {
	d.Stop()
	d.listeners = nil
	d.OnComplete = nil
}
