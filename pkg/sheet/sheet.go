// Package sheet implements a headless draggable bottom sheet.
//
// A [Sheet] owns a single position scalar: the top offset of the sheet in
// pixels from the top of the screen. The offset rests at the screen height
// when the sheet is closed and at screen height minus sheet height when it
// is fully open. Everything else the package exposes, visibility, backdrop
// opacity, the active flag, derives from that scalar at read time.
//
// The package draws nothing. Hosts read the offset each frame and render
// however they like; see cmd/bottomsheet for a terminal host and an
// offline frame renderer.
//
// # Ownership
//
// At any moment the position is owned by exactly one of three phases:
// at rest (Idle), a pointer gesture (Dragging), or a running transition
// (Settling). A drag start stops the transition in flight and a drag end
// starts exactly one transition, so gesture and animation never drive the
// offset at the same time.
//
// # Threading
//
// A Sheet is confined to the goroutine that pumps frames. Cross-goroutine
// control goes through a [Controller], which marshals commands onto the
// host loop via the platform package.
package sheet

import (
	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/graphics"
)

// visibilityThreshold is the dead zone in pixels below the closed rest
// point. Within it the sheet reports hidden, absorbing float settling
// noise and the parked-offscreen position.
const visibilityThreshold = 10

// ScreenMetrics reports the surface size a sheet is laid out against.
type ScreenMetrics interface {
	ScreenSize() graphics.Size
}

// FixedMetrics is a ScreenMetrics with a constant size.
type FixedMetrics struct {
	Size graphics.Size
}

func (m FixedMetrics) ScreenSize() graphics.Size { return m.Size }

// Phase identifies what currently owns the sheet's position.
type Phase int

const (
	// PhaseIdle means the position is at rest.
	PhaseIdle Phase = iota
	// PhaseDragging means an active pointer gesture owns the position.
	PhaseDragging
	// PhaseSettling means a transition is animating the position.
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Sheet owns the position scalar for one bottom sheet instance.
// Independent instances share no mutable state.
type Sheet struct {
	config       Config
	screenWidth  float64
	screenHeight float64

	driver *animation.Driver
	phase  Phase

	// dragStart is the offset captured when the active gesture began.
	// Valid only while dragging.
	dragStart float64

	controller *Controller
}

// New creates a sheet laid out against the given metrics.
// The sheet starts closed, resting at the screen height.
func New(metrics ScreenMetrics, height float64, opts ...Option) *Sheet {
	cfg := defaultConfig(height)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var screenSize graphics.Size
	if metrics != nil {
		screenSize = metrics.ScreenSize()
	}

	s := &Sheet{
		config:       cfg,
		screenWidth:  screenSize.Width,
		screenHeight: screenSize.Height,
		driver:       animation.NewDriver(screenSize.Height),
	}
	s.driver.OnComplete = s.settled

	if cfg.controller != nil {
		s.controller = cfg.controller
		s.controller.attach(s)
	}
	return s
}

// Offset returns the sheet's current top offset in pixels.
func (s *Sheet) Offset() float64 { return s.driver.Value() }

// Frame returns the rectangle the sheet occupies at its current offset,
// spanning the full screen width. Hosts hit-test pointer positions against
// it to tell sheet presses from backdrop presses.
func (s *Sheet) Frame() graphics.Rect {
	return graphics.RectFromLTWH(0, s.driver.Value(), s.screenWidth, s.config.Height)
}

// OpenOffset returns the offset at which the sheet rests fully open.
func (s *Sheet) OpenOffset() float64 { return s.screenHeight - s.config.Height }

// ClosedOffset returns the offset at which the sheet rests fully closed.
func (s *Sheet) ClosedOffset() float64 { return s.screenHeight }

// Height returns the configured sheet height in pixels.
func (s *Sheet) Height() float64 { return s.config.Height }

// ScreenHeight returns the surface height the sheet was laid out against.
func (s *Sheet) ScreenHeight() float64 { return s.screenHeight }

// Phase returns what currently owns the position.
func (s *Sheet) Phase() Phase { return s.phase }

// Config returns the sheet's configuration.
func (s *Sheet) Config() Config { return s.config }

// Visible reports whether the sheet occupies meaningful screen space.
// It is computed from the current offset on every call, never cached.
func (s *Sheet) Visible() bool {
	return s.driver.Value() <= s.screenHeight-visibilityThreshold
}

// BackdropOpacity maps the current offset linearly onto [0, 1]: 1 at the
// fully open rest point, 0 at the fully closed rest point, clamped outside
// that range. A zero-height sheet reports 0.
func (s *Sheet) BackdropOpacity() float64 {
	open := s.OpenOffset()
	closed := s.ClosedOffset()
	if closed <= open {
		return 0
	}
	t := (closed - s.driver.Value()) / (closed - open)
	return clampFloat(t, 0, 1)
}

// BackdropInteractive reports whether the backdrop should participate in
// hit-testing. Hosts skip pointer handling on a hidden backdrop.
func (s *Sheet) BackdropInteractive() bool {
	return s.Visible()
}

// PressBackdrop forwards a backdrop press to the configured callback.
// The sheet itself never moves on a backdrop press; dismissing from the
// callback is the owner's choice.
func (s *Sheet) PressBackdrop() {
	if s.config.OnPressBackdrop != nil {
		s.config.OnPressBackdrop()
	}
}

// Show animates the sheet to its fully open rest point. There is no guard
// against the sheet already being open or opening: Show always restarts
// the transition from the current offset. An active drag is preempted.
func (s *Sheet) Show() {
	s.settleTo(s.OpenOffset(), 0)
}

// Dismiss animates the sheet to its fully closed rest point. Like Show it
// carries no no-op guard.
func (s *Sheet) Dismiss() {
	s.settleTo(s.ClosedOffset(), 0)
}

// HandleDragStart begins a drag gesture. Any transition in flight stops at
// its current value and the gesture takes ownership of the position.
func (s *Sheet) HandleDragStart() {
	s.driver.Stop()
	s.phase = PhaseDragging
	s.dragStart = s.driver.Value()
}

// HandleDragMove applies the cumulative vertical translation since the
// gesture began. The candidate offset is dropped entirely, not clamped,
// when it would overshoot the fully open rest point; downward movement is
// unbounded, including past the closed rest point. Moves outside an active
// drag are ignored.
func (s *Sheet) HandleDragMove(translation float64) {
	if s.phase != PhaseDragging {
		return
	}
	candidate := s.dragStart + translation
	if candidate < s.OpenOffset() {
		return
	}
	s.driver.SetValue(candidate)
}

// HandleDragEnd releases the gesture and settles the sheet. A release
// below the halfway point of the sheet's height dismisses; any higher
// release opens. When a dismiss velocity is configured, a downward fling
// faster than it dismisses regardless of position. A release with no
// intervening moves applies the same rule to the unmoved offset.
func (s *Sheet) HandleDragEnd(velocity float64) {
	if s.phase != PhaseDragging {
		return
	}
	if s.config.DismissVelocity > 0 && velocity > s.config.DismissVelocity {
		s.settleTo(s.ClosedOffset(), velocity)
		return
	}
	if s.driver.Value() > s.screenHeight-s.config.Height/2 {
		s.settleTo(s.ClosedOffset(), velocity)
		return
	}
	s.settleTo(s.OpenOffset(), velocity)
}

// AddPositionListener registers a callback invoked with the offset after
// every position change. The returned function unsubscribes it.
func (s *Sheet) AddPositionListener(listener func(offset float64)) func() {
	if listener == nil {
		return func() {}
	}
	return s.driver.AddListener(listener)
}

// Dispose stops any transition, drops all listeners, and detaches the
// controller. The sheet must not be used afterwards.
func (s *Sheet) Dispose() {
	if s.controller != nil {
		s.controller.detach(s)
		s.controller = nil
	}
	s.driver.Dispose()
}

// settleTo starts the configured transition toward target, preempting any
// transition or drag that owns the position.
func (s *Sheet) settleTo(target, velocity float64) {
	spec := s.config.Transition
	if spec.Kind == animation.TransitionSpring {
		spec.Velocity = velocity
	}
	s.phase = PhaseSettling
	s.driver.AnimateTo(target, spec)
}

// settled runs when a transition completes naturally.
func (s *Sheet) settled(target float64) {
	s.phase = PhaseIdle
	if s.config.OnSettle != nil {
		s.config.OnSettle(target == s.OpenOffset())
	}
}

// clampFloat constrains v to the range [min, max].
func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
