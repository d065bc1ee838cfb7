package sheet

import (
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/graphics"
)

// Style describes the visual container of a sheet or backdrop.
// Styles are consumed by hosts when rendering; the position state machine
// never reads them.
type Style struct {
	Color        graphics.Color
	CornerRadius float64
}

// DefaultStyle returns the standard sheet container style.
func DefaultStyle() Style {
	return Style{
		Color:        graphics.ColorWhite,
		CornerRadius: 16,
	}
}

// DefaultBackdropColor is the scrim color drawn behind a fully open sheet.
var DefaultBackdropColor = graphics.RGBA(0, 0, 0, 0.5)

// Config holds a sheet's configuration. It is fixed at construction time:
// a transition reads the config when it starts, never retroactively.
type Config struct {
	// Height is the sheet height in pixels. A zero height degenerates to a
	// sheet whose open and closed rest points coincide; it is not rejected.
	Height float64

	// Transition is used by Show, Dismiss, and release settling.
	// For spring transitions the release velocity is carried into the
	// simulation; the configured Velocity field is ignored.
	Transition animation.TransitionSpec

	// BackdropColor is the scrim color at full opacity. Hosts scale its
	// alpha by BackdropOpacity each frame.
	BackdropColor graphics.Color
	// SheetStyle styles the sheet container.
	SheetStyle Style
	// BackdropStyle styles the backdrop container.
	BackdropStyle Style

	// OnPressBackdrop is forwarded verbatim by PressBackdrop.
	// The sheet performs no position change of its own on backdrop press.
	OnPressBackdrop func()

	// OnSettle fires when a transition completes naturally, with open
	// reporting which rest point was reached. Preempted transitions never
	// fire it. Nil disables the notification.
	OnSettle func(open bool)

	// DismissVelocity dismisses the sheet on release when the downward
	// velocity exceeds it, regardless of position. Zero disables fling
	// dismissal and the release decision is by position alone.
	DismissVelocity float64

	controller *Controller
}

// defaultConfig returns the configuration used when no options are given:
// a timed transition over 300 ms with quadratic easing.
func defaultConfig(height float64) Config {
	return Config{
		Height: height,
		Transition: animation.TransitionSpec{
			Kind:     animation.TransitionTimed,
			Duration: animation.DefaultDuration,
			Curve:    animation.QuadraticCurve,
		},
		BackdropColor: DefaultBackdropColor,
		SheetStyle:    DefaultStyle(),
	}
}

// Option customizes a sheet at construction time.
type Option func(*Config)

// WithSpring selects a spring transition with the given description.
// Release velocity is fed into the simulation as its initial velocity.
func WithSpring(desc animation.SpringDescription) Option {
	return func(c *Config) {
		c.Transition = animation.TransitionSpec{
			Kind:   animation.TransitionSpring,
			Spring: desc,
		}
	}
}

// WithTiming selects a timed transition with the given duration and curve.
// A zero duration uses the default 300 ms; a nil curve is linear.
func WithTiming(duration time.Duration, curve animation.Curve) Option {
	return func(c *Config) {
		c.Transition = animation.TransitionSpec{
			Kind:     animation.TransitionTimed,
			Duration: duration,
			Curve:    curve,
		}
	}
}

// WithBackdropColor sets the scrim color drawn at full opacity.
func WithBackdropColor(color graphics.Color) Option {
	return func(c *Config) {
		c.BackdropColor = color
	}
}

// WithStyle sets the sheet container style.
func WithStyle(style Style) Option {
	return func(c *Config) {
		c.SheetStyle = style
	}
}

// WithBackdropStyle sets the backdrop container style.
func WithBackdropStyle(style Style) Option {
	return func(c *Config) {
		c.BackdropStyle = style
	}
}

// WithBackdropPress registers the callback forwarded by PressBackdrop.
func WithBackdropPress(fn func()) Option {
	return func(c *Config) {
		c.OnPressBackdrop = fn
	}
}

// WithSettleCallback registers a callback fired when a show, dismiss, or
// release transition completes naturally. Preempted transitions do not
// fire it.
func WithSettleCallback(fn func(open bool)) Option {
	return func(c *Config) {
		c.OnSettle = fn
	}
}

// WithDismissVelocity enables fling dismissal: a release whose downward
// velocity exceeds v px/s dismisses the sheet regardless of position.
func WithDismissVelocity(v float64) Option {
	return func(c *Config) {
		c.DismissVelocity = v
	}
}

// WithController attaches an imperative controller to the sheet.
// Commands issued on the controller before construction are replayed
// during New.
func WithController(ctrl *Controller) Option {
	return func(c *Config) {
		c.controller = ctrl
	}
}
