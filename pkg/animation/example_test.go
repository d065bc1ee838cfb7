package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/graphics"
)

// This example shows how to drive a scalar toward a target.
func ExampleDriver() {
	driver := animation.NewDriver(800)

	// Listen for value changes
	unsubscribe := driver.AddListener(func(value float64) {
		fmt.Printf("Value: %.2f\n", value)
	})
	defer unsubscribe()

	// Ease toward 500 over 300ms. The host steps frames by calling
	// animation.StepTickers() once per frame.
	driver.AnimateTo(500, animation.TransitionSpec{
		Duration: 300 * time.Millisecond,
		Curve:    animation.QuadraticCurve,
	})

	// A later call preempts the first transition from wherever the value
	// currently is.
	driver.AnimateTo(800, animation.TransitionSpec{})

	// Clean up when done
	driver.Dispose()
}

// This example shows how to request a spring transition.
func ExampleDriver_spring() {
	driver := animation.NewDriver(650)

	driver.OnComplete = func(target float64) {
		fmt.Printf("Settled on %.0f\n", target)
	}

	driver.AnimateTo(400, animation.TransitionSpec{
		Kind:     animation.TransitionSpring,
		Spring:   animation.IOSSpring(),
		Velocity: -200, // carried over from a fling
	})

	driver.Dispose()
}

// This example shows how to create a tween for basic interpolation.
func ExampleTween() {
	// Create tweens for different value types
	opacity := animation.TweenFloat64(0.0, 1.0)
	position := animation.TweenOffset(
		graphics.Offset{X: 0, Y: 0},
		graphics.Offset{X: 100, Y: 50},
	)

	// Evaluate at different progress values
	fmt.Printf("Opacity at 0.5: %.1f\n", opacity.Evaluate(0.5))
	fmt.Printf("Position at 1.0: (%.0f, %.0f)\n", position.Evaluate(1.0).X, position.Evaluate(1.0).Y)

	// Output:
	// Opacity at 0.5: 0.5
	// Position at 1.0: (100, 50)
}

// This example shows how to create a custom tween with a Lerp function.
func ExampleTween_customType() {
	type Point struct {
		X, Y float64
	}

	pointTween := &animation.Tween[Point]{
		Begin: Point{0, 0},
		End:   Point{100, 200},
		Lerp: func(a, b Point, t float64) Point {
			return Point{
				X: a.X + (b.X-a.X)*t,
				Y: a.Y + (b.Y-a.Y)*t,
			}
		},
	}

	midpoint := pointTween.Evaluate(0.5)
	fmt.Printf("Midpoint: (%.0f, %.0f)\n", midpoint.X, midpoint.Y)

	// Output:
	// Midpoint: (50, 100)
}

// This example shows how to use spring physics for natural motion.
func ExampleSpringSimulation() {
	// Create a bouncy spring simulation
	spring := animation.BouncySpring()
	sim := animation.NewSpringSimulation(
		spring,
		0,   // current position
		500, // initial velocity (e.g., from a fling gesture)
		300, // target position
	)

	// Step the simulation (typically done each frame)
	dt := 0.016 // ~60fps
	for !sim.IsDone() {
		done := sim.Step(dt)
		_ = sim.Position()
		_ = sim.Velocity()
		if done {
			break
		}
	}

	fmt.Printf("Final position: %.0f\n", sim.Position())

	// Output:
	// Final position: 300
}

// This example shows how to create a custom easing curve.
func ExampleCubicBezier() {
	// Create a custom curve matching CSS cubic-bezier(0.4, 0.0, 0.2, 1.0)
	customEase := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)

	// The curve transforms linear progress to eased progress
	fmt.Printf("Progress 0.0 -> %.2f\n", customEase(0.0))
	fmt.Printf("Progress 0.5 -> %.2f\n", customEase(0.5))
	fmt.Printf("Progress 1.0 -> %.2f\n", customEase(1.0))

	// Output:
	// Progress 0.0 -> 0.00
	// Progress 0.5 -> 0.78
	// Progress 1.0 -> 1.00
}
