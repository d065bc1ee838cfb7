package animation

import "math"

// SpringDescription defines the physical constants of a damped spring.
// A damping ratio of 1 (Damping = 2*sqrt(Stiffness*Mass)) is critically
// damped; lower ratios overshoot.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// IOSSpring returns a critically damped spring approximating the feel of
// iOS sheet presentation: fast approach, no overshoot.
func IOSSpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 380, Damping: 39}
}

// BouncySpring returns an underdamped spring with visible overshoot.
func BouncySpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 300, Damping: 20}
}

const (
	// A simulation is at rest when both displacement and speed are inside
	// these tolerances.
	restDisplacementTolerance = 0.1
	restVelocityTolerance     = 1.0

	// maxSpringStep bounds one integration step in seconds. Larger frame
	// deltas are subdivided to keep the integration stable.
	maxSpringStep = 0.004
)

// SpringSimulation integrates a damped spring toward a target position.
//
// Positions and velocities are in the caller's units (the kit uses logical
// pixels and pixels per second). Once the simulation settles, Position
// reports the target exactly.
type SpringSimulation struct {
	desc     SpringDescription
	position float64
	velocity float64
	target   float64
	done     bool
}

// NewSpringSimulation creates a simulation starting at position with the
// given initial velocity, converging on target.
func NewSpringSimulation(desc SpringDescription, position, velocity, target float64) *SpringSimulation {
	if desc.Mass <= 0 {
		desc.Mass = 1
	}
	s := &SpringSimulation{
		desc:     desc,
		position: position,
		velocity: velocity,
		target:   target,
	}
	if s.atRest() {
		s.settle()
	}
	return s
}

// Step advances the simulation by dt seconds and reports whether it has
// settled. Steps after settling are no-ops that report true.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	for dt > 0 {
		h := math.Min(dt, maxSpringStep)
		dt -= h

		force := -s.desc.Stiffness*(s.position-s.target) - s.desc.Damping*s.velocity
		s.velocity += force / s.desc.Mass * h
		s.position += s.velocity * h

		if s.atRest() {
			s.settle()
			return true
		}
	}
	return false
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// IsDone reports whether the simulation has settled on the target.
func (s *SpringSimulation) IsDone() bool { return s.done }

func (s *SpringSimulation) atRest() bool {
	return math.Abs(s.position-s.target) < restDisplacementTolerance &&
		math.Abs(s.velocity) < restVelocityTolerance
}

func (s *SpringSimulation) settle() {
	s.position = s.target
	s.velocity = 0
	s.done = true
}
