// Package bicycle derives the linearized dynamics of a rider-less
// bicycle and assembles a cascaded two loop steering controller:
// an inner loop on the roll angle and an outer loop on the heading.
//
// The model follows the classic rear wheel steering analysis: the
// roll dynamics are an inverted pendulum forced by steering, so the
// open loop plant is unstable, and the steer to heading dynamics carry
// a right half plane zero which makes countersteering unavoidable.
package bicycle

import (
	"fmt"

	"github.com/milosgajdos/go-control/tf"
)

// Design gains for the cascaded loops. The roll gain is negative:
// the steer to roll plant has negative gain, so the stabilizing
// polarity of the inner loop is positive feedback, carried here by the
// sign of the gain. Flipping either sign destabilizes its loop.
const (
	// DefaultRollGain closes the inner roll loop
	DefaultRollGain = -2.5
	// DefaultHeadingGain closes the outer heading loop
	DefaultHeadingGain = 0.25
)

// Params holds the physical constants of the bicycle.
type Params struct {
	// M is total mass in kg
	M float64 `yaml:"mass"`
	// H is height of the center of mass in m
	H float64 `yaml:"height"`
	// A is horizontal distance from the rear contact point to the
	// projection of the center of mass in m
	A float64 `yaml:"rear_to_com"`
	// B is wheelbase in m
	B float64 `yaml:"wheelbase"`
	// V is forward speed in m/s
	V float64 `yaml:"speed"`
	// G is gravitational acceleration in m/s^2
	G float64 `yaml:"gravity"`
	// J is moment of inertia about the roll axis through the center
	// of mass in kg m^2
	J float64 `yaml:"inertia"`
}

// DefaultParams returns the physical constants of the benchmark
// bicycle used throughout the package documentation and tests.
func DefaultParams() Params {
	return Params{
		M: 87.0,
		H: 1.0,
		A: 0.5,
		B: 1.0,
		V: 5.0,
		G: 9.81,
		J: 3.28,
	}
}

// Validate checks that the physical constants describe a bicycle.
func (p Params) Validate() error {
	if p.B <= 0 {
		return fmt.Errorf("wheelbase must be positive, got %v", p.B)
	}
	if p.M <= 0 {
		return fmt.Errorf("mass must be positive, got %v", p.M)
	}
	if p.H <= 0 {
		return fmt.Errorf("center of mass height must be positive, got %v", p.H)
	}
	if p.V <= 0 {
		return fmt.Errorf("speed must be positive, got %v", p.V)
	}
	if p.G <= 0 {
		return fmt.Errorf("gravity must be positive, got %v", p.G)
	}
	if p.J < 0 {
		return fmt.Errorf("inertia must not be negative, got %v", p.J)
	}

	return nil
}

// RollPlant returns the steer angle to roll angle transfer function,
// linearized for small angles:
//
//	phi(s)/delta(s) = -(M*H*V/B)*(A*s + V) / ((J + M*H^2)*s^2 - M*G*H)
//
// The denominator is the inverted pendulum characteristic polynomial,
// so the plant has one unstable pole. The negative sign reflects the
// roll reaction: steering right makes the bicycle fall to the left.
func (p Params) RollPlant() (*tf.TF, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	k := p.M * p.H * p.V / p.B
	num := []float64{-k * p.A, -k * p.V}
	den := []float64{p.J + p.M*p.H*p.H, 0, -p.M * p.G * p.H}

	return tf.New(num, den)
}

// HeadingIntegrator returns the steer angle to heading transfer
// function V/(B*s): at constant speed the heading rate is proportional
// to the steer angle.
func (p Params) HeadingIntegrator() (*tf.TF, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return tf.New([]float64{p.V / p.B}, []float64{1, 0})
}

// InnerLoop closes the roll loop around the roll plant with
// proportional gain kRoll and returns the roll reference to roll angle
// transfer function.
func (p Params) InnerLoop(kRoll float64) (*tf.TF, error) {
	plant, err := p.RollPlant()
	if err != nil {
		return nil, err
	}

	return tf.Feedback(plant, kRoll, -1)
}

// HeadingPlant returns the roll reference to heading transfer function
// seen by the outer loop: the closed inner loop, chained through the
// inverse roll plant to recover the steer angle, chained through the
// heading integrator, reduced to a minimal realization.
//
// The result keeps the integrator pole at the origin and one right
// half plane zero inherited from the roll reaction, which is the
// countersteering requirement: the response to a heading command
// starts in the wrong direction.
func (p Params) HeadingPlant(kRoll float64) (*tf.TF, error) {
	inner, err := p.InnerLoop(kRoll)
	if err != nil {
		return nil, err
	}

	plant, err := p.RollPlant()
	if err != nil {
		return nil, err
	}

	steer, err := inner.Div(plant)
	if err != nil {
		return nil, err
	}

	heading, err := p.HeadingIntegrator()
	if err != nil {
		return nil, err
	}

	full, err := steer.Mul(heading)
	if err != nil {
		return nil, err
	}

	return full.Minreal()
}

// OuterLoop closes the heading loop around the heading plant with
// proportional gain kHead and returns the heading reference to heading
// transfer function of the complete cascade.
func (p Params) OuterLoop(kRoll, kHead float64) (*tf.TF, error) {
	plant, err := p.HeadingPlant(kRoll)
	if err != nil {
		return nil, err
	}

	return tf.Feedback(plant, kHead, -1)
}
