// Package sim computes time domain responses of transfer functions.
package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-control/ss"
	"github.com/milosgajdos/go-control/tf"
)

// Response is the simulated output of a system over a time grid.
type Response struct {
	// Time is the simulation time grid
	Time []float64
	// Output is the system output at each time point
	Output []float64
	// State is the final internal state of the realization
	State mat.Vector
}

// Lsim simulates the forced response of system sys to input u over time
// grid t and returns it.
//
// The time grid must be strictly increasing but does not have to be
// uniform. The input is held constant over each grid interval.
//
// It returns error if the input and time lengths differ, the grid has
// fewer than two points or is not strictly increasing, or the system
// has no state space realization.
func Lsim(sys *tf.TF, t, u []float64) (*Response, error) {
	if len(u) != len(t) {
		return nil, fmt.Errorf("input length %d does not match time grid length %d", len(u), len(t))
	}
	if len(t) < 2 {
		return nil, fmt.Errorf("time grid must contain at least 2 points, got %d", len(t))
	}

	cont, err := ss.NewFromTF(sys)
	if err != nil {
		return nil, err
	}

	// discretizations cached per unique interval length
	disc := map[float64]*ss.Discrete{}

	x := mat.Vector(mat.NewVecDense(cont.Order(), nil))
	y := make([]float64, len(t))

	y[0] = observe(cont, x, u[0])

	for k := 1; k < len(t); k++ {
		dt := t[k] - t[k-1]
		if dt <= 0 {
			return nil, fmt.Errorf("time grid must be strictly increasing: t[%d]=%v, t[%d]=%v", k-1, t[k-1], k, t[k])
		}

		d, ok := disc[dt]
		if !ok {
			d, err = cont.ToDiscrete(dt)
			if err != nil {
				return nil, err
			}
			disc[dt] = d
		}

		x, err = d.Propagate(x, u[k-1])
		if err != nil {
			return nil, err
		}

		y[k], err = d.Observe(x, u[k])
		if err != nil {
			return nil, err
		}
	}

	out := make([]float64, len(t))
	copy(out, t)

	return &Response{Time: out, Output: y, State: x}, nil
}

// Step simulates the unit step response of system sys over time grid t
// and returns it.
func Step(sys *tf.TF, t []float64) (*Response, error) {
	u := make([]float64, len(t))
	for i := range u {
		u[i] = 1.0
	}

	return Lsim(sys, t, u)
}

// Grid returns n evenly spaced time points from 0 to end inclusive.
// A single point grid holds only the start time; n < 1 yields nil.
func Grid(end float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = end * float64(i) / float64(n-1)
	}

	return t
}

func observe(cont *ss.System, x mat.Vector, u float64) float64 {
	out := new(mat.Dense)
	out.Mul(cont.C, x)

	return out.At(0, 0) + cont.D.At(0, 0)*u
}
