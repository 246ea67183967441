// Package ss provides state space realizations of transfer functions
// for single-input single-output systems.
package ss

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-control/poly"
	"github.com/milosgajdos/go-control/tf"
)

// System is a linear continuous-time model of a plant using
// traditional matrices of modern control theory.
//
//	dx/dt = A*x + B*u
//	y = C*x + D*u
type System struct {
	// System/State matrix A
	A *mat.Dense
	// Control/Input Matrix B
	B *mat.Dense
	// Observation/Output Matrix C
	C *mat.Dense
	// Feedthrough matrix D
	D *mat.Dense
}

// NewFromTF creates a state space realization of transfer function t
// in controllable canonical form and returns it.
// It returns error if the transfer function is improper, i.e. its
// numerator degree exceeds its denominator degree.
func NewFromTF(t *tf.TF) (*System, error) {
	den := t.Den()
	num := t.Num()

	n := poly.Degree(den)
	if poly.Degree(num) > n {
		return nil, fmt.Errorf("improper transfer function has no state space realization: %v", t)
	}

	// normalize to a monic denominator
	a := make([]float64, n+1)
	for i, v := range den {
		a[i] = v / den[0]
	}
	// pad numerator to denominator length
	b := make([]float64, n+1)
	for i, v := range num {
		b[n+1-len(num)+i] = v / den[0]
	}

	if n == 0 {
		// static gain
		return &System{
			A: mat.NewDense(1, 1, nil),
			B: mat.NewDense(1, 1, nil),
			C: mat.NewDense(1, 1, nil),
			D: mat.NewDense(1, 1, []float64{b[0]}),
		}, nil
	}

	A := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		A.Set(i, i+1, 1.0)
	}
	for j := 0; j < n; j++ {
		A.Set(n-1, j, -a[n-j])
	}

	B := mat.NewDense(n, 1, nil)
	B.Set(n-1, 0, 1.0)

	C := mat.NewDense(1, n, nil)
	for j := 0; j < n; j++ {
		C.Set(0, j, b[n-j]-b[0]*a[n-j])
	}

	D := mat.NewDense(1, 1, []float64{b[0]})

	return &System{A: A, B: B, C: C, D: D}, nil
}

// Order returns the state dimension of the system.
func (s *System) Order() int {
	n, _ := s.A.Dims()
	return n
}

// ToDiscrete creates a discrete-time model from the continuous-time model
// using Ts as the sampling time, assuming the input is held constant over
// each sampling interval.
//
// See Discrete-Time Control Systems by Katsuhiko Ogata
// Eq. (5-73) and (5-74), Second Edition.
func (s *System) ToDiscrete(Ts float64) (*Discrete, error) {
	if Ts <= 0 {
		return nil, fmt.Errorf("sampling time must be positive, got %v", Ts)
	}

	n := s.Order()

	Ad := mat.NewDense(n, n, nil)
	Ad.Scale(Ts, s.A)
	Ad.Exp(Ad)

	Bd := mat.NewDense(n, 1, nil)
	Aaux := mat.NewDense(n, n, nil)
	// Given A is not singular the following is valid
	// Bd(Ts) = (exp(A*Ts) - I)*inv(A)*B
	eye, _ := matrix.NewDenseValIdentity(n, 1.0)

	Aaux.Sub(Ad, eye)
	Ainv := mat.NewDense(n, n, nil)
	err := Ainv.Inverse(s.A)
	if err == nil {
		Aaux.Mul(Aaux, Ainv)
		Bd.Mul(Aaux, s.B)
		return &Discrete{System{A: Ad, B: Bd, C: mat.DenseCopyOf(s.C), D: mat.DenseCopyOf(s.D)}}, nil
	}

	Asum := Ainv
	Asum.Scale(0, Asum)
	// if A matrix is singular we integrate the closed form
	// from 0 to Ts using the trapezoidal rule
	// Bd = integrate( exp(A*t)dt, 0, Ts ) * B
	const steps = 100
	dt := Ts / float64(steps-1)
	for i := 0; i < steps; i++ {
		Aaux.Scale(dt*float64(i), s.A)
		Aaux.Exp(Aaux)
		w := dt
		if i == 0 || i == steps-1 {
			w = dt / 2
		}
		Aaux.Scale(w, Aaux)
		Asum.Add(Asum, Aaux)
	}
	Bd.Mul(Asum, s.B)

	return &Discrete{System{A: Ad, B: Bd, C: mat.DenseCopyOf(s.C), D: mat.DenseCopyOf(s.D)}}, nil
}

// Discrete is a linear discrete-time model of a plant.
//
//	x[n+1] = A*x[n] + B*u[n]
//	y[n] = C*x[n] + D*u[n]
type Discrete struct {
	System
}

// Propagate returns the next internal state x of the discrete-time
// system given a scalar input u.
func (d *Discrete) Propagate(x mat.Vector, u float64) (mat.Vector, error) {
	n := d.Order()
	if x.Len() != n {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := new(mat.Dense)
	out.Mul(d.A, x)

	outU := new(mat.Dense)
	outU.Scale(u, d.B)
	out.Add(out, outU)

	return out.ColView(0), nil
}

// Observe returns the scalar output of the discrete-time system given
// internal state x and scalar input u.
func (d *Discrete) Observe(x mat.Vector, u float64) (float64, error) {
	n := d.Order()
	if x.Len() != n {
		return 0, fmt.Errorf("invalid state vector")
	}

	out := new(mat.Dense)
	out.Mul(d.C, x)

	return out.At(0, 0) + d.D.At(0, 0)*u, nil
}

// SystemMatrix returns state propagation matrix `A`.
func (s *System) SystemMatrix() mat.Matrix { return s.A }

// ControlMatrix returns state propagation control matrix `B`.
func (s *System) ControlMatrix() mat.Matrix { return s.B }

// OutputMatrix returns observation matrix `C`.
func (s *System) OutputMatrix() mat.Matrix { return s.C }

// FeedForwardMatrix returns observation control matrix `D`.
func (s *System) FeedForwardMatrix() mat.Matrix { return s.D }
