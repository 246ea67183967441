package control

import "gonum.org/v1/gonum/mat"

// System is a linear time-invariant system described by its poles and zeros.
type System interface {
	// Poles returns roots of the system characteristic polynomial
	Poles() ([]complex128, error)
	// Zeros returns roots of the system numerator polynomial
	Zeros() ([]complex128, error)
}

// Evaluator evaluates system frequency response at a point of the complex plane
type Evaluator interface {
	// Eval returns the system response at s
	Eval(s complex128) complex128
}

// Propagator propagates internal state of the system to the next step
type Propagator interface {
	// Propagate propagates internal state of the system to the next step
	Propagate(x mat.Vector, u float64) (mat.Vector, error)
}

// Observer observes external state (output) of the system
type Observer interface {
	// Observe observes external state of the system
	Observe(x mat.Vector, u float64) (float64, error)
}

// DiscreteSystem is a discrete-time dynamical system driven by
// static propagation and observation dynamics matrices
type DiscreteSystem interface {
	// Propagator is system propagator
	Propagator
	// Observer is system observer
	Observer
	// SystemMatrix returns state propagation matrix
	SystemMatrix() mat.Matrix
	// ControlMatrix returns state propagation control matrix
	ControlMatrix() mat.Matrix
	// OutputMatrix returns observation matrix
	OutputMatrix() mat.Matrix
	// FeedForwardMatrix returns observation control matrix
	FeedForwardMatrix() mat.Matrix
}
