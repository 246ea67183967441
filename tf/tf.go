// Package tf implements transfer function algebra for single-input
// single-output linear time-invariant systems.
package tf

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/milosgajdos/go-control/poly"
)

// DefaultMinrealTol is the absolute complex-plane distance within which a
// pole-zero pair is considered identical and cancelled by Minreal.
// It sits well above float64 eigensolver noise and well below any
// genuinely distinct pole-zero spacing a sane design produces.
const DefaultMinrealTol = 1e-8

// TF is a transfer function: a ratio of two polynomials in the Laplace
// variable, stored as coefficient slices ordered from the highest degree
// term down to the constant term.
//
// TF is immutable: accessors return copies and algebraic operations
// return new values.
type TF struct {
	num []float64
	den []float64
}

// New creates a new transfer function from numerator and denominator
// coefficients and returns it.
// It returns error if the denominator is empty or identically zero.
func New(num, den []float64) (*TF, error) {
	d := poly.Trim(den)
	if len(d) == 0 {
		return nil, fmt.Errorf("transfer function denominator must be a nonzero polynomial")
	}

	n := poly.Trim(num)
	if len(n) == 0 {
		n = []float64{0}
	}

	return &TF{num: n, den: d}, nil
}

// NewGain creates a static gain transfer function k/1 and returns it.
func NewGain(k float64) *TF {
	return &TF{num: []float64{k}, den: []float64{1}}
}

// Num returns a copy of the numerator coefficients.
func (t *TF) Num() []float64 {
	out := make([]float64, len(t.num))
	copy(out, t.num)

	return out
}

// Den returns a copy of the denominator coefficients.
func (t *TF) Den() []float64 {
	out := make([]float64, len(t.den))
	copy(out, t.den)

	return out
}

// Poles returns the roots of the denominator polynomial.
func (t *TF) Poles() ([]complex128, error) {
	return poly.Roots(t.den)
}

// Zeros returns the roots of the numerator polynomial.
// A static gain has no zeros.
func (t *TF) Zeros() ([]complex128, error) {
	if poly.Degree(t.num) < 1 {
		return []complex128{}, nil
	}
	return poly.Roots(t.num)
}

// Eval returns the transfer function value at point s of the complex plane.
func (t *TF) Eval(s complex128) complex128 {
	return poly.Eval(t.num, s) / poly.Eval(t.den, s)
}

// DCGain returns the steady-state gain of the system.
// Systems with a pole at the origin have infinite DC gain.
func (t *TF) DCGain() float64 {
	return real(t.Eval(0))
}

// Mul returns the series connection t*b of two transfer functions.
func (t *TF) Mul(b *TF) (*TF, error) {
	return New(poly.Mul(t.num, b.num), poly.Mul(t.den, b.den))
}

// Add returns the parallel connection t+b of two transfer functions.
func (t *TF) Add(b *TF) (*TF, error) {
	num := poly.Add(poly.Mul(t.num, b.den), poly.Mul(b.num, t.den))
	return New(num, poly.Mul(t.den, b.den))
}

// Inverse returns the reciprocal transfer function.
// It returns error if the numerator is identically zero.
func (t *TF) Inverse() (*TF, error) {
	if len(t.num) == 1 && t.num[0] == 0 {
		return nil, fmt.Errorf("cannot invert transfer function with zero numerator")
	}
	return New(t.den, t.num)
}

// Div returns the quotient t/b of two transfer functions.
func (t *TF) Div(b *TF) (*TF, error) {
	inv, err := b.Inverse()
	if err != nil {
		return nil, err
	}
	return t.Mul(inv)
}

// Scale returns the transfer function multiplied by scalar gain k.
func (t *TF) Scale(k float64) *TF {
	out, _ := New(poly.Scale(k, t.num), t.den)
	return out
}

// Feedback closes a feedback loop around plant g with proportional gain k:
//
//	forward = k*g
//	closed  = forward / (1 - sign*forward)
//
// sign -1 selects negative feedback, yielding the conventional
// forward/(1+forward), sign +1 selects positive feedback. Which polarity
// stabilizes a given loop is a per-design choice; with a negative-gain
// plant the stabilizing polarity is carried by the sign of k.
func Feedback(g *TF, k float64, sign int) (*TF, error) {
	if sign != 1 && sign != -1 {
		return nil, fmt.Errorf("feedback sign must be +1 or -1, got %d", sign)
	}

	fwd := poly.Scale(k, g.num)
	den := poly.Sub(g.den, poly.Scale(float64(sign), fwd))

	return New(fwd, den)
}

// Minreal returns the minimal realization of the transfer function:
// every pole-zero pair closer than tol in the complex plane is cancelled.
// When tol is omitted DefaultMinrealTol is used.
func (t *TF) Minreal(tol ...float64) (*TF, error) {
	eps := DefaultMinrealTol
	if len(tol) > 0 {
		eps = tol[0]
	}

	zeros, err := t.Zeros()
	if err != nil {
		return nil, err
	}
	poles, err := t.Poles()
	if err != nil {
		return nil, err
	}

	keptPoles := append([]complex128{}, poles...)
	keptZeros := make([]complex128, 0, len(zeros))

	for _, z := range zeros {
		matched := -1
		best := eps
		for i, p := range keptPoles {
			if d := cmplx.Abs(z - p); d <= best {
				matched, best = i, d
			}
		}
		if matched >= 0 {
			keptPoles = append(keptPoles[:matched], keptPoles[matched+1:]...)
			continue
		}
		keptZeros = append(keptZeros, z)
	}

	// leading coefficients survive cancellation untouched
	num := poly.Scale(t.num[0], poly.FromRoots(keptZeros))
	den := poly.Scale(t.den[0], poly.FromRoots(keptPoles))

	return New(num, den)
}

// String returns the transfer function in human readable form.
func (t *TF) String() string {
	return fmt.Sprintf("(%s) / (%s)", formatPoly(t.num), formatPoly(t.den))
}

func formatPoly(c []float64) string {
	var b strings.Builder
	deg := len(c) - 1
	first := true
	for i, v := range c {
		if v == 0 && deg > 0 {
			continue
		}
		if !first {
			if v >= 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
				v = -v
			}
		}
		switch d := deg - i; {
		case d == 0:
			fmt.Fprintf(&b, "%g", v)
		case d == 1:
			fmt.Fprintf(&b, "%g s", v)
		default:
			fmt.Fprintf(&b, "%g s^%d", v, d)
		}
		first = false
	}
	if first {
		return "0"
	}
	return b.String()
}
