package tf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	control "github.com/milosgajdos/go-control"
)

var (
	_ control.System    = (*TF)(nil)
	_ control.Evaluator = (*TF)(nil)
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	sys, err := New([]float64{1, 2}, []float64{1, 3, 2})
	assert.NoError(err)
	assert.NotNil(sys)
	assert.Equal([]float64{1, 2}, sys.Num())
	assert.Equal([]float64{1, 3, 2}, sys.Den())

	// leading zeros are trimmed
	sys, err = New([]float64{0, 1}, []float64{0, 0, 1, 1})
	assert.NoError(err)
	assert.Equal([]float64{1}, sys.Num())
	assert.Equal([]float64{1, 1}, sys.Den())

	// zero denominator
	sys, err = New([]float64{1}, []float64{0, 0})
	assert.Nil(sys)
	assert.Error(err)

	// empty denominator
	sys, err = New([]float64{1}, nil)
	assert.Nil(sys)
	assert.Error(err)

	// zero numerator collapses to 0
	sys, err = New(nil, []float64{1, 1})
	assert.NoError(err)
	assert.Equal([]float64{0}, sys.Num())
}

func TestImmutability(t *testing.T) {
	assert := assert.New(t)

	sys, err := New([]float64{1, 2}, []float64{1, 3})
	assert.NoError(err)

	n := sys.Num()
	n[0] = 99
	assert.Equal([]float64{1, 2}, sys.Num())

	d := sys.Den()
	d[0] = 99
	assert.Equal([]float64{1, 3}, sys.Den())
}

func TestPolesZeros(t *testing.T) {
	assert := assert.New(t)

	// (s + 2) / (s + 1)(s + 3)
	sys, err := New([]float64{1, 2}, []float64{1, 4, 3})
	assert.NoError(err)

	p, err := sys.Poles()
	assert.NoError(err)
	assert.Len(p, 2)
	assert.InDelta(-3.0, real(p[0]), 1e-8)
	assert.InDelta(-1.0, real(p[1]), 1e-8)

	z, err := sys.Zeros()
	assert.NoError(err)
	assert.Len(z, 1)
	assert.InDelta(-2.0, real(z[0]), 1e-12)

	// static gain has no zeros
	z, err = NewGain(3.5).Zeros()
	assert.NoError(err)
	assert.Empty(z)
}

func TestEvalDCGain(t *testing.T) {
	assert := assert.New(t)

	// 10 / (s + 2): DC gain 5
	sys, err := New([]float64{10}, []float64{1, 2})
	assert.NoError(err)
	assert.InDelta(5.0, sys.DCGain(), 1e-14)
	assert.InDelta(10.0/3.0, real(sys.Eval(1)), 1e-14)

	// integrator: infinite DC gain
	sys, err = New([]float64{1}, []float64{1, 0})
	assert.NoError(err)
	assert.True(math.IsInf(sys.DCGain(), 0))
}

func TestAlgebra(t *testing.T) {
	assert := assert.New(t)

	a, err := New([]float64{1}, []float64{1, 1})
	assert.NoError(err)
	b, err := New([]float64{2}, []float64{1, 3})
	assert.NoError(err)

	// 1/(s+1) * 2/(s+3) = 2/(s^2+4s+3)
	m, err := a.Mul(b)
	assert.NoError(err)
	assert.Equal([]float64{2}, m.Num())
	assert.Equal([]float64{1, 4, 3}, m.Den())

	// 1/(s+1) + 2/(s+3) = (3s+5)/(s^2+4s+3)
	s, err := a.Add(b)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{3, 5}, s.Num(), 1e-14)
	assert.InDeltaSlice([]float64{1, 4, 3}, s.Den(), 1e-14)

	// 1/(s+1) / (2/(s+3)) = (s+3)/(2s+2)
	d, err := a.Div(b)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{1, 3}, d.Num(), 1e-14)
	assert.InDeltaSlice([]float64{2, 2}, d.Den(), 1e-14)

	// division by a zero system
	zero, err := New([]float64{0}, []float64{1})
	assert.NoError(err)
	d, err = a.Div(zero)
	assert.Nil(d)
	assert.Error(err)

	// scale
	assert.Equal([]float64{-2.5}, a.Scale(-2.5).Num())
	assert.Equal([]float64{1, 1}, a.Scale(-2.5).Den())
}

func TestInverse(t *testing.T) {
	assert := assert.New(t)

	sys, err := New([]float64{2, 1}, []float64{1, 0, 4})
	assert.NoError(err)

	inv, err := sys.Inverse()
	assert.NoError(err)
	assert.Equal([]float64{1, 0, 4}, inv.Num())
	assert.Equal([]float64{2, 1}, inv.Den())

	zero, err := New([]float64{0}, []float64{1, 1})
	assert.NoError(err)
	inv, err = zero.Inverse()
	assert.Nil(inv)
	assert.Error(err)
}

func TestFeedback(t *testing.T) {
	assert := assert.New(t)

	// g = 1/(s+1), negative feedback with k=2: 2/(s+3)
	g, err := New([]float64{1}, []float64{1, 1})
	assert.NoError(err)

	cl, err := Feedback(g, 2.0, -1)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{2}, cl.Num(), 1e-14)
	assert.InDeltaSlice([]float64{1, 3}, cl.Den(), 1e-14)

	// positive feedback with k=2: 2/(s-1)
	cl, err = Feedback(g, 2.0, 1)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{2}, cl.Num(), 1e-14)
	assert.InDeltaSlice([]float64{1, -1}, cl.Den(), 1e-14)

	// invalid sign
	cl, err = Feedback(g, 2.0, 0)
	assert.Nil(cl)
	assert.Error(err)
}

func TestMinreal(t *testing.T) {
	assert := assert.New(t)

	// (s+1)(s+2) / (s+1)(s+3) -> (s+2)/(s+3)
	sys, err := New([]float64{1, 3, 2}, []float64{1, 4, 3})
	assert.NoError(err)

	min, err := sys.Minreal()
	assert.NoError(err)
	assert.InDeltaSlice([]float64{1, 2}, min.Num(), 1e-8)
	assert.InDeltaSlice([]float64{1, 3}, min.Den(), 1e-8)

	// nothing to cancel
	sys, err = New([]float64{1, 5}, []float64{1, 4, 3})
	assert.NoError(err)
	min, err = sys.Minreal()
	assert.NoError(err)
	assert.InDeltaSlice([]float64{1, 5}, min.Num(), 1e-8)
	assert.InDeltaSlice([]float64{1, 4, 3}, min.Den(), 1e-8)

	// non-monic leading coefficients survive cancellation
	// 2(s+1)/(4(s+1)(s+2)) -> 2/(4s+8)
	sys, err = New([]float64{2, 2}, []float64{4, 12, 8})
	assert.NoError(err)
	min, err = sys.Minreal()
	assert.NoError(err)
	assert.InDeltaSlice([]float64{2}, min.Num(), 1e-8)
	assert.InDeltaSlice([]float64{4, 8}, min.Den(), 1e-8)

	// close-but-distinct pair survives the default tolerance
	// but cancels under an explicit loose one
	sys, err = New([]float64{1, 1}, []float64{1, 3.0001, 2.0002})
	assert.NoError(err)
	min, err = sys.Minreal()
	assert.NoError(err)
	assert.Len(min.Den(), 3)

	min, err = sys.Minreal(1e-3)
	assert.NoError(err)
	assert.Len(min.Den(), 2)
	assert.InDeltaSlice([]float64{1}, min.Num(), 1e-8)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	sys, err := New([]float64{-217.5, -2175}, []float64{90.28, 0, -853.5})
	assert.NoError(err)
	assert.Equal("(-217.5 s - 2175) / (90.28 s^2 - 853.5)", sys.String())
}
