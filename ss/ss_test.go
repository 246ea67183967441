package ss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	control "github.com/milosgajdos/go-control"
	"github.com/milosgajdos/go-control/tf"
)

var _ control.DiscreteSystem = (*Discrete)(nil)

func mustTF(t *testing.T, num, den []float64) *tf.TF {
	sys, err := tf.New(num, den)
	if err != nil {
		t.Fatalf("failed to create transfer function: %v", err)
	}
	return sys
}

func TestNewFromTF(t *testing.T) {
	assert := assert.New(t)

	// (2s + 3) / (s^2 + 4s + 5)
	sys, err := NewFromTF(mustTF(t, []float64{2, 3}, []float64{1, 4, 5}))
	assert.NoError(err)
	assert.Equal(2, sys.Order())

	assert.InDelta(0.0, sys.A.At(0, 0), 1e-14)
	assert.InDelta(1.0, sys.A.At(0, 1), 1e-14)
	assert.InDelta(-5.0, sys.A.At(1, 0), 1e-14)
	assert.InDelta(-4.0, sys.A.At(1, 1), 1e-14)
	assert.InDelta(1.0, sys.B.At(1, 0), 1e-14)
	assert.InDelta(3.0, sys.C.At(0, 0), 1e-14)
	assert.InDelta(2.0, sys.C.At(0, 1), 1e-14)
	assert.InDelta(0.0, sys.D.At(0, 0), 1e-14)

	// non-monic denominator gets normalized
	sys, err = NewFromTF(mustTF(t, []float64{4}, []float64{2, 2}))
	assert.NoError(err)
	assert.InDelta(-1.0, sys.A.At(0, 0), 1e-14)
	assert.InDelta(2.0, sys.C.At(0, 0), 1e-14)

	// biproper function has direct feedthrough
	// (s + 2) / (s + 1) = 1 + 1/(s+1)
	sys, err = NewFromTF(mustTF(t, []float64{1, 2}, []float64{1, 1}))
	assert.NoError(err)
	assert.InDelta(1.0, sys.D.At(0, 0), 1e-14)
	assert.InDelta(1.0, sys.C.At(0, 0), 1e-14)

	// improper function has no realization
	sys, err = NewFromTF(mustTF(t, []float64{1, 0, 0}, []float64{1, 1}))
	assert.Nil(sys)
	assert.Error(err)
}

func TestToDiscrete(t *testing.T) {
	assert := assert.New(t)

	// first order lag 1/(s + 1): Ad = exp(-Ts), Bd = 1 - exp(-Ts)
	sys, err := NewFromTF(mustTF(t, []float64{1}, []float64{1, 1}))
	assert.NoError(err)

	Ts := 0.1
	d, err := sys.ToDiscrete(Ts)
	assert.NoError(err)
	assert.InDelta(math.Exp(-Ts), d.A.At(0, 0), 1e-10)
	assert.InDelta(1.0-math.Exp(-Ts), d.B.At(0, 0), 1e-10)

	// integrator 1/s has a singular A: Ad = 1, Bd = Ts
	sys, err = NewFromTF(mustTF(t, []float64{1}, []float64{1, 0}))
	assert.NoError(err)

	d, err = sys.ToDiscrete(Ts)
	assert.NoError(err)
	assert.InDelta(1.0, d.A.At(0, 0), 1e-10)
	assert.InDelta(Ts, d.B.At(0, 0), 1e-6)

	// invalid sampling time
	d, err = sys.ToDiscrete(0)
	assert.Nil(d)
	assert.Error(err)
}

func TestPropagateObserve(t *testing.T) {
	assert := assert.New(t)

	sys, err := NewFromTF(mustTF(t, []float64{1}, []float64{1, 1}))
	assert.NoError(err)

	d, err := sys.ToDiscrete(0.5)
	assert.NoError(err)

	x := mat.NewVecDense(1, nil)
	var u float64 = 1.0

	// a few steps towards the DC gain of 1
	var xv mat.Vector = x
	for i := 0; i < 50; i++ {
		xv, err = d.Propagate(xv, u)
		assert.NoError(err)
	}
	y, err := d.Observe(xv, u)
	assert.NoError(err)
	assert.InDelta(1.0, y, 1e-9)

	// invalid state vector
	bad := mat.NewVecDense(3, nil)
	_, err = d.Propagate(bad, u)
	assert.Error(err)
	_, err = d.Observe(bad, u)
	assert.Error(err)
}
