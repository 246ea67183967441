package poly

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Polynomials are represented as coefficient slices ordered from the
// highest degree term down to the constant term, so
// []float64{2, 0, -1} stands for 2s^2 - 1.

// Trim strips leading coefficients that are negligible relative to the
// largest coefficient magnitude and returns the trimmed slice.
// It returns an empty slice if all coefficients are negligible.
func Trim(c []float64) []float64 {
	maxAbs := 0.0
	for _, v := range c {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return nil
	}

	tol := 1e-12 * math.Max(1.0, maxAbs)
	i := 0
	for i < len(c)-1 && math.Abs(c[i]) <= tol {
		i++
	}

	out := make([]float64, len(c)-i)
	copy(out, c[i:])

	return out
}

// Degree returns the degree of the polynomial.
// The zero polynomial has degree -1.
func Degree(c []float64) int {
	t := Trim(c)
	if len(t) == 0 {
		return -1
	}
	return len(t) - 1
}

// Add returns the sum of two polynomials.
func Add(a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]float64, n)
	for i, v := range a {
		out[n-len(a)+i] += v
	}
	for i, v := range b {
		out[n-len(b)+i] += v
	}

	return out
}

// Sub returns the difference a - b of two polynomials.
func Sub(a, b []float64) []float64 {
	return Add(a, Scale(-1, b))
}

// Scale returns the polynomial multiplied by scalar k.
func Scale(k float64, c []float64) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = k * v
	}

	return out
}

// Mul returns the product of two polynomials.
func Mul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}

	return out
}

// Eval evaluates the polynomial at point s using Horner's scheme.
func Eval(c []float64, s complex128) complex128 {
	var out complex128
	for _, v := range c {
		out = out*s + complex(v, 0)
	}

	return out
}

// FromRoots builds a monic polynomial with the given roots.
// Complex roots are expected in conjugate pairs; residual imaginary
// parts of the resulting coefficients are discarded.
func FromRoots(roots []complex128) []float64 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}

	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}

	return out
}

// Roots returns all complex roots of the polynomial.
// Roots are sorted by real part, then imaginary part, so repeated
// calls on the same coefficients produce the same ordering.
//
// It returns error if the polynomial is identically zero or if the
// eigenvalue decomposition of the companion matrix fails to converge.
func Roots(c []float64) ([]complex128, error) {
	p := Trim(c)
	if len(p) == 0 {
		return nil, fmt.Errorf("zero polynomial has no defined roots")
	}

	n := len(p) - 1
	switch n {
	case 0:
		return []complex128{}, nil
	case 1:
		return []complex128{complex(-p[1]/p[0], 0)}, nil
	}

	// companion matrix of the monic polynomial: first row carries the
	// negated monic coefficients, ones on the subdiagonal
	comp := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		comp.Set(0, j, -p[j+1]/p[0])
	}
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1.0)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigenvalue decomposition failed for polynomial %v", p)
	}
	roots := eig.Values(nil)

	sortRoots(roots)

	return roots, nil
}

func sortRoots(r []complex128) {
	sort.Slice(r, func(i, j int) bool {
		if real(r[i]) != real(r[j]) {
			return real(r[i]) < real(r[j])
		}
		return imag(r[i]) < imag(r[j])
	})
}
