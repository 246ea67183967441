// Package rlocus computes root locus diagrams: the trajectories of
// closed loop poles as a proportional feedback gain varies.
package rlocus

import (
	"fmt"
	"math/cmplx"

	"github.com/milosgajdos/go-control/poly"
	"github.com/milosgajdos/go-control/tf"
)

// Locus holds closed loop pole locations for a sequence of gains.
type Locus struct {
	// Gains are the sampled gain values
	Gains []float64
	// Roots holds one pole slice per gain. Roots[i][j] continues the
	// branch Roots[i-1][j], so column j traces a single branch.
	Roots [][]complex128
}

// Branches returns the number of root branches in the locus.
func (l *Locus) Branches() int {
	if len(l.Roots) == 0 {
		return 0
	}
	return len(l.Roots[0])
}

// Gains returns n evenly spaced gain values from `from` to `to`
// inclusive. The range may run in either direction, so a sweep of a
// positive feedback loop is expressed with a descending negative range.
// A single sample holds only `from`; n < 1 yields nil.
func Gains(from, to float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}

	g := make([]float64, n)
	for i := range g {
		g[i] = from + (to-from)*float64(i)/float64(n-1)
	}

	return g
}

// Sweep computes the root locus of loop transfer function l over the
// given gain sequence and returns it.
//
// For each gain k the closed loop characteristic polynomial is
// den(l) + k*num(l). Roots are reordered at every step by greedy
// nearest neighbour matching against the previous step so each branch
// stays continuous across the sweep.
//
// It returns error if the gain sequence is empty, the loop transfer
// function is improper, or a gain collapses the characteristic
// polynomial degree (which happens for a biproper loop at the single
// gain that cancels the leading coefficient).
func Sweep(l *tf.TF, gains []float64) (*Locus, error) {
	if len(gains) == 0 {
		return nil, fmt.Errorf("no gains to sweep")
	}

	num, den := l.Num(), l.Den()
	n := poly.Degree(den)
	if poly.Degree(num) > n {
		return nil, fmt.Errorf("improper loop transfer function: %v", l)
	}

	locus := &Locus{
		Gains: append([]float64{}, gains...),
		Roots: make([][]complex128, len(gains)),
	}

	var prev []complex128
	for i, k := range gains {
		char := poly.Add(den, poly.Scale(k, num))
		roots, err := poly.Roots(char)
		if err != nil {
			return nil, fmt.Errorf("root locus failed at gain %v: %v", k, err)
		}
		if len(roots) != n {
			return nil, fmt.Errorf("characteristic polynomial degenerates at gain %v: expected %d roots, got %d", k, n, len(roots))
		}

		if prev != nil {
			roots = reorder(prev, roots)
		}
		locus.Roots[i] = roots
		prev = roots
	}

	return locus, nil
}

// reorder matches curr roots to prev branches by greedy nearest
// neighbour assignment and returns curr in branch order.
func reorder(prev, curr []complex128) []complex128 {
	out := make([]complex128, len(curr))
	used := make([]bool, len(curr))

	for i, p := range prev {
		best := -1
		bestDist := 0.0
		for j, c := range curr {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(c - p); best < 0 || d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = curr[best]
		used[best] = true
	}

	return out
}
