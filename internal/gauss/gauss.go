// Package gauss computes Gauss-Legendre quadrature nodes and weights.
//
// An n-point rule integrates polynomials up to degree 2n-1 exactly on
// [-1, 1], which makes it the natural grid for spherical harmonic
// analysis in colatitude: products of two associated Legendre functions
// of degree at most n-1 are integrated without error.
package gauss

import (
	"errors"
	"math"
)

// ErrInvalidOrder is returned for a non-positive point count.
var ErrInvalidOrder = errors.New("gauss: point count must be positive")

const (
	newtonTol      = 1e-15
	newtonMaxIters = 100
)

// Nodes returns the n-point Gauss-Legendre nodes (ascending on [-1, 1])
// and the corresponding quadrature weights.
func Nodes(n int) (x, w []float64, err error) {
	if n < 1 {
		return nil, nil, ErrInvalidOrder
	}

	x = make([]float64, n)
	w = make([]float64, n)

	// Nodes come in +/- pairs; solve the upper half and mirror.
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// Tricomi's approximation of the i-th root of P_n.
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))

		var pp float64
		for iter := 0; ; iter++ {
			p, dp := legendreAt(n, z)
			pp = dp

			dz := p / dp
			z -= dz

			if math.Abs(dz) <= newtonTol {
				break
			}

			if iter >= newtonMaxIters {
				return nil, nil, errors.New("gauss: Newton iteration did not converge")
			}
		}

		weight := 2 / ((1 - z*z) * pp * pp)

		x[i] = -z
		x[n-1-i] = z
		w[i] = weight
		w[n-1-i] = weight
	}

	return x, w, nil
}

// legendreAt evaluates the Legendre polynomial P_n and its derivative at z
// by the three-term recurrence.
func legendreAt(n int, z float64) (p, dp float64) {
	p0 := 1.0
	p1 := z

	if n == 0 {
		return p0, 0
	}

	for k := 2; k <= n; k++ {
		p2 := ((2*float64(k)-1)*z*p1 - (float64(k)-1)*p0) / float64(k)
		p0 = p1
		p1 = p2
	}

	dp = float64(n) * (z*p1 - p0) / (z*z - 1)

	return p1, dp
}
