package sh

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-geomag/internal/dft"
	"github.com/cwbudde/algo-geomag/internal/gauss"
)

// SurfaceFunc evaluates a scalar field at one point on the sphere.
// Angles are in degrees, colatitude in [0, 180].
type SurfaceFunc func(thetaDeg, phiDeg float64) float64

// Analyze expands a function on the sphere into natural-order spherical
// harmonic coefficients up to degree nmax.
//
// kmax sets the resolution of the integration grid and should be at
// least the intrinsic degree of f; values below nmax are ignored. The
// grid has max(nmax, kmax)+1 Gauss-Legendre colatitudes and twice that
// many longitudes, which integrates products of degree-nmax and
// degree-kmax harmonics exactly. If f contains terms above kmax, their
// energy aliases into the returned low-degree coefficients; this is
// deliberate, and callers control accuracy solely through kmax.
func Analyze(f SurfaceFunc, nmax, kmax int) ([]float64, error) {
	if nmax < 1 {
		return nil, fmt.Errorf("%w: nmax = %d", ErrInvalidDegree, nmax)
	}

	if kmax < nmax {
		kmax = nmax
	}

	nTheta := max(nmax, kmax) + 1
	nPhi := 2 * nTheta

	x, weights, err := gauss.Nodes(nTheta)
	if err != nil {
		return nil, fmt.Errorf("sh: building quadrature grid: %w", err)
	}

	theta := make([]float64, nTheta)
	for i, v := range x {
		theta[i] = math.Acos(v) * 180 / math.Pi
	}

	phi := make([]float64, nPhi)
	for j := range phi {
		phi[j] = 360 * float64(j) / float64(nPhi)
	}

	table, err := Legendre(nmax, theta)
	if err != nil {
		return nil, err
	}

	// Longitude DFT per colatitude row; bins[m][i] holds the order-m
	// component at colatitude i, scaled by 1/nPhi.
	plan, err := dft.NewPlan(nPhi)
	if err != nil {
		return nil, fmt.Errorf("sh: creating longitude transform: %w", err)
	}

	bins := make([][]complex128, nmax+1)
	for m := range bins {
		bins[m] = make([]complex128, nTheta)
	}

	row := make([]complex128, nPhi)
	spec := make([]complex128, nPhi)

	for i := 0; i < nTheta; i++ {
		for j := 0; j < nPhi; j++ {
			row[j] = complex(f(theta[i], phi[j]), 0)
		}

		if err := plan.Forward(spec, row); err != nil {
			return nil, fmt.Errorf("sh: longitude transform: %w", err)
		}

		scale := complex(1/float64(nPhi), 0)
		for m := 0; m <= nmax; m++ {
			bins[m][i] = spec[m] * scale
		}
	}

	coeffs := make([]float64, NumCoeffs(nmax))
	pw := make([]float64, nTheta)

	k := 0
	for n := 1; n <= nmax; n++ {
		normZonal := 2 / float64(2*n+1)
		normSector := 4 / float64(2*n+1)

		// m = 0: colatitude quadrature against P_n^0.
		vecmath.MulBlock(pw, table.At(n, 0), weights)

		var c complex128
		for i := 0; i < nTheta; i++ {
			c += bins[0][i] * complex(pw[i], 0)
		}

		coeffs[k] = real(c) / normZonal
		k++

		// m > 0: one DFT bin carries half the cosine/sine amplitude.
		for m := 1; m <= n; m++ {
			vecmath.MulBlock(pw, table.At(n, m), weights)

			var c complex128
			for i := 0; i < nTheta; i++ {
				c += bins[m][i] * complex(2*pw[i], 0)
			}

			coeffs[k] = real(c) / normSector
			coeffs[k+1] = -imag(c) / normSector
			k += 2
		}
	}

	return coeffs, nil
}
