package sh

import (
	"errors"
	"math"
)

// ErrInvalidDegree is returned when a maximum degree is not positive or a
// coefficient vector length does not match it.
var ErrInvalidDegree = errors.New("sh: invalid spherical harmonic degree")

// Table holds Schmidt quasi-normalized associated Legendre function
// values on a colatitude grid.
type Table struct {
	Nmax int

	// p[n][m][i] is P_n^m at grid point i, for 0 <= m <= n <= Nmax.
	p [][][]float64
}

// At returns the slice of P_n^m values over the grid.
func (t *Table) At(n, m int) []float64 {
	return t.p[n][m]
}

// Legendre computes Schmidt quasi-normalized associated Legendre
// functions P_n^m for all degrees n <= nmax and orders m <= n on the
// given colatitude grid (degrees).
func Legendre(nmax int, thetaDeg []float64) (*Table, error) {
	if nmax < 1 {
		return nil, ErrInvalidDegree
	}

	pts := len(thetaDeg)

	p := make([][][]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		p[n] = make([][]float64, n+1)
		for m := 0; m <= n; m++ {
			p[n][m] = make([]float64, pts)
		}
	}

	sinTheta := make([]float64, pts)
	cosTheta := make([]float64, pts)

	for i, deg := range thetaDeg {
		rad := deg * math.Pi / 180
		sinTheta[i] = math.Sin(rad)
		cosTheta[i] = math.Cos(rad)
	}

	rootn := make([]float64, 2*nmax*nmax+1)
	for i := range rootn {
		rootn[i] = math.Sqrt(float64(i))
	}

	for i := 0; i < pts; i++ {
		p[0][0][i] = 1
	}

	if nmax >= 1 {
		for i := 0; i < pts; i++ {
			p[1][1][i] = sinTheta[i]
		}
	}

	// Langel's recursion over sectoral seeds and degree.
	for m := 0; m < nmax; m++ {
		for i := 0; i < pts; i++ {
			tmp := rootn[2*m+1] * p[m][m][i]
			p[m+1][m][i] = cosTheta[i] * tmp

			if m > 0 {
				p[m+1][m+1][i] = sinTheta[i] * tmp / rootn[2*m+2]
			}
		}

		for n := m + 2; n <= nmax; n++ {
			d := n*n - m*m
			e := 2*n - 1

			for i := 0; i < pts; i++ {
				p[n][m][i] = (float64(e)*cosTheta[i]*p[n-1][m][i] - rootn[d-e]*p[n-2][m][i]) / rootn[d]
			}
		}
	}

	return &Table{Nmax: nmax, p: p}, nil
}
