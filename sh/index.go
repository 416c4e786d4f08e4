package sh

import "math"

// Trig distinguishes the cosine and sine part of an order m > 0 term.
type Trig uint8

// Trig values. Order-0 terms are always Cos.
const (
	Cos Trig = iota
	Sin
)

// Coeff identifies one coefficient of a natural-order expansion.
type Coeff struct {
	N    int
	M    int
	Trig Trig
}

// NumCoeffs returns the length of a natural-order coefficient vector of
// maximum degree nmax, i.e. nmax*(nmax+2).
func NumCoeffs(nmax int) int {
	return nmax * (nmax + 2)
}

// Coeffs enumerates the natural-order coefficients up to degree nmax:
// for each degree the order-0 term, then (cos, sin) pairs for orders
// 1..n. Every component that walks a coefficient vector derives its
// ordering from this enumeration.
func Coeffs(nmax int) []Coeff {
	if nmax < 1 {
		return nil
	}

	out := make([]Coeff, 0, NumCoeffs(nmax))
	for n := 1; n <= nmax; n++ {
		out = append(out, Coeff{N: n, M: 0, Trig: Cos})
		for m := 1; m <= n; m++ {
			out = append(out, Coeff{N: n, M: m, Trig: Cos}, Coeff{N: n, M: m, Trig: Sin})
		}
	}

	return out
}

// Degree returns the spherical harmonic degree of the coefficient at
// natural-order index k (0-based): Degree(0) = 1 for g10.
func Degree(k int) int {
	return int(math.Floor(math.Sqrt(float64(k + 1))))
}
