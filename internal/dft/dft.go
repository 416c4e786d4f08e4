// Package dft provides exact discrete Fourier transforms for arbitrary
// lengths on top of algo-fft.
//
// algo-fft plans are constructed for power-of-two sizes only. Spherical
// harmonic analysis needs the DFT at the exact grid length (zero-padding
// changes the transform), so non-power-of-two lengths are evaluated with
// Bluestein's algorithm: the length-n DFT is rewritten as a circular
// convolution with a chirp and carried out on a power-of-two algo-fft
// plan of length >= 2n-1.
//
// Conventions match algo-fft: Forward is unnormalized, Inverse folds in
// the 1/n factor.
package dft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by plan operations.
var (
	ErrInvalidLength  = errors.New("dft: transform length must be positive")
	ErrLengthMismatch = errors.New("dft: buffer length does not match plan")
)

// Plan holds precomputed state for repeated transforms of one length.
type Plan struct {
	n int

	// direct is set when n is a power of two.
	direct *algofft.Plan[complex128]

	// Bluestein state for the general case.
	m     int
	conv  *algofft.Plan[complex128]
	chirp []complex128 // exp(-i*pi*k^2/n), k = 0..n-1
	bFreq []complex128 // transform of the chirp kernel, length m
}

// NewPlan creates a transform plan for length n.
func NewPlan(n int) (*Plan, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}

	p := &Plan{n: n}

	if isPowerOf2(n) {
		direct, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("dft: creating plan: %w", err)
		}

		p.direct = direct

		return p, nil
	}

	p.m = nextPowerOf2(2*n - 1)

	conv, err := algofft.NewPlan64(p.m)
	if err != nil {
		return nil, fmt.Errorf("dft: creating convolution plan: %w", err)
	}

	p.conv = conv

	p.chirp = make([]complex128, n)
	for k := 0; k < n; k++ {
		// k^2 mod 2n keeps the phase argument small for long transforms.
		kk := (k * k) % (2 * n)
		p.chirp[k] = cmplx.Exp(complex(0, -math.Pi*float64(kk)/float64(n)))
	}

	b := make([]complex128, p.m)
	b[0] = cmplx.Conj(p.chirp[0])

	for k := 1; k < n; k++ {
		c := cmplx.Conj(p.chirp[k])
		b[k] = c
		b[p.m-k] = c
	}

	p.bFreq = make([]complex128, p.m)
	if err := p.conv.Forward(p.bFreq, b); err != nil {
		return nil, fmt.Errorf("dft: transforming chirp kernel: %w", err)
	}

	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes the unnormalized DFT
//
//	dst[k] = sum_j src[j] * exp(-2*pi*i*j*k/n).
//
// dst and src must both have length n.
func (p *Plan) Forward(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrLengthMismatch
	}

	if p.direct != nil {
		return p.direct.Forward(dst, src)
	}

	return p.bluestein(dst, src, false)
}

// Inverse computes the normalized inverse DFT
//
//	dst[j] = (1/n) * sum_k src[k] * exp(+2*pi*i*j*k/n).
//
// dst and src must both have length n.
func (p *Plan) Inverse(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrLengthMismatch
	}

	if p.direct != nil {
		return p.direct.Inverse(dst, src)
	}

	return p.bluestein(dst, src, true)
}

func (p *Plan) bluestein(dst, src []complex128, inverse bool) error {
	a := make([]complex128, p.m)
	for j := 0; j < p.n; j++ {
		v := src[j]
		if inverse {
			v = cmplx.Conj(v)
		}

		a[j] = v * p.chirp[j]
	}

	aFreq := make([]complex128, p.m)
	if err := p.conv.Forward(aFreq, a); err != nil {
		return fmt.Errorf("dft: forward transform: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= p.bFreq[i]
	}

	// Inverse includes 1/m, giving the exact circular convolution.
	if err := p.conv.Inverse(a, aFreq); err != nil {
		return fmt.Errorf("dft: inverse transform: %w", err)
	}

	scale := complex(1/float64(p.n), 0)
	for k := 0; k < p.n; k++ {
		v := p.chirp[k] * a[k]
		if inverse {
			v = cmplx.Conj(v) * scale
		}

		dst[k] = v
	}

	return nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
