package induction

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Table holds Q-responses per harmonic degree and frequency.
type Table struct {
	Nmax   int
	FreqHz []float64
	rows   [][]complex128 // index 0 holds degree 1
}

// Row returns the Q-responses of degree n over the table frequencies.
// Degrees outside 1..Nmax return nil.
func (t *Table) Row(n int) []complex128 {
	if n < 1 || n > t.Nmax {
		return nil
	}
	return t.rows[n-1]
}

// QTable computes the Q-response of the profile for all degrees up to
// nmax at the given frequencies in Hz, using the quadratic layer kind.
// Zero frequencies yield a zero response; degrees are computed in
// parallel.
func QTable(p *Profile, nmax int, freqHz []float64, opts Options) (*Table, error) {
	if nmax < 1 {
		return nil, fmt.Errorf("%w: nmax %d", ErrUnsupportedOption, nmax)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: no profile", ErrInvalidProfile)
	}
	if _, err := NewProfile(p.Layers); err != nil {
		return nil, err
	}
	for i, f := range freqHz {
		if f < 0 {
			return nil, fmt.Errorf("%w: frequency %g at index %d", ErrUnsupportedOption, f, i)
		}
	}

	opts = opts.normalize()

	// Periods of the non-zero frequencies, positions retained.
	positions := make([]int, 0, len(freqHz))
	periods := make([]float64, 0, len(freqHz))
	for i, f := range freqHz {
		if f > 0 {
			positions = append(positions, i)
			periods = append(periods, 1/f)
		}
	}

	t := &Table{
		Nmax:   nmax,
		FreqHz: freqHz,
		rows:   make([][]complex128, nmax),
	}

	errs := make([]error, nmax)

	var wg sync.WaitGroup
	for n := 1; n <= nmax; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			opts.Logger.Info("calculating induction response", zap.Int("degree", n))

			row := make([]complex128, len(freqHz))
			if len(periods) > 0 {
				resp, err := Respond(periods, p, n, Quadratic, opts)
				if err != nil {
					errs[n-1] = fmt.Errorf("induction: degree %d: %w", n, err)
					return
				}
				for i, pos := range positions {
					row[pos] = resp.Q[i]
				}
			}
			t.rows[n-1] = row
		}(n)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}
