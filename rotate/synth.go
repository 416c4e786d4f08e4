package rotate

import (
	"math"
)

// Synth reconstructs the transformation matrices at the given mjd2000
// times from a compressed spectrum. With induced set, the
// response-weighted part of the spectrum is synthesized instead of the
// inducing part.
func Synth(times []float64, s *Spectrum, induced bool) ([]*Dense, error) {
	if s.Nmax < 1 || s.Kmax < 1 {
		return nil, ErrInvalidDegree
	}

	freq := s.Frequency
	coeff := s.Coeff
	if induced {
		freq = s.FrequencyInd
		coeff = s.CoeffInd
	}

	rows, cols := s.Rows(), s.Cols()

	out := make([]*Dense, len(times))
	for ti, t := range times {
		m := NewDense(rows, cols)

		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				var sum float64
				for b := 0; b < s.Filter; b++ {
					idx := s.Index(b, i, j)
					f := freq[idx]
					c := coeff[idx]

					arg := 2 * math.Pi * f * t
					h := complex(math.Cos(arg), math.Sin(arg))
					if !s.Scaled && f > 0 {
						h *= 2
					}
					sum += real(c * h)
				}
				m.Set(i, j, sum)
			}
		}

		out[ti] = m
	}

	return out, nil
}
