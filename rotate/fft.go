package rotate

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-geomag/coords"
	"github.com/cwbudde/algo-geomag/internal/dft"
)

// QFunc returns the complex induction response for a vector of
// frequencies in Hz and the natural-order index k of the geographic
// coefficient the response applies to.
type QFunc func(freqHz []float64, k int) []complex128

// FFTConfig tunes the spectral compression of a matrix series.
type FFTConfig struct {
	// StepHours is the sample spacing of the series in hours. Values
	// at or below 0 select 1 hour.
	StepHours float64
	// Filter is the number of Fourier components kept per matrix
	// element. Values below 1 keep the full half spectrum.
	Filter int
	// Scaled doubles all non-zero frequency components so that the
	// real part of spectrum times complex exponential synthesizes the
	// series without further scaling.
	Scaled bool
	// QFunc weights the spectrum with an induction response before the
	// induced-part ranking. Nil leaves the induced spectrum unweighted.
	QFunc QFunc
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// Spectrum is the compressed Fourier representation of a matrix series.
// Frequency and Coeff describe the inducing part, FrequencyInd and
// CoeffInd the response-weighted induced part. All four are flat arrays
// of shape (Filter, Rows, Cols) with frequencies in cycles per day.
type Spectrum struct {
	Nmax, Kmax int
	Filter     int
	Samples    int
	StepHours  float64
	StartDate  float64
	Reference  coords.Frame
	Scaled     bool
	Dipole     [3]float64

	Frequency    []float64
	FrequencyInd []float64
	Coeff        []complex128
	CoeffInd     []complex128
}

// Rows returns the number of matrix rows, nmax(nmax+2).
func (s *Spectrum) Rows() int { return s.Nmax * (s.Nmax + 2) }

// Cols returns the number of matrix columns, kmax(kmax+2).
func (s *Spectrum) Cols() int { return s.Kmax * (s.Kmax + 2) }

// Index returns the flat index of component b of matrix element (i, j).
func (s *Spectrum) Index(b, i, j int) int {
	return (b*s.Rows()+i)*s.Cols() + j
}

// FFT compresses a matrix series into its dominant Fourier components.
// The series must be equally spaced in time; every matrix must have
// dimensions nmax(nmax+2) by kmax(kmax+2).
func FFT(nmax, kmax int, series []*Dense, cfg FFTConfig) (*Spectrum, error) {
	if nmax < 1 || kmax < 1 {
		return nil, fmt.Errorf("%w: nmax %d, kmax %d", ErrInvalidDegree, nmax, kmax)
	}

	n := len(series)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrShapeMismatch)
	}

	rows := nmax * (nmax + 2)
	cols := kmax * (kmax + 2)
	for i, m := range series {
		if m == nil || m.Rows != rows || m.Cols != cols {
			return nil, fmt.Errorf("%w: series[%d] is not %dx%d", ErrShapeMismatch, i, rows, cols)
		}
	}

	if cfg.StepHours <= 0 {
		cfg.StepHours = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	half := n/2 + 1
	if cfg.Filter < 1 || cfg.Filter > half {
		cfg.Filter = half
	}

	plan, err := dft.NewPlan(n)
	if err != nil {
		return nil, err
	}

	// Positive frequencies in Hz.
	freqHz := make([]float64, half)
	for b := range freqHz {
		freqHz[b] = float64(b) / float64(n) / cfg.StepHours / 3600
	}

	cfg.Logger.Info("compressing matrix series",
		zap.Int("samples", n),
		zap.Int("filter", cfg.Filter),
		zap.Float64("step_hours", cfg.StepHours),
		zap.Bool("scaled", cfg.Scaled))

	s := &Spectrum{
		Nmax:      nmax,
		Kmax:      kmax,
		Filter:    cfg.Filter,
		Samples:   n,
		StepHours: cfg.StepHours,
		Scaled:    cfg.Scaled,

		Frequency:    make([]float64, cfg.Filter*rows*cols),
		FrequencyInd: make([]float64, cfg.Filter*rows*cols),
		Coeff:        make([]complex128, cfg.Filter*rows*cols),
		CoeffInd:     make([]complex128, cfg.Filter*rows*cols),
	}

	src := make([]complex128, n)
	dst := make([]complex128, n)
	element := make([]complex128, half)
	elementInd := make([]complex128, half)
	re := make([]float64, half)
	im := make([]float64, half)
	mag := make([]float64, half)
	order := make([]int, half)

	// rank fills order with bin indices sorted by descending magnitude.
	// Equal magnitudes keep their frequency order.
	rank := func(spec []complex128) {
		for b, c := range spec {
			re[b] = real(c)
			im[b] = imag(c)
		}
		vecmath.Magnitude(mag, re, im)

		for b := range order {
			order[b] = b
		}
		sort.SliceStable(order, func(a, b int) bool {
			return mag[order[a]] > mag[order[b]]
		})
	}

	for i := 0; i < rows; i++ {
		var response []complex128
		if cfg.QFunc != nil {
			response = cfg.QFunc(freqHz, i)
			if len(response) != half {
				return nil, fmt.Errorf("%w: response length %d for %d frequencies",
					ErrShapeMismatch, len(response), half)
			}
		}

		for j := 0; j < cols; j++ {
			for t := 0; t < n; t++ {
				src[t] = complex(series[t].At(i, j), 0)
			}
			if err := plan.Forward(dst, src); err != nil {
				return nil, err
			}
			for b := 0; b < half; b++ {
				element[b] = dst[b] / complex(float64(n), 0)
				if response != nil {
					elementInd[b] = response[b] * element[b]
				} else {
					elementInd[b] = element[b]
				}
			}

			rank(element)
			for b := 0; b < cfg.Filter; b++ {
				idx := s.Index(b, i, j)
				s.Frequency[idx] = freqHz[order[b]] * 86400
				s.Coeff[idx] = element[order[b]]
			}

			rank(elementInd)
			for b := 0; b < cfg.Filter; b++ {
				idx := s.Index(b, i, j)
				s.FrequencyInd[idx] = freqHz[order[b]] * 86400
				s.CoeffInd[idx] = elementInd[order[b]]
			}
		}
	}

	if cfg.Scaled {
		for idx, f := range s.Frequency {
			if f != 0 {
				s.Coeff[idx] *= 2
			}
		}
		for idx, f := range s.FrequencyInd {
			if f != 0 {
				s.CoeffInd[idx] *= 2
			}
		}
	}

	return s, nil
}
