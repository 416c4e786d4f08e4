package rotate

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-geomag/coords"
)

// BaseSeries holds the frame base vectors for a sequence of instants.
type BaseSeries struct {
	B1, B2, B3 []coords.Vec3
}

// NewBaseSeries evaluates the base vectors of the frame at the given
// mjd2000 times.
func NewBaseSeries(times []float64, frame coords.Frame, dipole [3]float64) (BaseSeries, error) {
	s := BaseSeries{
		B1: make([]coords.Vec3, len(times)),
		B2: make([]coords.Vec3, len(times)),
		B3: make([]coords.Vec3, len(times)),
	}

	for i, t := range times {
		b1, b2, b3, err := frame.Basevectors(t, dipole)
		if err != nil {
			return BaseSeries{}, fmt.Errorf("rotate: base vectors at index %d: %w", i, err)
		}
		s.B1[i], s.B2[i], s.B3[i] = b1, b2, b3
	}

	return s, nil
}

// Len returns the number of instants.
func (s BaseSeries) Len() int { return len(s.B1) }

func (s BaseSeries) validate() error {
	if len(s.B2) != len(s.B1) || len(s.B3) != len(s.B1) {
		return fmt.Errorf("%w: base series lengths %d, %d, %d",
			ErrShapeMismatch, len(s.B1), len(s.B2), len(s.B3))
	}
	return nil
}

// SeriesConfig tunes the parallel evaluation of a matrix series.
type SeriesConfig struct {
	// Workers is the number of goroutines computing matrices. Values
	// below 1 select GOMAXPROCS.
	Workers int
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

func (c SeriesConfig) normalize() SeriesConfig {
	if c.Workers < 1 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Series computes the transformation matrix at every instant of the
// base series. The result is ordered like the input; instants are
// processed by a pool of workers.
func Series(nmax, kmax int, bases BaseSeries, cfg SeriesConfig) ([]*Dense, error) {
	if nmax < 1 || kmax < 1 {
		return nil, fmt.Errorf("%w: nmax %d, kmax %d", ErrInvalidDegree, nmax, kmax)
	}
	if err := bases.validate(); err != nil {
		return nil, err
	}

	cfg = cfg.normalize()
	n := bases.Len()

	out := make([]*Dense, n)
	if n == 0 {
		return out, nil
	}

	cfg.Logger.Info("computing rotation matrix series",
		zap.Int("instants", n),
		zap.Int("nmax", nmax),
		zap.Int("kmax", kmax),
		zap.Int("workers", cfg.Workers))

	indices := make(chan int)
	errs := make([]error, cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			// Each worker reuses one quadrature grid. After a failure
			// the worker keeps draining so the producer never blocks.
			g, err := newGrid(nmax, kmax)
			for i := range indices {
				if err != nil {
					continue
				}
				var m *Dense
				if m, err = g.matrix(bases.B1[i], bases.B2[i], bases.B3[i]); err != nil {
					err = fmt.Errorf("rotate: instant %d: %w", i, err)
					continue
				}
				out[i] = m
			}
			errs[w] = err
		}(w)
	}

	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
