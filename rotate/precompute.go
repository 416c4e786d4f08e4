package rotate

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-geomag/coords"
	"github.com/cwbudde/algo-geomag/induction"
	"github.com/cwbudde/algo-geomag/internal/npz"
	"github.com/cwbudde/algo-geomag/sh"
)

// ErrUnsupportedOption is returned for configuration values outside the
// supported set, such as a time-independent reference frame.
var ErrUnsupportedOption = errors.New("rotate: unsupported option")

// DefaultSamples is the default series length: eight years of hourly
// samples.
const DefaultSamples = int(8 * 365.25 * 24)

// Config collects the parameters of a spectrum precomputation.
type Config struct {
	// Nmax and Kmax are the maximum degrees of the geographic and the
	// rotated expansion.
	Nmax, Kmax int
	// Reference selects the time-dependent frame, GSM or SM.
	Reference coords.Frame
	// Dipole holds the degree-1 coefficients [g10, g11, h11] defining
	// the dipole axis. The zero value selects coords.DefaultDipole.
	Dipole [3]float64
	// StepHours is the sample spacing in hours (default 1).
	StepHours float64
	// Samples is the series length (default DefaultSamples).
	Samples int
	// Filter is the number of Fourier components kept per matrix
	// element (default the full half spectrum, Samples/2+1).
	Filter int
	// Scaled doubles non-zero frequency components, see FFTConfig.
	Scaled bool
	// StartDate is the first sample time in mjd2000 (default 0).
	StartDate float64
	// Profile selects the conductivity model used to weight the
	// induced spectrum. Ignored when QFunc is set; when both are nil
	// the induced spectrum is unweighted.
	Profile *induction.Profile
	// QFunc overrides the induction response weighting.
	QFunc QFunc
	// Workers is the size of the matrix worker pool.
	Workers int
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
	// SaveTo writes the spectrum as an npz archive when non-empty.
	SaveTo string
}

func (c Config) normalize() Config {
	if c.Dipole == ([3]float64{}) {
		c.Dipole = coords.DefaultDipole
	}
	if c.StepHours <= 0 {
		c.StepHours = 1
	}
	if c.Samples < 1 {
		c.Samples = DefaultSamples
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Precompute builds the matrix series of the configured frame, runs the
// spectral compression and optionally writes the npz parameter archive.
func Precompute(cfg Config) (*Spectrum, error) {
	cfg = cfg.normalize()

	if cfg.Reference != coords.FrameGSM && cfg.Reference != coords.FrameSM {
		return nil, fmt.Errorf("%w: reference %v", ErrUnsupportedOption, cfg.Reference)
	}

	times := make([]float64, cfg.Samples)
	for i := range times {
		times[i] = cfg.StartDate + float64(i)*cfg.StepHours/24
	}

	cfg.Logger.Info("precomputing rotation spectrum",
		zap.String("reference", cfg.Reference.String()),
		zap.Int("samples", cfg.Samples),
		zap.Float64("step_hours", cfg.StepHours),
		zap.Float64("start_date", cfg.StartDate))

	bases, err := NewBaseSeries(times, cfg.Reference, cfg.Dipole)
	if err != nil {
		return nil, err
	}

	series, err := Series(cfg.Nmax, cfg.Kmax, bases, SeriesConfig{
		Workers: cfg.Workers,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	qfunc := cfg.QFunc
	if qfunc == nil && cfg.Profile != nil {
		qfunc, err = profileQFunc(cfg.Profile, cfg.Nmax, cfg.Samples, cfg.StepHours)
		if err != nil {
			return nil, err
		}
	}

	s, err := FFT(cfg.Nmax, cfg.Kmax, series, FFTConfig{
		StepHours: cfg.StepHours,
		Filter:    cfg.Filter,
		Scaled:    cfg.Scaled,
		QFunc:     qfunc,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	s.Reference = cfg.Reference
	s.StartDate = cfg.StartDate
	s.Dipole = cfg.Dipole

	if cfg.SaveTo != "" {
		if err := Save(cfg.SaveTo, s); err != nil {
			return nil, err
		}
		cfg.Logger.Info("spectrum archive written", zap.String("path", cfg.SaveTo))
	}

	return s, nil
}

// profileQFunc precomputes the induction responses of a conductivity
// profile for all degrees and spectrum frequencies.
func profileQFunc(profile *induction.Profile, nmax, samples int, stepHours float64) (QFunc, error) {
	half := samples/2 + 1
	freqHz := make([]float64, half)
	for b := range freqHz {
		freqHz[b] = float64(b) / float64(samples) / stepHours / 3600
	}

	table, err := induction.QTable(profile, nmax, freqHz, induction.Options{})
	if err != nil {
		return nil, err
	}

	return func(_ []float64, k int) []complex128 {
		return table.Row(sh.Degree(k))
	}, nil
}

// Save writes a spectrum as an npz archive with the array layout of the
// precomputed parameter files.
func Save(path string, s *Spectrum) error {
	shape := []int{s.Filter, s.Rows(), s.Cols()}

	return npz.Write(path, map[string]npz.Value{
		"frequency":     npz.Float64s(shape, s.Frequency),
		"frequency_ind": npz.Float64s(shape, s.FrequencyInd),
		"spectrum":      npz.Complex128s(shape, s.Coeff),
		"spectrum_ind":  npz.Complex128s(shape, s.CoeffInd),
		"step":          npz.Scalar(s.StepHours),
		"N":             npz.Scalar(float64(s.Samples)),
		"filter":        npz.Scalar(float64(s.Filter)),
		"reference":     npz.StringScalar(s.Reference.String()),
		"scaled":        npz.BoolScalar(s.Scaled),
		"dipole":        npz.Float64s([]int{3}, s.Dipole[:]),
		"start_date":    npz.Scalar(s.StartDate),
	})
}

// Load reads a spectrum archive written by Save.
func Load(path string) (*Spectrum, error) {
	values, err := npz.Read(path)
	if err != nil {
		return nil, err
	}

	freq, ok := values["frequency"]
	if !ok || freq.Kind != npz.Float64 || len(freq.Shape) != 3 {
		return nil, fmt.Errorf("rotate: %s: missing or malformed frequency array", path)
	}

	filter, rows, cols := freq.Shape[0], freq.Shape[1], freq.Shape[2]

	nmax := int(math.Sqrt(float64(rows+1))) - 1
	kmax := int(math.Sqrt(float64(cols+1))) - 1
	if nmax*(nmax+2) != rows || kmax*(kmax+2) != cols {
		return nil, fmt.Errorf("rotate: %s: matrix shape %dx%d is not a harmonic expansion", path, rows, cols)
	}

	s := &Spectrum{
		Nmax:   nmax,
		Kmax:   kmax,
		Filter: filter,
	}

	count := filter * rows * cols
	grab := func(name string, kind npz.Kind) (npz.Value, error) {
		v, ok := values[name]
		if !ok || v.Kind != kind {
			return npz.Value{}, fmt.Errorf("rotate: %s: missing or malformed %s array", path, name)
		}
		return v, nil
	}

	fi, err := grab("frequency_ind", npz.Float64)
	if err != nil {
		return nil, err
	}
	sp, err := grab("spectrum", npz.Complex128)
	if err != nil {
		return nil, err
	}
	si, err := grab("spectrum_ind", npz.Complex128)
	if err != nil {
		return nil, err
	}
	if len(fi.Floats) != count || len(sp.Complexes) != count || len(si.Complexes) != count {
		return nil, fmt.Errorf("rotate: %s: array sizes disagree with shape", path)
	}

	s.Frequency = freq.Floats
	s.FrequencyInd = fi.Floats
	s.Coeff = sp.Complexes
	s.CoeffInd = si.Complexes

	if v, ok := values["step"]; ok && len(v.Floats) == 1 {
		s.StepHours = v.Floats[0]
	}
	if v, ok := values["N"]; ok && len(v.Floats) == 1 {
		s.Samples = int(v.Floats[0])
	}
	if v, ok := values["start_date"]; ok && len(v.Floats) == 1 {
		s.StartDate = v.Floats[0]
	}
	if v, ok := values["scaled"]; ok && len(v.Bools) == 1 {
		s.Scaled = v.Bools[0]
	}
	if v, ok := values["dipole"]; ok && len(v.Floats) == 3 {
		copy(s.Dipole[:], v.Floats)
	}
	if v, ok := values["reference"]; ok && v.Kind == npz.String {
		frame, err := coords.ParseFrame(v.Str)
		if err != nil {
			return nil, fmt.Errorf("rotate: %s: %w", path, err)
		}
		s.Reference = frame
	}

	return s, nil
}
