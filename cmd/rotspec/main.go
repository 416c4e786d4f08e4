// Command rotspec precomputes the Fourier spectrum of spherical
// harmonic rotation matrices between the geographic frame and a
// magnetic reference frame, and writes it as an npz parameter archive.
//
// Usage:
//
//	rotspec [flags]
//
// Examples:
//
//	rotspec -out frequency_spectrum_gsm.npz
//	rotspec -reference sm -nmax 2 -kmax 3 -filter 30 -out sm.npz
//	rotspec -conductivity model.cond -scaled -out gsm_induced.npz
//	rotspec -config settings.yaml -out spectrum.npz
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-geomag/config"
	"github.com/cwbudde/algo-geomag/coords"
	"github.com/cwbudde/algo-geomag/induction"
	"github.com/cwbudde/algo-geomag/internal/logger"
	"github.com/cwbudde/algo-geomag/rotate"
)

func main() {
	configPath := flag.String("config", "", "yaml settings file layered over the defaults")
	nmax := flag.Int("nmax", 0, "maximum degree of the geographic expansion")
	kmax := flag.Int("kmax", 0, "maximum degree of the rotated expansion")
	reference := flag.String("reference", "", "reference frame: gsm or sm")
	step := flag.Float64("step", 0, "sample spacing in hours")
	samples := flag.Int("samples", 0, "number of time samples")
	filter := flag.Int("filter", 0, "Fourier components kept per matrix element (0 keeps all)")
	scaled := flag.Bool("scaled", false, "store pre-doubled non-zero frequency components")
	start := flag.Float64("start", 0, "first sample time in mjd2000")
	conductivity := flag.String("conductivity", "", "two-column conductivity model weighting the induced spectrum")
	out := flag.String("out", "", "output npz archive path (required)")
	logFile := flag.String("log-file", "", "rotating log file path")
	workers := flag.Int("workers", 0, "matrix worker pool size (0 uses all CPUs)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rotspec [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Precomputes the rotation matrix spectrum of a magnetic reference\n")
		fmt.Fprintf(os.Stderr, "frame and writes it as an npz parameter archive.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rotspec -out frequency_spectrum_gsm.npz\n")
		fmt.Fprintf(os.Stderr, "  rotspec -reference sm -nmax 2 -kmax 3 -filter 30 -out sm.npz\n")
		fmt.Fprintf(os.Stderr, "  rotspec -conductivity model.cond -scaled -out gsm_induced.npz\n")
	}
	flag.Parse()

	if *out == "" {
		fmt.Fprintf(os.Stderr, "error: -out is required\n\n")
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	applyFlags(settings, *nmax, *kmax, *reference, *step, *samples, *filter, *start, *workers, *conductivity)
	if flagSet("scaled") {
		settings.Precompute.Scaled = *scaled
	}

	level := settings.Logging.Level
	if *verbose {
		level = "debug"
	}
	if *logFile != "" {
		settings.Logging.LogFile = *logFile
	}
	log := logger.New(level, settings.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	if err := run(settings, *out, log); err != nil {
		log.Error("precomputation failed", zap.Error(err))
		os.Exit(1)
	}
}

// applyFlags overrides the loaded settings with non-zero flag values.
func applyFlags(s *config.Settings, nmax, kmax int, reference string, step float64,
	samples, filter int, start float64, workers int, conductivity string,
) {
	if nmax > 0 {
		s.Precompute.Nmax = nmax
	}
	if kmax > 0 {
		s.Precompute.Kmax = kmax
	}
	if reference != "" {
		s.Precompute.Reference = reference
	}
	if step > 0 {
		s.Precompute.StepHours = step
	}
	if samples > 0 {
		s.Precompute.Samples = samples
	}
	if filter > 0 {
		s.Precompute.Filter = filter
	}
	if flagSet("start") {
		s.Precompute.StartDate = start
	}
	if workers > 0 {
		s.Precompute.Workers = workers
	}
	if conductivity != "" {
		s.Files.Conductivity = conductivity
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func run(s *config.Settings, out string, log *zap.Logger) error {
	frame, err := coords.ParseFrame(s.Precompute.Reference)
	if err != nil {
		return err
	}

	var profile *induction.Profile
	if s.Files.Conductivity != "" {
		profile, err = induction.LoadProfile(s.Files.Conductivity)
		if err != nil {
			return err
		}
		log.Info("conductivity model loaded",
			zap.String("path", s.Files.Conductivity),
			zap.Int("layers", len(profile.Layers)))
	}

	_, err = rotate.Precompute(rotate.Config{
		Nmax:      s.Precompute.Nmax,
		Kmax:      s.Precompute.Kmax,
		Reference: frame,
		Dipole:    s.Params.Dipole,
		StepHours: s.Precompute.StepHours,
		Samples:   s.Precompute.Samples,
		Filter:    s.Precompute.Filter,
		Scaled:    s.Precompute.Scaled,
		StartDate: s.Precompute.StartDate,
		Profile:   profile,
		Workers:   s.Precompute.Workers,
		Logger:    log,
		SaveTo:    out,
	})
	return err
}
