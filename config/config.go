// Package config holds the yaml-backed parameter store of the field
// tools: physical constants, file resources and precomputation
// settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for settings outside their valid range.
var ErrInvalid = errors.New("config: invalid settings")

// Settings holds all tool configuration.
type Settings struct {
	Params     ParamsConfig     `yaml:"params"`
	Files      FilesConfig      `yaml:"files"`
	Precompute PrecomputeConfig `yaml:"precompute"`
	Solver     SolverConfig     `yaml:"solver"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ParamsConfig holds physical constants.
type ParamsConfig struct {
	// RadiusSurface is the mean surface radius in km.
	RadiusSurface float64 `yaml:"r_surf"`
	// RadiusCMB is the core-mantle boundary radius in km.
	RadiusCMB float64 `yaml:"r_cmb"`
	// Dipole holds the degree-1 coefficients [g10, g11, h11] in nT.
	Dipole [3]float64 `yaml:"dipole"`
	// Ellipsoid holds the equatorial and polar radius in km.
	Ellipsoid [2]float64 `yaml:"ellipsoid"`
}

// FilesConfig holds data file resources.
type FilesConfig struct {
	// Conductivity is the path of the two-column conductivity model.
	Conductivity string `yaml:"conductivity"`
}

// PrecomputeConfig holds the spectrum precomputation settings.
type PrecomputeConfig struct {
	Nmax      int     `yaml:"nmax"`
	Kmax      int     `yaml:"kmax"`
	Reference string  `yaml:"reference"`
	StepHours float64 `yaml:"step_hours"`
	Samples   int     `yaml:"samples"`
	Filter    int     `yaml:"filter"`
	Scaled    bool    `yaml:"scaled"`
	StartDate float64 `yaml:"start_date"`
	Workers   int     `yaml:"workers"`
}

// SolverConfig holds numerical settings of the induction solver.
type SolverConfig struct {
	SeriesEps    float64 `yaml:"series_eps"`
	SeriesSwitch float64 `yaml:"series_switch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns Settings with the standard parameter values.
func Default() *Settings {
	return &Settings{
		Params: ParamsConfig{
			RadiusSurface: 6371.2,
			RadiusCMB:     3485.0,
			Dipole:        [3]float64{-29442.0, -1501.0, 4797.1},
			Ellipsoid:     [2]float64{6378.137, 6356.752},
		},
		Precompute: PrecomputeConfig{
			Nmax:      1,
			Kmax:      1,
			Reference: "gsm",
			StepHours: 1,
			Samples:   int(8 * 365.25 * 24),
		},
		Solver: SolverConfig{
			SeriesEps:    1e-10,
			SeriesSwitch: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads settings from a yaml file layered over the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return s, nil
}

// SaveTo writes the settings to a yaml file, creating parent
// directories as needed.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks the settings ranges.
func (s *Settings) Validate() error {
	if s.Params.RadiusSurface <= 0 {
		return fmt.Errorf("%w: surface radius %g km", ErrInvalid, s.Params.RadiusSurface)
	}
	if s.Params.RadiusCMB <= 0 || s.Params.RadiusCMB >= s.Params.RadiusSurface {
		return fmt.Errorf("%w: core-mantle boundary radius %g km", ErrInvalid, s.Params.RadiusCMB)
	}
	if s.Params.Ellipsoid[0] < s.Params.Ellipsoid[1] {
		return fmt.Errorf("%w: equatorial radius below polar radius", ErrInvalid)
	}
	if s.Precompute.Nmax < 1 || s.Precompute.Kmax < 1 {
		return fmt.Errorf("%w: degrees nmax %d, kmax %d", ErrInvalid,
			s.Precompute.Nmax, s.Precompute.Kmax)
	}
	if s.Precompute.StepHours <= 0 {
		return fmt.Errorf("%w: step %g hours", ErrInvalid, s.Precompute.StepHours)
	}
	if s.Precompute.Samples < 1 {
		return fmt.Errorf("%w: %d samples", ErrInvalid, s.Precompute.Samples)
	}
	if s.Solver.SeriesEps <= 0 || s.Solver.SeriesSwitch <= 0 {
		return fmt.Errorf("%w: solver eps %g, switch %g", ErrInvalid,
			s.Solver.SeriesEps, s.Solver.SeriesSwitch)
	}
	return nil
}
