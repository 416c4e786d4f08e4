package induction

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RadiusReference is the mean surface radius in km used to convert
// depths to radii.
const RadiusReference = 6371.2

// ErrInvalidProfile is returned for malformed conductivity profiles.
var ErrInvalidProfile = errors.New("induction: invalid conductivity profile")

// Layer is one spherical shell of a conductivity profile. RadiusKm is
// the radius of the shell's upper interface.
type Layer struct {
	RadiusKm float64
	Sigma    float64 // conductivity in S/m
}

// Profile is a radial conductivity model, ordered outermost shell
// first.
type Profile struct {
	Layers []Layer
}

// NewProfile validates the layer ordering and builds a profile. Radii
// must be positive and strictly decreasing; conductivities must not be
// negative.
func NewProfile(layers []Layer) (*Profile, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidProfile)
	}

	for i, l := range layers {
		if l.RadiusKm <= 0 {
			return nil, fmt.Errorf("%w: layer %d has radius %g km", ErrInvalidProfile, i, l.RadiusKm)
		}
		if l.Sigma < 0 {
			return nil, fmt.Errorf("%w: layer %d has conductivity %g S/m", ErrInvalidProfile, i, l.Sigma)
		}
		if i > 0 && l.RadiusKm >= layers[i-1].RadiusKm {
			return nil, fmt.Errorf("%w: radii must decrease strictly, layer %d has %g km after %g km",
				ErrInvalidProfile, i, l.RadiusKm, layers[i-1].RadiusKm)
		}
	}

	p := &Profile{Layers: make([]Layer, len(layers))}
	copy(p.Layers, layers)

	return p, nil
}

// Radii returns the interface radii in km, outermost first.
func (p *Profile) Radii() []float64 {
	r := make([]float64, len(p.Layers))
	for i, l := range p.Layers {
		r[i] = l.RadiusKm
	}
	return r
}

// Sigmas returns the layer conductivities in S/m, outermost first.
func (p *Profile) Sigmas() []float64 {
	s := make([]float64, len(p.Layers))
	for i, l := range p.Layers {
		s[i] = l.Sigma
	}
	return s
}

// LoadProfile reads a conductivity model from a two-column text file:
// depth below the surface in km and conductivity in S/m, one layer per
// line, shallowest first. Blank lines and lines starting with '#' are
// skipped. Depths are converted to radii with RadiusReference.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("induction: open profile: %w", err)
	}
	defer f.Close()

	var layers []Layer

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s:%d: want two columns, have %d",
				ErrInvalidProfile, path, line, len(fields))
		}

		depth, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: bad depth %q", ErrInvalidProfile, path, line, fields[0])
		}
		sigma, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: bad conductivity %q", ErrInvalidProfile, path, line, fields[1])
		}

		layers = append(layers, Layer{RadiusKm: RadiusReference - depth, Sigma: sigma})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("induction: read profile: %w", err)
	}

	return NewProfile(layers)
}
