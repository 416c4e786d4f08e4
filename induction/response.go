package induction

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupportedOption is returned for unknown layer kinds or invalid
// numerical settings.
var ErrUnsupportedOption = errors.New("induction: unsupported option")

// Kind selects the radial conductivity dependence within a layer.
type Kind int

const (
	// Quadratic treats the conductivity of a layer as falling off with
	// the inverse square of the radius.
	Quadratic Kind = iota
	// Constant treats the conductivity as uniform per layer; the
	// innermost layer acts as a perfect conductor.
	Constant
)

// ParseKind converts a layer-kind name, case insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quadratic":
		return Quadratic, nil
	case "constant":
		return Constant, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnsupportedOption, name)
	}
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Quadratic:
		return "quadratic"
	case Constant:
		return "constant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Options tunes the response evaluation.
type Options struct {
	// SeriesEps is the truncation threshold of the small-argument
	// Bessel series (default 1e-10).
	SeriesEps float64
	// SeriesSwitch is the |k*r| bound below which the small-argument
	// series is used (default 3).
	SeriesSwitch float64
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) normalize() Options {
	if o.SeriesEps <= 0 {
		o.SeriesEps = 1e-10
	}
	if o.SeriesSwitch <= 0 {
		o.SeriesSwitch = 3
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Response holds the induction responses of one harmonic degree over a
// set of periods.
type Response struct {
	// C is the C-response in km.
	C []complex128
	// RhoA is the apparent resistivity in Ohm*m.
	RhoA []float64
	// Phase is 90 degrees plus the argument of C in degrees.
	Phase []float64
	// Q is the ratio of internal to external coefficients.
	Q []complex128
}

// Respond computes the response of a layered conductor to an inducing
// field of a single spherical harmonic degree n over the given
// oscillation periods in seconds.
func Respond(periods []float64, p *Profile, n int, kind Kind, opts Options) (*Response, error) {
	if p == nil || len(p.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidProfile)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupportedOption, n)
	}
	for i, period := range periods {
		if period <= 0 || math.IsInf(period, 0) || math.IsNaN(period) {
			return nil, fmt.Errorf("%w: period %g at index %d", ErrUnsupportedOption, period, i)
		}
	}

	opts = opts.normalize()

	var c []complex128
	var err error

	switch kind {
	case Constant:
		c, err = constantResponse(periods, p, n, opts)
	case Quadratic:
		c, err = quadraticResponse(periods, p, n)
	default:
		err = fmt.Errorf("%w: kind %v", ErrUnsupportedOption, kind)
	}
	if err != nil {
		return nil, err
	}

	r0 := p.Layers[0].RadiusKm

	resp := &Response{
		C:     c,
		RhoA:  make([]float64, len(c)),
		Phase: make([]float64, len(c)),
		Q:     make([]complex128, len(c)),
	}

	nn := complex(float64(n), 0)
	for i, ci := range c {
		resp.RhoA[i] = 8e-7 * math.Pi * math.Pi / periods[i] * sqAbs(ci*1000)
		resp.Phase[i] = 90 + cmplx.Phase(ci)*180/math.Pi
		resp.Q[i] = nn / (nn + 1) *
			(1 - (nn+1)*ci/complex(r0, 0)) / (1 + nn*ci/complex(r0, 0))
	}

	return resp, nil
}

func sqAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// constantResponse evaluates the uniform-layer conductor with the
// spherical Bessel recursion. The innermost layer is treated as a
// perfect conductor.
func constantResponse(periods []float64, p *Profile, n int, opts Options) ([]complex128, error) {
	radius := p.Radii()
	sigma := p.Sigmas()

	if len(radius) < 2 {
		return nil, fmt.Errorf("%w: constant-layer model needs at least 2 interfaces", ErrInvalidProfile)
	}

	nl := len(radius) - 2 // index of the innermost shell

	fac1 := factorial(n)
	fac2 := math.Pow(-1, float64(n)) * fac1 / float64(2*n+1)

	// parity factor (-1)^(n+1)
	parity := 1.0
	if n%2 == 0 {
		parity = -1
	}

	c := make([]complex128, len(periods))

	var z, pf, qf, pd, qd [2]complex128

	for counter, period := range periods {
		var b complex128

		for il := nl; il >= 0; il-- {
			k := cmplx.Sqrt(complex(0, 8e-7*math.Pi*math.Pi*sigma[il]/period))
			z[0] = k * complex(radius[il]*1000, 0)
			z[1] = k * complex(radius[il+1]*1000, 0)

			var v1, v2, v3, v4, v5, v6 complex128

			if cmplx.Abs(z[0]) < opts.SeriesSwitch {
				// Power series of the spherical Bessel functions
				// (Abramowitz & Stegun 10.2.4-6).
				for m := 0; m < 2; m++ {
					pf[m] = 1
					qf[m] = 1
					pd[m] = complex(float64(n), 0)
					qd[m] = complex(float64(-n-1), 0)
					zz := z[m] * z[m] / 2

					dp := complex128(1)
					dq := complex128(1)
					for j := 1; cmplx.Abs(dp) > opts.SeriesEps || cmplx.Abs(dq) > opts.SeriesEps; j++ {
						dp = dp * zz / complex(float64(j)*float64(2*j+1+2*n), 0)
						dq = dq * zz / complex(float64(j)*float64(2*j-1-2*n), 0)
						pf[m] += dp
						qf[m] += dq
						pd[m] += dp * complex(float64(2*j+n), 0)
						qd[m] += dq * complex(float64(2*j-n-1), 0)
					}

					pf[m] = pf[m] * cmplx.Pow(z[m], complex(float64(n), 0)) / complex(fac1, 0)
					qf[m] = qf[m] * cmplx.Pow(z[m], complex(float64(-n-1), 0)) * complex(fac2, 0)
					qf[m] = complex(parity*math.Pi/2, 0) * (pf[m] - qf[m])
					pd[m] = pd[m] * cmplx.Pow(z[m], complex(float64(n-1), 0)) / complex(fac1, 0)
					qd[m] = qd[m] * cmplx.Pow(z[m], complex(float64(-n-2), 0)) * complex(fac2, 0)
					qd[m] = complex(parity*math.Pi/2, 0) * (pd[m] - qd[m])
				}

				v1 = pf[1] / pf[0]
				v2 = pd[0] / pf[0]
				v3 = pd[1] / pf[0]
				v4 = qf[0] / qf[1]
				v5 = qd[0] / qf[1]
				v6 = qd[1] / qf[1]
			} else {
				// Large arguments: split off the exponential behaviour
				// (Abramowitz & Stegun 10.2.9, 10.2.15).
				var sg complex128
				for m := 0; m < 2; m++ {
					zz := 2 * z[m]
					rm := complex128(1)
					rp := complex128(1)
					rmd := complex128(1)
					rpd := complex128(1)
					d := complex128(1)
					sg = 1
					for j := 1; j <= n; j++ {
						d = d * complex(float64((n+1-j)*(n+j))/float64(j), 0) / zz
						sg = -sg
						rp += d
						rm += sg * d
						rmd += sg * d * complex(float64(j+1), 0)
						rpd += d * complex(float64(j+1), 0)
					}

					e := cmplx.Exp(-2 * z[m])
					pf[m] = (rm - sg*rp*e) / zz
					qf[m] = complex(math.Pi, 0) / zz * rp
					pd[m] = (rm+sg*rp*e)/zz - 2*(rmd-sg*rpd*e)/(zz*zz)
					qd[m] = -qf[m] - 2*complex(math.Pi, 0)*rpd/(zz*zz)
				}

				e := cmplx.Exp(-(z[0] - z[1]))
				v1 = pf[1] / pf[0] * e
				v2 = pd[0] / pf[0]
				v3 = pd[1] / pf[0] * e
				v4 = qf[0] / qf[1] * e
				v5 = qd[0] / qf[1] * e
				v6 = qd[1] / qf[1]
			}

			if il == nl {
				b = k * (v2 - v5*v1) / (1 - v4*v1)
			} else {
				b = k * ((v2-v5*v1)*b + k*(v5*v3-v2*v6)) /
					((1-v4*v1)*b + k*(v4*v3-v6))
			}
		}

		c[counter] = complex(radius[0], 0) / (1 + complex(1000*radius[0], 0)*b)

		if (counter+1)%1000 == 0 {
			opts.Logger.Debug("constant-layer response progress",
				zap.Int("done", counter+1), zap.Int("total", len(periods)))
		}
	}

	return c, nil
}

// quadraticResponse evaluates the conductor with inverse-quadratic
// layers by the admittance recursion of Kuvshinov & Semenov (2012).
func quadraticResponse(periods []float64, p *Profile, n int) ([]complex128, error) {
	layers := p.Layers
	last := len(layers) - 1

	const mu = 4 * math.Pi * 1e-7
	nph := float64(n) + 0.5

	c := make([]complex128, len(periods))

	for i, period := range periods {
		omega := complex(0, 2*math.Pi/period)

		// Innermost sphere.
		rl := layers[last].RadiusKm * 1e3
		qk := -omega * complex(mu*rl, 0)
		bk := cmplx.Sqrt(complex(nph*nph, 0) - qk*complex(layers[last].Sigma*rl, 0))
		y := -(bk + 0.5) / qk

		// Shells above the core, inside out.
		for k := last - 1; k >= 0; k-- {
			rk := layers[k].RadiusKm * 1e3
			rk1 := layers[k+1].RadiusKm * 1e3

			qk = -omega * complex(mu*rk, 0)
			bk = cmplx.Sqrt(complex(nph*nph, 0) - qk*complex(layers[k].Sigma*rk, 0))
			bkp := bk + 0.5
			bkm := bk - 0.5

			etak := rk / rk1
			zetak := cmplx.Pow(complex(etak, 0), 2*bk)

			tauk := (1 - zetak) / (1 + zetak)
			// High frequencies overflow zetak; the limit of tauk is -1.
			if cmplx.IsNaN(tauk) || cmplx.IsInf(tauk) {
				tauk = -1
			}

			qk1 := -omega * complex(mu*rk1, 0)
			qy := qk1 * y

			y = 1 / qk * (qy*(bk-0.5*tauk) + bkp*bkm*tauk) / (bk + tauk*(0.5+qy))
		}

		c[i] = 1 / (omega * complex(mu, 0) * y) / 1e3
	}

	return c, nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
