package rotate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-geomag/coords"
	"github.com/cwbudde/algo-geomag/internal/dft"
	"github.com/cwbudde/algo-geomag/internal/gauss"
	"github.com/cwbudde/algo-geomag/sh"
)

var (
	// ErrInvalidDegree is returned when a maximum degree is not positive.
	ErrInvalidDegree = errors.New("rotate: maximum degree must be at least 1")
	// ErrShapeMismatch is returned when matrix or series dimensions
	// disagree.
	ErrShapeMismatch = errors.New("rotate: shape mismatch")
)

// Dense is a dense row-major matrix.
type Dense struct {
	Rows, Cols int
	Data       []float64
}

// NewDense allocates a zero matrix of the given dimensions.
func NewDense(rows, cols int) *Dense {
	return &Dense{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns the element at row i, column j.
func (m *Dense) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// MulVec computes dst = M*src. dst and src must not overlap.
func (m *Dense) MulVec(dst, src []float64) error {
	if len(src) != m.Cols || len(dst) != m.Rows {
		return fmt.Errorf("%w: %dx%d matrix with vectors %d and %d",
			ErrShapeMismatch, m.Rows, m.Cols, len(dst), len(src))
	}

	for i := 0; i < m.Rows; i++ {
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		var sum float64
		for j, v := range row {
			sum += v * src[j]
		}
		dst[i] = sum
	}

	return nil
}

// Matrix computes the transformation matrix for one instant. The frame
// is described by three orthogonal unit base vectors in cartesian GEO
// components. nmax is the maximum degree of the geographic expansion,
// kmax that of the rotated expansion.
func Matrix(nmax, kmax int, b1, b2, b3 coords.Vec3) (*Dense, error) {
	if nmax < 1 || kmax < 1 {
		return nil, fmt.Errorf("%w: nmax %d, kmax %d", ErrInvalidDegree, nmax, kmax)
	}

	g, err := newGrid(nmax, kmax)
	if err != nil {
		return nil, err
	}

	return g.matrix(b1, b2, b3)
}

// grid carries the quadrature setup shared by all instants of a series:
// the Gauss-Legendre colatitudes, the regular longitudes, the
// weight-scaled Legendre functions of the geographic expansion on the
// colatitude nodes and the longitude DFT plan.
type grid struct {
	nmax, kmax   int
	nTheta, nPhi int
	theta        []float64   // colatitude nodes (deg)
	phi          []float64   // longitude nodes (deg)
	norm         []float64   // inner products per (n, m), m-major within n
	pw           [][]float64 // weight-scaled Legendre functions, same layout as norm
	plan         *dft.Plan
}

func newGrid(nmax, kmax int) (*grid, error) {
	// Quadrature exact for products of the two expansions.
	nTheta := (nmax+kmax+1)/2 + 1
	nPhi := 2 * nTheta

	x, w, err := gauss.Nodes(nTheta)
	if err != nil {
		return nil, err
	}

	theta := make([]float64, nTheta)
	for i, xi := range x {
		theta[i] = math.Acos(xi) * 180 / math.Pi
	}

	phi := make([]float64, nPhi)
	for j := range phi {
		phi[j] = float64(j) * 360 / float64(nPhi)
	}

	pnm, err := sh.Legendre(nmax, theta)
	if err != nil {
		return nil, err
	}

	// Inner products of the Schmidt quasi-normalized functions and the
	// weight-scaled Legendre functions shared by every column.
	norm := make([]float64, (nmax*nmax+3*nmax)/2)
	pw := make([][]float64, len(norm))
	for n := 1; n <= nmax; n++ {
		lower := (n*n+n)/2 - 1
		norm[lower] = 2 / float64(2*n+1)
		for m := 1; m <= n; m++ {
			norm[lower+m] = 4 / float64(2*n+1)
		}
		for m := 0; m <= n; m++ {
			buf := make([]float64, nTheta)
			vecmath.MulBlock(buf, pnm.At(n, m), w)
			pw[lower+m] = buf
		}
	}

	plan, err := dft.NewPlan(nPhi)
	if err != nil {
		return nil, err
	}

	return &grid{
		nmax:   nmax,
		kmax:   kmax,
		nTheta: nTheta,
		nPhi:   nPhi,
		theta:  theta,
		phi:    phi,
		norm:   norm,
		pw:     pw,
		plan:   plan,
	}, nil
}

// matrix computes the transformation matrix for one set of base vectors.
func (g *grid) matrix(b1, b2, b3 coords.Vec3) (*Dense, error) {
	nPoints := g.nTheta * g.nPhi

	// Rotated coordinates of every grid point, row-major over
	// (colatitude, longitude).
	thetaRef := make([]float64, nPoints)
	phiRef := make([]float64, nPoints)
	for i := 0; i < g.nTheta; i++ {
		for j := 0; j < g.nPhi; j++ {
			p := i*g.nPhi + j
			thetaRef[p], phiRef[p] = coords.GeoToBase(g.theta[i], g.phi[j], b1, b2, b3, false)
		}
	}

	pnmRef, err := sh.Legendre(g.kmax, thetaRef)
	if err != nil {
		return nil, err
	}

	// Complex exponentials exp(i*l*phiRef) for l = 0..kmax.
	expRef := make([][]complex128, g.kmax+1)
	for l := range expRef {
		expRef[l] = make([]complex128, nPoints)
		for p, ph := range phiRef {
			arg := float64(l) * ph * math.Pi / 180
			expRef[l][p] = complex(math.Cos(arg), math.Sin(arg))
		}
	}

	m := NewDense(sh.NumCoeffs(g.nmax), sh.NumCoeffs(g.kmax))

	src := make([]complex128, g.nPhi)
	dst := make([]complex128, g.nPhi)
	bins := make([][]complex128, g.nTheta) // longitude spectra per colatitude
	for i := range bins {
		bins[i] = make([]complex128, g.nmax+1)
	}

	// Longitude DFT of one real-valued surface function, normalized by
	// the number of longitudes.
	analyze := func(values []float64) error {
		for i := 0; i < g.nTheta; i++ {
			for j := 0; j < g.nPhi; j++ {
				src[j] = complex(values[i*g.nPhi+j], 0)
			}
			if err := g.plan.Forward(dst, src); err != nil {
				return err
			}
			for mm := 0; mm <= g.nmax; mm++ {
				bins[i][mm] = dst[mm] / complex(float64(g.nPhi), 0)
			}
		}
		return nil
	}

	// Colatitude quadrature writing one matrix column.
	writeColumn := func(col int) {
		row := 0
		for n := 1; n <= g.nmax; n++ {
			lower := (n*n+n)/2 - 1

			var c complex128
			pw := g.pw[lower]
			for i := 0; i < g.nTheta; i++ {
				c += bins[i][0] * complex(pw[i], 0)
			}
			m.Set(row, col, real(c)/g.norm[lower])
			row++

			for mm := 1; mm <= n; mm++ {
				var c complex128
				pw := g.pw[lower+mm]
				for i := 0; i < g.nTheta; i++ {
					c += 2 * bins[i][mm] * complex(pw[i], 0)
				}
				c /= complex(g.norm[lower+mm], 0)
				m.Set(row, col, real(c))
				m.Set(row+1, col, -imag(c))
				row += 2
			}
		}
	}

	values := make([]float64, nPoints)

	col := 0
	for k := 1; k <= g.kmax; k++ {
		// Zonal harmonic of the rotated frame: purely real.
		p := pnmRef.At(k, 0)
		copy(values, p)
		if err := analyze(values); err != nil {
			return nil, err
		}
		writeColumn(col)
		col++

		for l := 1; l <= k; l++ {
			p := pnmRef.At(k, l)
			e := expRef[l]

			// Cosine part.
			for i := range values {
				values[i] = p[i] * real(e[i])
			}
			if err := analyze(values); err != nil {
				return nil, err
			}
			writeColumn(col)

			// Sine part.
			for i := range values {
				values[i] = p[i] * imag(e[i])
			}
			if err := analyze(values); err != nil {
				return nil, err
			}
			writeColumn(col + 1)

			col += 2
		}
	}

	return m, nil
}
