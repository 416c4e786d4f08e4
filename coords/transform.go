package coords

import (
	"errors"
	"fmt"
	"strings"
)

// Frame identifies a magnetospheric reference frame relative to GEO.
type Frame int

const (
	// FrameGSM is the geocentric solar magnetospheric frame.
	FrameGSM Frame = iota
	// FrameSM is the solar magnetic frame.
	FrameSM
	// FrameMAG is the centered-dipole frame.
	FrameMAG
)

// ErrUnknownFrame is returned by ParseFrame for unrecognized names.
var ErrUnknownFrame = errors.New("coords: unknown reference frame")

// ParseFrame converts a frame name ("gsm", "sm" or "mag", case
// insensitive) into a Frame.
func ParseFrame(name string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gsm":
		return FrameGSM, nil
	case "sm":
		return FrameSM, nil
	case "mag":
		return FrameMAG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
	}
}

// String returns the lower-case frame name.
func (f Frame) String() string {
	switch f {
	case FrameGSM:
		return "gsm"
	case FrameSM:
		return "sm"
	case FrameMAG:
		return "mag"
	default:
		return fmt.Sprintf("Frame(%d)", int(f))
	}
}

// Basevectors returns the unit base vectors of the frame at the given
// mjd2000 time, resolved into cartesian GEO components. The MAG frame
// ignores the time argument.
func (f Frame) Basevectors(time float64, dipole [3]float64) (b1, b2, b3 Vec3, err error) {
	switch f {
	case FrameGSM:
		return BasevectorsGSM(time, dipole)
	case FrameSM:
		return BasevectorsSM(time, dipole)
	case FrameMAG:
		b1, b2, b3 = BasevectorsMAG(dipole)
		return b1, b2, b3, nil
	default:
		return Vec3{}, Vec3{}, Vec3{}, fmt.Errorf("%w: %d", ErrUnknownFrame, int(f))
	}
}

// TransformPoints rotates spherical geographic coordinates into the
// given frame at a single mjd2000 time. With inverse set, the input
// coordinates are interpreted in the rotated frame and transformed back
// to GEO. The returned slices have the same length as the inputs.
func TransformPoints(thetaDeg, phiDeg []float64, time float64, frame Frame, dipole [3]float64, inverse bool) (thetaRef, phiRef []float64, err error) {
	if len(thetaDeg) != len(phiDeg) {
		return nil, nil, fmt.Errorf("coords: mismatched coordinate lengths %d and %d", len(thetaDeg), len(phiDeg))
	}

	b1, b2, b3, err := frame.Basevectors(time, dipole)
	if err != nil {
		return nil, nil, err
	}

	thetaRef = make([]float64, len(thetaDeg))
	phiRef = make([]float64, len(phiDeg))

	for i := range thetaDeg {
		thetaRef[i], phiRef[i] = GeoToBase(thetaDeg[i], phiDeg[i], b1, b2, b3, inverse)
	}

	return thetaRef, phiRef, nil
}

// Matrix3 is a 3x3 rotation matrix acting on spherical vector
// components ordered as (radial, theta, phi).
type Matrix3 [3][3]float64

// MulVec applies the matrix to spherical vector components.
func (m Matrix3) MulVec(vr, vt, vp float64) (float64, float64, float64) {
	return m[0][0]*vr + m[0][1]*vt + m[0][2]*vp,
		m[1][0]*vr + m[1][1]*vt + m[1][2]*vp,
		m[2][0]*vr + m[2][1]*vt + m[2][2]*vp
}

// MatrixGeoToBase computes the rotation matrix taking spherical vector
// components (radial, theta, phi) at the geographic point (thetaDeg,
// phiDeg) into the corresponding components at the mapped point of the
// frame spanned by the base vectors. With inverse set, the input point
// is interpreted in the rotated frame and the matrix maps its components
// back to GEO. It also returns the mapped coordinates.
func MatrixGeoToBase(thetaDeg, phiDeg float64, b1, b2, b3 Vec3, inverse bool) (thetaRef, phiRef float64, m Matrix3, err error) {
	thetaRef, phiRef = GeoToBase(thetaDeg, phiDeg, b1, b2, b3, inverse)

	upSrc, southSrc, eastSrc, err := BasevectorsUSE(thetaDeg, phiDeg)
	if err != nil {
		return 0, 0, Matrix3{}, err
	}
	upDst, southDst, eastDst, err := BasevectorsUSE(thetaRef, phiRef)
	if err != nil {
		return 0, 0, Matrix3{}, err
	}

	// Rotate the source-frame USE vectors into the destination frame.
	rot := func(v Vec3) Vec3 {
		if inverse {
			return Vec3{
				b1[0]*v[0] + b2[0]*v[1] + b3[0]*v[2],
				b1[1]*v[0] + b2[1]*v[1] + b3[1]*v[2],
				b1[2]*v[0] + b2[2]*v[1] + b3[2]*v[2],
			}
		}
		return Vec3{
			b1.Dot(v),
			b2.Dot(v),
			b3.Dot(v),
		}
	}

	src := [3]Vec3{rot(upSrc), rot(southSrc), rot(eastSrc)}
	dst := [3]Vec3{upDst, southDst, eastDst}

	for i := range 3 {
		for j := range 3 {
			m[i][j] = dst[i].Dot(src[j])
		}
	}

	return thetaRef, phiRef, m, nil
}

// TransformVectors rotates spherical vector components (radial, theta,
// phi) given at geographic points into the given frame at a single
// mjd2000 time. It returns the mapped coordinates along with the rotated
// components. With inverse set, inputs are interpreted in the rotated
// frame and transformed back to GEO.
func TransformVectors(thetaDeg, phiDeg, vr, vt, vp []float64, time float64, frame Frame, dipole [3]float64, inverse bool) (thetaRef, phiRef, wr, wt, wp []float64, err error) {
	n := len(thetaDeg)
	if len(phiDeg) != n || len(vr) != n || len(vt) != n || len(vp) != n {
		return nil, nil, nil, nil, nil, fmt.Errorf("coords: mismatched input lengths")
	}

	b1, b2, b3, err := frame.Basevectors(time, dipole)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	thetaRef = make([]float64, n)
	phiRef = make([]float64, n)
	wr = make([]float64, n)
	wt = make([]float64, n)
	wp = make([]float64, n)

	for i := range n {
		var m Matrix3
		thetaRef[i], phiRef[i], m, err = MatrixGeoToBase(thetaDeg[i], phiDeg[i], b1, b2, b3, inverse)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		wr[i], wt[i], wp[i] = m.MulVec(vr[i], vt[i], vp[i])
	}

	return thetaRef, phiRef, wr, wt, wp, nil
}
