package coords

import (
	"errors"
	"math"
)

// ErrPole is returned when local base vectors are requested at a
// geographic pole, where east and south are undefined.
var ErrPole = errors.New("coords: base vectors are not defined at the poles")

// BasevectorsGSM computes the GSM unit base vectors at the given mjd2000
// time, resolved into cartesian GEO components. dipole holds the
// degree-1 coefficients [g10, g11, h11].
func BasevectorsGSM(time float64, dipole [3]float64) (b1, b2, b3 Vec3, err error) {
	vec := DipoleToVec(dipole)

	thetaSun, phiSun, err := SunPosition(time)
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}

	x, y, z := SphericalToCartesian(1, thetaSun, phiSun)
	b1 = Vec3{x, y, z}

	b2 = vec.Cross(b1).Normalized()
	b3 = b1.Cross(b2)

	return b1, b2, b3, nil
}

// BasevectorsSM computes the SM unit base vectors at the given mjd2000
// time, resolved into cartesian GEO components.
func BasevectorsSM(time float64, dipole [3]float64) (b1, b2, b3 Vec3, err error) {
	vec := DipoleToVec(dipole)

	thetaSun, phiSun, err := SunPosition(time)
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}

	x, y, z := SphericalToCartesian(1, thetaSun, phiSun)
	s := Vec3{x, y, z}

	b3 = vec
	b2 = b3.Cross(s).Normalized()
	b1 = b2.Cross(b3)

	return b1, b2, b3, nil
}

// BasevectorsMAG computes the centered-dipole (MAG) unit base vectors,
// resolved into cartesian GEO components. The frame is time independent.
func BasevectorsMAG(dipole [3]float64) (b1, b2, b3 Vec3) {
	b3 = DipoleToVec(dipole)
	b2 = Vec3{0, 0, 1}.Cross(b3).Normalized()
	b1 = b2.Cross(b3)

	return b1, b2, b3
}

// BasevectorsUSE computes the local Up-South-East unit base vectors at
// colatitude theta and longitude phi (degrees), resolved into cartesian
// GEO components.
func BasevectorsUSE(thetaDeg, phiDeg float64) (up, south, east Vec3, err error) {
	theta := thetaDeg * math.Pi / 180
	phi := phiDeg * math.Pi / 180

	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	if sinTheta == 0 {
		return Vec3{}, Vec3{}, Vec3{}, ErrPole
	}

	up = Vec3{sinTheta * cosPhi, sinTheta * sinPhi, cosTheta}
	south = Vec3{cosTheta * cosPhi, cosTheta * sinPhi, -sinTheta}
	east = Vec3{-sinPhi, cosPhi, 0}

	return up, south, east, nil
}

// GeoToBase transforms spherical geographic coordinates into the rotated
// spherical coordinates described by three orthogonal unit base vectors
// (GEO cartesian components). With inverse set, it transforms from the
// rotated frame back to GEO.
func GeoToBase(thetaDeg, phiDeg float64, b1, b2, b3 Vec3, inverse bool) (thetaRef, phiRef float64) {
	x, y, z := SphericalToCartesian(1, thetaDeg, phiDeg)

	var xr, yr, zr float64

	if inverse {
		// Base vector components form the columns of the inverse matrix.
		xr = b1[0]*x + b2[0]*y + b3[0]*z
		yr = b1[1]*x + b2[1]*y + b3[1]*z
		zr = b1[2]*x + b2[2]*y + b3[2]*z
	} else {
		// Base vector components form the rows of the rotation matrix.
		xr = b1[0]*x + b1[1]*y + b1[2]*z
		yr = b2[0]*x + b2[1]*y + b2[2]*z
		zr = b3[0]*x + b3[1]*y + b3[2]*z
	}

	_, thetaRef, phiRef = CartesianToSpherical(xr, yr, zr)

	return thetaRef, phiRef
}
