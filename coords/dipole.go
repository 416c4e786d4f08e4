package coords

import (
	"fmt"
	"math"
)

// Known IGRF dipole epochs.
const (
	EpochIGRF11 = "2010"
	EpochIGRF12 = "2015"
	EpochIGRF13 = "2020"
)

// DefaultDipole holds the degree-1 coefficients [g10, g11, h11] in nT of
// the IGRF-12 dipole, epoch 2015, matching the default parameter store.
var DefaultDipole = [3]float64{-29442.0, -1501.0, 4797.1}

// DipoleToVec converts degree-1 coefficients [g10, g11, h11] to the unit
// vector pointing towards the geomagnetic north pole.
func DipoleToVec(dipole [3]float64) Vec3 {
	// [g11, h11, g10] is the dipole moment direction; the pole vector is
	// its opposite.
	v := Vec3{-dipole[1], -dipole[2], -dipole[0]}
	return v.Normalized()
}

// PoleToVec converts the geomagnetic north pole position (colatitude,
// longitude in degrees) to the corresponding unit vector.
func PoleToVec(thetaDeg, phiDeg float64) Vec3 {
	x, y, z := SphericalToCartesian(1, thetaDeg, phiDeg)
	return Vec3{x, y, z}
}

// IGRFDipole returns the unit vector anti-parallel to the IGRF dipole
// for a supported epoch: "2010" (IGRF-11), "2015" (IGRF-12) or "2020"
// (IGRF-13).
func IGRFDipole(epoch string) (Vec3, error) {
	switch epoch {
	case EpochIGRF12:
		return DipoleToVec([3]float64{-29442.0, -1501.0, 4797.1}), nil
	case EpochIGRF13:
		return DipoleToVec([3]float64{-29404.8, -1450.9, 4652.5}), nil
	case EpochIGRF11:
		// Pole position as used in the original CHAOS software.
		return PoleToVec(11.32, 289.59), nil
	default:
		return Vec3{}, fmt.Errorf("coords: unsupported IGRF epoch %q", epoch)
	}
}

// DipoleTilt computes the dipole tilt angle in degrees at the given
// mjd2000 time: the angle between the Earth-Sun line and the dipole
// equatorial plane.
func DipoleTilt(time float64, dipole [3]float64) (float64, error) {
	thetaSun, phiSun, err := SunPosition(time)
	if err != nil {
		return 0, err
	}

	x, y, z := SphericalToCartesian(1, thetaSun, phiSun)
	s := Vec3{x, y, z}
	m := DipoleToVec(dipole)

	return math.Asin(s.Dot(m)) * 180 / math.Pi, nil
}

// ClockAngle computes the interplanetary magnetic field clock angle in
// degrees from the GSM y and z components.
func ClockAngle(by, bz float64) float64 {
	return math.Atan2(by, bz) * 180 / math.Pi
}

// CouplingNewell computes Newell's coupling function and the
// northward-IMF counterpart from solar wind parameters (IMF components
// in nT, solar wind speed in km/s).
func CouplingNewell(by, bz, vx float64) (eps, tau float64) {
	b := math.Hypot(by, bz)
	ca := ClockAngle(by, bz) * math.Pi / 180

	v := math.Pow(math.Abs(vx), 4.0/3) * math.Pow(b, 2.0/3)
	eps = v * math.Pow(math.Abs(math.Sin(ca/2)), 8.0/3) / 1e3
	tau = v * math.Pow(math.Cos(ca/2), 8.0/3) / 1e3

	return eps, tau
}
