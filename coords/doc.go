// Package coords provides the coordinate geometry used by the spherical
// harmonic rotation machinery: spherical/cartesian conversions, the
// sun's position, geomagnetic dipole vectors, and the unit base vectors
// of the rotated reference frames.
//
// Frames:
//
//	GEO - geographic, Earth-centered Earth-fixed; z along the rotation
//	      axis, x towards Greenwich.
//	GSM - geocentric solar magnetospheric; x towards the sun, y normal
//	      to the plane of the Earth-Sun line and the dipole axis.
//	SM  - solar magnetic; z along the dipole axis, y normal to the plane
//	      of the dipole axis and the Earth-Sun line.
//	MAG - centered dipole; z towards the geomagnetic north pole, x in
//	      the plane of dipole and rotation axis.
//	USE - local Up-South-East frame on the sphere.
//
// All angles are degrees: colatitude in [0, 180], longitude centered on
// the prime meridian in (-180, 180]. Time is given as mjd2000, days
// since 0h00 January 1, 2000.
package coords
