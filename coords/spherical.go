package coords

import "math"

// Vec3 is a cartesian vector in GEO components.
type Vec3 [3]float64

// Dot returns the scalar product with w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product with w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// SphericalToCartesian converts radius, colatitude and longitude
// (degrees) to cartesian coordinates.
func SphericalToCartesian(radius, thetaDeg, phiDeg float64) (x, y, z float64) {
	theta := thetaDeg * math.Pi / 180
	phi := phiDeg * math.Pi / 180

	sinTheta := math.Sin(theta)

	x = radius * math.Cos(phi) * sinTheta
	y = radius * math.Sin(phi) * sinTheta
	z = radius * math.Cos(theta)

	return x, y, z
}

// CartesianToSpherical converts cartesian coordinates to radius,
// colatitude in [0, 180] and longitude in (-180, 180] (degrees).
func CartesianToSpherical(x, y, z float64) (radius, thetaDeg, phiDeg float64) {
	radius = math.Sqrt(x*x + y*y + z*z)
	thetaDeg = math.Atan2(math.Hypot(x, y), z) * 180 / math.Pi
	phiDeg = math.Atan2(y, x) * 180 / math.Pi

	return radius, thetaDeg, phiDeg
}

// CenterAzimuth projects an azimuth in degrees onto (-180, 180].
func CenterAzimuth(phiDeg float64) float64 {
	phi := math.Mod(phiDeg, 360)
	if phi < 0 {
		phi += 360
	}

	if phi > 180 {
		phi -= 360
	}

	return phi
}

// LocalTime returns the local time in hours [0, 24) at longitude phiDeg
// for the given mjd2000 time.
func LocalTime(time, phiDeg float64) float64 {
	frac := math.Mod(time+phiDeg/360, 1)
	if frac < 0 {
		frac++
	}

	return frac * 24
}
