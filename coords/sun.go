package coords

import (
	"errors"
	"math"
)

// ErrTimeRange is returned when a time falls outside the validity window
// of the solar position model.
var ErrTimeRange = errors.New("coords: time must be between 1901 and 2099")

// SunPosition computes the sun's geocentric colatitude and longitude in
// degrees at the given mjd2000 time.
//
// The model is accurate to within 0.006 degrees for the years 1901
// through 2099; times outside that window are rejected.
func SunPosition(time float64) (thetaDeg, phiDeg float64, err error) {
	const rad = math.Pi / 180

	if time/365.25 >= 99 || time/365.25 <= -99 {
		return 0, 0, ErrTimeRange
	}

	fracDay := math.Mod(time, 1)
	if fracDay < 0 {
		fracDay++
	}

	julianDate := 365*(2000-1900) + float64((2000-1901)/4) + time + 0.5

	t := julianDate / 36525
	g := math.Mod(358.475845+0.985600267*julianDate, 360)

	slong := math.Mod(279.696678+0.9856473354*julianDate, 360) +
		(1.91946-0.004789*t)*math.Sin(g*rad) + 0.020094*math.Sin(2*g*rad)
	obliq := 23.45229 - 0.0130125*t
	slp := slong - 0.005686

	sind := math.Sin(obliq*rad) * math.Sin(slp*rad)
	cosd := math.Sqrt(1 - sind*sind)

	declination := math.Atan(sind / cosd)

	rightAscension := math.Pi - math.Atan2(sind/(cosd*math.Tan(obliq*rad)),
		-math.Cos(slp*rad)/cosd)

	gmst := math.Mod(279.690983+0.9856473354*julianDate+360*fracDay+180, 360) * rad

	thetaDeg = (math.Pi/2 - declination) * 180 / math.Pi
	phiDeg = CenterAzimuth((rightAscension - gmst) * 180 / math.Pi)

	return thetaDeg, phiDeg, nil
}

// ZenithAngle computes the solar zenith angle in degrees [0, 180] at the
// given position and mjd2000 time.
func ZenithAngle(time, thetaDeg, phiDeg float64) (float64, error) {
	thetaSun, phiSun, err := SunPosition(time)
	if err != nil {
		return 0, err
	}

	const rad = math.Pi / 180

	colat := thetaSun * rad
	azim := phiSun * rad
	theta := thetaDeg * rad
	phi := phiDeg * rad

	cosZeta := math.Cos(theta)*math.Cos(colat) +
		math.Sin(theta)*math.Sin(colat)*math.Cos(azim-phi)

	// Guard against rounding pushing the cosine out of [-1, 1].
	cosZeta = math.Max(-1, math.Min(1, cosZeta))

	return math.Acos(cosZeta) * 180 / math.Pi, nil
}
