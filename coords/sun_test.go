package coords

import (
	"errors"
	"math"
	"testing"
)

func TestSunPositionDeclinationBounds(t *testing.T) {
	// Colatitude must stay within 90 deg +/- the obliquity of the
	// ecliptic over a full year.
	for day := 0; day < 366; day++ {
		theta, phi, err := SunPosition(float64(day) + 0.5)
		if err != nil {
			t.Fatalf("SunPosition(%d): %v", day, err)
		}
		if theta < 90-23.5 || theta > 90+23.5 {
			t.Errorf("day %d: colatitude %v outside solstice bounds", day, theta)
		}
		if phi <= -180 || phi > 180 {
			t.Errorf("day %d: longitude %v out of range", day, phi)
		}
	}
}

func TestSunPositionSolstices(t *testing.T) {
	// 2000-06-21 is mjd2000 172; the sun stands near its northernmost
	// declination, 2000-12-21 (day 355) near its southernmost.
	theta, _, err := SunPosition(172.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(theta-(90-23.44)) > 0.25 {
		t.Errorf("June solstice colatitude = %v, want about %v", theta, 90-23.44)
	}

	theta, _, err = SunPosition(355.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(theta-(90+23.44)) > 0.25 {
		t.Errorf("December solstice colatitude = %v, want about %v", theta, 90+23.44)
	}
}

func TestSunPositionNoonLongitude(t *testing.T) {
	// At 12:00 UT the subsolar longitude differs from the Greenwich
	// meridian only by the equation of time, which stays below 4.2 deg.
	for _, day := range []float64{10, 100, 200, 300} {
		_, phi, err := SunPosition(day + 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(phi) > 4.5 {
			t.Errorf("day %v: noon longitude = %v, want near 0", day, phi)
		}
	}
}

func TestSunPositionTimeRange(t *testing.T) {
	for _, time := range []float64{99 * 365.25, -99 * 365.25, 1e6} {
		if _, _, err := SunPosition(time); !errors.Is(err, ErrTimeRange) {
			t.Errorf("SunPosition(%v): err = %v, want ErrTimeRange", time, err)
		}
	}

	if _, _, err := SunPosition(0); err != nil {
		t.Errorf("SunPosition(0): unexpected error %v", err)
	}
}

func TestZenithAngleSubsolarPoint(t *testing.T) {
	for _, time := range []float64{0.25, 123.75, 5000.5} {
		thetaSun, phiSun, err := SunPosition(time)
		if err != nil {
			t.Fatal(err)
		}

		zeta, err := ZenithAngle(time, thetaSun, phiSun)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(zeta) > 1e-6 {
			t.Errorf("time %v: zenith angle at subsolar point = %v, want 0", time, zeta)
		}

		// The antipode sees the sun at its nadir.
		zeta, err = ZenithAngle(time, 180-thetaSun, CenterAzimuth(phiSun+180))
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(zeta-180) > 1e-6 {
			t.Errorf("time %v: zenith angle at antipode = %v, want 180", time, zeta)
		}
	}
}
