package coords

import (
	"errors"
	"math"
	"testing"
)

func checkOrthonormal(t *testing.T, name string, b1, b2, b3 Vec3) {
	t.Helper()

	for i, v := range []Vec3{b1, b2, b3} {
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Errorf("%s: base vector %d norm = %v, want 1", name, i+1, v.Norm())
		}
	}

	if d := b1.Dot(b2); math.Abs(d) > 1e-12 {
		t.Errorf("%s: b1.b2 = %v, want 0", name, d)
	}
	if d := b2.Dot(b3); math.Abs(d) > 1e-12 {
		t.Errorf("%s: b2.b3 = %v, want 0", name, d)
	}
	if d := b1.Dot(b3); math.Abs(d) > 1e-12 {
		t.Errorf("%s: b1.b3 = %v, want 0", name, d)
	}

	cross := b1.Cross(b2)
	for i := range 3 {
		if math.Abs(cross[i]-b3[i]) > 1e-12 {
			t.Errorf("%s: b1 x b2 = %v, want %v", name, cross, b3)
			break
		}
	}
}

func TestBasevectorsOrthonormal(t *testing.T) {
	for _, time := range []float64{0, 100.25, 3650.75} {
		b1, b2, b3, err := BasevectorsGSM(time, DefaultDipole)
		if err != nil {
			t.Fatal(err)
		}
		checkOrthonormal(t, "gsm", b1, b2, b3)

		b1, b2, b3, err = BasevectorsSM(time, DefaultDipole)
		if err != nil {
			t.Fatal(err)
		}
		checkOrthonormal(t, "sm", b1, b2, b3)
	}

	b1, b2, b3 := BasevectorsMAG(DefaultDipole)
	checkOrthonormal(t, "mag", b1, b2, b3)
}

func TestBasevectorsGSMSunward(t *testing.T) {
	time := 812.375

	thetaSun, phiSun, err := SunPosition(time)
	if err != nil {
		t.Fatal(err)
	}
	x, y, z := SphericalToCartesian(1, thetaSun, phiSun)

	b1, _, _, err := BasevectorsGSM(time, DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	if d := b1.Dot(Vec3{x, y, z}); math.Abs(d-1) > 1e-12 {
		t.Errorf("gsm x-axis dot sun direction = %v, want 1", d)
	}
}

func TestBasevectorsSMDipoleAxis(t *testing.T) {
	_, _, b3, err := BasevectorsSM(42.5, DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	m := DipoleToVec(DefaultDipole)
	if d := b3.Dot(m); math.Abs(d-1) > 1e-12 {
		t.Errorf("sm z-axis dot dipole vector = %v, want 1", d)
	}
}

func TestBasevectorsUSE(t *testing.T) {
	up, south, east, err := BasevectorsUSE(90, 0)
	if err != nil {
		t.Fatal(err)
	}
	checkOrthonormal(t, "use", up, south, east)

	wantUp := Vec3{1, 0, 0}
	wantSouth := Vec3{0, 0, -1}
	wantEast := Vec3{0, 1, 0}
	for i := range 3 {
		if math.Abs(up[i]-wantUp[i]) > 1e-15 ||
			math.Abs(south[i]-wantSouth[i]) > 1e-15 ||
			math.Abs(east[i]-wantEast[i]) > 1e-15 {
			t.Fatalf("base vectors at equator: up=%v south=%v east=%v", up, south, east)
		}
	}

	if _, _, _, err := BasevectorsUSE(0, 30); !errors.Is(err, ErrPole) {
		t.Errorf("north pole: err = %v, want ErrPole", err)
	}
	if _, _, _, err := BasevectorsUSE(180, 30); !errors.Is(err, ErrPole) {
		t.Errorf("south pole: err = %v, want ErrPole", err)
	}
}

func TestGeoToBaseMAGPole(t *testing.T) {
	b1, b2, b3 := BasevectorsMAG(DefaultDipole)

	v := DipoleToVec(DefaultDipole)
	_, thetaPole, phiPole := CartesianToSpherical(v[0], v[1], v[2])

	theta, _ := GeoToBase(thetaPole, phiPole, b1, b2, b3, false)
	if theta > 1e-6 {
		t.Errorf("geomagnetic pole maps to colatitude %v, want 0", theta)
	}
}

func TestGeoToBaseRoundTrip(t *testing.T) {
	b1, b2, b3, err := BasevectorsGSM(5.25, DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	points := []struct{ theta, phi float64 }{
		{30, 45}, {90, 0}, {120, -150}, {5, 80}, {175, 179},
	}

	for _, p := range points {
		thetaRef, phiRef := GeoToBase(p.theta, p.phi, b1, b2, b3, false)
		theta, phi := GeoToBase(thetaRef, phiRef, b1, b2, b3, true)

		if math.Abs(theta-p.theta) > 1e-9 {
			t.Errorf("point (%v, %v): theta round trip = %v", p.theta, p.phi, theta)
		}
		if math.Abs(CenterAzimuth(phi-p.phi)) > 1e-9 {
			t.Errorf("point (%v, %v): phi round trip = %v", p.theta, p.phi, phi)
		}
	}
}
