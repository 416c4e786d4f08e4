package coords

import (
	"math"
	"testing"
)

func TestDipoleToVecPolePosition(t *testing.T) {
	v := DipoleToVec(DefaultDipole)

	if math.Abs(v.Norm()-1) > 1e-15 {
		t.Fatalf("pole vector norm = %v, want 1", v.Norm())
	}

	_, theta, phi := CartesianToSpherical(v[0], v[1], v[2])

	// IGRF-12 epoch 2015 geomagnetic pole position.
	if math.Abs(theta-9.69) > 0.05 {
		t.Errorf("pole colatitude = %v, want about 9.69", theta)
	}
	if math.Abs(phi-(-72.6)) > 0.1 {
		t.Errorf("pole longitude = %v, want about -72.6", phi)
	}
}

func TestIGRFDipole(t *testing.T) {
	for _, epoch := range []string{EpochIGRF11, EpochIGRF12, EpochIGRF13} {
		v, err := IGRFDipole(epoch)
		if err != nil {
			t.Fatalf("IGRFDipole(%q): %v", epoch, err)
		}
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Errorf("epoch %q: norm = %v, want 1", epoch, v.Norm())
		}

		_, theta, _ := CartesianToSpherical(v[0], v[1], v[2])
		if theta > 15 {
			t.Errorf("epoch %q: pole colatitude = %v, want < 15", epoch, theta)
		}
	}

	if _, err := IGRFDipole("1995"); err == nil {
		t.Error("IGRFDipole(\"1995\"): expected error for unsupported epoch")
	}
}

func TestDipoleTiltBounds(t *testing.T) {
	// The tilt angle is bounded by the sum of the obliquity of the
	// ecliptic and the dipole colatitude.
	limit := 23.44 + 9.7 + 0.5

	for hour := 0; hour < 24*365; hour += 7 {
		tilt, err := DipoleTilt(float64(hour)/24, DefaultDipole)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(tilt) > limit {
			t.Errorf("hour %d: tilt = %v exceeds bound %v", hour, tilt, limit)
		}
	}
}

func TestClockAngle(t *testing.T) {
	cases := []struct{ by, bz, want float64 }{
		{0, 1, 0},
		{1, 0, 90},
		{0, -1, 180},
		{-1, 0, -90},
		{1, 1, 45},
	}

	for _, tc := range cases {
		if got := ClockAngle(tc.by, tc.bz); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ClockAngle(%v, %v) = %v, want %v", tc.by, tc.bz, got, tc.want)
		}
	}
}

func TestCouplingNewell(t *testing.T) {
	// Purely northward IMF drives no merging.
	eps, tau := CouplingNewell(0, 5, -400)
	if eps != 0 {
		t.Errorf("northward IMF: eps = %v, want 0", eps)
	}
	if tau <= 0 {
		t.Errorf("northward IMF: tau = %v, want > 0", tau)
	}

	// Purely southward IMF drives no northward coupling.
	eps, tau = CouplingNewell(0, -5, -400)
	want := math.Pow(400, 4.0/3) * math.Pow(5, 2.0/3) / 1e3
	if math.Abs(eps-want) > 1e-9*want {
		t.Errorf("southward IMF: eps = %v, want %v", eps, want)
	}
	if tau > 1e-12 {
		t.Errorf("southward IMF: tau = %v, want about 0", tau)
	}
}
