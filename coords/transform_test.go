package coords

import (
	"errors"
	"math"
	"testing"
)

func TestParseFrame(t *testing.T) {
	cases := []struct {
		in   string
		want Frame
	}{
		{"gsm", FrameGSM},
		{"GSM", FrameGSM},
		{" sm ", FrameSM},
		{"Mag", FrameMAG},
	}

	for _, tc := range cases {
		got, err := ParseFrame(tc.in)
		if err != nil {
			t.Fatalf("ParseFrame(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFrame(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseFrame("geo"); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("ParseFrame(\"geo\"): err = %v, want ErrUnknownFrame", err)
	}

	for _, f := range []Frame{FrameGSM, FrameSM, FrameMAG} {
		back, err := ParseFrame(f.String())
		if err != nil || back != f {
			t.Errorf("round trip of %v failed: %v, %v", f, back, err)
		}
	}
}

func TestTransformPointsRoundTrip(t *testing.T) {
	theta := []float64{20, 90, 160}
	phi := []float64{-120, 0, 60}
	time := 1234.5

	for _, frame := range []Frame{FrameGSM, FrameSM, FrameMAG} {
		thetaRef, phiRef, err := TransformPoints(theta, phi, time, frame, DefaultDipole, false)
		if err != nil {
			t.Fatalf("%v: %v", frame, err)
		}

		thetaBack, phiBack, err := TransformPoints(thetaRef, phiRef, time, frame, DefaultDipole, true)
		if err != nil {
			t.Fatalf("%v inverse: %v", frame, err)
		}

		for i := range theta {
			if math.Abs(thetaBack[i]-theta[i]) > 1e-9 {
				t.Errorf("%v: theta[%d] round trip = %v, want %v", frame, i, thetaBack[i], theta[i])
			}
			if math.Abs(CenterAzimuth(phiBack[i]-phi[i])) > 1e-9 {
				t.Errorf("%v: phi[%d] round trip = %v, want %v", frame, i, phiBack[i], phi[i])
			}
		}
	}
}

func TestTransformPointsLengthMismatch(t *testing.T) {
	if _, _, err := TransformPoints([]float64{10}, []float64{0, 0}, 0, FrameGSM, DefaultDipole, false); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestMatrixGeoToBaseOrthogonal(t *testing.T) {
	b1, b2, b3, err := BasevectorsGSM(77.125, DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	_, _, m, err := MatrixGeoToBase(54, -10, b1, b2, b3, false)
	if err != nil {
		t.Fatal(err)
	}

	// Rows of a rotation matrix are orthonormal.
	for i := range 3 {
		for j := range 3 {
			var dot float64
			for k := range 3 {
				dot += m[i][k] * m[j][k]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-12 {
				t.Errorf("row %d . row %d = %v, want %v", i, j, dot, want)
			}
		}
	}
}

func TestMatrixGeoToBaseRadialInvariant(t *testing.T) {
	// A purely radial vector stays purely radial under the frame change.
	b1, b2, b3, err := BasevectorsSM(300.5, DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	_, _, m, err := MatrixGeoToBase(35, 120, b1, b2, b3, false)
	if err != nil {
		t.Fatal(err)
	}

	vr, vt, vp := m.MulVec(1, 0, 0)
	if math.Abs(vr-1) > 1e-12 || math.Abs(vt) > 1e-9 || math.Abs(vp) > 1e-9 {
		t.Errorf("radial vector mapped to (%v, %v, %v), want (1, 0, 0)", vr, vt, vp)
	}
}

func TestTransformVectorsRoundTrip(t *testing.T) {
	theta := []float64{40, 95, 150}
	phi := []float64{10, -75, 170}
	vr := []float64{1, -2, 0.5}
	vt := []float64{0.25, 3, -1}
	vp := []float64{-1.5, 0, 2}
	time := 98.75

	thetaRef, phiRef, wr, wt, wp, err := TransformVectors(theta, phi, vr, vt, vp, time, FrameGSM, DefaultDipole, false)
	if err != nil {
		t.Fatal(err)
	}

	// Rotation preserves vector norms.
	for i := range theta {
		got := math.Sqrt(wr[i]*wr[i] + wt[i]*wt[i] + wp[i]*wp[i])
		want := math.Sqrt(vr[i]*vr[i] + vt[i]*vt[i] + vp[i]*vp[i])
		if math.Abs(got-want) > 1e-12*want {
			t.Errorf("point %d: norm = %v, want %v", i, got, want)
		}
	}

	thetaBack, phiBack, ur, ut, up, err := TransformVectors(thetaRef, phiRef, wr, wt, wp, time, FrameGSM, DefaultDipole, true)
	if err != nil {
		t.Fatal(err)
	}

	for i := range theta {
		if math.Abs(thetaBack[i]-theta[i]) > 1e-9 {
			t.Errorf("point %d: theta = %v, want %v", i, thetaBack[i], theta[i])
		}
		if math.Abs(CenterAzimuth(phiBack[i]-phi[i])) > 1e-9 {
			t.Errorf("point %d: phi = %v, want %v", i, phiBack[i], phi[i])
		}
		if math.Abs(ur[i]-vr[i]) > 1e-9 || math.Abs(ut[i]-vt[i]) > 1e-9 || math.Abs(up[i]-vp[i]) > 1e-9 {
			t.Errorf("point %d: components (%v, %v, %v), want (%v, %v, %v)",
				i, ur[i], ut[i], up[i], vr[i], vt[i], vp[i])
		}
	}
}
