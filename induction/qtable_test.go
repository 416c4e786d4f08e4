package induction

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-geomag/internal/testutil"
)

func TestQTable(t *testing.T) {
	p := uniformProfile(t, 0.5, 1000, 50)

	freq := []float64{0, 1.0 / 86400, 1.0 / 3600}

	table, err := QTable(p, 3, freq, Options{})
	if err != nil {
		t.Fatalf("QTable: %v", err)
	}

	for n := 1; n <= 3; n++ {
		row := table.Row(n)
		if len(row) != len(freq) {
			t.Fatalf("degree %d: row length %d, want %d", n, len(row), len(freq))
		}
		if row[0] != 0 {
			t.Errorf("degree %d: response at zero frequency = %v, want 0", n, row[0])
		}
		for i := 1; i < len(freq); i++ {
			if row[i] == 0 {
				t.Errorf("degree %d: zero response at frequency %v", n, freq[i])
			}
		}
	}

	if table.Row(0) != nil || table.Row(4) != nil {
		t.Error("out-of-range degrees must return nil")
	}

	// Rows agree with direct single-degree evaluation.
	resp, err := Respond([]float64{86400, 3600}, p, 2, Quadratic, Options{})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexNearlyEqual(t, table.Row(2), []complex128{0, resp.Q[0], resp.Q[1]}, 1e-15)
}

func TestQTableValidation(t *testing.T) {
	p := uniformProfile(t, 1, 100, 10)

	if _, err := QTable(p, 0, []float64{1e-5}, Options{}); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("nmax 0: err = %v", err)
	}
	if _, err := QTable(nil, 1, []float64{1e-5}, Options{}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("nil profile: err = %v", err)
	}
	if _, err := QTable(p, 1, []float64{-1e-5}, Options{}); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("negative frequency: err = %v", err)
	}
	if _, err := QTable(&Profile{Layers: []Layer{{RadiusKm: -1, Sigma: 1}}}, 1, []float64{1e-5}, Options{}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("invalid layers: err = %v", err)
	}
}
