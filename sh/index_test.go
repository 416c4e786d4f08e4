package sh

import "testing"

func TestNumCoeffs(t *testing.T) {
	cases := []struct{ nmax, want int }{
		{1, 3},
		{2, 8},
		{3, 15},
		{14, 224},
	}

	for _, tc := range cases {
		if got := NumCoeffs(tc.nmax); got != tc.want {
			t.Fatalf("NumCoeffs(%d) = %d, want %d", tc.nmax, got, tc.want)
		}
	}
}

func TestCoeffsNaturalOrder(t *testing.T) {
	got := Coeffs(2)
	want := []Coeff{
		{1, 0, Cos},
		{1, 1, Cos}, {1, 1, Sin},
		{2, 0, Cos},
		{2, 1, Cos}, {2, 1, Sin},
		{2, 2, Cos}, {2, 2, Sin},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDegreeMatchesEnumeration(t *testing.T) {
	const nmax = 6

	for k, c := range Coeffs(nmax) {
		if got := Degree(k); got != c.N {
			t.Fatalf("Degree(%d) = %d, want %d", k, got, c.N)
		}
	}
}
