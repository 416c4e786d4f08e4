package rotate_test

import (
	"fmt"

	"github.com/cwbudde/algo-geomag/coords"
	"github.com/cwbudde/algo-geomag/rotate"
)

// Expanding in the geographic frame itself leaves the coefficients
// unchanged, so the matrix is the identity.
func ExampleMatrix() {
	m, err := rotate.Matrix(1, 1,
		coords.Vec3{1, 0, 0}, coords.Vec3{0, 1, 0}, coords.Vec3{0, 0, 1})
	if err != nil {
		fmt.Println(err)
		return
	}

	coeffs := make([]float64, 3)
	if err := m.MulVec(coeffs, []float64{-30000, -1500, 4800}); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("g10 = %.0f, g11 = %.0f, h11 = %.0f\n", coeffs[0], coeffs[1], coeffs[2])
	// Output:
	// g10 = -30000, g11 = -1500, h11 = 4800
}
