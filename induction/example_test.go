package induction_test

import (
	"fmt"

	"github.com/cwbudde/algo-geomag/induction"
)

// An insulating mantle above the core, which the constant-layer model
// treats as a perfect conductor. At very long periods the response
// approaches the static image value n/(n+1) * (rc/r0)^(2n+1).
func ExampleRespond() {
	profile, err := induction.NewProfile([]induction.Layer{
		{RadiusKm: induction.RadiusReference, Sigma: 1e-12},
		{RadiusKm: 3485, Sigma: 1},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	resp, err := induction.Respond([]float64{1e9}, profile, 1, induction.Constant, induction.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Q = %.3f\n", real(resp.Q[0]))
	// Output:
	// Q = 0.082
}
