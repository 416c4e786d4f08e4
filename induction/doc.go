// Package induction computes electromagnetic induction responses of a
// radially layered conducting sphere.
//
// A conductivity profile describes the conductor as concentric shells,
// outermost first. Respond evaluates the C-, rho_a-, phase- and
// Q-response of a single harmonic degree over a set of periods, either
// treating shell conductivity as constant per layer or as falling off
// with the inverse square of the radius. QTable aggregates Q-responses
// over degrees and frequencies for weighting magnetospheric field
// spectra.
package induction
