// Package rotate builds the matrices that carry spherical harmonic
// expansions from a time-dependent magnetospheric frame (GSM, SM) into
// the geographic frame, and compresses their time series into a sparse
// Fourier representation.
//
// A single matrix maps coefficients in natural order,
//
//	[g10 g11 h11 ...]_geo = M [g10 g11 h11 ...]_gsm,
//
// and is obtained by spherical harmonic analysis of the rotated basis
// functions on a Gauss-Legendre grid. Matrix produces one instant,
// Series a stack of instants, FFT the compressed frequency-domain form
// and Synth the time-domain reconstruction. Precompute ties the steps
// together and writes the npz parameter archive.
package rotate
