// Package sh implements real spherical harmonic analysis on the sphere.
//
// Coefficient vectors follow the natural order used throughout this
// module: degrees n = 1..nmax, and within each degree the order-0 term
// followed by (cosine, sine) pairs for orders m = 1..n. A full expansion
// to degree nmax therefore has nmax*(nmax+2) coefficients, the first
// three being g10, g11 and h11.
//
// Associated Legendre functions use the Schmidt quasi-normalization
// conventional in geomagnetism. Analysis combines a longitude DFT with
// Gauss-Legendre quadrature in colatitude; the grid density is chosen by
// the caller through the resolution degree, and an under-resolved input
// aliases energy into low degrees rather than failing (see Analyze).
package sh
