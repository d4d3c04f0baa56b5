// Package fdesign designs digital linear filters (DLF) for the Hankel
// and Fourier transforms by direct matrix inversion.
//
// A filter with base values b and weights w approximates the transform
//
//	g(r) = int_0^inf f(k) K(k r) dk  ~=  sum_n f(b_n / r) w_n / r
//
// for a kernel K (a Bessel function J0/J1 or sin/cos). Given a filter
// length n, a logarithmic spacing, and a shift, the base is fixed and
// the weights follow from a least-squares fit of known transform pairs
// (f, g) sampled on a logarithmic r range: the overdetermined system
// lhs*w = rhs is solved via QR factorization.
//
// Design searches a grid of spacing/shift combinations by brute force,
// rating each candidate filter by the smallest amplitude (or largest r)
// it resolves within a relative error bound against a set of control
// pairs, with an optional Powell refinement of the best grid point.
//
// The method follows Kong (2007) and Key (2012); the catalogue of
// theoretical transform pairs is named after Ghosh (1970), who
// introduced digital filters to geophysics.
package fdesign
