// Package dlf implements digital linear filters for the numerical
// evaluation of Hankel and Fourier transform integrals,
//
//	g(r) = int_0^inf F(k) J0(k*r) dk
//	g(r) = int_0^inf F(k) J1(k*r) dk
//	g(r) = int_0^inf F(k) sin(k*r) dk
//	g(r) = int_0^inf F(k) cos(k*r) dk
//
// following the filter method introduced to geophysics by Ghosh (1970).
// A filter consists of logarithmically spaced base values b and weight
// vectors w per kernel function; the integral is approximated by
//
//	g(r) ~ sum_n F(b_n/r) * w_n / r.
//
// Filters are designed with the fdesign package and can be saved to and
// loaded from YAML files.
package dlf
