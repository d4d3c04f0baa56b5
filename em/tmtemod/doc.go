// Package tmtemod decomposes the layered-medium Exx response of an
// x-directed electric dipole into its transverse-magnetic (TM) and
// transverse-electric (TE) mode contributions, each further split into
// the direct wave and the four reflected constituents.
//
// Source and receiver must reside in the same layer. Writing s for that
// layer and phi for the source-receiver azimuth, the total field
//
//	Exx = 1/(4 pi) * ( H0[(fTM + fTE) k]
//	                 + cos(2 phi) * H0[(fTM - fTE) k]
//	                 - 2 cos(2 phi)/r * H1[fTM - fTE] )
//
// regroups per mode as
//
//	Exx(TM) = 1/(4 pi) * ( (1 + cos 2 phi) * H0[fTM k]
//	                     - 2 cos(2 phi)/r  * H1[fTM] )
//	Exx(TE) = 1/(4 pi) * ( (1 - cos 2 phi) * H0[fTE k]
//	                     + 2 cos(2 phi)/r  * H1[fTE] )
//
// where H0 and H1 are the order-0 and order-1 Hankel transforms and
// fTM, fTE are the wavenumber-domain mode kernels of package kernel.
//
// Split into individual constituents, each H1 integrand tends to a
// finite nonzero constant as the horizontal wavenumber goes to zero, so
// a direct numerical transform of a single constituent diverges. Each
// constituent is therefore transformed with its own zero-wavenumber
// limit subtracted:
//
//	H1[f] -> H1[f - f(0)]
//
// At zero wavenumber both vertical wavenumbers collapse to
// gamma = sqrt(zeta eta) and the TM and TE prefactors coincide,
// Gamma/(2 etaH) = zetaH/(2 Gamma), so the limits of corresponding TM
// and TE constituents are equal term by term. Since the TM group enters
// with -2 cos(2 phi)/r and the TE group with +2 cos(2 phi)/r, the
// subtracted pieces cancel exactly in the recombined total, which
// therefore still matches the unsplit computation.
//
// The decomposition follows Hunziker, Thorbecke, and Slob, Geophysics
// 80(1), F1-F18, 2015.
package tmtemod
