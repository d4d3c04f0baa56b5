// Package kernel computes the wavenumber-domain electromagnetic response
// of a layered VTI medium for an x-directed electric dipole source and an
// x-directed electric receiver located in the same layer, together with
// its space-frequency evaluation via digital linear filters.
//
// # Formulation
//
// With depth z positive downward, angular frequency omega, per-layer
// admittances etaH/etaV and impedances zetaH/zetaV (see the model
// package), the vertical wavenumbers of the two polarization modes in
// layer i at horizontal wavenumber k are
//
//	GammaTM_i = sqrt( (etaH_i/etaV_i) k^2 + zetaH_i etaH_i )
//	GammaTE_i = sqrt( (zetaH_i/zetaV_i) k^2 + zetaH_i etaH_i )
//
// For source depth z' and receiver depth z in layer s (top boundary d_s,
// bottom boundary d_s+1, thickness ds), the mode kernels are
//
//	fTM(k) = -GammaTM_s/(2 etaH_s)  * Gtm(k, z, z')
//	fTE(k) = -zetaH_s/(2 GammaTE_s) * Gte(k, z, z')
//
// where Gtm and Gte consist of the direct wave plus four reflected
// constituents, distinguished by the propagation direction at the
// receiver (up/down) and the emission direction at the source (up/down):
//
//	G = exp(-Gamma |z-z'|)
//	  + Wu * ( su*Rm*Rp*exp(-Gamma(dm+ds)) + sd*wu*Rp*exp(-Gamma dp) ) / M
//	  + Wd * ( su*wd*Rm*exp(-Gamma dm) + sd*Rp*Rm*exp(-Gamma(dp+ds)) ) / M
//
// with dp = d_s+1 - z', dm = z' - d_s, the receiver propagators
// Wu = exp(-Gamma(d_s+1 - z)), Wd = exp(-Gamma(z - d_s)), the multiple
// bounce factor M = 1 - Rp*Rm*exp(-2 Gamma ds), and Rp/Rm the cumulative
// reflection responses of the stacks below and above layer s,
//
//	r_i = (q_next Gamma_i - q_i Gamma_next) / (q_next Gamma_i + q_i Gamma_next)
//	R_i = (r_i + R_next e^(-2 Gamma_next d_next)) / (1 + r_i R_next e^(-2 Gamma_next d_next))
//
// with q = etaH for TM and q = zetaH for TE. The TM mode couples to the
// x-directed dipole antisymmetrically at both ends (su = -sd and
// wu = -wd), the TE mode symmetrically (all +1). With sd*wd = +1 the
// direct term is positive in both modes and the TM reflected terms carry
// the signs (-Rp, +RmRp, -Rm, +RpRm).
//
// # Space-frequency assembly
//
// With offset r, azimuth phi between offset and the x-axis, and the
// Hankel integrals H0[f] = int f(k) J0(kr) k dk and
// H1[f] = int f(k) J1(kr) dk, the electric field is
//
//	Exx = 1/(4 pi) * ( H0[fTM + fTE]
//	                 + cos(2 phi) *  H0[fTM - fTE]
//	                 - cos(2 phi) * (2/r) H1[fTM - fTE] )
//
// The J1 integrand fTM - fTE vanishes for k -> 0 because the k=0 limits
// of the two modes coincide; the total field therefore needs no special
// treatment there. The mode-separated evaluation does (see the tmtemod
// package).
//
// The formulation is the same-layer special case of the general layered
// Green's functions of Hunziker, Thorbecke, and Slob (2015, Geophysics
// 80(1), F1-F18).
package kernel
