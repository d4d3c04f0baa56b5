package kernel

import (
	"errors"
	"math"
	"math/cmplx"
)

// Errors returned by the wavenumber-domain routines.
var (
	ErrLayerRange    = errors.New("kernel: layer index out of range")
	ErrDepthMismatch = errors.New("kernel: boundary and parameter lengths disagree")
	ErrOutsideLayer  = errors.New("kernel: source or receiver depth outside its layer")
)

// Params bundles the single-frequency wavenumber-domain inputs shared by
// the kernel routines. Boundaries holds the interface depths including
// the leading -Inf half-space boundary (model.Boundaries), and the
// eta/zeta slices are per layer at one frequency (model.EtaZeta).
type Params struct {
	Boundaries []float64
	EtaH, EtaV []complex128
	ZetaH      []complex128
	ZetaV      []complex128
	Layer      int     // layer containing both source and receiver
	Zsrc, Zrec float64 // source and receiver depths
}

// Validate checks the consistency of the parameter set.
func (p *Params) Validate() error {
	n := len(p.EtaH)
	if len(p.Boundaries) != n || len(p.EtaV) != n || len(p.ZetaH) != n || len(p.ZetaV) != n {
		return ErrDepthMismatch
	}

	if p.Layer < 0 || p.Layer >= n {
		return ErrLayerRange
	}

	for _, z := range []float64{p.Zsrc, p.Zrec} {
		if z < p.Boundaries[p.Layer] {
			return ErrOutsideLayer
		}

		if p.Layer < n-1 && z > p.Boundaries[p.Layer+1] {
			return ErrOutsideLayer
		}
	}

	return nil
}

func (p *Params) nLayers() int { return len(p.EtaH) }

// hasAbove reports whether the layer has a finite upper boundary.
func (p *Params) hasAbove() bool { return p.Layer > 0 }

// hasBelow reports whether the layer has a finite lower boundary.
func (p *Params) hasBelow() bool { return p.Layer < p.nLayers()-1 }

// thickness returns the thickness of layer i. It is only meaningful for
// layers with two finite boundaries.
func (p *Params) thickness(i int) float64 {
	return p.Boundaries[i+1] - p.Boundaries[i]
}

// GammaTM returns the TM-mode vertical wavenumbers per layer at the
// given horizontal wavenumbers: gam[i][j] for layer i and k[j].
func GammaTM(p *Params, k []float64) [][]complex128 {
	return gamma(p.EtaH, p.EtaV, p.ZetaH, p.EtaH, k)
}

// GammaTE returns the TE-mode vertical wavenumbers per layer.
func GammaTE(p *Params, k []float64) [][]complex128 {
	return gamma(p.ZetaH, p.ZetaV, p.ZetaH, p.EtaH, k)
}

// gamma computes sqrt((aH/aV) k^2 + zetaH*etaH) per layer. The principal
// square root keeps Re(gamma) >= 0, so downward/upward propagators decay.
func gamma(aH, aV, zetaH, etaH []complex128, k []float64) [][]complex128 {
	out := make([][]complex128, len(aH))

	for i := range aH {
		ratio := aH[i] / aV[i]
		ze := zetaH[i] * etaH[i]
		row := make([]complex128, len(k))

		for j, kj := range k {
			row[j] = cmplx.Sqrt(ratio*complex(kj*kj, 0) + ze)
		}

		out[i] = row
	}

	return out
}

// Reflections returns the cumulative reflection responses of the layer
// stacks below (rp) and above (rm) the source/receiver layer, one value
// per wavenumber. The impedance contrast slice q is etaH for the TM mode
// and zetaH for the TE mode. Half-space layers return zeros.
func Reflections(p *Params, q []complex128, gam [][]complex128) (rp, rm []complex128) {
	nk := len(gam[0])
	n := p.nLayers()
	s := p.Layer

	rp = make([]complex128, nk)
	rm = make([]complex128, nk)

	// Stack below: recurse from the deepest interface up to layer s.
	if s < n-1 {
		for j := 0; j < nk; j++ {
			var acc complex128

			for i := n - 2; i >= s; i-- {
				r := localReflection(q[i+1], gam[i][j], q[i], gam[i+1][j])

				if i == n-2 {
					acc = r
					continue
				}

				e := cmplx.Exp(-2 * gam[i+1][j] * complex(p.thickness(i+1), 0))
				acc = (r + acc*e) / (1 + r*acc*e)
			}

			rp[j] = acc
		}
	}

	// Stack above: recurse from the shallowest interface down to layer s.
	if s > 0 {
		for j := 0; j < nk; j++ {
			var acc complex128

			for i := 1; i <= s; i++ {
				r := localReflection(q[i-1], gam[i][j], q[i], gam[i-1][j])

				if i == 1 {
					acc = r
					continue
				}

				e := cmplx.Exp(-2 * gam[i-1][j] * complex(p.thickness(i-1), 0))
				acc = (r + acc*e) / (1 + r*acc*e)
			}

			rm[j] = acc
		}
	}

	return rp, rm
}

// localReflection is the two-media reflection coefficient
// (qb*ga - qa*gb) / (qb*ga + qa*gb) seen from medium a toward medium b.
func localReflection(qb, ga, qa, gb complex128) complex128 {
	num := qb*ga - qa*gb

	den := qb*ga + qa*gb
	if den == 0 {
		return 0
	}

	return num / den
}

// Fields returns the up- and downgoing field amplitudes at receiver
// depth, before application of the receiver propagators. The tm flag
// selects the antisymmetric source/receiver coupling of the TM mode.
func Fields(p *Params, rp, rm []complex128, gamLayer []complex128, tm bool) (pu, pd []complex128) {
	puUU, puUD, pdDU, pdDD := SplitFields(p, rp, rm, gamLayer, tm)

	nk := len(gamLayer)
	pu = make([]complex128, nk)
	pd = make([]complex128, nk)

	for j := 0; j < nk; j++ {
		pu[j] = puUU[j] + puUD[j]
		pd[j] = pdDU[j] + pdDD[j]
	}

	return pu, pd
}

// SplitFields returns the four reflected constituents separately: uu and
// du left the source upward, ud and dd downward; u/d prefixes give the
// propagation direction at the receiver.
func SplitFields(p *Params, rp, rm []complex128, gamLayer []complex128, tm bool) (uu, ud, du, dd []complex128) {
	nk := len(gamLayer)
	uu = make([]complex128, nk)
	ud = make([]complex128, nk)
	du = make([]complex128, nk)
	dd = make([]complex128, nk)

	s := p.Layer

	// TM: source emits up/down with opposite sign and the receiver
	// couples to up-/downgoing waves with opposite sign. Terms with one
	// reflection flip sign, terms with two keep it.
	one := complex128(1)
	sgn := one
	if tm {
		sgn = -1
	}

	switch {
	case !p.hasBelow() && !p.hasAbove():
		// Full space: no reflected constituents.
		return uu, ud, du, dd

	case !p.hasAbove():
		// Top half-space: only the bottom interface reflects.
		dp := p.Boundaries[s+1] - p.Zsrc
		for j := 0; j < nk; j++ {
			ud[j] = sgn * rp[j] * cmplx.Exp(-gamLayer[j]*complex(dp, 0))
		}

		return uu, ud, du, dd

	case !p.hasBelow():
		// Bottom half-space: only the top interface reflects.
		dm := p.Zsrc - p.Boundaries[s]
		for j := 0; j < nk; j++ {
			du[j] = sgn * rm[j] * cmplx.Exp(-gamLayer[j]*complex(dm, 0))
		}

		return uu, ud, du, dd
	}

	ds := p.thickness(s)
	dp := p.Boundaries[s+1] - p.Zsrc
	dm := p.Zsrc - p.Boundaries[s]

	for j := 0; j < nk; j++ {
		g := gamLayer[j]
		m := one - rp[j]*rm[j]*cmplx.Exp(-2*g*complex(ds, 0))

		uu[j] = rm[j] * rp[j] * cmplx.Exp(-g*complex(dm+ds, 0)) / m
		ud[j] = sgn * rp[j] * cmplx.Exp(-g*complex(dp, 0)) / m
		du[j] = sgn * rm[j] * cmplx.Exp(-g*complex(dm, 0)) / m
		dd[j] = rp[j] * rm[j] * cmplx.Exp(-g*complex(dp+ds, 0)) / m
	}

	return uu, ud, du, dd
}

// Propagators returns the receiver-side propagators wu and wd that carry
// the up- and downgoing amplitudes from the layer boundaries to the
// receiver depth. Half-space layers get a zero propagator on the open
// side.
func Propagators(p *Params, gamLayer []complex128) (wu, wd []complex128) {
	nk := len(gamLayer)
	wu = make([]complex128, nk)
	wd = make([]complex128, nk)

	if p.hasBelow() {
		d := p.Boundaries[p.Layer+1] - p.Zrec
		for j := 0; j < nk; j++ {
			wu[j] = cmplx.Exp(-gamLayer[j] * complex(d, 0))
		}
	}

	if p.hasAbove() {
		d := p.Zrec - p.Boundaries[p.Layer]
		for j := 0; j < nk; j++ {
			wd[j] = cmplx.Exp(-gamLayer[j] * complex(d, 0))
		}
	}

	return wu, wd
}

// Greenfct returns the total TM- and TE-mode kernels fTM and fTE at the
// given wavenumbers, including the mode prefactors and the direct wave.
func Greenfct(p *Params, k []float64) (gtm, gte []complex128, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	gtm = modeKernel(p, k, true)
	gte = modeKernel(p, k, false)

	return gtm, gte, nil
}

// modeKernel assembles one mode: direct + propagated reflected terms,
// scaled by the mode prefactor.
func modeKernel(p *Params, k []float64, tm bool) []complex128 {
	var gam [][]complex128

	var q []complex128

	if tm {
		gam = GammaTM(p, k)
		q = p.EtaH
	} else {
		gam = GammaTE(p, k)
		q = p.ZetaH
	}

	gl := gam[p.Layer]
	rp, rm := Reflections(p, q, gam)
	pu, pd := Fields(p, rp, rm, gl, tm)
	wu, wd := Propagators(p, gl)

	dz := math.Abs(p.Zrec - p.Zsrc)
	out := make([]complex128, len(k))

	for j := range k {
		green := cmplx.Exp(-gl[j]*complex(dz, 0)) + wu[j]*pu[j] + wd[j]*pd[j]
		out[j] = ModePrefactor(p, gl[j], tm) * green
	}

	return out
}

// ModePrefactor is -GammaTM/(2 etaH) for TM and -zetaH/(2 GammaTE) for TE,
// in the source/receiver layer.
func ModePrefactor(p *Params, gamLayer complex128, tm bool) complex128 {
	if tm {
		return -gamLayer / (2 * p.EtaH[p.Layer])
	}

	return -p.ZetaH[p.Layer] / (2 * gamLayer)
}

// Wavenumber returns the angle-independent and angle-dependent total
// field integrands: pj0 = fTM + fTE enters the J0 transform directly,
// pj1 = fTM - fTE enters both the cos(2 phi) J0 term and the J1 term.
func Wavenumber(p *Params, k []float64) (pj0, pj1 []complex128, err error) {
	gtm, gte, err := Greenfct(p, k)
	if err != nil {
		return nil, nil, err
	}

	pj0 = make([]complex128, len(k))
	pj1 = make([]complex128, len(k))

	for j := range k {
		pj0[j] = gtm[j] + gte[j]
		pj1[j] = gtm[j] - gte[j]
	}

	return pj0, pj1, nil
}
