package tmtemod

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-em/dlf"
	"github.com/cwbudde/algo-em/em/kernel"
	"github.com/cwbudde/algo-em/em/model"
	"github.com/cwbudde/algo-em/fdesign"
)

// Errors returned by the mode decomposition.
var (
	ErrTooFewLayers = errors.New("tmtemod: model must have at least two layers")
)

// Contribs holds the five wavenumber-domain constituents of one mode:
// the direct wave and the four reflected terms. The reflected terms are
// named by the propagation direction at the receiver followed by the
// emission direction at the source.
type Contribs struct {
	Direct []complex128
	UU     []complex128
	UD     []complex128
	DU     []complex128
	DD     []complex128
}

// Sum returns the total mode kernel, the element-wise sum of the five
// constituents.
func (c *Contribs) Sum() []complex128 {
	out := make([]complex128, len(c.Direct))
	for j := range out {
		out[j] = c.Direct[j] + c.UU[j] + c.UD[j] + c.DU[j] + c.DD[j]
	}

	return out
}

// Response holds the five space-frequency domain constituents of one
// mode, indexed by [frequency][receiver].
type Response struct {
	Direct [][]complex128
	UU     [][]complex128
	UD     [][]complex128
	DU     [][]complex128
	DD     [][]complex128
}

// Total returns the element-wise sum of the five constituents.
func (r *Response) Total() [][]complex128 {
	out := make([][]complex128, len(r.Direct))

	for i := range out {
		row := make([]complex128, len(r.Direct[i]))
		for j := range row {
			row[j] = r.Direct[i][j] + r.UU[i][j] + r.UD[i][j] + r.DU[i][j] + r.DD[i][j]
		}

		out[i] = row
	}

	return out
}

// Config collects the tunable parts of the decomposition.
type Config struct {
	Filter *dlf.Filter
}

// Option mutates a Config.
type Option func(*Config)

// WithFilter selects the Hankel filter used for the transforms. Passing
// nil keeps the default.
func WithFilter(f *dlf.Filter) Option {
	return func(cfg *Config) {
		if f != nil {
			cfg.Filter = f
		}
	}
}

// Greenfct returns the five wavenumber-domain constituents of the TM
// and TE mode kernels at the given wavenumbers. The sums of the
// constituents equal the total mode kernels of kernel.Greenfct.
func Greenfct(p *kernel.Params, k []float64) (tm, te *Contribs, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	return modeContribs(p, k, true), modeContribs(p, k, false), nil
}

// modeContribs assembles the five constituents of one mode, each scaled
// by the mode prefactor and carried to the receiver depth.
func modeContribs(p *kernel.Params, k []float64, tm bool) *Contribs {
	var gam [][]complex128

	var q []complex128

	if tm {
		gam = kernel.GammaTM(p, k)
		q = p.EtaH
	} else {
		gam = kernel.GammaTE(p, k)
		q = p.ZetaH
	}

	gl := gam[p.Layer]
	rp, rm := kernel.Reflections(p, q, gam)
	uu, ud, du, dd := kernel.SplitFields(p, rp, rm, gl, tm)
	wu, wd := kernel.Propagators(p, gl)

	dz := math.Abs(p.Zrec - p.Zsrc)
	c := &Contribs{
		Direct: make([]complex128, len(k)),
		UU:     make([]complex128, len(k)),
		UD:     make([]complex128, len(k)),
		DU:     make([]complex128, len(k)),
		DD:     make([]complex128, len(k)),
	}

	for j := range k {
		pre := kernel.ModePrefactor(p, gl[j], tm)

		c.Direct[j] = pre * cmplx.Exp(-gl[j]*complex(dz, 0))
		c.UU[j] = pre * wu[j] * uu[j]
		c.UD[j] = pre * wu[j] * ud[j]
		c.DU[j] = pre * wd[j] * du[j]
		c.DD[j] = pre * wd[j] * dd[j]
	}

	return c
}

// Dipole computes the space-frequency domain Exx response split into TM
// and TE mode constituents: each field of the returned responses is
// indexed by [frequency][receiver]. Source and receiver must be in the
// same layer of a model with at least two layers.
func Dipole(m *model.Model, sv *kernel.Survey, opts ...Option) (tm, te *Response, err error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}

	if m.NLayers() < 2 {
		return nil, nil, ErrTooFewLayers
	}

	if err := sv.Validate(); err != nil {
		return nil, nil, err
	}

	lsrc := m.LayerAt(sv.SrcZ)
	if lrec := m.LayerAt(sv.RecZ); lrec != lsrc {
		return nil, nil, fmt.Errorf("%w: src layer %d, rec layer %d",
			kernel.ErrDifferentLayers, lsrc, lrec)
	}

	cfg := Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Filter == nil {
		cfg.Filter, err = fdesign.DefaultHankel()
		if err != nil {
			return nil, nil, fmt.Errorf("tmtemod: default filter: %w", err)
		}
	}

	off, azimuth := sv.Offsets()
	tm = newResponse(len(sv.Freq), len(off))
	te = newResponse(len(sv.Freq), len(off))

	for fi, freq := range sv.Freq {
		etaH, etaV, zetaH, zetaV := m.EtaZeta(freq)
		p := &kernel.Params{
			Boundaries: m.Boundaries(),
			EtaH:       etaH,
			EtaV:       etaV,
			ZetaH:      zetaH,
			ZetaV:      zetaV,
			Layer:      lsrc,
			Zsrc:       sv.SrcZ,
			Zrec:       sv.RecZ,
		}

		for ri := range off {
			if err := dipoleOne(p, cfg.Filter, off[ri], azimuth[ri], tm, te, fi, ri); err != nil {
				return nil, nil, err
			}
		}
	}

	return tm, te, nil
}

// dipoleOne transforms the five constituents of both modes to space for
// one offset and frequency and stores them at [fi][ri].
func dipoleOne(p *kernel.Params, filt *dlf.Filter, off, azimuth float64, tm, te *Response, fi, ri int) error {
	k := filt.Nodes(off)

	tmC, teC, err := Greenfct(p, k)
	if err != nil {
		return err
	}

	// Zero-wavenumber limits for the singularity removal.
	tm0, te0, err := Greenfct(p, []float64{0})
	if err != nil {
		return err
	}

	cos2p := math.Cos(2 * azimuth)

	for i, term := range [5]struct {
		f, f0  []complex128
		te, t0 []complex128
	}{
		{tmC.Direct, tm0.Direct, teC.Direct, te0.Direct},
		{tmC.UU, tm0.UU, teC.UU, te0.UU},
		{tmC.UD, tm0.UD, teC.UD, te0.UD},
		{tmC.DU, tm0.DU, teC.DU, te0.DU},
		{tmC.DD, tm0.DD, teC.DD, te0.DD},
	} {
		vTM, err := assembleTerm(filt, k, term.f, term.f0[0], off, cos2p, true)
		if err != nil {
			return err
		}

		vTE, err := assembleTerm(filt, k, term.te, term.t0[0], off, cos2p, false)
		if err != nil {
			return err
		}

		store(tm, i, fi, ri, vTM)
		store(te, i, fi, ri, vTE)
	}

	return nil
}

// assembleTerm carries one wavenumber-domain constituent to space. The
// J1 transform uses the integrand with its zero-wavenumber limit f0
// removed.
func assembleTerm(filt *dlf.Filter, k []float64, f []complex128, f0 complex128, off, cos2p float64, tm bool) (complex128, error) {
	j0 := make([]complex128, len(k))
	j1 := make([]complex128, len(k))

	for j := range k {
		j0[j] = f[j] * complex(k[j], 0)
		j1[j] = f[j] - f0
	}

	h0, err := filt.J0Sum(j0, off)
	if err != nil {
		return 0, err
	}

	h1, err := filt.J1Sum(j1, off)
	if err != nil {
		return 0, err
	}

	ang := complex(cos2p, 0)
	h1term := complex(2*cos2p/off, 0) * h1

	var e complex128
	if tm {
		e = (1+ang)*h0 - h1term
	} else {
		e = (1-ang)*h0 + h1term
	}

	return e / complex(4*math.Pi, 0), nil
}

func newResponse(nf, nr int) *Response {
	grid := func() [][]complex128 {
		out := make([][]complex128, nf)
		for i := range out {
			out[i] = make([]complex128, nr)
		}

		return out
	}

	return &Response{Direct: grid(), UU: grid(), UD: grid(), DU: grid(), DD: grid()}
}

func store(r *Response, term, fi, ri int, v complex128) {
	switch term {
	case 0:
		r.Direct[fi][ri] = v
	case 1:
		r.UU[fi][ri] = v
	case 2:
		r.UD[fi][ri] = v
	case 3:
		r.DU[fi][ri] = v
	case 4:
		r.DD[fi][ri] = v
	}
}
