package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-em/dlf"
	"github.com/cwbudde/algo-em/em/model"
)

// Errors returned by the space-domain evaluation.
var (
	ErrDifferentLayers = errors.New("kernel: source and receiver must be in the same layer")
	ErrRecMismatch     = errors.New("kernel: receiver coordinate slices differ in length")
	ErrNoReceivers     = errors.New("kernel: at least one receiver required")
	ErrNoFrequencies   = errors.New("kernel: at least one frequency required")
	ErrBadFrequency    = errors.New("kernel: frequencies must be positive")
	ErrZeroOffset      = errors.New("kernel: zero horizontal offset")
	ErrNilFilter       = errors.New("kernel: nil Hankel filter")
)

// Survey describes a dipole source and a line of receivers at a common
// depth.
type Survey struct {
	SrcX, SrcY, SrcZ float64
	RecX, RecY       []float64
	RecZ             float64
	Freq             []float64
}

// Validate checks the survey geometry.
func (s *Survey) Validate() error {
	if len(s.RecX) == 0 {
		return ErrNoReceivers
	}

	if len(s.RecX) != len(s.RecY) {
		return ErrRecMismatch
	}

	if len(s.Freq) == 0 {
		return ErrNoFrequencies
	}

	for _, f := range s.Freq {
		if f <= 0 {
			return fmt.Errorf("%w: %v", ErrBadFrequency, f)
		}
	}

	for i := range s.RecX {
		if math.Hypot(s.RecX[i]-s.SrcX, s.RecY[i]-s.SrcY) == 0 {
			return fmt.Errorf("%w (receiver %d)", ErrZeroOffset, i)
		}
	}

	return nil
}

// Offsets returns the horizontal offsets and azimuths of the receivers
// relative to the source.
func (s *Survey) Offsets() (off, azimuth []float64) {
	off = make([]float64, len(s.RecX))
	azimuth = make([]float64, len(s.RecX))

	for i := range s.RecX {
		dx := s.RecX[i] - s.SrcX
		dy := s.RecY[i] - s.SrcY
		off[i] = math.Hypot(dx, dy)
		azimuth[i] = math.Atan2(dy, dx)
	}

	return off, azimuth
}

// Dipole computes the total space-frequency domain Exx field of the
// survey: out[i][j] is the field at Freq[i], receiver j.
func Dipole(m *model.Model, sv *Survey, filt *dlf.Filter) ([][]complex128, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := sv.Validate(); err != nil {
		return nil, err
	}

	if filt == nil {
		return nil, ErrNilFilter
	}

	if err := filt.Validate(); err != nil {
		return nil, err
	}

	lsrc := m.LayerAt(sv.SrcZ)
	if lrec := m.LayerAt(sv.RecZ); lrec != lsrc {
		return nil, fmt.Errorf("%w: src layer %d, rec layer %d", ErrDifferentLayers, lsrc, lrec)
	}

	off, azimuth := sv.Offsets()
	out := make([][]complex128, len(sv.Freq))

	for fi, freq := range sv.Freq {
		etaH, etaV, zetaH, zetaV := m.EtaZeta(freq)
		p := &Params{
			Boundaries: m.Boundaries(),
			EtaH:       etaH,
			EtaV:       etaV,
			ZetaH:      zetaH,
			ZetaV:      zetaV,
			Layer:      lsrc,
			Zsrc:       sv.SrcZ,
			Zrec:       sv.RecZ,
		}

		row := make([]complex128, len(off))

		for ri := range off {
			v, err := dipoleOne(p, filt, off[ri], azimuth[ri])
			if err != nil {
				return nil, err
			}

			row[ri] = v
		}

		out[fi] = row
	}

	return out, nil
}

// dipoleOne evaluates the total field at one offset and frequency.
func dipoleOne(p *Params, filt *dlf.Filter, off, azimuth float64) (complex128, error) {
	k := filt.Nodes(off)

	pj0, pj1, err := Wavenumber(p, k)
	if err != nil {
		return 0, err
	}

	// J0 transforms carry the extra factor k in the integrand.
	j0tot := make([]complex128, len(k))
	j0diff := make([]complex128, len(k))

	for j := range k {
		j0tot[j] = pj0[j] * complex(k[j], 0)
		j0diff[j] = pj1[j] * complex(k[j], 0)
	}

	h0tot, err := filt.J0Sum(j0tot, off)
	if err != nil {
		return 0, err
	}

	h0diff, err := filt.J0Sum(j0diff, off)
	if err != nil {
		return 0, err
	}

	h1diff, err := filt.J1Sum(pj1, off)
	if err != nil {
		return 0, err
	}

	cos2p := complex(math.Cos(2*azimuth), 0)
	e := h0tot + cos2p*(h0diff-complex(2/off, 0)*h1diff)

	return e / complex(4*math.Pi, 0), nil
}
