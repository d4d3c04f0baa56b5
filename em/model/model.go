// Package model holds the layered-medium description shared by the
// electromagnetic kernel and its add-ons: interface depths, per-layer
// resistivities, anisotropy and permittivity/permeability factors, and
// the frequency-dependent admittance (eta) and impedance (zeta) profiles
// derived from them.
//
// Depth increases downward. A model with n interface depths has n+1
// layers; layer 0 is the upper half-space. Internally the depth slice is
// prefixed with -Inf so that layer i spans [depth[i], depth[i+1]).
package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Physical constants (SI units).
const (
	Mu0      = 4e-7 * math.Pi  // magnetic permeability of free space [H/m]
	Epsilon0 = 8.854187817e-12 // electric permittivity of free space [F/m]
)

// Errors returned by model validation.
var (
	ErrNoLayers       = errors.New("model: at least one layer required")
	ErrLengthMismatch = errors.New("model: parameter length does not match layer count")
	ErrDepthOrder     = errors.New("model: interface depths must be strictly increasing")
	ErrNonPositive    = errors.New("model: resistivity, anisotropy, and permittivities must be positive")
)

// Model describes a layered VTI medium.
//
// Depth holds the interface depths, one fewer than the number of layers;
// an empty Depth describes a full space. All other slices are per layer.
// Aniso and the permittivity/permeability slices may be nil, in which
// case Normalize fills them with ones.
type Model struct {
	Depth  []float64 // interface depths [m], strictly increasing
	Res    []float64 // horizontal resistivities [Ohm.m]
	Aniso  []float64 // anisotropy sqrt(rho_v/rho_h), optional
	EpermH []float64 // relative horizontal electric permittivity, optional
	EpermV []float64 // relative vertical electric permittivity, optional
	MpermH []float64 // relative horizontal magnetic permeability, optional
	MpermV []float64 // relative vertical magnetic permeability, optional

	// boundaries is Depth with a leading -Inf, set by Normalize.
	boundaries []float64
}

// NLayers returns the number of layers.
func (m *Model) NLayers() int { return len(m.Res) }

// Normalize fills optional parameters with defaults and prepares the
// internal boundary slice. It must be called (directly or through
// Validate) before EtaZeta or LayerAt.
func (m *Model) Normalize() {
	n := len(m.Res)

	fill := func(s []float64) []float64 {
		if len(s) == n {
			return s
		}

		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}

		return out
	}

	m.Aniso = fill(m.Aniso)
	m.EpermH = fill(m.EpermH)
	m.EpermV = fill(m.EpermV)
	m.MpermH = fill(m.MpermH)
	m.MpermV = fill(m.MpermV)

	m.boundaries = make([]float64, 0, len(m.Depth)+1)
	m.boundaries = append(m.boundaries, math.Inf(-1))
	m.boundaries = append(m.boundaries, m.Depth...)
}

// Validate normalizes the model and checks its consistency.
func (m *Model) Validate() error {
	if len(m.Res) == 0 {
		return ErrNoLayers
	}

	if len(m.Depth) != len(m.Res)-1 {
		return fmt.Errorf("%w: %d depths for %d layers", ErrLengthMismatch, len(m.Depth), len(m.Res))
	}

	if !sort.Float64sAreSorted(m.Depth) {
		return ErrDepthOrder
	}

	for i := 1; i < len(m.Depth); i++ {
		if m.Depth[i] == m.Depth[i-1] {
			return ErrDepthOrder
		}
	}

	m.Normalize()

	for i := range m.Res {
		if m.Res[i] <= 0 || m.Aniso[i] <= 0 ||
			m.EpermH[i] <= 0 || m.EpermV[i] <= 0 ||
			m.MpermH[i] <= 0 || m.MpermV[i] <= 0 {
			return fmt.Errorf("%w (layer %d)", ErrNonPositive, i)
		}
	}

	return nil
}

// Boundaries returns the interface depths including the leading -Inf
// half-space boundary. The slice must not be modified.
func (m *Model) Boundaries() []float64 {
	if m.boundaries == nil {
		m.Normalize()
	}

	return m.boundaries
}

// LayerAt returns the index of the layer containing depth z. A point
// exactly on an interface belongs to the layer below it.
func (m *Model) LayerAt(z float64) int {
	b := m.Boundaries()
	l := 0

	for i := 1; i < len(b); i++ {
		if z >= b[i] {
			l = i
		}
	}

	return l
}

// EtaZeta assembles the per-layer admittances and impedances at the
// given frequency [Hz]:
//
//	etaH  = 1/rho + 2i*pi*f*epermH*eps0
//	etaV  = 1/(rho*aniso^2) + 2i*pi*f*epermV*eps0
//	zetaH = 2i*pi*f*mpermH*mu0
//	zetaV = 2i*pi*f*mpermV*mu0
func (m *Model) EtaZeta(freq float64) (etaH, etaV, zetaH, zetaV []complex128) {
	if m.boundaries == nil {
		m.Normalize()
	}

	n := len(m.Res)
	etaH = make([]complex128, n)
	etaV = make([]complex128, n)
	zetaH = make([]complex128, n)
	zetaV = make([]complex128, n)

	iw := complex(0, 2*math.Pi*freq)

	for i := range m.Res {
		etaH[i] = complex(1/m.Res[i], 0) + iw*complex(m.EpermH[i]*Epsilon0, 0)
		etaV[i] = complex(1/(m.Res[i]*m.Aniso[i]*m.Aniso[i]), 0) + iw*complex(m.EpermV[i]*Epsilon0, 0)
		zetaH[i] = iw * complex(m.MpermH[i]*Mu0, 0)
		zetaV[i] = iw * complex(m.MpermV[i]*Mu0, 0)
	}

	return etaH, etaV, zetaH, zetaV
}
