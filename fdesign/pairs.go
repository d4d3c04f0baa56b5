package fdesign

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-em/em/kernel"
	"github.com/cwbudde/algo-em/em/model"
)

// Errors returned by pair construction and validation.
var (
	ErrMissingLHS    = errors.New("fdesign: transform pair lacks a left-hand side")
	ErrMissingRHS    = errors.New("fdesign: transform pair lacks a right-hand side")
	ErrModelPairKind = errors.New("fdesign: unsupported model pair kind")
)

// Kind identifies the transform a pair belongs to and the weight slot
// of the resulting filter.
type Kind int

// Transform kinds. KindJ2 rates the J0 and J1 terms of a response
// jointly and is valid for control pairs only.
const (
	KindJ0 Kind = iota
	KindJ1
	KindJ2
	KindSin
	KindCos
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindJ0:
		return "j0"
	case KindJ1:
		return "j1"
	case KindJ2:
		return "j2"
	case KindSin:
		return "sin"
	case KindCos:
		return "cos"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Ghosh is a transform pair: a wavenumber-domain left-hand side and its
// analytically (or numerically) known space-domain right-hand side.
// The type is named after D. P. Ghosh, honouring the 1970 Ph.D. thesis
// that introduced the digital filter method to geophysics.
type Ghosh struct {
	Name string
	Kind Kind

	// LHS evaluates the wavenumber-domain side. Unused for KindJ2.
	LHS func(k []float64) []complex128

	// LHSJoint evaluates the J0- and J1-term integrands of a joint
	// pair. Only used for KindJ2.
	LHSJoint func(k []float64) (pj0, pj1 []complex128)

	// RHS evaluates the space-domain side.
	RHS func(r []float64) []complex128
}

// Validate checks that the pair carries the callbacks its kind needs.
func (g *Ghosh) Validate() error {
	if g.RHS == nil {
		return fmt.Errorf("%w (%s)", ErrMissingRHS, g.Name)
	}

	if g.Kind == KindJ2 {
		if g.LHSJoint == nil {
			return fmt.Errorf("%w (%s)", ErrMissingLHS, g.Name)
		}

		return nil
	}

	if g.LHS == nil {
		return fmt.Errorf("%w (%s)", ErrMissingLHS, g.Name)
	}

	return nil
}

func realPair(name string, kind Kind, lhs, rhs func(x float64) float64) Ghosh {
	vec := func(f func(float64) float64) func([]float64) []complex128 {
		return func(x []float64) []complex128 {
			out := make([]complex128, len(x))
			for i, v := range x {
				out[i] = complex(f(v), 0)
			}

			return out
		}
	}

	return Ghosh{Name: name, Kind: kind, LHS: vec(lhs), RHS: vec(rhs)}
}

// J01 returns the Hankel J0 pair x exp(-a x^2) <-> exp(-r^2/4a)/(2a)
// (Anderson, 1975).
func J01(a float64) Ghosh {
	return realPair("j0_1", KindJ0,
		func(x float64) float64 { return x * math.Exp(-a*x*x) },
		func(r float64) float64 { return math.Exp(-r*r/(4*a)) / (2 * a) })
}

// J02 returns the Hankel J0 pair exp(-a x) <-> 1/sqrt(r^2 + a^2)
// (Anderson, 1975).
func J02(a float64) Ghosh {
	return realPair("j0_2", KindJ0,
		func(x float64) float64 { return math.Exp(-a * x) },
		func(r float64) float64 { return 1 / math.Sqrt(r*r+a*a) })
}

// J03 returns the Hankel J0 pair x exp(-a x) <-> a/(r^2 + a^2)^1.5
// (Guptasarma and Singh, 1997).
func J03(a float64) Ghosh {
	return realPair("j0_3", KindJ0,
		func(x float64) float64 { return x * math.Exp(-a*x) },
		func(r float64) float64 { return a / math.Pow(r*r+a*a, 1.5) })
}

// J04 returns the diffusive half-space Hankel J0 pair of Chave and Cox
// (1982) for frequency f [Hz], resistivity rho [Ohm.m], and vertical
// distance z [m].
func J04(f, rho, z float64) Ghosh {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*model.Mu0*f/rho))
	az := math.Abs(z)

	return Ghosh{
		Name: "j0_4",
		Kind: KindJ0,
		LHS: func(k []float64) []complex128 {
			out := make([]complex128, len(k))
			for i, x := range k {
				beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
				out[i] = complex(x, 0) * cmplx.Exp(-beta*complex(az, 0)) / beta
			}

			return out
		},
		RHS: func(r []float64) []complex128 {
			out := make([]complex128, len(r))
			for i, b := range r {
				rr := math.Sqrt(b*b + z*z)
				out[i] = cmplx.Exp(-gam*complex(rr, 0)) / complex(rr, 0)
			}

			return out
		},
	}
}

// J05 returns the second diffusive Hankel J0 pair of Chave and Cox
// (1982).
func J05(f, rho, z float64) Ghosh {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*model.Mu0*f/rho))
	az := math.Abs(z)

	return Ghosh{
		Name: "j0_5",
		Kind: KindJ0,
		LHS: func(k []float64) []complex128 {
			out := make([]complex128, len(k))
			for i, x := range k {
				beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
				out[i] = complex(x, 0) * cmplx.Exp(-beta*complex(az, 0))
			}

			return out
		},
		RHS: func(r []float64) []complex128 {
			out := make([]complex128, len(r))
			for i, b := range r {
				rr := complex(math.Sqrt(b*b+z*z), 0)
				out[i] = complex(az, 0) * (gam*rr + 1) * cmplx.Exp(-gam*rr) / (rr * rr * rr)
			}

			return out
		},
	}
}

// J11 returns the Hankel J1 pair x^2 exp(-a x^2) <->
// r/(4a^2) exp(-r^2/4a) (Anderson, 1975).
func J11(a float64) Ghosh {
	return realPair("j1_1", KindJ1,
		func(x float64) float64 { return x * x * math.Exp(-a*x*x) },
		func(r float64) float64 { return r / (4 * a * a) * math.Exp(-r*r/(4*a)) })
}

// J12 returns the Hankel J1 pair exp(-a x) <->
// (sqrt(r^2+a^2) - a)/(r sqrt(r^2+a^2)) (Anderson, 1975).
func J12(a float64) Ghosh {
	return realPair("j1_2", KindJ1,
		func(x float64) float64 { return math.Exp(-a * x) },
		func(r float64) float64 {
			s := math.Sqrt(r*r + a*a)
			return (s - a) / (r * s)
		})
}

// J13 returns the Hankel J1 pair x exp(-a x) <-> r/(r^2 + a^2)^1.5
// (Anderson, 1975).
func J13(a float64) Ghosh {
	return realPair("j1_3", KindJ1,
		func(x float64) float64 { return x * math.Exp(-a*x) },
		func(r float64) float64 { return r / math.Pow(r*r+a*a, 1.5) })
}

// J14 returns the diffusive Hankel J1 pair of Chave and Cox (1982).
func J14(f, rho, z float64) Ghosh {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*model.Mu0*f/rho))
	az := math.Abs(z)

	return Ghosh{
		Name: "j1_4",
		Kind: KindJ1,
		LHS: func(k []float64) []complex128 {
			out := make([]complex128, len(k))
			for i, x := range k {
				beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
				out[i] = complex(x*x, 0) * cmplx.Exp(-beta*complex(az, 0)) / beta
			}

			return out
		},
		RHS: func(r []float64) []complex128 {
			out := make([]complex128, len(r))
			for i, b := range r {
				rr := complex(math.Sqrt(b*b+z*z), 0)
				out[i] = complex(b, 0) * (gam*rr + 1) * cmplx.Exp(-gam*rr) / (rr * rr * rr)
			}

			return out
		},
	}
}

// J15 returns the second diffusive Hankel J1 pair of Chave and Cox
// (1982).
func J15(f, rho, z float64) Ghosh {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*model.Mu0*f/rho))
	az := math.Abs(z)

	return Ghosh{
		Name: "j1_5",
		Kind: KindJ1,
		LHS: func(k []float64) []complex128 {
			out := make([]complex128, len(k))
			for i, x := range k {
				beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
				out[i] = complex(x*x, 0) * cmplx.Exp(-beta*complex(az, 0))
			}

			return out
		},
		RHS: func(r []float64) []complex128 {
			out := make([]complex128, len(r))
			for i, b := range r {
				rr := complex(math.Sqrt(b*b+z*z), 0)
				gr := gam * rr
				out[i] = complex(az*b, 0) * (gr*gr + 3*gr + 3) * cmplx.Exp(-gr) /
					(rr * rr * rr * rr * rr)
			}

			return out
		},
	}
}

// Sin1 returns the Fourier sine pair x exp(-a^2 x^2) <->
// sqrt(pi) r exp(-r^2/4a^2)/(4a^3) (Anderson, 1975).
func Sin1(a float64) Ghosh {
	return realPair("sin_1", KindSin,
		func(x float64) float64 { return x * math.Exp(-a*a*x*x) },
		func(r float64) float64 {
			return math.Sqrt(math.Pi) * r * math.Exp(-r*r/(4*a*a)) / (4 * a * a * a)
		})
}

// Sin2 returns the Fourier sine pair exp(-a x) <-> r/(r^2 + a^2)
// (Anderson, 1975).
func Sin2(a float64) Ghosh {
	return realPair("sin_2", KindSin,
		func(x float64) float64 { return math.Exp(-a * x) },
		func(r float64) float64 { return r / (r*r + a*a) })
}

// Sin3 returns the Fourier sine pair x/(a^2 + x^2) <-> pi exp(-a r)/2
// (Anderson, 1975).
func Sin3(a float64) Ghosh {
	return realPair("sin_3", KindSin,
		func(x float64) float64 { return x / (a*a + x*x) },
		func(r float64) float64 { return math.Pi * math.Exp(-a*r) / 2 })
}

// Cos1 returns the Fourier cosine pair exp(-a^2 x^2) <->
// sqrt(pi) exp(-r^2/4a^2)/(2a) (Anderson, 1975).
func Cos1(a float64) Ghosh {
	return realPair("cos_1", KindCos,
		func(x float64) float64 { return math.Exp(-a * a * x * x) },
		func(r float64) float64 {
			return math.Sqrt(math.Pi) * math.Exp(-r*r/(4*a*a)) / (2 * a)
		})
}

// Cos2 returns the Fourier cosine pair exp(-a x) <-> a/(r^2 + a^2)
// (Anderson, 1975).
func Cos2(a float64) Ghosh {
	return realPair("cos_2", KindCos,
		func(x float64) float64 { return math.Exp(-a * x) },
		func(r float64) float64 { return a / (r*r + a*a) })
}

// Cos3 returns the Fourier cosine pair 1/(a^2 + x^2) <->
// pi exp(-a r)/(2a) (Anderson, 1975).
func Cos3(a float64) Ghosh {
	return realPair("cos_3", KindCos,
		func(x float64) float64 { return 1 / (a*a + x*x) },
		func(r float64) float64 { return math.Pi * math.Exp(-a*r) / (2 * a) })
}

// ModelPair builds a numeric transform pair from the layered-medium
// kernel of an x-directed electric dipole in an isotropic fullspace of
// resistivity res, with vertical source-receiver distance zrec-zsrc at
// frequency freq [Hz]:
//
//   - KindJ0 rates the J0 term alone: the inline field at 45 degrees
//     azimuth, where the angle-dependent terms vanish.
//   - KindJ1 rates the J1 term alone against its closed-form transform.
//   - KindJ2 rates the J0 and J1 terms jointly: the crossline field at
//     45 degrees azimuth.
func ModelPair(kind Kind, res, zsrc, zrec, freq float64) (Ghosh, error) {
	m := &model.Model{Res: []float64{res}}
	if err := m.Validate(); err != nil {
		return Ghosh{}, err
	}

	etaH, etaV, zetaH, zetaV := m.EtaZeta(freq)
	p := &kernel.Params{
		Boundaries: m.Boundaries(),
		EtaH:       etaH,
		EtaV:       etaV,
		ZetaH:      zetaH,
		ZetaV:      zetaV,
		Layer:      0,
		Zsrc:       zsrc,
		Zrec:       zrec,
	}

	eta := etaH[0]
	gam := cmplx.Sqrt(zetaH[0] * etaH[0])
	dz := math.Abs(zrec - zsrc)
	scale := complex(1/(4*math.Pi), 0)

	wavenum := func(k []float64) (pj0, pj1 []complex128) {
		pj0, pj1, err := kernel.Wavenumber(p, k)
		if err != nil {
			// Params are fixed and valid by construction.
			panic(err)
		}

		return pj0, pj1
	}

	switch kind {
	case KindJ0:
		// Inline Exx at 45 degrees: Exx = H0[pj0 k]/(4 pi).
		return Ghosh{
			Name: "j0",
			Kind: KindJ0,
			LHS: func(k []float64) []complex128 {
				pj0, _ := wavenum(k)
				for i := range pj0 {
					pj0[i] *= complex(k[i], 0) * scale
				}

				return pj0
			},
			RHS: func(r []float64) []complex128 {
				out := make([]complex128, len(r))
				for i, b := range r {
					x := b / math.Sqrt2
					out[i] = kernel.FullspaceXX(eta, zetaH[0], x, x, dz)
				}

				return out
			},
		}, nil

	case KindJ1:
		// pj1 = -k^2 exp(-Gamma dz)/(2 eta Gamma); its J1 transform
		// has the closed form
		//   -exp(-gam R) (gam + 1/R - dz^2/R^3 - gam dz^2/R^2)/(2 eta r)
		// with R = sqrt(r^2 + dz^2).
		return Ghosh{
			Name: "j1",
			Kind: KindJ1,
			LHS: func(k []float64) []complex128 {
				_, pj1 := wavenum(k)
				return pj1
			},
			RHS: func(r []float64) []complex128 {
				out := make([]complex128, len(r))
				for i, b := range r {
					rr := math.Sqrt(b*b + dz*dz)
					cr := complex(rr, 0)
					term := gam + 1/cr - complex(dz*dz/(rr*rr*rr), 0) -
						gam*complex(dz*dz/(rr*rr), 0)
					out[i] = -cmplx.Exp(-gam*cr) * term / (2 * eta * complex(b, 0))
				}

				return out
			},
		}, nil

	case KindJ2:
		// Crossline Exy at 45 degrees:
		// Exy = (H0[pj1 k] - 2/r H1[pj1])/(4 pi).
		return Ghosh{
			Name: "j2",
			Kind: KindJ2,
			LHSJoint: func(k []float64) (lhs0, lhs1 []complex128) {
				_, pj1 := wavenum(k)
				lhs0 = make([]complex128, len(k))
				lhs1 = make([]complex128, len(k))

				for i := range pj1 {
					lhs0[i] = pj1[i] * complex(k[i], 0) * scale
					lhs1[i] = -2 * pj1[i] * scale
				}

				return lhs0, lhs1
			},
			RHS: func(r []float64) []complex128 {
				out := make([]complex128, len(r))
				for i, b := range r {
					rr := complex(math.Sqrt(b*b+dz*dz), 0)
					gr := gam * rr
					out[i] = cmplx.Exp(-gr) * (gr*gr + 3*gr + 3) * complex(b*b, 0) /
						(8 * math.Pi * eta * rr * rr * rr * rr * rr)
				}

				return out
			},
		}, nil

	default:
		return Ghosh{}, fmt.Errorf("%w: %s", ErrModelPairKind, kind)
	}
}
