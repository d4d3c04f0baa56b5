package kernel

import (
	"math"
	"math/cmplx"
)

// FullspaceXX returns the analytic Exx field of an x-directed electric
// dipole in a homogeneous isotropic fullspace with admittivity eta and
// impedivity zeta.  dx and dy are the horizontal source-receiver
// distances, dz the vertical one.
func FullspaceXX(eta, zeta complex128, dx, dy, dz float64) complex128 {
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	gam := cmplx.Sqrt(zeta * eta)
	gr := gam * complex(r, 0)

	xxr2 := complex(dx*dx/(r*r), 0)
	term := (gr*gr+3*gr+3)*xxr2 - (gr*gr + gr + 1)

	scale := cmplx.Exp(-gr) / complex(4*math.Pi*r*r*r, 0) / eta

	return scale * term
}
