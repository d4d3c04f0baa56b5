package fdesign

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-em/internal/testutil"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindJ0, "j0"},
		{KindJ1, "j1"},
		{KindJ2, "j2"},
		{KindSin, "sin"},
		{KindCos, "cos"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestGhoshValidate(t *testing.T) {
	t.Parallel()

	g := J01(1)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	g.LHS = nil
	if err := g.Validate(); !errors.Is(err, ErrMissingLHS) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingLHS)
	}

	g = J01(1)
	g.RHS = nil

	if err := g.Validate(); !errors.Is(err, ErrMissingRHS) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingRHS)
	}
}

func TestCataloguePairShapes(t *testing.T) {
	t.Parallel()

	pairs := []Ghosh{
		J01(1), J02(1), J03(1), J04(1, 0.3, 50), J05(1, 0.3, 50),
		J11(1), J12(1), J13(1), J14(1, 0.3, 50), J15(1, 0.3, 50),
		Sin1(1), Sin2(1), Sin3(1),
		Cos1(1), Cos2(1), Cos3(1),
	}

	x := []float64{0.01, 0.1, 1, 10}

	for _, p := range pairs {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", p.Name, err)
			continue
		}

		lhs := p.LHS(x)
		rhs := p.RHS(x)

		if len(lhs) != len(x) || len(rhs) != len(x) {
			t.Errorf("%s: lengths %d/%d, want %d", p.Name, len(lhs), len(rhs), len(x))
		}

		testutil.RequireComplexFinite(t, lhs)
		testutil.RequireComplexFinite(t, rhs)
	}
}

func TestModelPairUnsupportedKind(t *testing.T) {
	t.Parallel()

	if _, err := ModelPair(KindSin, 1, 0, 50, 1); !errors.Is(err, ErrModelPairKind) {
		t.Fatalf("ModelPair(sin) = %v, want %v", err, ErrModelPairKind)
	}
}

// The model pairs must be true transform pairs: a known-good filter has
// to map each left-hand side onto its analytic right-hand side.
func TestModelPairConsistency(t *testing.T) {
	t.Parallel()

	filt, err := DefaultHankel()
	if err != nil {
		t.Fatalf("DefaultHankel() = %v", err)
	}

	const (
		res  = 1.0
		zsrc = 0.0
		zrec = 50.0
		freq = 1.0
	)

	r := logspace(2, 3.3, 15)

	t.Run("j0", func(t *testing.T) {
		t.Parallel()

		pair, err := ModelPair(KindJ0, res, zsrc, zrec, freq)
		if err != nil {
			t.Fatalf("ModelPair() = %v", err)
		}

		want := pair.RHS(r)

		for i, ri := range r {
			got, err := filt.J0Sum(pair.LHS(filt.Nodes(ri)), ri)
			if err != nil {
				t.Fatalf("J0Sum(r=%v) = %v", ri, err)
			}

			testutil.RequireComplexNearlyEqual(t, got, want[i], 0.02, 0)
		}
	})

	t.Run("j1", func(t *testing.T) {
		t.Parallel()

		pair, err := ModelPair(KindJ1, res, zsrc, zrec, freq)
		if err != nil {
			t.Fatalf("ModelPair() = %v", err)
		}

		want := pair.RHS(r)

		for i, ri := range r {
			got, err := filt.J1Sum(pair.LHS(filt.Nodes(ri)), ri)
			if err != nil {
				t.Fatalf("J1Sum(r=%v) = %v", ri, err)
			}

			testutil.RequireComplexNearlyEqual(t, got, want[i], 0.02, 0)
		}
	})

	t.Run("j2", func(t *testing.T) {
		t.Parallel()

		pair, err := ModelPair(KindJ2, res, zsrc, zrec, freq)
		if err != nil {
			t.Fatalf("ModelPair() = %v", err)
		}

		want := pair.RHS(r)

		for i, ri := range r {
			lhs0, lhs1 := pair.LHSJoint(filt.Nodes(ri))

			v0, err := filt.J0Sum(lhs0, ri)
			if err != nil {
				t.Fatalf("J0Sum(r=%v) = %v", ri, err)
			}

			v1, err := filt.J1Sum(lhs1, ri)
			if err != nil {
				t.Fatalf("J1Sum(r=%v) = %v", ri, err)
			}

			got := v0 + v1/complex(ri, 0)
			testutil.RequireComplexNearlyEqual(t, got, want[i], 0.02, 0)
		}
	})
}

// Static limit: for vanishing frequency the j1 model pair reduces to
// the Anderson pair x exp(-a x) <-> r/(r^2 + a^2)^1.5 scaled by the
// mode prefactor.
func TestModelPairJ1StaticLimit(t *testing.T) {
	t.Parallel()

	const (
		res  = 1.0
		dz   = 50.0
		freq = 1e-8
	)

	pair, err := ModelPair(KindJ1, res, 0, dz, freq)
	if err != nil {
		t.Fatalf("ModelPair() = %v", err)
	}

	r := []float64{100, 300, 1000}
	got := pair.RHS(r)

	for i, ri := range r {
		rr := math.Sqrt(ri*ri + dz*dz)
		want := complex(-res*ri/(2*rr*rr*rr), 0)
		testutil.RequireComplexNearlyEqual(t, got[i], want, 1e-3, 0)
	}
}
