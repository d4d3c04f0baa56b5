package fdesign

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-em/dlf"
	"github.com/cwbudde/algo-em/internal/testutil"
)

func TestRangeValues(t *testing.T) {
	t.Parallel()

	got := Fixed(0.0641).Values()
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.0641}, 0)

	got = Range{Start: 0, Stop: 1, Num: 5}.Values()
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)

	got = Range{Start: 2, Stop: 2, Num: 10}.Values()
	testutil.RequireSliceNearlyEqual(t, got, []float64{2}, 0)
}

func TestDesignRejectsJointInversionPair(t *testing.T) {
	t.Parallel()

	j2, err := ModelPair(KindJ2, 1, 0, 50, 1)
	if err != nil {
		t.Fatalf("ModelPair() = %v", err)
	}

	_, _, err = Design(51, Fixed(0.1), Fixed(-1), []Ghosh{j2})
	if !errors.Is(err, ErrJointPair) {
		t.Fatalf("Design() = %v, want %v", err, ErrJointPair)
	}
}

func TestDesignRejectsUncoveredControlKind(t *testing.T) {
	t.Parallel()

	_, _, err := Design(51, Fixed(0.1), Fixed(-1), []Ghosh{J01(1)},
		WithControl(Sin2(1)))
	if !errors.Is(err, ErrControlKind) {
		t.Fatalf("Design() = %v, want %v", err, ErrControlKind)
	}
}

func TestDesignInputValidation(t *testing.T) {
	t.Parallel()

	if _, _, err := Design(0, Fixed(0.1), Fixed(-1), []Ghosh{J01(1)}); !errors.Is(err, ErrBadLength) {
		t.Errorf("Design(n=0) = %v, want %v", err, ErrBadLength)
	}

	if _, _, err := Design(51, Fixed(0.1), Fixed(-1), nil); !errors.Is(err, ErrNoPairs) {
		t.Errorf("Design(no pairs) = %v, want %v", err, ErrNoPairs)
	}

	if _, _, err := Design(51, Fixed(0.1), Fixed(-1), []Ghosh{{Name: "empty", Kind: KindJ0}}); !errors.Is(err, ErrMissingLHS) {
		t.Errorf("Design(no lhs) = %v, want %v", err, ErrMissingLHS)
	}
}

func TestDesignFixedPoint(t *testing.T) {
	t.Parallel()

	filt, res, err := Design(201, Fixed(0.0641), Fixed(-1.2847),
		[]Ghosh{J01(5), J11(5)},
		WithName("test_201"),
	)
	if err != nil {
		t.Fatalf("Design() = %v", err)
	}

	if err := filt.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if got := len(filt.Base); got != 201 {
		t.Fatalf("len(Base) = %d, want 201", got)
	}

	if len(filt.J0) != 201 || len(filt.J1) != 201 {
		t.Fatalf("weight lengths = %d/%d, want 201", len(filt.J0), len(filt.J1))
	}

	// The base center carries the shift, consecutive ratios the spacing.
	if got, want := filt.Base[100], math.Exp(-1.2847); math.Abs(got-want) > 1e-12 {
		t.Errorf("Base[100] = %v, want %v", got, want)
	}

	if got, want := filt.Factor, math.Exp(0.0641); math.Abs(got-want) > 1e-10 {
		t.Errorf("Factor = %v, want %v", got, want)
	}

	if res.Spacing != 0.0641 || res.Shift != -1.2847 {
		t.Errorf("Result = %+v, want fixed spacing/shift", res)
	}

	if math.IsInf(res.MinValue, 0) || math.IsNaN(res.MinValue) {
		t.Errorf("MinValue = %v, want finite", res.MinValue)
	}

	// The designed filter must reproduce independent pairs it was not
	// fitted to.
	requireHankelAccuracy(t, filt, J02(1), 1, 100, 0.01)
	requireHankelAccuracy(t, filt, J13(1), 1, 100, 0.01)
}

// requireHankelAccuracy checks the filter against a theoretical pair
// over logarithmically spaced output points.
func requireHankelAccuracy(t *testing.T, filt *dlf.Filter, pair Ghosh, rmin, rmax, rtol float64) {
	t.Helper()

	r := logspace(math.Log10(rmin), math.Log10(rmax), 20)
	want := pair.RHS(r)

	for i, ri := range r {
		lhs := pair.LHS(filt.Nodes(ri))

		var got complex128

		var err error

		if pair.Kind == KindJ0 {
			got, err = filt.J0Sum(lhs, ri)
		} else {
			got, err = filt.J1Sum(lhs, ri)
		}

		if err != nil {
			t.Fatalf("%s at r=%v: %v", pair.Name, ri, err)
		}

		testutil.RequireComplexNearlyEqual(t, got, want[i], rtol, 0)
	}
}

func TestDesignGridSearch(t *testing.T) {
	t.Parallel()

	filt, res, err := Design(21,
		Range{Start: 0.2, Stop: 0.4, Num: 3},
		Range{Start: -1.5, Stop: -0.5, Num: 3},
		[]Ghosh{J01(1)},
	)
	if err != nil {
		t.Fatalf("Design() = %v", err)
	}

	if got := len(filt.J0); got != 21 {
		t.Fatalf("len(J0) = %d, want 21", got)
	}

	if len(res.Grid.Values) != 3 || len(res.Grid.Values[0]) != 3 {
		t.Fatalf("grid shape = %dx%d, want 3x3", len(res.Grid.Values), len(res.Grid.Values[0]))
	}

	// The reported best must not be beaten anywhere on the grid.
	for _, row := range res.Grid.Values {
		for _, v := range row {
			if v < res.MinValue {
				t.Errorf("grid value %v beats reported best %v", v, res.MinValue)
			}
		}
	}
}

func TestDefaultHankelCached(t *testing.T) {
	t.Parallel()

	a, err := DefaultHankel()
	if err != nil {
		t.Fatalf("DefaultHankel() = %v", err)
	}

	b, err := DefaultHankel()
	if err != nil {
		t.Fatalf("DefaultHankel() = %v", err)
	}

	if a != b {
		t.Error("DefaultHankel() not cached")
	}

	if len(a.Base) != 201 || a.Name != "hankel_201" {
		t.Errorf("unexpected default filter: %s, %d points", a.Name, len(a.Base))
	}

	requireHankelAccuracy(t, a, J03(1), 1, 100, 0.01)
}

func TestResultStringWithoutResult(t *testing.T) {
	t.Parallel()

	filt, _, err := Design(11, Fixed(0.2), Fixed(-1), []Ghosh{J01(1)})
	if err != nil {
		t.Fatalf("Design() = %v", err)
	}

	s := ResultString(filt, nil)
	for _, want := range []string{"Filter length   : 11", "Spacing", "Shift", "Base min/max"} {
		if !strings.Contains(s, want) {
			t.Errorf("ResultString missing %q in:\n%s", want, s)
		}
	}
}
