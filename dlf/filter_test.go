package dlf

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-em/internal/testutil"
)

func testFilter() *Filter {
	base := []float64{0.25, 0.5, 1, 2, 4}

	return &Filter{
		Name:   "test",
		Base:   base,
		Factor: MeanFactor(base),
		J0:     []float64{0.1, -0.2, 0.9, -0.2, 0.1},
		J1:     []float64{0.05, 0.3, 0.7, -0.15, 0.02},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*Filter)
		want error
	}{
		{"valid", func(*Filter) {}, nil},
		{"empty base", func(f *Filter) { f.Base = nil }, ErrEmptyBase},
		{"negative base", func(f *Filter) { f.Base[0] = -1 }, ErrBaseOrder},
		{"unsorted base", func(f *Filter) { f.Base[2] = 0.3 }, ErrBaseOrder},
		{"short weights", func(f *Filter) { f.J0 = f.J0[:3] }, ErrWeightLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := testFilter()
			tt.mod(f)

			if err := f.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMeanFactor(t *testing.T) {
	t.Parallel()

	if got := MeanFactor([]float64{1, 2, 4, 8}); got != 2 {
		t.Errorf("MeanFactor() = %v, want 2", got)
	}

	if got := MeanFactor([]float64{1}); got != 0 {
		t.Errorf("MeanFactor(single) = %v, want 0", got)
	}

	// Rounded to 15 decimals.
	base := []float64{1, math.E, math.E * math.E}
	want := math.Round(math.E*1e15) / 1e15

	if got := MeanFactor(base); got != want {
		t.Errorf("MeanFactor() = %v, want %v", got, want)
	}
}

func TestNodes(t *testing.T) {
	t.Parallel()

	f := testFilter()
	got := f.Nodes(2)

	testutil.RequireSliceNearlyEqual(t, got, []float64{0.125, 0.25, 0.5, 1, 2}, 1e-15)
}

func TestWeightedSums(t *testing.T) {
	t.Parallel()

	f := testFilter()
	samples := []complex128{1, 2 + 1i, 3, 4 - 2i, 5}

	got, err := f.J0Sum(samples, 2)
	if err != nil {
		t.Fatalf("J0Sum() = %v", err)
	}

	// Hand-computed weighted sum divided by r.
	var want complex128
	for i, w := range f.J0 {
		want += samples[i] * complex(w, 0)
	}

	want /= 2

	testutil.RequireComplexNearlyEqual(t, got, want, 1e-14, 0)

	if _, err := f.SinSum(samples, 2); !errors.Is(err, ErrMissingWeight) {
		t.Errorf("SinSum() = %v, want %v", err, ErrMissingWeight)
	}

	if _, err := f.J0Sum(samples[:2], 2); !errors.Is(err, ErrWeightLength) {
		t.Errorf("J0Sum(short) = %v, want %v", err, ErrWeightLength)
	}

	if _, err := f.J0Sum(samples, 0); !errors.Is(err, ErrBadOutputR) {
		t.Errorf("J0Sum(r=0) = %v, want %v", err, ErrBadOutputR)
	}
}

func TestTransformMatchesManualSums(t *testing.T) {
	t.Parallel()

	f := testFilter()
	kernel := func(k float64) complex128 { return complex(math.Exp(-k), 0.5*k) }
	r := []float64{1, 3}

	got, err := f.HankelJ1(kernel, r)
	if err != nil {
		t.Fatalf("HankelJ1() = %v", err)
	}

	for i, ri := range r {
		samples := make([]complex128, len(f.Base))
		for n, b := range f.Base {
			samples[n] = kernel(b / ri)
		}

		want, err := f.J1Sum(samples, ri)
		if err != nil {
			t.Fatalf("J1Sum() = %v", err)
		}

		testutil.RequireComplexNearlyEqual(t, got[i], want, 1e-14, 0)
	}

	if _, err := f.FourierCos(kernel, r); !errors.Is(err, ErrMissingWeight) {
		t.Errorf("FourierCos() = %v, want %v", err, ErrMissingWeight)
	}

	if _, err := f.HankelJ0(kernel, []float64{-1}); !errors.Is(err, ErrBadOutputR) {
		t.Errorf("HankelJ0(r<0) = %v, want %v", err, ErrBadOutputR)
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got := Abs([]complex128{3 + 4i, -5, 0})
	testutil.RequireSliceNearlyEqual(t, got, []float64{5, 5, 0}, 1e-15)
}
