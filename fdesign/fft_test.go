package fdesign

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-em/internal/testutil"
)

func TestFourierFFTReferenceBadGrid(t *testing.T) {
	t.Parallel()

	kernel := func(w float64) complex128 { return complex(math.Exp(-w), 0) }

	if _, _, _, err := FourierFFTReference(kernel, 1, 0.01); !errors.Is(err, ErrBadFFTGrid) {
		t.Errorf("FourierFFTReference(n=1) = %v, want %v", err, ErrBadFFTGrid)
	}

	if _, _, _, err := FourierFFTReference(kernel, 1024, 0); !errors.Is(err, ErrBadFFTGrid) {
		t.Errorf("FourierFFTReference(dw=0) = %v, want %v", err, ErrBadFFTGrid)
	}
}

// The FFT reference must reproduce the analytic sine and cosine
// transforms of exp(-w): t/(1+t^2) and 1/(1+t^2).
func TestFourierFFTReferenceExpKernel(t *testing.T) {
	t.Parallel()

	const (
		n  = 16384
		dw = 0.01
	)

	kernel := func(w float64) complex128 { return complex(math.Exp(-w), 0) }

	tv, sinT, cosT, err := FourierFFTReference(kernel, n, dw)
	if err != nil {
		t.Fatalf("FourierFFTReference() = %v", err)
	}

	if len(tv) != n/2 || len(sinT) != n/2 || len(cosT) != n/2 {
		t.Fatalf("lengths = %d/%d/%d, want %d", len(tv), len(sinT), len(cosT), n/2)
	}

	if tv[0] != 0 {
		t.Fatalf("t[0] = %v, want 0", tv[0])
	}

	for k := 5; k <= 100; k += 5 {
		tk := tv[k]
		wantSin := complex(tk/(1+tk*tk), 0)
		wantCos := complex(1/(1+tk*tk), 0)

		testutil.RequireComplexNearlyEqual(t, sinT[k], wantSin, 1e-3, 1e-6)
		testutil.RequireComplexNearlyEqual(t, cosT[k], wantCos, 1e-3, 1e-6)
	}
}

// Cross-check a designed Fourier sine/cosine filter against the FFT
// reference on the same kernel.
func TestDesignedFourierFilterAgainstFFT(t *testing.T) {
	t.Parallel()

	filt, _, err := Design(81, Fixed(0.12), Fixed(-1.1),
		[]Ghosh{Sin2(1), Cos2(1)})
	if err != nil {
		t.Fatalf("Design() = %v", err)
	}

	kernel := func(w float64) complex128 { return complex(math.Exp(-w), 0) }

	tv, sinT, cosT, err := FourierFFTReference(kernel, 16384, 0.01)
	if err != nil {
		t.Fatalf("FourierFFTReference() = %v", err)
	}

	for k := 20; k <= 60; k += 10 {
		lhs := make([]complex128, len(filt.Base))
		for j, b := range filt.Base {
			lhs[j] = kernel(b / tv[k])
		}

		gotSin, err := filt.SinSum(lhs, tv[k])
		if err != nil {
			t.Fatalf("SinSum() = %v", err)
		}

		gotCos, err := filt.CosSum(lhs, tv[k])
		if err != nil {
			t.Fatalf("CosSum() = %v", err)
		}

		testutil.RequireComplexNearlyEqual(t, gotSin, sinT[k], 0.05, 1e-6)
		testutil.RequireComplexNearlyEqual(t, gotCos, cosT[k], 0.05, 1e-6)
	}
}
