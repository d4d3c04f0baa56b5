package fdesign

import (
	"errors"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// ErrBadFFTGrid reports an unusable FFT sampling grid.
var ErrBadFFTGrid = errors.New("fdesign: fft grid needs n >= 2 and dw > 0")

// FourierFFTReference evaluates the Fourier sine and cosine forward
// integrals of kernel,
//
//	S(t) = int_0^inf F(w) sin(w t) dw
//	C(t) = int_0^inf F(w) cos(w t) dw
//
// on the regular grid t_k = 2 pi k / (n dw), k = 0..n/2-1, with a
// single length-n FFT over the samples F(j dw). The trapezoid
// half-weight is applied at w = 0; the kernel is assumed negligible
// beyond (n-1) dw. It serves as an independent check of designed
// Fourier filters.
func FourierFFTReference(kernel func(w float64) complex128, n int, dw float64) (t []float64, sinT, cosT []complex128, err error) {
	if n < 2 || dw <= 0 {
		return nil, nil, nil, ErrBadFFTGrid
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, nil, err
	}

	in := make([]complex128, n)
	for j := range in {
		in[j] = kernel(float64(j) * dw)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, nil, err
	}

	half := n / 2
	t = make([]float64, half)
	sinT = make([]complex128, half)
	cosT = make([]complex128, half)

	dt := 2 * math.Pi / (float64(n) * dw)
	cdw := complex(dw, 0)
	f0 := in[0]

	for k := 0; k < half; k++ {
		t[k] = float64(k) * dt

		mirror := out[(n-k)%n]
		cosSum := (out[k] + mirror) / 2
		sinSum := complex(0, 1) * (out[k] - mirror) / 2

		cosT[k] = cdw * (cosSum - f0/2)
		sinT[k] = cdw * sinSum
	}

	return t, sinT, cosT, nil
}
