package dlf

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by filter operations.
var (
	ErrEmptyBase     = errors.New("dlf: filter base must not be empty")
	ErrBaseOrder     = errors.New("dlf: filter base must be positive and strictly increasing")
	ErrWeightLength  = errors.New("dlf: weight length does not match base length")
	ErrMissingWeight = errors.New("dlf: filter does not carry the requested weights")
	ErrBadOutputR    = errors.New("dlf: output points must be positive")
)

// Filter is a digital linear filter: logarithmically spaced base values
// plus one weight vector per supported kernel function. Weight slices
// that are not designed are left nil.
type Filter struct {
	Name   string    `yaml:"name"`
	Base   []float64 `yaml:"base"`
	Factor float64   `yaml:"factor"`
	J0     []float64 `yaml:"j0,omitempty"`
	J1     []float64 `yaml:"j1,omitempty"`
	Sin    []float64 `yaml:"sin,omitempty"`
	Cos    []float64 `yaml:"cos,omitempty"`
}

// Validate checks the base ordering and weight lengths.
func (f *Filter) Validate() error {
	if len(f.Base) == 0 {
		return ErrEmptyBase
	}

	if f.Base[0] <= 0 {
		return ErrBaseOrder
	}

	for i := 1; i < len(f.Base); i++ {
		if f.Base[i] <= f.Base[i-1] {
			return ErrBaseOrder
		}
	}

	for _, w := range [][]float64{f.J0, f.J1, f.Sin, f.Cos} {
		if w != nil && len(w) != len(f.Base) {
			return ErrWeightLength
		}
	}

	return nil
}

// MeanFactor returns the average ratio of consecutive base values,
// rounded to 15 decimals. Designed filters store it in Factor.
func MeanFactor(base []float64) float64 {
	if len(base) < 2 {
		return 0
	}

	sum := 0.0
	for i := 1; i < len(base); i++ {
		sum += base[i] / base[i-1]
	}

	avg := sum / float64(len(base)-1)

	return math.Round(avg*1e15) / 1e15
}

// Nodes returns the wavenumber evaluation nodes base/r for one output
// point r.
func (f *Filter) Nodes(r float64) []float64 {
	out := make([]float64, len(f.Base))
	vecmath.ScaleBlock(out, f.Base, 1/r)

	return out
}

// weightedSum applies a real weight vector to complex kernel samples and
// divides by r. The real and imaginary parts are reduced separately so
// the float64 vector kernels can be used.
func weightedSum(samples []complex128, w []float64, r float64) (complex128, error) {
	if w == nil {
		return 0, ErrMissingWeight
	}

	if len(samples) != len(w) {
		return 0, ErrWeightLength
	}

	if r <= 0 {
		return 0, ErrBadOutputR
	}

	re := make([]float64, len(samples))
	im := make([]float64, len(samples))

	for i, s := range samples {
		re[i] = real(s)
		im[i] = imag(s)
	}

	vecmath.MulBlockInPlace(re, w)
	vecmath.MulBlockInPlace(im, w)

	var sre, sim float64
	for i := range re {
		sre += re[i]
		sim += im[i]
	}

	return complex(sre/r, sim/r), nil
}

// J0Sum evaluates int F(k) J0(k*r) dk from kernel samples taken at the
// nodes base/r.
func (f *Filter) J0Sum(samples []complex128, r float64) (complex128, error) {
	return weightedSum(samples, f.J0, r)
}

// J1Sum evaluates int F(k) J1(k*r) dk from kernel samples taken at the
// nodes base/r.
func (f *Filter) J1Sum(samples []complex128, r float64) (complex128, error) {
	return weightedSum(samples, f.J1, r)
}

// SinSum evaluates int F(k) sin(k*r) dk from kernel samples taken at the
// nodes base/r.
func (f *Filter) SinSum(samples []complex128, r float64) (complex128, error) {
	return weightedSum(samples, f.Sin, r)
}

// CosSum evaluates int F(k) cos(k*r) dk from kernel samples taken at the
// nodes base/r.
func (f *Filter) CosSum(samples []complex128, r float64) (complex128, error) {
	return weightedSum(samples, f.Cos, r)
}

// HankelJ0 evaluates the J0 transform of a scalar kernel at every output
// point in r.
func (f *Filter) HankelJ0(kernel func(k float64) complex128, r []float64) ([]complex128, error) {
	return f.transform(kernel, r, f.J0)
}

// HankelJ1 evaluates the J1 transform of a scalar kernel at every output
// point in r.
func (f *Filter) HankelJ1(kernel func(k float64) complex128, r []float64) ([]complex128, error) {
	return f.transform(kernel, r, f.J1)
}

// FourierSin evaluates the sine transform of a scalar kernel at every
// output point in r.
func (f *Filter) FourierSin(kernel func(k float64) complex128, r []float64) ([]complex128, error) {
	return f.transform(kernel, r, f.Sin)
}

// FourierCos evaluates the cosine transform of a scalar kernel at every
// output point in r.
func (f *Filter) FourierCos(kernel func(k float64) complex128, r []float64) ([]complex128, error) {
	return f.transform(kernel, r, f.Cos)
}

func (f *Filter) transform(kernel func(k float64) complex128, r []float64, w []float64) ([]complex128, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if w == nil {
		return nil, ErrMissingWeight
	}

	out := make([]complex128, len(r))
	samples := make([]complex128, len(f.Base))

	for i, ri := range r {
		if ri <= 0 {
			return nil, fmt.Errorf("%w: r[%d] = %v", ErrBadOutputR, i, ri)
		}

		for n, b := range f.Base {
			samples[n] = kernel(b / ri)
		}

		v, err := weightedSum(samples, w, ri)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// Abs returns the element-wise magnitudes of a complex response.
func Abs(resp []complex128) []float64 {
	re := make([]float64, len(resp))
	im := make([]float64, len(resp))

	for i, v := range resp {
		re[i] = real(v)
		im[i] = imag(v)
	}

	out := make([]float64, len(resp))
	vecmath.Magnitude(out, re, im)

	return out
}
