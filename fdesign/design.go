package fdesign

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cwbudde/algo-em/dlf"
	"github.com/cwbudde/algo-em/internal/linalg"
	"github.com/cwbudde/algo-em/internal/optimize"
)

// Errors returned by Design.
var (
	ErrNoPairs     = errors.New("fdesign: at least one inversion pair required")
	ErrJointPair   = errors.New("fdesign: joint j0/j1 pairs are valid as control pairs only")
	ErrBadLength   = errors.New("fdesign: filter length must be positive")
	ErrBadErrorVar = errors.New("fdesign: error level must be positive")
	ErrControlKind = errors.New("fdesign: control pair needs a weight kind the inversion does not produce")
)

// Criterion selects how candidate filters are rated.
type Criterion int

const (
	// MinimizeAmplitude searches the filter that resolves the smallest
	// right-hand side amplitude within the error level.
	MinimizeAmplitude Criterion = iota

	// MaximizeR searches the filter that stays within the error level
	// out to the largest evaluation point.
	MaximizeR
)

// Range describes a scalar or a linearly spaced set of values for the
// spacing/shift search grid.
type Range struct {
	Start, Stop float64
	Num         int
}

// Fixed returns a single-valued Range.
func Fixed(v float64) Range { return Range{Start: v, Num: 1} }

// Values expands the range to its grid points.
func (rg Range) Values() []float64 {
	if rg.Num < 2 || rg.Start == rg.Stop {
		return []float64{rg.Start}
	}

	out := make([]float64, rg.Num)
	step := (rg.Stop - rg.Start) / float64(rg.Num-1)

	for i := range out {
		out[i] = rg.Start + float64(i)*step
	}

	return out
}

// RDef defines the right-hand side evaluation points of the inversion,
// derived from the base values:
//
//	rmin = log10(1/max(base)) - AddLeft
//	rmax = log10(1/min(base)) + AddRight
//	r    = logspace(rmin, rmax, Factor*n)
type RDef struct {
	AddLeft  float64
	AddRight float64
	Factor   int
}

// Config collects the tunable design parameters.
type Config struct {
	// FC are the control pairs rating each candidate filter. Defaults
	// to the inversion pairs.
	FC []Ghosh

	// R are the control evaluation points. Defaults to
	// logspace(0, 5, 1000).
	R []float64

	// RDef defines the inversion evaluation points. Defaults to
	// {1, 1, 2}.
	RDef RDef

	// UseImag rates and inverts the imaginary instead of the real part
	// of complex pairs.
	UseImag bool

	// Criterion selects the rating, default MinimizeAmplitude.
	Criterion Criterion

	// Error is the relative error bound of the goodness rating,
	// default 0.01.
	Error float64

	// Finish refines the best grid point with a Powell direction-set
	// search.
	Finish bool

	// Name names the resulting filter, default "dlf_<n>".
	Name string

	// Progress receives search progress and warnings. Nil discards.
	Progress io.Writer
}

// Option mutates a Config.
type Option func(*Config)

// WithControl sets the control pairs used for the goodness rating.
func WithControl(fc ...Ghosh) Option {
	return func(cfg *Config) { cfg.FC = fc }
}

// WithR sets the control evaluation points.
func WithR(r []float64) Option {
	return func(cfg *Config) {
		if len(r) > 0 {
			cfg.R = r
		}
	}
}

// WithRDef sets the inversion evaluation point definition.
func WithRDef(addLeft, addRight float64, factor int) Option {
	return func(cfg *Config) {
		if factor > 0 {
			cfg.RDef = RDef{AddLeft: addLeft, AddRight: addRight, Factor: factor}
		}
	}
}

// WithImag rates and inverts the imaginary part of complex pairs.
func WithImag() Option {
	return func(cfg *Config) { cfg.UseImag = true }
}

// WithCriterion selects the rating criterion.
func WithCriterion(c Criterion) Option {
	return func(cfg *Config) { cfg.Criterion = c }
}

// WithError sets the relative error bound of the goodness rating.
func WithError(e float64) Option {
	return func(cfg *Config) {
		if e > 0 {
			cfg.Error = e
		}
	}
}

// WithFinish enables the Powell refinement of the best grid point.
func WithFinish() Option {
	return func(cfg *Config) { cfg.Finish = true }
}

// WithName names the resulting filter.
func WithName(name string) Option {
	return func(cfg *Config) {
		if name != "" {
			cfg.Name = name
		}
	}
}

// WithProgress directs search progress and warnings to w.
func WithProgress(w io.Writer) Option {
	return func(cfg *Config) { cfg.Progress = w }
}

// Result reports the outcome of a filter design.
type Result struct {
	Spacing float64
	Shift   float64

	// MinValue is the best objective value: the smallest resolved
	// amplitude, or 1/r of the largest resolved evaluation point.
	MinValue float64

	Criterion Criterion

	// Grid is the full brute-force search output.
	Grid *optimize.BruteResult
}

// Design searches the spacing/shift grid for the digital linear filter
// of length n that best reproduces the control pairs, inverting the
// pairs fI by least squares at every grid point. It returns the best
// filter together with the search result.
func Design(n int, spacing, shift Range, fI []Ghosh, opts ...Option) (*dlf.Filter, *Result, error) {
	if n <= 0 {
		return nil, nil, ErrBadLength
	}

	if len(fI) == 0 {
		return nil, nil, ErrNoPairs
	}

	for i := range fI {
		if err := fI[i].Validate(); err != nil {
			return nil, nil, err
		}

		if fI[i].Kind == KindJ2 {
			return nil, nil, fmt.Errorf("%w: %s", ErrJointPair, fI[i].Name)
		}
	}

	cfg := Config{
		RDef:  RDef{AddLeft: 1, AddRight: 1, Factor: 2},
		Error: 0.01,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Error <= 0 {
		return nil, nil, ErrBadErrorVar
	}

	if len(cfg.FC) == 0 {
		cfg.FC = fI
	}

	kinds := make(map[Kind]bool, len(fI))
	for i := range fI {
		kinds[fI[i].Kind] = true
	}

	for i := range cfg.FC {
		if err := cfg.FC[i].Validate(); err != nil {
			return nil, nil, err
		}

		covered := kinds[cfg.FC[i].Kind]
		if cfg.FC[i].Kind == KindJ2 {
			covered = kinds[KindJ0] && kinds[KindJ1]
		}

		if !covered {
			return nil, nil, fmt.Errorf("%w: %s", ErrControlKind, cfg.FC[i].Name)
		}
	}

	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("dlf_%d", n)
	}

	if len(cfg.R) == 0 {
		cfg.R = logspace(0, 5, 1000)
	}

	// Control right-hand sides are independent of the candidate.
	fcRHS := make([][]complex128, len(cfg.FC))
	for i := range cfg.FC {
		fcRHS[i] = cfg.FC[i].RHS(cfg.R)
	}

	warned := false
	calls := 0

	objective := func(sp, sh float64) float64 {
		calls++
		if cfg.Progress != nil {
			fmt.Fprintf(cfg.Progress, "   brute fct calls : %d\r", calls)
		}

		filt := calculateFilter(n, sp, sh, fI, cfg.RDef, cfg.UseImag, "candidate")

		return minValue(filt, cfg.FC, fcRHS, cfg.R, cfg.Error, cfg.Criterion,
			cfg.Progress, &warned)
	}

	grid, err := optimize.Brute(objective, spacing.Values(), shift.Values())
	if err != nil {
		return nil, nil, err
	}

	best := Result{
		Spacing:   grid.X,
		Shift:     grid.Y,
		MinValue:  grid.Fval,
		Criterion: cfg.Criterion,
		Grid:      grid,
	}

	if cfg.Finish {
		best.Spacing, best.Shift, best.MinValue = optimize.Powell(objective,
			grid.X, grid.Y)
	}

	if cfg.Progress != nil {
		fmt.Fprintf(cfg.Progress, "   brute fct calls : %d\n", calls)
	}

	filt := calculateFilter(n, best.Spacing, best.Shift, fI, cfg.RDef,
		cfg.UseImag, cfg.Name)

	if cfg.Progress != nil {
		fmt.Fprint(cfg.Progress, ResultString(filt, &best))
	}

	return filt, &best, nil
}

// calculateFilter inverts the pairs fI for the filter weights at one
// spacing/shift combination. A rank-deficient system yields zero
// weights, which the goodness rating rejects.
func calculateFilter(n int, spacing, shift float64, fI []Ghosh, rDef RDef, useImag bool, name string) *dlf.Filter {
	base := make([]float64, n)
	for i := range base {
		base[i] = math.Exp(spacing*float64(i-n/2) + shift)
	}

	// The system is overdetermined for Factor > 1.
	nr := rDef.Factor * n
	bmin, bmax := base[0], base[n-1]

	if bmin > bmax {
		bmin, bmax = bmax, bmin
	}

	r := logspace(math.Log10(1/bmax)-rDef.AddLeft,
		math.Log10(1/bmin)+rDef.AddRight, nr)

	reim := func(c complex128) float64 {
		if useImag {
			return imag(c)
		}

		return real(c)
	}

	filt := &dlf.Filter{
		Name:   name,
		Base:   base,
		Factor: dlf.MeanFactor(base),
	}

	k := make([]float64, n)

	for fi := range fI {
		f := &fI[fi]

		lhs := linalg.NewMatrix(nr, n)
		rhs := make([]float64, nr)

		rrhs := f.RHS(r)

		for i := 0; i < nr; i++ {
			for j := range k {
				k[j] = base[j] / r[i]
			}

			row := f.LHS(k)
			for j := range row {
				lhs.Set(i, j, reim(row[j]))
			}

			rhs[i] = reim(rrhs[i] * complex(r[i], 0))
		}

		w, err := linalg.SolveLS(lhs, rhs)
		if err != nil {
			w = make([]float64, n)
		}

		switch f.Kind {
		case KindJ0:
			filt.J0 = w
		case KindJ1:
			filt.J1 = w
		case KindSin:
			filt.Sin = w
		case KindCos:
			filt.Cos = w
		}
	}

	return filt
}

// minValue rates one candidate filter against the control pairs: the
// worst (largest) minimum resolved amplitude, or 1/r of the worst
// maximum resolved evaluation point. +Inf marks a useless filter.
func minValue(filt *dlf.Filter, fc []Ghosh, fcRHS [][]complex128, r []float64, errBound float64, crit Criterion, progress io.Writer, warned *bool) float64 {
	worst := math.Inf(-1)

	for fi := range fc {
		resp, ok := controlResponse(filt, &fc[fi], r)
		if !ok {
			return math.Inf(1)
		}

		imin := firstFailure(resp, fcRHS[fi], r, errBound, progress, warned)
		if imin == 0 {
			return math.Inf(1)
		}

		var val float64
		if crit == MinimizeAmplitude {
			val = cmplxAbs(resp[imin])
		} else {
			val = 1 / r[imin]
		}

		if val > worst {
			worst = val
		}
	}

	return worst
}

// controlResponse transforms one control pair with the candidate
// filter. ok is false when the response is all zeros or NaNs.
func controlResponse(filt *dlf.Filter, f *Ghosh, r []float64) ([]complex128, bool) {
	resp := make([]complex128, len(r))
	k := make([]float64, len(filt.Base))

	for i, ri := range r {
		for j := range k {
			k[j] = filt.Base[j] / ri
		}

		var v complex128

		var err error

		switch f.Kind {
		case KindJ0:
			v, err = filt.J0Sum(f.LHS(k), ri)
		case KindJ1:
			v, err = filt.J1Sum(f.LHS(k), ri)
		case KindSin:
			v, err = filt.SinSum(f.LHS(k), ri)
		case KindCos:
			v, err = filt.CosSum(f.LHS(k), ri)
		case KindJ2:
			lhs0, lhs1 := f.LHSJoint(k)

			var v0, v1 complex128

			v0, err = filt.J0Sum(lhs0, ri)
			if err == nil {
				v1, err = filt.J1Sum(lhs1, ri)
			}

			v = v0 + v1/complex(ri, 0)
		}

		if err != nil {
			return nil, false
		}

		resp[i] = v
	}

	alive := false

	for _, v := range resp {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			return nil, false
		}

		if v != 0 {
			alive = true
		}
	}

	return resp, alive
}

// firstFailure returns the index of the last evaluation point resolved
// within the error bound, allowing a jump over up to four isolated bad
// values such as zero crossings of the pair.
func firstFailure(resp, want []complex128, r []float64, errBound float64, progress io.Writer, warned *bool) int {
	var bad []int

	for i := range resp {
		relErr := cmplxAbs((resp[i] - want[i]) / want[i])
		if relErr > errBound {
			bad = append(bad, i)
		}
	}

	switch {
	case len(bad) == 0:
		// All evaluation points pass.
		if progress != nil && !*warned {
			fmt.Fprintf(progress,
				"* WARNING :: all data have error < %g; choose larger r or set error-level higher.\n",
				errBound)

			*warned = true
		}

		return len(r) - 1

	case len(bad) > 4:
		return max(0, bad[4]-5)

	default:
		return max(0, bad[0]-1)
	}
}

// ResultString renders the outcome of a design the way PrintResult
// does.
func ResultString(filt *dlf.Filter, res *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "   Filter length   : %d\n", len(filt.Base))
	fmt.Fprintf(&b, "   Best filter\n")

	if res != nil {
		if res.Criterion == MinimizeAmplitude {
			fmt.Fprintf(&b, "   > Min field     : %g\n", res.MinValue)
		} else {
			fmt.Fprintf(&b, "   > Max r         : %g\n", 1/res.MinValue)
		}

		fmt.Fprintf(&b, "   > Spacing       : %.10g\n", res.Spacing)
		fmt.Fprintf(&b, "   > Shift         : %.10g\n", res.Shift)
	} else if len(filt.Base) > 1 {
		// Recover spacing and shift from the base values.
		n := len(filt.Base)
		spacing := math.Log(filt.Base[1]) - math.Log(filt.Base[0])
		shift := math.Log(filt.Base[n/2])

		fmt.Fprintf(&b, "   > Spacing       : %.10g\n", spacing)
		fmt.Fprintf(&b, "   > Shift         : %.10g\n", shift)
	}

	fmt.Fprintf(&b, "   > Base min/max  : %e / %e\n",
		filt.Base[0], filt.Base[len(filt.Base)-1])

	return b.String()
}

// PrintResult writes the design outcome to w.
func PrintResult(w io.Writer, filt *dlf.Filter, res *Result) {
	fmt.Fprint(w, ResultString(filt, res))
}

func logspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{math.Pow(10, start)}
	}

	out := make([]float64, num)
	step := (stop - start) / float64(num-1)

	for i := range out {
		out[i] = math.Pow(10, start+float64(i)*step)
	}

	return out
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
