// Package optimize provides the derivative-free minimizers used by the
// filter design tool: an exhaustive grid search (brute force) and a Powell
// direction-set polish step.
package optimize

import (
	"errors"
	"math"
)

// ErrEmptyGrid is returned when a brute-force axis has no points.
var ErrEmptyGrid = errors.New("optimize: empty search grid")

// Objective is a two-parameter scalar objective function.
type Objective func(x, y float64) float64

// BruteResult holds the outcome of a brute-force grid search.
type BruteResult struct {
	X, Y   float64     // best grid point
	Fval   float64     // objective at the best point
	XGrid  []float64   // first-axis grid values
	YGrid  []float64   // second-axis grid values
	Values [][]float64 // Values[i][j] = f(XGrid[i], YGrid[j])
}

// Brute evaluates f on the cartesian product of the two grids and returns
// the minimum together with the full value grid. Non-finite objective
// values are kept in the grid but never win the minimum unless every value
// is non-finite.
func Brute(f Objective, xGrid, yGrid []float64) (*BruteResult, error) {
	if len(xGrid) == 0 || len(yGrid) == 0 {
		return nil, ErrEmptyGrid
	}

	res := &BruteResult{
		X:      xGrid[0],
		Y:      yGrid[0],
		Fval:   math.Inf(1),
		XGrid:  xGrid,
		YGrid:  yGrid,
		Values: make([][]float64, len(xGrid)),
	}

	for i, x := range xGrid {
		res.Values[i] = make([]float64, len(yGrid))

		for j, y := range yGrid {
			v := f(x, y)
			res.Values[i][j] = v

			if v < res.Fval {
				res.Fval = v
				res.X = x
				res.Y = y
			}
		}
	}

	return res, nil
}

// Powell minimizes f starting from (x0, y0) using Powell's direction-set
// method with a golden-section line search. It is intended as a polish
// step after Brute, so the iteration budget is deliberately small.
func Powell(f Objective, x0, y0 float64) (x, y, fval float64) {
	const (
		maxIter = 50
		ftol    = 1e-10
	)

	p := [2]float64{x0, y0}
	dirs := [2][2]float64{{1, 0}, {0, 1}}
	fp := f(p[0], p[1])

	for range maxIter {
		fStart := fp
		pStart := p
		biggest := 0.0
		ibig := 0

		for i, d := range dirs {
			fBefore := fp
			p, fp = lineMin(f, p, d)

			if dec := fBefore - fp; dec > biggest {
				biggest = dec
				ibig = i
			}
		}

		if 2*(fStart-fp) <= ftol*(math.Abs(fStart)+math.Abs(fp))+1e-300 {
			break
		}

		// Replace the direction of largest decrease with the average
		// direction of this iteration.
		avg := [2]float64{p[0] - pStart[0], p[1] - pStart[1]}
		if avg[0] != 0 || avg[1] != 0 {
			dirs[ibig] = avg
			p, fp = lineMin(f, p, avg)
		}
	}

	return p[0], p[1], fp
}

// lineMin minimizes f along p + t*d via bracketing plus golden-section.
func lineMin(f Objective, p [2]float64, d [2]float64) ([2]float64, float64) {
	g := func(t float64) float64 {
		return f(p[0]+t*d[0], p[1]+t*d[1])
	}

	a, b, ok := bracket(g)
	if !ok {
		return p, g(0)
	}

	t, ft := golden(g, a, b)

	return [2]float64{p[0] + t*d[0], p[1] + t*d[1]}, ft
}

// bracket expands around t=0 until a three-point minimum bracket is found.
func bracket(g func(float64) float64) (a, b float64, ok bool) {
	const (
		step   = 0.05
		grow   = 1.8
		maxTry = 40
	)

	f0 := g(0)
	h := step

	for range maxTry {
		if g(h) < f0 {
			break
		}

		if g(-h) < f0 {
			h = -h
			break
		}

		h /= grow
		if math.Abs(h) < 1e-12 {
			return 0, 0, false
		}
	}

	if g(h) >= f0 {
		return 0, 0, false
	}

	lo, hi := 0.0, h

	for range maxTry {
		next := hi * grow
		if g(next) >= g(hi) {
			return lo, next, true
		}

		lo, hi = hi, next
	}

	return lo, hi, true
}

// golden performs a golden-section search for the minimum of g in [a, b].
func golden(g func(float64) float64, a, b float64) (t, ft float64) {
	const (
		ratio = 0.3819660112501051 // 2 - golden ratio
		tol   = 1e-8
		iter  = 80
	)

	if a > b {
		a, b = b, a
	}

	x1 := a + ratio*(b-a)
	x2 := b - ratio*(b-a)
	f1 := g(x1)
	f2 := g(x2)

	for range iter {
		if b-a < tol*(math.Abs(a)+math.Abs(b)+1) {
			break
		}

		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = a + ratio*(b-a)
			f1 = g(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = b - ratio*(b-a)
			f2 = g(x2)
		}
	}

	if f1 < f2 {
		return x1, f1
	}

	return x2, f2
}
