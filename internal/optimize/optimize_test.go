package optimize

import (
	"errors"
	"math"
	"testing"
)

func TestBruteQuadratic(t *testing.T) {
	t.Parallel()

	f := func(x, y float64) float64 {
		return (x-1)*(x-1) + (y+2)*(y+2)
	}

	xGrid := []float64{-1, 0, 1, 2}
	yGrid := []float64{-3, -2, -1}

	res, err := Brute(f, xGrid, yGrid)
	if err != nil {
		t.Fatalf("Brute() = %v", err)
	}

	if res.X != 1 || res.Y != -2 {
		t.Errorf("best = (%v, %v), want (1, -2)", res.X, res.Y)
	}

	if res.Fval != 0 {
		t.Errorf("Fval = %v, want 0", res.Fval)
	}

	if len(res.Values) != len(xGrid) || len(res.Values[0]) != len(yGrid) {
		t.Errorf("grid shape = %dx%d, want %dx%d",
			len(res.Values), len(res.Values[0]), len(xGrid), len(yGrid))
	}

	// The stored grid must hold the actual objective values.
	if got, want := res.Values[0][0], f(-1, -3); got != want {
		t.Errorf("Values[0][0] = %v, want %v", got, want)
	}
}

func TestBruteEmptyGrid(t *testing.T) {
	t.Parallel()

	f := func(x, y float64) float64 { return x + y }

	if _, err := Brute(f, nil, []float64{1}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Brute(empty x) = %v, want %v", err, ErrEmptyGrid)
	}

	if _, err := Brute(f, []float64{1}, nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Brute(empty y) = %v, want %v", err, ErrEmptyGrid)
	}
}

func TestBruteSkipsNonFinite(t *testing.T) {
	t.Parallel()

	f := func(x, y float64) float64 {
		if x == 0 && y == 0 {
			return 5
		}

		return math.Inf(1)
	}

	res, err := Brute(f, []float64{-1, 0, 1}, []float64{-1, 0, 1})
	if err != nil {
		t.Fatalf("Brute() = %v", err)
	}

	if res.X != 0 || res.Y != 0 || res.Fval != 5 {
		t.Errorf("best = (%v, %v, %v), want (0, 0, 5)", res.X, res.Y, res.Fval)
	}
}

func TestPowellQuadratic(t *testing.T) {
	t.Parallel()

	f := func(x, y float64) float64 {
		return (x-1.3)*(x-1.3) + (y+0.7)*(y+0.7)
	}

	x, y, fval := Powell(f, 0, 0)

	if math.Abs(x-1.3) > 1e-4 || math.Abs(y+0.7) > 1e-4 {
		t.Errorf("Powell() = (%v, %v), want (1.3, -0.7)", x, y)
	}

	if fval > 1e-8 {
		t.Errorf("fval = %v, want ~0", fval)
	}
}

func TestPowellCoupledQuadratic(t *testing.T) {
	t.Parallel()

	// Minimum at (1, 1); the cross term forces the direction update.
	f := func(x, y float64) float64 {
		return (x-y)*(x-y) + 0.1*(x+y-2)*(x+y-2)
	}

	x, y, fval := Powell(f, -1, 2)

	if fval > 1e-6 {
		t.Errorf("fval = %v, want ~0 (at %v, %v)", fval, x, y)
	}

	if math.Abs(x-y) > 1e-3 || math.Abs(x+y-2) > 1e-2 {
		t.Errorf("Powell() = (%v, %v), want on x=y, x+y=2", x, y)
	}
}

func TestPowellAtMinimum(t *testing.T) {
	t.Parallel()

	f := func(x, y float64) float64 { return x*x + y*y }

	x, y, fval := Powell(f, 0, 0)

	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 || fval > 1e-10 {
		t.Errorf("Powell() = (%v, %v, %v), want origin", x, y, fval)
	}
}
