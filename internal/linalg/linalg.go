// Package linalg provides the dense linear-algebra kernels shared by the
// filter design packages: a Householder QR decomposition and a
// least-squares solver built on it.
package linalg

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a matrix is rank deficient (or close
// enough that back substitution would divide by a negligible pivot).
var ErrSingularMatrix = errors.New("linalg: singular or rank-deficient matrix")

// ErrShapeMismatch is returned when matrix and vector dimensions disagree.
var ErrShapeMismatch = errors.New("linalg: shape mismatch")

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	Rows, Cols int
	Data       []float64 // len Rows*Cols, Data[i*Cols+j]
}

// NewMatrix allocates a zero matrix of the given shape.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Row returns a view of row i.
func (m *Matrix) Row(i int) []float64 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// SolveLS solves the least-squares problem min ||A*x - b|| for an
// overdetermined (or square) system with Rows >= Cols, using a Householder
// QR decomposition of A. A and b are left unmodified.
func SolveLS(a *Matrix, b []float64) ([]float64, error) {
	if a.Rows < a.Cols || a.Cols == 0 {
		return nil, ErrShapeMismatch
	}

	if len(b) != a.Rows {
		return nil, ErrShapeMismatch
	}

	m, n := a.Rows, a.Cols

	// Work on copies; the decomposition overwrites both.
	r := &Matrix{Rows: m, Cols: n, Data: append([]float64(nil), a.Data...)}
	qtb := append([]float64(nil), b...)

	// Householder QR: eliminate column k below the diagonal and apply the
	// same reflector to the right-hand side, accumulating Q^T*b in place.
	v := make([]float64, m)

	for k := 0; k < n; k++ {
		norm := 0.0
		for i := k; i < m; i++ {
			norm = math.Hypot(norm, r.At(i, k))
		}

		if norm == 0 {
			return nil, ErrSingularMatrix
		}

		alpha := -norm
		if r.At(k, k) < 0 {
			alpha = norm
		}

		vnorm2 := 0.0

		for i := k; i < m; i++ {
			v[i] = r.At(i, k)
			if i == k {
				v[i] -= alpha
			}

			vnorm2 += v[i] * v[i]
		}

		if vnorm2 == 0 {
			return nil, ErrSingularMatrix
		}

		r.Set(k, k, alpha)
		for i := k + 1; i < m; i++ {
			r.Set(i, k, 0)
		}

		// Apply the reflector H = I - 2*v*v^T/(v^T*v) to the remaining
		// columns and to the right-hand side.
		for j := k + 1; j < n; j++ {
			dot := 0.0
			for i := k; i < m; i++ {
				dot += v[i] * r.At(i, j)
			}

			scale := 2 * dot / vnorm2
			for i := k; i < m; i++ {
				r.Set(i, j, r.At(i, j)-scale*v[i])
			}
		}

		dot := 0.0
		for i := k; i < m; i++ {
			dot += v[i] * qtb[i]
		}

		scale := 2 * dot / vnorm2
		for i := k; i < m; i++ {
			qtb[i] -= scale * v[i]
		}
	}

	// Back substitution on the triangular factor.
	x := make([]float64, n)

	for i := n - 1; i >= 0; i-- {
		sum := qtb[i]
		for j := i + 1; j < n; j++ {
			sum -= r.At(i, j) * x[j]
		}

		piv := r.At(i, i)
		if math.Abs(piv) < 1e-300 {
			return nil, ErrSingularMatrix
		}

		x[i] = sum / piv
	}

	return x, nil
}
