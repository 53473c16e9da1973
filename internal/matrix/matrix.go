// Package matrix implements the external matrix collaborators spec.md
// section 6 lists as out of scope for the core but whose contract the
// core calls directly: rank, submatrix selection, kernel, linear-form
// recovery and inversion. It also offers a fast, inexact float64
// rank/linear-independence estimate backed by gonum, used by the
// Fourier-Motzkin pivot (spec.md 4.1 Phase 3) to reject obviously
// wrong-rank candidates before its exact rank test; any candidate the
// estimate does not reject is decided by the exact rank below.
package matrix

import (
	"math/big"

	"gonum.org/v1/gonum/mat"

	"github.com/nmz-go/fullcone/internal/ring"
)

// Matrix is a dense integer matrix, row-major.
type Matrix struct {
	Rows []ring.Vector
}

// New builds a Matrix from rows. Rows are not copied.
func New(rows []ring.Vector) Matrix {
	return Matrix{Rows: rows}
}

// NumRows and NumCols report the matrix shape. NumCols is 0 for an
// empty matrix.
func (m Matrix) NumRows() int { return len(m.Rows) }
func (m Matrix) NumCols() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Submatrix selects the rows at the given indices, in order. This is
// the core's `Matrix::submatrix` collaborator.
func (m Matrix) Submatrix(keys []int) Matrix {
	rows := make([]ring.Vector, len(keys))
	for i, k := range keys {
		rows[i] = m.Rows[k]
	}
	return Matrix{Rows: rows}
}

// toRat converts the matrix to an exact rational echelon-ready copy.
func (m Matrix) toRat() [][]*big.Rat {
	out := make([][]*big.Rat, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = make([]*big.Rat, len(row))
		for j, x := range row {
			out[i][j] = new(big.Rat).SetInt(x)
		}
	}
	return out
}

// rowEchelon performs exact Gauss-Jordan elimination in place over
// big.Rat, returning the rank and the pivot column of each nonzero row
// (in elimination order).
func rowEchelon(a [][]*big.Rat) (rank int, pivotCols []int) {
	if len(a) == 0 {
		return 0, nil
	}
	rows := len(a)
	cols := len(a[0])
	r := 0
	for c := 0; c < cols && r < rows; c++ {
		piv := -1
		for i := r; i < rows; i++ {
			if a[i][c].Sign() != 0 {
				piv = i
				break
			}
		}
		if piv == -1 {
			continue
		}
		a[r], a[piv] = a[piv], a[r]
		inv := new(big.Rat).Inv(a[r][c])
		for j := c; j < cols; j++ {
			a[r][j].Mul(a[r][j], inv)
		}
		for i := 0; i < rows; i++ {
			if i == r {
				continue
			}
			factor := new(big.Rat).Set(a[i][c])
			if factor.Sign() == 0 {
				continue
			}
			for j := c; j < cols; j++ {
				tmp := new(big.Rat).Mul(factor, a[r][j])
				a[i][j].Sub(a[i][j], tmp)
			}
		}
		pivotCols = append(pivotCols, c)
		r++
	}
	return r, pivotCols
}

// RankExact computes the exact rank of the matrix over the rationals
// (equivalently, over the integers, since rank is invariant under
// field extension). This is the core's `Matrix::rank_destructive`
// collaborator; unlike the original it leaves the receiver untouched.
func (m Matrix) RankExact() int {
	if len(m.Rows) == 0 {
		return 0
	}
	a := m.toRat()
	rank, _ := rowEchelon(a)
	return rank
}

// FastRankEstimate returns a float64 rank estimate computed by gonum's
// SVD over a float64 copy of the matrix. It is used only as the
// Fourier-Motzkin pivot's cheap pre-filter (isRidge rejects a
// candidate whose estimate is 2 or more away from the required rank,
// spec.md 4.1 Phase 3); it must never be treated as the ground truth, since floating
// point cancellation can under- or over-count rank near-degenerate
// configurations. Callers that need a correctness-relevant rank must
// call RankExact.
func (m Matrix) FastRankEstimate() int {
	rows, cols := m.NumRows(), m.NumCols()
	if rows == 0 || cols == 0 {
		return 0
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range m.Rows {
		data = append(data, row.ToFloat64()...)
	}
	dense := mat.NewDense(rows, cols, data)

	var svd mat.SVD
	ok := svd.Factorize(dense, mat.SVDNone)
	if !ok {
		return m.RankExact()
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0
	}
	threshold := values[0] * 1e-9
	rank := 0
	for _, s := range values {
		if s > threshold {
			rank++
		}
	}
	return rank
}

// Kernel returns a basis of the (right) null space of the matrix, as
// integer vectors made primitive. This is the core's `Matrix::kernel`
// collaborator; the cone engine does not call it (deduceGrading
// recovers an implicit grading through FindLinearForm).
func (m Matrix) Kernel() []ring.Vector {
	if len(m.Rows) == 0 {
		return nil
	}
	cols := m.NumCols()
	a := m.toRat()
	_, pivotCols := rowEchelon(a)

	isPivot := make([]bool, cols)
	for _, c := range pivotCols {
		isPivot[c] = true
	}

	var basis []ring.Vector
	pivotRowOf := make(map[int]int)
	for r, c := range pivotCols {
		pivotRowOf[c] = r
	}

	for free := 0; free < cols; free++ {
		if isPivot[free] {
			continue
		}
		vec := make([]*big.Rat, cols)
		for i := range vec {
			vec[i] = new(big.Rat)
		}
		vec[free].SetInt64(1)
		for _, c := range pivotCols {
			r := pivotRowOf[c]
			vec[c].Neg(a[r][free])
		}
		basis = append(basis, ratVectorToPrimitiveInt(vec))
	}
	return basis
}

// FindLinearForm solves for a linear form h with h . row = target for
// every row of m (target defaults to 1 on every row when rhs is nil),
// returning the unique solution when the system is consistent and of
// full column rank. This is the core's `Matrix::find_linear_form`
// collaborator, used to recover an explicit grading.
func FindLinearForm(m Matrix, rhs []*big.Int) (ring.Vector, bool) {
	rows, cols := m.NumRows(), m.NumCols()
	if rows == 0 || cols == 0 {
		return nil, false
	}
	aug := make([][]*big.Rat, rows)
	for i, row := range m.Rows {
		aug[i] = make([]*big.Rat, cols+1)
		for j, x := range row {
			aug[i][j] = new(big.Rat).SetInt(x)
		}
		if rhs == nil {
			aug[i][cols] = big.NewRat(1, 1)
		} else {
			aug[i][cols] = new(big.Rat).SetInt(rhs[i])
		}
	}
	rank, pivotCols := rowEchelon(aug)
	if rank < cols {
		return nil, false
	}
	// Verify consistency: every row beyond `rank` (already eliminated
	// to zero on the coefficient columns) must also be zero on rhs.
	for i := rank; i < rows; i++ {
		if aug[i][cols].Sign() != 0 {
			return nil, false
		}
	}
	sol := make([]*big.Rat, cols)
	for i := range sol {
		sol[i] = new(big.Rat)
	}
	for r, c := range pivotCols {
		sol[c] = aug[r][cols]
	}
	out := make(ring.Vector, cols)
	for j, s := range sol {
		if !s.IsInt() {
			return nil, false
		}
		out[j] = new(big.Int).Set(s.Num())
	}
	return out, true
}

// Invert computes the inverse of a square matrix over the rationals,
// returning it as a row-major n x n slice of big.Rat entries.
// This is the core's `Matrix::invert` collaborator, used by the
// simplex evaluator to turn a simplex's generator matrix into
// barycentric coordinates.
func (m Matrix) Invert() ([][]*big.Rat, bool) {
	n := m.NumRows()
	if n == 0 || m.NumCols() != n {
		return nil, false
	}
	aug := make([][]*big.Rat, n)
	for i, row := range m.Rows {
		aug[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			aug[i][j] = new(big.Rat).SetInt(row[j])
		}
		for j := n; j < 2*n; j++ {
			if j-n == i {
				aug[i][j] = big.NewRat(1, 1)
			} else {
				aug[i][j] = new(big.Rat)
			}
		}
	}
	rank, _ := rowEchelon(aug)
	if rank < n {
		return nil, false
	}
	out := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		out[i] = aug[i][n:]
	}
	return out, true
}

// Determinant computes the exact determinant of a square matrix via
// fraction-free (Bareiss) elimination, staying in the integers
// throughout. Used for the simplex height/volume computation.
func (m Matrix) Determinant() *big.Int {
	n := m.NumRows()
	if n == 0 {
		return big.NewInt(1)
	}
	a := make([][]*big.Int, n)
	for i, row := range m.Rows {
		a[i] = make([]*big.Int, n)
		for j, x := range row {
			a[i][j] = new(big.Int).Set(x)
		}
	}
	sign := 1
	prevPivot := big.NewInt(1)
	for k := 0; k < n-1; k++ {
		if a[k][k].Sign() == 0 {
			swapped := false
			for i := k + 1; i < n; i++ {
				if a[i][k].Sign() != 0 {
					a[k], a[i] = a[i], a[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				return new(big.Int)
			}
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				t1 := new(big.Int).Mul(a[i][j], a[k][k])
				t2 := new(big.Int).Mul(a[i][k], a[k][j])
				t := new(big.Int).Sub(t1, t2)
				a[i][j] = t.Div(t, prevPivot)
			}
		}
		prevPivot = a[k][k]
	}
	det := new(big.Int).Set(a[n-1][n-1])
	if sign < 0 {
		det.Neg(det)
	}
	return det
}

// DualBasis returns, for a square matrix whose rows are a basis, the
// dual basis vectors w_0..w_{n-1} with w_j . row_k = 0 for k != j (each
// scaled to a primitive integer vector). This is what the start
// simplex uses to build its initial facet normals: the facet omitting
// generator j is exactly w_j.
func (m Matrix) DualBasis() ([]ring.Vector, bool) {
	inv, ok := m.Invert()
	if !ok {
		return nil, false
	}
	n := len(inv)
	out := make([]ring.Vector, n)
	for col := 0; col < n; col++ {
		column := make([]*big.Rat, n)
		for row := 0; row < n; row++ {
			column[row] = inv[row][col]
		}
		out[col] = ratVectorToPrimitiveInt(column)
	}
	return out, true
}

func ratVectorToPrimitiveInt(vec []*big.Rat) ring.Vector {
	denomLCM := big.NewInt(1)
	for _, x := range vec {
		d := x.Denom()
		g := new(big.Int).GCD(nil, nil, denomLCM, d)
		denomLCM.Mul(denomLCM, new(big.Int).Div(d, g))
	}
	out := make(ring.Vector, len(vec))
	for i, x := range vec {
		scaled := new(big.Rat).Mul(x, new(big.Rat).SetInt(denomLCM))
		out[i] = new(big.Int).Set(scaled.Num())
	}
	return out.Primitive()
}
