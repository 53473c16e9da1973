// Package simplex implements component B's external contract
// (spec.md section 6: `Simplex`, `SimplexEvaluator`) concretely, so
// the cone engine is self-contained: a ShortSimplex record plus a
// default Evaluator computing volume, Hilbert basis candidates and a
// per-simplex Hilbert series contribution. The core only ever calls
// Evaluator.Evaluate and collects its Result; it never reaches inside.
package simplex

import (
	"math/big"

	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
)

// ShortSimplex is the triangulation-list record of spec.md section 3:
// a tuple of d generator indices ("key"), the absolute
// determinant-like height used as a volume lower bound, and the
// volume itself once the evaluator has run. Height zero marks a
// simplex excluded from evaluation by partial triangulation (spec.md
// 4.2).
type ShortSimplex struct {
	Key    []int
	Height *big.Int
	Vol    *big.Rat
}

// Result is everything a single simplex's evaluation contributes to
// the global aggregates: its share of the determinant sum (spec.md
// invariant 4 / 8), candidate lattice points for the Hilbert basis
// reducer (spec.md 4.5), and its Hilbert series numerator
// contribution indexed by degree.
type Result struct {
	DetSum          *big.Int
	MultiplicitySum *big.Rat
	Candidates      []ring.Vector
	Degree1Points   []ring.Vector
	SeriesByDegree  map[int64]*big.Int
}

// Evaluator is the core's `SimplexEvaluator` collaborator.
type Evaluator interface {
	// Evaluate computes everything the simplex with the given key
	// (indices into gens) contributes. grading may be nil when no
	// grading has been established.
	Evaluate(s *ShortSimplex, gens []ring.Vector, grading ring.Vector) (Result, error)
}

// DefaultEvaluator is the engine's built-in evaluator: exact
// determinant via internal/matrix, and a bounded box scan over the
// simplex's fundamental parallelepiped for Hilbert basis candidates
// and degree-1 lattice points, membership decided by the M^-1
// barycentric-coordinate test internal/matrix.Invert exists for.
type DefaultEvaluator struct {
	// MaxCandidateBoxPoints bounds how many points of the integer box
	// around the simplex's fundamental parallelepiped boxLatticePoints
	// scans for Hilbert basis candidates, to keep evaluation of large
	// simplices bounded.
	MaxCandidateBoxPoints int
}

// NewDefaultEvaluator builds an evaluator with a sane candidate bound.
func NewDefaultEvaluator() *DefaultEvaluator {
	return &DefaultEvaluator{MaxCandidateBoxPoints: 100000}
}

func (e *DefaultEvaluator) Evaluate(s *ShortSimplex, gens []ring.Vector, grading ring.Vector) (Result, error) {
	d := len(s.Key)
	rows := make([]ring.Vector, d)
	for i, k := range s.Key {
		rows[i] = gens[k]
	}
	m := matrix.New(rows)
	det := m.Determinant()
	absDet := new(big.Int).Abs(det)

	res := Result{
		DetSum:         new(big.Int).Set(absDet),
		SeriesByDegree: map[int64]*big.Int{},
	}

	if s.Height == nil || s.Height.Sign() == 0 {
		// Height zero: excluded from evaluation by partial
		// triangulation (spec.md 4.2). Still report the determinant
		// so invariant 4 (sum of heights == determinant sum) holds
		// for the triangulation as a whole when the caller wants it.
		s.Vol = new(big.Rat).SetFrac(absDet, factorial(int64(d)))
		return res, nil
	}

	vol := new(big.Rat).SetFrac(absDet, factorial(int64(d)))
	s.Vol = vol
	res.MultiplicitySum = new(big.Rat).Set(vol)

	candidates, deg1 := e.boxLatticePoints(rows, absDet, grading)
	res.Candidates = candidates
	res.Degree1Points = deg1

	if grading != nil {
		for _, c := range candidates {
			deg := grading.Dot(c)
			if !deg.IsInt64() {
				continue
			}
			dInt := deg.Int64()
			if res.SeriesByDegree[dInt] == nil {
				res.SeriesByDegree[dInt] = big.NewInt(0)
			}
			res.SeriesByDegree[dInt].Add(res.SeriesByDegree[dInt], big.NewInt(1))
		}
	}

	return res, nil
}

func factorial(n int64) *big.Int {
	f := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		f.Mul(f, big.NewInt(i))
	}
	return f
}

// boxLatticePoints enumerates the lattice points of the simplex's
// fundamental parallelepiped { sum_a t_a*rows[a] : t_a in [0,1) }: an
// integer point p is a member exactly when its barycentric coordinates
// t = p . M^-1 (M the matrix of rows) all lie in [0,1). It walks the
// integer coordinate box that contains the parallelepiped (computed
// from the positive/negative parts of each row) and keeps the points
// that pass the M^-1 membership test, capping the walk at
// MaxCandidateBoxPoints for large boxes.
func (e *DefaultEvaluator) boxLatticePoints(rows []ring.Vector, absDet *big.Int, grading ring.Vector) (candidates, deg1 []ring.Vector) {
	d := len(rows)
	if d == 0 || absDet.Cmp(big.NewInt(1)) <= 0 {
		return nil, nil
	}
	inv, ok := matrix.New(rows).Invert()
	if !ok {
		return nil, nil
	}
	cols := len(rows[0])

	lo := make([]int64, cols)
	hi := make([]int64, cols)
	for _, row := range rows {
		for c := 0; c < cols; c++ {
			x := row[c].Int64()
			if x < 0 {
				lo[c] += x
			} else {
				hi[c] += x
			}
		}
	}

	limit := int64(e.MaxCandidateBoxPoints)
	point := make([]int64, cols)
	copy(point, lo)

	one := big.NewRat(1, 1)
	for scanned := int64(0); scanned < limit; scanned++ {
		t := make([]*big.Rat, d)
		inBox := true
		for a := 0; a < d; a++ {
			t[a] = new(big.Rat)
			for c := 0; c < cols; c++ {
				if point[c] == 0 {
					continue
				}
				term := new(big.Rat).Mul(big.NewRat(point[c], 1), inv[c][a])
				t[a].Add(t[a], term)
			}
			if t[a].Sign() < 0 || t[a].Cmp(one) >= 0 {
				inBox = false
			}
		}

		if inBox {
			lat := make(ring.Vector, cols)
			isZero := true
			for c := 0; c < cols; c++ {
				lat[c] = big.NewInt(point[c])
				if point[c] != 0 {
					isZero = false
				}
			}
			if !isZero {
				candidates = append(candidates, lat)
				if grading != nil {
					deg := grading.Dot(lat)
					if deg.Cmp(big.NewInt(1)) == 0 {
						deg1 = append(deg1, lat)
					}
				}
			}
		}

		c := 0
		for ; c < cols; c++ {
			point[c]++
			if point[c] <= hi[c] {
				break
			}
			point[c] = lo[c]
		}
		if c == cols {
			break
		}
	}

	return candidates, deg1
}
