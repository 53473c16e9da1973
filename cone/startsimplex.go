package cone

import (
	"math/big"
	"math/rand/v2"

	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
)

// pickStartSimplex selects d linearly independent generators to seed
// the facet pool (spec.md 4.4). If extremeFlags marks some generators
// as pre-known extreme rays (from a dual-cone seed, spec.md 6's second
// constructor), it prefers a lex-max-rank selection among those before
// falling back to any linearly independent generator.
func pickStartSimplex(gens []ring.Vector, extremeFlags []bool) ([]int, error) {
	dim := len(gens[0])
	if len(gens) < dim {
		return nil, &BadInputError{Reason: "fewer generators than the dimension: cannot be full rank"}
	}

	tryBuild := func(candidates []int) []int {
		var chosen []int
		rows := make([]ring.Vector, 0, dim)
		for _, idx := range candidates {
			trial := append(append([]ring.Vector{}, rows...), gens[idx])
			if matrix.New(trial).RankExact() == len(trial) {
				rows = trial
				chosen = append(chosen, idx)
				if len(chosen) == dim {
					return chosen
				}
			}
		}
		return nil
	}

	if extremeFlags != nil {
		var marked []int
		for i, f := range extremeFlags {
			if f {
				marked = append(marked, i)
			}
		}
		if chosen := tryBuild(marked); chosen != nil {
			return chosen, nil
		}
	}

	all := make([]int, len(gens))
	for i := range all {
		all[i] = i
	}
	chosen := tryBuild(all)
	if chosen == nil {
		return nil, &BadInputError{Reason: "generator matrix is not full rank"}
	}
	return chosen, nil
}

// buildOrderVector computes an integer linear combination of the start
// simplex's generators with pseudo-random odd positive coefficients
// (spec.md 4.4). Per the redesign flag in spec.md 9 ("Open questions:
// the order-vector random seed is fixed implicitly... a
// reimplementation should use an explicitly seeded PRNG"), the
// generator is seeded explicitly so a run is portably reproducible
// across binaries and platforms, not merely across runs of the same
// binary.
func buildOrderVector(gens []ring.Vector, startKeys []int, seed uint64) ring.Vector {
	dim := len(gens[0])
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	order := make(ring.Vector, dim)
	for i := range order {
		order[i] = new(big.Int)
	}
	for _, k := range startKeys {
		coeff := big.NewInt(int64(2*rng.IntN(50) + 1)) // odd, positive
		order = order.Add(gens[k].ScalarMul(coeff))
	}
	return order
}

// isHyperplaneIncluded implements the original source's
// is_hyperplane_included: a facet is excluded from partial
// triangulation when its normal satisfies normal.orderVector <= 0,
// with a deterministic lexicographic tie-break on exactly zero. The
// top cone always includes every facet; only pyramids ever exclude
// one.
func isHyperplaneIncluded(hyp, orderVector ring.Vector, isPyramid bool) bool {
	if !isPyramid {
		return true
	}
	ov := hyp.Dot(orderVector)
	switch {
	case ov.Sign() > 0:
		return true
	case ov.Sign() < 0:
		return false
	default:
		return hyp.LexSign() > 0
	}
}
