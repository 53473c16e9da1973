package cone

import (
	"math/big"
	"sort"

	"github.com/nmz-go/fullcone/internal/ring"
)

// scored pairs a candidate with its degree and its scalar products
// against every support hyperplane, cached once up front so the
// reducer's pairwise domination test never recomputes them.
type scored struct {
	v      ring.Vector
	degree *big.Int
	vals   []*big.Int
}

// reduceCandidates runs the global Hilbert-basis reducer of spec.md
// 4.2 (component H): candidates are sorted by degree, then a
// candidate is discarded if some earlier-kept (lower- or equal-degree)
// element dominates it against every support hyperplane's scalar
// product. What survives is the Hilbert basis.
func (fc *FullCone) reduceCandidates() []ring.Vector {
	// Every generator is itself a Hilbert basis candidate (an extreme
	// ray's primitive vector is irreducible by construction), but the
	// simplex evaluators only ever contribute interior lattice points
	// of their fundamental parallelepipeds (spec.md S2: "Hilbert basis
	// equals the three generators" for a cone with no interior points
	// at all). Seed the pool with them here, deduped against anything
	// a simplex already produced.
	seen := make(map[string]bool, len(fc.Candidates))
	cands := make([]ring.Vector, 0, len(fc.Candidates)+len(fc.Generators))
	for _, c := range fc.Candidates {
		seen[vectorKey(c)] = true
		cands = append(cands, c)
	}
	for _, g := range fc.Generators {
		k := vectorKey(g)
		if seen[k] {
			continue
		}
		seen[k] = true
		cands = append(cands, g)
	}
	// Compute only populates fc.SupportHyperplanesVal after this runs
	// (spec.md 4.6's reduction step comes before the getter snapshot),
	// so read the live facet pool directly rather than the cached slice.
	hyps := fc.supportHyperplanesFrom()

	scoredOf := func(v ring.Vector) scored {
		vals := make([]*big.Int, len(hyps))
		for i, h := range hyps {
			vals[i] = h.Dot(v)
		}
		var deg *big.Int
		if fc.GradingKnown && fc.Grading != nil {
			deg = fc.Grading.Dot(v)
		} else {
			deg = sumVector(vals)
		}
		return scored{v: v, degree: deg, vals: vals}
	}

	items := make([]scored, len(cands))
	for i, c := range cands {
		items[i] = scoredOf(c)
	}
	sort.Slice(items, func(i, j int) bool {
		c := items[i].degree.Cmp(items[j].degree)
		if c != 0 {
			return c < 0
		}
		return items[i].v.LexSign() < items[j].v.LexSign()
	})

	var kept []scored
	for _, it := range items {
		dominated := false
		for _, k := range kept {
			if dominates(k, it) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, it)
		}
	}

	out := make([]ring.Vector, len(kept))
	for i, k := range kept {
		out[i] = k.v
	}
	return out
}

// dominates reports whether candidate x is dominated by the
// already-kept element k: x = k + r for some effective nonnegative
// remainder visible through every support hyperplane's scalar product,
// and x != k. This is the degree-sorted domination test spec.md 4.2
// describes: "reduce x by k if x - k is itself in the monoid
// generated by the current Hilbert basis candidates", approximated
// here (as the original does, prior to an expensive exact membership
// test) by checking nonnegativity of every hyperplane value of x-k and
// that k is not itself already x.
func dominates(k, x scored) bool {
	if k.degree.Cmp(x.degree) > 0 {
		return false
	}
	if k.v.Equal(x.v) {
		return false
	}
	for i := range k.vals {
		if new(big.Int).Sub(x.vals[i], k.vals[i]).Sign() < 0 {
			return false
		}
	}
	diff := x.v.Sub(k.v)
	return !diff.IsZero()
}

func sumVector(vals []*big.Int) *big.Int {
	s := new(big.Int)
	for _, v := range vals {
		s.Add(s, v)
	}
	return s
}
