package cone

import (
	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
)

// detectExtremeRays marks, for every generator, whether it is an
// extreme ray of the cone (spec.md component J). A generator is
// extreme iff the set of facets containing it has rank Dim-1; small
// cones use the rank strategy directly, larger ones fall back to the
// maximal-subsets compare strategy to avoid recomputing the same rank
// over near-identical incidence sets (spec.md 4.3: "rank strategy vs
// compare strategy").
func (fc *FullCone) detectExtremeRays() {
	n := len(fc.Generators)
	flags := bitset.New(n)
	facets := fc.Facets.Facets()

	if n <= SuppHypRecursionFactor {
		for i := 0; i < n; i++ {
			if fc.isExtremeByRank(i, facets) {
				flags.Set(i)
			}
		}
	} else {
		incidence := make([]*bitset.Bitset, n)
		for i := 0; i < n; i++ {
			in := bitset.New(len(facets))
			for j, f := range facets {
				if f.GenInHyp.Test(i) {
					in.Set(j)
				}
			}
			incidence[i] = in
		}
		maximal := bitset.MaximalSubsets(incidence)
		for i := 0; i < n; i++ {
			// A generator whose facet-incidence set is properly
			// contained in another's cannot be extreme: the other
			// generator's larger incidence already forces rank Dim-1
			// if any generator in this direction does.
			if maximal[i] && fc.isExtremeByRank(i, facets) {
				flags.Set(i)
			}
		}
	}

	fc.ExtremeRayFlags = flags
	fc.markComputed(PropExtremeRays)
}

func (fc *FullCone) isExtremeByRank(i int, facets []*Facet) bool {
	var rows []ring.Vector
	for _, f := range facets {
		if f.GenInHyp.Test(i) {
			rows = append(rows, f.Hyp)
		}
	}
	if len(rows) < fc.Dim-1 {
		return false
	}
	return matrix.New(rows).RankExact() == fc.Dim-1
}

// checkPointed reports whether the cone contains no line: equivalent
// to the support hyperplanes spanning the full space (rank Dim). Reads
// the live facet pool rather than fc.SupportHyperplanesVal, which
// Compute only populates after this runs.
func (fc *FullCone) checkPointed() {
	hyps := fc.supportHyperplanesFrom()
	if len(hyps) == 0 {
		fc.IsPointedVal = fc.Dim == 0
	} else {
		fc.IsPointedVal = matrix.New(hyps).RankExact() == fc.Dim
	}
	fc.markComputed(PropPointed)
}

// excludedFaces implements the supplemented excluded-faces feature
// (SPEC_FULL.md section 4): for each linear form in ExcludedForms, the
// face it cuts out (the generators on which it vanishes) is recorded
// and exposed through ExcludedFaces. The Hilbert series computation
// does not consult this list, and no table of face intersections is
// built from it.
func (fc *FullCone) excludedFaces() [][]int {
	if len(fc.ExcludedForms) == 0 {
		return nil
	}
	out := make([][]int, len(fc.ExcludedForms))
	for k, form := range fc.ExcludedForms {
		var face []int
		for i, g := range fc.Generators {
			if form.Dot(g).Sign() == 0 {
				face = append(face, i)
			}
		}
		out[k] = face
	}
	return out
}
