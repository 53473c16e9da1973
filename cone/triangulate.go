package cone

import (
	"math/big"

	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
	"github.com/nmz-go/fullcone/simplex"
)

// extendTriangulation adds the simplices formed by coning the new
// generator newGenIdx over every facet the pivot just marked as
// "positive-before, now excluded" — i.e. every facet whose ValNewGen
// was negative for this generator, recorded right before Prune
// discarded it (spec.md 4.1 component E). fc.Tasks.ComputeTriangulation
// (or PartialTriangulation) must be set; callers check that before
// calling.
//
// negFacets are the facets classified signNeg during this generator's
// pivot step, captured by the caller before Facets.Prune ran.
func (fc *FullCone) extendTriangulation(newGenIdx int, negFacets []*Facet) {
	start := len(fc.Triangulation)
	for _, f := range negFacets {
		if fc.Tasks.PartialTriangulation && fc.isPyramid {
			if !isHyperplaneIncluded(f.Hyp, fc.OrderVector, fc.isPyramid) {
				continue
			}
		}
		key := append(append([]int{}, f.GenInHyp.Bits()...), newGenIdx)
		if len(key) != fc.Dim {
			// Non-simplicial facet: the cone over it needs its own
			// sub-triangulation before it contributes a simplex here.
			// Handled by triangulateNonSimplicial.
			fc.triangulateNonSimplicial(key, newGenIdx)
			continue
		}
		// Simplicial case (spec.md 4.1 component E): height = |ValNewGen|,
		// the facet's dot product with the apex generator, set by
		// insertGenerator on this same Facet before Prune discarded it.
		height := new(big.Int).Abs(f.ValNewGen)
		fc.Triangulation = append(fc.Triangulation, simplex.ShortSimplex{Key: key, Height: height})
	}
	fc.TriSectionFirst = append(fc.TriSectionFirst, start)
	fc.TriSectionLast = append(fc.TriSectionLast, len(fc.Triangulation)-1)
}

// triangulateNonSimplicial splits a non-simplicial facet cone (key has
// more than Dim-1 generators before coning over newGenIdx) into
// simplices by building a sub-FullCone over key's generators, running
// its own insertion loop, and mapping the sub-cone's simplices back to
// parent indices. This is the "section generalizes to non-simplicial
// facets" clause of spec.md 4.1.
func (fc *FullCone) triangulateNonSimplicial(key []int, coneApex int) {
	if len(key) == fc.Dim {
		k := append([]int{}, key...)
		fc.Triangulation = append(fc.Triangulation, simplex.ShortSimplex{Key: k, Height: fc.simplexHeight(k)})
		return
	}
	if len(key) < fc.Dim {
		return
	}

	gens := make([]ring.Vector, len(key))
	for i, idx := range key {
		gens[i] = fc.Generators[idx]
	}

	sub, err := NewFullCone(gens, TaskFlags{ComputeTriangulation: true})
	if err != nil {
		return
	}
	if err := sub.computeTriangulationOnly(); err != nil {
		return
	}
	for _, s := range sub.Triangulation {
		mapped := make([]int, len(s.Key))
		for i, local := range s.Key {
			mapped[i] = key[local]
		}
		fc.Triangulation = append(fc.Triangulation, simplex.ShortSimplex{Key: mapped, Height: fc.simplexHeight(mapped)})
	}
}

// simplexHeight computes the absolute determinant of the generators
// named by key, used as a simplex's height whenever it isn't available
// as a facet's ValNewGen directly (spec.md section 3's "height" field).
func (fc *FullCone) simplexHeight(key []int) *big.Int {
	rows := make([]ring.Vector, len(key))
	for i, idx := range key {
		rows[i] = fc.Generators[idx]
	}
	return new(big.Int).Abs(matrix.New(rows).Determinant())
}

// computeTriangulationOnly runs just enough of Compute to populate
// Triangulation, used by triangulateNonSimplicial's one-off sub-cones.
func (fc *FullCone) computeTriangulationOnly() error {
	fc.Tasks.ComputeTriangulation = true
	return fc.buildSupportHyperplanesAndTriangulation()
}
