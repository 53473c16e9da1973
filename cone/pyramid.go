package cone

import (
	"math/big"

	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/ring"
)

// queuePyramid stores, at the given level, a pyramid over the cone
// spanned by f's incident generators plus newGenIdx (spec.md 4.5,
// component F). Every pyramid is queued, never processed inline; a
// later drainPyramids pass processes them. Pyramids whose key is
// longer than SuppHypRecursionFactor * Dim are marked recursive and
// also recorded in largeRecPyrs, but are drained the same way.
func (fc *FullCone) queuePyramid(f *Facet, newGenIdx int, level int) {
	key := append(append([]int{}, f.GenInHyp.Bits()...), newGenIdx)

	recursive := len(key) > SuppHypRecursionFactor*fc.Dim

	p := &pyramid{
		key:         key,
		motherFacet: f,
		storeLevel:  level,
		recursive:   recursive,
	}

	fc.mu.Lock()
	fc.pyramidStore[level] = append(fc.pyramidStore[level], p)
	if recursive {
		fc.largeRecPyrs = append(fc.largeRecPyrs, p)
	}
	fc.statTotalPyramids++
	fc.mu.Unlock()
}

// drainPyramids processes every queued pyramid at storeLevel,
// recursing into FullCone.Compute on each pyramid's own generator
// subset and folding its reported support hyperplanes and
// triangulation contributions back into the parent (spec.md 4.5:
// "daughter cones ... inherit nothing of the parent's facet pool").
func (fc *FullCone) drainPyramids(level int) error {
	pyramids := fc.pyramidStore[level]
	delete(fc.pyramidStore, level)

	for _, p := range pyramids {
		if err := fc.processPyramid(p, level); err != nil {
			return err
		}
	}
	return nil
}

func (fc *FullCone) processPyramid(p *pyramid, level int) error {
	gens := make([]ring.Vector, len(p.key))
	for i, idx := range p.key {
		gens[i] = fc.Generators[idx]
	}

	tasks := fc.Tasks
	tasks.PartialTriangulation = fc.Tasks.ComputeTriangulation && !fc.Tasks.KeepTriangulation

	sub, err := NewFullCone(gens, tasks)
	if err != nil {
		return err
	}
	sub.isPyramid = true
	sub.parent = fc
	sub.Evaluator = fc.Evaluator
	sub.Grading = fc.Grading
	sub.GradingKnown = fc.GradingKnown
	sub.OrderVector = remapOrderVector(fc.OrderVector, p.key)

	if err := sub.Compute(); err != nil {
		return err
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Support hyperplanes the sub-cone discovered are candidates for
	// the parent's own facet pool (spec.md 4.3's select_supphyps_from):
	// remap their local GenInHyp (indexed over p.key) back to the
	// parent's global generator indices, tag Mother so later ridge
	// tests against the originating facet take the mother-daughter
	// shortcut instead of the full rank test, and dedup against facets
	// already in the pool.
	var folded []*Facet
	for _, sf := range sub.Facets.Facets() {
		in := bitset.New(len(fc.Generators))
		for _, local := range sf.GenInHyp.Bits() {
			in.Set(p.key[local])
		}
		stripe := pyramidStripe(p.key, fc.Facets.numStripes)
		folded = append(folded, &Facet{
			Hyp:       sf.Hyp,
			GenInHyp:  in,
			ValNewGen: new(big.Int),
			Ident:     fc.Facets.NextIdent(stripe),
			Mother:    p.motherFacet.Ident,
			BornAt:    p.storeLevel,
		})
	}
	fc.Facets.AppendDedup(folded...)

	for _, s := range sub.Triangulation {
		mapped := make([]int, len(s.Key))
		for i, local := range s.Key {
			mapped[i] = p.key[local]
		}
		s.Key = mapped
		fc.Triangulation = append(fc.Triangulation, s)
	}

	return nil
}

func pyramidStripe(key []int, numStripes int) int {
	if numStripes <= 0 {
		return 0
	}
	return key[len(key)-1] % numStripes
}

// remapOrderVector returns the parent's order vector unchanged: it is a
// weighting over coordinate space, not generator index, so a pyramid
// sharing the same ambient dimension needs no remapping despite
// operating over a different generator subset (key).
func remapOrderVector(parentOrder ring.Vector, key []int) ring.Vector {
	return parentOrder
}

