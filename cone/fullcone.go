package cone

import (
	"math/big"
	"sync"

	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/ring"
	"github.com/nmz-go/fullcone/simplex"
)

// Property names one of the results FullCone.Compute can produce, used
// by the computed-bitset bookkeeping spec.md section 6 calls for:
// "getters are only valid after compute() has run the tasks that
// produce them; calling one earlier is a programmer error, not a
// runtime condition to recover from."
type Property int

const (
	PropSupportHyperplanes Property = iota
	PropExtremeRays
	PropTriangulation
	PropMultiplicity
	PropHilbertBasis
	PropDegree1Points
	PropHilbertSeries
	PropStanleyDecomp
	PropPointed
	PropGrading
)

// pyramid is a sub-cone of generators spawned by the pivot when a
// facet's candidate set is large enough to warrant divide-and-conquer
// (spec.md 4.5). Unlike the original source's Top_Key renumbering
// optimization, key indexes directly into the parent's generator
// slice: every FullCone operation already accepts arbitrary index
// lists (Matrix.Submatrix, bitset membership), so a second index space
// buys nothing but bookkeeping risk.
type pyramid struct {
	key         []int
	motherFacet *Facet
	storeLevel  int
	recursive   bool
}

// FullCone is the combinatorial engine spec.md section 3 describes: a
// rational polyhedral cone given by generators, together with whatever
// subset of support hyperplanes, triangulation, Hilbert basis, degree-1
// points, Hilbert series and multiplicity Tasks asked for.
//
// A FullCone that is itself a pyramid (isPyramid true) shares only its
// Evaluator with parent; its Facets pool, triangulation and statistics
// counters are its own, and processPyramid folds the facets and
// simplices back into parent afterwards.
type FullCone struct {
	Dim        int
	Generators []ring.Vector

	Facets *FacetPool

	Triangulation    []simplex.ShortSimplex
	TriSectionFirst  []int
	TriSectionLast   []int

	pyramidStore  map[int][]*pyramid
	largeRecPyrs  []*pyramid

	Candidates  []ring.Vector
	OrderVector ring.Vector

	// OrderVectorSeed seeds the PRNG buildOrderVector uses to weight
	// the start simplex's generators (spec.md 4.4; spec.md 9's open
	// question on the order-vector seed). Zero means "use the default
	// fixed seed derived from the generator count," so a caller never
	// has to set this to get the portable-across-binaries behavior the
	// redesign calls for; setting it explicitly picks a different, but
	// still reproducible, order vector.
	OrderVectorSeed uint64

	Tasks     TaskFlags
	Evaluator simplex.Evaluator

	Grading      ring.Vector
	GradingKnown bool

	IsPointedVal bool

	ExtremeRayFlags *bitset.Bitset

	SupportHyperplanesVal []ring.Vector
	HilbertBasisVal       []ring.Vector
	Degree1Val            []ring.Vector
	ExcludedFacesVal      [][]int
	MultiplicityVal       *big.Rat
	HilbertSeriesVal      map[int64]*big.Int
	ModuleRankVal         int
	ShiftVal              *big.Int

	// ExcludedForms lists linear forms declaring faces to exclude from
	// the Hilbert-series inclusion-exclusion table (SPEC_FULL.md
	// section 4's supplemented excluded-faces feature).
	ExcludedForms []ring.Vector

	mu       sync.Mutex
	computed map[Property]bool

	origIndex []int // maps surviving generator index -> caller's original input index

	isPyramid bool
	parent    *FullCone

	statTotalComparisons int64
	statTotalPyramids    int64
}

// NewFullCone builds a FullCone from a raw generator matrix (spec.md
// section 6, first constructor). Generators are cleaned by intake
// before storage, and a cleaned generator set that is not of full rank
// is rejected with a BadInputError; origIndex lets callers translate an ExtremeRayFlags
// bit back to a row of the caller's original input.
func NewFullCone(raw []ring.Vector, tasks TaskFlags) (*FullCone, error) {
	gens, origIdx, err := intake(raw)
	if err != nil {
		return nil, err
	}
	if _, err := pickStartSimplex(gens, nil); err != nil {
		return nil, err
	}
	tasks.applyImplications()

	fc := &FullCone{
		Dim:              len(gens[0]),
		Generators:       gens,
		origIndex:        origIdx,
		Facets:           NewFacetPool(numWorkers()),
		pyramidStore:     make(map[int][]*pyramid),
		Tasks:            tasks,
		Evaluator:        simplex.NewDefaultEvaluator(),
		computed:         make(map[Property]bool),
	}
	return fc, nil
}

// NewFullConeFromDual seeds a FullCone with generators and their
// extreme-ray status already known from a dual algorithm (spec.md
// section 6, second constructor: "seeds the core with generators and
// support hyperplanes already computed by a dual algorithm").
// supportHyperplanes and their GenInHyp incidence are installed
// directly into the facet pool and taken as the final support
// hyperplane set: when the pool is non-empty, Compute skips grading
// discovery, the primal insertion loop and triangulation, so such a
// cone has no simplices for the evaluator to work on.
func NewFullConeFromDual(raw []ring.Vector, extremeFlags []bool, supportHyperplanes []ring.Vector, tasks TaskFlags) (*FullCone, error) {
	gens, origIdx, err := intake(raw)
	if err != nil {
		return nil, err
	}
	tasks.applyImplications()

	fc := &FullCone{
		Dim:              len(gens[0]),
		Generators:       gens,
		origIndex:        origIdx,
		Facets:           NewFacetPool(numWorkers()),
		pyramidStore:     make(map[int][]*pyramid),
		Tasks:            tasks,
		Evaluator:        simplex.NewDefaultEvaluator(),
		computed:         make(map[Property]bool),
	}

	if extremeFlags != nil {
		flags := bitset.New(len(gens))
		for i, orig := range origIdx {
			if orig < len(extremeFlags) && extremeFlags[orig] {
				flags.Set(i)
			}
		}
		fc.ExtremeRayFlags = flags
	}

	for _, h := range supportHyperplanes {
		in := bitset.New(len(gens))
		for i, g := range gens {
			if h.Dot(g).Sign() == 0 {
				in.Set(i)
			}
		}
		fc.Facets.Append(&Facet{Hyp: h, GenInHyp: in, ValNewGen: new(big.Int)})
	}

	return fc, nil
}

func (fc *FullCone) markComputed(p Property) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.computed == nil {
		fc.computed = make(map[Property]bool)
	}
	fc.computed[p] = true
}

// Computed reports whether the named property has been produced by a
// prior Compute call.
func (fc *FullCone) Computed(p Property) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.computed[p]
}

// SupportHyperplanes returns the computed support hyperplanes. Valid
// only once Computed(PropSupportHyperplanes) is true.
func (fc *FullCone) SupportHyperplanes() []ring.Vector { return fc.SupportHyperplanesVal }

// ExtremeRays returns, for every generator in Generators (in the same
// order), whether it is an extreme ray of the cone. Valid only once
// Computed(PropExtremeRays) is true.
func (fc *FullCone) ExtremeRays() []bool {
	out := make([]bool, len(fc.Generators))
	for i := range out {
		out[i] = fc.ExtremeRayFlags != nil && fc.ExtremeRayFlags.Test(i)
	}
	return out
}

// IsPointed reports whether the cone contains no line. Valid only once
// Computed(PropPointed) is true.
func (fc *FullCone) IsPointed() bool { return fc.IsPointedVal }

// Multiplicity returns the normalized volume of the cone (sum of
// |det| / d! over the triangulation). Valid only once
// Computed(PropMultiplicity) is true.
func (fc *FullCone) Multiplicity() *big.Rat { return fc.MultiplicityVal }

// HilbertBasis returns the reduced Hilbert basis. Valid only once
// Computed(PropHilbertBasis) is true.
func (fc *FullCone) HilbertBasis() []ring.Vector { return fc.HilbertBasisVal }

// Degree1Elements returns the lattice points of degree 1 with respect
// to Grading. Valid only once Computed(PropDegree1Points) is true.
func (fc *FullCone) Degree1Elements() []ring.Vector { return fc.Degree1Val }

// HilbertSeriesNumerator returns the numerator of the Hilbert series as
// a map from degree to coefficient. Valid only once
// Computed(PropHilbertSeries) is true.
func (fc *FullCone) HilbertSeriesNumerator() map[int64]*big.Int { return fc.HilbertSeriesVal }

// TriangulationSections returns, index-aligned, the [first, last]
// range into Triangulation that a single generator insertion
// contributed (spec.md section 3's "section indices"). Valid only
// once Computed(PropTriangulation) is true.
func (fc *FullCone) TriangulationSections() (first, last []int) {
	return fc.TriSectionFirst, fc.TriSectionLast
}

// ExcludedFaces returns, for each linear form in ExcludedForms, the
// generator indices on which it vanishes (SPEC_FULL.md section 4's
// supplemented excluded-faces feature). Populated by every Compute
// call, empty when ExcludedForms was never set.
func (fc *FullCone) ExcludedFaces() [][]int { return fc.ExcludedFacesVal }
