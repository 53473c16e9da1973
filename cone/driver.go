package cone

import (
	"math/big"
	"time"

	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/env"
	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
	"github.com/nmz-go/fullcone/simplex"
)

// Compute runs the task pipeline spec.md 4.6 describes: grading
// discovery, start-simplex seeding, the main insertion loop (pivot +
// optional triangulation extension + pyramid dispatch), pyramid
// drains, extreme-ray and pointedness post-processing, and finally the
// global Hilbert basis reduction and any simplex-evaluation-derived
// quantities (multiplicity, degree-1 points, Hilbert series).
func (fc *FullCone) Compute() error {
	start := time.Now()
	log := env.VerboseLog()

	if len(fc.Facets.Facets()) == 0 {
		if err := fc.deduceGrading(); err != nil {
			return err
		}
		if err := fc.buildSupportHyperplanesAndTriangulation(); err != nil {
			return err
		}
	}

	fc.detectExtremeRays()
	fc.checkPointed()

	if fc.Tasks.ComputeHilbertBasis || fc.Tasks.ComputeDegree1Points || fc.Tasks.ComputeHilbertSeries {
		if err := fc.evaluateTriangulation(); err != nil {
			return err
		}
		fc.HilbertBasisVal = fc.reduceCandidates()
		fc.markComputed(PropHilbertBasis)
		if fc.Tasks.ComputeDegree1Points {
			fc.markComputed(PropDegree1Points)
		}
		if fc.Tasks.ComputeHilbertSeries {
			fc.markComputed(PropHilbertSeries)
		}
	} else if fc.Tasks.ComputeTriangulation && fc.Tasks.ComputeMultiplicity {
		if err := fc.evaluateTriangulation(); err != nil {
			return err
		}
	}

	if fc.Tasks.ComputeMultiplicity {
		fc.markComputed(PropMultiplicity)
	}
	if fc.Tasks.ComputeTriangulation {
		fc.markComputed(PropTriangulation)
	}
	if fc.Tasks.ComputeStanleyDecomp {
		fc.markComputed(PropStanleyDecomp)
	}

	fc.ExcludedFacesVal = fc.excludedFaces()
	fc.SupportHyperplanesVal = fc.supportHyperplanesFrom()
	fc.markComputed(PropSupportHyperplanes)

	if !fc.isPyramid {
		log.Debug().
			Dur("took", time.Since(start)).
			Int("generators", len(fc.Generators)).
			Int("supportHyperplanes", len(fc.SupportHyperplanesVal)).
			Int64("pivotComparisons", fc.statTotalComparisons).
			Int64("pyramidsSpawned", fc.statTotalPyramids).
			Str("detSum", fc.detSum().String()).
			Msg("cone computation finished")
	}

	return nil
}

// buildSupportHyperplanesAndTriangulation runs the pivot's insertion
// loop over every generator not already seeded into the facet pool
// (spec.md 4.1, 4.6 step 5): pick a start simplex, derive an order
// vector, fold in the remaining generators one at a time, extending
// the triangulation and spinning off pyramids as the pivot directs.
func (fc *FullCone) buildSupportHyperplanesAndTriangulation() error {
	seeded := fc.Facets.Len() > 0

	startKeys, err := fc.startKeysFor(seeded)
	if err != nil {
		return err
	}

	inCone := bitsetFromKeys(len(fc.Generators), startKeys)
	if !seeded {
		if err := fc.seedStartSimplex(startKeys); err != nil {
			return err
		}
		if fc.Tasks.ComputeTriangulation {
			key := append([]int{}, startKeys...)
			fc.Triangulation = append(fc.Triangulation, simplex.ShortSimplex{Key: key, Height: fc.simplexHeight(key)})
			fc.TriSectionFirst = append(fc.TriSectionFirst, 0)
			fc.TriSectionLast = append(fc.TriSectionLast, 0)
		}
	}

	if fc.OrderVector == nil {
		seed := fc.OrderVectorSeed
		if seed == 0 {
			seed = uint64(len(fc.Generators)) + 1
		}
		fc.OrderVector = buildOrderVector(fc.Generators, startKeys, seed)
	}

	genCount := len(startKeys)
	for i := range fc.Generators {
		if inCone[i] {
			continue
		}

		var negFacets []*Facet
		if fc.Tasks.ComputeTriangulation {
			negFacets = fc.negativeFacetsAgainst(i)
		}

		if err := fc.insertGenerator(i, genCount); err != nil {
			return err
		}

		if fc.Tasks.ComputeTriangulation {
			fc.extendTriangulation(i, negFacets)
		}

		genCount++

		if fc.Facets.Len() > SuppHypRecursionFactor*fc.Dim*fc.Dim*fc.Dim*fc.Dim {
			fc.queueLargeFacetsAsPyramids(i, genCount)
		}
	}

	for level := range fc.pyramidStore {
		if err := fc.drainPyramids(level); err != nil {
			return err
		}
	}

	return nil
}

// detSum sums every stored simplex's height, the quantity spec.md
// invariant 4 calls "the determinant-sum reported by the driver".
func (fc *FullCone) detSum() *big.Int {
	sum := new(big.Int)
	for _, s := range fc.Triangulation {
		if s.Height != nil {
			sum.Add(sum, s.Height)
		}
	}
	return sum
}

// negativeFacetsAgainst recomputes which current facets would be
// eliminated by generator i, for the triangulation extender to use
// before insertGenerator prunes them away.
func (fc *FullCone) negativeFacetsAgainst(i int) []*Facet {
	g := fc.Generators[i]
	var neg []*Facet
	for _, f := range fc.Facets.Facets() {
		if f.Hyp.Dot(g).Sign() < 0 {
			neg = append(neg, f)
		}
	}
	return neg
}

// queueLargeFacetsAsPyramids spins off a pyramid for every facet whose
// candidate cone is large enough to be worth dispatching separately
// (spec.md 4.5), once the live facet count crosses the pyramidal mode
// threshold.
func (fc *FullCone) queueLargeFacetsAsPyramids(newGenIdx, level int) {
	for _, f := range fc.Facets.Facets() {
		if f.GenInHyp.Count() > LargePyramidFactor {
			fc.queuePyramid(f, newGenIdx, level)
		}
	}
}

func (fc *FullCone) startKeysFor(seeded bool) ([]int, error) {
	if seeded {
		// Generators already marked extreme by the dual seed form the
		// preferred start simplex.
		return pickStartSimplex(fc.Generators, fc.extremeFlagsSlice())
	}
	return pickStartSimplex(fc.Generators, nil)
}

func (fc *FullCone) extremeFlagsSlice() []bool {
	if fc.ExtremeRayFlags == nil {
		return nil
	}
	out := make([]bool, len(fc.Generators))
	for i := range out {
		out[i] = fc.ExtremeRayFlags.Test(i)
	}
	return out
}

func bitsetFromKeys(n int, keys []int) []bool {
	out := make([]bool, n)
	for _, k := range keys {
		out[k] = true
	}
	return out
}

// seedStartSimplex installs the dim facets of the start simplex
// directly (each facet excludes exactly one of the simplex's
// generators), per spec.md 4.4.
func (fc *FullCone) seedStartSimplex(keys []int) error {
	rows := make([]ring.Vector, len(keys))
	for i, k := range keys {
		rows[i] = fc.Generators[k]
	}
	duals, ok := matrix.New(rows).DualBasis()
	if !ok {
		return &FatalError{Invariant: "start simplex is singular"}
	}

	for col, normal := range duals {
		in := bitset.New(len(fc.Generators))
		for i, k := range keys {
			if i != col {
				in.Set(k)
			}
		}
		fc.Facets.Append(&Facet{
			Hyp:       normal,
			GenInHyp:  in,
			ValNewGen: new(big.Int),
			Ident:     fc.Facets.NextIdent(0),
			BornAt:    0,
		})
	}
	return nil
}
