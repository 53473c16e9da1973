package cone

import (
	"math/big"

	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
)

// deduceGrading establishes fc.Grading when one hasn't been supplied
// explicitly (spec.md 4.6 step 3): try to recover a linear form that
// is 1 on every generator; if the system is inconsistent or
// underdetermined, the cone is left ungraded and every
// grading-dependent task is simply skipped downstream. A caller that
// already set Grading before Compute keeps it untouched.
func (fc *FullCone) deduceGrading() error {
	if !fc.GradingKnown {
		needsGrading := fc.Tasks.ComputeDegree1Points || fc.Tasks.ComputeHilbertSeries
		if needsGrading {
			m := matrix.New(fc.Generators)
			if form, ok := matrix.FindLinearForm(m, nil); ok {
				fc.Grading = form
				fc.GradingKnown = true
				fc.markComputed(PropGrading)
			}
			// No common degree-1 normalization exists: leave ungraded.
			// This is not an error; spec.md lists "no grading
			// recoverable" as an edge case, not a failure.
		}
	}

	if !fc.GradingKnown || fc.Grading == nil {
		return nil
	}

	// Sort generators by degree, then by input order (spec.md 4.6 step
	// 4), whether the grading was just derived above or supplied by
	// the caller before Compute ran. deduceGrading only ever runs
	// before any facet exists (Compute guards the call on an empty
	// pool), so reordering generators in place here is safe: no
	// GenInHyp bitset yet depends on the index order. A dual seed's
	// ExtremeRayFlags, however, was already assigned against the
	// pre-sort order, so it is carried through the same permutation to
	// stay aligned with fc.Generators.
	extremeFlags := fc.extremeFlagsSlice()
	sortByDegree(fc.Generators, fc.origIndex, extremeFlags, fc.Grading)
	if extremeFlags != nil {
		flags := bitset.New(len(extremeFlags))
		for i, ok := range extremeFlags {
			if ok {
				flags.Set(i)
			}
		}
		fc.ExtremeRayFlags = flags
	}
	return nil
}

// degreeOf reports g's degree under the known grading, or nil if
// ungraded.
func (fc *FullCone) degreeOf(g ring.Vector) *big.Int {
	if !fc.GradingKnown || fc.Grading == nil {
		return nil
	}
	return fc.Grading.Dot(g)
}
