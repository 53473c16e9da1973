package cone

// Thresholds controlling recursion and buffer draining (spec.md 4.3).
// Names and values are carried over from the original source's
// full_cone.cpp (RecBoundTriang, EvalBoundTriang, EvalBoundPyr,
// EvalBoundRecPyr, largePyramidFactor, SuppHypRecursionFactor), since
// they are tuned constants of the algorithm, not implementation
// choices.
const (
	// SuppHypRecursionFactor: pivot switches to pyramidal mode once the
	// live facet count exceeds SuppHypRecursionFactor * dim^4.
	SuppHypRecursionFactor = 100

	// LargePyramidFactor: once pyramidal mode is on, every live facet
	// incident to more than LargePyramidFactor generators is queued as
	// a pyramid (queueLargeFacetsAsPyramids).
	LargePyramidFactor = 20

	// The four bounds below carry the original's values for the
	// stored-simplex, stored-pyramid and stored-recursive-pyramid soft
	// caps and the intermediate Hilbert basis reduction trigger. No
	// code path reads them: simplices and pyramids are drained only
	// after the insertion loop, and candidates are reduced once, by
	// reduceCandidates.

	// EvalBoundTriang is the original's soft cap on stored simplices.
	EvalBoundTriang = 2500000

	// EvalBoundPyr is the original's soft cap on stored pyramids.
	EvalBoundPyr = 200000

	// EvalBoundRecPyr is the original's soft cap on stored recursive
	// pyramids.
	EvalBoundRecPyr = 20000

	// IntermedRedBoundHB is the original's candidate-list size for an
	// intermediate Hilbert basis reduction pass.
	IntermedRedBoundHB = 2000000
)
