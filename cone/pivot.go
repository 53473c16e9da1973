package cone

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/nmz-go/fullcone/internal/env"
	"github.com/nmz-go/fullcone/internal/matrix"
	"github.com/nmz-go/fullcone/internal/ring"
)

// sign classifies a facet's ValNewGen against the generator currently
// being inserted (spec.md 4.1 step "Sign classification").
type sign int

const (
	signNeg sign = iota
	signZero
	signPos
)

func classify(v *big.Int) sign {
	switch v.Sign() {
	case -1:
		return signNeg
	case 0:
		return signZero
	default:
		return signPos
	}
}

// insertGenerator runs one Fourier-Motzkin pivot step: generator g
// (index newGenIdx into fc.Generators, already present in the slice
// the caller is folding in one at a time) is tested against every
// current facet, and new facets are built by pairing each negative
// facet with every positive facet whose subfacet intersection check
// passes (spec.md 4.1, component D).
//
// genInConeCount is the number of generators already folded in before
// this call (used to cap isRidge's shared-incidence count and to stamp
// new facets' BornAt).
func (fc *FullCone) insertGenerator(newGenIdx, genInConeCount int) error {
	g := fc.Generators[newGenIdx]
	facets := fc.Facets.Facets()

	neg := make([]*Facet, 0)
	pos := make([]*Facet, 0)
	zero := make([]*Facet, 0)

	checkOverflow := fc.Tasks.TestArithmeticOverflow
	var mu sync.Mutex
	var shadowErr error
	parallelFor(len(facets), func(i, _ int) {
		f := facets[i]
		v := f.Hyp.Dot(g)
		if checkOverflow && arithmeticShadowMismatch(v, f.Hyp, g) {
			mu.Lock()
			if shadowErr == nil {
				shadowErr = &ArithmeticError{Step: "facet/generator dot product"}
			}
			mu.Unlock()
			return
		}
		mu.Lock()
		f.ValNewGen = v
		switch classify(v) {
		case signNeg:
			neg = append(neg, f)
		case signPos:
			pos = append(pos, f)
		default:
			zero = append(zero, f)
			f.GenInHyp.Set(newGenIdx)
		}
		mu.Unlock()
	})

	if shadowErr != nil {
		return shadowErr
	}

	if len(neg) == 0 {
		// g lies in every current halfspace: nothing to eliminate, the
		// facet whose GenInHyp already excludes it stays untouched.
		return nil
	}

	var newFacets []*Facet
	var newMu sync.Mutex
	var comparisons int64

	parallelFor(len(neg), func(ni, stripe int) {
		nf := neg[ni]
		for _, pf := range pos {
			atomic.AddInt64(&comparisons, 1)

			// Mother-daughter shortcut (spec.md 4.1): if one of the two
			// facets is the other's mother, their intersection is taken
			// to be a ridge and the new facet is built without running
			// isRidge.
			if nf.Mother == pf.Ident || pf.Mother == nf.Ident {
				if h, ok := buildRidgeFacet(fc, nf, pf, g, newGenIdx, genInConeCount); ok {
					newMu.Lock()
					newFacets = append(newFacets, h)
					newMu.Unlock()
				}
				continue
			}

			if !isRidge(fc, nf, pf, genInConeCount) {
				continue
			}
			if h, ok := buildRidgeFacet(fc, nf, pf, g, newGenIdx, genInConeCount); ok {
				newMu.Lock()
				newFacets = append(newFacets, h)
				newMu.Unlock()
			}
		}
	})

	fc.mu.Lock()
	fc.statTotalComparisons += comparisons
	fc.mu.Unlock()

	// Phase 4: discard the facets this generator eliminated, keep
	// everything else, then give back the new ridge-built facets.
	fc.Facets.Prune(func(f *Facet) bool { return classify(f.ValNewGen) != signNeg })
	fc.Facets.AppendDedup(newFacets...)

	return nil
}

// arithmeticShadowMismatch reports whether hyp.Dot(g) disagrees, modulo
// the configured overflow-test modulus, with the same dot product
// carried out in the fixed-width Int64 ring (spec.md 4.1 "Failure
// semantics": "a mod-p shadow computation may be performed in parallel
// when an arithmetic check mode is enabled"). A disagreement means the
// same computation in a machine-word-width representation would have
// overflowed; since this engine's own arithmetic is math/big and never
// overflows, the shadow only ever flags what a narrower implementation
// would have gotten wrong.
func arithmeticShadowMismatch(exact *big.Int, hyp, g ring.Vector) bool {
	enabled, modulus := env.ArithmeticCheck()
	if !enabled {
		return false
	}

	var factory ring.Int64Ring
	shadow := factory.Zero().(ring.Int64)
	for i := range hyp {
		a := factory.FromInt64(hyp[i].Int64())
		b := factory.FromInt64(g[i].Int64())
		term := a.Mul(a, b).(ring.Int64)
		shadow = shadow.Add(shadow, term).(ring.Int64)
	}

	mod := factory.FromInt64(modulus.Int64())
	shadowMod := shadow.Mod(shadow, mod).(ring.Int64)
	exactMod := new(big.Int).Mod(exact, modulus)

	return exactMod.Int64() != shadowMod.Int()
}

// isRidge decides whether neg and pos share a subfacet of the cone
// spanned by the generators seen so far: their shared generator
// incidence must have rank dim-2 (spec.md 4.1's rank strategy). This
// intentionally omits the original source's Neg_Subfacet_Multi
// deduplication bookkeeping (a pure comparison-count optimization);
// see DESIGN.md.
func isRidge(fc *FullCone, neg, pos *Facet, genInConeCount int) bool {
	shared := neg.GenInHyp.And(pos.GenInHyp)

	count := shared.CountUpTo(genInConeCount + 1)
	if count < fc.Dim-2 {
		return false
	}

	rows := make([]ring.Vector, 0, count)
	for _, idx := range shared.Bits() {
		rows = append(rows, fc.Generators[idx])
	}
	m := matrix.New(rows)

	// A cheap float64 SVD rank estimate (spec.md 4.1 Phase 3's "rank
	// strategy") first filters out shared sets whose rank is obviously
	// far from dim-2: floating point error near a genuine rank-(dim-2)
	// configuration is at most off by one, so a gap of 2 or more rules
	// the exact test out without paying for it.
	if fast := m.FastRankEstimate(); fast <= fc.Dim-4 || fast >= fc.Dim {
		return false
	}

	return m.RankExact() == fc.Dim-2
}

// buildRidgeFacet constructs the new facet spanned by the ridge
// between neg and pos, oriented to be non-negative on g (spec.md
// 4.1's "new facet construction"). Returns ok=false if the
// combination degenerates to the zero vector (can happen when neg and
// pos are parallel after clearing denominators, which signals a
// duplicate rather than a genuine new facet).
func buildRidgeFacet(fc *FullCone, neg, pos *Facet, g ring.Vector, newGenIdx, genInConeCount int) (*Facet, bool) {
	// h = pos.ValNewGen * neg.Hyp - neg.ValNewGen * pos.Hyp, then made
	// primitive. Both ValNewGen entries are signed so this always
	// points toward g's halfspace.
	a := new(big.Int).Abs(pos.ValNewGen)
	b := new(big.Int).Abs(neg.ValNewGen)
	h := neg.Hyp.ScalarMul(a).Add(pos.Hyp.ScalarMul(b))
	h = h.Primitive()
	if h.IsZero() {
		return nil, false
	}

	// A generator incident to only one of neg/pos has strictly positive
	// dot with h (a positive combination of the two), so it is not on
	// the ridge: the new facet's incidence is the intersection, not the
	// union, of its parents' (spec.md 4.1 "new facet construction").
	in := neg.GenInHyp.And(pos.GenInHyp)
	in.Set(newGenIdx)

	stripe := newGenIdx % fc.Facets.numStripes
	f := &Facet{
		Hyp:       h,
		GenInHyp:  in,
		ValNewGen: new(big.Int),
		Ident:     fc.Facets.NextIdent(stripe),
		Mother:    neg.Ident,
		BornAt:    genInConeCount + 1,
	}
	return f, true
}

// supportHyperplanesFrom returns the current facet pool's normals,
// stripped of working metadata, in the orientation spec.md section 6
// calls "SupportHyperplanes(): ... the inward normal vectors of all
// facets of the cone."
func (fc *FullCone) supportHyperplanesFrom() []ring.Vector {
	facets := fc.Facets.Facets()
	out := make([]ring.Vector, len(facets))
	for i, f := range facets {
		out[i] = f.Hyp
	}
	return out
}
