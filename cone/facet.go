package cone

import (
	"math/big"
	"sync"

	"github.com/nmz-go/fullcone/internal/bitset"
	"github.com/nmz-go/fullcone/internal/ring"
)

// Facet is the candidate-support-hyperplane record of spec.md section
// 3. Hyp is the primitive inward normal; GenInHyp marks which
// already-inserted generators lie on it; ValNewGen is scratch storage
// for Hyp . g during the pivot step currently processing generator g;
// Ident/Mother/BornAt carry the provenance the pivot and the
// mother-daughter shortcut need.
type Facet struct {
	Hyp       ring.Vector
	GenInHyp  *bitset.Bitset
	ValNewGen *big.Int
	Ident     uint64
	Mother    uint64
	BornAt    int
}

// FacetPool is the live set of candidate support hyperplanes. It is
// the sole owner of Facet storage for one FullCone (spec.md: "the top
// cone exclusively owns ... the facet pool").
type FacetPool struct {
	mu     sync.Mutex
	facets []*Facet

	// identCounters stripes per-worker to keep Ident unique without a
	// shared atomic counter under multithreaded pyramid execution
	// (spec.md 5: "facet Ident is unique but not monotone across
	// threads").
	identCounters []uint64
	numStripes    int
}

// NewFacetPool allocates an empty pool striped for numWorkers threads.
func NewFacetPool(numWorkers int) *FacetPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &FacetPool{
		identCounters: make([]uint64, numWorkers),
		numStripes:    numWorkers,
	}
}

// NextIdent returns the next globally-unique facet id for the given
// worker stripe. Idents start at 1: 0 is reserved as the Mother
// sentinel meaning "no mother facet" (the start simplex's own facets,
// which are never the product of a pivot pairing).
func (p *FacetPool) NextIdent(stripe int) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identCounters[stripe]++
	return p.identCounters[stripe]*uint64(p.numStripes) + uint64(stripe)
}

// Append adds facets to the pool under the pool's critical section
// (the analogue of the original's GIVE_BACK_HYPS section).
func (p *FacetPool) Append(fs ...*Facet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facets = append(p.facets, fs...)
}

// AppendDedup adds fs to the pool, dropping any facet whose Hyp
// duplicates one already present or one earlier in fs (spec.md 3/8
// invariant 2: "No two facets have identical Hyp"). A non-simplicial
// pivot can derive the same new hyperplane from more than one (neg,
// pos) pair; the first ridge facet found for a given normal wins.
func (p *FacetPool) AppendDedup(fs ...*Facet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	seen := make(map[string]bool, len(p.facets)+len(fs))
	for _, f := range p.facets {
		seen[vectorKey(f.Hyp)] = true
	}
	for _, f := range fs {
		k := vectorKey(f.Hyp)
		if seen[k] {
			continue
		}
		seen[k] = true
		p.facets = append(p.facets, f)
	}
}

// Facets returns the live facet slice. Callers must not retain it
// across a mutating call.
func (p *FacetPool) Facets() []*Facet {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Facet, len(p.facets))
	copy(out, p.facets)
	return out
}

// Prune replaces the pool's contents with only the facets for which
// keep returns true (spec.md 4.1 Phase 4: discard every facet with
// ValNewGen < 0).
func (p *FacetPool) Prune(keep func(*Facet) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.facets[:0]
	for _, f := range p.facets {
		if keep(f) {
			out = append(out, f)
		}
	}
	p.facets = out
}

// Len reports the number of live facets.
func (p *FacetPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.facets)
}
