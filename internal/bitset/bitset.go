// Package bitset implements a fixed-word indicator set standing in
// for boost::dynamic_bitset<> in the original source: GenInHyp,
// Zero_Positive and Zero_Negative are all Bitsets. Words are packed
// uint64s in the register-oriented style lvlath and gaissmai/bart use
// for adjacency/prefix sets.
package bitset

import "math/bits"

const wordBits = 64

// Bitset is a fixed-capacity set of small non-negative integers.
type Bitset struct {
	words []uint64
	n     int
}

// New allocates a Bitset able to hold indices in [0, n).
func New(n int) *Bitset {
	return &Bitset{words: make([]uint64, (n+wordBits-1)/wordBits), n: n}
}

// Len returns the bitset's declared capacity.
func (b *Bitset) Len() int { return b.n }

// Set marks i as present.
func (b *Bitset) Set(i int) {
	b.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// Clear removes i.
func (b *Bitset) Clear(i int) {
	b.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Test reports whether i is present.
func (b *Bitset) Test(i int) bool {
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// CountUpTo returns the number of set bits, stopping early (returning
// a value > limit, not necessarily exact) once the count exceeds
// limit. Mirrors the pivot's capped simpliciality test (spec.md 4.1
// Phase 1: "the count is capped at d, so the test is O(n) bounded").
func (b *Bitset) CountUpTo(limit int) int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
		if c > limit {
			return c
		}
	}
	return c
}

// Clone returns an independent copy.
func (b *Bitset) Clone() *Bitset {
	out := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(out.words, b.words)
	return out
}

// And returns the intersection of b and c as a new Bitset.
func (b *Bitset) And(c *Bitset) *Bitset {
	out := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	for i := range b.words {
		out.words[i] = b.words[i] & c.words[i]
	}
	return out
}

// Or returns the union of b and c as a new Bitset.
func (b *Bitset) Or(c *Bitset) *Bitset {
	out := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	for i := range b.words {
		out.words[i] = b.words[i] | c.words[i]
	}
	return out
}

// OrInPlace unions c into b.
func (b *Bitset) OrInPlace(c *Bitset) {
	for i := range b.words {
		b.words[i] |= c.words[i]
	}
}

// IsSubsetOf reports whether every bit set in b is also set in c.
func (b *Bitset) IsSubsetOf(c *Bitset) bool {
	for i := range b.words {
		if b.words[i]&^c.words[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports bit-for-bit equality.
func (b *Bitset) Equal(c *Bitset) bool {
	for i := range b.words {
		if b.words[i] != c.words[i] {
			return false
		}
	}
	return true
}

// Less gives a total (non-semantic) order over Bitsets, suitable for
// sorting and deduplicating subfacet candidates (spec.md 4.1 Phase 2).
// The cone engine has no caller of it: its pivot does not enumerate
// subfacets.
func (b *Bitset) Less(c *Bitset) bool {
	for i := range b.words {
		if b.words[i] != c.words[i] {
			return b.words[i] < c.words[i]
		}
	}
	return false
}

// Bits returns the set indices in ascending order.
func (b *Bitset) Bits() []int {
	out := make([]int, 0, b.Count())
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+tz)
			w &= w - 1
		}
	}
	return out
}

// MaximalSubsets determines the maximal elements of a family of
// indicator bitsets: an element is maximal iff no other element is a
// strict superset of it. Grounded on the original source's documented
// `maximal_subsets` helper (cone_helper.h), used by the extreme-ray
// compare strategy (spec.md 4.7). It is a pairwise O(n^2) subset scan
// that skips elements already known to be non-maximal and stops
// testing an element at its first strict superset.
func MaximalSubsets(sets []*Bitset) []bool {
	isMax := make([]bool, len(sets))
	for i := range isMax {
		isMax[i] = true
	}
	for i := range sets {
		if !isMax[i] {
			continue
		}
		for j := range sets {
			if i == j || !isMax[j] {
				continue
			}
			if sets[i].IsSubsetOf(sets[j]) && !sets[i].Equal(sets[j]) {
				isMax[i] = false
				break
			}
		}
	}
	return isMax
}
