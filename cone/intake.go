package cone

import (
	"math/big"
	"sort"

	"github.com/nmz-go/fullcone/internal/ring"
)

// intake primitivizes, deduplicates and strips zero rows from the raw
// generator matrix and keeps the survivors in input order (spec.md 4.6
// step 1); the sort by degree of step 4 happens later, in
// sortByDegree, once deduceGrading knows a grading. It returns the cleaned generators and, for every surviving input
// row, its original index (used to translate extreme-ray flags back).
func intake(raw []ring.Vector) ([]ring.Vector, []int, error) {
	if len(raw) == 0 {
		return nil, nil, &BadInputError{Reason: "empty generator set"}
	}
	dim := len(raw[0])
	for _, g := range raw {
		if len(g) != dim {
			return nil, nil, &BadInputError{Reason: "generators have inconsistent dimension"}
		}
	}

	type row struct {
		v       ring.Vector
		origIdx int
	}
	var rows []row
	seen := make(map[string]bool)
	for i, g := range raw {
		if g.IsZero() {
			continue
		}
		p := g.Primitive()
		key := vectorKey(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row{v: p, origIdx: i})
	}
	if len(rows) == 0 {
		return nil, nil, &BadInputError{Reason: "all generators are zero"}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].origIdx < rows[j].origIdx })

	gens := make([]ring.Vector, len(rows))
	origIdx := make([]int, len(rows))
	for i, r := range rows {
		gens[i] = r.v
		origIdx[i] = r.origIdx
	}
	return gens, origIdx, nil
}

func vectorKey(v ring.Vector) string {
	b := make([]byte, 0, len(v)*8)
	for _, x := range v {
		b = append(b, []byte(x.String())...)
		b = append(b, ',')
	}
	return string(b)
}

// sortByDegree reorders gens (in place, keeping origIdx and
// extremeFlags in sync) by grading value ascending, then by original
// input order, per spec.md 4.6 step 4. It is only meaningful once a
// grading is known; called again with a nil grading is a no-op beyond
// the stable input-order sort intake already performed.
func sortByDegree(gens []ring.Vector, origIdx []int, extremeFlags []bool, grading ring.Vector) {
	if grading == nil {
		return
	}
	type row struct {
		g    ring.Vector
		orig int
		ext  bool
		deg  *big.Int
	}
	rows := make([]row, len(gens))
	for i := range gens {
		ext := false
		if extremeFlags != nil {
			ext = extremeFlags[i]
		}
		rows[i] = row{g: gens[i], orig: origIdx[i], ext: ext, deg: grading.Dot(gens[i])}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		c := rows[i].deg.Cmp(rows[j].deg)
		if c != 0 {
			return c < 0
		}
		return rows[i].orig < rows[j].orig
	})
	for i, r := range rows {
		gens[i] = r.g
		origIdx[i] = r.orig
		if extremeFlags != nil {
			extremeFlags[i] = r.ext
		}
	}
}
