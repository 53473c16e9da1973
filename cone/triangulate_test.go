package cone

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/ring"
)

// TestTriangulationKeysAreDistinctAndInRange asserts spec.md's
// invariant 3: every simplex key has exactly Dim distinct entries, all
// valid indices into Generators. extendTriangulation and
// triangulateNonSimplicial do not use the "skip the first d-2 on-facet
// vertices" heuristic (spec.md 9's open question); this checks the
// duplicate-freedom that heuristic was about on their output directly.
func TestTriangulationKeysAreDistinctAndInRange(t *testing.T) {
	gens := []ring.Vector{
		ring.NewVector(1, 0, 1),
		ring.NewVector(0, 1, 1),
		ring.NewVector(-1, 0, 1),
		ring.NewVector(0, -1, 1),
	}
	fc, err := NewFullCone(gens, ModeVolumeTriangulation.Flags())
	require.NoError(t, err)
	require.NoError(t, fc.Compute())
	require.NotEmpty(t, fc.Triangulation)

	for _, s := range fc.Triangulation {
		require.Len(t, s.Key, fc.Dim)
		seen := make(map[int]bool, len(s.Key))
		for _, idx := range s.Key {
			require.False(t, seen[idx], "duplicate generator index %d in simplex key %v", idx, s.Key)
			seen[idx] = true
			require.True(t, idx >= 0 && idx < len(fc.Generators))
		}
	}
}

// TestTriangulationCoversEveryExtremeRay asserts the second half of
// spec.md's invariant 3: the multiset union of simplex keys covers
// every extreme ray.
func TestTriangulationCoversEveryExtremeRay(t *testing.T) {
	gens := []ring.Vector{
		ring.NewVector(1, 0, 1),
		ring.NewVector(0, 1, 1),
		ring.NewVector(-1, 0, 1),
		ring.NewVector(0, -1, 1),
	}
	fc, err := NewFullCone(gens, ModeVolumeTriangulation.Flags())
	require.NoError(t, err)
	require.NoError(t, fc.Compute())

	covered := make(map[int]bool)
	for _, s := range fc.Triangulation {
		for _, idx := range s.Key {
			covered[idx] = true
		}
	}
	for i, extreme := range fc.ExtremeRays() {
		if extreme {
			require.True(t, covered[i], "extreme ray %d missing from triangulation", i)
		}
	}
}

func TestSimplexHeightMatchesDeterminant(t *testing.T) {
	gens := []ring.Vector{
		ring.NewVector(2, 0, 1),
		ring.NewVector(0, 2, 1),
		ring.NewVector(0, 0, 1),
	}
	fc, err := NewFullCone(gens, TaskFlags{})
	require.NoError(t, err)

	require.Equal(t, big.NewInt(4), fc.simplexHeight([]int{0, 1, 2}))
}
