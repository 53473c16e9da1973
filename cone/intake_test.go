package cone

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/ring"
)

func TestIntakeDedupAndZeroStrip(t *testing.T) {
	raw := []ring.Vector{
		ring.NewVector(2, 0),
		ring.NewVector(0, 0),
		ring.NewVector(1, 0), // duplicate of the first, after primitivizing
		ring.NewVector(0, 3),
	}
	gens, origIdx, err := intake(raw)
	require.NoError(t, err)
	require.Len(t, gens, 2)
	require.Equal(t, []int{0, 3}, origIdx)
	require.Equal(t, ring.NewVector(1, 0), gens[0])
	require.Equal(t, ring.NewVector(0, 1), gens[1])
}

func TestIntakeRejectsEmpty(t *testing.T) {
	_, _, err := intake(nil)
	require.Error(t, err)
}

func TestIntakeRejectsInconsistentDimension(t *testing.T) {
	raw := []ring.Vector{ring.NewVector(1, 0), ring.NewVector(1, 0, 0)}
	_, _, err := intake(raw)
	require.Error(t, err)
}

func TestIntakeRejectsAllZero(t *testing.T) {
	raw := []ring.Vector{ring.NewVector(0, 0), ring.NewVector(0, 0)}
	_, _, err := intake(raw)
	require.Error(t, err)
}

func TestSortByDegreeNoGradingIsNoop(t *testing.T) {
	gens := []ring.Vector{ring.NewVector(2, 0), ring.NewVector(0, 1)}
	origIdx := []int{0, 1}
	sortByDegree(gens, origIdx, nil, nil)
	require.Equal(t, ring.NewVector(2, 0), gens[0])
}

func TestSortByDegreeOrdersAscending(t *testing.T) {
	gens := []ring.Vector{ring.NewVector(0, 3), ring.NewVector(1, 0)}
	origIdx := []int{0, 1}
	grading := ring.NewVector(1, 1)
	sortByDegree(gens, origIdx, nil, grading)
	require.Equal(t, ring.NewVector(1, 0), gens[0])
	require.Equal(t, ring.NewVector(0, 3), gens[1])
}
