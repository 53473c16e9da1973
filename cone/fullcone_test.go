package cone

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/ring"
)

func TestFullConeFirstQuadrant(t *testing.T) {
	gens := []ring.Vector{ring.NewVector(1, 0), ring.NewVector(0, 1)}
	fc, err := NewFullCone(gens, ModeHilbertBasisMultiplicity.Flags())
	require.NoError(t, err)
	require.NoError(t, fc.Compute())

	require.True(t, fc.Computed(PropSupportHyperplanes))
	require.Len(t, fc.SupportHyperplanes(), 2)

	require.True(t, fc.Computed(PropExtremeRays))
	require.Equal(t, []bool{true, true}, fc.ExtremeRays())

	require.True(t, fc.Computed(PropPointed))
	require.True(t, fc.IsPointed())

	require.True(t, fc.Computed(PropMultiplicity))
	require.Equal(t, big.NewRat(1, 2), fc.Multiplicity())

	require.True(t, fc.Computed(PropHilbertBasis))
	require.Len(t, fc.HilbertBasis(), 2)
}

func TestFullConeSimplicialCone3D(t *testing.T) {
	gens := []ring.Vector{
		ring.NewVector(1, 0, 0),
		ring.NewVector(0, 1, 0),
		ring.NewVector(0, 0, 1),
	}
	fc, err := NewFullCone(gens, ModeVolumeTriangulation.Flags())
	require.NoError(t, err)
	require.NoError(t, fc.Compute())

	require.Len(t, fc.SupportHyperplanes(), 3)
	require.Equal(t, big.NewRat(1, 6), fc.Multiplicity())
	require.Len(t, fc.Triangulation, 1)
	require.ElementsMatch(t, []int{0, 1, 2}, fc.Triangulation[0].Key)
}

func TestFullConeRejectsRankDeficientGenerators(t *testing.T) {
	gens := []ring.Vector{
		ring.NewVector(1, 0, 0),
		ring.NewVector(2, 0, 0),
	}
	_, err := NewFullCone(gens, TaskFlags{})
	require.Error(t, err)
}

func TestFullConeNonSimplicialSquareCone(t *testing.T) {
	// Four rays over a unit square at height 1: the cone is not
	// simplicial (four extreme rays in dimension 3), so the pivot has
	// to replace a start-simplex facet by two new ridge facets and the
	// triangulation needs a second simplex.
	gens := []ring.Vector{
		ring.NewVector(1, 0, 1),
		ring.NewVector(0, 1, 1),
		ring.NewVector(-1, 0, 1),
		ring.NewVector(0, -1, 1),
	}
	fc, err := NewFullCone(gens, ModeVolumeTriangulation.Flags())
	require.NoError(t, err)
	require.NoError(t, fc.Compute())

	require.True(t, fc.IsPointed())
	// The cone over the unit square at height 1 splits into two
	// simplicial sub-cones of determinant 2 each, for a combined
	// normalized volume of 2/6 + 2/6.
	require.Equal(t, big.NewRat(2, 3), fc.Multiplicity())
}

func TestFullConeHilbertBasisIncludesGeneratorsAndInteriorPoint(t *testing.T) {
	// A simplicial cone of determinant 4 whose Hilbert basis is its
	// three generators plus one interior lattice point of the
	// fundamental parallelepiped, (1,1,1), not among the generators.
	gens := []ring.Vector{
		ring.NewVector(2, 0, 1),
		ring.NewVector(0, 2, 1),
		ring.NewVector(0, 0, 1),
	}
	tasks := ModeHilbertBasisTriangulation.Flags()
	tasks.ComputeDegree1Points = true
	tasks.applyImplications()

	fc, err := NewFullCone(gens, tasks)
	require.NoError(t, err)
	require.NoError(t, fc.Compute())

	basis := fc.HilbertBasis()
	require.Contains(t, basis, ring.NewVector(1, 1, 1))
	for _, g := range gens {
		require.Contains(t, basis, g)
	}
}

func TestDeduceGradingSortsByDegreeForCallerSuppliedGrading(t *testing.T) {
	// A caller-supplied grading with genuinely different degrees per
	// generator, unlike a freshly-derived grading (which always ties
	// every generator at degree 1 by construction).
	gens := []ring.Vector{
		ring.NewVector(2, 1),
		ring.NewVector(0, 1),
	}
	fc, err := NewFullCone(gens, TaskFlags{ComputeDegree1Points: true})
	require.NoError(t, err)
	fc.Grading = ring.NewVector(1, 1)
	fc.GradingKnown = true

	require.NoError(t, fc.deduceGrading())
	require.Equal(t, ring.NewVector(0, 1), fc.Generators[0])
	require.Equal(t, ring.NewVector(2, 1), fc.Generators[1])
}
