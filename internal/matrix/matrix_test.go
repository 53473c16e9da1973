package matrix

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/ring"
)

func vec(xs ...int64) ring.Vector { return ring.NewVector(xs...) }

func TestRankExact(t *testing.T) {
	m := New([]ring.Vector{vec(1, 0, 0), vec(0, 1, 0), vec(1, 1, 0)})
	require.Equal(t, 2, m.RankExact())

	id := New([]ring.Vector{vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)})
	require.Equal(t, 3, id.RankExact())
}

func TestDeterminant(t *testing.T) {
	m := New([]ring.Vector{vec(2, 0), vec(0, 3)})
	require.Equal(t, big.NewInt(6), m.Determinant())

	singular := New([]ring.Vector{vec(1, 1), vec(1, 1)})
	require.Equal(t, big.NewInt(0), singular.Determinant())
}

func TestKernel(t *testing.T) {
	m := New([]ring.Vector{vec(1, 1, 0)})
	basis := m.Kernel()
	require.Len(t, basis, 2)
	for _, v := range basis {
		require.Zero(t, m.Rows[0].Dot(v).Sign())
	}
}

func TestFindLinearForm(t *testing.T) {
	m := New([]ring.Vector{vec(1, 0), vec(0, 1)})
	form, ok := FindLinearForm(m, nil)
	require.True(t, ok)
	require.Equal(t, vec(1, 1), form)
}

func TestFindLinearFormInconsistent(t *testing.T) {
	m := New([]ring.Vector{vec(1, 0), vec(2, 0)})
	_, ok := FindLinearForm(m, nil)
	require.False(t, ok)
}

func TestInvertAndDualBasis(t *testing.T) {
	m := New([]ring.Vector{vec(2, 0), vec(0, 2)})
	duals, ok := m.DualBasis()
	require.True(t, ok)
	require.Len(t, duals, 2)
	// dual[0] must vanish on row 1 and be nonzero on row 0.
	require.Zero(t, m.Rows[1].Dot(duals[0]).Sign())
	require.NotZero(t, m.Rows[0].Dot(duals[0]).Sign())
}

func TestFastRankEstimateAgreesWithExact(t *testing.T) {
	m := New([]ring.Vector{vec(1, 2, 3), vec(2, 4, 6), vec(0, 1, 0)})
	require.Equal(t, m.RankExact(), m.FastRankEstimate())
}

func TestSubmatrix(t *testing.T) {
	m := New([]ring.Vector{vec(1, 0), vec(0, 1), vec(1, 1)})
	sub := m.Submatrix([]int{0, 2})
	require.Equal(t, 2, sub.NumRows())
	require.Equal(t, vec(1, 1), sub.Rows[1])
}
