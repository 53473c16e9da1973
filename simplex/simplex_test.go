package simplex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/ring"
)

func vec(xs ...int64) ring.Vector { return ring.NewVector(xs...) }

func TestEvaluateUnitSimplex(t *testing.T) {
	gens := []ring.Vector{vec(1, 0), vec(0, 1)}
	s := &ShortSimplex{Key: []int{0, 1}, Height: big.NewInt(1)}
	e := NewDefaultEvaluator()

	res, err := e.Evaluate(s, gens, nil)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), res.DetSum)
	require.Equal(t, big.NewRat(1, 2), s.Vol)
}

func TestEvaluateExcludedByPartialTriangulation(t *testing.T) {
	gens := []ring.Vector{vec(1, 0), vec(0, 1)}
	s := &ShortSimplex{Key: []int{0, 1}, Height: big.NewInt(0)}
	e := NewDefaultEvaluator()

	res, err := e.Evaluate(s, gens, nil)
	require.NoError(t, err)
	require.Nil(t, res.MultiplicitySum)
	require.Equal(t, big.NewInt(1), res.DetSum)
}

func TestEvaluateWithGradingDegree1Points(t *testing.T) {
	gens := []ring.Vector{vec(2, 0), vec(0, 2)}
	grading := vec(1, 1) // not quite right for degree 1 at (1,0), but exercises the path
	s := &ShortSimplex{Key: []int{0, 1}, Height: big.NewInt(1)}
	e := NewDefaultEvaluator()

	res, err := e.Evaluate(s, gens, grading)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(4), res.DetSum)
	for _, c := range res.Candidates {
		deg := grading.Dot(c)
		if deg.Cmp(big.NewInt(1)) == 0 {
			found := false
			for _, d := range res.Degree1Points {
				if d.Equal(c) {
					found = true
				}
			}
			require.True(t, found)
		}
	}
}

func TestFactorial(t *testing.T) {
	require.Equal(t, big.NewInt(1), factorial(0))
	require.Equal(t, big.NewInt(120), factorial(5))
}
