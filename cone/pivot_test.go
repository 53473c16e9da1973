package cone

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmz-go/fullcone/internal/env"
	"github.com/nmz-go/fullcone/internal/ring"
)

func TestArithmeticShadowMismatchDisabledByDefault(t *testing.T) {
	env.SetArithmeticCheck(false, nil)
	hyp := ring.NewVector(1, 0)
	g := ring.NewVector(0, 1)
	require.False(t, arithmeticShadowMismatch(hyp.Dot(g), hyp, g))
}

func TestArithmeticShadowMismatchAgreesOnSmallValues(t *testing.T) {
	env.SetArithmeticCheck(true, big.NewInt(1000000007))
	defer env.SetArithmeticCheck(false, nil)

	hyp := ring.NewVector(3, -2, 5)
	g := ring.NewVector(7, 11, -4)
	require.False(t, arithmeticShadowMismatch(hyp.Dot(g), hyp, g))
}

func TestArithmeticShadowMismatchCatchesInt64Wraparound(t *testing.T) {
	env.SetArithmeticCheck(true, big.NewInt(1000000007))
	defer env.SetArithmeticCheck(false, nil)

	// A value well beyond int64's range: the exact big.Int dot product
	// reduced mod p will disagree with the Int64 shadow, which silently
	// wraps when truncated to 64 bits.
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	hyp := ring.Vector{huge}
	g := ring.Vector{big.NewInt(1)}
	require.True(t, arithmeticShadowMismatch(hyp.Dot(g), hyp, g))
}

func TestFullConeArithmeticCheckPassesForSmallCone(t *testing.T) {
	// A redundant third generator forces at least one real pivot
	// insertion, so the shadow check in insertGenerator actually runs.
	gens := []ring.Vector{ring.NewVector(1, 0), ring.NewVector(0, 1), ring.NewVector(1, 1)}
	tasks := ModeSupportHyperplanes.Flags()
	tasks.TestArithmeticOverflow = true

	env.SetArithmeticCheck(true, big.NewInt(1000000007))
	defer env.SetArithmeticCheck(false, nil)

	fc, err := NewFullCone(gens, tasks)
	require.NoError(t, err)
	require.NoError(t, fc.Compute())
	require.Len(t, fc.SupportHyperplanes(), 2)
}
