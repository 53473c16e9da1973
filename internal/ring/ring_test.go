package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64WrapsOnOverflow(t *testing.T) {
	r := Int64Ring{}
	max := r.FromInt64(9223372036854775807)
	one := r.FromInt64(1)
	wrapped := max.Add(max, one)
	require.Equal(t, int64(-9223372036854775808), wrapped.(Int64).Int())
}

func TestInt64Mod(t *testing.T) {
	r := Int64Ring{}
	neg := r.FromInt64(-5)
	mod := r.FromInt64(3)
	require.Equal(t, int64(1), neg.Mod(neg, mod).(Int64).Int())
}

func TestVectorDotAndPrimitive(t *testing.T) {
	v := NewVector(2, 4, 6)
	require.Equal(t, big.NewInt(2), v.Gcd())
	require.Equal(t, NewVector(1, 2, 3), v.Primitive())

	w := NewVector(1, 1, 1)
	require.Equal(t, big.NewInt(12), v.Dot(w))
}

func TestVectorAddSubNegate(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(3, 2, 1)
	require.Equal(t, NewVector(4, 4, 4), a.Add(b))
	require.Equal(t, NewVector(-2, 0, 2), a.Sub(b))
	require.Equal(t, NewVector(-1, -2, -3), a.Negate())
}

func TestVectorIsZeroAndEqual(t *testing.T) {
	z := NewVector(0, 0)
	require.True(t, z.IsZero())
	require.True(t, NewVector(1, 2).Equal(NewVector(1, 2)))
	require.False(t, NewVector(1, 2).Equal(NewVector(2, 1)))
}

func TestVectorLexSign(t *testing.T) {
	require.Equal(t, 1, NewVector(0, 0, 5).LexSign())
	require.Equal(t, -1, NewVector(-1, 5).LexSign())
	require.Equal(t, 0, NewVector(0, 0).LexSign())
}
