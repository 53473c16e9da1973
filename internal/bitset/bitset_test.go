package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetTestClear(t *testing.T) {
	b := New(70)
	require.False(t, b.Test(5))
	b.Set(5)
	b.Set(69)
	require.True(t, b.Test(5))
	require.True(t, b.Test(69))
	b.Clear(5)
	require.False(t, b.Test(5))
}

func TestCount(t *testing.T) {
	b := New(10)
	for _, i := range []int{1, 3, 5, 7} {
		b.Set(i)
	}
	require.Equal(t, 4, b.Count())
}

func TestCountUpTo(t *testing.T) {
	b := New(200)
	for i := 0; i < 150; i++ {
		b.Set(i)
	}
	require.Greater(t, b.CountUpTo(10), 10)
	require.Equal(t, 150, b.CountUpTo(1000))
}

func TestAndOr(t *testing.T) {
	a := New(8)
	c := New(8)
	a.Set(0)
	a.Set(1)
	c.Set(1)
	c.Set(2)

	and := a.And(c)
	require.True(t, and.Test(1))
	require.False(t, and.Test(0))
	require.False(t, and.Test(2))

	or := a.Or(c)
	require.True(t, or.Test(0))
	require.True(t, or.Test(1))
	require.True(t, or.Test(2))
}

func TestIsSubsetOf(t *testing.T) {
	a := New(8)
	c := New(8)
	a.Set(1)
	c.Set(1)
	c.Set(2)
	require.True(t, a.IsSubsetOf(c))
	require.False(t, c.IsSubsetOf(a))
}

func TestBits(t *testing.T) {
	b := New(130)
	b.Set(3)
	b.Set(64)
	b.Set(129)
	require.Equal(t, []int{3, 64, 129}, b.Bits())
}

func TestMaximalSubsets(t *testing.T) {
	a := New(4)
	a.Set(0)
	b := New(4)
	b.Set(0)
	b.Set(1)
	c := New(4)
	c.Set(2)

	maximal := MaximalSubsets([]*Bitset{a, b, c})
	require.False(t, maximal[0], "a is a strict subset of b")
	require.True(t, maximal[1])
	require.True(t, maximal[2])
}
