// Package ring defines Vector, the plain []*big.Int the cone engine
// stores every coordinate in, plus a separate Element/Ring trait
// (design note: "templated numeric type") with one concrete
// instantiation, Int64/Int64Ring: a fixed-width ring used only as a
// cheap modular shadow for the arithmetic-overflow check in the
// Fourier-Motzkin pivot. Vector's own arithmetic is plain math/big and
// never goes through the trait; an arbitrary-precision Element
// implementation would be redundant with it and isn't provided.
package ring

// Element is the ring trait: add, multiply, compare, reduce, and the
// one escape hatch (ToFloat64) that lets a caller build a fast,
// inexact preconditioner on top of an exact ring. Only the
// arithmetic-overflow shadow check is written against it; the engine's
// other routines work on Vector's math/big entries directly.
type Element interface {
	Add(a, b Element) Element
	Sub(a, b Element) Element
	Mul(a, b Element) Element
	Mod(a, m Element) Element
	Sign() int
	Cmp(b Element) int
	Gcd(b Element) Element
	SetInt64(v int64) Element
	Clone() Element
	ToFloat64() float64
	String() string
}

// Ring is a factory for Element values of one concrete representation.
type Ring interface {
	Zero() Element
	One() Element
	FromInt64(v int64) Element
}
