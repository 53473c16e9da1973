package ring

import "math/big"

// Vector is an integer vector over the opaque ring. It plays the role
// of the teacher's []*big.Int vectors in bulletproofs/vector.go, minus
// the reduction modulus: cone coordinates are plain integers, not
// residues of a prime-order group.
type Vector []*big.Int

// NewVector builds a Vector from machine integers.
func NewVector(xs ...int64) Vector {
	v := make(Vector, len(xs))
	for i, x := range xs {
		v[i] = big.NewInt(x)
	}
	return v
}

// Clone returns a deep copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = new(big.Int).Set(x)
	}
	return out
}

// Add returns v + w componentwise. Mirrors VectorAdd in
// bulletproofs/vector.go, without the modulus reduction.
func (v Vector) Add(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Int).Add(v[i], w[i])
	}
	return out
}

// Sub returns v - w componentwise.
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Int).Sub(v[i], w[i])
	}
	return out
}

// ScalarMul returns c*v.
func (v Vector) ScalarMul(c *big.Int) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = new(big.Int).Mul(v[i], c)
	}
	return out
}

// Negate returns -v.
func (v Vector) Negate() Vector {
	return v.ScalarMul(big.NewInt(-1))
}

// Dot computes the scalar product <v, w>. This is the core's
// `v_scalar_product` collaborator (spec.md 6).
func (v Vector) Dot(w Vector) *big.Int {
	sum := new(big.Int)
	tmp := new(big.Int)
	for i := range v {
		tmp.Mul(v[i], w[i])
		sum.Add(sum, tmp)
	}
	return sum
}

// IsZero reports whether every entry is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x.Sign() != 0 {
			return false
		}
	}
	return true
}

// Equal reports componentwise equality.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i].Cmp(w[i]) != 0 {
			return false
		}
	}
	return true
}

// Gcd returns the gcd of the absolute values of all entries, or zero
// for the zero vector.
func (v Vector) Gcd() *big.Int {
	g := new(big.Int)
	abs := new(big.Int)
	for _, x := range v {
		abs.Abs(x)
		g.GCD(nil, nil, g, abs)
	}
	return g
}

// Primitive divides v by the gcd of its entries, making it primitive.
// This is the core's `v_make_prime` collaborator (spec.md 6). The zero
// vector is returned unchanged.
func (v Vector) Primitive() Vector {
	g := v.Gcd()
	if g.Sign() == 0 {
		return v.Clone()
	}
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = new(big.Int).Div(x, g)
	}
	return out
}

// LexSign returns the sign of the first nonzero entry, used by the
// order-vector tie-break (spec.md 4.4, is_hyperplane_included).
func (v Vector) LexSign() int {
	for _, x := range v {
		if s := x.Sign(); s != 0 {
			return s
		}
	}
	return 0
}

// ToFloat64 converts to a float64 slice for the gonum preconditioner.
func (v Vector) ToFloat64() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		f := new(big.Float).SetInt(x)
		out[i], _ = f.Float64()
	}
	return out
}
