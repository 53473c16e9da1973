package ring

// Int64 is the fixed-width ring element used only for the mod-p
// shadow computation in the arithmetic-overflow check (spec.md 4.1,
// "Failure semantics"). It deliberately wraps on overflow exactly like
// a machine word would, which is the point: if the shadow value
// disagrees with the exact math/big value reduced mod the same modulus, the
// exact computation is assumed correct and the shadow is not load
// bearing beyond the check itself.
type Int64 struct {
	v int64
}

func (i Int64) Int() int64 { return i.v }

func (i Int64) Add(a, b Element) Element {
	return Int64{v: a.(Int64).v + b.(Int64).v}
}

func (i Int64) Sub(a, b Element) Element {
	return Int64{v: a.(Int64).v - b.(Int64).v}
}

func (i Int64) Mul(a, b Element) Element {
	return Int64{v: a.(Int64).v * b.(Int64).v}
}

func (i Int64) Mod(a, m Element) Element {
	mv := m.(Int64).v
	r := a.(Int64).v % mv
	if r < 0 {
		r += mv
	}
	return Int64{v: r}
}

func (i Int64) Sign() int {
	switch {
	case i.v > 0:
		return 1
	case i.v < 0:
		return -1
	default:
		return 0
	}
}

func (i Int64) Cmp(b Element) int {
	bv := b.(Int64).v
	switch {
	case i.v < bv:
		return -1
	case i.v > bv:
		return 1
	default:
		return 0
	}
}

func (i Int64) Gcd(b Element) Element {
	x, y := i.v, b.(Int64).v
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	for y != 0 {
		x, y = y, x%y
	}
	return Int64{v: x}
}

func (i Int64) SetInt64(v int64) Element { return Int64{v: v} }
func (i Int64) Clone() Element           { return Int64{v: i.v} }
func (i Int64) ToFloat64() float64       { return float64(i.v) }
func (i Int64) String() string           { return itoa(i.v) }

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	pos := len(buf)
	for v > 0 {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Int64Ring is the Ring factory for Int64 elements.
type Int64Ring struct{}

func (Int64Ring) Zero() Element             { return Int64{v: 0} }
func (Int64Ring) One() Element              { return Int64{v: 1} }
func (Int64Ring) FromInt64(v int64) Element { return Int64{v: v} }
