package curve

import (
	"math/big"

	"github.com/ecengine/ecengine/field"
)

// Double returns 2*p. For AIsZero curves this is the specialized a=0
// doubling g1Double/bn254_g2.go's g2Double use (historically labeled
// dbl-2009-l); for general a this falls back to the generic dbl-2007-bl
// formula that folds the curve's a coefficient into M.
func Double(p *Point) *Point {
	c := p.curve
	if p.IsInfinity() {
		return Infinity(c)
	}
	if c.aIsZero {
		return doubleAZero(p)
	}
	return doubleGeneric(p)
}

// doubleAZero is bn254_g1.go's g1Double, unchanged.
func doubleAZero(p *Point) *Point {
	A := field.Square(p.x)
	B := field.Square(p.y)
	C := field.Square(B)

	D := field.Sub(field.Sub(field.Square(field.Add(p.x, B)), A), C)
	D = field.Double(D)

	E := field.Add(field.Double(A), A)

	x3 := field.Sub(field.Square(E), field.Double(D))

	eightC := field.Double(field.Double(field.Double(C)))
	y3 := field.Sub(field.Mul(E, field.Sub(D, x3)), eightC)

	z3 := field.Mul(field.Double(p.y), p.z)

	return &Point{curve: p.curve, x: x3, y: y3, z: z3}
}

// doubleGeneric is the dbl-2007-bl formula (hyperelliptic.org EFD),
// grounded structurally on g1Double with the a=0 shortcut (E = 3*X1^2)
// replaced by the general M = 3*X1^2 + a*Z1^4.
func doubleGeneric(p *Point) *Point {
	c := p.curve
	XX := field.Square(p.x)
	YY := field.Square(p.y)
	YYYY := field.Square(YY)
	ZZ := field.Square(p.z)

	S := field.Double(field.Sub(field.Sub(field.Square(field.Add(p.x, YY)), XX), YYYY))
	aZZ2 := field.Mul(c.a, field.Square(ZZ))
	M := field.Add(field.Add(XX, field.Double(XX)), aZZ2)

	T := field.Sub(field.Square(M), field.Double(S))
	x3 := T
	y3 := field.Sub(field.Mul(M, field.Sub(S, T)), field.Double(field.Double(field.Double(YYYY))))
	z3 := field.Sub(field.Sub(field.Square(field.Add(p.y, p.z)), YY), ZZ)

	return &Point{curve: c, x: x3, y: y3, z: z3}
}

// Add returns p+q in Jacobian coordinates, dispatching to the mixed
// addition formula (madd-2007-bl) when q is affine-normalized (Z=1), and
// to the general add-2007-bl formula otherwise. Grounded on bn254_g1.go's
// g1Add, generalized to take the mixed-addition shortcut when available.
func Add(p, q *Point) *Point {
	if p.IsInfinity() {
		return &Point{curve: q.curve, x: q.x.Clone(), y: q.y.Clone(), z: q.z.Clone()}
	}
	if q.IsInfinity() {
		return &Point{curve: p.curve, x: p.x.Clone(), y: p.y.Clone(), z: p.z.Clone()}
	}

	one := field.One(p.curve.field)
	if field.Equal(q.z, one) {
		return mixedAdd(p, q)
	}
	if field.Equal(p.z, one) {
		return mixedAdd(q, p)
	}
	return addGeneric(p, q)
}

func addGeneric(a, b *Point) *Point {
	z1sq := field.Square(a.z)
	z2sq := field.Square(b.z)
	u1 := field.Mul(a.x, z2sq)
	u2 := field.Mul(b.x, z1sq)
	s1 := field.Mul(a.y, field.Mul(b.z, z2sq))
	s2 := field.Mul(b.y, field.Mul(a.z, z1sq))

	if field.Equal(u1, u2) {
		if field.Equal(s1, s2) {
			return Double(a)
		}
		return Infinity(a.curve)
	}

	h := field.Sub(u2, u1)
	i := field.Square(field.Double(h))
	j := field.Mul(h, i)
	r := field.Double(field.Sub(s2, s1))
	v := field.Mul(u1, i)

	x3 := field.Sub(field.Sub(field.Square(r), j), field.Double(v))
	y3 := field.Sub(field.Mul(r, field.Sub(v, x3)), field.Double(field.Mul(s1, j)))
	z3 := field.Mul(field.Sub(field.Sub(field.Square(field.Add(a.z, b.z)), z1sq), z2sq), h)

	return &Point{curve: a.curve, x: x3, y: y3, z: z3}
}

// mixedAdd is madd-2007-bl: b must have Z=1.
func mixedAdd(a, b *Point) *Point {
	z1z1 := field.Square(a.z)
	u2 := field.Mul(b.x, z1z1)
	s2 := field.Mul(b.y, field.Mul(a.z, z1z1))

	h := field.Sub(u2, a.x)
	if h.IsZero() {
		if field.Equal(s2, a.y) {
			return Double(a)
		}
		return Infinity(a.curve)
	}
	hh := field.Square(h)
	i := field.Double(field.Double(hh))
	j := field.Mul(h, i)
	r := field.Double(field.Sub(s2, a.y))
	v := field.Mul(a.x, i)

	x3 := field.Sub(field.Sub(field.Square(r), j), field.Double(v))
	y3 := field.Sub(field.Mul(r, field.Sub(v, x3)), field.Double(field.Mul(a.y, j)))
	z3 := field.Sub(field.Sub(field.Square(field.Add(a.z, h)), z1z1), hh)

	return &Point{curve: a.curve, x: x3, y: y3, z: z3}
}

// ScalarMul computes k*P by double-and-add, the fallback path kept
// alongside wNAF (used for small or one-off scalars), grounded on
// bn254_g1.go's G1ScalarMul.
func ScalarMul(p *Point, k *big.Int) *Point {
	if k.Sign() == 0 || p.IsInfinity() {
		return Infinity(p.curve)
	}
	neg := k.Sign() < 0
	abs := new(big.Int).Abs(k)

	base := p
	if neg {
		base = Neg(p)
	}

	r := Infinity(p.curve)
	for i := abs.BitLen() - 1; i >= 0; i-- {
		r = Double(r)
		if abs.Bit(i) == 1 {
			r = Add(r, base)
		}
	}
	return r
}
