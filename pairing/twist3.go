package pairing

import (
	"math/big"

	"github.com/ecengine/ecengine/ext"
)

// TwistCurve3 is the Fp3-coordinate twisted curve MNT6's G2 lives on —
// same Jacobian shape as TwistCurve2, one tower level over, grounded on
// the same doubling/addition formulas generalized to ext.Fp3 arithmetic.
type TwistCurve3 struct {
	ext3    *ext.Ext3
	a3, b3  *ext.Fp3
	aIsZero bool
}

func NewTwistCurve3(x3 *ext.Ext3, a3, b3 *ext.Fp3) *TwistCurve3 {
	return &TwistCurve3{ext3: x3, a3: a3, b3: b3, aIsZero: a3.IsZero()}
}

func (c *TwistCurve3) Ext3() *ext.Ext3 { return c.ext3 }
func (c *TwistCurve3) A3() *ext.Fp3 { return c.a3 }
func (c *TwistCurve3) B3() *ext.Fp3 { return c.b3 }

type Point3 struct {
	curve   *TwistCurve3
	x, y, z *ext.Fp3
}

func NewPoint3(c *TwistCurve3, x, y, z *ext.Fp3) *Point3 {
	return &Point3{curve: c, x: x, y: y, z: z}
}

func Infinity3(c *TwistCurve3) *Point3 {
	return &Point3{curve: c, x: ext.Fp3One(c.ext3), y: ext.Fp3One(c.ext3), z: ext.Fp3Zero(c.ext3)}
}

func FromAffine3(c *TwistCurve3, x, y *ext.Fp3) *Point3 {
	if x.IsZero() && y.IsZero() {
		return Infinity3(c)
	}
	return &Point3{curve: c, x: x, y: y, z: ext.Fp3One(c.ext3)}
}

func (p *Point3) IsInfinity() bool { return p.z.IsZero() }
func (p *Point3) Curve() *TwistCurve3 { return p.curve }

func (p *Point3) ToAffine() (*ext.Fp3, *ext.Fp3) {
	if p.IsInfinity() {
		return ext.Fp3Zero(p.curve.ext3), ext.Fp3Zero(p.curve.ext3)
	}
	zInv, ok := ext.Fp3Inv(p.z)
	if !ok {
		return ext.Fp3Zero(p.curve.ext3), ext.Fp3Zero(p.curve.ext3)
	}
	zInv2 := ext.Fp3Sqr(zInv)
	zInv3 := ext.Fp3Mul(zInv2, zInv)
	return ext.Fp3Mul(p.x, zInv2), ext.Fp3Mul(p.y, zInv3)
}

func IsOnCurve3(c *TwistCurve3, x, y *ext.Fp3) bool {
	if x.IsZero() && y.IsZero() {
		return true
	}
	lhs := ext.Fp3Sqr(y)
	x3v := ext.Fp3Mul(ext.Fp3Sqr(x), x)
	rhs := ext.Fp3Add(x3v, ext.Fp3Add(ext.Fp3Mul(c.a3, x), c.b3))
	return ext.Fp3Equal(lhs, rhs)
}

func Neg3(p *Point3) *Point3 {
	if p.IsInfinity() {
		return Infinity3(p.curve)
	}
	return &Point3{curve: p.curve, x: p.x, y: ext.Fp3Neg(p.y), z: p.z}
}

func Equal3(p, q *Point3) bool {
	if p.IsInfinity() && q.IsInfinity() {
		return true
	}
	if p.IsInfinity() != q.IsInfinity() {
		return false
	}
	px, py := p.ToAffine()
	qx, qy := q.ToAffine()
	return ext.Fp3Equal(px, qx) && ext.Fp3Equal(py, qy)
}

func Double3(p *Point3) *Point3 {
	c := p.curve
	if p.IsInfinity() {
		return Infinity3(c)
	}
	if c.aIsZero {
		return doubleAZero3(p)
	}
	return doubleGeneric3(p)
}

func doubleAZero3(p *Point3) *Point3 {
	A := ext.Fp3Sqr(p.x)
	B := ext.Fp3Sqr(p.y)
	C := ext.Fp3Sqr(B)

	D := ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(ext.Fp3Add(p.x, B)), A), C)
	D = ext.Fp3Double(D)

	E := ext.Fp3Add(ext.Fp3Double(A), A)

	x3 := ext.Fp3Sub(ext.Fp3Sqr(E), ext.Fp3Double(D))
	eightC := ext.Fp3Double(ext.Fp3Double(ext.Fp3Double(C)))
	y3 := ext.Fp3Sub(ext.Fp3Mul(E, ext.Fp3Sub(D, x3)), eightC)
	z3 := ext.Fp3Mul(ext.Fp3Double(p.y), p.z)

	return &Point3{curve: p.curve, x: x3, y: y3, z: z3}
}

func doubleGeneric3(p *Point3) *Point3 {
	c := p.curve
	XX := ext.Fp3Sqr(p.x)
	YY := ext.Fp3Sqr(p.y)
	YYYY := ext.Fp3Sqr(YY)
	ZZ := ext.Fp3Sqr(p.z)

	S := ext.Fp3Double(ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(ext.Fp3Add(p.x, YY)), XX), YYYY))
	aZZ2 := ext.Fp3Mul(c.a3, ext.Fp3Sqr(ZZ))
	M := ext.Fp3Add(ext.Fp3Add(XX, ext.Fp3Double(XX)), aZZ2)

	T := ext.Fp3Sub(ext.Fp3Sqr(M), ext.Fp3Double(S))
	x3 := T
	y3 := ext.Fp3Sub(ext.Fp3Mul(M, ext.Fp3Sub(S, T)), ext.Fp3Double(ext.Fp3Double(ext.Fp3Double(YYYY))))
	z3 := ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(ext.Fp3Add(p.y, p.z)), YY), ZZ)

	return &Point3{curve: c, x: x3, y: y3, z: z3}
}

func Add3(p, q *Point3) *Point3 {
	if p.IsInfinity() {
		return &Point3{curve: q.curve, x: q.x, y: q.y, z: q.z}
	}
	if q.IsInfinity() {
		return &Point3{curve: p.curve, x: p.x, y: p.y, z: p.z}
	}

	one := ext.Fp3One(p.curve.ext3)
	if ext.Fp3Equal(q.z, one) {
		return mixedAdd3(p, q)
	}
	if ext.Fp3Equal(p.z, one) {
		return mixedAdd3(q, p)
	}
	return addGeneric3(p, q)
}

func addGeneric3(a, b *Point3) *Point3 {
	z1sq := ext.Fp3Sqr(a.z)
	z2sq := ext.Fp3Sqr(b.z)
	u1 := ext.Fp3Mul(a.x, z2sq)
	u2 := ext.Fp3Mul(b.x, z1sq)
	s1 := ext.Fp3Mul(a.y, ext.Fp3Mul(b.z, z2sq))
	s2 := ext.Fp3Mul(b.y, ext.Fp3Mul(a.z, z1sq))

	if ext.Fp3Equal(u1, u2) {
		if ext.Fp3Equal(s1, s2) {
			return Double3(a)
		}
		return Infinity3(a.curve)
	}

	h := ext.Fp3Sub(u2, u1)
	i := ext.Fp3Sqr(ext.Fp3Double(h))
	j := ext.Fp3Mul(h, i)
	r := ext.Fp3Double(ext.Fp3Sub(s2, s1))
	v := ext.Fp3Mul(u1, i)

	x3 := ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(r), j), ext.Fp3Double(v))
	y3 := ext.Fp3Sub(ext.Fp3Mul(r, ext.Fp3Sub(v, x3)), ext.Fp3Double(ext.Fp3Mul(s1, j)))
	z3 := ext.Fp3Mul(ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(ext.Fp3Add(a.z, b.z)), z1sq), z2sq), h)

	return &Point3{curve: a.curve, x: x3, y: y3, z: z3}
}

func mixedAdd3(a, b *Point3) *Point3 {
	z1z1 := ext.Fp3Sqr(a.z)
	u2 := ext.Fp3Mul(b.x, z1z1)
	s2 := ext.Fp3Mul(b.y, ext.Fp3Mul(a.z, z1z1))

	h := ext.Fp3Sub(u2, a.x)
	if h.IsZero() {
		if ext.Fp3Equal(s2, a.y) {
			return Double3(a)
		}
		return Infinity3(a.curve)
	}
	hh := ext.Fp3Sqr(h)
	i := ext.Fp3Double(ext.Fp3Double(hh))
	j := ext.Fp3Mul(h, i)
	r := ext.Fp3Double(ext.Fp3Sub(s2, a.y))
	v := ext.Fp3Mul(a.x, i)

	x3 := ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(r), j), ext.Fp3Double(v))
	y3 := ext.Fp3Sub(ext.Fp3Mul(r, ext.Fp3Sub(v, x3)), ext.Fp3Double(ext.Fp3Mul(a.y, j)))
	z3 := ext.Fp3Sub(ext.Fp3Sub(ext.Fp3Sqr(ext.Fp3Add(a.z, h)), z1z1), hh)

	return &Point3{curve: a.curve, x: x3, y: y3, z: z3}
}

func ScalarMul3(p *Point3, k *big.Int) *Point3 {
	if k.Sign() == 0 || p.IsInfinity() {
		return Infinity3(p.curve)
	}
	r := Infinity3(p.curve)
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = Double3(r)
		if k.Bit(i) == 1 {
			r = Add3(r, p)
		}
	}
	return r
}
