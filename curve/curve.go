// Package curve implements the runtime-parameterized short Weierstrass
// group y^2 = x^3 + a*x + b over Fp (or an extension tower coordinate
// type satisfying the same Element-like contract), in Jacobian
// coordinates. Grounded on bn254_g1.go/bn254_g2.go, generalized from
// BN254's fixed a=0 curve to an arbitrary runtime a.
package curve

import "github.com/ecengine/ecengine/field"

// Curve is an immutable descriptor for y^2 = x^3 + a*x + b over Fp.
// AIsZero is tracked separately (not just "a.IsZero()") because the
// a-is-zero shape takes a distinct, cheaper doubling path chosen once at
// construction, not re-checked on every call.
type Curve struct {
	field   *field.Field
	a, b    *field.Element
	aIsZero bool
}

func New(f *field.Field, a, b *field.Element) *Curve {
	return &Curve{field: f, a: a, b: b, aIsZero: a.IsZero()}
}

func (c *Curve) Field() *field.Field { return c.field }
func (c *Curve) A() *field.Element { return c.a }
func (c *Curve) B() *field.Element { return c.b }
func (c *Curve) AIsZero() bool { return c.aIsZero }

// Point is a Jacobian-coordinate point on a Curve. The point at infinity
// is represented with Z = 0, matching the G1Point/G2Point convention this
// package's G2 counterpart (package pairing) also follows.
type Point struct {
	curve   *Curve
	x, y, z *field.Element
}

func NewPoint(c *Curve, x, y, z *field.Element) *Point {
	return &Point{curve: c, x: x, y: y, z: z}
}

func Infinity(c *Curve) *Point {
	f := c.field
	return &Point{curve: c, x: field.One(f), y: field.One(f), z: field.Zero(f)}
}

// FromAffine builds a Jacobian point from affine coordinates. (0,0) is
// treated as infinity, mirroring g1FromAffine.
func FromAffine(c *Curve, x, y *field.Element) *Point {
	if x.IsZero() && y.IsZero() {
		return Infinity(c)
	}
	return &Point{curve: c, x: x, y: y, z: field.One(c.field)}
}

func (p *Point) Curve() *Curve { return p.curve }

func (p *Point) IsInfinity() bool {
	return p.z.IsZero()
}

// ToAffine converts back to affine coordinates, returning (0,0) for
// infinity per g1ToAffine's convention.
func (p *Point) ToAffine() (*field.Element, *field.Element) {
	f := p.curve.field
	if p.IsInfinity() {
		return field.Zero(f), field.Zero(f)
	}
	zInv, ok := field.Inverse(p.z)
	if !ok {
		return field.Zero(f), field.Zero(f)
	}
	zInv2 := field.Square(zInv)
	zInv3 := field.Mul(zInv2, zInv)
	return field.Mul(p.x, zInv2), field.Mul(p.y, zInv3)
}

// IsOnCurve checks the affine equation y^2 = x^3 + a*x + b. (0,0) (the
// identity) is always considered valid, matching g1IsOnCurve.
func IsOnCurve(c *Curve, x, y *field.Element) bool {
	if x.IsZero() && y.IsZero() {
		return true
	}
	lhs := field.Square(y)
	x3 := field.Mul(field.Square(x), x)
	rhs := field.Add(x3, field.Add(field.Mul(c.a, x), c.b))
	return field.Equal(lhs, rhs)
}

// PointIsOnCurve converts to affine and checks the curve equation.
func PointIsOnCurve(p *Point) bool {
	x, y := p.ToAffine()
	return IsOnCurve(p.curve, x, y)
}

func Neg(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity(p.curve)
	}
	return &Point{curve: p.curve, x: p.x.Clone(), y: field.Neg(p.y), z: p.z.Clone()}
}

func Equal(p, q *Point) bool {
	if p.IsInfinity() && q.IsInfinity() {
		return true
	}
	if p.IsInfinity() != q.IsInfinity() {
		return false
	}
	px, py := p.ToAffine()
	qx, qy := q.ToAffine()
	return field.Equal(px, qx) && field.Equal(py, qy)
}
