package h2c

import (
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/pairing"
)

// maxTries bounds the try-and-increment search, mirroring blsMapFpToG1's
// loop bound. A well-formed curve (roughly half of all field elements are
// quadratic residues) finds a point within a handful of iterations; this
// is just a backstop against a malformed (a, b) with no points at all.
const maxTries = 256

// MapToG1 maps a base-field element u onto c via try-and-increment: scan
// x = u, u+1, u+2, ... until x^3+a*x+b is a square, generalized from
// blsMapFpToG1's BLS12-381-fixed y^2 = x^3+4 to an arbitrary runtime
// (a, b). The result always satisfies curve.IsOnCurve, and ties are
// broken by sign-of-y matching sign-of-u.
func MapToG1(c *curve.Curve, u *field.Element) *curve.Point {
	x := u.Clone()
	one := field.One(u.Field())
	uSign := Sgn0Fp(u)

	for i := 0; i < maxTries; i++ {
		rhs := field.Add(field.Add(field.Mul(field.Square(x), x), field.Mul(c.A(), x)), c.B())
		y, ok := field.Sqrt(rhs)
		if ok {
			if Sgn0Fp(y) != uSign {
				y = field.Neg(y)
			}
			return curve.FromAffine(c, x, y)
		}
		x = field.Add(x, one)
	}
	return curve.Infinity(c)
}

// MapToG2 is MapToG1 one tower level up, for the Fp2-coordinate twist
// BLS12/BN/MNT4's G2 lives on, generalizing blsMapFp2ToG2.
func MapToG2(tc *pairing.TwistCurve2, u *ext.Fp2) *pairing.Point2 {
	x := u
	one := ext.Fp2One(tc.Ext2())
	uSign := Sgn0Fp2(u)

	for i := 0; i < maxTries; i++ {
		rhs := ext.Fp2Add(ext.Fp2Add(ext.Fp2Mul(ext.Fp2Sqr(x), x), ext.Fp2Mul(tc.A2(), x)), tc.B2())
		y, ok := ext.Fp2Sqrt(rhs)
		if ok {
			if Sgn0Fp2(y) != uSign {
				y = ext.Fp2Neg(y)
			}
			return pairing.FromAffine2(tc, x, y)
		}
		x = ext.Fp2Add(x, one)
	}
	return pairing.Infinity2(tc)
}

// MapToG2Cubic is the same construction over the Fp3-coordinate twist
// MNT6's G2 lives on.
func MapToG2Cubic(tc *pairing.TwistCurve3, u *ext.Fp3) *pairing.Point3 {
	x := u
	one := ext.Fp3One(tc.Ext3())
	uSign := Sgn0Fp3(u)

	for i := 0; i < maxTries; i++ {
		rhs := ext.Fp3Add(ext.Fp3Add(ext.Fp3Mul(ext.Fp3Sqr(x), x), ext.Fp3Mul(tc.A3(), x)), tc.B3())
		y, ok := ext.Fp3Sqrt(rhs)
		if ok {
			if Sgn0Fp3(y) != uSign {
				y = ext.Fp3Neg(y)
			}
			return pairing.FromAffine3(tc, x, y)
		}
		x = ext.Fp3Add(x, one)
	}
	return pairing.Infinity3(tc)
}
