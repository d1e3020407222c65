package pairing

import (
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// projPoint2 is the homogeneous-projective representation the sextic
// Miller loop advances its G2 point in while emitting line coefficients.
// Distinct from the Jacobian Point2: the doubling/addition step formulas
// below (the adapted ZEXE forms used by original_source/src/pairings/
// bls12/mod.rs and bn/mod.rs) interleave the point update with the
// line-coefficient extraction and want plain (X, Y, Z).
type projPoint2 struct {
	x, y, z *ext.Fp2
}

// lineCoeffs is one prepared line function: three Fp2 values whose
// ordering is already permuted for the engine's twist type, so ell can
// feed them straight into the matching sparse multiplier.
type lineCoeffs struct {
	c0, c1, c2 *ext.Fp2
}

// doublingStep advances r to 2r and returns the tangent-line coefficients.
// The twist-type permutation at the end decides which sparse Fp12 slots
// the three values land in (M: slots 0/1/4, D: slots 0/3/4).
func (e *Engine) doublingStep(r *projPoint2) lineCoeffs {
	a := ext.Fp2MulByFp(ext.Fp2Mul(r.x, r.y), e.twoInv)
	b := ext.Fp2Sqr(r.y)
	c := ext.Fp2Sqr(r.z)

	t0 := ext.Fp2Add(ext.Fp2Double(c), c)
	d := ext.Fp2Mul(e.twist.b2, t0)

	f := ext.Fp2Add(ext.Fp2Double(d), d)
	g := ext.Fp2MulByFp(ext.Fp2Add(b, f), e.twoInv)

	h := ext.Fp2Sqr(ext.Fp2Add(r.y, r.z))
	h = ext.Fp2Sub(h, ext.Fp2Add(b, c))

	i := ext.Fp2Sub(d, b)
	j := ext.Fp2Sqr(r.x)
	dSq := ext.Fp2Sqr(d)

	r.x = ext.Fp2Mul(ext.Fp2Sub(b, f), a)
	r.y = ext.Fp2Sub(ext.Fp2Sqr(g), ext.Fp2Add(ext.Fp2Double(dSq), dSq))
	r.z = ext.Fp2Mul(b, h)

	jBy3 := ext.Fp2Add(ext.Fp2Double(j), j)
	h = ext.Fp2Neg(h)

	if e.twistType == TwistM {
		return lineCoeffs{c0: i, c1: jBy3, c2: h}
	}
	return lineCoeffs{c0: h, c1: jBy3, c2: i}
}

// additionStep advances r to r + (qx, qy), with q affine, and returns the
// chord-line coefficients.
func (e *Engine) additionStep(r *projPoint2, qx, qy *ext.Fp2) lineCoeffs {
	theta := ext.Fp2Sub(r.y, ext.Fp2Mul(qy, r.z))
	lambda := ext.Fp2Sub(r.x, ext.Fp2Mul(qx, r.z))

	c := ext.Fp2Sqr(theta)
	d := ext.Fp2Sqr(lambda)
	cube := ext.Fp2Mul(lambda, d)
	f := ext.Fp2Mul(r.z, c)
	g := ext.Fp2Mul(r.x, d)

	h := ext.Fp2Add(ext.Fp2Sub(cube, ext.Fp2Double(g)), f)

	r.x = ext.Fp2Mul(lambda, h)
	t0 := ext.Fp2Mul(ext.Fp2Sub(g, h), theta)
	r.y = ext.Fp2Sub(t0, ext.Fp2Mul(cube, r.y))
	r.z = ext.Fp2Mul(r.z, cube)

	j := ext.Fp2Sub(ext.Fp2Mul(theta, qx), ext.Fp2Mul(lambda, qy))
	negTheta := ext.Fp2Neg(theta)

	if e.twistType == TwistM {
		return lineCoeffs{c0: j, c1: negTheta, c2: lambda}
	}
	return lineCoeffs{c0: lambda, c1: negTheta, c2: j}
}

// prepare walks the Miller loop once over the G2 point alone, emitting the
// full schedule of line coefficients the per-pair accumulation consumes:
// one doubling step per loop digit after the leading one, one addition
// step per nonzero digit, and, for BN, the two trailing Frobenius-image
// addition steps of https://eprint.iacr.org/2013/722.pdf Algorithm 1.
func (e *Engine) prepare(qx, qy *ext.Fp2) []lineCoeffs {
	x2 := e.twist.ext2
	r := &projPoint2{x: qx, y: qy, z: ext.Fp2One(x2)}

	var coeffs []lineCoeffs
	if e.loopNAF != nil {
		// The NAF of the positive loop magnitude always leads with a 1
		// digit; starting r at q consumes it.
		negQy := ext.Fp2Neg(qy)
		for i := len(e.loopNAF) - 2; i >= 0; i-- {
			coeffs = append(coeffs, e.doublingStep(r))
			switch {
			case e.loopNAF[i] > 0:
				coeffs = append(coeffs, e.additionStep(r, qx, qy))
			case e.loopNAF[i] < 0:
				coeffs = append(coeffs, e.additionStep(r, qx, negQy))
			}
		}
	} else {
		for i := e.loop.BitLen() - 2; i >= 0; i-- {
			coeffs = append(coeffs, e.doublingStep(r))
			if e.loop.Bit(i) == 1 {
				coeffs = append(coeffs, e.additionStep(r, qx, qy))
			}
		}
	}

	if e.family == FamilyBN {
		if e.xNeg {
			r.y = ext.Fp2Neg(r.y)
		}
		x6 := e.ext12.Base()

		// Q1 = pi(Q): conjugate the twist coordinates and scale by the
		// Frobenius coefficients; the y coordinate additionally needs the
		// cached non_residue^((p-1)/2) twist.
		q1x := ext.Fp2Mul(ext.Fp2Conjugate(qx), x6.FrobeniusC1(1))
		q1y := ext.Fp2Mul(ext.Fp2Conjugate(qy), e.nrHalfPow)
		coeffs = append(coeffs, e.additionStep(r, q1x, q1y))

		// -Q2 = -pi^2(Q): x scales by the order-2 coefficient, y is
		// unchanged (the two conjugations cancel and the sign of pi^2(Q)
		// is absorbed by leaving y as-is).
		q2x := ext.Fp2Mul(qx, x6.FrobeniusC1(2))
		coeffs = append(coeffs, e.additionStep(r, q2x, qy))
	}
	return coeffs
}

// ell multiplies f by one prepared line, scaled by the G1 point's affine
// coordinates, through the sparse multiplier the twist type selects.
func (e *Engine) ell(f *ext.Fp12, cs lineCoeffs, px, py *field.Element) *ext.Fp12 {
	if e.twistType == TwistM {
		return ext.Fp12MulBy014(f, cs.c0, ext.Fp2MulByFp(cs.c1, px), ext.Fp2MulByFp(cs.c2, py))
	}
	return ext.Fp12MulBy034(f, ext.Fp2MulByFp(cs.c0, py), ext.Fp2MulByFp(cs.c1, px), cs.c2)
}
