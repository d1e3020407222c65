package pairing

import (
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// MNT6Engine computes the ate pairing for the MNT6 family: G2 lives on a
// cubic twist over Fp3 (TwistCurve3/Point3) and GT = Fp6b* (the
// quadratic-over-cubic Fp6 construction).
//
// Transliterated from original_source/src/pairings/mnt6/mod.rs, the exact
// Fp3 analogue of MNT4Engine one coordinate-degree up: the same extended
// coordinates (X, Y, Z, T = Z^2), the same (c_h, c_4c, c_j, c_l) /
// (c_l1, c_rz) coefficient tables, the same twist-scaled line assembly —
// only the subfield and the final exponentiation's easy part differ
// (MNT6's is (p^3-1)(p+1), one more Frobenius/multiply round than MNT4's
// p^2-1, since its cyclotomic subgroup sits inside Fp6b rather than Fp4).
type MNT6Engine struct {
	g1    *curve.Curve
	twist *TwistCurve3
	ext6b *ext.Ext6b
	order *big.Int
	x     *big.Int
	w0    *big.Int
	w1    *big.Int
	// twistElt is the cubic-extension generator u, the twist element for
	// a sextic twist expressed over Fp3 (always (0, 1, 0)).
	twistElt *ext.Fp3
}

func NewMNT6Engine(g1 *curve.Curve, twist *TwistCurve3, ext6b *ext.Ext6b, order, x, w0, w1 *big.Int) *MNT6Engine {
	x3 := twist.Ext3()
	zero := field.Zero(x3.Base())
	twistElt := ext.NewFp3(x3, zero, field.One(x3.Base()), zero.Clone())
	return &MNT6Engine{g1: g1, twist: twist, ext6b: ext6b, order: order, x: x, w0: w0, w1: w1, twistElt: twistElt}
}

type ateDoubleCoeffs6 struct {
	cH, c4C, cJ, cL *ext.Fp3
}

type ateAddCoeffs6 struct {
	cL1, cRZ *ext.Fp3
}

type extCoords6 struct {
	x, y, z, t *ext.Fp3
}

type precompG1of6 struct {
	x, y               *field.Element
	xByTwist, yByTwist *ext.Fp3
}

type precompG2of6 struct {
	x, y                   *ext.Fp3
	xOverTwist, yOverTwist *ext.Fp3
	doubles                []ateDoubleCoeffs6
	additions              []ateAddCoeffs6
}

func (e *MNT6Engine) precomputeG1(px, py *field.Element) *precompG1of6 {
	return &precompG1of6{
		x: px, y: py,
		xByTwist: ext.Fp3MulByFp(e.twistElt, px),
		yByTwist: ext.Fp3MulByFp(e.twistElt, py),
	}
}

func (e *MNT6Engine) doublingStep(r *extCoords6) ateDoubleCoeffs6 {
	a := ext.Fp3Sqr(r.t)
	b := ext.Fp3Sqr(r.x)
	c := ext.Fp3Sqr(r.y)
	d := ext.Fp3Sqr(c)

	en := ext.Fp3Sqr(ext.Fp3Add(r.x, c))
	en = ext.Fp3Sub(ext.Fp3Sub(en, b), d)

	f := ext.Fp3Mul(e.twist.a3, a)
	f = ext.Fp3Add(f, ext.Fp3Add(ext.Fp3Double(b), b))

	g := ext.Fp3Sqr(f)

	dEight := ext.Fp3Double(ext.Fp3Double(ext.Fp3Double(d)))

	x := ext.Fp3Sub(g, ext.Fp3Double(ext.Fp3Double(en)))

	y := ext.Fp3Sub(ext.Fp3Double(en), x)
	y = ext.Fp3Mul(y, f)
	y = ext.Fp3Sub(y, dEight)

	zSq := ext.Fp3Sqr(r.z)
	z := ext.Fp3Sqr(ext.Fp3Add(r.y, r.z))
	z = ext.Fp3Sub(ext.Fp3Sub(z, c), zSq)

	t := ext.Fp3Sqr(z)

	cH := ext.Fp3Sqr(ext.Fp3Add(z, r.t))
	cH = ext.Fp3Sub(ext.Fp3Sub(cH, t), a)

	c4C := ext.Fp3Double(ext.Fp3Double(c))

	cJ := ext.Fp3Sqr(ext.Fp3Add(f, r.t))
	cJ = ext.Fp3Sub(ext.Fp3Sub(cJ, g), a)

	cL := ext.Fp3Sqr(ext.Fp3Add(f, r.x))
	cL = ext.Fp3Sub(ext.Fp3Sub(cL, g), b)

	r.x, r.y, r.z, r.t = x, y, z, t
	return ateDoubleCoeffs6{cH: cH, c4C: c4C, cJ: cJ, cL: cL}
}

func (e *MNT6Engine) additionStep(x, y *ext.Fp3, r *extCoords6) ateAddCoeffs6 {
	a := ext.Fp3Sqr(y)
	b := ext.Fp3Mul(r.t, x)

	d := ext.Fp3Sqr(ext.Fp3Add(r.z, y))
	d = ext.Fp3Sub(ext.Fp3Sub(d, a), r.t)
	d = ext.Fp3Mul(d, r.t)

	h := ext.Fp3Sub(b, r.x)
	i := ext.Fp3Sqr(h)

	en := ext.Fp3Double(ext.Fp3Double(i))
	j := ext.Fp3Mul(h, en)
	v := ext.Fp3Mul(r.x, en)

	l1 := ext.Fp3Sub(ext.Fp3Sub(d, r.y), r.y)

	nx := ext.Fp3Sqr(l1)
	nx = ext.Fp3Sub(ext.Fp3Sub(nx, j), ext.Fp3Double(v))

	t0 := ext.Fp3Mul(ext.Fp3Double(r.y), j)
	ny := ext.Fp3Mul(ext.Fp3Sub(v, nx), l1)
	ny = ext.Fp3Sub(ny, t0)

	nz := ext.Fp3Sqr(ext.Fp3Add(r.z, h))
	nz = ext.Fp3Sub(ext.Fp3Sub(nz, r.t), i)

	nt := ext.Fp3Sqr(nz)

	r.x, r.y, r.z, r.t = nx, ny, nz, nt
	return ateAddCoeffs6{cL1: l1, cRZ: nz}
}

func (e *MNT6Engine) precomputeG2(qx, qy *ext.Fp3, twistInv *ext.Fp3) (*precompG2of6, bool) {
	x3 := e.twist.Ext3()
	q := &precompG2of6{
		x: qx, y: qy,
		xOverTwist: ext.Fp3Mul(qx, twistInv),
		yOverTwist: ext.Fp3Mul(qy, twistInv),
	}

	r := &extCoords6{x: qx, y: qy, z: ext.Fp3One(x3), t: ext.Fp3One(x3)}
	loop := new(big.Int).Abs(e.x)
	for i := loop.BitLen() - 2; i >= 0; i-- {
		q.doubles = append(q.doubles, e.doublingStep(r))
		if loop.Bit(i) == 1 {
			q.additions = append(q.additions, e.additionStep(qx, qy, r))
		}
	}

	if e.x.Sign() < 0 {
		rzInv, ok := ext.Fp3Inv(r.z)
		if !ok {
			return nil, false
		}
		rzInv2 := ext.Fp3Sqr(rzInv)
		rzInv3 := ext.Fp3Mul(rzInv2, rzInv)

		minusRx := ext.Fp3Mul(rzInv2, r.x)
		minusRy := ext.Fp3Neg(ext.Fp3Mul(rzInv3, r.y))
		q.additions = append(q.additions, e.additionStep(minusRx, minusRy, r))
	}
	return q, true
}

func (e *MNT6Engine) atePairingLoop(px, py *field.Element, qx, qy *ext.Fp3) (*ext.Fp6b, bool) {
	x3 := e.twist.Ext3()
	twistInv, ok := ext.Fp3Inv(e.twistElt)
	if !ok {
		return nil, false
	}

	p := e.precomputeG1(px, py)
	q, ok := e.precomputeG2(qx, qy, twistInv)
	if !ok {
		return nil, false
	}

	zero := field.Zero(x3.Base())
	l1Coeff := ext.NewFp3(x3, p.x, zero, zero.Clone())
	l1Coeff = ext.Fp3Sub(l1Coeff, q.xOverTwist)

	addLine := func(ac ateAddCoeffs6) *ext.Fp6b {
		t0 := ext.Fp3Mul(ac.cRZ, p.yByTwist)
		t1 := ext.Fp3Mul(q.yOverTwist, ac.cRZ)
		t1 = ext.Fp3Add(t1, ext.Fp3Mul(l1Coeff, ac.cL1))
		t1 = ext.Fp3Neg(t1)
		return ext.NewFp6b(e.ext6b, t0, t1)
	}

	f := ext.Fp6bOne(e.ext6b)
	dblIdx, addIdx := 0, 0
	loop := new(big.Int).Abs(e.x)
	for i := loop.BitLen() - 2; i >= 0; i-- {
		dc := q.doubles[dblIdx]
		dblIdx++

		t0 := ext.Fp3Neg(ext.Fp3Mul(dc.cJ, p.xByTwist))
		t0 = ext.Fp3Add(t0, dc.cL)
		t0 = ext.Fp3Sub(t0, dc.c4C)
		t1 := ext.Fp3Mul(dc.cH, p.yByTwist)
		gRR := ext.NewFp6b(e.ext6b, t0, t1)

		f = ext.Fp6bSqr(f)
		f = ext.Fp6bMul(f, gRR)

		if loop.Bit(i) == 1 {
			f = ext.Fp6bMul(f, addLine(q.additions[addIdx]))
			addIdx++
		}
	}

	if e.x.Sign() < 0 {
		f = ext.Fp6bMul(f, addLine(q.additions[addIdx]))
		inv, ok := ext.Fp6bInv(f)
		if !ok {
			return nil, false
		}
		f = inv
	}
	return f, true
}

// Pair computes e(p1, p2); false iff a required inversion failed.
func (e *MNT6Engine) Pair(p1 *curve.Point, p2 *Point3) (*ext.Fp6b, bool) {
	return e.MultiPair([]*curve.Point{p1}, []*Point3{p2})
}

// MultiPair returns prod e(p1[i], p2[i]); pairs with either point at
// infinity contribute the identity.
func (e *MNT6Engine) MultiPair(p1 []*curve.Point, p2 []*Point3) (*ext.Fp6b, bool) {
	if len(p1) != len(p2) {
		return nil, false
	}
	f := ext.Fp6bOne(e.ext6b)
	for i := range p1 {
		if p1[i].IsInfinity() || p2[i].IsInfinity() {
			continue
		}
		px, py := p1[i].ToAffine()
		qx, qy := p2[i].ToAffine()
		g, ok := e.atePairingLoop(px, py, qx, qy)
		if !ok {
			return nil, false
		}
		f = ext.Fp6bMul(f, g)
	}
	return e.finalExp(f)
}

// MultiPairingCheck reports whether prod e(p1[i], p2[i]) == 1 in GT; the
// second bool is false iff the pairing produced no value.
func (e *MNT6Engine) MultiPairingCheck(p1 []*curve.Point, p2 []*Point3) (bool, bool) {
	result, ok := e.MultiPair(p1, p2)
	if !ok {
		return false, false
	}
	return ext.Fp6bEqual(result, ext.Fp6bOne(e.ext6b)), true
}

// finalExp is the original's two-part final_exponentiation: part one
// raises f to (p^3-1)(p+1) via one Frobenius-3, an inversion, a
// Frobenius-1 and a multiply; part two combines w1_part = (part one
// result)^(p*w1) with w0_part = (part one result)^w0, w0's sign handled
// by ext.Fp6bExp's signed-exponent path.
func (e *MNT6Engine) finalExp(f *ext.Fp6b) (*ext.Fp6b, bool) {
	fInv, ok := ext.Fp6bInv(f)
	if !ok {
		return nil, false
	}
	toFirst := mnt6PartOne(f, fInv)

	eltQ := ext.Fp6bFrobenius(toFirst, 1)
	w1Part := ext.Fp6bExp(eltQ, e.w1)
	w0Part := ext.Fp6bExp(toFirst, e.w0)
	return ext.Fp6bMul(w1Part, w0Part), true
}

// mnt6PartOne computes elt^((p^3-1)(p+1)): elt^(p^3) * eltInv gives the
// p^3-1 factor, then one more Frobenius and multiply applies p+1.
func mnt6PartOne(elt, eltInv *ext.Fp6b) *ext.Fp6b {
	eltQ3 := ext.Fp6bFrobenius(elt, 3)
	eltQ3OverElt := ext.Fp6bMul(eltQ3, eltInv)
	alpha := ext.Fp6bFrobenius(eltQ3OverElt, 1)
	return ext.Fp6bMul(alpha, eltQ3OverElt)
}
