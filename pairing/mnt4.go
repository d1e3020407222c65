package pairing

import (
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// MNT4Engine computes the ate pairing for the MNT4 family: G2 lives on a
// quadratic twist over Fp2 (TwistCurve2/Point2 — the same coordinate type
// BN/BLS12 use, only the pairing target differs) and GT = Fp4*.
//
// Transliterated from original_source/src/pairings/mnt4/mod.rs: per-pair
// precomputation tables over G2 built in extended coordinates
// (X, Y, Z, T = Z^2), doubling coefficients (c_h, c_4c, c_j, c_l) per
// Miller-loop bit and addition coefficients (c_l1, c_rz) per set bit, with
// line values assembled element-wise in Fp4 from the G1 point's
// twist-scaled coordinates. The Miller loop runs over the caller-supplied
// signed loop parameter x; the final exponentiation uses the separate
// w0/w1 exponents spec.md §3/§4.5 name explicitly (x, exp_w0, exp_w1 are
// three independent fields of the original's MNT4Instance).
type MNT4Engine struct {
	g1    *curve.Curve
	twist *TwistCurve2
	ext4  *ext.Ext4
	order *big.Int
	x     *big.Int
	w0    *big.Int
	w1    *big.Int
	// twistElt is the generator u of the quadratic extension, the twist
	// element relating G2's coordinates to the curve over Fp4 (always
	// (0, 1) for a quadratic twist, as in the original's instances).
	twistElt *ext.Fp2
}

func NewMNT4Engine(g1 *curve.Curve, twist *TwistCurve2, ext4 *ext.Ext4, order, x, w0, w1 *big.Int) *MNT4Engine {
	x2 := twist.Ext2()
	twistElt := ext.NewFp2(x2, field.Zero(x2.Base()), field.One(x2.Base()))
	return &MNT4Engine{g1: g1, twist: twist, ext4: ext4, order: order, x: x, w0: w0, w1: w1, twistElt: twistElt}
}

// ateDoubleCoeffs4 and ateAddCoeffs4 are the per-step coefficient tuples
// spec.md §4.5 names for the MNT precomputation tables.
type ateDoubleCoeffs4 struct {
	cH, c4C, cJ, cL *ext.Fp2
}

type ateAddCoeffs4 struct {
	cL1, cRZ *ext.Fp2
}

// extCoords4 is the extended-coordinate representation (X, Y, Z, T = Z^2)
// the precomputation advances the G2 point in.
type extCoords4 struct {
	x, y, z, t *ext.Fp2
}

type precompG1of4 struct {
	x, y               *field.Element
	xByTwist, yByTwist *ext.Fp2
}

type precompG2of4 struct {
	x, y                   *ext.Fp2
	xOverTwist, yOverTwist *ext.Fp2
	doubles                []ateDoubleCoeffs4
	additions              []ateAddCoeffs4
}

func (e *MNT4Engine) precomputeG1(px, py *field.Element) *precompG1of4 {
	return &precompG1of4{
		x: px, y: py,
		xByTwist: ext.Fp2MulByFp(e.twistElt, px),
		yByTwist: ext.Fp2MulByFp(e.twistElt, py),
	}
}

func (e *MNT4Engine) doublingStep(r *extCoords4) ateDoubleCoeffs4 {
	a := ext.Fp2Sqr(r.t)
	b := ext.Fp2Sqr(r.x)
	c := ext.Fp2Sqr(r.y)
	d := ext.Fp2Sqr(c)

	en := ext.Fp2Sqr(ext.Fp2Add(r.x, c))
	en = ext.Fp2Sub(ext.Fp2Sub(en, b), d)

	f := ext.Fp2Mul(e.twist.a2, a)
	f = ext.Fp2Add(f, ext.Fp2Add(ext.Fp2Double(b), b))

	g := ext.Fp2Sqr(f)

	dEight := ext.Fp2Double(ext.Fp2Double(ext.Fp2Double(d)))

	x := ext.Fp2Sub(g, ext.Fp2Double(ext.Fp2Double(en)))

	y := ext.Fp2Sub(ext.Fp2Double(en), x)
	y = ext.Fp2Mul(y, f)
	y = ext.Fp2Sub(y, dEight)

	zSq := ext.Fp2Sqr(r.z)
	z := ext.Fp2Sqr(ext.Fp2Add(r.y, r.z))
	z = ext.Fp2Sub(ext.Fp2Sub(z, c), zSq)

	t := ext.Fp2Sqr(z)

	cH := ext.Fp2Sqr(ext.Fp2Add(z, r.t))
	cH = ext.Fp2Sub(ext.Fp2Sub(cH, t), a)

	c4C := ext.Fp2Double(ext.Fp2Double(c))

	cJ := ext.Fp2Sqr(ext.Fp2Add(f, r.t))
	cJ = ext.Fp2Sub(ext.Fp2Sub(cJ, g), a)

	cL := ext.Fp2Sqr(ext.Fp2Add(f, r.x))
	cL = ext.Fp2Sub(ext.Fp2Sub(cL, g), b)

	r.x, r.y, r.z, r.t = x, y, z, t
	return ateDoubleCoeffs4{cH: cH, c4C: c4C, cJ: cJ, cL: cL}
}

func (e *MNT4Engine) additionStep(x, y *ext.Fp2, r *extCoords4) ateAddCoeffs4 {
	a := ext.Fp2Sqr(y)
	b := ext.Fp2Mul(r.t, x)

	d := ext.Fp2Sqr(ext.Fp2Add(r.z, y))
	d = ext.Fp2Sub(ext.Fp2Sub(d, a), r.t)
	d = ext.Fp2Mul(d, r.t)

	h := ext.Fp2Sub(b, r.x)
	i := ext.Fp2Sqr(h)

	en := ext.Fp2Double(ext.Fp2Double(i))
	j := ext.Fp2Mul(h, en)
	v := ext.Fp2Mul(r.x, en)

	l1 := ext.Fp2Sub(ext.Fp2Sub(d, r.y), r.y)

	nx := ext.Fp2Sqr(l1)
	nx = ext.Fp2Sub(ext.Fp2Sub(nx, j), ext.Fp2Double(v))

	t0 := ext.Fp2Mul(ext.Fp2Double(r.y), j)
	ny := ext.Fp2Mul(ext.Fp2Sub(v, nx), l1)
	ny = ext.Fp2Sub(ny, t0)

	nz := ext.Fp2Sqr(ext.Fp2Add(r.z, h))
	nz = ext.Fp2Sub(ext.Fp2Sub(nz, r.t), i)

	nt := ext.Fp2Sqr(nz)

	r.x, r.y, r.z, r.t = nx, ny, nz, nt
	return ateAddCoeffs4{cL1: l1, cRZ: nz}
}

// precomputeG2 builds the per-pair coefficient tables by walking the bits
// of |x| once (MSB consumed by starting at the point itself), appending
// one more addition step against -R when x is negative.
func (e *MNT4Engine) precomputeG2(qx, qy *ext.Fp2, twistInv *ext.Fp2) (*precompG2of4, bool) {
	x2 := e.twist.Ext2()
	q := &precompG2of4{
		x: qx, y: qy,
		xOverTwist: ext.Fp2Mul(qx, twistInv),
		yOverTwist: ext.Fp2Mul(qy, twistInv),
	}

	r := &extCoords4{x: qx, y: qy, z: ext.Fp2One(x2), t: ext.Fp2One(x2)}
	loop := new(big.Int).Abs(e.x)
	for i := loop.BitLen() - 2; i >= 0; i-- {
		q.doubles = append(q.doubles, e.doublingStep(r))
		if loop.Bit(i) == 1 {
			q.additions = append(q.additions, e.additionStep(qx, qy, r))
		}
	}

	if e.x.Sign() < 0 {
		rzInv, ok := ext.Fp2Inv(r.z)
		if !ok {
			return nil, false
		}
		rzInv2 := ext.Fp2Sqr(rzInv)
		rzInv3 := ext.Fp2Mul(rzInv2, rzInv)

		minusRx := ext.Fp2Mul(rzInv2, r.x)
		minusRy := ext.Fp2Neg(ext.Fp2Mul(rzInv3, r.y))
		q.additions = append(q.additions, e.additionStep(minusRx, minusRy, r))
	}
	return q, true
}

// atePairingLoop is the coefficient-consuming half: squares the Fp4
// accumulator per bit and multiplies in the doubling/addition line values
// evaluated at P's twist-scaled coordinates.
func (e *MNT4Engine) atePairingLoop(px, py *field.Element, qx, qy *ext.Fp2) (*ext.Fp4, bool) {
	x2 := e.twist.Ext2()
	twistInv, ok := ext.Fp2Inv(e.twistElt)
	if !ok {
		return nil, false
	}

	p := e.precomputeG1(px, py)
	q, ok := e.precomputeG2(qx, qy, twistInv)
	if !ok {
		return nil, false
	}

	l1Coeff := ext.NewFp2(x2, p.x, field.Zero(x2.Base()))
	l1Coeff = ext.Fp2Sub(l1Coeff, q.xOverTwist)

	addLine := func(ac ateAddCoeffs4) *ext.Fp4 {
		t0 := ext.Fp2Mul(ac.cRZ, p.yByTwist)
		t1 := ext.Fp2Mul(q.yOverTwist, ac.cRZ)
		t1 = ext.Fp2Add(t1, ext.Fp2Mul(l1Coeff, ac.cL1))
		t1 = ext.Fp2Neg(t1)
		return ext.NewFp4(e.ext4, t0, t1)
	}

	f := ext.Fp4One(e.ext4)
	dblIdx, addIdx := 0, 0
	loop := new(big.Int).Abs(e.x)
	for i := loop.BitLen() - 2; i >= 0; i-- {
		dc := q.doubles[dblIdx]
		dblIdx++

		t0 := ext.Fp2Neg(ext.Fp2Mul(dc.cJ, p.xByTwist))
		t0 = ext.Fp2Add(t0, dc.cL)
		t0 = ext.Fp2Sub(t0, dc.c4C)
		t1 := ext.Fp2Mul(dc.cH, p.yByTwist)
		gRR := ext.NewFp4(e.ext4, t0, t1)

		f = ext.Fp4Sqr(f)
		f = ext.Fp4Mul(f, gRR)

		if loop.Bit(i) == 1 {
			f = ext.Fp4Mul(f, addLine(q.additions[addIdx]))
			addIdx++
		}
	}

	if e.x.Sign() < 0 {
		f = ext.Fp4Mul(f, addLine(q.additions[addIdx]))
		inv, ok := ext.Fp4Inv(f)
		if !ok {
			return nil, false
		}
		f = inv
	}
	return f, true
}

// Pair computes e(p1, p2); false iff a required inversion failed.
func (e *MNT4Engine) Pair(p1 *curve.Point, p2 *Point2) (*ext.Fp4, bool) {
	return e.MultiPair([]*curve.Point{p1}, []*Point2{p2})
}

// MultiPair returns prod e(p1[i], p2[i]); pairs with either point at
// infinity contribute the identity.
func (e *MNT4Engine) MultiPair(p1 []*curve.Point, p2 []*Point2) (*ext.Fp4, bool) {
	if len(p1) != len(p2) {
		return nil, false
	}
	f := ext.Fp4One(e.ext4)
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
		f = ext.Fp4Mul(f, g)
	}
	return e.finalExp(f)
}

// MultiPairingCheck reports whether prod e(p1[i], p2[i]) == 1 in GT; the
// second bool is false iff the pairing produced no value.
func (e *MNT4Engine) MultiPairingCheck(p1 []*curve.Point, p2 []*Point2) (bool, bool) {
	result, ok := e.MultiPair(p1, p2)
	if !ok {
		return false, false
	}
	return ext.Fp4Equal(result, ext.Fp4One(e.ext4)), true
}

// finalExp is the original's two-part final_exponentiation: part one
// raises f to p^2-1 (one Frobenius-2 and an inversion); part two combines
// w1_part = (part one result)^(p*w1) with w0_part = (part one result)^w0,
// w0's sign handled by ext.Fp4Exp's signed-exponent path (the original
// feeds elt or elt_inv to cyclotomic_exp by w0's sign bit — the same
// value by x -> x^-1 being a homomorphism).
func (e *MNT4Engine) finalExp(f *ext.Fp4) (*ext.Fp4, bool) {
	fInv, ok := ext.Fp4Inv(f)
	if !ok {
		return nil, false
	}
	toFirst := mnt4PartOne(f, fInv)

	eltQ := ext.Fp4Frobenius(toFirst, 1)
	w1Part := ext.Fp4Exp(eltQ, e.w1)
	w0Part := ext.Fp4Exp(toFirst, e.w0)
	return ext.Fp4Mul(w1Part, w0Part), true
}

// mnt4PartOne computes elt^(p^2-1) = elt^(p^2) * eltInv.
func mnt4PartOne(elt, eltInv *ext.Fp4) *ext.Fp4 {
	eltQ2 := ext.Fp4Frobenius(elt, 2)
	return ext.Fp4Mul(eltQ2, eltInv)
}
