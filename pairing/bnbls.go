package pairing

import (
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// TwistType selects which sparse Fp12 multiplication a line function's
// output feeds, per spec.md §4.3/§4.5: "the twist type selects which of
// mul_by_014/mul_by_034 consumes them". Values match the wire encoding of
// spec.md §6 (`D`=2, `M`=1).
type TwistType byte

const (
	TwistM TwistType = 1
	TwistD TwistType = 2
)

// Family selects which named final-exponentiation hard-part chain a
// sextic-twist Engine uses (spec.md §4.5) and whether the Miller loop
// carries BN's trailing Frobenius-image addition steps: the easy part is
// shared by BLS12 and BN, the rest is not.
type Family int

const (
	FamilyBLS12 Family = iota
	FamilyBN
)

// Engine computes the sextic-twist pairing e: G1 x G2 -> GT = Fp12* shared
// by the BN and BLS12 families. Both families embed G2 over Fp2 and land
// the pairing value in Fp12; what differs is the Miller loop length
// (BLS12 runs over |x|, BN over |6u+2|), BN's two extra Frobenius-image
// lines, and the final exponentiation's hard part.
type Engine struct {
	g1        *curve.Curve
	twist     *TwistCurve2
	ext12     *ext.Ext12
	order     *big.Int
	x         *big.Int // the family parameter off the wire: BLS12's x, BN's u
	xAbs      *big.Int
	xNeg      bool
	loop      *big.Int // Miller loop magnitude: |x| (BLS12) or |6u+2| (BN)
	loopNAF   []int32  // ternary wNAF of loop, non-nil when cheaper than binary
	twistType TwistType
	family    Family
	nrHalfPow *ext.Fp2 // non_residue^((p-1)/2), cached for BN's Q1 twist
	twoInv    *field.Element
}

// NewEngine builds a pairing engine. order is the prime subgroup order
// shared by G1 and the twist's G2 subgroup; x is the signed family
// parameter read off the wire (spec.md §6's length-prefixed loop
// parameter): the loop count x for BLS12, u for BN — the engine derives
// BN's 6u+2 Miller loop and its wNAF itself, choosing the NAF form once
// at construction when naf_length + naf_hamming beats bits + hamming
// (spec.md §9's loop-parameter representation rule).
func NewEngine(g1 *curve.Curve, twist *TwistCurve2, ext12 *ext.Ext12, order, x *big.Int, twistType TwistType, family Family) *Engine {
	e := &Engine{
		g1: g1, twist: twist, ext12: ext12, order: order,
		x: x, xAbs: new(big.Int).Abs(x), xNeg: x.Sign() < 0,
		twistType: twistType, family: family,
	}

	// 2 is invertible in any odd field, which field.New guarantees.
	f := g1.Field()
	e.twoInv, _ = field.Inverse(field.Add(field.One(f), field.One(f)))

	switch family {
	case FamilyBN:
		sixUPlus2 := new(big.Int).Add(new(big.Int).Mul(big.NewInt(6), x), big.NewInt(2))
		e.loop = sixUPlus2.Abs(sixUPlus2)

		p := f.ModulusBig()
		half := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
		e.nrHalfPow = ext.Fp2PowBig(ext12.Base().NonResidue(), half)

		naf := curve.WNAF(e.loop, 2)
		nafHamming := 0
		for _, d := range naf {
			if d != 0 {
				nafHamming++
			}
		}
		bits := e.loop.BitLen()
		hamming := 0
		for i := 0; i < bits; i++ {
			if e.loop.Bit(i) == 1 {
				hamming++
			}
		}
		if len(naf)+nafHamming < bits+hamming {
			e.loopNAF = naf
		}
	default:
		e.loop = e.xAbs
	}
	return e
}

// Pair computes the optimal-ate pairing e(p1, p2). The bool is false iff
// a required inversion failed ("no pairing result", spec.md §4.5's
// failure semantics).
func (e *Engine) Pair(p1 *curve.Point, p2 *Point2) (*ext.Fp12, bool) {
	return e.MultiPair([]*curve.Point{p1}, []*Point2{p2})
}

// MultiPair returns prod e(p1[i], p2[i]) over the caller's pairing, or
// (nil, false) on mismatched counts or a failed inversion. Pairs with
// either point at infinity contribute the identity.
func (e *Engine) MultiPair(p1 []*curve.Point, p2 []*Point2) (*ext.Fp12, bool) {
	if len(p1) != len(p2) {
		return nil, false
	}

	type preparedPair struct {
		px, py *field.Element
		coeffs []lineCoeffs
	}
	var pairs []preparedPair
	for i := range p1 {
		if p1[i].IsInfinity() || p2[i].IsInfinity() {
			continue
		}
		px, py := p1[i].ToAffine()
		qx, qy := p2[i].ToAffine()
		pairs = append(pairs, preparedPair{px: px, py: py, coeffs: e.prepare(qx, qy)})
	}

	f := ext.Fp12One(e.ext12)
	k := 0
	consume := func() {
		for _, pr := range pairs {
			f = e.ell(f, pr.coeffs[k], pr.px, pr.py)
		}
		k++
	}

	if e.loopNAF != nil {
		for i := len(e.loopNAF) - 2; i >= 0; i-- {
			f = ext.Fp12Sqr(f)
			consume()
			if e.loopNAF[i] != 0 {
				consume()
			}
		}
	} else {
		for i := e.loop.BitLen() - 2; i >= 0; i-- {
			f = ext.Fp12Sqr(f)
			consume()
			if e.loop.Bit(i) == 1 {
				consume()
			}
		}
	}

	if e.xNeg {
		f = ext.Fp12Conjugate(f)
	}
	if e.family == FamilyBN {
		// The two Frobenius-image lines prepared past the loop's end.
		consume()
		consume()
	}

	return e.finalExp(f)
}

// MultiPairingCheck reports whether prod e(p1[i], p2[i]) == 1 in GT, the
// batched pairing check the BLS12_PAIR/BN_PAIR operations expose. The
// second bool is false iff the pairing produced no value.
func (e *Engine) MultiPairingCheck(p1 []*curve.Point, p2 []*Point2) (bool, bool) {
	result, ok := e.MultiPair(p1, p2)
	if !ok {
		return false, false
	}
	return ext.Fp12Equal(result, ext.Fp12One(e.ext12)), true
}

// finalExp computes f^((p^12-1)/r): the easy part (shared by both
// families, grounded on original_source/src/pairings/bls12/mod.rs's and
// bn/mod.rs's identical "f1 = f^(p^6); r = f1 * f^-1; r = r^(p^2) * r"
// derivation) followed by the family-specific hard-part chain spec.md
// §4.5 names. Returns false iff f is not invertible.
func (e *Engine) finalExp(f *ext.Fp12) (*ext.Fp12, bool) {
	fInv, ok := ext.Fp12Inv(f)
	if !ok {
		return nil, false
	}
	f1 := ext.Fp12Mul(ext.Fp12Conjugate(f), fInv)
	r := ext.Fp12Mul(ext.Fp12Frobenius(f1, 2), f1)
	switch e.family {
	case FamilyBN:
		return e.hardPartBN(r), true
	default:
		return e.hardPartBLS12(r), true
	}
}

// expByX raises f (already in the cyclotomic subgroup) to the family
// parameter x via compressed squaring, conjugating when x is negative —
// original_source's shared exp_by_x.
func (e *Engine) expByX(f *ext.Fp12) *ext.Fp12 {
	out := ext.Fp12CyclotomicExp(f, e.xAbs)
	if e.xNeg {
		out = ext.Fp12Conjugate(out)
	}
	return out
}

// hardPartBLS12 is the Ghammam-Fouotsa five-exp_by_x chain from
// original_source/src/pairings/bls12/mod.rs's final_exponentiation
// (Table 1 of https://eprint.iacr.org/2016/130.pdf), transliterated
// directly: r is the easy part's output.
func (e *Engine) hardPartBLS12(r *ext.Fp12) *ext.Fp12 {
	y0 := ext.Fp12Conjugate(ext.Fp12CyclotomicSqr(r))
	y5 := e.expByX(r)
	y1 := ext.Fp12CyclotomicSqr(y5)
	y3 := ext.Fp12Mul(y0, y5)
	y0 = e.expByX(y3)
	y2 := e.expByX(y0)
	y4 := e.expByX(y2)
	y4 = ext.Fp12Mul(y4, y1)
	y1 = e.expByX(y4)
	y3 = ext.Fp12Conjugate(y3)
	y1 = ext.Fp12Mul(y1, y3)
	y1 = ext.Fp12Mul(y1, r)
	y3b := ext.Fp12Conjugate(r)
	y0 = ext.Fp12Mul(y0, r)
	y0 = ext.Fp12Frobenius(y0, 3)
	y4 = ext.Fp12Mul(y4, y3b)
	y4 = ext.Fp12Frobenius(y4, 1)
	y5 = ext.Fp12Mul(y5, y2)
	y5 = ext.Fp12Frobenius(y5, 2)
	y5 = ext.Fp12Mul(y5, y0)
	y5 = ext.Fp12Mul(y5, y4)
	y5 = ext.Fp12Mul(y5, y1)
	return y5
}

// hardPartBN is the Devegili et al. fused chain from
// original_source/src/pairings/bn/mod.rs's final_exponentiation
// (https://eprint.iacr.org/2012/232.pdf), transliterated directly: r is
// the easy part's output; the exp_by_x steps run over u, not 6u+2.
func (e *Engine) hardPartBN(r *ext.Fp12) *ext.Fp12 {
	fp := ext.Fp12Frobenius(r, 1)
	fp2 := ext.Fp12Frobenius(r, 2)
	fp3 := ext.Fp12Frobenius(fp2, 1)

	fu := e.expByX(r)
	fu2 := e.expByX(fu)
	fu3 := e.expByX(fu2)

	y3 := ext.Fp12Frobenius(fu, 1)
	fu2p := ext.Fp12Frobenius(fu2, 1)
	fu3p := ext.Fp12Frobenius(fu3, 1)
	y2 := ext.Fp12Frobenius(fu2, 2)

	y0 := ext.Fp12Mul(ext.Fp12Mul(fp, fp2), fp3)
	y1 := ext.Fp12Conjugate(r)
	y5 := ext.Fp12Conjugate(fu2)
	y3 = ext.Fp12Conjugate(y3)

	y4 := ext.Fp12Conjugate(ext.Fp12Mul(fu, fu2p))
	y6 := ext.Fp12Conjugate(ext.Fp12Mul(fu3, fu3p))

	y6 = ext.Fp12CyclotomicSqr(y6)
	y6 = ext.Fp12Mul(y6, y4)
	y6 = ext.Fp12Mul(y6, y5)

	t1 := ext.Fp12Mul(y3, y5)
	t1 = ext.Fp12Mul(t1, y6)

	y6 = ext.Fp12Mul(y6, y2)

	t1 = ext.Fp12CyclotomicSqr(t1)
	t1 = ext.Fp12Mul(t1, y6)
	t1 = ext.Fp12CyclotomicSqr(t1)

	t0 := ext.Fp12Mul(t1, y1)
	t1 = ext.Fp12Mul(t1, y0)

	t0 = ext.Fp12CyclotomicSqr(t0)
	t0 = ext.Fp12Mul(t0, t1)
	return t0
}
