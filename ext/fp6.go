package ext

import "math/big"

// Ext6 describes Fp6 = Fp2[v] / (v^3 - nonResidue), the sextic-twist
// construction BN and BLS12 curves use. Grounded on the fp6 type in
// bn254_fp6.go, with the fixed xi = 9+i generalized to a runtime Fp2
// non-residue.
type Ext6 struct {
	base       *Ext2
	nonResidue *Fp2
	frobC1     [6]*Fp2 // nonResidue^(i*(p^k-1)/3), indexed by Frobenius power k
	frobC2     [6]*Fp2
}

func NewExt6(base *Ext2, nonResidue *Fp2) *Ext6 {
	p := base.base.ModulusBig()
	x := &Ext6{base: base, nonResidue: nonResidue}
	for k := 0; k < 6; k++ {
		pk := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
		e1 := new(big.Int).Div(new(big.Int).Sub(pk, big.NewInt(1)), big.NewInt(3))
		e2 := new(big.Int).Mul(e1, big.NewInt(2))
		x.frobC1[k] = fp2PowBig(nonResidue, e1)
		x.frobC2[k] = fp2PowBig(nonResidue, e2)
	}
	return x
}

// fp2PowBig exponentiates an Fp2 element by an arbitrary-size exponent,
// used only for one-time Frobenius-coefficient construction (mirrors
// field.PowBig one tower level up).
func fp2PowBig(e *Fp2, exp *big.Int) *Fp2 {
	res := Fp2One(e.ext)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		res = Fp2Sqr(res)
		if exp.Bit(i) == 1 {
			res = Fp2Mul(res, e)
		}
	}
	return res
}

func (x *Ext6) Base() *Ext2 { return x.base }
func (x *Ext6) NonResidue() *Fp2 { return x.nonResidue }

// FrobeniusC1 exposes the k-th c1-slot Frobenius coefficient,
// nonResidue^((p^k-1)/3). The BN pairing's post-loop Frobenius-image
// points are twisted by exactly these values (untwist, apply p^k, twist
// back collapses to one coefficient per coordinate).
func (x *Ext6) FrobeniusC1(k int) *Fp2 { return x.frobC1[k%6] }

// Fp2PowBig exponentiates an Fp2 element by an arbitrary nonnegative
// exponent; the exported face of fp2PowBig for construction-time
// derived constants (e.g. the BN engine's non_residue^((p-1)/2)).
func Fp2PowBig(e *Fp2, exp *big.Int) *Fp2 {
	return fp2PowBig(e, exp)
}

// Fp6 is an element c0 + c1*v + c2*v^2 of an Ext6 tower.
type Fp6 struct {
	ext        *Ext6
	c0, c1, c2 *Fp2
}

func NewFp6(x *Ext6, c0, c1, c2 *Fp2) *Fp6 {
	return &Fp6{ext: x, c0: c0, c1: c1, c2: c2}
}

func Fp6Zero(x *Ext6) *Fp6 {
	return &Fp6{ext: x, c0: Fp2Zero(x.base), c1: Fp2Zero(x.base), c2: Fp2Zero(x.base)}
}

func Fp6One(x *Ext6) *Fp6 {
	return &Fp6{ext: x, c0: Fp2One(x.base), c1: Fp2Zero(x.base), c2: Fp2Zero(x.base)}
}

func (e *Fp6) Ext() *Ext6 { return e.ext }
func (e *Fp6) C0() *Fp2 { return e.c0 }
func (e *Fp6) C1() *Fp2 { return e.c1 }
func (e *Fp6) C2() *Fp2 { return e.c2 }

func (e *Fp6) IsZero() bool {
	return e.c0.IsZero() && e.c1.IsZero() && e.c2.IsZero()
}

func Fp6Equal(e, f *Fp6) bool {
	return Fp2Equal(e.c0, f.c0) && Fp2Equal(e.c1, f.c1) && Fp2Equal(e.c2, f.c2)
}

func Fp6Add(e, f *Fp6) *Fp6 {
	return &Fp6{ext: e.ext, c0: Fp2Add(e.c0, f.c0), c1: Fp2Add(e.c1, f.c1), c2: Fp2Add(e.c2, f.c2)}
}

func Fp6Sub(e, f *Fp6) *Fp6 {
	return &Fp6{ext: e.ext, c0: Fp2Sub(e.c0, f.c0), c1: Fp2Sub(e.c1, f.c1), c2: Fp2Sub(e.c2, f.c2)}
}

func Fp6Neg(e *Fp6) *Fp6 {
	return &Fp6{ext: e.ext, c0: Fp2Neg(e.c0), c1: Fp2Neg(e.c1), c2: Fp2Neg(e.c2)}
}

// Fp6MulByNonResidue multiplies an Fp2 coefficient by the Fp6 tower's
// non-residue, matching bn254_fp6.go's use of fp2MulByNonResidue but with
// a runtime xi instead of the hardcoded 9+i.
func Fp6MulByNonResidue(x *Ext6, a *Fp2) *Fp2 {
	return Fp2Mul(a, x.nonResidue)
}

// Fp6Mul is bn254_fp6.go's fp6Mul verbatim, generalized to a runtime xi.
func Fp6Mul(e, f *Fp6) *Fp6 {
	t0 := Fp2Mul(e.c0, f.c0)
	t1 := Fp2Mul(e.c1, f.c1)
	t2 := Fp2Mul(e.c2, f.c2)

	c0 := Fp2Add(t0, Fp6MulByNonResidue(e.ext,
		Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(e.c1, e.c2), Fp2Add(f.c1, f.c2)), t1), t2)))

	c1 := Fp2Add(
		Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(e.c0, e.c1), Fp2Add(f.c0, f.c1)), t0), t1),
		Fp6MulByNonResidue(e.ext, t2))

	c2 := Fp2Add(
		Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(e.c0, e.c2), Fp2Add(f.c0, f.c2)), t0), t2),
		t1)

	return &Fp6{ext: e.ext, c0: c0, c1: c1, c2: c2}
}

// Fp6Sqr is bn254_fp6.go's fp6Sqr verbatim, generalized to a runtime xi.
func Fp6Sqr(e *Fp6) *Fp6 {
	s0 := Fp2Sqr(e.c0)
	ab := Fp2Mul(e.c0, e.c1)
	s1 := Fp2Add(ab, ab)
	s2 := Fp2Sqr(Fp2Sub(Fp2Add(e.c0, e.c2), e.c1))
	bc := Fp2Mul(e.c1, e.c2)
	s3 := Fp2Add(bc, bc)
	s4 := Fp2Sqr(e.c2)

	c0 := Fp2Add(s0, Fp6MulByNonResidue(e.ext, s3))
	c1 := Fp2Add(s1, Fp6MulByNonResidue(e.ext, s4))
	c2 := Fp2Sub(Fp2Sub(Fp2Add(Fp2Add(s1, s2), s3), s0), s4)

	return &Fp6{ext: e.ext, c0: c0, c1: c1, c2: c2}
}

// Fp6Inv is bn254_fp6.go's fp6Inv verbatim, generalized to a runtime xi.
func Fp6Inv(e *Fp6) (*Fp6, bool) {
	a := Fp2Sub(Fp2Sqr(e.c0), Fp6MulByNonResidue(e.ext, Fp2Mul(e.c1, e.c2)))
	b := Fp2Sub(Fp6MulByNonResidue(e.ext, Fp2Sqr(e.c2)), Fp2Mul(e.c0, e.c1))
	c := Fp2Sub(Fp2Sqr(e.c1), Fp2Mul(e.c0, e.c2))

	f := Fp2Add(Fp2Mul(e.c0, a), Fp6MulByNonResidue(e.ext, Fp2Add(Fp2Mul(e.c2, b), Fp2Mul(e.c1, c))))
	fInv, ok := Fp2Inv(f)
	if !ok {
		return nil, false
	}
	return &Fp6{
		ext: e.ext,
		c0:  Fp2Mul(a, fInv),
		c1:  Fp2Mul(b, fInv),
		c2:  Fp2Mul(c, fInv),
	}, true
}

func Fp6MulByFp2(e *Fp6, s *Fp2) *Fp6 {
	return &Fp6{ext: e.ext, c0: Fp2Mul(e.c0, s), c1: Fp2Mul(e.c1, s), c2: Fp2Mul(e.c2, s)}
}

// Fp6MulByV multiplies by v (shifts coefficients, wrapping c2 through the
// non-residue), used by Fp12Mul/Fp12Sqr the same way bn254_fp12.go's
// fp6MulByV shifts BN254's fixed tower.
func Fp6MulByV(e *Fp6) *Fp6 {
	return &Fp6{
		ext: e.ext,
		c0:  Fp6MulByNonResidue(e.ext, e.c2),
		c1:  e.c0,
		c2:  e.c1,
	}
}

// Fp6Frobenius delegates coordinate-wise to Fp2's Frobenius (periodic
// with degree 2) and scales by the precomputed per-power coefficients,
// the same recursive "delegate to the level below" pattern every tower
// level in this package follows.
func Fp6Frobenius(e *Fp6, power int) *Fp6 {
	k := power % 6
	return &Fp6{
		ext: e.ext,
		c0:  Fp2Frobenius(e.c0, power),
		c1:  Fp2Mul(Fp2Frobenius(e.c1, power), e.ext.frobC1[k]),
		c2:  Fp2Mul(Fp2Frobenius(e.c2, power), e.ext.frobC2[k]),
	}
}
