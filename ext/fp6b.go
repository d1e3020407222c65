package ext

import "math/big"

// Ext6b is the second Fp6 construction: Fp6 = Fp3[y] / (y^2 -
// nonResidue), a quadratic extension of Fp3 rather than a cubic
// extension of Fp2 (Ext6). MNT6's G2 twist lives here; BN/BLS12's G2
// twist lives in Ext6/Fp6. No source in this style of codebase needs
// this shape (BN254 only needs the cubic-over-Fp2 tower); grounded
// structurally on original_source/src/pairings/mnt6/mod.rs's use of a
// quadratic extension on top of its cubic base field, following the
// same Karatsuba pattern Ext4 uses one limb-of-degree lower.
type Ext6b struct {
	base       *Ext3
	nonResidue *Fp3
	frobC1     [6]*Fp3 // nonResidue^((p^k-1)/2)
}

func NewExt6b(base *Ext3, nonResidue *Fp3) *Ext6b {
	p := base.base.ModulusBig()
	x := &Ext6b{base: base, nonResidue: nonResidue}
	for k := 0; k < 6; k++ {
		pk := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
		e1 := new(big.Int).Div(new(big.Int).Sub(pk, big.NewInt(1)), big.NewInt(2))
		x.frobC1[k] = fp3PowBig(nonResidue, e1)
	}
	return x
}

func fp3PowBig(e *Fp3, exp *big.Int) *Fp3 {
	res := Fp3One(e.ext)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		res = Fp3Sqr(res)
		if exp.Bit(i) == 1 {
			res = Fp3Mul(res, e)
		}
	}
	return res
}

func (x *Ext6b) Base() *Ext3 { return x.base }

// Fp6b is an element c0 + c1*y of an Ext6b tower.
type Fp6b struct {
	ext    *Ext6b
	c0, c1 *Fp3
}

func NewFp6b(x *Ext6b, c0, c1 *Fp3) *Fp6b {
	return &Fp6b{ext: x, c0: c0, c1: c1}
}

func Fp6bZero(x *Ext6b) *Fp6b {
	return &Fp6b{ext: x, c0: Fp3Zero(x.base), c1: Fp3Zero(x.base)}
}

func Fp6bOne(x *Ext6b) *Fp6b {
	return &Fp6b{ext: x, c0: Fp3One(x.base), c1: Fp3Zero(x.base)}
}

func (e *Fp6b) Ext() *Ext6b { return e.ext }
func (e *Fp6b) C0() *Fp3 { return e.c0 }
func (e *Fp6b) C1() *Fp3 { return e.c1 }

func (e *Fp6b) IsZero() bool {
	return e.c0.IsZero() && e.c1.IsZero()
}

func Fp6bEqual(e, f *Fp6b) bool {
	return Fp3Equal(e.c0, f.c0) && Fp3Equal(e.c1, f.c1)
}

func Fp6bAdd(e, f *Fp6b) *Fp6b {
	return &Fp6b{ext: e.ext, c0: Fp3Add(e.c0, f.c0), c1: Fp3Add(e.c1, f.c1)}
}

func Fp6bSub(e, f *Fp6b) *Fp6b {
	return &Fp6b{ext: e.ext, c0: Fp3Sub(e.c0, f.c0), c1: Fp3Sub(e.c1, f.c1)}
}

func Fp6bNeg(e *Fp6b) *Fp6b {
	return &Fp6b{ext: e.ext, c0: Fp3Neg(e.c0), c1: Fp3Neg(e.c1)}
}

func Fp6bMulByNonResidue(x *Ext6b, a *Fp3) *Fp3 {
	return Fp3Mul(a, x.nonResidue)
}

func Fp6bMul(e, f *Fp6b) *Fp6b {
	v0 := Fp3Mul(e.c0, f.c0)
	v1 := Fp3Mul(e.c1, f.c1)
	c1 := Fp3Sub(Fp3Sub(Fp3Mul(Fp3Add(e.c0, e.c1), Fp3Add(f.c0, f.c1)), v0), v1)
	c0 := Fp3Add(v0, Fp6bMulByNonResidue(e.ext, v1))
	return &Fp6b{ext: e.ext, c0: c0, c1: c1}
}

func Fp6bSqr(e *Fp6b) *Fp6b {
	return Fp6bMul(e, e)
}

func Fp6bInv(e *Fp6b) (*Fp6b, bool) {
	t := Fp3Sub(Fp3Sqr(e.c0), Fp6bMulByNonResidue(e.ext, Fp3Sqr(e.c1)))
	inv, ok := Fp3Inv(t)
	if !ok {
		return nil, false
	}
	return &Fp6b{
		ext: e.ext,
		c0:  Fp3Mul(e.c0, inv),
		c1:  Fp3Neg(Fp3Mul(e.c1, inv)),
	}, true
}

// Fp6bExp exponentiates by an arbitrary-size signed exponent, the same
// square-and-multiply shape as Fp12Exp/Fp4Exp.
func Fp6bExp(e *Fp6b, k *big.Int) *Fp6b {
	x := e.ext
	if k.Sign() == 0 {
		return Fp6bOne(x)
	}
	neg := k.Sign() < 0
	abs := new(big.Int).Abs(k)
	r := Fp6bOne(x)
	for i := abs.BitLen() - 1; i >= 0; i-- {
		r = Fp6bSqr(r)
		if abs.Bit(i) == 1 {
			r = Fp6bMul(r, e)
		}
	}
	if neg {
		inv, ok := Fp6bInv(r)
		if !ok {
			return Fp6bOne(x)
		}
		return inv
	}
	return r
}

func Fp6bFrobenius(e *Fp6b, power int) *Fp6b {
	k := power % 6
	return &Fp6b{
		ext: e.ext,
		c0:  Fp3Frobenius(e.c0, power),
		c1:  Fp3Mul(Fp3Frobenius(e.c1, power), e.ext.frobC1[k]),
	}
}
