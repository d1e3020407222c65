package ext

import "math/big"

// Ext4 describes Fp4 = Fp2[y] / (y^2 - nonResidue), MNT4's G2 twist
// field. Grounded directly on original_source's fp4_as_2_over_2.rs,
// expressed in the same Karatsuba style used one level up from Fp2
// instead of one level up from Fp.
type Ext4 struct {
	base       *Ext2
	nonResidue *Fp2
	frobC1     [4]*Fp2 // nonResidue^((p^k-1)/2)
}

func NewExt4(base *Ext2, nonResidue *Fp2) *Ext4 {
	p := base.base.ModulusBig()
	x := &Ext4{base: base, nonResidue: nonResidue}
	for k := 0; k < 4; k++ {
		pk := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
		e1 := new(big.Int).Div(new(big.Int).Sub(pk, big.NewInt(1)), big.NewInt(2))
		x.frobC1[k] = fp2PowBig(nonResidue, e1)
	}
	return x
}

func (x *Ext4) Base() *Ext2 { return x.base }
func (x *Ext4) NonResidue() *Fp2 { return x.nonResidue }

// Fp4 is an element c0 + c1*y of an Ext4 tower.
type Fp4 struct {
	ext    *Ext4
	c0, c1 *Fp2
}

func NewFp4(x *Ext4, c0, c1 *Fp2) *Fp4 {
	return &Fp4{ext: x, c0: c0, c1: c1}
}

func Fp4Zero(x *Ext4) *Fp4 {
	return &Fp4{ext: x, c0: Fp2Zero(x.base), c1: Fp2Zero(x.base)}
}

func Fp4One(x *Ext4) *Fp4 {
	return &Fp4{ext: x, c0: Fp2One(x.base), c1: Fp2Zero(x.base)}
}

func (e *Fp4) Ext() *Ext4 { return e.ext }
func (e *Fp4) C0() *Fp2 { return e.c0 }
func (e *Fp4) C1() *Fp2 { return e.c1 }

func (e *Fp4) IsZero() bool {
	return e.c0.IsZero() && e.c1.IsZero()
}

func Fp4Equal(e, f *Fp4) bool {
	return Fp2Equal(e.c0, f.c0) && Fp2Equal(e.c1, f.c1)
}

func Fp4Add(e, f *Fp4) *Fp4 {
	return &Fp4{ext: e.ext, c0: Fp2Add(e.c0, f.c0), c1: Fp2Add(e.c1, f.c1)}
}

func Fp4Sub(e, f *Fp4) *Fp4 {
	return &Fp4{ext: e.ext, c0: Fp2Sub(e.c0, f.c0), c1: Fp2Sub(e.c1, f.c1)}
}

func Fp4Neg(e *Fp4) *Fp4 {
	return &Fp4{ext: e.ext, c0: Fp2Neg(e.c0), c1: Fp2Neg(e.c1)}
}

func Fp4MulByNonResidue(x *Ext4, a *Fp2) *Fp2 {
	return Fp2Mul(a, x.nonResidue)
}

// Fp4Mul is the quadratic-extension Karatsuba product (c0+c1 y)(d0+d1 y) =
// (c0d0 + nr*c1d1) + ((c0+c1)(d0+d1) - c0d0 - c1d1) y, the same shape as
// Fp2Mul one tower level up.
func Fp4Mul(e, f *Fp4) *Fp4 {
	v0 := Fp2Mul(e.c0, f.c0)
	v1 := Fp2Mul(e.c1, f.c1)
	c1 := Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(e.c0, e.c1), Fp2Add(f.c0, f.c1)), v0), v1)
	c0 := Fp2Add(v0, Fp4MulByNonResidue(e.ext, v1))
	return &Fp4{ext: e.ext, c0: c0, c1: c1}
}

func Fp4Sqr(e *Fp4) *Fp4 {
	return Fp4Mul(e, e)
}

func Fp4Inv(e *Fp4) (*Fp4, bool) {
	t := Fp2Sub(Fp2Sqr(e.c0), Fp4MulByNonResidue(e.ext, Fp2Sqr(e.c1)))
	inv, ok := Fp2Inv(t)
	if !ok {
		return nil, false
	}
	return &Fp4{
		ext: e.ext,
		c0:  Fp2Mul(e.c0, inv),
		c1:  Fp2Neg(Fp2Mul(e.c1, inv)),
	}, true
}

// Fp4Exp exponentiates by an arbitrary-size signed exponent, the same
// square-and-multiply shape as Fp12Exp one tower level down.
func Fp4Exp(e *Fp4, k *big.Int) *Fp4 {
	x := e.ext
	if k.Sign() == 0 {
		return Fp4One(x)
	}
	neg := k.Sign() < 0
	abs := new(big.Int).Abs(k)
	r := Fp4One(x)
	for i := abs.BitLen() - 1; i >= 0; i-- {
		r = Fp4Sqr(r)
		if abs.Bit(i) == 1 {
			r = Fp4Mul(r, e)
		}
	}
	if neg {
		inv, ok := Fp4Inv(r)
		if !ok {
			return Fp4One(x)
		}
		return inv
	}
	return r
}

func Fp4Frobenius(e *Fp4, power int) *Fp4 {
	k := power % 4
	return &Fp4{
		ext: e.ext,
		c0:  Fp2Frobenius(e.c0, power),
		c1:  Fp2Mul(Fp2Frobenius(e.c1, power), e.ext.frobC1[k]),
	}
}
