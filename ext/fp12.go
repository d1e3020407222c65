package ext

import "math/big"

// Ext12 describes Fp12 = Fp6[w] / (w^2 - v), the pairing target group
// tower for BN and BLS12 curves, where v is Fp6's own indeterminate
// (w^2 = v is the standard construction every BN/BLS implementation
// uses, including bn254_fp12.go — there is no independent "gamma" to
// choose). Grounded on the fp12 type in bn254_fp12.go.
type Ext12 struct {
	base   *Ext6
	frobC1 [12]*Fp6 // v^((p^k-1)/2), the w-slot Frobenius scale factor
}

func NewExt12(base *Ext6) *Ext12 {
	p := base.base.base.ModulusBig()
	v := &Fp6{ext: base, c0: Fp2Zero(base.base), c1: Fp2One(base.base), c2: Fp2Zero(base.base)}
	x := &Ext12{base: base}
	for k := 0; k < 12; k++ {
		// w^(p^k) = w * (w^2)^((p^k-1)/2) = v^((p^k-1)/2) * w. Since
		// p = 1 (mod 6) for any modulus hosting this tower, the exponent
		// is a multiple of 3 and the coefficient collapses to the Fp2
		// scalar xi^((p^k-1)/6) sitting in the c0 slot; computing it as a
		// generic v power keeps the construction non-residue-agnostic.
		pk := new(big.Int).Exp(p, big.NewInt(int64(k)), nil)
		e1 := new(big.Int).Rsh(new(big.Int).Sub(pk, big.NewInt(1)), 1)
		x.frobC1[k] = fp6PowBig(v, e1)
	}
	return x
}

func fp6PowBig(e *Fp6, exp *big.Int) *Fp6 {
	res := Fp6One(e.ext)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		res = Fp6Sqr(res)
		if exp.Bit(i) == 1 {
			res = Fp6Mul(res, e)
		}
	}
	return res
}

func (x *Ext12) Base() *Ext6 { return x.base }

// Fp12 is an element c0 + c1*w of an Ext12 tower.
type Fp12 struct {
	ext    *Ext12
	c0, c1 *Fp6
}

func NewFp12(x *Ext12, c0, c1 *Fp6) *Fp12 {
	return &Fp12{ext: x, c0: c0, c1: c1}
}

func Fp12Zero(x *Ext12) *Fp12 {
	return &Fp12{ext: x, c0: Fp6Zero(x.base), c1: Fp6Zero(x.base)}
}

func Fp12One(x *Ext12) *Fp12 {
	return &Fp12{ext: x, c0: Fp6One(x.base), c1: Fp6Zero(x.base)}
}

func (e *Fp12) Ext() *Ext12 { return e.ext }
func (e *Fp12) C0() *Fp6 { return e.c0 }
func (e *Fp12) C1() *Fp6 { return e.c1 }

func (e *Fp12) IsOne(x *Ext12) bool {
	one := Fp12One(x)
	return Fp12Equal(e, one)
}

func Fp12Equal(e, f *Fp12) bool {
	return Fp6Equal(e.c0, f.c0) && Fp6Equal(e.c1, f.c1)
}

func Fp12Add(e, f *Fp12) *Fp12 {
	return &Fp12{ext: e.ext, c0: Fp6Add(e.c0, f.c0), c1: Fp6Add(e.c1, f.c1)}
}

func Fp12Sub(e, f *Fp12) *Fp12 {
	return &Fp12{ext: e.ext, c0: Fp6Sub(e.c0, f.c0), c1: Fp6Sub(e.c1, f.c1)}
}

func Fp12Neg(e *Fp12) *Fp12 {
	return &Fp12{ext: e.ext, c0: Fp6Neg(e.c0), c1: Fp6Neg(e.c1)}
}

// Fp12Mul is bn254_fp12.go's fp12Mul, unchanged: the "multiply by v" shift
// it performs is Fp6MulByV against the Ext6 base, which already carries a
// runtime non-residue.
func Fp12Mul(e, f *Fp12) *Fp12 {
	t1 := Fp6Mul(e.c0, f.c0)
	t2 := Fp6Mul(e.c1, f.c1)

	c0 := Fp6Add(t1, Fp6MulByV(t2))
	c1 := Fp6Sub(Fp6Sub(Fp6Mul(Fp6Add(e.c0, e.c1), Fp6Add(f.c0, f.c1)), t1), t2)

	return &Fp12{ext: e.ext, c0: c0, c1: c1}
}

// Fp12Sqr is bn254_fp12.go's fp12Sqr.
func Fp12Sqr(e *Fp12) *Fp12 {
	ab := Fp6Mul(e.c0, e.c1)
	t := Fp6Add(e.c0, e.c1)
	u := Fp6Add(e.c0, Fp6MulByV(e.c1))
	c0 := Fp6Sub(Fp6Sub(Fp6Mul(t, u), ab), Fp6MulByV(ab))
	c1 := Fp6Add(ab, ab)
	return &Fp12{ext: e.ext, c0: c0, c1: c1}
}

// Fp12Inv is bn254_fp12.go's fp12Inv.
func Fp12Inv(e *Fp12) (*Fp12, bool) {
	t := Fp6Sub(Fp6Sqr(e.c0), Fp6MulByV(Fp6Sqr(e.c1)))
	tInv, ok := Fp6Inv(t)
	if !ok {
		return nil, false
	}
	return &Fp12{ext: e.ext, c0: Fp6Mul(e.c0, tInv), c1: Fp6Neg(Fp6Mul(e.c1, tInv))}, true
}

// Fp12Conjugate returns c0 - c1*w.
func Fp12Conjugate(e *Fp12) *Fp12 {
	return &Fp12{ext: e.ext, c0: e.c0, c1: Fp6Neg(e.c1)}
}

// Fp12Frobenius delegates to Fp6's Frobenius (period 6) and scales the w
// coefficient by the precomputed gamma power.
func Fp12Frobenius(e *Fp12, power int) *Fp12 {
	k := power % 12
	return &Fp12{
		ext: e.ext,
		c0:  Fp6Frobenius(e.c0, power),
		c1:  Fp6Mul(Fp6Frobenius(e.c1, power), e.ext.frobC1[k]),
	}
}

// Fp12Exp is bn254_fp12.go's fp12Exp, adapted to take the exponent as a
// field-agnostic big.Int (final-exponentiation exponents routinely exceed
// any single field's limb width).
func Fp12Exp(e *Fp12, k *big.Int) *Fp12 {
	x := e.ext
	if k.Sign() == 0 {
		return Fp12One(x)
	}
	neg := k.Sign() < 0
	abs := new(big.Int).Abs(k)
	r := Fp12One(x)
	for i := abs.BitLen() - 1; i >= 0; i-- {
		r = Fp12Sqr(r)
		if abs.Bit(i) == 1 {
			r = Fp12Mul(r, e)
		}
	}
	if neg {
		inv, ok := Fp12Inv(r)
		if !ok {
			return Fp12One(x)
		}
		return inv
	}
	return r
}

// fp4Sqr squares the implicit Fp4 element a0 + a1*y (y^2 = the Ext6
// non-residue), the building block of Granger-Scott compressed squaring.
// Grounded on the fp4Square helper in the drand bls12-381 vendor copy's
// fp12.go, with the fixed xi = 1+u generalized to e's runtime non-residue.
func fp4Sqr(x6 *Ext6, a0, a1 *Fp2) (c0, c1 *Fp2) {
	t0 := Fp2Sqr(a0)
	t1 := Fp2Sqr(a1)
	c0 = Fp2Add(Fp6MulByNonResidue(x6, t1), t0)
	c1 = Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(a0, a1)), t0), t1)
	return
}

// Fp12CyclotomicSqr is the Granger-Scott compressed squaring, valid only
// for elements of the cyclotomic subgroup (the image of the final
// exponentiation's easy part). Grounded on cyclotomicSquare in the drand
// bls12-381 vendor copy's fp12_common.go, coordinate-for-coordinate, over
// the runtime tower.
func Fp12CyclotomicSqr(e *Fp12) *Fp12 {
	x6 := e.ext.base

	t3, t4 := fp4Sqr(x6, e.c0.c0, e.c1.c1)
	c00 := Fp2Add(Fp2Double(Fp2Sub(t3, e.c0.c0)), t3)
	c11 := Fp2Add(Fp2Double(Fp2Add(t4, e.c1.c1)), t4)

	t3, t4 = fp4Sqr(x6, e.c1.c0, e.c0.c2)
	t5, t6 := fp4Sqr(x6, e.c0.c1, e.c1.c2)

	c01 := Fp2Add(Fp2Double(Fp2Sub(t3, e.c0.c1)), t3)
	c12 := Fp2Add(Fp2Double(Fp2Add(t4, e.c1.c2)), t4)

	t3 = Fp6MulByNonResidue(x6, t6)
	c10 := Fp2Add(Fp2Double(Fp2Add(t3, e.c1.c0)), t3)
	c02 := Fp2Add(Fp2Double(Fp2Sub(t5, e.c0.c2)), t5)

	return &Fp12{
		ext: e.ext,
		c0:  &Fp6{ext: x6, c0: c00, c1: c01, c2: c02},
		c1:  &Fp6{ext: x6, c0: c10, c1: c11, c2: c12},
	}
}

// Fp12CyclotomicExp raises a cyclotomic-subgroup element to a nonnegative
// exponent using compressed squaring between multiplications. Callers
// wanting a negative exponent conjugate the result (conjugation is
// inversion on the cyclotomic subgroup).
func Fp12CyclotomicExp(e *Fp12, k *big.Int) *Fp12 {
	x := e.ext
	if k.Sign() == 0 {
		return Fp12One(x)
	}
	r := Fp12One(x)
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = Fp12CyclotomicSqr(r)
		if k.Bit(i) == 1 {
			r = Fp12Mul(r, e)
		}
	}
	return r
}

// Fp12MulBy014 is the sparse multiplication used in the Miller loop: e is a
// general Fp12 element, (c0,c1,c4) are the only nonzero coefficients of a
// line-function value in the (c0, c1*v^0*w^0 ... ) "014" sparsity pattern
// (named after which of the six Fp2 slots across (c0,c1) are nonzero:
// slots 0, 1 and 4). This is the M-twist consumer (spec.md §4.5: "the twist
// type selects which of mul_by_014/mul_by_034 consumes them"). Grounded on
// the sparse-multiplication shortcut described for BN/BLS Miller loops in
// original_source/src/pairings/mod.rs.
func Fp12MulBy014(e *Fp12, c0, c1, c4 *Fp2) *Fp12 {
	aa := Fp6MulByC0C1(e.c0, c0, c1)
	bb := Fp6MulByC1(e.c1, c4)

	o := Fp2Add(c1, c4)
	t1 := Fp6MulByC0C1(Fp6Add(e.c0, e.c1), c0, o)
	t1 = Fp6Sub(Fp6Sub(t1, aa), bb)

	t0 := Fp6Add(aa, Fp6MulByV(bb))
	return &Fp12{ext: e.ext, c0: t0, c1: t1}
}

// Fp12MulBy034 is the "034" sparse-multiplication variant (nonzero slots
// 0, 3 and 4), the D-twist consumer (vs. 014's M-twist case above).
func Fp12MulBy034(e *Fp12, c0, c3, c4 *Fp2) *Fp12 {
	aa := Fp6MulByC0(e.c0, c0)
	bb := Fp6MulByC0C1(e.c1, c3, c4)

	t1 := Fp6MulByC0C1(Fp6Add(e.c0, e.c1), Fp2Add(c0, c3), c4)
	t1 = Fp6Sub(Fp6Sub(t1, aa), bb)

	t0 := Fp6Add(aa, Fp6MulByV(bb))
	return &Fp12{ext: e.ext, c0: t0, c1: t1}
}

// Fp6MulByC0 multiplies e by a sparse Fp6 element whose only nonzero
// coefficient is c0.
func Fp6MulByC0(e *Fp6, c0 *Fp2) *Fp6 {
	return &Fp6{ext: e.ext, c0: Fp2Mul(e.c0, c0), c1: Fp2Mul(e.c1, c0), c2: Fp2Mul(e.c2, c0)}
}

// Fp6MulByC1 multiplies e by a sparse Fp6 element whose only nonzero
// coefficient is c1 (the v^1 slot).
func Fp6MulByC1(e *Fp6, c1 *Fp2) *Fp6 {
	return &Fp6{
		ext: e.ext,
		c0:  Fp6MulByNonResidue(e.ext, Fp2Mul(e.c2, c1)),
		c1:  Fp2Mul(e.c0, c1),
		c2:  Fp2Mul(e.c1, c1),
	}
}

// Fp6MulByC0C1 multiplies e by a sparse Fp6 element with only the c0, c1
// coefficients nonzero (c2 = 0), the shape every BN/BLS line function
// evaluates to: (e0+e1*v+e2*v^2)(c0+c1*v) = e0c0 + xi*e2c1
//               + (e0c1+e1c0)*v + (e1c1+e2c0)*v^2.
func Fp6MulByC0C1(e *Fp6, c0, c1 *Fp2) *Fp6 {
	return &Fp6{
		ext: e.ext,
		c0:  Fp2Add(Fp2Mul(e.c0, c0), Fp6MulByNonResidue(e.ext, Fp2Mul(e.c2, c1))),
		c1:  Fp2Add(Fp2Mul(e.c0, c1), Fp2Mul(e.c1, c0)),
		c2:  Fp2Add(Fp2Mul(e.c1, c1), Fp2Mul(e.c2, c0)),
	}
}
