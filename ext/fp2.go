// Package ext implements the runtime-parameterized extension towers
// (Fp2, Fp3, Fp4, Fp6 — two constructions — and Fp12) layered on top of
// package field.
//
// Each tower level is built the way bn254_fp2.go / bn254_fp6.go /
// bn254_fp12.go build BN254's fixed tower, generalized so the non-residue
// defining each extension is a runtime value instead of a hardcoded
// constant, and so Frobenius coefficients are derived once at
// construction instead of being compile-time literals.
package ext

import (
	"math/big"

	"github.com/ecengine/ecengine/field"
)

// Ext2 describes Fp2 = Fp[u] / (u^2 - nonResidue) for a runtime-chosen
// non-residue. Grounded on the fp2 type in bn254_fp2.go, with the fixed
// "-1" non-residue generalized to an arbitrary quadratic non-residue
// supplied by the caller.
type Ext2 struct {
	base       *field.Field
	nonResidue *field.Element
	frob1      *field.Element // nonResidue^((p-1)/2), coefficient for conjugate under Frobenius
}

// NewExt2 constructs the Fp2 descriptor. Does not verify nonResidue is
// actually a non-residue; the caller is trusted to supply a valid one.
func NewExt2(base *field.Field, nonResidue *field.Element) *Ext2 {
	pMinus1 := new(big.Int).Sub(base.ModulusBig(), big.NewInt(1))
	exp := new(big.Int).Rsh(pMinus1, 1)
	return &Ext2{
		base:       base,
		nonResidue: nonResidue,
		frob1:      field.PowBig(nonResidue, exp),
	}
}

// Base returns the underlying prime field.
func (x *Ext2) Base() *field.Field { return x.base }

// NonResidue returns the non-residue defining this extension.
func (x *Ext2) NonResidue() *field.Element { return x.nonResidue }

// Fp2 is an element c0 + c1*u of an Ext2 tower.
type Fp2 struct {
	ext    *Ext2
	c0, c1 *field.Element
}

// NewFp2 builds an element from coordinates belonging to x's base field.
func NewFp2(x *Ext2, c0, c1 *field.Element) *Fp2 {
	return &Fp2{ext: x, c0: c0, c1: c1}
}

func Fp2Zero(x *Ext2) *Fp2 {
	return &Fp2{ext: x, c0: field.Zero(x.base), c1: field.Zero(x.base)}
}

func Fp2One(x *Ext2) *Fp2 {
	return &Fp2{ext: x, c0: field.One(x.base), c1: field.Zero(x.base)}
}

func (e *Fp2) Ext() *Ext2 { return e.ext }
func (e *Fp2) C0() *field.Element { return e.c0 }
func (e *Fp2) C1() *field.Element { return e.c1 }

func (e *Fp2) IsZero() bool {
	return e.c0.IsZero() && e.c1.IsZero()
}

func Fp2Equal(e, f *Fp2) bool {
	return field.Equal(e.c0, f.c0) && field.Equal(e.c1, f.c1)
}

func Fp2Add(e, f *Fp2) *Fp2 {
	return &Fp2{ext: e.ext, c0: field.Add(e.c0, f.c0), c1: field.Add(e.c1, f.c1)}
}

func Fp2Sub(e, f *Fp2) *Fp2 {
	return &Fp2{ext: e.ext, c0: field.Sub(e.c0, f.c0), c1: field.Sub(e.c1, f.c1)}
}

func Fp2Neg(e *Fp2) *Fp2 {
	return &Fp2{ext: e.ext, c0: field.Neg(e.c0), c1: field.Neg(e.c1)}
}

func Fp2Double(e *Fp2) *Fp2 {
	return &Fp2{ext: e.ext, c0: field.Double(e.c0), c1: field.Double(e.c1)}
}

// Fp2Mul is the Karatsuba product from bn254_fp2.go's fp2Mul, generalized
// from the fixed non-residue -1 to e.ext's runtime non-residue.
func Fp2Mul(e, f *Fp2) *Fp2 {
	v0 := field.Mul(e.c0, f.c0)
	v1 := field.Mul(e.c1, f.c1)
	t := field.Mul(field.Add(e.c0, e.c1), field.Add(f.c0, f.c1))
	c1 := field.Sub(field.Sub(t, v0), v1)
	c0 := field.Add(v0, Fp2MulNonResidueBase(e.ext, v1))
	return &Fp2{ext: e.ext, c0: c0, c1: c1}
}

// Fp2MulNonResidueBase multiplies a base-field element by the extension's
// non-residue, returning a base-field element. This is the "times v" step
// used when reducing c1*f1*u^2 back into c0 during multiplication.
func Fp2MulNonResidueBase(x *Ext2, a *field.Element) *field.Element {
	return field.Mul(a, x.nonResidue)
}

func Fp2Sqr(e *Fp2) *Fp2 {
	ab := field.Mul(e.c0, e.c1)
	c0 := field.Add(field.Mul(field.Add(e.c0, e.c1), field.Add(e.c0, Fp2MulNonResidueBase(e.ext, e.c1))),
		field.Neg(field.Add(ab, Fp2MulNonResidueBase(e.ext, ab))))
	c1 := field.Add(ab, ab)
	return &Fp2{ext: e.ext, c0: c0, c1: c1}
}

// Fp2Conjugate returns c0 - c1*u, which equals Frobenius^1 when the base
// field is Fp (degree-2 extension Frobenius has period 2).
func Fp2Conjugate(e *Fp2) *Fp2 {
	return &Fp2{ext: e.ext, c0: e.c0.Clone(), c1: field.Neg(e.c1)}
}

// Fp2MulByFp multiplies an Fp2 element by a base field scalar.
func Fp2MulByFp(e *Fp2, s *field.Element) *Fp2 {
	return &Fp2{ext: e.ext, c0: field.Mul(e.c0, s), c1: field.Mul(e.c1, s)}
}

// Fp2Inv computes e^-1 = (c0 - c1*u) / (c0^2 - nonResidue*c1^2), the
// generalization of bn254_fp2.go's fp2Inv (which hardcodes the norm as
// c0^2 + c1^2 because its non-residue is -1).
func Fp2Inv(e *Fp2) (*Fp2, bool) {
	t := field.Sub(field.Square(e.c0), Fp2MulNonResidueBase(e.ext, field.Square(e.c1)))
	inv, ok := field.Inverse(t)
	if !ok {
		return nil, false
	}
	return &Fp2{
		ext: e.ext,
		c0:  field.Mul(e.c0, inv),
		c1:  field.Mul(field.Neg(e.c1), inv),
	}, true
}

// Fp2Frobenius raises e to p^power via the closed form for degree-2
// extensions: Frobenius has period 2, so odd powers conjugate and even
// powers are the identity.
func Fp2Frobenius(e *Fp2, power int) *Fp2 {
	if power%2 == 0 {
		return &Fp2{ext: e.ext, c0: e.c0.Clone(), c1: e.c1.Clone()}
	}
	return Fp2Conjugate(e)
}
