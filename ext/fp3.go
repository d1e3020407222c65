package ext

import (
	"math/big"

	"github.com/ecengine/ecengine/field"
)

// Ext3 describes Fp3 = Fp[u] / (u^3 - nonResidue), the cubic extension
// MNT4/MNT6's G2 twists are ultimately built on top of. No source in
// this style of codebase implements a cubic tower (BN254/BLS12-381 only
// need Fp2/Fp6/Fp12), so this is grounded structurally on
// original_source/src/pairings/mnt6/mod.rs's use of a degree-3 base
// extension, expressed in the same Karatsuba style the rest of this
// package uses.
type Ext3 struct {
	base       *field.Field
	nonResidue *field.Element
	frobC1     [3]*field.Element // nonResidue^(i*(p-1)/3), i=0,1,2
	frobC2     [3]*field.Element // nonResidue^(i*2*(p-1)/3), i=0,1,2
}

func NewExt3(base *field.Field, nonResidue *field.Element) *Ext3 {
	p := base.ModulusBig()
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	third := new(big.Int).Div(pMinus1, big.NewInt(3))

	x := &Ext3{base: base, nonResidue: nonResidue}
	for i := 0; i < 3; i++ {
		e1 := new(big.Int).Mul(third, big.NewInt(int64(i)))
		e2 := new(big.Int).Mul(e1, big.NewInt(2))
		x.frobC1[i] = field.PowBig(nonResidue, e1)
		x.frobC2[i] = field.PowBig(nonResidue, e2)
	}
	return x
}

func (x *Ext3) Base() *field.Field { return x.base }
func (x *Ext3) NonResidue() *field.Element { return x.nonResidue }

type Fp3 struct {
	ext        *Ext3
	c0, c1, c2 *field.Element
}

func NewFp3(x *Ext3, c0, c1, c2 *field.Element) *Fp3 {
	return &Fp3{ext: x, c0: c0, c1: c1, c2: c2}
}

func Fp3Zero(x *Ext3) *Fp3 {
	return &Fp3{ext: x, c0: field.Zero(x.base), c1: field.Zero(x.base), c2: field.Zero(x.base)}
}

func Fp3One(x *Ext3) *Fp3 {
	return &Fp3{ext: x, c0: field.One(x.base), c1: field.Zero(x.base), c2: field.Zero(x.base)}
}

func (e *Fp3) Ext() *Ext3 { return e.ext }
func (e *Fp3) C0() *field.Element { return e.c0 }
func (e *Fp3) C1() *field.Element { return e.c1 }
func (e *Fp3) C2() *field.Element { return e.c2 }

func (e *Fp3) IsZero() bool {
	return e.c0.IsZero() && e.c1.IsZero() && e.c2.IsZero()
}

func Fp3Equal(e, f *Fp3) bool {
	return field.Equal(e.c0, f.c0) && field.Equal(e.c1, f.c1) && field.Equal(e.c2, f.c2)
}

func Fp3Add(e, f *Fp3) *Fp3 {
	return &Fp3{ext: e.ext, c0: field.Add(e.c0, f.c0), c1: field.Add(e.c1, f.c1), c2: field.Add(e.c2, f.c2)}
}

func Fp3Sub(e, f *Fp3) *Fp3 {
	return &Fp3{ext: e.ext, c0: field.Sub(e.c0, f.c0), c1: field.Sub(e.c1, f.c1), c2: field.Sub(e.c2, f.c2)}
}

func Fp3Neg(e *Fp3) *Fp3 {
	return &Fp3{ext: e.ext, c0: field.Neg(e.c0), c1: field.Neg(e.c1), c2: field.Neg(e.c2)}
}

func Fp3MulByNonResidueBase(x *Ext3, a *field.Element) *field.Element {
	return field.Mul(a, x.nonResidue)
}

// Fp3Mul is the cubic-extension Karatsuba product, the same shape as the
// teacher's fp6Mul (bn254_fp6.go) one tower level down: three base-field
// products combined via the Toom-style cross terms, reduced through the
// non-residue.
func Fp3Mul(e, f *Fp3) *Fp3 {
	t0 := field.Mul(e.c0, f.c0)
	t1 := field.Mul(e.c1, f.c1)
	t2 := field.Mul(e.c2, f.c2)

	c0 := field.Add(t0, Fp3MulByNonResidueBase(e.ext,
		field.Sub(field.Sub(field.Mul(field.Add(e.c1, e.c2), field.Add(f.c1, f.c2)), t1), t2)))

	c1 := field.Add(
		field.Sub(field.Sub(field.Mul(field.Add(e.c0, e.c1), field.Add(f.c0, f.c1)), t0), t1),
		Fp3MulByNonResidueBase(e.ext, t2))

	c2 := field.Add(
		field.Sub(field.Sub(field.Mul(field.Add(e.c0, e.c2), field.Add(f.c0, f.c2)), t0), t2),
		t1)

	return &Fp3{ext: e.ext, c0: c0, c1: c1, c2: c2}
}

func Fp3Sqr(e *Fp3) *Fp3 {
	return Fp3Mul(e, e)
}

// Fp3MulByFp multiplies an Fp3 element by a base-field scalar.
func Fp3MulByFp(e *Fp3, s *field.Element) *Fp3 {
	return &Fp3{ext: e.ext, c0: field.Mul(e.c0, s), c1: field.Mul(e.c1, s), c2: field.Mul(e.c2, s)}
}

// Fp3Double returns 2*e.
func Fp3Double(e *Fp3) *Fp3 {
	return &Fp3{ext: e.ext, c0: field.Double(e.c0), c1: field.Double(e.c1), c2: field.Double(e.c2)}
}

// Fp3Inv is the cubic-extension inverse, the same closed form as the
// teacher's fp6Inv (bn254_fp6.go).
func Fp3Inv(e *Fp3) (*Fp3, bool) {
	a := field.Sub(field.Square(e.c0), Fp3MulByNonResidueBase(e.ext, field.Mul(e.c1, e.c2)))
	b := field.Sub(Fp3MulByNonResidueBase(e.ext, field.Square(e.c2)), field.Mul(e.c0, e.c1))
	c := field.Sub(field.Square(e.c1), field.Mul(e.c0, e.c2))

	den := field.Add(field.Mul(e.c0, a),
		Fp3MulByNonResidueBase(e.ext, field.Add(field.Mul(e.c2, b), field.Mul(e.c1, c))))
	denInv, ok := field.Inverse(den)
	if !ok {
		return nil, false
	}
	return &Fp3{
		ext: e.ext,
		c0:  field.Mul(a, denInv),
		c1:  field.Mul(b, denInv),
		c2:  field.Mul(c, denInv),
	}, true
}

// Fp3Frobenius applies Frobenius^power via the precomputed coefficient
// tables (coordinates scale by nonResidue^(i*(p^power-1)/3), base-field
// coordinates are already Frobenius-fixed since Frobenius is identity on
// the prime subfield).
func Fp3Frobenius(e *Fp3, power int) *Fp3 {
	i := power % 3
	return &Fp3{
		ext: e.ext,
		c0:  e.c0.Clone(),
		c1:  field.Mul(e.c1, e.ext.frobC1[i]),
		c2:  field.Mul(e.c2, e.ext.frobC2[i]),
	}
}
